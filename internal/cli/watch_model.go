package cli

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/lvoisin/crewctl/internal/cli/formatter"
	"github.com/lvoisin/crewctl/internal/domain"
	"github.com/lvoisin/crewctl/internal/engine"
	"github.com/lvoisin/crewctl/internal/health"
	"github.com/lvoisin/crewctl/internal/service"
)

// Messages relayed from the sync loop and health monitor goroutines.
type (
	watchSyncMsg    struct{ snap engine.Snapshot }
	watchVerdictMsg struct{ verdict health.ClassifyResult }
	watchErrMsg     struct{ err error }
)

// watchModel is the bubbletea model behind "crewctl watch". It renders
// the session as the sync loop and health monitor feed it events.
type watchModel struct {
	session *engine.Session
	events  <-chan tea.Msg

	spinner spinner.Model

	verdict  *health.ClassifyResult
	lastSync time.Time
	lastErr  string
	quitting bool
}

func newWatchModel(session *engine.Session, events <-chan tea.Msg) watchModel {
	sp := spinner.New(
		spinner.WithSpinner(spinner.Dot),
		spinner.WithStyle(formatter.StylePurple),
	)
	return watchModel{
		session: session,
		events:  events,
		spinner: sp,
	}
}

// waitForEvent blocks on the relay channel; each delivered message
// re-subscribes in Update.
func waitForEvent(events <-chan tea.Msg) tea.Cmd {
	return func() tea.Msg {
		return <-events
	}
}

func (m watchModel) Init() tea.Cmd {
	return tea.Batch(m.spinner.Tick, waitForEvent(m.events))
}

func (m watchModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {

	case tea.KeyMsg:
		switch msg.String() {
		case "q", "esc", "ctrl+c":
			m.quitting = true
			return m, tea.Quit
		}
		return m, nil

	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd

	case watchSyncMsg:
		m.lastSync = msg.snap.SyncedAt
		m.lastErr = ""
		return m, waitForEvent(m.events)

	case watchVerdictMsg:
		v := msg.verdict
		m.verdict = &v
		m.lastErr = ""
		return m, waitForEvent(m.events)

	case watchErrMsg:
		m.lastErr = msg.err.Error()
		return m, waitForEvent(m.events)
	}

	return m, nil
}

func (m watchModel) View() string {
	if m.quitting {
		return ""
	}

	var b strings.Builder
	view := service.Status(m.session, domain.DraftIdle)
	b.WriteString(formatter.FormatStatus(view))
	b.WriteString("\n")

	if m.verdict != nil {
		b.WriteString(formatter.FormatHealth(*m.verdict))
		b.WriteString("\n")
	}

	b.WriteString(m.spinner.View())
	if m.lastSync.IsZero() {
		b.WriteString(formatter.Dim(" watching (no sync yet)"))
	} else {
		b.WriteString(formatter.Dim(fmt.Sprintf(" watching, last sync %s", m.lastSync.Local().Format("15:04:05"))))
	}
	b.WriteString("\n")

	if m.lastErr != "" {
		b.WriteString(formatter.StyleYellow.Render("! "+m.lastErr) + "\n")
	}

	b.WriteString(formatter.Dim("q to quit") + "\n")
	return b.String()
}
