// Package backend is the HTTP client for the staffing backend and its AI
// agents (decompose, match, replan). All calls attach the configured
// bearer token, are bounded by the configured timeout, and are never
// retried automatically — failed operations are surfaced to the operator.
package backend

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/lvoisin/crewctl/internal/domain"
	"github.com/lvoisin/crewctl/internal/ident"
)

// Config holds the backend connection settings.
type Config struct {
	Endpoint  string
	Token     string
	TimeoutMs int
}

// DefaultConfig returns a Config pointing at the local dev backend.
func DefaultConfig() Config {
	return Config{
		Endpoint:  "http://localhost:8000",
		TimeoutMs: 10000,
	}
}

// ProjectSnapshot is the full fetch result: the project document plus the
// populated team profiles.
type ProjectSnapshot struct {
	Project domain.Project
	Team    []domain.TeamMember
}

// Employee is one directory entry.
type Employee struct {
	Profile domain.EmployeeProfile
	Skills  []domain.SkillInfo
}

// DecomposeResult is the planner agent's task breakdown.
type DecomposeResult struct {
	Tasks               []domain.Task
	TotalEstimatedHours float64
	RecommendedTeamSize int
}

// SimulateResult is the replanning agent's proposed delta. It is never
// persisted by this package; the replan service holds it as a draft.
type SimulateResult struct {
	Summary             string
	ProposedTasks       []domain.Task
	ProposedAssignments []MatchEntry
}

// ApplyResult reports a committed replan.
type ApplyResult struct {
	Message           string
	NotificationsSent int
	TasksUpdated      int
	TeamSize          int
}

// HealthMetrics are the backend's risk numbers for a project.
type HealthMetrics struct {
	Progress         float64
	ExpectedProgress float64
	DaysLeft         int
	RiskScore        float64
	MaxLoad          float64
}

// HealthReport is the polled health payload. State is empty when the
// backend omits the classification; callers derive it from Metrics.
type HealthReport struct {
	State   domain.HealthState
	Issues  []string
	Metrics HealthMetrics
}

// ProjectPatch is a whole-document update; nil/empty fields are omitted.
type ProjectPatch struct {
	Status            *domain.ProjectStatus
	AssignedTeam      []ident.ID
	Tasks             []domain.Task
	Deadline          *string
	OptimizationLog   []domain.OptimizationEvent
	OptimizationCycle *int
}

// ProjectCreate is the creation payload for a new draft project.
type ProjectCreate struct {
	Title              string
	Description        string
	RequiredSkills     []domain.RequiredSkill
	ExperienceRequired float64
	Deadline           *string
}

// MatchPreviewRequest runs matching against an unsaved project draft.
type MatchPreviewRequest struct {
	Title              string
	Description        string
	RequiredSkills     []string
	ExperienceRequired float64
	TeamSize           int
}

// Client provides access to the staffing backend.
type Client interface {
	FetchProject(ctx context.Context, id ident.ID) (*ProjectSnapshot, error)
	CreateProject(ctx context.Context, req ProjectCreate) (*domain.Project, error)
	ListProjects(ctx context.Context, status domain.ProjectStatus) ([]domain.Project, error)
	UpdateProject(ctx context.Context, id ident.ID, patch ProjectPatch) (*domain.Project, error)
	Decompose(ctx context.Context, id ident.ID) (*DecomposeResult, error)
	Match(ctx context.Context, id ident.ID, teamSize int) ([]MatchEntry, error)
	MatchPreview(ctx context.Context, req MatchPreviewRequest) ([]MatchEntry, error)
	ReplanSimulate(ctx context.Context, id ident.ID) (*SimulateResult, error)
	ReplanApply(ctx context.Context, id ident.ID, tasks []domain.Task, roster []domain.TeamMember) (*ApplyResult, error)
	FetchHealth(ctx context.Context, id ident.ID) (*HealthReport, error)
	FetchDirectory(ctx context.Context) ([]Employee, error)

	// Available checks whether the backend is reachable.
	Available(ctx context.Context) bool
}

type httpClient struct {
	cfg      Config
	http     *http.Client
	observer Observer
	now      func() time.Time
}

// NewClient creates a Client for the configured backend.
func NewClient(cfg Config, observer Observer) Client {
	if observer == nil {
		observer = NoopObserver{}
	}
	return &httpClient{
		cfg: cfg,
		http: &http.Client{
			Transport: &http.Transport{
				DialContext: (&net.Dialer{
					Timeout: 5 * time.Second,
				}).DialContext,
			},
		},
		observer: observer,
		now:      time.Now,
	}
}

func (c *httpClient) timeout() time.Duration {
	ms := c.cfg.TimeoutMs
	if ms <= 0 {
		ms = 10000
	}
	return time.Duration(ms) * time.Millisecond
}

// call performs one authenticated JSON request. out may be nil.
func (c *httpClient) call(ctx context.Context, op, method, path string, body, out any, projectID string) error {
	start := c.now()

	if err := CheckToken(c.cfg.Token, start); err != nil {
		return err
	}

	ctx, cancel := context.WithTimeout(ctx, c.timeout())
	defer cancel()

	var reader io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("marshaling request: %w", err)
		}
		reader = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.cfg.Endpoint+path, reader)
	if err != nil {
		return fmt.Errorf("creating request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+c.cfg.Token)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	err = c.doJSON(req, out)
	latency := time.Since(start).Milliseconds()
	c.observer.OnCallComplete(CallEvent{
		Operation: op,
		ProjectID: projectID,
		LatencyMs: latency,
		Success:   err == nil,
		ErrorCode: errorCode(err),
	})

	if err != nil && ctx.Err() != nil {
		return ErrTimeout
	}
	return err
}

func (c *httpClient) doJSON(req *http.Request, out any) error {
	resp, err := c.http.Do(req)
	if err != nil {
		if isConnectionError(err) {
			return fmt.Errorf("%w: %v", ErrUnavailable, err)
		}
		return err
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("reading response: %w", err)
	}

	if resp.StatusCode == http.StatusNotFound {
		return fmt.Errorf("%w: %s", ErrNotFound, req.URL.Path)
	}
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		var eb errorBody
		_ = json.Unmarshal(respBody, &eb)
		return &APIError{StatusCode: resp.StatusCode, Detail: eb.text()}
	}

	if out == nil {
		return nil
	}
	if err := json.Unmarshal(respBody, out); err != nil {
		return fmt.Errorf("decoding response: %w", err)
	}
	return nil
}

func (c *httpClient) FetchProject(ctx context.Context, id ident.ID) (*ProjectSnapshot, error) {
	var doc projectFetchDoc
	if err := c.call(ctx, "fetch_project", http.MethodGet, "/projects/"+url.PathEscape(id.String()), nil, &doc, id.String()); err != nil {
		return nil, fmt.Errorf("fetching project: %w", err)
	}
	snap := &ProjectSnapshot{Project: doc.Project.toDomain()}
	for _, te := range doc.Team {
		snap.Team = append(snap.Team, te.toDomain())
	}
	return snap, nil
}

func (c *httpClient) CreateProject(ctx context.Context, req ProjectCreate) (*domain.Project, error) {
	payload := projectCreateDoc{
		Title:              req.Title,
		Description:        req.Description,
		ExperienceRequired: req.ExperienceRequired,
		Status:             string(domain.ProjectDraft),
		Deadline:           req.Deadline,
	}
	for _, rs := range req.RequiredSkills {
		payload.RequiredSkills = append(payload.RequiredSkills, requiredSkillDoc{
			SkillName: rs.Name,
			Level:     string(rs.Level),
		})
	}
	var doc projectDoc
	if err := c.call(ctx, "create_project", http.MethodPost, "/projects/", payload, &doc, ""); err != nil {
		return nil, fmt.Errorf("creating project: %w", err)
	}
	p := doc.toDomain()
	return &p, nil
}

func (c *httpClient) ListProjects(ctx context.Context, status domain.ProjectStatus) ([]domain.Project, error) {
	path := "/projects/"
	if status != "" {
		path += "?status=" + url.QueryEscape(string(status))
	}
	var docs []projectDoc
	if err := c.call(ctx, "list_projects", http.MethodGet, path, nil, &docs, ""); err != nil {
		return nil, fmt.Errorf("listing projects: %w", err)
	}
	out := make([]domain.Project, 0, len(docs))
	for _, d := range docs {
		out = append(out, d.toDomain())
	}
	return out, nil
}

func (c *httpClient) UpdateProject(ctx context.Context, id ident.ID, patch ProjectPatch) (*domain.Project, error) {
	payload := projectUpdateDoc{
		AssignedTeam:      patch.AssignedTeam,
		Deadline:          patch.Deadline,
		OptimizationCycle: patch.OptimizationCycle,
	}
	if patch.Status != nil {
		s := string(*patch.Status)
		payload.Status = &s
	}
	for _, t := range patch.Tasks {
		payload.Tasks = append(payload.Tasks, taskToDoc(t))
	}
	for _, ev := range patch.OptimizationLog {
		payload.OptimizationLog = append(payload.OptimizationLog, optimizationEventDoc(ev))
	}
	var doc projectDoc
	if err := c.call(ctx, "update_project", http.MethodPut, "/projects/"+url.PathEscape(id.String()), payload, &doc, id.String()); err != nil {
		return nil, fmt.Errorf("updating project: %w", err)
	}
	p := doc.toDomain()
	return &p, nil
}

func (c *httpClient) Decompose(ctx context.Context, id ident.ID) (*DecomposeResult, error) {
	var doc decomposeDoc
	if err := c.call(ctx, "decompose", http.MethodPost, "/projects/"+url.PathEscape(id.String())+"/decompose", nil, &doc, id.String()); err != nil {
		return nil, fmt.Errorf("decomposing project: %w", err)
	}
	res := &DecomposeResult{
		TotalEstimatedHours: doc.TotalEstimatedHours,
		RecommendedTeamSize: doc.RecommendedTeamSize,
	}
	for _, td := range doc.Tasks {
		res.Tasks = append(res.Tasks, td.toDomain())
	}
	return res, nil
}

func (c *httpClient) Match(ctx context.Context, id ident.ID, teamSize int) ([]MatchEntry, error) {
	path := "/projects/" + url.PathEscape(id.String()) + "/match"
	if teamSize > 0 {
		path += "?team_size=" + strconv.Itoa(teamSize)
	}
	var docs []matchEntryDoc
	if err := c.call(ctx, "match", http.MethodGet, path, nil, &docs, id.String()); err != nil {
		return nil, fmt.Errorf("matching employees: %w", err)
	}
	return decodeMatches(docs), nil
}

func (c *httpClient) MatchPreview(ctx context.Context, req MatchPreviewRequest) ([]MatchEntry, error) {
	payload := matchPreviewDoc{
		Title:              req.Title,
		Description:        req.Description,
		RequiredSkills:     req.RequiredSkills,
		ExperienceRequired: req.ExperienceRequired,
		TeamSize:           req.TeamSize,
	}
	var docs []matchEntryDoc
	if err := c.call(ctx, "match_preview", http.MethodPost, "/projects/match-preview", payload, &docs, ""); err != nil {
		return nil, fmt.Errorf("previewing match: %w", err)
	}
	return decodeMatches(docs), nil
}

func decodeMatches(docs []matchEntryDoc) []MatchEntry {
	out := make([]MatchEntry, 0, len(docs))
	for _, d := range docs {
		out = append(out, d.toDomain())
	}
	return out
}

func (c *httpClient) ReplanSimulate(ctx context.Context, id ident.ID) (*SimulateResult, error) {
	var doc simulateDoc
	if err := c.call(ctx, "replan_simulate", http.MethodPost, "/projects/"+url.PathEscape(id.String())+"/replan/simulate", nil, &doc, id.String()); err != nil {
		return nil, fmt.Errorf("simulating replan: %w", err)
	}
	res := &SimulateResult{Summary: doc.Summary}
	for _, td := range doc.ProposedTasks {
		res.ProposedTasks = append(res.ProposedTasks, td.toDomain())
	}
	res.ProposedAssignments = decodeMatches(doc.ProposedAssignments)
	return res, nil
}

func (c *httpClient) ReplanApply(ctx context.Context, id ident.ID, tasks []domain.Task, roster []domain.TeamMember) (*ApplyResult, error) {
	payload := replanApplyDoc{}
	for _, t := range tasks {
		payload.Tasks = append(payload.Tasks, taskToDoc(t))
	}
	for _, m := range roster {
		payload.Assignments = append(payload.Assignments, matchEntryToDoc(m))
	}
	var doc applyResultDoc
	if err := c.call(ctx, "replan_apply", http.MethodPost, "/projects/"+url.PathEscape(id.String())+"/replan/apply", payload, &doc, id.String()); err != nil {
		return nil, fmt.Errorf("applying replan: %w", err)
	}
	return &ApplyResult{
		Message:           doc.Message,
		NotificationsSent: doc.NotificationsSent,
		TasksUpdated:      doc.TasksUpdated,
		TeamSize:          doc.TeamSize,
	}, nil
}

func (c *httpClient) FetchHealth(ctx context.Context, id ident.ID) (*HealthReport, error) {
	var doc healthDoc
	if err := c.call(ctx, "fetch_health", http.MethodGet, "/projects/"+url.PathEscape(id.String())+"/health", nil, &doc, id.String()); err != nil {
		return nil, fmt.Errorf("fetching health: %w", err)
	}
	return &HealthReport{
		State:   domain.HealthState(doc.Health),
		Issues:  doc.Issues,
		Metrics: HealthMetrics(doc.Metrics),
	}, nil
}

func (c *httpClient) FetchDirectory(ctx context.Context) ([]Employee, error) {
	var docs []teamEntryDoc
	if err := c.call(ctx, "fetch_directory", http.MethodGet, "/employees", nil, &docs, ""); err != nil {
		return nil, fmt.Errorf("fetching directory: %w", err)
	}
	out := make([]Employee, 0, len(docs))
	for _, d := range docs {
		out = append(out, Employee{
			Profile: d.Profile.toDomain(),
			Skills:  skillsToDomain(d.Skills),
		})
	}
	return out, nil
}

func (c *httpClient) Available(ctx context.Context) bool {
	ctx, cancel := context.WithTimeout(ctx, 2*time.Second)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.cfg.Endpoint+"/health", nil)
	if err != nil {
		return false
	}
	resp, err := c.http.Do(req)
	if err != nil {
		return false
	}
	resp.Body.Close()
	return resp.StatusCode == http.StatusOK
}

func isConnectionError(err error) bool {
	if err == nil {
		return false
	}
	var netErr *net.OpError
	return errors.As(err, &netErr)
}

func errorCode(err error) string {
	switch {
	case err == nil:
		return ""
	case errors.Is(err, ErrTimeout):
		return "TIMEOUT"
	case errors.Is(err, ErrUnavailable):
		return "UNAVAILABLE"
	case errors.Is(err, ErrTokenExpired):
		return "TOKEN_EXPIRED"
	case errors.Is(err, ErrNotFound):
		return "NOT_FOUND"
	default:
		var apiErr *APIError
		if errors.As(err, &apiErr) {
			return "HTTP_" + strconv.Itoa(apiErr.StatusCode)
		}
		return "UNKNOWN"
	}
}
