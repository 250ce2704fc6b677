package domain

type ProjectStatus string

const (
	ProjectDraft     ProjectStatus = "draft"
	ProjectFinalized ProjectStatus = "finalized"
)

type TaskStatus string

const (
	TaskBacklog    TaskStatus = "backlog"
	TaskInProgress TaskStatus = "in_progress"
	TaskCompleted  TaskStatus = "completed"
)

type TaskPriority string

const (
	PriorityLow    TaskPriority = "low"
	PriorityMedium TaskPriority = "medium"
	PriorityHigh   TaskPriority = "high"
)

// ValidTaskPriorities is the canonical set of accepted priority strings.
var ValidTaskPriorities = map[string]bool{
	"low": true, "medium": true, "high": true,
}

type HealthState string

const (
	HealthStable   HealthState = "stable"
	HealthWarning  HealthState = "warning"
	HealthCritical HealthState = "critical"
	HealthOverdue  HealthState = "overdue"
)

// RecoveryAction is the operator action recommended for a health state.
type RecoveryAction string

const (
	ActionNone         RecoveryAction = ""
	ActionReview       RecoveryAction = "review_optimization"
	ActionReplan       RecoveryAction = "run_replanning"
	ActionRecoveryPlan RecoveryAction = "apply_recovery_plan"
)

// DraftState tracks the replan simulation lifecycle for a session.
type DraftState string

const (
	DraftIdle       DraftState = "idle"
	DraftSimulating DraftState = "simulating"
	DraftSimulated  DraftState = "simulated"
	DraftStaged     DraftState = "staged"
	DraftApplying   DraftState = "applying"
	DraftApplied    DraftState = "applied"
	DraftDiscarded  DraftState = "discarded"
)

type SkillLevel string

const (
	SkillJunior SkillLevel = "junior"
	SkillMid    SkillLevel = "mid"
	SkillSenior SkillLevel = "senior"
)
