package review

const (
	CycleStatusDraft     = "draft"
	CycleStatusOpen      = "open"
	CycleStatusClosed    = "closed"
	CycleStatusPublished = "published"

	CycleTypeAnnual    = "annual"
	CycleTypeMidYear   = "mid_year"
	CycleTypeQuarterly = "quarterly"
	CycleTypeProbation = "probation"

	ReviewerStatusInProgress = "in_progress"
	ReviewerStatusCompleted  = "completed"

	ReceiverStatusNotAssigned = "not_assigned"
	ReceiverStatusInProgress  = "in_progress"
	ReceiverStatusCompleted   = "completed"

	ResponseStatusCompleted = "completed"

	// SystemActor attributes ratings computed without an explicit actor.
	SystemActor = "SYSTEM"
)

var CycleTypes = []string{CycleTypeAnnual, CycleTypeMidYear, CycleTypeQuarterly, CycleTypeProbation}
