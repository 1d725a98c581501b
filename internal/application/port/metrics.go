package port

import "time"

// Command names reported to SyncMetrics.
const (
	CommandLookup = "lookup"
	CommandSet    = "set"
	CommandDelete = "delete"
)

// Command outcomes reported to SyncMetrics.
const (
	OutcomeOK      = "ok"
	OutcomeMiss    = "miss"
	OutcomeInvalid = "invalid"
	OutcomeFailed  = "failed"
)

// SyncMetrics records snapshot synchronization and command activity.
// A nil SyncMetrics is valid wherever one is accepted.
type SyncMetrics interface {
	RefreshSucceeded(entries int, took time.Duration)
	RefreshFailed()
	StaleResponseDiscarded()
	// SnapshotContentChanged is called when an accepted snapshot differs in
	// content from the one it replaces.
	SnapshotContentChanged()
	ContractViolation(kind string)
	CommandCompleted(command, outcome string)
}
