package models

import "time"

// SyncPhase is the sync coordinator's state machine position.
type SyncPhase string

const (
	PhaseIdle      SyncPhase = "idle"
	PhasePushing   SyncPhase = "pushing"
	PhasePulling   SyncPhase = "pulling"
	PhaseResolving SyncPhase = "resolving"
	PhaseAdvancing SyncPhase = "advancing"
	PhaseComplete  SyncPhase = "complete"
	PhaseFailed    SyncPhase = "failed"
)

// SyncReport summarizes one sync cycle.
type SyncReport struct {
	// Pushed is the number of change records sent to the remote store.
	Pushed int `json:"pushed"`
	// Acknowledged is the number of journal entries removed after the remote
	// store confirmed them.
	Acknowledged int `json:"acknowledged"`
	// Rejected is the number of records the remote store refused
	// (validation failures preserved as conflict records).
	Rejected int `json:"rejected"`
	// Pulled is the number of remote entities received.
	Pulled int `json:"pulled"`
	// Merged is the number of pulled entities written locally, whether
	// remote-wins, local-wins, or field-merged.
	Merged int `json:"merged"`
	// Conflicts is the number of ConflictRecords created this cycle.
	Conflicts int `json:"conflicts"`
	// Duration is the wall-clock length of the cycle.
	Duration time.Duration `json:"duration"`
}

// SyncStatus is one event on the coordinator's status stream. Observers see
// only the latest status: the stream buffers a single event and overwrites
// it when the observer lags.
type SyncStatus struct {
	Phase SyncPhase `json:"phase"`

	// Reason is set only when Phase is PhaseFailed.
	Reason string `json:"reason,omitempty"`

	// Report carries cycle totals; zero-valued until the cycle progresses.
	Report SyncReport `json:"report"`

	At time.Time `json:"at"`
}
