package models

// ResolutionOutcome classifies what the conflict resolver decided for a
// (local, remote) pair.
type ResolutionOutcome string

const (
	// ResolutionRemote: the remote version wins outright; write it locally.
	ResolutionRemote ResolutionOutcome = "remote"

	// ResolutionLocal: the local version wins outright; keep it and re-push.
	ResolutionLocal ResolutionOutcome = "local"

	// ResolutionMerged: a field-level merge produced a combined version that
	// must be written locally and re-pushed.
	ResolutionMerged ResolutionOutcome = "merged"

	// ResolutionConflict: the entity type is non-mergeable; a ConflictRecord
	// was produced and requires explicit resolution.
	ResolutionConflict ResolutionOutcome = "conflict"
)

// Resolution is the conflict resolver's verdict for one entity.
// Exactly one of Entity or Conflict is set: Entity for every automatic
// outcome, Conflict when explicit resolution is required.
type Resolution struct {
	Outcome ResolutionOutcome

	// Entity is the version to write locally. Nil when Outcome is
	// ResolutionConflict.
	Entity *SyncableEntity

	// RequiresPush is true when the resolved version differs from what the
	// remote store holds and must be journaled for the next push.
	RequiresPush bool

	// Conflict is the materialized conflict, set only when Outcome is
	// ResolutionConflict.
	Conflict *ConflictRecord
}
