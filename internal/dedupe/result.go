package dedupe

import (
	"fmt"
	"time"

	"github.com/google/uuid"
)

// Status is the terminal outcome of one resolution run. Every code
// path inside a run ends in exactly one of these; errors are carried
// in the result, never returned past the run boundary.
type Status string

const (
	// StatusMerged means at least one duplicate was merged into the survivor.
	StatusMerged Status = "merged"
	// StatusNoMatch means no strategy produced a candidate.
	StatusNoMatch Status = "no_match"
	// StatusAmbiguous means a strategy produced more than one equally
	// ranked candidate; no merge is attempted.
	StatusAmbiguous Status = "ambiguous"
	// StatusSkipped means the record failed a precondition before any
	// merge was attempted.
	StatusSkipped Status = "skipped"
	// StatusError means the run failed on an unrecovered store error.
	StatusError Status = "error"
)

// Machine-readable reasons attached to non-merged outcomes.
const (
	ReasonMissingName      = "missing_name"
	ReasonMissingFields    = "missing_company_fields"
	ReasonMultipleMatches  = "multiple_matches"
	ReasonSameIDs          = "same_ids"
	ReasonPreviouslyMerged = "previously_merged"
	ReasonMergeFailed      = "merge_failed"
)

// RunResult is the structured outcome of one resolution run.
type RunResult struct {
	// RunID identifies the run in log output.
	RunID string

	// ObjectType and RecordID identify the enrolled record.
	ObjectType string
	RecordID   string

	Status Status
	Reason string

	// MatchStrategy is the name of the strategy that fired, or "" when
	// none did. MatchesFound counts its filtered candidates.
	MatchStrategy string
	MatchesFound  int

	// SurvivorID is the record kept after merging.
	SurvivorID string

	// Per-target outcomes, in merge order.
	MergedIDs  []string
	FailedIDs  []string
	SkippedIDs []string

	StartedAt time.Time
	Duration  time.Duration
}

// newRunResult creates a result for a starting run.
func newRunResult(objectType, recordID string) *RunResult {
	return &RunResult{
		RunID:      uuid.NewString(),
		ObjectType: objectType,
		RecordID:   recordID,
		StartedAt:  time.Now(),
	}
}

// finalize stamps the terminal status and duration.
func (r *RunResult) finalize(status Status, reason string) *RunResult {
	r.Status = status
	r.Reason = reason
	r.Duration = time.Since(r.StartedAt)
	return r
}

// fail finalizes the run as an error outcome, preserving the
// underlying message for diagnostics.
func (r *RunResult) fail(err error) *RunResult {
	return r.finalize(StatusError, err.Error())
}

// Merged reports whether the run merged at least one record.
func (r *RunResult) Merged() bool {
	return r.Status == StatusMerged
}

// Summary returns a human-readable one-line summary of the run.
func (r *RunResult) Summary() string {
	switch r.Status {
	case StatusMerged:
		return fmt.Sprintf("%s %s: merged %d record(s) into %s via %s",
			r.ObjectType, r.RecordID, len(r.MergedIDs), r.SurvivorID, r.MatchStrategy)
	case StatusNoMatch:
		return fmt.Sprintf("%s %s: no duplicates found", r.ObjectType, r.RecordID)
	case StatusAmbiguous:
		return fmt.Sprintf("%s %s: %d candidates via %s, not merging",
			r.ObjectType, r.RecordID, r.MatchesFound, r.MatchStrategy)
	case StatusSkipped:
		return fmt.Sprintf("%s %s: skipped (%s)", r.ObjectType, r.RecordID, r.Reason)
	default:
		return fmt.Sprintf("%s %s: failed: %s", r.ObjectType, r.RecordID, r.Reason)
	}
}
