package dedupe

import (
	"context"

	"github.com/peted77/hubspot-fun/internal/hubspot"
	"github.com/peted77/hubspot-fun/pkg/logging"
)

// ResolveContact runs the full resolution flow for one enrolled
// contact: fetch, normalize, phone write-back, strategy cascade,
// survivor selection, merge. Every code path terminates in a
// structured result; nothing is thrown past the run boundary.
func (e *Engine) ResolveContact(ctx context.Context, id string) *RunResult {
	result := newRunResult(hubspot.ObjectTypeContacts, id)
	ctx = logging.WithRun(ctx, result.RunID)
	ctx = logging.WithObjectType(ctx, hubspot.ObjectTypeContacts)
	ctx = logging.WithRecord(ctx, id)

	record, err := e.store.FetchRecord(ctx, hubspot.ObjectTypeContacts, id, contactProperties)
	if err != nil {
		return result.fail(err)
	}

	subject := NewContactSubject(*record)
	if !subject.HasName() {
		// No searches are issued for nameless contacts.
		logging.Ctx(ctx).Info().Msg("contact has no usable name, skipping")
		return result.finalize(StatusSkipped, ReasonMissingName)
	}

	// Canonicalize the stored phone before matching so later runs
	// compare against the same form. Exhausting the throttling retry
	// here aborts the run.
	if subject.PhoneE164 != "" && subject.PhoneE164 != subject.RawPhone {
		err := e.retryThrottled(ctx, func(ctx context.Context) error {
			return e.store.Update(ctx, hubspot.ObjectTypeContacts, id,
				map[string]string{hubspot.PropPhone: subject.PhoneE164})
		})
		if err != nil {
			return result.fail(err)
		}
		logging.Ctx(ctx).Info().
			Str("phone", subject.PhoneE164).
			Msg("phone normalized")
	}

	match, err := runPipeline(ctx, e.store, hubspot.ObjectTypeContacts,
		subject.ID, subject, e.contactCascade, contactProperties, e.policy.SearchLimit)
	if err != nil {
		return result.fail(err)
	}
	result.MatchStrategy = match.Strategy
	result.MatchesFound = len(match.Candidates)

	switch {
	case len(match.Candidates) == 0:
		return result.finalize(StatusNoMatch, "")
	case len(match.Candidates) > 1:
		// More than one equally ranked match is a no-op, never a
		// guess between candidates.
		return result.finalize(StatusAmbiguous, ReasonMultipleMatches)
	}

	candidate := match.Candidates[0]
	if candidate.ID == subject.ID {
		return result.finalize(StatusAmbiguous, ReasonSameIDs)
	}

	survivorID, targetID := pickContactSurvivor(subject, candidate)
	result.SurvivorID = survivorID
	if err := e.mergeTarget(ctx, hubspot.ObjectTypeContacts, survivorID, targetID); err != nil {
		result.FailedIDs = append(result.FailedIDs, targetID)
		return result.fail(err)
	}

	result.MergedIDs = append(result.MergedIDs, targetID)
	return result.finalize(StatusMerged, "")
}
