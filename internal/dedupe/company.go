package dedupe

import (
	"context"

	"github.com/peted77/hubspot-fun/internal/hubspot"
	"github.com/peted77/hubspot-fun/pkg/errors"
	"github.com/peted77/hubspot-fun/pkg/logging"
)

// CompanyInput enrolls one company. When Properties is non-empty it is
// treated as the already-fetched field bundle and no fetch is issued;
// otherwise the record is fetched by ID.
type CompanyInput struct {
	ID         string
	Properties map[string]string
}

// ResolveCompany runs the full resolution flow for one enrolled
// company. Unlike contacts, every matched candidate joins a single
// group: the oldest record survives and all others are merged into it,
// strictly sequentially. Previously merged records are skipped as
// targets except under the domain-equality tier.
func (e *Engine) ResolveCompany(ctx context.Context, in CompanyInput) *RunResult {
	result := newRunResult(hubspot.ObjectTypeCompanies, in.ID)
	ctx = logging.WithRun(ctx, result.RunID)
	ctx = logging.WithObjectType(ctx, hubspot.ObjectTypeCompanies)
	ctx = logging.WithRecord(ctx, in.ID)

	if in.ID == "" {
		return result.fail(errors.NewValidationError("id", "company id is required"))
	}

	record := hubspot.Record{ID: in.ID, Properties: in.Properties}
	if len(in.Properties) == 0 {
		fetched, err := e.store.FetchRecord(ctx, hubspot.ObjectTypeCompanies, in.ID, companyProperties)
		if err != nil {
			return result.fail(err)
		}
		record = *fetched
	}

	subject := NewCompanySubject(record)
	if subject.Name == "" && subject.Domain == "" && subject.Website == "" {
		logging.Ctx(ctx).Info().Msg("company has no matchable fields, skipping")
		return result.finalize(StatusSkipped, ReasonMissingFields)
	}

	match, err := runPipeline(ctx, e.store, hubspot.ObjectTypeCompanies,
		subject.ID, subject, e.companyCascade, companyProperties, e.policy.SearchLimit)
	if err != nil {
		return result.fail(err)
	}
	result.MatchStrategy = match.Strategy
	result.MatchesFound = len(match.Candidates)

	if len(match.Candidates) == 0 {
		return result.finalize(StatusNoMatch, "")
	}

	ctx = logging.WithStrategy(ctx, match.Strategy)
	survivorID, targets, skipped := selectCompanySurvivor(subject, match.Candidates, match.Strategy)
	result.SurvivorID = survivorID
	result.SkippedIDs = skipped

	e.executeMerges(ctx, hubspot.ObjectTypeCompanies, survivorID, targets, result)

	switch {
	case len(result.MergedIDs) > 0:
		return result.finalize(StatusMerged, "")
	case len(result.FailedIDs) > 0:
		return result.finalize(StatusError, ReasonMergeFailed)
	default:
		// Every non-survivor was previously merged and the strategy
		// was not strong enough to touch them again.
		return result.finalize(StatusSkipped, ReasonPreviouslyMerged)
	}
}
