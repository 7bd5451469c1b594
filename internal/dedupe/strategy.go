package dedupe

import (
	"context"

	"github.com/peted77/hubspot-fun/internal/hubspot"
	"github.com/peted77/hubspot-fun/pkg/logging"
)

// Strategy is one ordered step of the match cascade: a precondition on
// the normalized subject, a candidate query, and a local predicate that
// filters candidates down to true matches. Strategies are stateless and
// defined at process initialization; the free-text ones rely on the
// backend's relevance ranking to surface candidates within the page
// limit and must always filter locally.
type Strategy[S any] struct {
	// Name tags the strategy in results and logs.
	Name string

	// Ready reports whether the subject carries the normalized fields
	// this strategy needs. A not-ready strategy issues no search.
	Ready func(S) bool

	// Query builds the candidate search. The pipeline stamps the page
	// limit and property list.
	Query func(S) hubspot.SearchRequest

	// Match reports whether a candidate is a true duplicate of the
	// subject.
	Match func(S, hubspot.Record) bool
}

// Match is the pipeline outcome: the first strategy whose filtered
// candidate set was non-empty, with that set. A zero Strategy name
// means the cascade was exhausted.
type Match struct {
	Strategy   string
	Candidates []hubspot.Record

	// Searches counts the queries issued, for observability and tests.
	Searches int
}

// runPipeline evaluates strategies strictly in order and stops at the
// first one whose filtered candidate set is non-empty. The subject's
// own record never appears in its candidate set. A search error
// terminates the whole run; the searches already issued are reported
// alongside.
func runPipeline[S any](
	ctx context.Context,
	store Store,
	objectType string,
	subjectID string,
	subject S,
	strategies []Strategy[S],
	properties []string,
	limit int,
) (Match, error) {
	logger := logging.Ctx(ctx)
	out := Match{}

	for _, strategy := range strategies {
		if !strategy.Ready(subject) {
			logger.Debug().
				Str("strategy", strategy.Name).
				Msg("strategy precondition not met")
			continue
		}

		req := strategy.Query(subject)
		req.Properties = properties
		req.Limit = limit

		records, err := store.Search(ctx, objectType, req)
		out.Searches++
		if err != nil {
			return out, err
		}

		matched := make([]hubspot.Record, 0, len(records))
		for _, rec := range records {
			if rec.ID == subjectID {
				continue
			}
			if strategy.Match(subject, rec) {
				matched = append(matched, rec)
			}
		}

		logger.Debug().
			Str("strategy", strategy.Name).
			Int("candidates", len(records)).
			Int("matched", len(matched)).
			Msg("strategy evaluated")

		if len(matched) > 0 {
			out.Strategy = strategy.Name
			out.Candidates = matched
			logger.Info().
				Str("strategy", strategy.Name).
				Int("matched", len(matched)).
				Msg("strategy fired")
			return out, nil
		}
	}

	return out, nil
}
