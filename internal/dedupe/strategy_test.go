package dedupe

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/peted77/hubspot-fun/internal/hubspot"
	"github.com/peted77/hubspot-fun/pkg/errors"
	"github.com/peted77/hubspot-fun/pkg/logging"
)

// testSubject is a minimal subject shape for pipeline tests.
type testSubject struct {
	id string
}

func matchAll(testSubject, hubspot.Record) bool  { return true }
func matchNone(testSubject, hubspot.Record) bool { return false }

func queryFor(name string) func(testSubject) hubspot.SearchRequest {
	return func(testSubject) hubspot.SearchRequest {
		return hubspot.SearchRequest{Query: name}
	}
}

func ready(testSubject) bool    { return true }
func notReady(testSubject) bool { return false }

func TestRunPipelineStopsAtFirstMatch(t *testing.T) {
	logging.DisableLoggingForTest(t)

	store := newFakeStore()
	store.respond = func(_ string, req hubspot.SearchRequest) []hubspot.Record {
		if req.Query == "second" {
			return []hubspot.Record{{ID: "hit"}}
		}
		return nil
	}

	strategies := []Strategy[testSubject]{
		{Name: "first", Ready: ready, Query: queryFor("first"), Match: matchAll},
		{Name: "second", Ready: ready, Query: queryFor("second"), Match: matchAll},
		{Name: "third", Ready: ready, Query: queryFor("third"), Match: matchAll},
	}

	match, err := runPipeline(context.Background(), store, "contacts", "subj",
		testSubject{id: "subj"}, strategies, []string{"email"}, 10)
	require.NoError(t, err)

	assert.Equal(t, "second", match.Strategy)
	require.Len(t, match.Candidates, 1)
	assert.Equal(t, "hit", match.Candidates[0].ID)
	assert.Equal(t, 2, match.Searches, "the third strategy never runs")
}

func TestRunPipelineSkipsNotReadyStrategies(t *testing.T) {
	logging.DisableLoggingForTest(t)

	store := newFakeStore()
	store.respond = func(string, hubspot.SearchRequest) []hubspot.Record {
		return []hubspot.Record{{ID: "hit"}}
	}

	strategies := []Strategy[testSubject]{
		{Name: "unready", Ready: notReady, Query: queryFor("unready"), Match: matchAll},
		{Name: "armed", Ready: ready, Query: queryFor("armed"), Match: matchAll},
	}

	match, err := runPipeline(context.Background(), store, "contacts", "subj",
		testSubject{}, strategies, nil, 10)
	require.NoError(t, err)

	assert.Equal(t, "armed", match.Strategy)
	assert.Equal(t, 1, match.Searches, "a not-ready strategy issues no search")
	require.Len(t, store.searchCalls, 1)
	assert.Equal(t, "armed", store.searchCalls[0].Query)
}

func TestRunPipelineExcludesSubjectRecord(t *testing.T) {
	logging.DisableLoggingForTest(t)

	store := newFakeStore()
	store.respond = func(string, hubspot.SearchRequest) []hubspot.Record {
		return []hubspot.Record{{ID: "subj"}, {ID: "other"}}
	}

	strategies := []Strategy[testSubject]{
		{Name: "only", Ready: ready, Query: queryFor("only"), Match: matchAll},
	}

	match, err := runPipeline(context.Background(), store, "contacts", "subj",
		testSubject{id: "subj"}, strategies, nil, 10)
	require.NoError(t, err)

	require.Len(t, match.Candidates, 1)
	assert.Equal(t, "other", match.Candidates[0].ID)
}

func TestRunPipelineAdvancesPastFilteredOutCandidates(t *testing.T) {
	logging.DisableLoggingForTest(t)

	store := newFakeStore()
	store.respond = func(string, hubspot.SearchRequest) []hubspot.Record {
		return []hubspot.Record{{ID: "near-miss"}}
	}

	// The first strategy returns candidates but its local predicate
	// rejects them all; the cascade must keep going.
	strategies := []Strategy[testSubject]{
		{Name: "strict", Ready: ready, Query: queryFor("strict"), Match: matchNone},
		{Name: "loose", Ready: ready, Query: queryFor("loose"), Match: matchAll},
	}

	match, err := runPipeline(context.Background(), store, "contacts", "subj",
		testSubject{}, strategies, nil, 10)
	require.NoError(t, err)

	assert.Equal(t, "loose", match.Strategy)
	assert.Equal(t, 2, match.Searches)
}

func TestRunPipelineExhaustedCascade(t *testing.T) {
	logging.DisableLoggingForTest(t)

	store := newFakeStore()

	strategies := []Strategy[testSubject]{
		{Name: "a", Ready: ready, Query: queryFor("a"), Match: matchAll},
		{Name: "b", Ready: ready, Query: queryFor("b"), Match: matchAll},
	}

	match, err := runPipeline(context.Background(), store, "contacts", "subj",
		testSubject{}, strategies, nil, 10)
	require.NoError(t, err)

	assert.Empty(t, match.Strategy)
	assert.Empty(t, match.Candidates)
	assert.Equal(t, 2, match.Searches)
}

func TestRunPipelineStampsLimitAndProperties(t *testing.T) {
	logging.DisableLoggingForTest(t)

	store := newFakeStore()

	strategies := []Strategy[testSubject]{
		{Name: "only", Ready: ready, Query: queryFor("only"), Match: matchAll},
	}

	_, err := runPipeline(context.Background(), store, "contacts", "subj",
		testSubject{}, strategies, []string{"email", "phone"}, 10)
	require.NoError(t, err)

	require.Len(t, store.searchCalls, 1)
	assert.Equal(t, 10, store.searchCalls[0].Limit)
	assert.Equal(t, []string{"email", "phone"}, store.searchCalls[0].Properties)
}

func TestRunPipelineSearchErrorTerminates(t *testing.T) {
	logging.DisableLoggingForTest(t)

	store := newFakeStore()
	store.searchErr = errors.NewAPIError("contacts", "/search", 500, "boom")

	strategies := []Strategy[testSubject]{
		{Name: "a", Ready: ready, Query: queryFor("a"), Match: matchAll},
		{Name: "b", Ready: ready, Query: queryFor("b"), Match: matchAll},
	}

	match, err := runPipeline(context.Background(), store, "contacts", "subj",
		testSubject{}, strategies, nil, 10)
	require.Error(t, err)
	assert.Equal(t, 1, match.Searches, "a search error stops the cascade")
}
