package dedupe

import (
	"context"
	"net/http"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/peted77/hubspot-fun/internal/hubspot"
	"github.com/peted77/hubspot-fun/pkg/errors"
	"github.com/peted77/hubspot-fun/pkg/logging"
)

func TestRetryThrottledBackoffDoubles(t *testing.T) {
	logging.DisableLoggingForTest(t)

	store := newFakeStore()
	store.mergeErrs = []error{throttledErr(), throttledErr(), nil}
	engine, slept := newTestEngine(store)

	err := engine.mergeTarget(context.Background(), hubspot.ObjectTypeContacts, "1", "2")
	require.NoError(t, err)

	assert.Len(t, store.mergeCalls, 3, "throttled attempts should be retried")
	require.Len(t, *slept, 2)
	assert.Equal(t, 10*time.Millisecond, (*slept)[0])
	assert.Equal(t, 20*time.Millisecond, (*slept)[1], "each backoff doubles the previous one")
}

func TestRetryThrottledGivesUpAfterBudget(t *testing.T) {
	logging.DisableLoggingForTest(t)

	store := newFakeStore()
	store.mergeErrs = []error{throttledErr(), throttledErr(), throttledErr(), throttledErr()}
	engine, slept := newTestEngine(store)

	err := engine.mergeTarget(context.Background(), hubspot.ObjectTypeContacts, "1", "2")
	require.Error(t, err)
	assert.True(t, errors.IsRateLimited(err))

	var mergeErr *errors.MergeError
	require.True(t, errors.As(err, &mergeErr))
	assert.Equal(t, "1", mergeErr.PrimaryID)
	assert.Equal(t, "2", mergeErr.MergedID)

	assert.Len(t, store.mergeCalls, 3, "attempt budget is bounded")
	assert.Len(t, *slept, 2, "no sleep after the final attempt")
}

func TestRetryThrottledOnlyRetriesRateLimits(t *testing.T) {
	logging.DisableLoggingForTest(t)

	store := newFakeStore()
	store.mergeErrs = []error{errors.NewAPIError("contacts", "/merge", http.StatusInternalServerError, "boom")}
	engine, slept := newTestEngine(store)

	err := engine.mergeTarget(context.Background(), hubspot.ObjectTypeContacts, "1", "2")
	require.Error(t, err)

	assert.Len(t, store.mergeCalls, 1, "server errors are not retried")
	assert.Empty(t, *slept)
}

func TestExecuteMergesContinuesPastFailures(t *testing.T) {
	logging.DisableLoggingForTest(t)

	store := newFakeStore()
	store.mergeErrs = []error{
		nil,
		errors.NewAPIError("companies", "/merge", http.StatusInternalServerError, "boom"),
		nil,
	}
	engine, _ := newTestEngine(store)

	result := newRunResult(hubspot.ObjectTypeCompanies, "s")
	engine.executeMerges(context.Background(), hubspot.ObjectTypeCompanies, "s", []string{"a", "b", "c"}, result)

	assert.Equal(t, []string{"a", "c"}, result.MergedIDs)
	assert.Equal(t, []string{"b"}, result.FailedIDs)
	assert.Equal(t, [][2]string{{"s", "a"}, {"s", "b"}, {"s", "c"}}, store.mergeCalls,
		"targets are merged strictly in order")
}
