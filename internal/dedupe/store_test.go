package dedupe

import (
	"context"
	"net/http"
	"strconv"
	"time"

	"github.com/peted77/hubspot-fun/internal/hubspot"
	"github.com/peted77/hubspot-fun/pkg/errors"
)

// fakeStore is the in-memory Store used by engine tests. Search
// results come from the respond callback; write failures are queued
// per call so tests can script throttling sequences.
type fakeStore struct {
	records map[string]hubspot.Record // keyed objectType/id

	respond   func(objectType string, req hubspot.SearchRequest) []hubspot.Record
	searchErr error

	searchCalls []hubspot.SearchRequest
	updateCalls []map[string]string
	mergeCalls  [][2]string // survivor, target

	updateErrs []error // popped per Update call; nil entry means success
	mergeErrs  []error // popped per Merge call; nil entry means success
}

func newFakeStore() *fakeStore {
	return &fakeStore{records: make(map[string]hubspot.Record)}
}

func (f *fakeStore) add(objectType string, rec hubspot.Record) {
	f.records[objectType+"/"+rec.ID] = rec
}

func (f *fakeStore) FetchRecord(_ context.Context, objectType, id string, _ []string) (*hubspot.Record, error) {
	rec, ok := f.records[objectType+"/"+id]
	if !ok {
		return nil, errors.NewNotFoundError(objectType, id)
	}
	return &rec, nil
}

func (f *fakeStore) Search(_ context.Context, objectType string, req hubspot.SearchRequest) ([]hubspot.Record, error) {
	f.searchCalls = append(f.searchCalls, req)
	if f.searchErr != nil {
		return nil, f.searchErr
	}
	if f.respond == nil {
		return nil, nil
	}
	return f.respond(objectType, req), nil
}

func (f *fakeStore) Update(_ context.Context, _, _ string, properties map[string]string) error {
	f.updateCalls = append(f.updateCalls, properties)
	return f.popErr(&f.updateErrs)
}

func (f *fakeStore) Merge(_ context.Context, _, primaryID, secondaryID string) error {
	f.mergeCalls = append(f.mergeCalls, [2]string{primaryID, secondaryID})
	return f.popErr(&f.mergeErrs)
}

func (f *fakeStore) popErr(queue *[]error) error {
	if len(*queue) == 0 {
		return nil
	}
	err := (*queue)[0]
	*queue = (*queue)[1:]
	return err
}

// throttledErr builds the 429 error shape the live client produces.
func throttledErr() error {
	return errors.NewAPIError("contacts", "/merge", http.StatusTooManyRequests, "throttled")
}

// newTestEngine builds an engine with fast retries and recorded sleeps.
func newTestEngine(store Store) (*Engine, *[]time.Duration) {
	engine := New(store, Policy{RetryBase: 10 * time.Millisecond})
	slept := &[]time.Duration{}
	engine.sleep = func(_ context.Context, d time.Duration) error {
		*slept = append(*slept, d)
		return nil
	}
	return engine, slept
}

// millis renders a time as the unix-milliseconds string the CRM uses.
func millis(t time.Time) string {
	return strconv.FormatInt(t.UnixMilli(), 10)
}
