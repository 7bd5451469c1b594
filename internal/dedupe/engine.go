package dedupe

import (
	"context"
	"time"
)

// Policy carries the engine's fixed operating constants. The zero
// value is replaced field-by-field with the defaults below.
type Policy struct {
	// SearchLimit caps every candidate search page.
	SearchLimit int

	// WriteAttempts bounds merge and update retries on throttling.
	WriteAttempts int

	// RetryBase is the first backoff delay; it doubles per attempt.
	RetryBase time.Duration

	// FuzzyNameThreshold is the similarity a company name pair must
	// exceed for the fuzzy tier to accept it.
	FuzzyNameThreshold float64
}

// DefaultPolicy returns the engine's standard operating constants.
func DefaultPolicy() Policy {
	return Policy{
		SearchLimit:        10,
		WriteAttempts:      3,
		RetryBase:          time.Second,
		FuzzyNameThreshold: 0.9,
	}
}

// withDefaults fills zero fields from DefaultPolicy.
func (p Policy) withDefaults() Policy {
	defaults := DefaultPolicy()
	if p.SearchLimit <= 0 {
		p.SearchLimit = defaults.SearchLimit
	}
	if p.WriteAttempts <= 0 {
		p.WriteAttempts = defaults.WriteAttempts
	}
	if p.RetryBase <= 0 {
		p.RetryBase = defaults.RetryBase
	}
	if p.FuzzyNameThreshold <= 0 {
		p.FuzzyNameThreshold = defaults.FuzzyNameThreshold
	}
	return p
}

// Engine resolves duplicate records against a Store. Both entity
// flavors share one engine; each resolution run is a pure function of
// the enrolled record's current state plus whatever the store returns.
// Runs may execute concurrently; the engine keeps no mutable state
// across them.
type Engine struct {
	store  Store
	policy Policy

	contactCascade []Strategy[ContactSubject]
	companyCascade []Strategy[CompanySubject]

	// sleep suspends between retries; injectable for tests.
	sleep func(context.Context, time.Duration) error
}

// New creates an engine over the given store.
func New(store Store, policy Policy) *Engine {
	policy = policy.withDefaults()
	return &Engine{
		store:          store,
		policy:         policy,
		contactCascade: contactStrategies(),
		companyCascade: companyStrategies(policy.FuzzyNameThreshold),
		sleep:          sleepContext,
	}
}

// sleepContext pauses for d or until the context is done.
func sleepContext(ctx context.Context, d time.Duration) error {
	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}
