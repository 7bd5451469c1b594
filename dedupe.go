// Package hubspotfun resolves and merges duplicate CRM contact and
// company records. A Deduper wraps the resolution engine behind a
// small interface: enroll a record by ID, get back a structured run
// result describing what matched and what was merged.
package hubspotfun

import (
	"context"
	"fmt"

	"github.com/peted77/hubspot-fun/internal/dedupe"
	"github.com/peted77/hubspot-fun/internal/hubspot"
)

// RunResult is the structured outcome of one resolution run.
type RunResult = dedupe.RunResult

// Result statuses, re-exported for callers switching on outcomes.
const (
	StatusMerged    = dedupe.StatusMerged
	StatusNoMatch   = dedupe.StatusNoMatch
	StatusAmbiguous = dedupe.StatusAmbiguous
	StatusSkipped   = dedupe.StatusSkipped
	StatusError     = dedupe.StatusError
)

// Deduper resolves duplicates for enrolled records. Implementations
// are safe for concurrent use; every call is one independent run.
type Deduper interface {
	// Contact resolves duplicates for one contact by record ID.
	Contact(ctx context.Context, id string) *RunResult

	// Company resolves duplicates for one company by record ID.
	Company(ctx context.Context, id string) *RunResult
}

// deduper is the internal implementation of the Deduper interface.
type deduper struct {
	engine *dedupe.Engine
}

// New creates a new Deduper with the given options. Unless WithStore
// is supplied, an access token is required and calls go to the live
// CRM API.
func New(opts ...Option) (Deduper, error) {
	c := &cfg{}
	for _, opt := range opts {
		if err := opt(c); err != nil {
			return nil, fmt.Errorf("applying options: %w", err)
		}
	}

	store := c.store
	if store == nil {
		clientOpts := []hubspot.ClientOption{}
		if c.baseURL != "" {
			clientOpts = append(clientOpts, hubspot.WithBaseURL(c.baseURL))
		}
		if c.httpClient != nil {
			clientOpts = append(clientOpts, hubspot.WithHTTPClient(c.httpClient))
		}
		if c.callSpacing > 0 {
			clientOpts = append(clientOpts, hubspot.WithCallSpacing(c.callSpacing))
		}
		client, err := hubspot.NewClient(c.accessToken, clientOpts...)
		if err != nil {
			return nil, err
		}
		store = client
	}

	return &deduper{engine: dedupe.New(store, c.policy)}, nil
}

// Contact implements Deduper.
func (d *deduper) Contact(ctx context.Context, id string) *RunResult {
	return d.engine.ResolveContact(ctx, id)
}

// Company implements Deduper.
func (d *deduper) Company(ctx context.Context, id string) *RunResult {
	return d.engine.ResolveCompany(ctx, dedupe.CompanyInput{ID: id})
}
