// Package dedupe implements the entity-resolution and merge-decision
// engine: an ordered cascade of match strategies over CRM search
// results, deterministic survivor selection, and a merge executor with
// rate-limit-aware retry. The engine is a pure decision layer; record
// state lives in the remote store behind the Store interface.
package dedupe

import (
	"context"

	"github.com/peted77/hubspot-fun/internal/hubspot"
)

// Store is the remote record store the engine resolves against.
// *hubspot.Client satisfies it; tests substitute an in-memory fake.
type Store interface {
	// FetchRecord retrieves one record with the requested properties.
	FetchRecord(ctx context.Context, objectType, id string, properties []string) (*hubspot.Record, error)

	// Search runs one candidate query and returns the result page.
	Search(ctx context.Context, objectType string, req hubspot.SearchRequest) ([]hubspot.Record, error)

	// Update patches a record's properties.
	Update(ctx context.Context, objectType, id string, properties map[string]string) error

	// Merge merges the secondary record into the primary.
	Merge(ctx context.Context, objectType, primaryID, secondaryID string) error
}
