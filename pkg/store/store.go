// Package store is the narrow boundary to the external graph database.
// It sends validated query text and returns typed rows or a typed error;
// no retries happen here, because only the caller knows whether a retry
// should reuse the query or re-plan it.
package store

import (
	"context"

	"github.com/yatender-oktalk/OpenDeepSearch-sub000/pkg/types"
)

// Client executes validated queries against a graph store.
type Client interface {
	// Execute runs the query and returns its rows. Failures are always
	// *types.StoreError; zero rows with a nil error is a valid outcome
	// and must never be conflated with a store failure.
	Execute(ctx context.Context, query *types.GeneratedQuery) ([]types.ResultRecord, error)

	// Close releases the underlying connection.
	Close(ctx context.Context) error
}
