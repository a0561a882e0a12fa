package Iservices

import (
	"context"
	"time"

	"collection-connector/internal/domain/entities"
)

// IAggregatorService merges rapid-fire fragment deliveries for one user into
// a single turn per burst.
type IAggregatorService interface {
	// Buffer appends one fragment to the user's pending burst. It never
	// blocks on the debounce window; it only accumulates.
	Buffer(ctx context.Context, userID string, fragment entities.Fragment) error
	// AwaitTurn sleeps for the debounce window and then performs a single
	// read-and-delete of the pending burst. Several concurrent callers may be
	// outstanding for the same burst; exactly one observes a non-waiting
	// result.
	AwaitTurn(ctx context.Context, userID string, window time.Duration) (entities.TurnResult, error)
}
