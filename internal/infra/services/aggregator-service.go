package services

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"collection-connector/internal/domain/entities"
	"collection-connector/internal/infra/logger"
	"collection-connector/internal/infra/store"

	"github.com/sirupsen/logrus"
)

const burstKeyPrefix = "whatsapp_buffer"

// AggregatorService buffers inbound fragments per user and converts each
// burst into exactly one downstream turn. The debounce is a fixed-delay
// window started independently by every fragment's handler: several waiters
// may be outstanding for one burst and the store's atomic read-and-delete
// decides which of them delivers it.
type AggregatorService struct {
	Store     store.SessionStore
	Logger    *logger.Logger
	BufferTTL time.Duration
}

func NewAggregatorService(sessionStore store.SessionStore, logger *logger.Logger, bufferTTL time.Duration) *AggregatorService {
	return &AggregatorService{Store: sessionStore, Logger: logger, BufferTTL: bufferTTL}
}

func burstKey(userID string) string {
	return fmt.Sprintf("%s:%s", burstKeyPrefix, userID)
}

// Buffer appends one fragment to the user's pending burst and persists it
// with the buffer TTL. A burst abandoned by its waiters (handler crash)
// expires on its own; there is no retry of lost bursts.
//
// Two concurrent Buffer calls for the same user can race on the
// read-modify-write and lose one fragment. That is an accepted tradeoff;
// serializing per-user mutation upstream is the deployment's job.
func (as *AggregatorService) Buffer(ctx context.Context, userID string, fragment entities.Fragment) error {
	key := burstKey(userID)

	var burst entities.PendingBurst
	raw, err := as.Store.Get(ctx, key)
	switch {
	case err == nil:
		if uerr := json.Unmarshal([]byte(raw), &burst); uerr != nil {
			as.Logger.Warn("Discarding undecodable pending burst", logrus.Fields{"user_id": userID, "error": uerr.Error()})
			burst = entities.PendingBurst{}
		}
	case errors.Is(err, store.ErrNotFound):
		// first fragment of a new burst
	default:
		return fmt.Errorf("aggregator: load burst for %s: %w", userID, err)
	}

	burst.Append(fragment)

	data, err := json.Marshal(burst)
	if err != nil {
		return fmt.Errorf("aggregator: encode burst for %s: %w", userID, err)
	}
	if err := as.Store.Set(ctx, key, string(data), as.BufferTTL); err != nil {
		return fmt.Errorf("aggregator: persist burst for %s: %w", userID, err)
	}
	return nil
}

// AwaitTurn suspends for the debounce window, then performs one atomic
// read-and-delete of the pending burst. Absence (already consumed by a
// concurrent waiter, or never buffered) is the waiting outcome and must be
// treated as side-effect free by callers. Store unavailability propagates;
// it is never reported as waiting.
func (as *AggregatorService) AwaitTurn(ctx context.Context, userID string, window time.Duration) (entities.TurnResult, error) {
	timer := time.NewTimer(window)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return entities.TurnResult{Status: entities.TurnWaiting}, ctx.Err()
	case <-timer.C:
	}

	raw, err := as.Store.GetDel(ctx, burstKey(userID))
	if errors.Is(err, store.ErrNotFound) {
		return entities.TurnResult{Status: entities.TurnWaiting}, nil
	}
	if err != nil {
		return entities.TurnResult{}, fmt.Errorf("aggregator: consume burst for %s: %w", userID, err)
	}

	var burst entities.PendingBurst
	if uerr := json.Unmarshal([]byte(raw), &burst); uerr != nil {
		as.Logger.Warn("Consumed undecodable pending burst", logrus.Fields{"user_id": userID, "error": uerr.Error()})
		return entities.TurnResult{Status: entities.TurnWaiting}, nil
	}

	result := entities.TurnResult{
		Status:    entities.TurnComplete,
		Text:      strings.TrimSpace(burst.TextBuffer),
		Fragments: burst.Fragments,
	}
	if burst.InternalFailure {
		result.Status = entities.TurnInternalFailure
		result.FailureContext = burst.FailureContext
	}
	return result, nil
}
