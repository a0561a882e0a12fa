package Iservices

import (
	"context"

	"collection-connector/internal/domain/entities"
)

// IAuditService writes the message audit trail. Failures are logged by the
// implementation and never fail the turn.
type IAuditService interface {
	RecordFragments(ctx context.Context, user entities.User, invokeID string, fragments []entities.Fragment)
	RecordOutcome(ctx context.Context, user entities.User, invokeID, text string)
}
