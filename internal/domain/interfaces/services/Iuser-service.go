package Iservices

import (
	"context"

	"collection-connector/internal/domain/entities"
)

type IUserService interface {
	// GetOrCreateUser returns the cached session user or builds one from the
	// account provider, minting a fresh session id.
	GetOrCreateUser(ctx context.Context, userID string, forceAnonymous bool) (entities.User, error)
}
