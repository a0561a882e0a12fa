package provider

import (
	"context"

	"collection-connector/internal/domain/dto"
	"collection-connector/internal/domain/entities"
)

type IWhatsAppProvider interface {
	SendTextMessage(ctx context.Context, to, message string) error
}

// IAccountProvider is the external platform used to type senders and to
// seed a fresh session with their clients and collections.
type IAccountProvider interface {
	// GetAccount returns nil without error for senders the platform does
	// not know.
	GetAccount(ctx context.Context, userID string) (*dto.Account, error)
	GetClients(ctx context.Context, userID string) ([]entities.Client, error)
	GetCollections(ctx context.Context, userID string) ([]entities.Collection, error)
}
