package Iservices

import (
	"context"

	"collection-connector/internal/domain/dto"
)

// IClientSyncService replaces counterparty entities for a user's live
// session from an external bulk payload.
type IClientSyncService interface {
	SyncClients(ctx context.Context, items []dto.ClientSyncItem) ([]string, error)
}

// ICollectionSyncService replaces or removes collection entities for a
// user's live session from an external bulk payload.
type ICollectionSyncService interface {
	SyncCollections(ctx context.Context, items []dto.CollectionSyncItem) ([]string, error)
}
