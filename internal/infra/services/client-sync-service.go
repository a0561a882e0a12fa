package services

import (
	"context"
	"fmt"

	"collection-connector/internal/domain/dto"
	"collection-connector/internal/domain/entities"
	Iservices "collection-connector/internal/domain/interfaces/services"
	"collection-connector/internal/infra/logger"

	"github.com/sirupsen/logrus"
)

// ClientSyncService ingests bulk client replacements from the platform into
// a user's live session memory. Sessions without client state are left
// untouched: the sync only patches sessions that are mid-conversation.
type ClientSyncService struct {
	Logger *logger.Logger
	Memory Iservices.IMemoryService
}

func NewClientSyncService(logger *logger.Logger, memory Iservices.IMemoryService) *ClientSyncService {
	return &ClientSyncService{Logger: logger, Memory: memory}
}

func (cs *ClientSyncService) SyncClients(ctx context.Context, items []dto.ClientSyncItem) ([]string, error) {
	clients := make([]entities.Client, 0, len(items))
	var invalid []dto.InvalidSyncItem
	userPhoneNumber := ""

	for idx, item := range items {
		if missing := item.MissingFields(); len(missing) > 0 {
			invalid = append(invalid, dto.InvalidSyncItem{Index: idx, MissingFields: missing})
			continue
		}

		userPhoneNumber = *item.UserPhoneNumber
		clients = append(clients, entities.Client{
			ID:          *item.PrefixPhone + *item.PhoneNumber,
			Name:        *item.Name,
			Surname:     *item.Surname,
			CodePhone:   *item.CodePhone,
			PrefixPhone: *item.PrefixPhone,
			PhoneNumber: *item.PhoneNumber,
			Email:       *item.Email,
			CreditorID:  *item.UserID,
			RawID:       *item.ID,
		})
	}

	if len(invalid) > 0 {
		cs.Logger.Warn("Client sync validation errors", logrus.Fields{"invalid_items": len(invalid)})
		return nil, &dto.SyncValidationError{Items: invalid}
	}
	if len(clients) == 0 {
		return []string{}, nil
	}

	cs.Logger.Info(fmt.Sprintf("Saving clients for session: %s", userPhoneNumber))
	memory, err := cs.Memory.Load(ctx, userPhoneNumber)
	if err != nil {
		return nil, err
	}
	if len(memory.Clients()) == 0 {
		cs.Logger.Info(fmt.Sprintf("No active client session for %s, skipping sync", userPhoneNumber))
		return []string{}, nil
	}

	synced := make([]string, 0, len(clients))
	for _, client := range clients {
		for _, existing := range memory.Clients() {
			if existing.RawID == client.RawID {
				cs.refreshClientInCollections(memory, client)
				break
			}
		}
		memory.UpsertClient(client)
		synced = append(synced, client.ID)
	}

	if err := memory.Save(ctx); err != nil {
		return nil, err
	}
	cs.Logger.Info("Clients saved successfully")
	return synced, nil
}

// refreshClientInCollections keeps the denormalized client display fields on
// collections in step with a replaced client entity. Stale copies would leak
// an outdated name or phone into agent answers.
func (cs *ClientSyncService) refreshClientInCollections(memory Iservices.IConversationMemory, client entities.Client) {
	for _, collection := range memory.Collections() {
		if collection.ClientID == client.RawID {
			cs.Logger.Info(fmt.Sprintf("Update data client %s in collection", client.Name))
			collection.ClientCellphone = client.FullPhoneNumber()
			collection.ClientFullName = client.FullName()
			memory.UpsertCollection(collection)
		}
	}
}
