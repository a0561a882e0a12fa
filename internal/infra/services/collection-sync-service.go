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

// CollectionSyncService ingests bulk collection replacements from the
// platform into a user's live session memory. Inactive entries are removed,
// active ones are upserted by id.
type CollectionSyncService struct {
	Logger *logger.Logger
	Memory Iservices.IMemoryService
}

func NewCollectionSyncService(logger *logger.Logger, memory Iservices.IMemoryService) *CollectionSyncService {
	return &CollectionSyncService{Logger: logger, Memory: memory}
}

func (cs *CollectionSyncService) SyncCollections(ctx context.Context, items []dto.CollectionSyncItem) ([]string, error) {
	collections := make([]entities.Collection, 0, len(items))
	var invalid []dto.InvalidSyncItem
	userPhoneNumber := ""

	for idx, item := range items {
		if missing := item.MissingFields(); len(missing) > 0 {
			invalid = append(invalid, dto.InvalidSyncItem{Index: idx, MissingFields: missing})
			continue
		}

		userPhoneNumber = *item.UserPhoneNumber
		collections = append(collections, entities.Collection{
			ID:                *item.ID,
			ClientID:          *item.ClientID,
			ClientCellphone:   *item.ClientPhone,
			ClientFullName:    *item.ClientFullName,
			CreditorID:        *item.UserID,
			CreditorCellphone: *item.UserPhoneNumber,
			CreditorFullName:  *item.UserFullName,
			Status:            *item.PaymentStatus,
			Description:       *item.Description,
			Currency:          *item.Currency,
			Amount:            *item.Amount,
			CollectionDate:    *item.CollectionDate,
			PaymentDate:       *item.PaymentDate,
			TotalQuotas:       *item.TotalQuotas,
			QuotaNumber:       *item.NumberQuota,
			FrequencyPayment:  *item.FrequencyPayment,
			Active:            *item.Active,
		})
	}

	if len(invalid) > 0 {
		cs.Logger.Warn("Collection sync validation errors", logrus.Fields{"invalid_items": len(invalid)})
		return nil, &dto.SyncValidationError{Items: invalid}
	}
	if len(collections) == 0 {
		return []string{}, nil
	}

	cs.Logger.Info(fmt.Sprintf("Saving collections for session: %s", userPhoneNumber))
	memory, err := cs.Memory.Load(ctx, userPhoneNumber)
	if err != nil {
		return nil, err
	}
	if len(memory.Collections()) == 0 {
		cs.Logger.Info(fmt.Sprintf("No active collection session for %s, skipping sync", userPhoneNumber))
		return []string{}, nil
	}

	synced := make([]string, 0, len(collections))
	for _, collection := range collections {
		if !collection.Active {
			memory.RemoveCollection(collection.ID)
			continue
		}
		memory.UpsertCollection(collection)
		synced = append(synced, collection.ID)
	}

	if err := memory.Save(ctx); err != nil {
		return nil, err
	}
	cs.Logger.Info("Collections saved successfully")
	return synced, nil
}
