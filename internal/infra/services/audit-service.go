package services

import (
	"context"
	"fmt"
	"time"

	"collection-connector/internal/domain/entities"
	"collection-connector/internal/domain/interfaces/repository"
	"collection-connector/internal/infra/logger"
)

const auditCollection = "Messages"

// AuditService writes the message trail: every raw fragment of a consumed
// burst plus one record per produced turn. Audit failures are logged and
// never fail the turn, so a burst that ends in internal failure still leaves
// both the rejected input and the synthesized failure output on record.
type AuditService struct {
	Logger     *logger.Logger
	Repository repository.Repository[entities.AuditMessage]
}

func NewAuditService(logger *logger.Logger, repo repository.Repository[entities.AuditMessage]) *AuditService {
	return &AuditService{Logger: logger, Repository: repo}
}

func (as *AuditService) RecordFragments(ctx context.Context, user entities.User, invokeID string, fragments []entities.Fragment) {
	for _, fragment := range fragments {
		sender := user.UserID
		if !fragment.OCRSucceeded {
			sender = entities.AuditSenderOCR
		}
		record := entities.AuditMessage{
			Type:       string(fragment.Kind),
			Message:    fragment.Text,
			Sender:     sender,
			MediaURL:   fragment.MediaURL,
			TypeUser:   string(user.Type),
			UserID:     user.UserID,
			InvokeID:   invokeID,
			Date:       fragment.ReceivedAt,
			OCRContext: fragment.OCRContext,
			SessionID:  user.CurrentSessionID,
		}
		as.create(ctx, record)
	}
}

func (as *AuditService) RecordOutcome(ctx context.Context, user entities.User, invokeID, text string) {
	record := entities.AuditMessage{
		Type:      string(entities.KindText),
		Message:   text,
		Sender:    entities.AuditSenderAssistant,
		TypeUser:  entities.AuditSenderAssistant,
		UserID:    user.UserID,
		InvokeID:  invokeID,
		Date:      time.Now().UTC(),
		SessionID: user.CurrentSessionID,
	}
	as.create(ctx, record)
}

func (as *AuditService) create(ctx context.Context, record entities.AuditMessage) {
	if _, err := as.Repository.Create(ctx, auditCollection, record); err != nil {
		as.Logger.Error(fmt.Sprintf("Error saving audit message for %s: %v", record.UserID, err))
	}
}
