package Iservices

import (
	"context"

	"collection-connector/internal/domain/dto"
	"collection-connector/internal/domain/entities"
)

// IFragmentParser reduces one inbound delivery to a text fragment,
// dispatching per message kind (OCR for media, card rendering for contacts).
type IFragmentParser interface {
	Parse(ctx context.Context, payload *dto.InboundMessage, user entities.User) (entities.Fragment, error)
}
