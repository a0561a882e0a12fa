package Iservices

import (
	"context"

	"collection-connector/internal/domain/dto"
	"collection-connector/internal/domain/entities"
)

// IOCRService is the document-analysis collaborator. A failed extraction is
// reported in the result, not as an error; errors mean the backend itself
// was unreachable.
type IOCRService interface {
	ProcessImage(ctx context.Context, mediaURL, caption string, user entities.User) (dto.OCRResult, error)
	ProcessFile(ctx context.Context, mediaURL, mimeType string, user entities.User) (dto.OCRResult, error)
}
