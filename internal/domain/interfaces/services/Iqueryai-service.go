package Iservices

import (
	"context"

	"collection-connector/internal/domain/dto"
)

type IQueryAIService interface {
	ExecuteQueryAI(ctx context.Context, request dto.QueryAIRequest) (dto.QueryAIResponse, error)
}
