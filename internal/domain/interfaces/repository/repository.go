package repository

import "context"

type Repository[T any] interface {
	Create(ctx context.Context, collectionName string, entity T) (T, error)
	FindBySender(ctx context.Context, collectionName string, sender string) ([]T, error)
	FindByInvokeID(ctx context.Context, collectionName string, invokeID string) ([]T, error)
	FindAll(ctx context.Context, collectionName string) ([]T, error)
}
