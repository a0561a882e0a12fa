package Iservices

import (
	"context"

	"collection-connector/internal/domain/entities"
)

// IConversationMemory is one user's session state for the duration of a
// turn. Mutators operate on the in-memory copy obtained from Load; Save is
// the only operation that writes back to the store.
type IConversationMemory interface {
	// IsNew reports whether the state was freshly created because nothing
	// (or nothing decodable) was stored for the user.
	IsNew() bool
	Messages() []entities.ChatMessage
	Clients() map[string]entities.Client
	Collections() map[string]entities.Collection
	AppendUserMessage(content string)
	AppendAssistantMessage(content string)
	// UpsertClient replaces any existing client holding the same id before
	// inserting, regardless of the map key the old entry sat under.
	UpsertClient(client entities.Client)
	UpsertCollection(collection entities.Collection)
	RemoveCollection(id string)
	// Save persists the full state with a refreshed session TTL.
	Save(ctx context.Context) error
}

type IMemoryService interface {
	Load(ctx context.Context, userID string) (IConversationMemory, error)
}
