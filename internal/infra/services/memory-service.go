package services

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"collection-connector/internal/domain/entities"
	Iservices "collection-connector/internal/domain/interfaces/services"
	"collection-connector/internal/infra/logger"
	"collection-connector/internal/infra/store"

	"github.com/sirupsen/logrus"
)

const (
	conversationKeyPrefix = "conversation"
	userKeyPrefix         = "user"
)

// MemoryService hands out per-user conversation memory handles. The session
// TTL is refreshed on every save, so it acts as a sliding inactivity expiry
// rather than a fixed session length.
type MemoryService struct {
	Store      store.SessionStore
	Logger     *logger.Logger
	SessionTTL time.Duration
}

func NewMemoryService(sessionStore store.SessionStore, logger *logger.Logger, sessionTTL time.Duration) *MemoryService {
	return &MemoryService{Store: sessionStore, Logger: logger, SessionTTL: sessionTTL}
}

func conversationKey(userID string) string {
	return fmt.Sprintf("%s:%s", conversationKeyPrefix, userID)
}

func userKey(userID string) string {
	return fmt.Sprintf("%s:%s", userKeyPrefix, userID)
}

// Load fetches the user's conversation state. Absent or undecodable
// payloads yield a fresh empty state; only store unavailability is an error.
func (ms *MemoryService) Load(ctx context.Context, userID string) (Iservices.IConversationMemory, error) {
	state := entities.NewConversationState()
	isNew := true

	raw, err := ms.Store.Get(ctx, conversationKey(userID))
	switch {
	case err == nil:
		if uerr := json.Unmarshal([]byte(raw), state); uerr != nil {
			ms.Logger.Warn("Discarding undecodable conversation state", logrus.Fields{"user_id": userID, "error": uerr.Error()})
			state = entities.NewConversationState()
		} else {
			isNew = false
		}
	case errors.Is(err, store.ErrNotFound):
	default:
		return nil, fmt.Errorf("memory: load conversation for %s: %w", userID, err)
	}

	if state.Clients == nil {
		state.Clients = map[string]entities.Client{}
	}
	if state.Collections == nil {
		state.Collections = map[string]entities.Collection{}
	}

	return &ConversationMemory{
		store:      ms.Store,
		logger:     ms.Logger,
		sessionTTL: ms.SessionTTL,
		userID:     userID,
		state:      state,
		isNew:      isNew,
	}, nil
}

// ConversationMemory owns the read-mutate-write cycle for one user's state
// across a turn. All mutators work on the in-memory copy; Save is the single
// store write.
type ConversationMemory struct {
	store      store.SessionStore
	logger     *logger.Logger
	sessionTTL time.Duration
	userID     string
	state      *entities.ConversationState
	isNew      bool
}

func (m *ConversationMemory) IsNew() bool {
	return m.isNew
}

func (m *ConversationMemory) Messages() []entities.ChatMessage {
	return m.state.Messages
}

func (m *ConversationMemory) Clients() map[string]entities.Client {
	return m.state.Clients
}

func (m *ConversationMemory) Collections() map[string]entities.Collection {
	return m.state.Collections
}

func (m *ConversationMemory) AppendUserMessage(content string) {
	m.appendMessage(entities.RoleUser, content)
}

func (m *ConversationMemory) AppendAssistantMessage(content string) {
	m.appendMessage(entities.RoleAssistant, content)
}

func (m *ConversationMemory) appendMessage(role, content string) {
	m.state.Messages = append(m.state.Messages, entities.ChatMessage{
		Role:      role,
		Content:   content,
		Timestamp: time.Now().UTC(),
	})
}

// UpsertClient replaces, never merges: an existing entry holding the same
// client id is removed first even if it sits under a different map key, so a
// changed key shape cannot leave a stale duplicate. The phone-derived id is
// the join key the sync collaborators rely on.
func (m *ConversationMemory) UpsertClient(client entities.Client) {
	for key, existing := range m.state.Clients {
		if existing.ID == client.ID {
			delete(m.state.Clients, key)
			break
		}
	}
	m.state.Clients[client.ID] = client
}

func (m *ConversationMemory) UpsertCollection(collection entities.Collection) {
	m.state.Collections[collection.ID] = collection
}

func (m *ConversationMemory) RemoveCollection(id string) {
	delete(m.state.Collections, id)
}

// Save serializes the full state back with a refreshed session TTL and
// slides the cached user record's expiry along with it.
func (m *ConversationMemory) Save(ctx context.Context) error {
	data, err := json.Marshal(m.state)
	if err != nil {
		return fmt.Errorf("memory: encode conversation for %s: %w", m.userID, err)
	}
	if err := m.store.Set(ctx, conversationKey(m.userID), string(data), m.sessionTTL); err != nil {
		return fmt.Errorf("memory: persist conversation for %s: %w", m.userID, err)
	}
	if err := m.store.RefreshTTL(ctx, userKey(m.userID), m.sessionTTL); err != nil {
		m.logger.Warn("Failed to refresh user session TTL", logrus.Fields{"user_id": m.userID, "error": err.Error()})
	}
	m.isNew = false
	return nil
}
