package services

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"collection-connector/internal/domain/dto"
	"collection-connector/internal/domain/entities"
	"collection-connector/internal/infra/logger"
	"collection-connector/internal/infra/provider"
	"collection-connector/internal/infra/store"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
)

// UserService caches the per-sender session user in the store and types new
// senders through the account provider.
type UserService struct {
	Store      store.SessionStore
	Logger     *logger.Logger
	Accounts   provider.IAccountProvider
	SessionTTL time.Duration
}

func NewUserService(sessionStore store.SessionStore, logger *logger.Logger, accounts provider.IAccountProvider, sessionTTL time.Duration) *UserService {
	return &UserService{Store: sessionStore, Logger: logger, Accounts: accounts, SessionTTL: sessionTTL}
}

func (us *UserService) GetOrCreateUser(ctx context.Context, userID string, forceAnonymous bool) (entities.User, error) {
	raw, err := us.Store.Get(ctx, userKey(userID))
	if err == nil {
		var user entities.User
		if uerr := json.Unmarshal([]byte(raw), &user); uerr == nil {
			return user, nil
		}
		us.Logger.Warn("Discarding undecodable cached user", logrus.Fields{"user_id": userID})
	} else if !errors.Is(err, store.ErrNotFound) {
		return entities.User{}, fmt.Errorf("users: load %s: %w", userID, err)
	}

	var account *dto.Account
	if !forceAnonymous {
		account, err = us.Accounts.GetAccount(ctx, userID)
		if err != nil {
			return entities.User{}, fmt.Errorf("users: resolve account %s: %w", userID, err)
		}
	}

	user := entities.User{
		UserID:           userID,
		Name:             "Unknown",
		Type:             entities.UserAnonymous,
		CurrentSessionID: uuid.NewString(),
	}
	if account != nil {
		user.Name = account.Name
		user.IsPlatformUser = true
		user.IsEnterprise = account.IsEnterprise
		user.Type = entities.UserCreditor
		if account.IsEnterprise {
			user.Type = entities.UserEnterprise
		}
	}

	data, err := json.Marshal(user)
	if err != nil {
		return entities.User{}, fmt.Errorf("users: encode %s: %w", userID, err)
	}
	if err := us.Store.Set(ctx, userKey(userID), string(data), us.SessionTTL); err != nil {
		return entities.User{}, fmt.Errorf("users: persist %s: %w", userID, err)
	}
	return user, nil
}
