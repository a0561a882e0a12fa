package services

import (
	"context"
	"encoding/json"
	"errors"
	"testing"

	"github.com/stretchr/testify/require"

	"collection-connector/internal/domain/dto"
	"collection-connector/internal/domain/entities"
)

type countingAccounts struct {
	fakeAccounts
	account *dto.Account
	calls   int
}

func (c *countingAccounts) GetAccount(_ context.Context, _ string) (*dto.Account, error) {
	c.calls++
	return c.account, c.err
}

func newTestUserService(t *testing.T, fake *fakeSessionStore, accounts *countingAccounts) *UserService {
	return NewUserService(fake, newTestLogger(t), accounts, testSessionTTL)
}

func TestGetOrCreateUserTypesKnownCreditor(t *testing.T) {
	fake := newFakeSessionStore()
	accounts := &countingAccounts{account: &dto.Account{ID: "acc-1", Name: "Estudio Lopez"}}
	us := newTestUserService(t, fake, accounts)

	user, err := us.GetOrCreateUser(context.Background(), "51999", false)
	require.NoError(t, err)
	require.Equal(t, "51999", user.UserID)
	require.Equal(t, "Estudio Lopez", user.Name)
	require.Equal(t, entities.UserCreditor, user.Type)
	require.True(t, user.IsPlatformUser)
	require.False(t, user.IsEnterprise)
	require.NotEmpty(t, user.CurrentSessionID)

	require.Contains(t, fake.data, "user:51999")
	require.Equal(t, testSessionTTL, fake.ttls["user:51999"])
}

func TestGetOrCreateUserTypesEnterpriseAccount(t *testing.T) {
	fake := newFakeSessionStore()
	accounts := &countingAccounts{account: &dto.Account{ID: "acc-1", Name: "Cobranzas SAC", IsEnterprise: true}}
	us := newTestUserService(t, fake, accounts)

	user, err := us.GetOrCreateUser(context.Background(), "51999", false)
	require.NoError(t, err)
	require.Equal(t, entities.UserEnterprise, user.Type)
	require.True(t, user.IsEnterprise)
}

func TestGetOrCreateUserUnknownSenderIsAnonymous(t *testing.T) {
	fake := newFakeSessionStore()
	accounts := &countingAccounts{}
	us := newTestUserService(t, fake, accounts)

	user, err := us.GetOrCreateUser(context.Background(), "51999", false)
	require.NoError(t, err)
	require.Equal(t, entities.UserAnonymous, user.Type)
	require.Equal(t, "Unknown", user.Name)
	require.False(t, user.IsPlatformUser)
	require.Equal(t, 1, accounts.calls)
}

func TestGetOrCreateUserForceAnonymousSkipsAccountLookup(t *testing.T) {
	fake := newFakeSessionStore()
	accounts := &countingAccounts{account: &dto.Account{ID: "acc-1", Name: "Estudio Lopez"}}
	us := newTestUserService(t, fake, accounts)

	user, err := us.GetOrCreateUser(context.Background(), "51999", true)
	require.NoError(t, err)
	require.Equal(t, entities.UserAnonymous, user.Type)
	require.Zero(t, accounts.calls)
}

func TestGetOrCreateUserReturnsCachedSession(t *testing.T) {
	fake := newFakeSessionStore()
	accounts := &countingAccounts{account: &dto.Account{ID: "acc-1", Name: "Estudio Lopez"}}
	us := newTestUserService(t, fake, accounts)

	first, err := us.GetOrCreateUser(context.Background(), "51999", false)
	require.NoError(t, err)

	second, err := us.GetOrCreateUser(context.Background(), "51999", false)
	require.NoError(t, err)
	require.Equal(t, first, second)
	require.Equal(t, first.CurrentSessionID, second.CurrentSessionID)
	require.Equal(t, 1, accounts.calls)
}

func TestGetOrCreateUserRebuildsCorruptCacheEntry(t *testing.T) {
	fake := newFakeSessionStore()
	fake.data["user:51999"] = "{broken"
	accounts := &countingAccounts{account: &dto.Account{ID: "acc-1", Name: "Estudio Lopez"}}
	us := newTestUserService(t, fake, accounts)

	user, err := us.GetOrCreateUser(context.Background(), "51999", false)
	require.NoError(t, err)
	require.Equal(t, entities.UserCreditor, user.Type)

	var cached entities.User
	require.NoError(t, json.Unmarshal([]byte(fake.data["user:51999"]), &cached))
	require.Equal(t, user, cached)
}

func TestGetOrCreateUserStoreFailurePropagates(t *testing.T) {
	fake := newFakeSessionStore()
	fake.err = errors.New("redis unreachable")
	us := newTestUserService(t, fake, &countingAccounts{})

	_, err := us.GetOrCreateUser(context.Background(), "51999", false)
	require.Error(t, err)
}

func TestGetOrCreateUserAccountLookupFailurePropagates(t *testing.T) {
	fake := newFakeSessionStore()
	accounts := &countingAccounts{}
	accounts.err = errors.New("platform unreachable")
	us := newTestUserService(t, fake, accounts)

	_, err := us.GetOrCreateUser(context.Background(), "51999", false)
	require.Error(t, err)
}
