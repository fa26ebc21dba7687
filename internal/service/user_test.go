package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/set-night/invoicedesk/internal/domain"
)

type fakeUserStore struct {
	byTelegramID map[int64]*domain.User
	setAdminErr  error
	adminCalls   int
}

func newFakeUserStore(users ...*domain.User) *fakeUserStore {
	f := &fakeUserStore{byTelegramID: make(map[int64]*domain.User)}
	for _, u := range users {
		f.byTelegramID[u.TelegramID] = u
	}
	return f
}

func (f *fakeUserStore) GetByTelegramID(_ context.Context, telegramID int64) (*domain.User, error) {
	u, ok := f.byTelegramID[telegramID]
	if !ok {
		return nil, domain.ErrNotFound
	}
	copied := *u
	return &copied, nil
}

func (f *fakeUserStore) Create(_ context.Context, telegramID int64, firstName, username string, isAdmin bool) (*domain.User, error) {
	u := &domain.User{
		ID:         int64(len(f.byTelegramID) + 1),
		TelegramID: telegramID,
		FirstName:  firstName,
		Username:   username,
		IsAdmin:    isAdmin,
	}
	f.byTelegramID[telegramID] = u
	return u, nil
}

func (f *fakeUserStore) SetAdmin(_ context.Context, telegramID int64, isAdmin bool) error {
	f.adminCalls++
	if f.setAdminErr != nil {
		return f.setAdminErr
	}
	u, ok := f.byTelegramID[telegramID]
	if !ok {
		return domain.ErrNotFound
	}
	u.IsAdmin = isAdmin
	return nil
}

func (f *fakeUserStore) SetTeam(_ context.Context, telegramID int64, teamID string) error {
	u, ok := f.byTelegramID[telegramID]
	if !ok {
		return domain.ErrNotFound
	}
	u.TeamID = teamID
	return nil
}

func TestFindOrCreate_CreatesMissingUser(t *testing.T) {
	store := newFakeUserStore()
	s := NewUserService(store)

	user, err := s.FindOrCreate(context.Background(), 42, "Alex", "alex", false)

	require.NoError(t, err)
	assert.Equal(t, int64(42), user.TelegramID)
	assert.Equal(t, "Alex", user.FirstName)
	assert.False(t, user.IsAdmin)
}

func TestFindOrCreate_ReturnsExistingUser(t *testing.T) {
	store := newFakeUserStore(&domain.User{ID: 1, TelegramID: 42, TeamID: "team-7"})
	s := NewUserService(store)

	user, err := s.FindOrCreate(context.Background(), 42, "Alex", "alex", false)

	require.NoError(t, err)
	assert.Equal(t, "team-7", user.TeamID)
	assert.Zero(t, store.adminCalls)
}

func TestFindOrCreate_RefreshesAdminFlagOnPromotion(t *testing.T) {
	store := newFakeUserStore(&domain.User{ID: 1, TelegramID: 42})
	s := NewUserService(store)

	user, err := s.FindOrCreate(context.Background(), 42, "Alex", "alex", true)

	require.NoError(t, err)
	assert.True(t, user.IsAdmin)
	assert.True(t, store.byTelegramID[42].IsAdmin)
}

func TestFindOrCreate_RefreshesAdminFlagOnDemotion(t *testing.T) {
	store := newFakeUserStore(&domain.User{ID: 1, TelegramID: 42, IsAdmin: true})
	s := NewUserService(store)

	user, err := s.FindOrCreate(context.Background(), 42, "Alex", "alex", false)

	require.NoError(t, err)
	assert.False(t, user.IsAdmin)
	assert.False(t, store.byTelegramID[42].IsAdmin)
}

func TestFindOrCreate_AdminRefreshErrorSurfaces(t *testing.T) {
	store := newFakeUserStore(&domain.User{ID: 1, TelegramID: 42})
	store.setAdminErr = assert.AnError
	s := NewUserService(store)

	_, err := s.FindOrCreate(context.Background(), 42, "Alex", "alex", true)

	assert.Error(t, err)
}

func TestSetTeam_UpdatesUserInPlace(t *testing.T) {
	store := newFakeUserStore(&domain.User{ID: 1, TelegramID: 42})
	s := NewUserService(store)
	user := &domain.User{ID: 1, TelegramID: 42}

	require.NoError(t, s.SetTeam(context.Background(), user, "team-9"))

	assert.Equal(t, "team-9", user.TeamID)
	assert.Equal(t, "team-9", store.byTelegramID[42].TeamID)
}
