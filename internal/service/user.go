package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/set-night/invoicedesk/internal/domain"
)

type userStore interface {
	GetByTelegramID(ctx context.Context, telegramID int64) (*domain.User, error)
	Create(ctx context.Context, telegramID int64, firstName, username string, isAdmin bool) (*domain.User, error)
	SetAdmin(ctx context.Context, telegramID int64, isAdmin bool) error
	SetTeam(ctx context.Context, telegramID int64, teamID string) error
}

type UserService struct {
	users userStore
}

func NewUserService(users userStore) *UserService {
	return &UserService{users: users}
}

// FindOrCreate upserts the sender. The admin flag follows the configured
// admin list, so promotions and demotions take effect on the next update.
func (s *UserService) FindOrCreate(ctx context.Context, telegramID int64, firstName, username string, isAdmin bool) (*domain.User, error) {
	user, err := s.users.GetByTelegramID(ctx, telegramID)
	if err == nil {
		if user.IsAdmin != isAdmin {
			if err := s.users.SetAdmin(ctx, telegramID, isAdmin); err != nil {
				return nil, fmt.Errorf("set admin: %w", err)
			}
			user.IsAdmin = isAdmin
		}
		return user, nil
	}
	if !errors.Is(err, domain.ErrNotFound) {
		return nil, fmt.Errorf("get user: %w", err)
	}

	user, err = s.users.Create(ctx, telegramID, firstName, username, isAdmin)
	if err != nil {
		return nil, fmt.Errorf("create user: %w", err)
	}
	return user, nil
}

// SetTeam stores the user's active team selection. The caller is expected
// to invalidate the cached team-mode flag afterwards.
func (s *UserService) SetTeam(ctx context.Context, user *domain.User, teamID string) error {
	if err := s.users.SetTeam(ctx, user.TelegramID, teamID); err != nil {
		return fmt.Errorf("set team: %w", err)
	}
	user.TeamID = teamID
	return nil
}
