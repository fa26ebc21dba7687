package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/set-night/invoicedesk/internal/domain"
)

type Users struct {
	db *pgxpool.Pool
}

func NewUsers(db *pgxpool.Pool) *Users {
	return &Users{db: db}
}

const userColumns = `id, telegram_id, first_name, username, is_admin, team_id, created_at, updated_at`

func (r *Users) GetByTelegramID(ctx context.Context, telegramID int64) (*domain.User, error) {
	query := `SELECT ` + userColumns + ` FROM users WHERE telegram_id = $1`

	user, err := scanUser(r.db.QueryRow(ctx, query, telegramID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("get user by telegram id: %w", err)
	}
	return user, nil
}

func (r *Users) Create(ctx context.Context, telegramID int64, firstName, username string, isAdmin bool) (*domain.User, error) {
	query := `
		INSERT INTO users (telegram_id, first_name, username, is_admin)
		VALUES ($1, $2, $3, $4)
		ON CONFLICT (telegram_id) DO UPDATE SET
			first_name = EXCLUDED.first_name,
			username = EXCLUDED.username,
			is_admin = EXCLUDED.is_admin,
			updated_at = now()
		RETURNING ` + userColumns

	user, err := scanUser(r.db.QueryRow(ctx, query, telegramID, firstName, username, isAdmin))
	if err != nil {
		return nil, fmt.Errorf("create user: %w", err)
	}
	return user, nil
}

func (r *Users) SetAdmin(ctx context.Context, telegramID int64, isAdmin bool) error {
	query := `UPDATE users SET is_admin = $2, updated_at = now() WHERE telegram_id = $1`

	tag, err := r.db.Exec(ctx, query, telegramID, isAdmin)
	if err != nil {
		return fmt.Errorf("set admin: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (r *Users) SetTeam(ctx context.Context, telegramID int64, teamID string) error {
	query := `UPDATE users SET team_id = $2, updated_at = now() WHERE telegram_id = $1`

	tag, err := r.db.Exec(ctx, query, telegramID, teamID)
	if err != nil {
		return fmt.Errorf("set team: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func scanUser(row pgx.Row) (*domain.User, error) {
	var u domain.User
	err := row.Scan(&u.ID, &u.TelegramID, &u.FirstName, &u.Username, &u.IsAdmin, &u.TeamID, &u.CreatedAt, &u.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return &u, nil
}
