package repository

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/set-night/invoicedesk/internal/domain"
)

type Plans struct {
	db *pgxpool.Pool
}

func NewPlans(db *pgxpool.Pool) *Plans {
	return &Plans{db: db}
}

func (r *Plans) Save(ctx context.Context, chatID int64, planID, message string) error {
	query := `INSERT INTO plan_refs (chat_id, plan_id, message) VALUES ($1, $2, $3)`

	if _, err := r.db.Exec(ctx, query, chatID, planID, message); err != nil {
		return fmt.Errorf("save plan ref: %w", err)
	}
	return nil
}

func (r *Plans) ListByChat(ctx context.Context, chatID int64, limit int) ([]domain.PlanRef, error) {
	query := `
		SELECT id, chat_id, plan_id, message, created_at
		FROM plan_refs
		WHERE chat_id = $1
		ORDER BY created_at DESC
		LIMIT $2`

	rows, err := r.db.Query(ctx, query, chatID, limit)
	if err != nil {
		return nil, fmt.Errorf("list plan refs: %w", err)
	}
	defer rows.Close()

	refs, err := pgx.CollectRows(rows, func(row pgx.CollectableRow) (domain.PlanRef, error) {
		var ref domain.PlanRef
		err := row.Scan(&ref.ID, &ref.ChatID, &ref.PlanID, &ref.Message, &ref.CreatedAt)
		return ref, err
	})
	if err != nil {
		return nil, fmt.Errorf("scan plan refs: %w", err)
	}
	return refs, nil
}
