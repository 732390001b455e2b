package repository

import (
	"context"
	"database/sql"
	"fmt"

	"faculty_api/internal/domain/model"
)

type AuthEventRepository interface {
	// Create is idempotent on event ID so a redelivered event is stored once.
	Create(ctx context.Context, event *model.AuthEvent) error
	ListByUsername(ctx context.Context, username string, limit int) ([]model.AuthEvent, error)
}

type pgAuthEventRepository struct {
	db *sql.DB
}

func NewPgAuthEventRepository(db *sql.DB) AuthEventRepository {
	return &pgAuthEventRepository{db: db}
}

func (r *pgAuthEventRepository) Create(ctx context.Context, e *model.AuthEvent) error {
	query := `INSERT INTO auth_events (id, username, kind, remote_addr, created_at)
	          VALUES ($1, $2, $3, $4, $5)
	          ON CONFLICT (id) DO NOTHING`
	_, err := r.db.ExecContext(ctx, query, e.ID, e.Username, e.Kind, e.RemoteAddr, e.CreatedAt)
	if err != nil {
		return fmt.Errorf("pgAuthEventRepository.Create: %w", err)
	}
	return nil
}

func (r *pgAuthEventRepository) ListByUsername(ctx context.Context, username string, limit int) ([]model.AuthEvent, error) {
	query := `SELECT id, username, kind, remote_addr, created_at
	          FROM auth_events WHERE username = $1
	          ORDER BY created_at DESC
	          LIMIT $2`
	rows, err := r.db.QueryContext(ctx, query, username, limit)
	if err != nil {
		return nil, fmt.Errorf("pgAuthEventRepository.ListByUsername: %w", err)
	}
	defer rows.Close()

	events := []model.AuthEvent{}
	for rows.Next() {
		var e model.AuthEvent
		if err := rows.Scan(&e.ID, &e.Username, &e.Kind, &e.RemoteAddr, &e.CreatedAt); err != nil {
			return nil, fmt.Errorf("pgAuthEventRepository.ListByUsername scan: %w", err)
		}
		events = append(events, e)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("pgAuthEventRepository.ListByUsername rows: %w", err)
	}
	return events, nil
}
