package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"faculty_api/internal/common"
	"faculty_api/internal/domain/model"
)

type UserRepository interface {
	// Create inserts user and sets user.ID. A taken username yields
	// common.ErrUserAlreadyExists even when the fast-path lookup missed it.
	Create(ctx context.Context, user *model.User) error
	FindByUsername(ctx context.Context, username string) (*model.User, error)
}

type pgUserRepository struct {
	db *sql.DB
}

func NewPgUserRepository(db *sql.DB) UserRepository {
	return &pgUserRepository{db: db}
}

func (r *pgUserRepository) Create(ctx context.Context, user *model.User) error {
	query := `INSERT INTO users (username, name, password, location)
	          VALUES ($1, $2, $3, $4)
	          RETURNING id, created_at`
	err := r.db.QueryRowContext(ctx, query, user.Username, user.Name, user.HashedPassword, user.Location).
		Scan(&user.ID, &user.CreatedAt)
	if err != nil {
		if common.IsUniqueViolation(err) {
			return fmt.Errorf("username %q is taken: %w", user.Username, common.ErrUserAlreadyExists)
		}
		return fmt.Errorf("pgUserRepository.Create: %w", err)
	}
	return nil
}

func (r *pgUserRepository) FindByUsername(ctx context.Context, username string) (*model.User, error) {
	query := `SELECT id, username, name, password, location, created_at
	          FROM users WHERE username = $1`
	user := &model.User{}
	err := r.db.QueryRowContext(ctx, query, username).Scan(
		&user.ID, &user.Username, &user.Name, &user.HashedPassword, &user.Location, &user.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.ErrNotFound
		}
		return nil, fmt.Errorf("pgUserRepository.FindByUsername: %w", err)
	}
	return user, nil
}
