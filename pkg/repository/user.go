package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"

	"feedloop/pkg/domain"
)

// UserRepository handles user records. The system has no auth layer, users
// exist only as owners of subscriptions and entry states.
type UserRepository struct {
	db *sqlx.DB
}

// userSQL represents a user for SQL operations
type userSQL struct {
	ID        int64     `db:"id"`
	Name      string    `db:"name"`
	CreatedAt time.Time `db:"created_at"`
}

// NewUserRepository creates a new user repository
func NewUserRepository(database *sqlx.DB) *UserRepository {
	return &UserRepository{db: database}
}

// CreateUser inserts a new user
func (r *UserRepository) CreateUser(ctx context.Context, user *domain.User) error {
	result, err := r.db.ExecContext(ctx, "INSERT INTO users (name) VALUES (?)", user.Name)
	if err != nil {
		return fmt.Errorf("create user: %w", err)
	}
	id, err := result.LastInsertId()
	if err != nil {
		return fmt.Errorf("get insert id: %w", err)
	}
	user.ID = id
	return nil
}

// GetUser retrieves a user by ID, nil when not found
func (r *UserRepository) GetUser(ctx context.Context, id int64) (*domain.User, error) {
	var sqlUser userSQL
	err := r.db.GetContext(ctx, &sqlUser, "SELECT * FROM users WHERE id = ?", id)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("get user: %w", err)
	}
	return &domain.User{ID: sqlUser.ID, Name: sqlUser.Name, CreatedAt: sqlUser.CreatedAt}, nil
}
