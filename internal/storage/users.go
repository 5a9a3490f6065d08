package storage

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/armtrack/armtrack/internal/models"
)

// ErrNotFound is returned when a requested row does not exist.
var ErrNotFound = errors.New("not found")

// ErrUsernameTaken is returned when creating a user with a username that
// already exists.
var ErrUsernameTaken = errors.New("username already taken")

const userColumns = `id, username, email, created_at, total_videos, total_reps, average_performance, last_activity`

// CreateUser inserts a new user with zeroed totals.
func (db *DB) CreateUser(ctx context.Context, username, email string) (*models.User, error) {
	u := &models.User{}
	err := db.Pool.QueryRow(ctx, `
		INSERT INTO users (id, username, email)
		VALUES ($1, $2, $3)
		ON CONFLICT (username) DO NOTHING
		RETURNING `+userColumns,
		uuid.New(), username, email).Scan(
		&u.ID, &u.Username, &u.Email, &u.CreatedAt,
		&u.TotalVideos, &u.TotalReps, &u.AveragePerformance, &u.LastActivity)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrUsernameTaken
	}
	if err != nil {
		return nil, fmt.Errorf("creating user: %w", err)
	}
	return u, nil
}

// GetOrCreateUser finds a user by username, creating it if absent. Used for
// submissions that name a user the server has not seen yet.
func (db *DB) GetOrCreateUser(ctx context.Context, username string) (*models.User, error) {
	u := &models.User{}
	err := db.Pool.QueryRow(ctx, `
		INSERT INTO users (id, username)
		VALUES ($1, $2)
		ON CONFLICT (username) DO UPDATE SET username = EXCLUDED.username
		RETURNING `+userColumns,
		uuid.New(), username).Scan(
		&u.ID, &u.Username, &u.Email, &u.CreatedAt,
		&u.TotalVideos, &u.TotalReps, &u.AveragePerformance, &u.LastActivity)
	if err != nil {
		return nil, fmt.Errorf("getting or creating user: %w", err)
	}
	return u, nil
}

// GetUser retrieves a user by ID.
func (db *DB) GetUser(ctx context.Context, id uuid.UUID) (*models.User, error) {
	u := &models.User{}
	err := db.Pool.QueryRow(ctx,
		`SELECT `+userColumns+` FROM users WHERE id = $1`, id).Scan(
		&u.ID, &u.Username, &u.Email, &u.CreatedAt,
		&u.TotalVideos, &u.TotalReps, &u.AveragePerformance, &u.LastActivity)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("querying user: %w", err)
	}
	return u, nil
}
