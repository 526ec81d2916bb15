package repositories

import (
	"context"
	"database/sql"
	"errors"

	"github.com/jmoiron/sqlx"

	"sportlink-service/internal/models"
)

var ErrUserNotFound = errors.New("user not found")

// UserRepository exposes the identity slice of users this service needs.
type UserRepository interface {
	GetUser(ctx context.Context, userID int) (models.User, error)
	Exists(ctx context.Context, userID int) (bool, error)
	Search(ctx context.Context, query string, excludeUserID int, limit int) ([]models.UserSummary, error)
}

// UserRepo is a sqlx implementation of UserRepository.
type UserRepo struct {
	db *sqlx.DB
}

// NewUserRepo constructs a UserRepo.
func NewUserRepo(db *sqlx.DB) *UserRepo {
	return &UserRepo{db: db}
}

// GetUser fetches a user by id.
func (r *UserRepo) GetUser(ctx context.Context, userID int) (models.User, error) {
	var user models.User
	err := r.db.GetContext(ctx, &user, `SELECT id, name, created_at FROM users WHERE id=$1`, userID)
	if errors.Is(err, sql.ErrNoRows) {
		return models.User{}, ErrUserNotFound
	}
	return user, err
}

// Exists reports whether a user exists.
func (r *UserRepo) Exists(ctx context.Context, userID int) (bool, error) {
	var exists bool
	err := r.db.GetContext(ctx, &exists, `SELECT EXISTS(SELECT 1 FROM users WHERE id=$1)`, userID)
	return exists, err
}

// Search performs a case-insensitive substring match on name, excluding the
// requesting user, each hit annotated with the user's primary role.
func (r *UserRepo) Search(ctx context.Context, query string, excludeUserID int, limit int) ([]models.UserSummary, error) {
	q := `SELECT u.id, u.name, COALESCE(pr.name, '') AS role
        FROM users u
        LEFT JOIN LATERAL (
            SELECT ro.name FROM user_roles ur
            JOIN roles ro ON ro.id = ur.role_id
            WHERE ur.user_id = u.id
            ORDER BY ur.role_id
            LIMIT 1
        ) pr ON TRUE
        WHERE u.name ILIKE '%' || $1 || '%' AND u.id <> $2
        ORDER BY u.name
        LIMIT $3`
	var users []models.UserSummary
	err := r.db.SelectContext(ctx, &users, q, query, excludeUserID, limit)
	return users, err
}
