package repositories

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"

	"sportlink-service/internal/models"
)

var (
	ErrConnectionNotFound = errors.New("connection not found")
	ErrConnectionExists   = errors.New("connection already exists")
)

// ConnectionRepository abstracts connection persistence. The store carries a
// unique index over the unordered user pair, so concurrent creates for the
// same pair surface as ErrConnectionExists rather than duplicate edges.
type ConnectionRepository interface {
	Create(ctx context.Context, requesterID, recipientID int) (models.Connection, error)
	FindBetween(ctx context.Context, userID, counterpartID int) (models.Connection, error)
	FindPending(ctx context.Context, requesterID, recipientID int) (models.Connection, error)
	UpdateStatus(ctx context.Context, requesterID, recipientID int, status models.ConnectionStatus) (models.Connection, error)
	Delete(ctx context.Context, requesterID, recipientID int) error
	ListForUser(ctx context.Context, userID int) ([]models.ConnectionWithUser, error)
	ListPending(ctx context.Context, userID int) ([]models.PendingConnection, error)
	ListAccepted(ctx context.Context, userID int) ([]models.AcceptedConnection, error)
}

// ConnectionRepo is a sqlx implementation of ConnectionRepository.
type ConnectionRepo struct {
	db *sqlx.DB
}

// NewConnectionRepo constructs a ConnectionRepo.
func NewConnectionRepo(db *sqlx.DB) *ConnectionRepo {
	return &ConnectionRepo{db: db}
}

// Create inserts a pending connection record.
func (r *ConnectionRepo) Create(ctx context.Context, requesterID, recipientID int) (models.Connection, error) {
	var conn models.Connection
	err := r.db.QueryRowxContext(ctx,
		`INSERT INTO connection (user_id, connected_user_id, status) VALUES ($1, $2, 'pending')
        RETURNING user_id, connected_user_id, status, created_at`,
		requesterID, recipientID).
		Scan(&conn.RequesterID, &conn.RecipientID, &conn.Status, &conn.CreatedAt)
	if isUniqueViolation(err) {
		return models.Connection{}, ErrConnectionExists
	}
	return conn, err
}

// FindBetween looks a record up in either direction.
func (r *ConnectionRepo) FindBetween(ctx context.Context, userID, counterpartID int) (models.Connection, error) {
	var conn models.Connection
	err := r.db.GetContext(ctx, &conn,
		`SELECT user_id, connected_user_id, status, created_at FROM connection
        WHERE (user_id=$1 AND connected_user_id=$2) OR (user_id=$2 AND connected_user_id=$1)`,
		userID, counterpartID)
	if errors.Is(err, sql.ErrNoRows) {
		return models.Connection{}, ErrConnectionNotFound
	}
	return conn, err
}

// FindPending looks a pending record up in the requester→recipient direction.
func (r *ConnectionRepo) FindPending(ctx context.Context, requesterID, recipientID int) (models.Connection, error) {
	var conn models.Connection
	err := r.db.GetContext(ctx, &conn,
		`SELECT user_id, connected_user_id, status, created_at FROM connection
        WHERE user_id=$1 AND connected_user_id=$2 AND status='pending'`,
		requesterID, recipientID)
	if errors.Is(err, sql.ErrNoRows) {
		return models.Connection{}, ErrConnectionNotFound
	}
	return conn, err
}

// UpdateStatus transitions a pending record. Only pending records move.
func (r *ConnectionRepo) UpdateStatus(ctx context.Context, requesterID, recipientID int, status models.ConnectionStatus) (models.Connection, error) {
	var conn models.Connection
	err := r.db.QueryRowxContext(ctx,
		`UPDATE connection SET status=$3
        WHERE user_id=$1 AND connected_user_id=$2 AND status='pending'
        RETURNING user_id, connected_user_id, status, created_at`,
		requesterID, recipientID, status).
		Scan(&conn.RequesterID, &conn.RecipientID, &conn.Status, &conn.CreatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return models.Connection{}, ErrConnectionNotFound
	}
	return conn, err
}

// Delete removes a pending record, freeing the pair to re-request. Only
// pending records are removed; a record that already reached a terminal
// status stays, and the call reports ErrConnectionNotFound.
func (r *ConnectionRepo) Delete(ctx context.Context, requesterID, recipientID int) error {
	res, err := r.db.ExecContext(ctx,
		`DELETE FROM connection WHERE user_id=$1 AND connected_user_id=$2 AND status='pending'`,
		requesterID, recipientID)
	if err != nil {
		return err
	}
	count, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if count == 0 {
		return ErrConnectionNotFound
	}
	return nil
}

// ListForUser returns all records either side, joined with the counterpart.
func (r *ConnectionRepo) ListForUser(ctx context.Context, userID int) ([]models.ConnectionWithUser, error) {
	q := `SELECT c.user_id, c.connected_user_id, c.status, c.created_at,
            u.id AS counterpart_id, u.name AS counterpart_name
        FROM connection c
        JOIN users u ON u.id = CASE WHEN c.user_id=$1 THEN c.connected_user_id ELSE c.user_id END
        WHERE c.user_id=$1 OR c.connected_user_id=$1
        ORDER BY c.created_at DESC`
	var conns []models.ConnectionWithUser
	err := r.db.SelectContext(ctx, &conns, q, userID)
	return conns, err
}

// ListPending returns incoming pending requests with the requester's identity.
func (r *ConnectionRepo) ListPending(ctx context.Context, userID int) ([]models.PendingConnection, error) {
	q := `SELECT c.user_id, u.name, c.created_at
        FROM connection c
        JOIN users u ON u.id = c.user_id
        WHERE c.connected_user_id=$1 AND c.status='pending'
        ORDER BY c.created_at DESC`
	var pending []models.PendingConnection
	err := r.db.SelectContext(ctx, &pending, q, userID)
	return pending, err
}

type acceptedRow struct {
	CounterpartID   int       `db:"counterpart_id"`
	CounterpartName string    `db:"counterpart_name"`
	CounterpartRole string    `db:"counterpart_role"`
	CreatedAt       time.Time `db:"created_at"`
}

// ListAccepted returns accepted edges with each counterpart's primary role,
// newest first.
func (r *ConnectionRepo) ListAccepted(ctx context.Context, userID int) ([]models.AcceptedConnection, error) {
	q := `SELECT u.id AS counterpart_id, u.name AS counterpart_name,
            COALESCE(pr.name, '') AS counterpart_role, c.created_at
        FROM connection c
        JOIN users u ON u.id = CASE WHEN c.user_id=$1 THEN c.connected_user_id ELSE c.user_id END
        LEFT JOIN LATERAL (
            SELECT ro.name FROM user_roles ur
            JOIN roles ro ON ro.id = ur.role_id
            WHERE ur.user_id = u.id
            ORDER BY ur.role_id
            LIMIT 1
        ) pr ON TRUE
        WHERE (c.user_id=$1 OR c.connected_user_id=$1) AND c.status='accepted'
        ORDER BY c.created_at DESC`
	var rows []acceptedRow
	if err := r.db.SelectContext(ctx, &rows, q, userID); err != nil {
		return nil, err
	}

	accepted := make([]models.AcceptedConnection, 0, len(rows))
	for _, row := range rows {
		accepted = append(accepted, models.AcceptedConnection{
			Counterpart: models.UserSummary{
				ID:   row.CounterpartID,
				Name: row.CounterpartName,
				Role: row.CounterpartRole,
			},
			CreatedAt: row.CreatedAt,
		})
	}
	return accepted, nil
}

func isUniqueViolation(err error) bool {
	var pqErr *pq.Error
	return errors.As(err, &pqErr) && pqErr.Code == "23505"
}
