package models

import "time"

// ConnectionStatus is the lifecycle state of a connection record.
type ConnectionStatus string

const (
	ConnectionPending  ConnectionStatus = "pending"
	ConnectionAccepted ConnectionStatus = "accepted"
	ConnectionRejected ConnectionStatus = "rejected"

	// ConnectionNone is the "no relationship" sentinel returned by status
	// queries. It is never stored.
	ConnectionNone ConnectionStatus = "none"
)

// Valid reports whether s is a status a recipient may respond with.
func (s ConnectionStatus) ValidResponse() bool {
	return s == ConnectionAccepted || s == ConnectionRejected
}

// Connection is a social-relationship record between two users. The
// requester created it; only the recipient may respond. At most one record
// exists per unordered user pair.
type Connection struct {
	RequesterID int              `db:"user_id" json:"requester_id"`
	RecipientID int              `db:"connected_user_id" json:"recipient_id"`
	Status      ConnectionStatus `db:"status" json:"status"`
	CreatedAt   time.Time        `db:"created_at" json:"created_at"`
}

// ConnectionWithUser joins a connection with the counterpart's identity,
// relative to the user who asked.
type ConnectionWithUser struct {
	Connection
	CounterpartID   int    `db:"counterpart_id" json:"counterpart_id"`
	CounterpartName string `db:"counterpart_name" json:"counterpart_name"`
}

// PendingConnection is an incoming request shown to the recipient.
type PendingConnection struct {
	RequesterID   int       `db:"user_id" json:"requester_id"`
	RequesterName string    `db:"name" json:"requester_name"`
	CreatedAt     time.Time `db:"created_at" json:"created_at"`
}

// AcceptedConnection is a durable friend edge with both parties resolved.
type AcceptedConnection struct {
	Counterpart UserSummary `json:"counterpart"`
	CreatedAt   time.Time   `json:"created_at"`
}
