package repositories

import (
	"context"

	"github.com/jmoiron/sqlx"

	"sportlink-service/internal/models"
)

// MessageRepository defines interactions for chat messages. Messages are
// immutable; ordering is the store's commit order.
type MessageRepository interface {
	Create(ctx context.Context, chatID, senderID int, content string) (models.Message, error)
	ListForChat(ctx context.Context, chatID int) ([]models.Message, error)
}

// MessageRepo is a sqlx-backed repository.
type MessageRepo struct {
	db *sqlx.DB
}

// NewMessageRepo constructs MessageRepo.
func NewMessageRepo(db *sqlx.DB) *MessageRepo {
	return &MessageRepo{db: db}
}

// Create stores a message with a server-assigned timestamp.
func (r *MessageRepo) Create(ctx context.Context, chatID, senderID int, content string) (models.Message, error) {
	var msg models.Message
	err := r.db.QueryRowxContext(ctx,
		`INSERT INTO chat_message (chat_id, sender_id, message) VALUES ($1, $2, $3)
        RETURNING id, chat_id, sender_id, message, created_at`,
		chatID, senderID, content).
		Scan(&msg.ID, &msg.ChatID, &msg.SenderID, &msg.Content, &msg.CreatedAt)
	return msg, err
}

// ListForChat returns the chat's messages in ascending creation order.
func (r *MessageRepo) ListForChat(ctx context.Context, chatID int) ([]models.Message, error) {
	q := `SELECT id, chat_id, sender_id, message, created_at
        FROM chat_message
        WHERE chat_id=$1
        ORDER BY created_at ASC, id ASC`
	var msgs []models.Message
	err := r.db.SelectContext(ctx, &msgs, q, chatID)
	return msgs, err
}
