package repositories

import (
	"context"
	"database/sql"
	"errors"
	"sort"

	"github.com/jmoiron/sqlx"

	"sportlink-service/internal/models"
)

var ErrChatNotFound = errors.New("chat not found")

// ChatRepository abstracts chat-channel persistence. Creation is idempotent:
// at most one chat exists per unordered user pair.
type ChatRepository interface {
	CreateOrGet(ctx context.Context, userID, counterpartID int) (models.Chat, bool, error)
	GetChat(ctx context.Context, chatID int) (models.Chat, error)
	IsParticipant(ctx context.Context, chatID, userID int) (bool, error)
	ListForUser(ctx context.Context, userID int) ([]models.ChatSummary, error)
}

// ChatRepo is a sqlx implementation of ChatRepository.
type ChatRepo struct {
	db *sqlx.DB
}

// NewChatRepo constructs a ChatRepo.
func NewChatRepo(db *sqlx.DB) *ChatRepo {
	return &ChatRepo{db: db}
}

// CreateOrGet returns the chat for the pair, creating it on first use. The
// second return value reports whether a new channel was created. Two
// concurrent calls for the same pair are serialized by the unique pair
// constraint; the loser re-reads the winner's row.
func (r *ChatRepo) CreateOrGet(ctx context.Context, userID, counterpartID int) (models.Chat, bool, error) {
	participants := []int{userID, counterpartID}
	sort.Ints(participants)
	user1, user2 := participants[0], participants[1]

	var chat models.Chat
	query := `SELECT id, user_id_1, user_id_2, created_at FROM chats WHERE user_id_1=$1 AND user_id_2=$2`
	err := r.db.GetContext(ctx, &chat, query, user1, user2)
	if err == nil {
		return chat, false, nil
	}
	if !errors.Is(err, sql.ErrNoRows) {
		return models.Chat{}, false, err
	}

	err = r.db.QueryRowxContext(ctx,
		`INSERT INTO chats (user_id_1, user_id_2) VALUES ($1, $2)
        ON CONFLICT (user_id_1, user_id_2) DO NOTHING
        RETURNING id, user_id_1, user_id_2, created_at`,
		user1, user2).
		Scan(&chat.ID, &chat.User1ID, &chat.User2ID, &chat.CreatedAt)
	if err == nil {
		return chat, true, nil
	}
	if !errors.Is(err, sql.ErrNoRows) {
		return models.Chat{}, false, err
	}

	// Lost the insert race; the row exists now.
	if err := r.db.GetContext(ctx, &chat, query, user1, user2); err != nil {
		return models.Chat{}, false, err
	}
	return chat, false, nil
}

// GetChat fetches a chat by id.
func (r *ChatRepo) GetChat(ctx context.Context, chatID int) (models.Chat, error) {
	var chat models.Chat
	err := r.db.GetContext(ctx, &chat, `SELECT id, user_id_1, user_id_2, created_at FROM chats WHERE id=$1`, chatID)
	if errors.Is(err, sql.ErrNoRows) {
		return models.Chat{}, ErrChatNotFound
	}
	return chat, err
}

// IsParticipant checks whether a user belongs to the chat.
func (r *ChatRepo) IsParticipant(ctx context.Context, chatID, userID int) (bool, error) {
	var exists bool
	err := r.db.GetContext(ctx, &exists,
		`SELECT EXISTS(SELECT 1 FROM chats WHERE id=$1 AND (user_id_1=$2 OR user_id_2=$2))`,
		chatID, userID)
	return exists, err
}

// ListForUser returns the user's chats with the counterpart resolved.
func (r *ChatRepo) ListForUser(ctx context.Context, userID int) ([]models.ChatSummary, error) {
	q := `SELECT c.id AS chat_id,
            u.id AS counterpart_id, u.name AS counterpart_name, c.created_at
        FROM chats c
        JOIN users u ON u.id = CASE WHEN c.user_id_1=$1 THEN c.user_id_2 ELSE c.user_id_1 END
        WHERE c.user_id_1=$1 OR c.user_id_2=$1
        ORDER BY c.created_at DESC`
	var chats []models.ChatSummary
	err := r.db.SelectContext(ctx, &chats, q, userID)
	return chats, err
}
