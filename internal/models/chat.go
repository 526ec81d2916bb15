package models

import "time"

// Chat is a persistent two-party message channel. The pair is stored
// canonically ordered (User1ID < User2ID) so the unique constraint covers
// the unordered pair.
type Chat struct {
	ID        int       `db:"id" json:"id"`
	User1ID   int       `db:"user_id_1" json:"user1_id"`
	User2ID   int       `db:"user_id_2" json:"user2_id"`
	CreatedAt time.Time `db:"created_at" json:"created_at"`
}

// Counterpart returns the participant other than userID.
func (c Chat) Counterpart(userID int) int {
	if c.User1ID == userID {
		return c.User2ID
	}
	return c.User1ID
}

// HasParticipant reports whether userID belongs to the chat.
func (c Chat) HasParticipant(userID int) bool {
	return c.User1ID == userID || c.User2ID == userID
}

// ChatSummary is the per-user view of a chat: the channel id plus the other
// party's identity, never the caller's own.
type ChatSummary struct {
	ChatID          int       `db:"chat_id" json:"chat_id"`
	CounterpartID   int       `db:"counterpart_id" json:"id"`
	CounterpartName string    `db:"counterpart_name" json:"name"`
	CreatedAt       time.Time `db:"created_at" json:"created_at"`
}
