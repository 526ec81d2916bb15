package models

import "time"

// Message is an immutable event belonging to exactly one chat. ReceiverID is
// derived at read time from the chat's participants and never stored.
type Message struct {
	ID         int       `db:"id" json:"id"`
	ChatID     int       `db:"chat_id" json:"chat_id"`
	SenderID   int       `db:"sender_id" json:"sender_id"`
	ReceiverID int       `db:"-" json:"receiver_id"`
	Content    string    `db:"message" json:"content"`
	CreatedAt  time.Time `db:"created_at" json:"timestamp"`
}
