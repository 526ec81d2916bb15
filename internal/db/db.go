package db

import (
	"fmt"

	"github.com/jmoiron/sqlx"
	_ "github.com/lib/pq"
	"go.uber.org/zap"
)

// Connect initializes the database connection and runs migrations.
func Connect(dsn string, logger *zap.Logger) (*sqlx.DB, error) {
	db, err := sqlx.Connect("postgres", dsn)
	if err != nil {
		return nil, fmt.Errorf("connect db: %w", err)
	}

	if err := runMigrations(db); err != nil {
		return nil, fmt.Errorf("run migrations: %w", err)
	}
	logger.Info("database migrations applied")

	return db, nil
}

func runMigrations(db *sqlx.DB) error {
	migrations := []string{
		`CREATE TABLE IF NOT EXISTS users (
            id SERIAL PRIMARY KEY,
            name TEXT NOT NULL,
            created_at TIMESTAMPTZ DEFAULT NOW()
        );`,
		`CREATE TABLE IF NOT EXISTS roles (
            id SERIAL PRIMARY KEY,
            name TEXT NOT NULL UNIQUE
        );`,
		`CREATE TABLE IF NOT EXISTS user_roles (
            user_id INT NOT NULL REFERENCES users(id) ON DELETE CASCADE,
            role_id INT NOT NULL REFERENCES roles(id) ON DELETE CASCADE,
            PRIMARY KEY(user_id, role_id)
        );`,
		`CREATE TABLE IF NOT EXISTS connection (
            user_id INT NOT NULL REFERENCES users(id) ON DELETE CASCADE,
            connected_user_id INT NOT NULL REFERENCES users(id) ON DELETE CASCADE,
            status TEXT NOT NULL DEFAULT 'pending',
            created_at TIMESTAMPTZ DEFAULT NOW(),
            PRIMARY KEY(user_id, connected_user_id),
            CHECK (user_id <> connected_user_id)
        );`,
		// One record per unordered pair, enforced by the store so that two
		// concurrent create calls cannot both insert.
		`CREATE UNIQUE INDEX IF NOT EXISTS connection_pair_unique
            ON connection (LEAST(user_id, connected_user_id), GREATEST(user_id, connected_user_id));`,
		`CREATE TABLE IF NOT EXISTS chats (
            id SERIAL PRIMARY KEY,
            user_id_1 INT NOT NULL REFERENCES users(id) ON DELETE CASCADE,
            user_id_2 INT NOT NULL REFERENCES users(id) ON DELETE CASCADE,
            created_at TIMESTAMPTZ DEFAULT NOW(),
            UNIQUE(user_id_1, user_id_2),
            CHECK (user_id_1 < user_id_2)
        );`,
		`CREATE TABLE IF NOT EXISTS chat_message (
            id SERIAL PRIMARY KEY,
            chat_id INT NOT NULL REFERENCES chats(id) ON DELETE CASCADE,
            sender_id INT NOT NULL REFERENCES users(id) ON DELETE CASCADE,
            message TEXT NOT NULL,
            created_at TIMESTAMPTZ DEFAULT NOW()
        );`,
		`CREATE INDEX IF NOT EXISTS chat_message_chat_id_idx ON chat_message (chat_id);`,
		`CREATE INDEX IF NOT EXISTS chat_message_sender_id_idx ON chat_message (sender_id);`,
	}

	for _, m := range migrations {
		if _, err := db.Exec(m); err != nil {
			return err
		}
	}
	return nil
}
