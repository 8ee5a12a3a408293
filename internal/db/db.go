package db

import (
	"fmt"
	"log"
	"time"

	"github.com/jmoiron/sqlx"
	_ "github.com/lib/pq"
)

// Connect opens the PostgreSQL pool and applies migrations.
func Connect(dsn string) (*sqlx.DB, error) {
	db, err := sqlx.Connect("postgres", dsn)
	if err != nil {
		return nil, fmt.Errorf("connect db: %w", err)
	}
	db.SetMaxOpenConns(25)
	db.SetMaxIdleConns(25)
	db.SetConnMaxIdleTime(5 * time.Minute)

	if err := runMigrations(db); err != nil {
		db.Close()
		return nil, fmt.Errorf("run migrations: %w", err)
	}

	return db, nil
}

func runMigrations(db *sqlx.DB) error {
	for _, m := range migrations {
		if _, err := db.Exec(m); err != nil {
			return err
		}
	}
	log.Println("database migrations applied")
	return nil
}

var migrations = []string{
	`CREATE TABLE IF NOT EXISTS files (
        file_id SERIAL PRIMARY KEY,
        type TEXT NOT NULL,
        data TEXT NOT NULL
    );`,
	`CREATE TABLE IF NOT EXISTS users (
        id SERIAL PRIMARY KEY,
        login TEXT NOT NULL UNIQUE,
        password TEXT NOT NULL,
        first_name TEXT NOT NULL DEFAULT '',
        last_name TEXT NOT NULL DEFAULT '',
        role TEXT NOT NULL DEFAULT 'user',
        user_image_id INT REFERENCES files(file_id) ON DELETE SET NULL
    );`,
	`CREATE TABLE IF NOT EXISTS online_users (
        id INT PRIMARY KEY REFERENCES users(id) ON DELETE CASCADE
    );`,
	`CREATE TABLE IF NOT EXISTS dialogs (
        first_id INT NOT NULL REFERENCES users(id) ON DELETE CASCADE,
        second_id INT NOT NULL REFERENCES users(id) ON DELETE CASCADE,
        created_by INT NOT NULL REFERENCES users(id) ON DELETE CASCADE,
        PRIMARY KEY (first_id, second_id)
    );`,
	`CREATE TABLE IF NOT EXISTS rooms (
        room_id SERIAL PRIMARY KEY,
        room_name TEXT NOT NULL,
        room_image_id INT REFERENCES files(file_id) ON DELETE SET NULL
    );`,
	`CREATE TABLE IF NOT EXISTS room_members (
        room_id INT NOT NULL REFERENCES rooms(room_id) ON DELETE CASCADE,
        user_id INT NOT NULL REFERENCES users(id) ON DELETE CASCADE,
        PRIMARY KEY (room_id, user_id)
    );`,
	`CREATE TABLE IF NOT EXISTS messages (
        id SERIAL PRIMARY KEY,
        send_from_id INT NOT NULL REFERENCES users(id) ON DELETE CASCADE,
        send_to_id INT REFERENCES users(id) ON DELETE CASCADE,
        room_id INT REFERENCES rooms(room_id) ON DELETE CASCADE,
        message_text TEXT NOT NULL,
        timestamp TIMESTAMPTZ NOT NULL DEFAULT NOW(),
        is_read BOOLEAN NOT NULL DEFAULT FALSE,
        CHECK ((send_to_id IS NULL) <> (room_id IS NULL))
    );`,
	`CREATE INDEX IF NOT EXISTS messages_direct_idx ON messages (send_from_id, send_to_id, timestamp);`,
	`CREATE INDEX IF NOT EXISTS messages_room_idx ON messages (room_id, timestamp);`,
	`CREATE TABLE IF NOT EXISTS unread_message_by (
        message_id INT NOT NULL REFERENCES messages(id) ON DELETE CASCADE,
        room_id INT NOT NULL REFERENCES rooms(room_id) ON DELETE CASCADE,
        unread_by INT NOT NULL REFERENCES users(id) ON DELETE CASCADE,
        PRIMARY KEY (message_id, unread_by)
    );`,
	`CREATE TABLE IF NOT EXISTS friends (
        first_id INT NOT NULL REFERENCES users(id) ON DELETE CASCADE,
        second_id INT NOT NULL REFERENCES users(id) ON DELETE CASCADE,
        PRIMARY KEY (first_id, second_id)
    );`,
	`CREATE TABLE IF NOT EXISTS friend_requests (
        request_from INT NOT NULL REFERENCES users(id) ON DELETE CASCADE,
        request_to INT NOT NULL REFERENCES users(id) ON DELETE CASCADE,
        PRIMARY KEY (request_from, request_to)
    );`,
	`CREATE TABLE IF NOT EXISTS communities (
        id SERIAL PRIMARY KEY,
        name TEXT NOT NULL UNIQUE,
        description TEXT NOT NULL DEFAULT '',
        image_id INT REFERENCES files(file_id) ON DELETE SET NULL,
        created_by INT NOT NULL REFERENCES users(id) ON DELETE CASCADE
    );`,
}
