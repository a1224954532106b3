package database

import (
	"context"
	"database/sql"
	"fmt"
)

// DDL applied on startup. CREATE TABLE IF NOT EXISTS keeps restarts cheap;
// schema changes beyond additive tables need a manual migration.
var schemaStatements = []string{
	`CREATE TABLE IF NOT EXISTS users (
		id CHAR(36) PRIMARY KEY,
		username VARCHAR(64) NOT NULL,
		password_hash VARCHAR(255) NOT NULL,
		last_login_at DATETIME NULL,
		deleted_at DATETIME NULL,
		created_at DATETIME NOT NULL,
		updated_at DATETIME NOT NULL,
		UNIQUE KEY uq_users_username (username)
	)`,
	`CREATE TABLE IF NOT EXISTS database_profiles (
		id CHAR(36) PRIMARY KEY,
		user_id CHAR(36) NOT NULL,
		name VARCHAR(128) NOT NULL,
		db_type VARCHAR(32) NOT NULL,
		host VARCHAR(255) NOT NULL DEFAULT '',
		port INT NOT NULL DEFAULT 0,
		username VARCHAR(128) NOT NULL DEFAULT '',
		password VARCHAR(255) NOT NULL DEFAULT '',
		db_name VARCHAR(128) NOT NULL DEFAULT '',
		uri VARCHAR(512) NOT NULL DEFAULT '',
		created_at DATETIME NOT NULL,
		updated_at DATETIME NOT NULL,
		UNIQUE KEY uq_profiles_user_name (user_id, name),
		KEY idx_profiles_user (user_id)
	)`,
	`CREATE TABLE IF NOT EXISTS sessions (
		id CHAR(36) PRIMARY KEY,
		user_id CHAR(36) NOT NULL,
		title VARCHAR(255) NOT NULL DEFAULT '',
		database_id CHAR(36) NOT NULL DEFAULT '',
		created_at DATETIME NOT NULL,
		updated_at DATETIME NOT NULL,
		KEY idx_sessions_user (user_id)
	)`,
	`CREATE TABLE IF NOT EXISTS messages (
		id CHAR(36) PRIMARY KEY,
		session_id CHAR(36) NOT NULL,
		question TEXT NOT NULL,
		query_text TEXT NOT NULL,
		query_type VARCHAR(16) NOT NULL DEFAULT '',
		result_json LONGTEXT NOT NULL,
		summary TEXT NOT NULL,
		title VARCHAR(255) NOT NULL DEFAULT '',
		thought_process TEXT NOT NULL,
		database_type VARCHAR(32) NOT NULL DEFAULT '',
		error_message TEXT NOT NULL,
		execution_ms BIGINT NOT NULL DEFAULT 0,
		created_at DATETIME NOT NULL,
		KEY idx_messages_session (session_id)
	)`,
	`CREATE TABLE IF NOT EXISTS bookmarks (
		id CHAR(36) PRIMARY KEY,
		user_id CHAR(36) NOT NULL,
		question TEXT NOT NULL,
		query_text TEXT NOT NULL,
		title VARCHAR(255) NOT NULL DEFAULT '',
		created_at DATETIME NOT NULL,
		KEY idx_bookmarks_user (user_id)
	)`,
}

// Migrate creates the schema if it does not exist yet.
func Migrate(ctx context.Context, db *sql.DB) error {
	for _, stmt := range schemaStatements {
		if _, err := db.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("failed to apply schema: %w", err)
		}
	}
	return nil
}
