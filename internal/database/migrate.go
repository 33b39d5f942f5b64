package database

import (
	"context"
	"database/sql"
	"fmt"
)

var mysqlSchema = []string{
	`CREATE TABLE IF NOT EXISTS venues (
		id BIGINT UNSIGNED NOT NULL AUTO_INCREMENT PRIMARY KEY,
		name VARCHAR(255) NOT NULL,
		city VARCHAR(120) NOT NULL,
		state VARCHAR(120) NOT NULL,
		address VARCHAR(120) NOT NULL,
		phone VARCHAR(120) NOT NULL,
		genres TEXT NOT NULL,
		image_link VARCHAR(500) NOT NULL,
		facebook_link VARCHAR(120) NULL,
		website_link VARCHAR(120) NULL,
		looking_for_talent BOOLEAN NOT NULL DEFAULT FALSE,
		seeking_description TEXT NULL,
		INDEX idx_venues_area (state, city)
	) ENGINE=InnoDB DEFAULT CHARSET=utf8mb4`,
	`CREATE TABLE IF NOT EXISTS artists (
		id BIGINT UNSIGNED NOT NULL AUTO_INCREMENT PRIMARY KEY,
		name VARCHAR(255) NOT NULL,
		city VARCHAR(120) NOT NULL,
		state VARCHAR(120) NOT NULL,
		phone VARCHAR(120) NOT NULL,
		genres TEXT NOT NULL,
		image_link VARCHAR(500) NOT NULL,
		facebook_link VARCHAR(120) NULL,
		website_link VARCHAR(120) NULL,
		looking_for_venues BOOLEAN NOT NULL DEFAULT FALSE,
		seeking_description TEXT NULL
	) ENGINE=InnoDB DEFAULT CHARSET=utf8mb4`,
	`CREATE TABLE IF NOT EXISTS shows (
		id BIGINT UNSIGNED NOT NULL AUTO_INCREMENT PRIMARY KEY,
		artist_id BIGINT UNSIGNED NOT NULL,
		venue_id BIGINT UNSIGNED NOT NULL,
		start_time DATETIME NOT NULL,
		INDEX idx_shows_venue (venue_id, start_time),
		INDEX idx_shows_artist (artist_id, start_time),
		CONSTRAINT fk_shows_artist FOREIGN KEY (artist_id) REFERENCES artists(id),
		CONSTRAINT fk_shows_venue FOREIGN KEY (venue_id) REFERENCES venues(id)
	) ENGINE=InnoDB DEFAULT CHARSET=utf8mb4`,
}

var sqliteSchema = []string{
	`CREATE TABLE IF NOT EXISTS venues (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		name TEXT NOT NULL,
		city TEXT NOT NULL,
		state TEXT NOT NULL,
		address TEXT NOT NULL,
		phone TEXT NOT NULL,
		genres TEXT NOT NULL,
		image_link TEXT NOT NULL,
		facebook_link TEXT NULL,
		website_link TEXT NULL,
		looking_for_talent BOOLEAN NOT NULL DEFAULT 0,
		seeking_description TEXT NULL
	)`,
	`CREATE INDEX IF NOT EXISTS idx_venues_area ON venues (state, city)`,
	`CREATE TABLE IF NOT EXISTS artists (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		name TEXT NOT NULL,
		city TEXT NOT NULL,
		state TEXT NOT NULL,
		phone TEXT NOT NULL,
		genres TEXT NOT NULL,
		image_link TEXT NOT NULL,
		facebook_link TEXT NULL,
		website_link TEXT NULL,
		looking_for_venues BOOLEAN NOT NULL DEFAULT 0,
		seeking_description TEXT NULL
	)`,
	`CREATE TABLE IF NOT EXISTS shows (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		artist_id INTEGER NOT NULL REFERENCES artists(id),
		venue_id INTEGER NOT NULL REFERENCES venues(id),
		start_time DATETIME NOT NULL
	)`,
	`CREATE INDEX IF NOT EXISTS idx_shows_venue ON shows (venue_id, start_time)`,
	`CREATE INDEX IF NOT EXISTS idx_shows_artist ON shows (artist_id, start_time)`,
}

// Migrate creates the venues, artists and shows tables when they do not
// exist yet. It is safe to run on every startup.
func Migrate(ctx context.Context, db *sql.DB, d Dialect) error {
	var stmts []string
	switch d {
	case MySQL:
		stmts = mysqlSchema
	case SQLite:
		stmts = sqliteSchema
	default:
		return fmt.Errorf("migrate: unknown dialect %q", d)
	}
	for i, stmt := range stmts {
		if _, err := db.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("migrate step %d: %w", i+1, err)
		}
	}
	return nil
}
