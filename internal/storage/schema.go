// FILE: internal/storage/schema.go
package storage

import "time"

// GameRecord represents a row in the games table
type GameRecord struct {
	GameID       string    `db:"game_id"`
	Result       string    `db:"result"` // UNFINISHED, WHITE_WON, BLACK_WON
	StartTimeUTC time.Time `db:"start_time_utc"`
}

// MoveRecord represents a row in the moves table
type MoveRecord struct {
	MoveID       int64     `db:"move_id"`
	GameID       string    `db:"game_id"`
	MoveNumber   int       `db:"move_number"`
	FromSquare   string    `db:"from_square"`
	ToSquare     string    `db:"to_square"`
	CapturedType string    `db:"captured_type"` // empty when the move did not capture
	PlayerColor  string    `db:"player_color"`  // "w" or "b"
	MoveTimeUTC  time.Time `db:"move_time_utc"`
}

// SaveSlot represents a row in the saves table: one named save of a match,
// holding the JSON save record.
type SaveSlot struct {
	GameID     string    `db:"game_id"`
	Slot       string    `db:"slot"`
	Record     string    `db:"record"`
	SavedAtUTC time.Time `db:"saved_at_utc"`
}

// Schema defines the SQLite database structure
const Schema = `
CREATE TABLE IF NOT EXISTS games (
	game_id TEXT PRIMARY KEY,
	result TEXT NOT NULL DEFAULT 'UNFINISHED' CHECK(result IN ('UNFINISHED', 'WHITE_WON', 'BLACK_WON')),
	start_time_utc DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP
);

CREATE TABLE IF NOT EXISTS moves (
	move_id INTEGER PRIMARY KEY AUTOINCREMENT,
	game_id TEXT NOT NULL,
	move_number INTEGER NOT NULL,
	from_square TEXT NOT NULL,
	to_square TEXT NOT NULL,
	captured_type TEXT NOT NULL DEFAULT '',
	player_color TEXT NOT NULL CHECK(player_color IN ('w', 'b')),
	move_time_utc DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP,
	FOREIGN KEY (game_id) REFERENCES games(game_id) ON DELETE CASCADE,
	UNIQUE(game_id, move_number)
);

CREATE TABLE IF NOT EXISTS saves (
	game_id TEXT NOT NULL,
	slot TEXT NOT NULL,
	record TEXT NOT NULL,
	saved_at_utc DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP,
	PRIMARY KEY (game_id, slot),
	FOREIGN KEY (game_id) REFERENCES games(game_id) ON DELETE CASCADE
);

CREATE INDEX IF NOT EXISTS idx_moves_game_id ON moves(game_id);
CREATE INDEX IF NOT EXISTS idx_saves_game_id ON saves(game_id);
`
