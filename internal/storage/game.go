// FILE: internal/storage/game.go
package storage

import (
	"database/sql"
	"fmt"
)

// RecordNewGame asynchronously records a new game. The insert is idempotent
// because a synchronous WriteSave may have created the row first.
func (s *Store) RecordNewGame(record GameRecord) {
	s.enqueue(func(tx *sql.Tx) error {
		query := `INSERT OR IGNORE INTO games (game_id, result, start_time_utc) VALUES (?, ?, ?)`
		_, err := tx.Exec(query, record.GameID, record.Result, record.StartTimeUTC)
		return err
	})
}

// RecordMove asynchronously records a move
func (s *Store) RecordMove(record MoveRecord) {
	s.enqueue(func(tx *sql.Tx) error {
		query := `INSERT INTO moves (
			game_id, move_number, from_square, to_square, captured_type, player_color, move_time_utc
		) VALUES (?, ?, ?, ?, ?, ?, ?)`

		_, err := tx.Exec(query,
			record.GameID, record.MoveNumber, record.FromSquare, record.ToSquare,
			record.CapturedType, record.PlayerColor, record.MoveTimeUTC,
		)
		return err
	})
}

// RecordResult asynchronously stores a game's terminal state
func (s *Store) RecordResult(gameID, result string) {
	s.enqueue(func(tx *sql.Tx) error {
		query := `UPDATE games SET result = ? WHERE game_id = ?`
		_, err := tx.Exec(query, result, gameID)
		return err
	})
}

// WriteSave stores a save record in the named slot, replacing any previous
// save there. Writes are synchronous so a load can follow immediately. The
// parent game row may still be sitting in the async queue, so it is ensured
// here inside the same transaction.
func (s *Store) WriteSave(slot SaveSlot) error {
	if !s.healthStatus.Load() {
		return fmt.Errorf("storage degraded")
	}

	tx, err := s.db.Begin()
	if err != nil {
		return fmt.Errorf("write save failed: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.Exec(
		`INSERT OR IGNORE INTO games (game_id, result, start_time_utc) VALUES (?, 'UNFINISHED', ?)`,
		slot.GameID, slot.SavedAtUTC,
	); err != nil {
		return fmt.Errorf("write save failed: %w", err)
	}

	query := `INSERT INTO saves (game_id, slot, record, saved_at_utc) VALUES (?, ?, ?, ?)
		ON CONFLICT(game_id, slot) DO UPDATE SET record = excluded.record, saved_at_utc = excluded.saved_at_utc`
	if _, err := tx.Exec(query, slot.GameID, slot.Slot, slot.Record, slot.SavedAtUTC); err != nil {
		return fmt.Errorf("write save failed: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("write save failed: %w", err)
	}
	return nil
}

// ReadSave retrieves a save record from the named slot.
func (s *Store) ReadSave(gameID, slot string) (SaveSlot, error) {
	var ss SaveSlot
	query := `SELECT game_id, slot, record, saved_at_utc FROM saves WHERE game_id = ? AND slot = ?`
	row := s.db.QueryRow(query, gameID, slot)
	if err := row.Scan(&ss.GameID, &ss.Slot, &ss.Record, &ss.SavedAtUTC); err != nil {
		if err == sql.ErrNoRows {
			return ss, fmt.Errorf("save slot %q not found for game %s", slot, gameID)
		}
		return ss, fmt.Errorf("read save failed: %w", err)
	}
	return ss, nil
}

// QueryGames retrieves games, optionally filtered by ID.
func (s *Store) QueryGames(gameID string) ([]GameRecord, error) {
	query := `SELECT game_id, result, start_time_utc FROM games WHERE 1=1`

	var args []interface{}
	if gameID != "" && gameID != "*" {
		query += " AND game_id = ?"
		args = append(args, gameID)
	}
	query += " ORDER BY start_time_utc DESC"

	rows, err := s.db.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("query failed: %w", err)
	}
	defer rows.Close()

	var games []GameRecord
	for rows.Next() {
		var g GameRecord
		if err := rows.Scan(&g.GameID, &g.Result, &g.StartTimeUTC); err != nil {
			return nil, fmt.Errorf("scan failed: %w", err)
		}
		games = append(games, g)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("rows iteration failed: %w", err)
	}

	return games, nil
}
