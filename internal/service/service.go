// FILE: internal/service/service.go
package service

import (
	"encoding/json"
	"fmt"
	"sync"
	"time"

	"chessvar/internal/core"
	"chessvar/internal/game"
	"chessvar/internal/storage"

	"github.com/google/uuid"
)

// match pairs a live game with its service-side bookkeeping.
type match struct {
	game  *game.Game
	moves int // accepted moves so far, used for move log numbering
}

// Service manages live matches with optional persistence.
type Service struct {
	matches map[string]*match
	mu      sync.RWMutex
	store   *storage.Store // nil if persistence disabled
}

// New creates a new service instance with optional storage
func New(store *storage.Store) *Service {
	return &Service{
		matches: make(map[string]*match),
		store:   store,
	}
}

// CreateGame starts a new match in the standard starting position and
// returns its ID.
func (s *Service) CreateGame() (string, *game.Game) {
	s.mu.Lock()
	defer s.mu.Unlock()

	// Ensure UUID uniqueness (handle potential conflicts)
	var id string
	for {
		id = uuid.New().String()
		if _, exists := s.matches[id]; !exists {
			break
		}
	}

	g := game.New()
	s.matches[id] = &match{game: g}

	if s.store != nil {
		s.store.RecordNewGame(storage.GameRecord{
			GameID:       id,
			Result:       core.StateUnfinished.String(),
			StartTimeUTC: time.Now().UTC(),
		})
	}
	return id, g
}

// GetGame retrieves a game by ID
func (s *Service) GetGame(gameID string) (*game.Game, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	m, ok := s.matches[gameID]
	if !ok {
		return nil, fmt.Errorf("game not found: %s", gameID)
	}
	return m.game, nil
}

// MakeMove executes one move on the identified match and logs it when
// persistence is enabled. Rejections pass through the game's error kinds.
func (s *Service) MakeMove(gameID, from, to string) (*game.MoveResult, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	m, ok := s.matches[gameID]
	if !ok {
		return nil, fmt.Errorf("game not found: %s", gameID)
	}

	mover := m.game.Turn()
	result, err := m.game.MakeMove(from, to)
	if err != nil {
		return nil, err
	}
	m.moves++

	if s.store != nil {
		capturedType := ""
		if result.Captured != nil {
			capturedType = result.Captured.Type.String()
		}
		s.store.RecordMove(storage.MoveRecord{
			GameID:       gameID,
			MoveNumber:   m.moves,
			FromSquare:   from,
			ToSquare:     to,
			CapturedType: capturedType,
			PlayerColor:  mover.String(),
			MoveTimeUTC:  time.Now().UTC(),
		})
		if result.State != core.StateUnfinished {
			s.store.RecordResult(gameID, result.State.String())
		}
	}
	return result, nil
}

// SetTurn overrides the turn holder of a match. Restore-time use only.
func (s *Service) SetTurn(gameID string, turn core.Color) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	m, ok := s.matches[gameID]
	if !ok {
		return fmt.Errorf("game not found: %s", gameID)
	}
	m.game.SetTurn(turn)
	return nil
}

// SaveGame writes the match's save record into the named storage slot.
func (s *Service) SaveGame(gameID, slot string) (*game.SaveRecord, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	m, ok := s.matches[gameID]
	if !ok {
		return nil, fmt.Errorf("game not found: %s", gameID)
	}
	rec, err := m.game.Save()
	if err != nil {
		return nil, err
	}

	if s.store == nil {
		return nil, fmt.Errorf("persistence disabled")
	}
	encoded, err := json.Marshal(rec)
	if err != nil {
		return nil, fmt.Errorf("encode save record: %w", err)
	}
	if err := s.store.WriteSave(storage.SaveSlot{
		GameID:     gameID,
		Slot:       slot,
		Record:     string(encoded),
		SavedAtUTC: time.Now().UTC(),
	}); err != nil {
		return nil, err
	}
	return rec, nil
}

// LoadGame replaces the match's state with the record in the named slot.
func (s *Service) LoadGame(gameID, slot string) (*game.Game, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	m, ok := s.matches[gameID]
	if !ok {
		return nil, fmt.Errorf("game not found: %s", gameID)
	}
	if s.store == nil {
		return nil, fmt.Errorf("persistence disabled")
	}

	ss, err := s.store.ReadSave(gameID, slot)
	if err != nil {
		return nil, err
	}
	var rec game.SaveRecord
	if err := json.Unmarshal([]byte(ss.Record), &rec); err != nil {
		return nil, fmt.Errorf("decode save record: %w", err)
	}
	restored, err := game.Restore(&rec)
	if err != nil {
		return nil, err
	}

	// The move counter is not reset: move_number stays unique per game
	// across loads.
	m.game = restored
	return restored, nil
}

// DeleteGame removes a game from memory
func (s *Service) DeleteGame(gameID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.matches[gameID]; !ok {
		return fmt.Errorf("game not found: %s", gameID)
	}
	delete(s.matches, gameID)
	return nil
}

// StorageHealth returns the storage component status
func (s *Service) StorageHealth() string {
	if s.store == nil {
		return "disabled"
	}
	if s.store.IsHealthy() {
		return "ok"
	}
	return "degraded"
}

// Close cleans up resources
func (s *Service) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.matches = make(map[string]*match)

	if s.store != nil {
		return s.store.Close()
	}
	return nil
}
