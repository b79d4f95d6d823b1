// FILE: internal/transport/http/types.go
package http

import (
	"encoding/json"
	"errors"

	"chessvar/internal/core"
	"chessvar/internal/game"
)

// Request types

type MoveRequest struct {
	From string `json:"from" validate:"required,len=2"` // e.g. "e2"
	To   string `json:"to" validate:"required,len=2"`   // e.g. "e4"
}

type SaveRequest struct {
	Slot string `json:"slot" validate:"required,min=1,max=40"`
}

type LoadRequest struct {
	Slot string `json:"slot" validate:"required,min=1,max=40"`
}

type SetTurnRequest struct {
	Turn string `json:"turn" validate:"required,oneof=w b White Black"`
}

// Response types

type GameResponse struct {
	GameID   string                 `json:"gameId"`
	Turn     string                 `json:"turn"`  // "w" or "b"
	State    string                 `json:"state"` // UNFINISHED, WHITE_WON, BLACK_WON
	Board    map[string]*SquareInfo `json:"board"` // coordinate -> occupant or null
	LastMove *MoveInfo              `json:"lastMove,omitempty"`
}

type SquareInfo struct {
	Type  string `json:"type"`
	Color string `json:"color"`
}

type MoveInfo struct {
	From     string       `json:"from"`
	To       string       `json:"to"`
	Captured *CaptureInfo `json:"captured,omitempty"`
}

type CaptureInfo struct {
	Type  string `json:"type"`
	Color string `json:"color"`
}

type BoardResponse struct {
	Board string `json:"board"` // ASCII representation
}

type SaveResponse struct {
	Slot   string          `json:"slot"`
	Record json.RawMessage `json:"record"`
}

type ErrorResponse struct {
	Error   string `json:"error"`
	Code    string `json:"code"`
	Details string `json:"details,omitempty"`
}

// Error codes
const (
	ErrGameNotFound       = "GAME_NOT_FOUND"
	ErrGameOver           = "GAME_OVER"
	ErrInvalidCoordinate  = "INVALID_COORDINATE"
	ErrOutOfTurn          = "OUT_OF_TURN"
	ErrIllegalMove        = "ILLEGAL_MOVE"
	ErrRateLimitExceeded  = "RATE_LIMIT_EXCEEDED"
	ErrInvalidContent     = "INVALID_CONTENT_TYPE"
	ErrInvalidRequest     = "INVALID_REQUEST"
	ErrStorageUnavailable = "STORAGE_UNAVAILABLE"
	ErrInternalError      = "INTERNAL_ERROR"
)

// rejectionCode maps the engine's rejection kinds onto API error codes.
func rejectionCode(err error) string {
	switch {
	case errors.Is(err, core.ErrGameOver):
		return ErrGameOver
	case errors.Is(err, core.ErrInvalidCoordinate):
		return ErrInvalidCoordinate
	case errors.Is(err, core.ErrOutOfTurn):
		return ErrOutOfTurn
	case errors.Is(err, core.ErrIllegalMove):
		return ErrIllegalMove
	default:
		return ErrInternalError
	}
}

// Helper functions

func snapshotToBoard(snap map[string]*game.PieceInfo) map[string]*SquareInfo {
	out := make(map[string]*SquareInfo, len(snap))
	for coord, info := range snap {
		if info == nil {
			out[coord] = nil
			continue
		}
		out[coord] = &SquareInfo{Type: info.Type.String(), Color: info.Color.String()}
	}
	return out
}
