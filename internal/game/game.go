// FILE: internal/game/game.go
package game

import (
	"fmt"
	"strings"
	"sync"

	"chessvar/internal/board"
	"chessvar/internal/core"
)

// Game owns all mutable match state: the board, the piece arena, the turn
// holder and the game state. Every call is serialized behind one mutex so a
// partially applied move is never observable.
type Game struct {
	mu     sync.Mutex
	board  *board.Board
	pieces []Piece
	turn   core.Color
	state  core.State
}

// MoveResult reports an accepted move back to the caller.
type MoveResult struct {
	From     string
	To       string
	Captured *CapturedPiece // nil when the move did not capture
	Turn     core.Color     // turn holder after the move
	State    core.State
}

// CapturedPiece identifies the piece removed by a capturing move.
type CapturedPiece struct {
	Type  core.PieceType
	Color core.Color
}

// New creates a match in the standard starting position with White to move.
func New() *Game {
	b := board.New()
	return &Game{
		board:  b,
		pieces: setupPieces(b),
		turn:   core.ColorWhite,
		state:  core.StateUnfinished,
	}
}

// MakeMove validates and executes one move. Rejections surface one of the
// four recoverable error kinds and leave the match completely unchanged, so
// the call may be retried.
func (g *Game) MakeMove(from, to string) (*MoveResult, error) {
	g.mu.Lock()
	defer g.mu.Unlock()

	if g.state != core.StateUnfinished {
		return nil, fmt.Errorf("%w: %s", core.ErrGameOver, g.state)
	}

	fromIdx, err := board.Resolve(from)
	if err != nil {
		return nil, err
	}
	toIdx, err := board.Resolve(to)
	if err != nil {
		return nil, err
	}

	id := g.board.OccupantAt(fromIdx)
	if id == board.NoPiece {
		return nil, fmt.Errorf("%w: no piece on %s", core.ErrIllegalMove, from)
	}
	mover := g.pieces[id]
	if mover.Owner != g.turn {
		return nil, fmt.Errorf("%w: %s to move", core.ErrOutOfTurn, g.turn.Label())
	}

	outcome, capID := g.movePiece(id, toIdx)
	if outcome == Rejected {
		return nil, fmt.Errorf("%w: %s cannot move %s to %s",
			core.ErrIllegalMove, mover.Type, from, to)
	}

	result := &MoveResult{From: from, To: to}

	if outcome == MovedWithCapture {
		taken := g.pieces[capID]
		result.Captured = &CapturedPiece{Type: taken.Type, Color: taken.Owner}

		// The captured piece is already detached, so a zero count means
		// it was the last of its type: the mover wins and the turn does
		// not flip.
		if countActive(g.pieces, taken.Owner, taken.Type) == 0 {
			g.state = core.WinState(mover.Owner)
			result.Turn = g.turn
			result.State = g.state
			return result, nil
		}
	}

	g.turn = core.OppositeColor(g.turn)
	result.Turn = g.turn
	result.State = g.state
	return result, nil
}

// Turn returns the color holding the move.
func (g *Game) Turn() core.Color {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.turn
}

// State returns the current game state.
func (g *Game) State() core.State {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.state
}

// SetTurn overrides the turn holder. It exists for restoring persisted
// matches; the caller is responsible for restoring board occupancy and
// rosters consistently before resuming play.
func (g *Game) SetTurn(c core.Color) {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.turn = c
}

// PieceInfo describes one occupied square in a board snapshot.
type PieceInfo struct {
	Type  core.PieceType
	Color core.Color
}

// BoardSnapshot returns a read-only view for rendering: every coordinate
// maps to its occupant, or nil for an empty square.
func (g *Game) BoardSnapshot() map[string]*PieceInfo {
	g.mu.Lock()
	defer g.mu.Unlock()

	snap := make(map[string]*PieceInfo, 64)
	for idx := 0; idx < 64; idx++ {
		coord := board.CoordOf(idx)
		if id := g.board.OccupantAt(idx); id != board.NoPiece {
			p := g.pieces[id]
			snap[coord] = &PieceInfo{Type: p.Type, Color: p.Owner}
		} else {
			snap[coord] = nil
		}
	}
	return snap
}

// pieceChar renders one piece as a single letter, uppercase for White.
func pieceChar(t core.PieceType, c core.Color) byte {
	var ch byte
	switch t {
	case core.PiecePawn:
		ch = 'p'
	case core.PieceKnight:
		ch = 'n'
	case core.PieceBishop:
		ch = 'b'
	case core.PieceRook:
		ch = 'r'
	case core.PieceQueen:
		ch = 'q'
	case core.PieceKing:
		ch = 'k'
	}
	if c == core.ColorWhite {
		ch -= 'a' - 'A'
	}
	return ch
}

// ToASCII creates an ASCII representation of the position.
func (g *Game) ToASCII() string {
	g.mu.Lock()
	defer g.mu.Unlock()

	var sb strings.Builder
	sb.WriteString("  a b c d e f g h\n")
	for r := 7; r >= 0; r-- {
		sb.WriteString(fmt.Sprintf("%d ", r+1))
		for f := 0; f < 8; f++ {
			id := g.board.OccupantAt(board.Index(f, r))
			if id == board.NoPiece {
				sb.WriteString(". ")
			} else {
				p := g.pieces[id]
				sb.WriteString(fmt.Sprintf("%c ", pieceChar(p.Type, p.Owner)))
			}
		}
		sb.WriteString(fmt.Sprintf(" %d\n", r+1))
	}
	sb.WriteString("  a b c d e f g h")
	return sb.String()
}
