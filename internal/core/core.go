// FILE: internal/core/core.go
package core

import (
	"errors"
	"fmt"
)

type Color byte

const (
	ColorWhite Color = 'w'
	ColorBlack Color = 'b'
)

func (c Color) String() string {
	return string(c)
}

// Label returns the long-form color name used in save records.
func (c Color) Label() string {
	if c == ColorWhite {
		return "White"
	}
	return "Black"
}

func ParseColorLabel(label string) (Color, error) {
	switch label {
	case "White", "w":
		return ColorWhite, nil
	case "Black", "b":
		return ColorBlack, nil
	default:
		return 0, fmt.Errorf("unknown color %q", label)
	}
}

func OppositeColor(c Color) Color {
	if c == ColorWhite {
		return ColorBlack
	}
	return ColorWhite
}

type PieceType int

const (
	PiecePawn PieceType = iota
	PieceKnight
	PieceBishop
	PieceRook
	PieceQueen
	PieceKing
)

func (t PieceType) String() string {
	switch t {
	case PiecePawn:
		return "Pawn"
	case PieceKnight:
		return "Knight"
	case PieceBishop:
		return "Bishop"
	case PieceRook:
		return "Rook"
	case PieceQueen:
		return "Queen"
	case PieceKing:
		return "King"
	default:
		return "Unknown"
	}
}

// Abbrev returns the short label used on rendered boards.
func (t PieceType) Abbrev() string {
	switch t {
	case PiecePawn:
		return "P"
	case PieceKnight:
		return "Kn"
	case PieceBishop:
		return "B"
	case PieceRook:
		return "R"
	case PieceQueen:
		return "Q"
	case PieceKing:
		return "K"
	default:
		return "?"
	}
}

func ParsePieceType(name string) (PieceType, error) {
	switch name {
	case "Pawn":
		return PiecePawn, nil
	case "Knight":
		return PieceKnight, nil
	case "Bishop":
		return PieceBishop, nil
	case "Rook":
		return PieceRook, nil
	case "Queen":
		return PieceQueen, nil
	case "King":
		return PieceKing, nil
	default:
		return 0, fmt.Errorf("unknown piece type %q", name)
	}
}

type State int

const (
	StateUnfinished State = iota
	StateWhiteWon
	StateBlackWon
)

func (s State) String() string {
	switch s {
	case StateWhiteWon:
		return "WHITE_WON"
	case StateBlackWon:
		return "BLACK_WON"
	default:
		return "UNFINISHED"
	}
}

// WinState maps a mover's color to the terminal state it produces.
func WinState(c Color) State {
	if c == ColorWhite {
		return StateWhiteWon
	}
	return StateBlackWon
}

// The four recoverable rejection kinds surfaced by MakeMove. A rejected
// call leaves the match completely unchanged.
var (
	ErrGameOver          = errors.New("game is over")
	ErrInvalidCoordinate = errors.New("invalid coordinate")
	ErrOutOfTurn         = errors.New("piece does not belong to the player on turn")
	ErrIllegalMove       = errors.New("illegal move")
)
