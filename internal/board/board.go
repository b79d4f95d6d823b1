// FILE: internal/board/board.go
package board

import (
	"fmt"

	"chessvar/internal/core"
)

// PieceID is a stable handle into the match's piece arena. The board only
// stores handles; it has no knowledge of piece types or movement.
type PieceID int

const NoPiece PieceID = -1

// Square is one addressable board cell: its coordinate string plus the
// handle of the piece occupying it, if any.
type Square struct {
	Coord    string
	occupant PieceID
}

func (s *Square) Occupant() PieceID {
	return s.occupant
}

// Board is the fixed 64-square lattice. Squares are created once and never
// added or removed; only occupancy changes over a game's lifetime.
type Board struct {
	squares [64]Square
}

func New() *Board {
	b := &Board{}
	for i := range b.squares {
		b.squares[i] = Square{Coord: CoordOf(i), occupant: NoPiece}
	}
	return b
}

// Resolve maps a coordinate string to a square index, rejecting anything
// outside a1..h8 or malformed.
func Resolve(coord string) (int, error) {
	if len(coord) != 2 {
		return 0, fmt.Errorf("%w: %q", core.ErrInvalidCoordinate, coord)
	}
	if coord[0] < 'a' || coord[0] > 'h' || coord[1] < '1' || coord[1] > '8' {
		return 0, fmt.Errorf("%w: %q", core.ErrInvalidCoordinate, coord)
	}
	return Index(int(coord[0]-'a'), int(coord[1]-'1')), nil
}

// Index converts zero-based file and rank to a square index. Callers must
// pass values in 0..7.
func Index(file, rank int) int {
	return rank*8 + file
}

// FileRank is the inverse of Index.
func FileRank(idx int) (file, rank int) {
	return idx % 8, idx / 8
}

// CoordOf renders a square index as its coordinate string.
func CoordOf(idx int) string {
	file, rank := FileRank(idx)
	return string([]byte{byte('a' + file), byte('1' + rank)})
}

func (b *Board) Square(idx int) *Square {
	return &b.squares[idx]
}

// OccupantOf returns the handle of the piece on the named square.
func (b *Board) OccupantOf(coord string) (PieceID, error) {
	idx, err := Resolve(coord)
	if err != nil {
		return NoPiece, err
	}
	return b.squares[idx].occupant, nil
}

// OccupantAt is the index-addressed variant of OccupantOf.
func (b *Board) OccupantAt(idx int) PieceID {
	return b.squares[idx].occupant
}

// Place sets a square's occupant. The caller maintains the bidirectional
// invariant with the piece's own position field.
func (b *Board) Place(idx int, id PieceID) {
	b.squares[idx].occupant = id
}
