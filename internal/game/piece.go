// FILE: internal/game/piece.go
package game

import (
	"chessvar/internal/board"
	"chessvar/internal/core"
)

// Piece is one arena entry. Owner is fixed at creation and never reassigned.
// Square is the piece's board index while active and -1 once captured; a
// piece is captured exactly once and never recreated.
type Piece struct {
	Type   core.PieceType
	Owner  core.Color
	Square int
}

const captured = -1

// Active reports whether the piece is still on the board.
func (p *Piece) Active() bool {
	return p.Square != captured
}

// startingPlacement lists one side's pieces in canonical roster order:
// eight pawns a..h, rooks, knights, bishops, queen, king. Save records
// re-match surviving pieces by index against this order.
var startingPlacement = [...]struct {
	typ  core.PieceType
	file int
	pawn bool // pawns sit on the pawn rank, the rest on the back rank
}{
	{core.PiecePawn, 0, true},
	{core.PiecePawn, 1, true},
	{core.PiecePawn, 2, true},
	{core.PiecePawn, 3, true},
	{core.PiecePawn, 4, true},
	{core.PiecePawn, 5, true},
	{core.PiecePawn, 6, true},
	{core.PiecePawn, 7, true},
	{core.PieceRook, 0, false},
	{core.PieceRook, 7, false},
	{core.PieceKnight, 1, false},
	{core.PieceKnight, 6, false},
	{core.PieceBishop, 2, false},
	{core.PieceBishop, 5, false},
	{core.PieceQueen, 3, false},
	{core.PieceKing, 4, false},
}

const rosterSize = len(startingPlacement)

// setupPieces fills the arena with both rosters (white first) and places
// them on the board in the standard starting position.
func setupPieces(b *board.Board) []Piece {
	pieces := make([]Piece, 0, 2*rosterSize)
	for _, color := range []core.Color{core.ColorWhite, core.ColorBlack} {
		backRank, pawnRank := 0, 1
		if color == core.ColorBlack {
			backRank, pawnRank = 7, 6
		}
		for _, pl := range startingPlacement {
			rank := backRank
			if pl.pawn {
				rank = pawnRank
			}
			idx := board.Index(pl.file, rank)
			id := board.PieceID(len(pieces))
			pieces = append(pieces, Piece{Type: pl.typ, Owner: color, Square: idx})
			b.Place(idx, id)
		}
	}
	return pieces
}

// rosterRange returns the arena index bounds [lo, hi) of one color's pieces.
func rosterRange(c core.Color) (int, int) {
	if c == core.ColorWhite {
		return 0, rosterSize
	}
	return rosterSize, 2 * rosterSize
}

// countActive counts one color's surviving pieces of the given type.
func countActive(pieces []Piece, c core.Color, t core.PieceType) int {
	lo, hi := rosterRange(c)
	n := 0
	for i := lo; i < hi; i++ {
		if pieces[i].Active() && pieces[i].Type == t {
			n++
		}
	}
	return n
}
