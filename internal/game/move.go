// FILE: internal/game/move.go
package game

import (
	"chessvar/internal/board"
	"chessvar/internal/core"
)

// Outcome of a single attempted piece move.
type Outcome int

const (
	Rejected Outcome = iota
	Moved
	MovedWithCapture
)

// direction holds the unit file/rank deltas toward the destination. The
// eight nonzero combinations are the compass directions; both zero means
// no displacement.
type direction struct {
	dx, dy int
}

func sign(n int) int {
	switch {
	case n > 0:
		return 1
	case n < 0:
		return -1
	default:
		return 0
	}
}

func classify(from, to int) (direction, bool) {
	ff, fr := board.FileRank(from)
	tf, tr := board.FileRank(to)
	d := direction{dx: sign(tf - ff), dy: sign(tr - fr)}
	return d, d.dx != 0 || d.dy != 0
}

func (d direction) diagonal() bool {
	return d.dx != 0 && d.dy != 0
}

// step advances one cell, returning -1 when the result would leave the
// board. This is the sole boundary check in the move path.
func step(cur, dx, dy int) int {
	f, r := board.FileRank(cur)
	f += dx
	r += dy
	if f < 0 || f > 7 || r < 0 || r > 7 {
		return -1
	}
	return board.Index(f, r)
}

// forward is the pawn's direction of travel: White advances toward higher
// ranks, Black toward lower.
func forward(c core.Color) int {
	if c == core.ColorWhite {
		return 1
	}
	return -1
}

// nextSquare advances one unit along the path for the piece's variant and
// returns -1 the instant the step would be illegal for it: a direction the
// variant cannot travel, or a cell off the board. For the knight the "step"
// is the whole jump, computed algebraically from the rank delta to the
// destination.
func nextSquare(p *Piece, cur int, dir direction, dest int) int {
	switch p.Type {
	case core.PiecePawn:
		if dir.dy != forward(p.Owner) {
			return -1
		}
		return step(cur, dir.dx, dir.dy)
	case core.PieceRook:
		if dir.diagonal() {
			return -1
		}
		return step(cur, dir.dx, dir.dy)
	case core.PieceBishop:
		if !dir.diagonal() {
			return -1
		}
		return step(cur, dir.dx, dir.dy)
	case core.PieceKnight:
		if !dir.diagonal() {
			return -1
		}
		_, curRank := board.FileRank(cur)
		_, destRank := board.FileRank(dest)
		rd := destRank - curRank
		// A rank delta of 1 implies a 2-file offset, a delta of 2 a
		// 1-file offset. Anything else cannot be an L-shape.
		if rd != 1 && rd != -1 && rd != 2 && rd != -2 {
			return -1
		}
		files := 2
		if rd == 2 || rd == -2 {
			files = 1
		}
		return step(cur, dir.dx*files, rd)
	default: // Queen, King
		return step(cur, dir.dx, dir.dy)
	}
}

// movePiece validates the requested move for the piece's variant and, when
// legal, applies it to the board and arena. It returns the outcome and the
// handle of any captured piece. A Rejected outcome leaves all state
// untouched.
func (g *Game) movePiece(id board.PieceID, dest int) (Outcome, board.PieceID) {
	p := &g.pieces[id]
	start := p.Square

	dir, moved := classify(start, dest)
	if !moved {
		return Rejected, board.NoPiece
	}

	switch p.Type {
	case core.PiecePawn:
		if !g.pawnPathLegal(p, start, dest, dir) {
			return Rejected, board.NoPiece
		}

	case core.PieceKing, core.PieceKnight:
		// Single bounded step: the stepped square must be the destination.
		next := nextSquare(p, start, dir, dest)
		if next == -1 || next != dest {
			return Rejected, board.NoPiece
		}
		if occ := g.board.OccupantAt(next); occ != board.NoPiece && g.pieces[occ].Owner == p.Owner {
			return Rejected, board.NoPiece
		}

	default:
		// Sliding pieces walk square by square and are blocked by the
		// first occupied cell.
		cur := start
		for {
			cur = nextSquare(p, cur, dir, dest)
			if cur == -1 {
				return Rejected, board.NoPiece
			}
			occ := g.board.OccupantAt(cur)
			if occ == board.NoPiece {
				if cur == dest {
					break
				}
				continue
			}
			if cur != dest || g.pieces[occ].Owner == p.Owner {
				return Rejected, board.NoPiece
			}
			break
		}
	}

	// Legality confirmed: clear the origin, detach any captured piece,
	// occupy the destination. Square occupancy and piece position are
	// updated together to keep them consistent.
	g.board.Place(start, board.NoPiece)
	capID := g.board.OccupantAt(dest)
	p.Square = dest
	g.board.Place(dest, id)

	if capID == board.NoPiece {
		return Moved, board.NoPiece
	}
	g.pieces[capID].Square = captured
	return MovedWithCapture, capID
}

// pawnPathLegal applies the pawn's two regimes: from its starting rank a
// straight request may advance one or two empty squares; off it, exactly
// one. Diagonal requests are one square and capture-only in either regime.
func (g *Game) pawnPathLegal(p *Piece, start, dest int, dir direction) bool {
	_, rank := board.FileRank(start)
	onStartRank := (p.Owner == core.ColorWhite && rank == 1) ||
		(p.Owner == core.ColorBlack && rank == 6)

	if dir.diagonal() {
		next := nextSquare(p, start, dir, dest)
		if next == -1 || next != dest {
			return false
		}
		occ := g.board.OccupantAt(next)
		return occ != board.NoPiece && g.pieces[occ].Owner != p.Owner
	}

	if onStartRank {
		cur := start
		for i := 0; i < 2; i++ {
			cur = nextSquare(p, cur, dir, dest)
			if cur == -1 || g.board.OccupantAt(cur) != board.NoPiece {
				return false
			}
			if cur == dest {
				return true
			}
		}
		return false
	}

	next := nextSquare(p, start, dir, dest)
	if next == -1 || next != dest {
		return false
	}
	return g.board.OccupantAt(next) == board.NoPiece
}
