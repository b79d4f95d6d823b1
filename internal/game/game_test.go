// FILE: internal/game/game_test.go
package game

import (
	"errors"
	"strings"
	"testing"

	"chessvar/internal/board"
	"chessvar/internal/core"
)

// checkConsistency verifies the bidirectional occupancy invariant: every
// active piece sits on the square that names it back, and nothing else is
// on the board.
func checkConsistency(t *testing.T, g *Game) {
	t.Helper()

	active := 0
	for i := range g.pieces {
		p := &g.pieces[i]
		if !p.Active() {
			continue
		}
		active++
		if got := g.board.OccupantAt(p.Square); got != board.PieceID(i) {
			t.Fatalf("piece %d reports square %s but the square holds %d",
				i, board.CoordOf(p.Square), got)
		}
	}

	occupied := 0
	for idx := 0; idx < 64; idx++ {
		id := g.board.OccupantAt(idx)
		if id == board.NoPiece {
			continue
		}
		occupied++
		if g.pieces[id].Square != idx {
			t.Fatalf("square %s holds piece %d but the piece reports %s",
				board.CoordOf(idx), id, board.CoordOf(g.pieces[id].Square))
		}
	}

	if active != occupied {
		t.Fatalf("%d active pieces but %d occupied squares", active, occupied)
	}
}

func TestTurnAlternation(t *testing.T) {
	g := New()
	if g.Turn() != core.ColorWhite {
		t.Fatalf("new game turn = %s, want White", g.Turn())
	}

	moves := [][2]string{
		{"e2", "e4"},
		{"e7", "e5"},
		{"g1", "f3"},
		{"b8", "c6"},
	}
	want := []core.Color{core.ColorBlack, core.ColorWhite, core.ColorBlack, core.ColorWhite}

	for i, mv := range moves {
		res, err := g.MakeMove(mv[0], mv[1])
		if err != nil {
			t.Fatalf("move %d (%s %s): %v", i, mv[0], mv[1], err)
		}
		if res.Turn != want[i] {
			t.Fatalf("after move %d turn = %s, want %s", i, res.Turn, want[i])
		}
		if g.Turn() != want[i] {
			t.Fatalf("after move %d Turn() = %s, want %s", i, g.Turn(), want[i])
		}
		checkConsistency(t, g)
	}
}

func TestOutOfTurn(t *testing.T) {
	g := New()
	if _, err := g.MakeMove("e7", "e5"); !errors.Is(err, core.ErrOutOfTurn) {
		t.Fatalf("moving Black first: err = %v, want ErrOutOfTurn", err)
	}
	if _, err := g.MakeMove("e2", "e4"); err != nil {
		t.Fatalf("White move after rejection: %v", err)
	}
	if _, err := g.MakeMove("d2", "d4"); !errors.Is(err, core.ErrOutOfTurn) {
		t.Fatalf("White moving twice: err = %v, want ErrOutOfTurn", err)
	}
}

func TestInvalidCoordinates(t *testing.T) {
	g := New()
	for _, mv := range [][2]string{
		{"e9", "e4"},
		{"e2", "i4"},
		{"", "e4"},
		{"e2", "e44"},
	} {
		if _, err := g.MakeMove(mv[0], mv[1]); !errors.Is(err, core.ErrInvalidCoordinate) {
			t.Fatalf("MakeMove(%q, %q) err = %v, want ErrInvalidCoordinate", mv[0], mv[1], err)
		}
	}
}

func TestEmptyOrigin(t *testing.T) {
	g := New()
	if _, err := g.MakeMove("d4", "d5"); !errors.Is(err, core.ErrIllegalMove) {
		t.Fatalf("moving from empty square: err = %v, want ErrIllegalMove", err)
	}
}

func TestCaptureDoesNotEndGame(t *testing.T) {
	g := New()
	mustMove(t, g, "e2", "e4")
	mustMove(t, g, "d7", "d5")

	res := mustMove(t, g, "e4", "d5")
	if res.Captured == nil || res.Captured.Type != core.PiecePawn || res.Captured.Color != core.ColorBlack {
		t.Fatalf("capture result = %+v", res.Captured)
	}
	if res.State != core.StateUnfinished {
		t.Fatalf("state after ordinary capture = %s, want UNFINISHED", res.State)
	}
	if res.Turn != core.ColorBlack {
		t.Fatalf("turn after capture = %s, want Black", res.Turn)
	}
	checkConsistency(t, g)
}

func TestLastPieceOfTypeWins(t *testing.T) {
	g := New()

	// Leave Black a single pawn on d5 and give White a pawn on e4 that can
	// take it.
	for _, coord := range []string{"a7", "b7", "c7", "e7", "f7", "g7", "h7"} {
		remove(t, g, coord)
	}
	teleport(t, g, "d7", "d5")
	teleport(t, g, "e2", "e4")

	res := mustMove(t, g, "e4", "d5")
	if res.Captured == nil || res.Captured.Type != core.PiecePawn {
		t.Fatalf("capture result = %+v", res.Captured)
	}
	if res.State != core.StateWhiteWon {
		t.Fatalf("state = %s, want WHITE_WON", res.State)
	}
	if res.Turn != core.ColorWhite {
		t.Fatalf("turn flipped on the winning move: %s", res.Turn)
	}
	if g.State() != core.StateWhiteWon || g.Turn() != core.ColorWhite {
		t.Fatalf("game state/turn = %s/%s", g.State(), g.Turn())
	}
	checkConsistency(t, g)

	// A finished game absorbs everything.
	if _, err := g.MakeMove("d5", "d6"); !errors.Is(err, core.ErrGameOver) {
		t.Fatalf("move after win: err = %v, want ErrGameOver", err)
	}
	g.SetTurn(core.ColorBlack)
	if _, err := g.MakeMove("a8", "a7"); !errors.Is(err, core.ErrGameOver) {
		t.Fatalf("move after win and SetTurn: err = %v, want ErrGameOver", err)
	}
}

func TestKingCaptureWins(t *testing.T) {
	g := New()
	teleport(t, g, "e8", "d3")

	res := mustMove(t, g, "e2", "d3")
	if res.Captured == nil || res.Captured.Type != core.PieceKing {
		t.Fatalf("capture result = %+v", res.Captured)
	}
	if res.State != core.StateWhiteWon {
		t.Fatalf("state = %s, want WHITE_WON", res.State)
	}
}

func TestBlackCanWin(t *testing.T) {
	g := New()
	teleport(t, g, "d1", "d6")
	g.SetTurn(core.ColorBlack)

	res := mustMove(t, g, "e7", "d6")
	if res.Captured == nil || res.Captured.Type != core.PieceQueen {
		t.Fatalf("capture result = %+v", res.Captured)
	}
	if res.State != core.StateBlackWon {
		t.Fatalf("state = %s, want BLACK_WON", res.State)
	}
	if res.Turn != core.ColorBlack {
		t.Fatalf("turn flipped on the winning move: %s", res.Turn)
	}
}

func TestSetTurn(t *testing.T) {
	g := New()
	g.SetTurn(core.ColorBlack)
	if g.Turn() != core.ColorBlack {
		t.Fatalf("Turn() = %s after SetTurn(Black)", g.Turn())
	}
	if _, err := g.MakeMove("e7", "e5"); err != nil {
		t.Fatalf("Black move after SetTurn: %v", err)
	}
}

func TestBoardSnapshot(t *testing.T) {
	g := New()
	snap := g.BoardSnapshot()

	if len(snap) != 64 {
		t.Fatalf("snapshot has %d squares, want 64", len(snap))
	}
	if p := snap["e1"]; p == nil || p.Type != core.PieceKing || p.Color != core.ColorWhite {
		t.Fatalf("e1 = %+v, want White King", p)
	}
	if p := snap["e8"]; p == nil || p.Type != core.PieceKing || p.Color != core.ColorBlack {
		t.Fatalf("e8 = %+v, want Black King", p)
	}
	if p := snap["b8"]; p == nil || p.Type != core.PieceKnight || p.Color != core.ColorBlack {
		t.Fatalf("b8 = %+v, want Black Knight", p)
	}
	if snap["d5"] != nil {
		t.Fatalf("d5 = %+v, want empty", snap["d5"])
	}

	// The snapshot is detached from the game.
	mustMove(t, g, "e2", "e4")
	if snap["e4"] != nil {
		t.Fatal("snapshot mutated by a later move")
	}
}

func TestToASCII(t *testing.T) {
	g := New()
	want := strings.Join([]string{
		"  a b c d e f g h",
		"8 r n b q k b n r  8",
		"7 p p p p p p p p  7",
		"6 . . . . . . . .  6",
		"5 . . . . . . . .  5",
		"4 . . . . . . . .  4",
		"3 . . . . . . . .  3",
		"2 P P P P P P P P  2",
		"1 R N B Q K B N R  1",
		"  a b c d e f g h",
	}, "\n")
	if got := g.ToASCII(); got != want {
		t.Fatalf("starting position:\n%s\nwant:\n%s", got, want)
	}
}

func mustMove(t *testing.T, g *Game, from, to string) *MoveResult {
	t.Helper()
	res, err := g.MakeMove(from, to)
	if err != nil {
		t.Fatalf("MakeMove(%s, %s): %v", from, to, err)
	}
	return res
}
