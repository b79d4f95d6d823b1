// FILE: internal/game/save.go
package game

import (
	"encoding/json"
	"fmt"

	"chessvar/internal/board"
	"chessvar/internal/core"
)

// SavedPiece is one (type, coordinate) pair in a save record. On the wire
// it is a two-element JSON array, e.g. ["Pawn","e4"].
type SavedPiece struct {
	Type  string
	Coord string
}

func (p SavedPiece) MarshalJSON() ([]byte, error) {
	return json.Marshal([2]string{p.Type, p.Coord})
}

func (p *SavedPiece) UnmarshalJSON(data []byte) error {
	var pair []string
	if err := json.Unmarshal(data, &pair); err != nil {
		return err
	}
	if len(pair) != 2 {
		return fmt.Errorf("saved piece must be a [type, coordinate] pair, got %d elements", len(pair))
	}
	p.Type, p.Coord = pair[0], pair[1]
	return nil
}

// SaveRecord is the persisted match state: the turn holder plus each side's
// active pieces in canonical roster construction order. The wire form is a
// three-element JSON array ["White", [...], [...]] so records round-trip
// losslessly with .chv files.
type SaveRecord struct {
	Turn  string
	White []SavedPiece
	Black []SavedPiece
}

func (r SaveRecord) MarshalJSON() ([]byte, error) {
	return json.Marshal([3]any{r.Turn, r.White, r.Black})
}

func (r *SaveRecord) UnmarshalJSON(data []byte) error {
	var parts []json.RawMessage
	if err := json.Unmarshal(data, &parts); err != nil {
		return err
	}
	if len(parts) != 3 {
		return fmt.Errorf("save record must have 3 elements, got %d", len(parts))
	}
	if err := json.Unmarshal(parts[0], &r.Turn); err != nil {
		return fmt.Errorf("save record turn: %w", err)
	}
	if err := json.Unmarshal(parts[1], &r.White); err != nil {
		return fmt.Errorf("save record white pieces: %w", err)
	}
	if err := json.Unmarshal(parts[2], &r.Black); err != nil {
		return fmt.Errorf("save record black pieces: %w", err)
	}
	return nil
}

// Save captures the current match state. Finished matches are not saved;
// a record never contains a terminal state.
func (g *Game) Save() (*SaveRecord, error) {
	g.mu.Lock()
	defer g.mu.Unlock()

	if g.state != core.StateUnfinished {
		return nil, fmt.Errorf("%w: finished game cannot be saved", core.ErrGameOver)
	}

	rec := &SaveRecord{Turn: g.turn.Label()}
	for _, color := range []core.Color{core.ColorWhite, core.ColorBlack} {
		lo, hi := rosterRange(color)
		var list []SavedPiece
		for i := lo; i < hi; i++ {
			p := g.pieces[i]
			if !p.Active() {
				continue
			}
			list = append(list, SavedPiece{Type: p.Type.String(), Coord: board.CoordOf(p.Square)})
		}
		if color == core.ColorWhite {
			rec.White = list
		} else {
			rec.Black = list
		}
	}
	return rec, nil
}

// Restore builds a match from a save record: a fresh starting position is
// set up, each surviving piece is re-matched by index and type against the
// canonical starting order and moved to its saved coordinate, and roster
// entries absent from the record are detached as captured before the save.
func Restore(rec *SaveRecord) (*Game, error) {
	turn, err := core.ParseColorLabel(rec.Turn)
	if err != nil {
		return nil, fmt.Errorf("restore: %w", err)
	}

	g := New()
	g.turn = turn

	for _, color := range []core.Color{core.ColorWhite, core.ColorBlack} {
		saved := rec.White
		if color == core.ColorBlack {
			saved = rec.Black
		}
		if err := g.restoreRoster(color, saved); err != nil {
			return nil, fmt.Errorf("restore %s: %w", color.Label(), err)
		}
	}

	// Rebuild occupancy from the arena: every square holds exactly the
	// piece whose recorded position it is.
	for i := 0; i < 64; i++ {
		g.board.Place(i, board.NoPiece)
	}
	for i := range g.pieces {
		p := &g.pieces[i]
		if !p.Active() {
			continue
		}
		if g.board.OccupantAt(p.Square) != board.NoPiece {
			return nil, fmt.Errorf("restore: duplicate piece on %s", board.CoordOf(p.Square))
		}
		g.board.Place(p.Square, board.PieceID(i))
	}
	return g, nil
}

func (g *Game) restoreRoster(color core.Color, saved []SavedPiece) error {
	lo, hi := rosterRange(color)
	si := 0
	for i := lo; i < hi; i++ {
		p := &g.pieces[i]
		if si < len(saved) && saved[si].Type == p.Type.String() {
			idx, err := board.Resolve(saved[si].Coord)
			if err != nil {
				return err
			}
			p.Square = idx
			si++
			continue
		}
		p.Square = captured
	}
	if si != len(saved) {
		return fmt.Errorf("%d saved pieces could not be matched to the starting roster", len(saved)-si)
	}
	return nil
}
