// Package main implements the local interactive console for the
// type-elimination chess variant.
package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"io"
	"os"
	"strings"

	"chessvar/internal/cli"
	"chessvar/internal/game"

	"github.com/chzyer/readline"
	"golang.org/x/term"
)

func main() {
	theme := flag.String("theme", "", "Board color theme: off, brown, green, gray (default: brown on a terminal)")
	flag.Parse()

	// Default to a colored theme only when stdout is a real terminal.
	selected := cli.ColorTheme(*theme)
	if *theme == "" {
		selected = cli.ThemeOff
		if term.IsTerminal(int(os.Stdout.Fd())) {
			selected = cli.ThemeBrown
		}
	}

	view := cli.New(os.Stdout, selected)

	rl, err := readline.NewEx(&readline.Config{
		Prompt:          "chessvar > ",
		HistoryFile:     ".chessvar_history",
		InterruptPrompt: "^C",
		EOFPrompt:       "exit",
	})
	if err != nil {
		fmt.Printf("Failed to start: %v\n", err)
		os.Exit(1)
	}
	defer rl.Close()

	view.ShowWelcome()

	g := game.New()
	view.DisplayBoard(g)

	for {
		rl.SetPrompt(fmt.Sprintf("%s > ", g.Turn().Label()))

		line, err := rl.Readline()
		if err == io.EOF || err == readline.ErrInterrupt {
			break
		}
		if err != nil {
			continue
		}

		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}

		cmd := cli.ParseCommand(line)
		switch cmd.Type {
		case cli.CmdNone:
			continue

		case cli.CmdNew:
			g = game.New()
			view.ShowMessage("New game started. White to move.")
			view.DisplayBoard(g)

		case cli.CmdMove:
			if len(cmd.Args) != 2 {
				view.ShowMessage("Moves take two coordinates, e.g. 'e2 e4' or 'e2e4'.")
				continue
			}
			result, err := g.MakeMove(cmd.Args[0], cmd.Args[1])
			if err != nil {
				view.ShowError(err)
				continue
			}
			view.DisplayBoard(g)
			view.ShowMoveResult(result)

		case cli.CmdBoard:
			view.DisplayBoard(g)

		case cli.CmdSave:
			if len(cmd.Args) != 1 {
				view.ShowMessage("Usage: save <file>")
				continue
			}
			if err := saveToFile(g, cmd.Args[0]); err != nil {
				view.ShowError(err)
				continue
			}
			view.ShowMessage(fmt.Sprintf("Saved to %s", cmd.Args[0]))

		case cli.CmdLoad:
			if len(cmd.Args) != 1 {
				view.ShowMessage("Usage: load <file>")
				continue
			}
			loaded, err := loadFromFile(cmd.Args[0])
			if err != nil {
				view.ShowError(err)
				continue
			}
			g = loaded
			view.ShowMessage(fmt.Sprintf("Loaded %s. %s to move.", cmd.Args[0], g.Turn().Label()))
			view.DisplayBoard(g)

		case cli.CmdState:
			view.ShowState(g)

		case cli.CmdColor:
			if len(cmd.Args) != 1 {
				view.ShowMessage("Usage: color <off|brown|green|gray>")
				continue
			}
			if err := view.SetTheme(cli.ColorTheme(cmd.Args[0])); err != nil {
				view.ShowError(err)
				continue
			}
			view.DisplayBoard(g)

		case cli.CmdHelp:
			view.ShowHelp()

		case cli.CmdQuit:
			return
		}
	}
}

// saveToFile writes the match's save record as a .chv JSON document.
func saveToFile(g *game.Game, path string) error {
	rec, err := g.Save()
	if err != nil {
		return err
	}
	data, err := json.Marshal(rec)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}

func loadFromFile(path string) (*game.Game, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var rec game.SaveRecord
	if err := json.Unmarshal(data, &rec); err != nil {
		return nil, fmt.Errorf("invalid save file: %w", err)
	}
	return game.Restore(&rec)
}
