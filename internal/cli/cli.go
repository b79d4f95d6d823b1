// FILE: internal/cli/cli.go
package cli

import (
	"fmt"
	"io"
	"strings"

	"chessvar/internal/core"
	"chessvar/internal/game"
)

type CommandType int

const (
	CmdNone CommandType = iota
	CmdNew
	CmdMove
	CmdBoard
	CmdSave
	CmdLoad
	CmdState
	CmdColor
	CmdHelp
	CmdQuit
)

type Command struct {
	Type CommandType
	Args []string
	Raw  string
}

type ColorTheme string

const (
	ThemeOff   ColorTheme = "off"
	ThemeBrown ColorTheme = "brown"
	ThemeGreen ColorTheme = "green"
	ThemeGray  ColorTheme = "gray"
)

type themeColors struct {
	lightBg string
	darkBg  string
	white   string
	black   string
	reset   string
}

var themes = map[ColorTheme]themeColors{
	ThemeOff: {},
	ThemeBrown: {
		lightBg: "\033[48;5;230m", // Beige
		darkBg:  "\033[48;5;94m",  // Brown
		white:   "\033[97m",
		black:   "\033[30m",
		reset:   "\033[0m",
	},
	ThemeGreen: {
		lightBg: "\033[48;5;157m", // Light green
		darkBg:  "\033[48;5;22m",  // Dark green
		white:   "\033[97m",
		black:   "\033[30m",
		reset:   "\033[0m",
	},
	ThemeGray: {
		lightBg: "\033[48;5;251m", // Light gray
		darkBg:  "\033[48;5;240m", // Dark gray
		white:   "\033[97m",
		black:   "\033[30m",
		reset:   "\033[0m",
	},
}

type CLI struct {
	output io.Writer
	theme  ColorTheme
}

func New(output io.Writer, theme ColorTheme) *CLI {
	if _, ok := themes[theme]; !ok {
		theme = ThemeOff
	}
	return &CLI{output: output, theme: theme}
}

// ParseCommand interprets one input line. A bare pair of coordinates
// ("e2 e4" or "e2e4") is a move.
func ParseCommand(input string) *Command {
	parts := strings.Fields(input)
	if len(parts) == 0 {
		return &Command{Type: CmdNone}
	}

	cmd := parts[0]
	args := parts[1:]

	switch cmd {
	case "new":
		return &Command{Type: CmdNew}
	case "board":
		return &Command{Type: CmdBoard}
	case "save":
		return &Command{Type: CmdSave, Args: args, Raw: input}
	case "load":
		return &Command{Type: CmdLoad, Args: args, Raw: input}
	case "state":
		return &Command{Type: CmdState}
	case "color":
		return &Command{Type: CmdColor, Args: args}
	case "help", "?":
		return &Command{Type: CmdHelp}
	case "quit", "exit":
		return &Command{Type: CmdQuit}
	default:
		// Assume it's a move: "e2e4" or "e2 e4"
		if len(parts) == 1 && len(cmd) == 4 {
			return &Command{Type: CmdMove, Args: []string{cmd[:2], cmd[2:]}}
		}
		if len(parts) == 2 {
			return &Command{Type: CmdMove, Args: parts}
		}
		return &Command{Type: CmdMove, Args: parts, Raw: input}
	}
}

func (c *CLI) SetTheme(theme ColorTheme) error {
	if _, ok := themes[theme]; !ok {
		return fmt.Errorf("invalid theme: %s (use: off, brown, green, gray)", theme)
	}
	c.theme = theme
	return nil
}

func (c *CLI) ShowMessage(msg string) {
	fmt.Fprintln(c.output, msg)
}

func (c *CLI) ShowError(err error) {
	c.ShowMessage(fmt.Sprintf("Error: %v", err))
}

// pieceLetter renders a piece as one letter, uppercase for White.
func pieceLetter(info *game.PieceInfo) byte {
	var ch byte
	switch info.Type {
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
	if info.Color == core.ColorWhite {
		ch -= 'a' - 'A'
	}
	return ch
}

func (c *CLI) DisplayBoard(g *game.Game) {
	snap := g.BoardSnapshot()
	theme := themes[c.theme]
	var sb strings.Builder

	sb.WriteString("\n  a b c d e f g h\n")

	for r := 8; r >= 1; r-- {
		sb.WriteString(fmt.Sprintf("%d ", r))
		for f := 0; f < 8; f++ {
			coord := fmt.Sprintf("%c%d", 'a'+f, r)
			info := snap[coord]

			if c.theme == ThemeOff {
				if info == nil {
					sb.WriteString(". ")
				} else {
					sb.WriteString(fmt.Sprintf("%c ", pieceLetter(info)))
				}
			} else {
				bg := theme.darkBg
				if (r+f)%2 == 0 {
					bg = theme.lightBg
				}

				if info == nil {
					sb.WriteString(fmt.Sprintf("%s  %s", bg, theme.reset))
				} else {
					color := theme.black
					if info.Color == core.ColorWhite {
						color = theme.white
					}
					sb.WriteString(fmt.Sprintf("%s%s%c %s", bg, color, pieceLetter(info), theme.reset))
				}
			}
		}
		sb.WriteString(fmt.Sprintf(" %d\n", r))
	}
	sb.WriteString("  a b c d e f g h\n")

	c.ShowMessage(sb.String())
}

func (c *CLI) ShowMoveResult(result *game.MoveResult) {
	if result.Captured != nil {
		c.ShowMessage(fmt.Sprintf("%s x %s %s (%s to %s)",
			core.OppositeColor(result.Captured.Color).Label(),
			result.Captured.Color.Label(), result.Captured.Type.Abbrev(),
			result.From, result.To))
	}
	if result.State != core.StateUnfinished {
		c.ShowGameOver(result.State)
		return
	}
	c.ShowMessage(fmt.Sprintf("%s to move.", result.Turn.Label()))
}

func (c *CLI) ShowState(g *game.Game) {
	c.ShowMessage(fmt.Sprintf("Turn: %s", g.Turn().Label()))
	c.ShowMessage(fmt.Sprintf("State: %s", g.State()))
}

func (c *CLI) ShowGameOver(state core.State) {
	c.ShowMessage(fmt.Sprintf("\nGame Over: %s", state))
	c.ShowMessage("Start a new game with 'new', or 'load <file>' a saved one.")
}

func (c *CLI) ShowHelp() {
	help := `Commands:
  new              - Start a new game
  <move>           - Make a move (e.g., "e2e4" or "e2 e4")
  board            - Redraw the board
  save <file>      - Save the game to a .chv file
  load <file>      - Load a game from a .chv file
  state            - Show turn and game state
  color <theme>    - Set board color theme (off|brown|green|gray)
  quit/exit        - Exit the program
  help/?           - Show this help message

The game ends the moment a player captures the opponent's last
piece of any one type (last pawn, last rook, the king, ...).`

	c.ShowMessage(help)
}

func (c *CLI) ShowWelcome() {
	c.ShowMessage("Welcome to type-elimination chess!")
	c.ShowMessage("Commands: new, <move>, board, save <file>, load <file>, state, help/?, quit")
	c.ShowMessage("Capture the last of any one piece type to win.")
	c.ShowMessage("")
}
