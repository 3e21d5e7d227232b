package cli

import (
	"bufio"
	"chessbot/src/base"
	"chessbot/src/game"
	"chessbot/src/logx"
	"chessbot/src/view"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"golang.org/x/term"
)

const helpText = `Commands:
  e2          select a square (a second square completes the move)
  e2e4        move in one line (promotion is always to a queen)
  undo        take back the last move pair
  reset       new game, AI off
  flip        turn the board around
  ai          toggle the engine for the side to move
  diff N      engine difficulty 1..50
  fen         print the position
  help        this text
  q           quit
An empty line lets the engine play one move when both sides are AI.`

type DrawFunc func(w io.Writer, s view.Snapshot)

type CLIProcessing struct {
	ctrl   *game.Controller
	draw   DrawFunc
	in     io.Reader
	out    io.Writer
	prompt bool
	logx   logx.Logger
}

func NewCLI(ctrl *game.Controller, draw DrawFunc, logx logx.Logger) *CLIProcessing {
	return &CLIProcessing{
		ctrl: ctrl, draw: draw, logx: logx,
		in: os.Stdin, out: os.Stdout,
		prompt: term.IsTerminal(int(os.Stdin.Fd())),
	}
}

// WithIO replaces stdin/stdout; no prompt is printed.
func (c *CLIProcessing) WithIO(in io.Reader, out io.Writer) *CLIProcessing {
	c.in, c.out, c.prompt = in, out, false
	return c
}

// RunLineMode reads one command per line until q or EOF. An oracle failure
// ends the loop with an error.
func (c *CLIProcessing) RunLineMode() error {
	scanner := bufio.NewScanner(c.in)
	c.redraw()
	fmt.Fprintln(c.out, "Type 'help' for commands.")

	for {
		if err := c.driveOracle(); err != nil {
			return err
		}
		if c.ctrl.QuitRequested() {
			return nil
		}
		if c.prompt {
			fmt.Fprint(c.out, "> ")
		}
		if !scanner.Scan() {
			break
		}
		c.execute(strings.TrimSpace(scanner.Text()))
	}
	if err := scanner.Err(); err != nil {
		return err
	}
	c.ctrl.HandleAction(game.Quit{})
	return nil
}

// execute applies one command line to the controller
func (c *CLIProcessing) execute(line string) {
	fields := strings.Fields(strings.ToLower(line))
	if len(fields) == 0 {
		return
	}

	switch fields[0] {
	case "q", "quit", "exit":
		c.ctrl.HandleAction(game.Quit{})
		return
	case "help", "?":
		fmt.Fprintln(c.out, helpText)
		return
	case "fen":
		fmt.Fprintln(c.out, c.ctrl.FEN())
		return
	case "undo":
		c.ctrl.HandleAction(game.ClickButton{Button: view.ButtonUndo})
	case "reset", "new":
		c.ctrl.HandleAction(game.ClickButton{Button: view.ButtonReset})
	case "flip":
		c.ctrl.HandleAction(game.ClickButton{Button: view.ButtonFlip})
	case "ai":
		c.ctrl.HandleAction(game.ClickButton{Button: view.ButtonToggleAI})
	case "diff", "difficulty":
		if len(fields) != 2 {
			fmt.Fprintln(c.out, "usage: diff N")
			return
		}
		d, err := strconv.Atoi(fields[1])
		if err != nil {
			fmt.Fprintf(c.out, "bad difficulty %q\n", fields[1])
			return
		}
		c.ctrl.HandleAction(game.SetDifficulty{Value: d})
	default:
		if !c.squares(fields[0]) {
			fmt.Fprintf(c.out, "unknown command %q, try 'help'\n", line)
			return
		}
	}
	c.redraw()
}

// squares handles "e2" and "e2e4"/"e7e8q" as board clicks
func (c *CLIProcessing) squares(s string) bool {
	switch len(s) {
	case 2:
		sq, err := base.SquareFromAlgebraic(s)
		if err != nil {
			return false
		}
		c.selectAndReport(sq)
		return true
	case 4, 5:
		mv, err := base.ParseUCIMove(s)
		if err != nil {
			return false
		}
		before := len(c.ctrl.History())
		// clicking a pending selection again drops it
		if sel, ok := c.ctrl.Selection(); ok {
			c.ctrl.HandleAction(game.SelectSquare{Square: sel})
		}
		c.ctrl.HandleAction(game.SelectSquare{Square: mv.From})
		c.ctrl.HandleAction(game.SelectSquare{Square: mv.To})
		if len(c.ctrl.History()) == before {
			c.reject(s)
		}
		return true
	}
	return false
}

func (c *CLIProcessing) selectAndReport(sq base.Square) {
	before := len(c.ctrl.History())
	_, hadSel := c.ctrl.Selection()
	c.ctrl.HandleAction(game.SelectSquare{Square: sq})
	if hadSel && len(c.ctrl.History()) == before {
		c.reject(sq.String())
	}
}

func (c *CLIProcessing) reject(s string) {
	switch c.ctrl.State() {
	case game.Terminal:
		fmt.Fprintln(c.out, "game over: reset or undo")
	case game.AwaitingOracle:
		fmt.Fprintln(c.out, "engine to move")
	default:
		fmt.Fprintf(c.out, "illegal move: %s\n", s)
	}
}

// driveOracle lets the engine move until a human is to move. With both sides
// on AI it plays a single ply and waits for the next line.
func (c *CLIProcessing) driveOracle() error {
	for c.ctrl.State() == game.AwaitingOracle {
		if err := c.ctrl.DriveOracleIfNeeded(); err != nil {
			return err
		}
		c.redraw()
		if c.ctrl.AIEnabled(base.White) && c.ctrl.AIEnabled(base.Black) {
			return nil
		}
	}
	return nil
}

func (c *CLIProcessing) redraw() {
	s := c.ctrl.Snapshot()
	c.draw(c.out, s)
	PrintStatus(c.out, s, c.ctrl.FEN())
}
