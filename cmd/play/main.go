// Command play runs a hotseat game in the terminal.
package main

import (
	"bufio"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/iamasit07/connect4/internal/domain"
)

func main() {
	if err := run(os.Stdin, os.Stdout, os.Args[1:]); err != nil {
		fmt.Fprintln(os.Stderr, "play:", err)
		os.Exit(1)
	}
}

func run(in io.Reader, out io.Writer, args []string) error {
	fs := flag.NewFlagSet("play", flag.ContinueOnError)
	fs.SetOutput(out)
	width := fs.Int("width", domain.StandardColumns, "number of columns")
	height := fs.Int("height", domain.StandardRows, "number of rows")
	if err := fs.Parse(args); err != nil {
		return err
	}

	scanner := bufio.NewScanner(in)
	for {
		g, err := domain.NewGame(*width, *height)
		if err != nil {
			return fmt.Errorf("board %dx%d: %w", *width, *height, err)
		}

		done, err := playRound(g, scanner, out)
		if err != nil || done {
			return err
		}

		fmt.Fprint(out, "Play again? [y/N] ")
		if !scanner.Scan() {
			return scanner.Err()
		}
		if answer := strings.ToLower(strings.TrimSpace(scanner.Text())); answer != "y" && answer != "yes" {
			return nil
		}
	}
}

// playRound returns done=true when input ends or the players quit.
func playRound(g *domain.Game, scanner *bufio.Scanner, out io.Writer) (bool, error) {
	fmt.Fprint(out, g.String())
	for !g.IsFinished() {
		fmt.Fprintf(out, "Player %d (%s), choose a column [1-%d]: ", g.ActivePlayer(), symbol(g.ActivePlayer()), g.Width())
		if !scanner.Scan() {
			fmt.Fprintln(out)
			return true, scanner.Err()
		}

		text := strings.TrimSpace(scanner.Text())
		if text == "q" || text == "quit" {
			return true, nil
		}
		column, err := strconv.Atoi(text)
		if err != nil || column < 1 || column > g.Width() {
			fmt.Fprintf(out, "Enter a number between 1 and %d, or q to quit.\n", g.Width())
			continue
		}

		// Full columns are ignored; the same player picks again.
		if _, err := g.DropPiece(column - 1); errors.Is(err, domain.ErrColumnFull) {
			continue
		} else if err != nil {
			return true, err
		}
		fmt.Fprint(out, g.String())
	}

	if g.IsWin() {
		fmt.Fprintf(out, "Player %d (%s) wins!\n", g.Winner(), symbol(g.Winner()))
	} else {
		fmt.Fprintln(out, "It's a draw!")
	}
	return false, nil
}

func symbol(p domain.PlayerID) string {
	if p == domain.Player2 {
		return "O"
	}
	return "X"
}
