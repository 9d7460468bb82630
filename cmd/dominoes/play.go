package main

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/log"

	"github.com/lox/dominoes/cmd/dominoes/shared"
	"github.com/lox/dominoes/internal/game"
)

var (
	titleStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FAFAFA")).
			Background(lipgloss.Color("#7D56F4")).
			Padding(0, 1).
			Bold(true)

	playableStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("10"))

	errorStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("9"))
)

// errQuit signals that the player left the match rather than finishing it.
var errQuit = errors.New("player quit")

// PlayCmd seats the player against automatic opponents and reads moves from
// stdin.
type PlayCmd struct {
	Name      string `kong:"default='You',help='Your seat name'"`
	Opponents int    `kong:"default='1',help='Number of automatic opponents (1-3)'"`
	HandSize  int    `kong:"default='7',help='Tiles dealt to each player'"`
	Seed      *int64 `kong:"help='Deterministic RNG seed (optional)'"`
	Debug     bool   `kong:"help='Enable debug logging'"`
}

func (c *PlayCmd) Run() error {
	if c.Opponents < 1 || c.Opponents > 3 {
		return fmt.Errorf("opponents must be between 1 and 3, got %d", c.Opponents)
	}

	// Keep the console clean: engine logs go nowhere unless asked for.
	logger := log.New(io.Discard)
	if c.Debug {
		logger = shared.SetupLogger(true)
	}

	var seed int64
	if c.Seed != nil {
		seed = *c.Seed
	} else {
		seed = time.Now().UnixNano()
	}

	human := game.NewInteractive()

	seats := []game.Seat{{Name: c.Name, Chooser: human}}
	for i := 1; i <= c.Opponents; i++ {
		seats = append(seats, game.Seat{Name: fmt.Sprintf("AI-%d", i)})
	}

	bus := game.NewEventBus()
	bus.Subscribe(&consolePrinter{
		formatter: game.NewEventFormatter(game.FormattingOptions{Perspective: c.Name}),
	})

	match, err := game.NewMatch(seats,
		game.WithSeed(seed),
		game.WithHandSize(c.HandSize),
		game.WithEventBus(bus),
		game.WithLogger(logger),
	)
	if err != nil {
		return err
	}

	fmt.Print(titleStyle.Render(" Dominoes "))
	fmt.Println()
	fmt.Println()

	if err := match.Deal(); err != nil {
		return err
	}

	ctx, cancel := context.WithCancel(shared.SetupSignalHandler())
	defer cancel()

	done := make(chan error, 1)
	go func() {
		done <- playLoop(ctx, match)
	}()

	scanner := bufio.NewScanner(os.Stdin)
	for {
		select {
		case req := <-human.Requests():
			if err := c.handleTurn(ctx, scanner, human, req); err != nil {
				cancel()
				<-done
				fmt.Println("\nMatch abandoned.")
				return nil
			}
		case err := <-done:
			if err != nil && !errors.Is(err, context.Canceled) {
				return err
			}
			return nil
		}
	}
}

// playLoop drives the match to its end. It blocks inside AttemptTurn
// whenever the human seat is prompted.
func playLoop(ctx context.Context, match *game.Match) error {
	for !match.State().Terminal() {
		if _, err := match.AttemptTurn(ctx); err != nil {
			return err
		}
	}
	_, err := match.Resolve()
	return err
}

// handleTurn shows the prompt for one move request and reads commands until
// a move is submitted. It returns errQuit when the player leaves.
func (c *PlayCmd) handleTurn(ctx context.Context, scanner *bufio.Scanner, human *game.Interactive, req game.MoveRequest) error {
	if req.Rejected != nil {
		fmt.Println(errorStyle.Render(fmt.Sprintf("move refused: %v", req.Rejected)))
	}

	fmt.Println()
	printBoard(req.Board)
	printHand(req)
	fmt.Printf("Boneyard: %d tiles\n", req.BoneyardCount)
	if len(req.Playable) == 0 {
		if req.BoneyardCount > 0 {
			fmt.Println("Nothing playable; \"draw\" takes a tile.")
		} else {
			fmt.Println("Nothing playable and the boneyard is empty; \"draw\" passes.")
		}
	}

	for {
		fmt.Print("> ")
		if !scanner.Scan() {
			return errQuit
		}
		if ctx.Err() != nil {
			return errQuit
		}

		fields := strings.Fields(strings.ToLower(strings.TrimSpace(scanner.Text())))
		if len(fields) == 0 {
			continue
		}

		switch fields[0] {
		case "play", "p":
			move, ok := parsePlay(req, fields)
			if !ok {
				continue
			}
			if err := human.Submit(move); err != nil {
				fmt.Println(errorStyle.Render(err.Error()))
				continue
			}
			return nil

		case "draw", "d", "pass":
			if err := human.Submit(game.Move{}); err != nil {
				fmt.Println(errorStyle.Render(err.Error()))
				continue
			}
			return nil

		case "board", "b":
			printBoard(req.Board)

		case "hand", "h":
			printHand(req)

		case "help", "?":
			printHelp()

		case "quit", "exit", "q":
			return errQuit

		default:
			fmt.Printf("unknown command %q\n", fields[0])
			printHelp()
		}
	}
}

// parsePlay turns "play <n> [left|right]" into a move against the prompt's
// hand. It reports problems to the player and returns ok=false.
func parsePlay(req game.MoveRequest, fields []string) (game.Move, bool) {
	if len(fields) < 2 {
		fmt.Println("usage: play <n> [left|right]")
		return game.Move{}, false
	}

	n, err := strconv.Atoi(fields[1])
	if err != nil || n < 1 || n > len(req.Hand) {
		fmt.Printf("no tile numbered %q; \"hand\" lists them\n", fields[1])
		return game.Move{}, false
	}

	side := game.SideAuto
	if len(fields) > 2 {
		switch fields[2] {
		case "left", "l":
			side = game.SideLeft
		case "right", "r":
			side = game.SideRight
		default:
			fmt.Printf("unknown side %q; use left or right\n", fields[2])
			return game.Move{}, false
		}
	}

	return game.Move{Tile: req.Hand[n-1], Side: side}, true
}

func printBoard(board game.BoardSnapshot) {
	if board.Empty {
		fmt.Println("Board: empty, any tile opens")
		return
	}
	fmt.Printf("Board: %s (ends %d and %d)\n", board, board.LeftEnd, board.RightEnd)
}

func printHand(req game.MoveRequest) {
	var b strings.Builder
	for i, t := range req.Hand {
		if i > 0 {
			b.WriteString("  ")
		}
		entry := fmt.Sprintf("%d.%s", i+1, t)
		if req.CanPlay(t) {
			entry = playableStyle.Render(entry + "*")
		}
		b.WriteString(entry)
	}
	fmt.Printf("Hand: %s\n", b.String())
}

func printHelp() {
	fmt.Println("commands:")
	fmt.Println("  play <n> [left|right]  play hand tile n (side picked for you if omitted)")
	fmt.Println("  draw                   take a tile from the boneyard, or pass when it is empty")
	fmt.Println("  board                  show the chain and its open ends")
	fmt.Println("  hand                   show your tiles, playable ones marked *")
	fmt.Println("  quit                   abandon the match")
}

// consolePrinter renders match events as they happen.
type consolePrinter struct {
	formatter *game.EventFormatter
}

func (p *consolePrinter) OnEvent(event game.MatchEvent) {
	if line := p.formatter.Format(event); line != "" {
		fmt.Println(line)
	}
}
