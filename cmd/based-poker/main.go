package main

import (
	"fmt"
	"os"
	"time"

	"github.com/alecthomas/kong"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"
	"github.com/coder/quartz"

	"github.com/jgresham/based-poker/internal/randutil"
	"github.com/jgresham/based-poker/internal/server"
	"github.com/jgresham/based-poker/internal/tui"
)

var CLI struct {
	Players    int      `short:"p" default:"4" help:"Number of seats at the table (2-10)"`
	Chips      int      `default:"1000" help:"Starting chips per player"`
	SmallBlind int      `default:"5" help:"Small blind amount"`
	BigBlind   int      `default:"10" help:"Big blind amount"`
	Names      []string `short:"n" help:"Player names (defaults to Player 1..N)"`
	Seed       int64    `help:"RNG seed for reproducible deals (0 = time-based)"`
	Debug      bool     `help:"Enable debug logging to stderr"`
}

func main() {
	ctx := kong.Parse(&CLI)

	logger := log.New(os.Stderr)
	if CLI.Debug {
		logger.SetLevel(log.DebugLevel)
	} else {
		logger.SetLevel(log.WarnLevel)
	}

	seed := CLI.Seed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}

	table := server.NewTable(server.TableConfig{
		Name:          "local",
		MaxPlayers:    10,
		SmallBlind:    CLI.SmallBlind,
		BigBlind:      CLI.BigBlind,
		StartingChips: CLI.Chips,
		// No turn timer in hot-seat play
		TurnTimeoutSeconds: 0,
	}, logger, quartz.NewReal(), randutil.New(seed))

	names := make([]string, CLI.Players)
	for i := range names {
		if i < len(CLI.Names) && CLI.Names[i] != "" {
			names[i] = CLI.Names[i]
		} else {
			names[i] = fmt.Sprintf("Player %d", i+1)
		}
	}

	model, err := tui.NewModel(table, names, logger)
	if err != nil {
		fmt.Printf("Failed to start table: %v\n", err)
		ctx.Exit(1)
	}

	if _, err := tea.NewProgram(model, tea.WithAltScreen()).Run(); err != nil {
		fmt.Printf("Error running program: %v\n", err)
		ctx.Exit(1)
	}
}
