// Command salvo is the terminal game: a single player match against
// computer opponents or a hot-seat match for 2-4 players.
package main

import (
	"flag"
	"fmt"
	"io"
	"log"
	"log/slog"
	"os"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/brensch/salvo/game"
	"github.com/brensch/salvo/logging"
)

func main() {
	fs := flag.NewFlagSet(os.Args[0], flag.ContinueOnError)
	fs.SetOutput(os.Stderr)

	seed := fs.Int64("seed", 0, "Seed for computer fleets and targeting; 0 derives one from the clock")
	board := fs.Int("board", game.DefaultConfig().BoardSize, "Board size")
	computers := fs.Int("computers", 3, "Computer opponents in single player (1-3)")
	corner := fs.Bool("corner-contact", false, "Allow ships to touch diagonally")
	logPath := fs.String("log", "", "Write logs to this file")
	logFormat := fs.String("log-format", "text", "Structured log format: pretty, json or text")
	if err := fs.Parse(os.Args[1:]); err != nil {
		log.Fatalf("flag parse: %v", err)
	}

	cfg := game.DefaultConfig()
	cfg.BoardSize = *board
	cfg.AllowCornerContact = *corner
	if err := cfg.Validate(); err != nil {
		log.Fatalf("config: %v", err)
	}
	if *computers < 1 || *computers > cfg.MaxCompetitors-1 {
		log.Fatalf("computers must be 1..%d, got %d", cfg.MaxCompetitors-1, *computers)
	}
	if *seed == 0 {
		*seed = time.Now().UnixNano()
	}

	// Anything written to the terminal would corrupt the screen.
	var logOut io.Writer = io.Discard
	if *logPath != "" {
		f, err := os.OpenFile(*logPath, os.O_RDWR|os.O_CREATE|os.O_APPEND, 0o644)
		if err != nil {
			log.Fatalf("open log file: %v", err)
		}
		defer f.Close()
		logOut = f
	}
	logger, err := logging.New(logOut, *logFormat, slog.LevelInfo)
	if err != nil {
		log.Fatalf("logger: %v", err)
	}
	log.SetOutput(logOut)

	p := tea.NewProgram(newModel(settings{
		Config:    cfg,
		Seed:      *seed,
		Computers: *computers,
		Logger:    logger,
	}), tea.WithAltScreen())
	if _, err := p.Run(); err != nil {
		fmt.Fprintf(os.Stderr, "tui: %v\n", err)
		os.Exit(1)
	}
}
