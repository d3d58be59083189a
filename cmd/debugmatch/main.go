// Command debugmatch plays one seeded arena match, logging every board after
// every shot, and optionally writes it where the viewer can find it.
package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"log/slog"
	"os"
	"time"

	"github.com/brensch/salvo/executor/selfplay"
	"github.com/brensch/salvo/game"
	"github.com/brensch/salvo/logging"
	"github.com/brensch/salvo/store"
)

func main() {
	seed := flag.Int64("seed", 0, "Match seed; 0 derives one from the clock")
	players := flag.Int("players", 2, "Competitors (2-4)")
	board := flag.Int("board", game.DefaultConfig().BoardSize, "Board size")
	corner := flag.Bool("corner-contact", false, "Allow ships to touch diagonally")
	delay := flag.Duration("delay", 0, "Pause between shots")
	outDir := flag.String("out-dir", "", "Write the match to this arena directory")
	viewer := flag.String("viewer", "http://127.0.0.1:8080", "Viewer base URL")
	logFormat := flag.String("log-format", "pretty", "Structured log format: pretty, json or text")
	flag.Parse()

	if *seed == 0 {
		*seed = time.Now().UnixNano()
	}
	cfg := game.DefaultConfig()
	cfg.BoardSize = *board
	cfg.AllowCornerContact = *corner

	logger, err := logging.New(os.Stderr, *logFormat, slog.LevelDebug)
	if err != nil {
		log.Fatalf("logger: %v", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Minute)
	defer cancel()

	log.Printf("Playing debug match: seed=%d players=%d board=%d", *seed, *players, *board)
	out, err := selfplay.PlayMatch(ctx, selfplay.MatchOptions{
		Config:  cfg,
		Seats:   *players,
		Seed:    *seed,
		Logger:  logger,
		Verbose: true,
		Delay:   *delay,
	})
	if err != nil {
		log.Fatalf("Failed to play debug match: %v", err)
	}

	log.Printf("Match complete: %d shots, verdict: %s, winners: %v", out.Result.Shots, out.Result.Verdict, out.Result.Winners)
	for _, s := range out.Summaries {
		fmt.Println(s)
	}

	if *outDir == "" {
		return
	}
	shotsPath, err := store.WriteShotBatchParquetAtomic(*outDir, out.Shots)
	if err != nil {
		log.Fatalf("Failed to write shots: %v", err)
	}
	matchPath, err := store.WriteMatchBatchParquetAtomic(*outDir, []store.MatchRow{out.Match})
	if err != nil {
		log.Fatalf("Failed to write match: %v", err)
	}
	log.Printf("Debug match written to: %s, %s", matchPath, shotsPath)

	fmt.Println()
	fmt.Println("═══════════════════════════════════════════════════════════════")
	fmt.Printf("  Shots: %s/api/matches/%s/shots\n", *viewer, out.MatchID)
	if *board == game.DefaultConfig().BoardSize && !*corner {
		// The live feed always plays the default rules.
		fmt.Printf("  Replay live: %s/ws/live?seed=%d&players=%d\n", *viewer, *seed, *players)
	}
	fmt.Println("═══════════════════════════════════════════════════════════════")
}
