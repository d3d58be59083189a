// Command spectate follows a live arena match from the viewer's websocket
// feed and redraws every board after each shot.
package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"net/url"
	"os"
	"os/signal"
	"strconv"
	"syscall"
	"time"
)

const clearScreen = "\033[H\033[2J"

func main() {
	fs := flag.NewFlagSet(os.Args[0], flag.ContinueOnError)
	fs.SetOutput(os.Stderr)

	addr := fs.String("addr", "127.0.0.1:8080", "Viewer address")
	seed := fs.Int64("seed", 0, "Match seed; 0 lets the viewer pick one")
	players := fs.Int("players", 2, "Competitors (2-4)")
	delay := fs.Duration("delay", 150*time.Millisecond, "Pause between shots")
	plain := fs.Bool("plain", false, "Only print the final boards")
	if err := fs.Parse(os.Args[1:]); err != nil {
		log.Fatalf("flag parse: %v", err)
	}

	q := url.Values{}
	if *seed != 0 {
		q.Set("seed", strconv.FormatInt(*seed, 10))
	}
	q.Set("players", strconv.Itoa(*players))
	q.Set("delay", delay.String())
	u := url.URL{Scheme: "ws", Host: *addr, Path: "/ws/live", RawQuery: q.Encode()}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	var onChange func(*spectator)
	if !*plain {
		onChange = func(s *spectator) {
			fmt.Print(clearScreen + render(s))
		}
	}

	log.Printf("Following %s", u.String())
	s := &spectator{}
	// Leave room for the server's pause between shots.
	readTimeout := *delay + 30*time.Second
	if err := follow(ctx, u.String(), readTimeout, s, onChange); err != nil {
		log.Fatalf("spectate: %v", err)
	}
	if *plain {
		fmt.Print(render(s))
	}
}
