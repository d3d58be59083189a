package main

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"time"

	"github.com/gorilla/websocket"

	"github.com/brensch/salvo/game"
)

// message mirrors the viewer's /ws/live frames.
type message struct {
	Type   string       `json:"type"`
	Start  *startFrame  `json:"start,omitempty"`
	Cell   *cellFrame   `json:"cell,omitempty"`
	Result *resultFrame `json:"result,omitempty"`
}

type startFrame struct {
	MatchID   string   `json:"match_id"`
	Seed      int64    `json:"seed"`
	BoardSize int      `json:"board_size"`
	Names     []string `json:"names"`
}

type cellFrame struct {
	Competitor int    `json:"competitor"`
	Row        int    `json:"row"`
	Col        int    `json:"col"`
	State      string `json:"state"`
	Cursor     bool   `json:"cursor,omitempty"`
}

type resultFrame struct {
	Verdict   string   `json:"verdict"`
	Winners   []int    `json:"winners"`
	Shots     int      `json:"shots"`
	Summaries []string `json:"summaries"`
}

// spectator is the client-side copy of every board in the match.
type spectator struct {
	MatchID string
	Seed    int64
	Names   []string
	Size    int
	Boards  [][]game.CellState
	Last    map[int]game.Coord // last resolved cell per board
	Shots   int

	Done      bool
	Verdict   string
	Winners   []int
	Summaries []string
}

// apply folds one frame into the spectator. changed reports whether a shot
// landed or the match ended, which is when the screen is worth redrawing.
func (s *spectator) apply(msg message) (changed bool, err error) {
	switch msg.Type {
	case "start":
		if msg.Start == nil {
			return false, fmt.Errorf("start frame without body")
		}
		s.MatchID = msg.Start.MatchID
		s.Seed = msg.Start.Seed
		s.Names = msg.Start.Names
		s.Size = msg.Start.BoardSize
		s.Boards = make([][]game.CellState, len(s.Names))
		for i := range s.Boards {
			s.Boards[i] = make([]game.CellState, s.Size*s.Size)
		}
		s.Last = make(map[int]game.Coord)
		return true, nil
	case "cell":
		c := msg.Cell
		if c == nil || s.Boards == nil {
			return false, fmt.Errorf("cell frame before start")
		}
		if c.Competitor < 0 || c.Competitor >= len(s.Boards) || c.Row < 0 || c.Row >= s.Size || c.Col < 0 || c.Col >= s.Size {
			return false, fmt.Errorf("cell frame out of range: %+v", *c)
		}
		st, ok := game.ParseCellState(c.State)
		if !ok {
			return false, fmt.Errorf("unknown cell state %q", c.State)
		}
		i := c.Row*s.Size + c.Col
		prev := s.Boards[c.Competitor][i]
		s.Boards[c.Competitor][i] = st
		if st.Resolved() && !prev.Resolved() {
			s.Shots++
			s.Last[c.Competitor] = game.Coord{Row: c.Row, Col: c.Col}
			return true, nil
		}
		return false, nil
	case "result":
		if msg.Result == nil {
			return false, fmt.Errorf("result frame without body")
		}
		s.Done = true
		s.Verdict = msg.Result.Verdict
		s.Winners = msg.Result.Winners
		s.Summaries = msg.Result.Summaries
		return true, nil
	}
	return false, nil
}

// follow connects to url and feeds every frame to s, calling onChange when
// the screen should be redrawn. It returns nil once the server closes the
// feed normally.
func follow(ctx context.Context, url string, readTimeout time.Duration, s *spectator, onChange func(*spectator)) error {
	dialer := websocket.Dialer{
		HandshakeTimeout: 10 * time.Second,
	}
	conn, _, err := dialer.DialContext(ctx, url, nil)
	if err != nil {
		return fmt.Errorf("failed to connect: %w", err)
	}
	defer conn.Close()

	done := make(chan struct{})
	defer close(done)
	go func() {
		select {
		case <-ctx.Done():
			_ = conn.Close()
		case <-done:
		}
	}()

	for {
		_ = conn.SetReadDeadline(time.Now().Add(readTimeout))
		_, data, err := conn.ReadMessage()
		if err != nil {
			if websocket.IsCloseError(err, websocket.CloseNormalClosure, websocket.CloseGoingAway) {
				return nil
			}
			if ctx.Err() != nil {
				return ctx.Err()
			}
			if s.Done {
				return nil
			}
			return fmt.Errorf("read error: %w", err)
		}

		var msg message
		if err := json.Unmarshal(data, &msg); err != nil {
			log.Printf("Failed to parse frame: %v", err)
			continue
		}
		changed, err := s.apply(msg)
		if err != nil {
			return err
		}
		if changed && onChange != nil {
			onChange(s)
		}
	}
}
