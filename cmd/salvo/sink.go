package main

import (
	"sync"

	"github.com/brensch/salvo/game"
)

// recorder collects board changes while a command is being handled so the
// view can flash the cells that just changed.
type recorder struct {
	mu      sync.Mutex
	changes []game.CellChange
}

func (r *recorder) CellChanged(c game.CellChange) {
	if c.Cursor {
		return
	}
	r.mu.Lock()
	r.changes = append(r.changes, c)
	r.mu.Unlock()
}

// Drain returns everything recorded since the last call.
func (r *recorder) Drain() []game.CellChange {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := r.changes
	r.changes = nil
	return out
}
