package main

import (
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/brensch/salvo/game"
	"github.com/brensch/salvo/rules"
)

func tinySettings(catalog ...int) settings {
	return settings{
		Config:    game.Config{BoardSize: 5, Catalog: catalog, MaxCompetitors: 4},
		Seed:      42,
		Computers: 1,
	}
}

func keyMsg(k string) tea.KeyMsg {
	switch k {
	case "up":
		return tea.KeyMsg{Type: tea.KeyUp}
	case "down":
		return tea.KeyMsg{Type: tea.KeyDown}
	case "left":
		return tea.KeyMsg{Type: tea.KeyLeft}
	case "right":
		return tea.KeyMsg{Type: tea.KeyRight}
	case "enter":
		return tea.KeyMsg{Type: tea.KeyEnter}
	case "tab":
		return tea.KeyMsg{Type: tea.KeyTab}
	case " ":
		return tea.KeyMsg{Type: tea.KeySpace, Runes: []rune{' '}}
	}
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(k)}
}

func press(t *testing.T, m model, keys ...string) (model, tea.Cmd) {
	t.Helper()
	var cmd tea.Cmd
	for _, k := range keys {
		var next tea.Model
		next, cmd = m.Update(keyMsg(k))
		m = next.(model)
	}
	return m, cmd
}

func TestSinglePlayerFlow(t *testing.T) {
	m := newModel(tinySettings(2))
	m, _ = press(t, m, "enter")
	if m.screen != screenMatch {
		t.Fatalf("screen=%v want match", m.screen)
	}
	if m.match.Mode() != rules.ModeSolo || len(m.match.Competitors()) != 2 {
		t.Fatalf("mode=%v comps=%d", m.match.Mode(), len(m.match.Competitors()))
	}
	if got := m.match.Competitor(1).Name; got != computerName {
		t.Fatalf("computer name=%q", got)
	}

	m, _ = press(t, m, " ")
	if m.match.Phase() != rules.PhaseCombat {
		t.Fatalf("phase=%v after placing the only ship", m.match.Phase())
	}

	m, _ = press(t, m, " ")
	if len(m.events) != 2 {
		t.Fatalf("events=%v want the shot and the computer's reply", m.events)
	}
	if !strings.Contains(m.events[0], "Player 1 fired at "+computerName) && !strings.Contains(m.events[0], "Player 1 sank") {
		t.Errorf("first event=%q", m.events[0])
	}
	if len(m.flash) == 0 {
		t.Errorf("no flashed cells after a shot")
	}

	view := m.View()
	for _, want := range []string{"Player 1", computerName, "score:"} {
		if !strings.Contains(view, want) {
			t.Errorf("view missing %q:\n%s", want, view)
		}
	}

	m, _ = press(t, m, "t")
	if !strings.Contains(m.status, "aiming at you") {
		t.Errorf("status after focus=%q", m.status)
	}
}

func TestRefiringReportsStatus(t *testing.T) {
	m := newModel(tinySettings(2))
	m, _ = press(t, m, "enter", " ")
	m, _ = press(t, m, "down", "down", "down", " ")
	if m.match.Phase() != rules.PhaseCombat {
		t.Fatalf("phase=%v after one exchange", m.match.Phase())
	}
	m, _ = press(t, m, " ")
	if m.status != "You already fired there." {
		t.Errorf("status=%q", m.status)
	}
}

func TestHotSeatFlow(t *testing.T) {
	m := newModel(tinySettings(2))
	m, _ = press(t, m, "down", "right", "enter")
	if m.match == nil || m.match.Mode() != rules.ModeFreeForAll {
		t.Fatalf("expected a free-for-all match")
	}
	if n := len(m.match.Competitors()); n != 3 {
		t.Fatalf("competitors=%d want 3", n)
	}
	for i := 0; i < 3; i++ {
		if m.match.Placing() != i {
			t.Fatalf("placing=%d want %d", m.match.Placing(), i)
		}
		m, _ = press(t, m, " ")
	}
	if m.match.Phase() != rules.PhaseCombat {
		t.Fatalf("phase=%v", m.match.Phase())
	}
	if !strings.Contains(m.View(), "Player 1: fire at Player 2") {
		t.Errorf("headline missing:\n%s", m.View())
	}

	m, _ = press(t, m, "tab")
	if got := m.match.Competitor(0).Target; got != 2 {
		t.Errorf("target after tab=%d want 2", got)
	}
}

func TestIllegalPlacementStatus(t *testing.T) {
	m := newModel(tinySettings(2, 2))
	m, _ = press(t, m, "enter", " ", " ")
	if m.match.Phase() != rules.PhasePlacement {
		t.Fatalf("phase=%v", m.match.Phase())
	}
	if !strings.Contains(m.status, "cannot go there") {
		t.Errorf("status=%q", m.status)
	}
	if m.match.NextShipLength() != 2 || m.match.Competitor(0).ShipsPlaced() != 1 {
		t.Errorf("second ship should still be pending")
	}

	m, _ = press(t, m, "f", "right", "right", " ")
	if m.match.Phase() != rules.PhaseCombat {
		t.Errorf("phase=%v after a legal horizontal placement", m.match.Phase())
	}
}

func TestQuitReturnsToMenu(t *testing.T) {
	m := newModel(tinySettings(2))
	m, _ = press(t, m, "enter", "q")
	if m.match.Phase() != rules.PhaseResolved {
		t.Fatalf("phase=%v", m.match.Phase())
	}
	if !strings.Contains(m.View(), "Match abandoned") {
		t.Errorf("view:\n%s", m.View())
	}
	m, _ = press(t, m, "x")
	if m.screen != screenMenu || m.match != nil {
		t.Errorf("expected menu after any key")
	}

	_, cmd := press(t, m, "q")
	if cmd == nil {
		t.Fatalf("q on the menu should quit")
	}
	if _, ok := cmd().(tea.QuitMsg); !ok {
		t.Errorf("q returned %T", cmd())
	}
}

func TestKeyCommand(t *testing.T) {
	tests := []struct {
		key   string
		phase rules.Phase
		want  rules.Command
		ok    bool
	}{
		{"w", rules.PhasePlacement, rules.MoveCursor(game.Up), true},
		{"right", rules.PhaseCombat, rules.MoveCursor(game.Right), true},
		{" ", rules.PhasePlacement, rules.PlaceShip(), true},
		{" ", rules.PhaseCombat, rules.FireAtCursor(), true},
		{"f", rules.PhasePlacement, rules.ToggleOrientation(), true},
		{"f", rules.PhaseCombat, rules.SwitchTarget(), true},
		{"tab", rules.PhasePlacement, rules.Command{}, false},
		{"q", rules.PhaseCombat, rules.Quit(), true},
		{"z", rules.PhaseCombat, rules.Command{}, false},
	}
	for _, tc := range tests {
		got, ok := keyCommand(tc.key, tc.phase)
		if ok != tc.ok || got != tc.want {
			t.Errorf("keyCommand(%q, %v)=%v,%v want %v,%v", tc.key, tc.phase, got, ok, tc.want, tc.ok)
		}
	}
}
