package main

import (
	"errors"
	"fmt"
	"log/slog"
	"math/rand"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/brensch/salvo/executor/hunt"
	"github.com/brensch/salvo/game"
	"github.com/brensch/salvo/rules"
)

// computerName is shared by every computer opponent.
const computerName = "REAPER TECH"

type settings struct {
	Config    game.Config
	Seed      int64
	Computers int
	Logger    *slog.Logger
}

type screen int

const (
	screenMenu screen = iota
	screenMatch
)

const (
	itemSingle = iota
	itemMulti
	itemQuit
	numItems
)

type flashKey struct {
	Competitor int
	Coord      game.Coord
}

type model struct {
	settings settings
	screen   screen
	selected int
	players  int // seats in a hot-seat match
	started  int // matches started, mixed into the seed

	match  *rules.Match
	rec    *recorder
	flash  map[flashKey]game.CellState
	events []string
	status string
}

func newModel(s settings) model {
	if s.Logger == nil {
		s.Logger = slog.New(slog.DiscardHandler)
	}
	return model{settings: s, players: 2}
}

func (m model) Init() tea.Cmd { return nil }

func (m model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	key, ok := msg.(tea.KeyMsg)
	if !ok {
		return m, nil
	}
	if key.String() == "ctrl+c" {
		return m, tea.Quit
	}
	if m.screen == screenMenu {
		return m.updateMenu(key)
	}
	return m.updateMatch(key)
}

func (m model) updateMenu(key tea.KeyMsg) (tea.Model, tea.Cmd) {
	maxPlayers := m.settings.Config.MaxCompetitors
	switch key.String() {
	case "up", "w", "k":
		if m.selected > 0 {
			m.selected--
		}
	case "down", "s", "j":
		if m.selected < numItems-1 {
			m.selected++
		}
	case "left", "a", "h":
		if m.selected == itemMulti && m.players > 2 {
			m.players--
		}
	case "right", "d", "l":
		if m.selected == itemMulti && m.players < maxPlayers {
			m.players++
		}
	case "q", "esc":
		return m, tea.Quit
	case " ", "enter":
		switch m.selected {
		case itemSingle:
			return m.start(m.soloSeats()), nil
		case itemMulti:
			return m.start(m.hotSeats()), nil
		default:
			return m, tea.Quit
		}
	}
	return m, nil
}

func (m model) soloSeats() []rules.Seat {
	seats := []rules.Seat{{Name: "Player 1"}}
	for i := 1; i <= m.settings.Computers; i++ {
		rng := rand.New(rand.NewSource(m.seed() + int64(i)))
		seats = append(seats, rules.Seat{Name: computerName, Shooter: hunt.New(rng)})
	}
	return seats
}

func (m model) hotSeats() []rules.Seat {
	seats := make([]rules.Seat, m.players)
	for i := range seats {
		seats[i].Name = fmt.Sprintf("Player %d", i+1)
	}
	return seats
}

func (m model) seed() int64 { return m.settings.Seed + int64(m.started)*7919 }

func (m model) start(seats []rules.Seat) model {
	rec := &recorder{}
	match, err := rules.New(rules.Options{
		Config: m.settings.Config,
		Seats:  seats,
		Sink:   rec,
		Logger: m.settings.Logger,
		Rng:    rand.New(rand.NewSource(m.seed())),
	})
	if err != nil {
		m.status = err.Error()
		return m
	}
	rec.Drain()
	m.started++
	m.match = match
	m.rec = rec
	m.flash = nil
	m.events = nil
	m.status = ""
	m.screen = screenMatch
	return m
}

func (m model) updateMatch(key tea.KeyMsg) (tea.Model, tea.Cmd) {
	if m.match.Phase() == rules.PhaseResolved {
		m.match = nil
		m.screen = screenMenu
		return m, nil
	}

	if key.String() == "t" {
		if m.match.Mode() != rules.ModeSolo {
			return m, nil
		}
		if err := m.match.FocusOn(m.match.Human()); err != nil {
			m.status = describeError(err)
			return m, nil
		}
		m.status = "Every " + computerName + " is now aiming at you."
		return m, nil
	}

	cmd, ok := keyCommand(key.String(), m.match.Phase())
	if !ok {
		return m, nil
	}
	rep, err := m.match.Handle(cmd)
	m.status = ""
	if err != nil {
		m.status = describeError(err)
	}
	m.record(rep)
	return m, nil
}

// keyCommand maps a key to a match command. Space and f mean different
// things while placing and while fighting.
func keyCommand(key string, phase rules.Phase) (rules.Command, bool) {
	switch key {
	case "up", "w", "k":
		return rules.MoveCursor(game.Up), true
	case "down", "s", "j":
		return rules.MoveCursor(game.Down), true
	case "left", "a", "h":
		return rules.MoveCursor(game.Left), true
	case "right", "d", "l":
		return rules.MoveCursor(game.Right), true
	case " ", "enter":
		if phase == rules.PhasePlacement {
			return rules.PlaceShip(), true
		}
		return rules.FireAtCursor(), true
	case "f", "r":
		if phase == rules.PhasePlacement {
			return rules.ToggleOrientation(), true
		}
		return rules.SwitchTarget(), true
	case "tab":
		if phase == rules.PhaseCombat {
			return rules.SwitchTarget(), true
		}
	case "q", "esc":
		return rules.Quit(), true
	}
	return rules.Command{}, false
}

// record turns a report into event lines and remembers which cells changed.
func (m *model) record(rep rules.Report) {
	m.flash = make(map[flashKey]game.CellState)
	for _, c := range m.rec.Drain() {
		m.flash[flashKey{Competitor: c.Competitor, Coord: c.Coord}] = c.State
	}

	comps := m.match.Competitors()
	for _, s := range rep.Shots {
		var line string
		switch s.Outcome {
		case game.AlreadyResolved:
			if comps[s.Shooter].Manual() {
				m.status = "You already fired there."
				continue
			}
			line = fmt.Sprintf("%s wasted a shot on %s at %v", comps[s.Shooter].Name, comps[s.Target].Name, s.Coord)
		case game.Sunk:
			line = fmt.Sprintf("%s sank a ship of %s at %v", comps[s.Shooter].Name, comps[s.Target].Name, s.Coord)
		default:
			line = fmt.Sprintf("%s fired at %s %v: %s", comps[s.Shooter].Name, comps[s.Target].Name, s.Coord, s.Outcome)
		}
		m.pushEvent(line)
	}
	for _, i := range rep.Eliminated {
		m.pushEvent(fmt.Sprintf("%s was DESTROYED!", comps[i].Name))
	}
}

const maxEvents = 8

func (m *model) pushEvent(line string) {
	m.events = append(m.events, line)
	if len(m.events) > maxEvents {
		m.events = m.events[len(m.events)-maxEvents:]
	}
}

func describeError(err error) string {
	switch {
	case errors.Is(err, game.ErrIllegalPlacement):
		return "Ships cannot go there: they must fit on the board and not touch another ship."
	case errors.Is(err, rules.ErrNoTarget):
		return "There is nobody left to aim at."
	case errors.Is(err, rules.ErrWrongPhase):
		return "That does not work right now."
	default:
		return err.Error()
	}
}
