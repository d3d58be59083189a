package main

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/brensch/salvo/game"
	"github.com/brensch/salvo/rules"
)

const banner = `
 ███████  █████  ██      ██    ██  ██████
 ██      ██   ██ ██      ██    ██ ██    ██
 ███████ ███████ ██      ██    ██ ██    ██
      ██ ██   ██ ██       ██  ██  ██    ██
 ███████ ██   ██ ███████   ████    ██████ `

var (
	titleStyle    = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("39"))
	selectedStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("0")).Background(lipgloss.Color("214"))
	helpStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("245"))
	warnStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("203"))
	resultStyle   = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("226"))

	waterStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("25"))
	missStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("250"))
	shipStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("252"))
	hitStyle   = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("196"))
	flashStyle = lipgloss.NewStyle().Background(lipgloss.Color("58"))
	cursorBg   = lipgloss.NewStyle().Reverse(true)
	previewFit = lipgloss.NewStyle().Foreground(lipgloss.Color("42"))
	previewBad = lipgloss.NewStyle().Foreground(lipgloss.Color("160"))

	panelStyle = lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).Padding(0, 1)
	activeBdr  = lipgloss.Color("42")
	targetBdr  = lipgloss.Color("214")
	deadBdr    = lipgloss.Color("160")
	idleBdr    = lipgloss.Color("240")
)

func (m model) View() string {
	if m.screen == screenMenu {
		return m.viewMenu()
	}
	return m.viewMatch()
}

func (m model) viewMenu() string {
	var b strings.Builder
	b.WriteString(titleStyle.Render(banner) + "\n\n")
	items := []string{
		"Single Player Mode",
		fmt.Sprintf("Multiplayer Mode  < %d players >", m.players),
		"Quit",
	}
	for i, it := range items {
		if i == m.selected {
			b.WriteString("  " + selectedStyle.Render(" "+it+" ") + "\n\n")
			continue
		}
		b.WriteString("   " + it + "\n\n")
	}
	if m.status != "" {
		b.WriteString(warnStyle.Render(m.status) + "\n")
	}
	b.WriteString(helpStyle.Render("w/s move, a/d change players, space selects, q quits"))
	return b.String()
}

func (m model) viewMatch() string {
	comps := m.match.Competitors()
	panels := make([]string, len(comps))
	for i := range comps {
		panels[i] = m.renderPanel(i)
	}

	var b strings.Builder
	b.WriteString(lipgloss.JoinHorizontal(lipgloss.Top, panels...) + "\n")
	for _, s := range m.match.Summaries() {
		b.WriteString(helpStyle.Render(s) + "\n")
	}
	b.WriteString("\n" + m.headline() + "\n")
	if m.status != "" {
		b.WriteString(warnStyle.Render(m.status) + "\n")
	}
	b.WriteString("\n")
	for _, e := range m.events {
		b.WriteString(e + "\n")
	}
	b.WriteString("\n" + helpStyle.Render(m.help()))
	return b.String()
}

func (m model) headline() string {
	match := m.match
	comps := match.Competitors()
	switch match.Phase() {
	case rules.PhasePlacement:
		c := comps[match.Placing()]
		return fmt.Sprintf("%s: place your %d-ship (%s)", c.Name, match.NextShipLength(), match.Orientation())
	case rules.PhaseCombat:
		c := comps[match.Active()]
		return fmt.Sprintf("%s: fire at %s", c.Name, comps[c.Target].Name)
	}
	return resultStyle.Render(resultText(match.Result(), comps))
}

func resultText(res rules.Result, comps []*game.Competitor) string {
	names := make([]string, len(res.Winners))
	for i, w := range res.Winners {
		names[i] = comps[w].Name
	}
	switch res.Verdict {
	case rules.VerdictWin:
		return fmt.Sprintf("%s WINS!", strings.Join(names, ", "))
	case rules.VerdictDraw:
		return fmt.Sprintf("DRAW between %s!", joinAnd(names))
	case rules.VerdictLoss:
		return "You were DESTROYED. GAME OVER"
	case rules.VerdictAbandoned:
		return "Match abandoned"
	}
	return ""
}

func joinAnd(names []string) string {
	if len(names) < 2 {
		return strings.Join(names, "")
	}
	return strings.Join(names[:len(names)-1], ", ") + " and " + names[len(names)-1]
}

func (m model) help() string {
	switch m.match.Phase() {
	case rules.PhasePlacement:
		return "arrows/wasd move, space places, f rotates, q quits"
	case rules.PhaseCombat:
		h := "arrows/wasd aim, space fires, f/tab switches target"
		if m.match.Mode() == rules.ModeSolo {
			h += ", t draws every computer's fire"
		}
		return h + ", q quits"
	}
	return "press any key to return to the menu"
}

// renderPanel draws competitor i's board with its name and summary.
func (m model) renderPanel(i int) string {
	match := m.match
	c := match.Competitor(i)
	size := c.Board.Size()

	var cursor *game.Coord
	preview := map[game.Coord]bool{}
	fits := true
	border := idleBdr
	switch match.Phase() {
	case rules.PhasePlacement:
		if i == match.Placing() {
			border = activeBdr
			cur := c.Cursor
			cursor = &cur
			length, o := match.NextShipLength(), match.Orientation()
			fits = c.Board.IsPlaceable(cur, length, o)
			p := cur
			for k := 0; k < length && c.Board.InBounds(p); k++ {
				preview[p] = true
				if o == game.Vertical {
					p = p.Step(game.Down)
				} else {
					p = p.Step(game.Right)
				}
			}
		}
	case rules.PhaseCombat:
		active := match.Competitor(match.Active())
		switch {
		case i == match.Active():
			border = activeBdr
		case active.Target == i:
			border = targetBdr
			if active.Manual() {
				cur := active.Cursor
				cursor = &cur
			}
		}
	}
	if match.Eliminated(i) {
		border = deadBdr
	}
	reveal := match.Mode() == rules.ModeSolo && i == match.Human()

	var grid strings.Builder
	for r := 0; r < size; r++ {
		for col := 0; col < size; col++ {
			at := game.Coord{Row: r, Col: col}
			st := c.Board.Cell(at)
			g := glyph(st, reveal)
			switch {
			case preview[at] && fits:
				g = previewFit.Render("□ ")
			case preview[at]:
				g = previewBad.Render("□ ")
			}
			if _, ok := m.flash[flashKey{Competitor: i, Coord: at}]; ok && st.Resolved() {
				g = flashStyle.Render(g)
			}
			if cursor != nil && *cursor == at {
				g = cursorBg.Render(g)
			}
			grid.WriteString(g)
		}
		if r < size-1 {
			grid.WriteString("\n")
		}
	}

	name := c.Name
	if match.Eliminated(i) {
		name += " (DESTROYED)"
	}
	body := lipgloss.JoinVertical(lipgloss.Left,
		lipgloss.NewStyle().Bold(true).Render(name),
		grid.String(),
	)
	return panelStyle.BorderForeground(border).Render(body)
}

// glyph is the two-column rendering of one cell. Hidden ships show as
// water unless reveal is set.
func glyph(s game.CellState, reveal bool) string {
	switch s {
	case game.CellMiss:
		return missStyle.Render("• ")
	case game.CellHit:
		return hitStyle.Render("✖ ")
	case game.CellShipVisible:
		return shipStyle.Render("■ ")
	case game.CellShipHidden:
		if reveal {
			return shipStyle.Render("■ ")
		}
	}
	return waterStyle.Render("~ ")
}
