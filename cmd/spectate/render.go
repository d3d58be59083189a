package main

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/brensch/salvo/game"
)

var (
	headerStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("39"))
	dimStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("245"))
	resultStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("226"))
	boxStyle    = lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).BorderForeground(lipgloss.Color("240")).Padding(0, 1)
	sunkBox     = boxStyle.BorderForeground(lipgloss.Color("160"))

	cellStyles = map[game.CellState]lipgloss.Style{
		game.CellEmpty:       lipgloss.NewStyle().Foreground(lipgloss.Color("25")),
		game.CellShipVisible: lipgloss.NewStyle().Foreground(lipgloss.Color("252")),
		game.CellShipHidden:  lipgloss.NewStyle().Foreground(lipgloss.Color("244")),
		game.CellMiss:        lipgloss.NewStyle().Foreground(lipgloss.Color("250")),
		game.CellHit:         lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("196")),
	}
	lastStyle = lipgloss.NewStyle().Background(lipgloss.Color("58"))
)

var cellGlyphs = map[game.CellState]string{
	game.CellEmpty:       "~ ",
	game.CellShipVisible: "■ ",
	game.CellShipHidden:  "□ ",
	game.CellMiss:        "• ",
	game.CellHit:         "✖ ",
}

// render draws every board side by side. Spectators see hidden ships.
func render(s *spectator) string {
	if s.Boards == nil {
		return dimStyle.Render("waiting for match...")
	}
	panels := make([]string, len(s.Boards))
	for i, cells := range s.Boards {
		var grid strings.Builder
		last, hasLast := s.Last[i]
		afloat := false
		for r := 0; r < s.Size; r++ {
			for c := 0; c < s.Size; c++ {
				st := cells[r*s.Size+c]
				if st.Occupied() {
					afloat = true
				}
				g := cellStyles[st].Render(cellGlyphs[st])
				if hasLast && last == (game.Coord{Row: r, Col: c}) {
					g = lastStyle.Render(g)
				}
				grid.WriteString(g)
			}
			if r < s.Size-1 {
				grid.WriteString("\n")
			}
		}
		box := boxStyle
		name := s.Names[i]
		if !afloat {
			box = sunkBox
			name += " (DESTROYED)"
		}
		panels[i] = box.Render(lipgloss.JoinVertical(lipgloss.Left, lipgloss.NewStyle().Bold(true).Render(name), grid.String()))
	}

	var b strings.Builder
	b.WriteString(headerStyle.Render(fmt.Sprintf("match %s  seed %d  shots %d", s.MatchID, s.Seed, s.Shots)) + "\n")
	b.WriteString(lipgloss.JoinHorizontal(lipgloss.Top, panels...) + "\n")
	if s.Done {
		names := make([]string, len(s.Winners))
		for i, w := range s.Winners {
			if w >= 0 && w < len(s.Names) {
				names[i] = s.Names[w]
			}
		}
		b.WriteString(resultStyle.Render(fmt.Sprintf("%s: %s", strings.ToUpper(s.Verdict), strings.Join(names, ", "))) + "\n")
		for _, line := range s.Summaries {
			b.WriteString(dimStyle.Render(line) + "\n")
		}
	}
	return b.String()
}
