package console

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/talgya/rift-runner/internal/engine"
	"github.com/talgya/rift-runner/internal/minigame"
	"github.com/talgya/rift-runner/internal/world"
)

var (
	headerStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#FAFAFA")).
			Background(lipgloss.Color("#2E7D32")).
			Padding(0, 1)

	infoStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#999999"))

	coreStyle    = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#F2C94C"))
	fieldStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("#56CCF2"))
	hostileStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#27AE60"))
	stasisStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("#BB6BD9"))

	bannerStyle = lipgloss.NewStyle().
			Border(lipgloss.DoubleBorder()).
			BorderForeground(lipgloss.Color("#874BFD")).
			Padding(0, 2)
)

// Renderer draws snapshots. With Styled off the output is plain ASCII.
type Renderer struct {
	Styled bool
}

func (r Renderer) style(s lipgloss.Style, text string) string {
	if !r.Styled {
		return text
	}
	return s.Render(text)
}

// Status renders the two header lines: progress and live costs.
func (r Renderer) Status(snap engine.Snapshot) string {
	head := fmt.Sprintf("Cycle: %d | Planet: %s | Rift Energy: %d | Foes Dissolved: %d",
		snap.Cycle, snap.Planet.Name, snap.RiftEnergy, snap.Dissolved)
	costs := fmt.Sprintf("Costs: P:%d W:%d T:%d | Effect: %s",
		snap.Costs[engine.FieldPulse.String()],
		snap.Costs[engine.FieldWeave.String()],
		snap.Costs[engine.FieldTemporal.String()],
		snap.Planet.Effect)
	return r.style(headerStyle, head) + "\n" + r.style(infoStyle, costs)
}

// Board renders the 5x5 window around the planet center. Odd rows are
// shifted so the axial grid reads as hexes.
func (r Renderer) Board(snap engine.Snapshot) string {
	var b strings.Builder
	c := snap.Planet.Center
	for row := c.R - 2; row <= c.R+2; row++ {
		if row%2 == 0 {
			b.WriteString("   ")
		}
		for q := c.Q - 2; q <= c.Q+2; q++ {
			b.WriteString(r.cell(snap, world.HexCoord{Q: q, R: row}))
		}
		b.WriteString("\n")
	}
	return b.String()
}

func (r Renderer) cell(snap engine.Snapshot, at world.HexCoord) string {
	if at == snap.Core {
		if snap.CoreSlowed {
			return r.style(coreStyle, "CS*")
		}
		return r.style(coreStyle, "CS ")
	}
	if kind, ok := snap.FieldAt(at); ok {
		return r.style(fieldStyle, kind.String()[:1]+"  ")
	}
	if essence, ok := snap.HostileAt(at); ok {
		return r.style(hostileStyle, fmt.Sprintf("E%d ", min(essence, 9)))
	}
	if snap.HasStasis(at) {
		return r.style(stasisStyle, "S  ")
	}
	if snap.OnPlanet(at) {
		return world.TerrainGlyph(world.ParseTerrain(snap.TerrainAt(at))) + "  "
	}
	return "   "
}

// Events renders log lines one per row.
func (r Renderer) Events(events []engine.Event) string {
	var b strings.Builder
	for _, e := range events {
		fmt.Fprintf(&b, "[%s] %s\n", e.Category, e.Description)
	}
	return b.String()
}

// EntropyCore renders a board as a prompt.
func (r Renderer) EntropyCore(board *minigame.Board) string {
	return "Entropy Core:\n" + board.String() +
		"\nEnter two indices (0-4) to entangle quanta, or 'skip'"
}

// Outcome renders the end-of-run banner.
func (r Renderer) Outcome(snap engine.Snapshot) string {
	var body string
	switch snap.Outcome {
	case engine.OutcomeVictory.String():
		body = fmt.Sprintf("COSMIC VICTORY - CYCLE %d\nFoes Dissolved: %d\nFinal Rift Energy: %d",
			engine.MaxCycle, snap.Dissolved, snap.RiftEnergy)
	case engine.OutcomeLoss.String():
		body = fmt.Sprintf("GAME OVER\nThe cosmos is goo!\nFoes Dissolved: %d", snap.Dissolved)
	default:
		body = fmt.Sprintf("Run abandoned at cycle %d\nFoes Dissolved: %d", snap.Cycle, snap.Dissolved)
	}
	if !r.Styled {
		return body
	}
	return bannerStyle.Render(body)
}
