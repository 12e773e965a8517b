package term

import (
	"strings"

	"github.com/gdamore/tcell/v2"
	"github.com/pkg/errors"
)

// Simulation is a tcell Screen backed by tcell's in-memory simulation
// screen. Tests use it to inspect painted rows and inject keys.
type Simulation struct {
	*Screen
	sim tcell.SimulationScreen
}

// NewSimulation returns an initialized simulated surface of the given size.
func NewSimulation(width, height int) (*Simulation, error) {
	sim := tcell.NewSimulationScreen("UTF-8")
	if err := sim.Init(); err != nil {
		return nil, errors.Wrap(err, "init simulation screen")
	}
	sim.SetSize(width, height)
	return &Simulation{Screen: wrapScreen(sim), sim: sim}, nil
}

// Resize changes the simulated terminal size.
func (s *Simulation) Resize(width, height int) {
	s.sim.SetSize(width, height)
}

// Row returns the text shown on row y after the last Show.
func (s *Simulation) Row(y int) string {
	cells, width, height := s.sim.GetContents()
	if y < 0 || y >= height {
		return ""
	}
	var b strings.Builder
	for _, cell := range cells[y*width : (y+1)*width] {
		if len(cell.Runes) == 0 {
			b.WriteByte(' ')
			continue
		}
		b.WriteRune(cell.Runes[0])
	}
	return b.String()
}

// StyleAt returns the tcell style of the cell at x, y after the last Show.
func (s *Simulation) StyleAt(x, y int) tcell.Style {
	cells, width, height := s.sim.GetContents()
	if x < 0 || y < 0 || x >= width || y >= height {
		return tcell.StyleDefault
	}
	return cells[y*width+x].Style
}

// InjectKey queues a key press as if typed at the terminal.
func (s *Simulation) InjectKey(key tcell.Key, r rune, mod tcell.ModMask) {
	s.sim.InjectKey(key, r, mod)
}
