package engine

import (
	"errors"
	"fmt"

	"github.com/talgya/rift-runner/internal/minigame"
	"github.com/talgya/rift-runner/internal/world"
)

// Intent is a validated player action applied before a tick.
type Intent interface {
	Apply(s *Simulation) error
}

// Deploy places a field.
type Deploy struct {
	At   world.HexCoord
	Kind FieldKind
}

func (d Deploy) Apply(s *Simulation) error {
	_, err := s.DeployField(d.At, d.Kind)
	return err
}

func (d Deploy) String() string {
	return fmt.Sprintf("deploy %s at %s", d.Kind, d.At)
}

// Entangle plays one selection on an entropy core board and credits the
// reward. A failed or skipped selection credits nothing and is not an error
// for the run; the board error is still returned for display.
type Entangle struct {
	Board         *minigame.Board
	First, Second int
	Skip          bool

	Result minigame.Result // Filled in by Apply
}

func (e *Entangle) Apply(s *Simulation) error {
	if s.Outcome.Terminal() {
		return ErrRunOver
	}
	if e.Skip || e.Board == nil {
		return nil
	}
	res, err := e.Board.Entangle(e.First, e.Second, s.rng)
	if err != nil {
		s.record("economy", "entanglement failed: no coherence")
		return fmt.Errorf("entropy core: %w", err)
	}
	e.Result = res
	s.record("economy", "%s entangled with %d%% coherence", res.Quantum, res.Coherence)
	s.AddRiftEnergy(res.Reward())
	return nil
}

// Rejected reports whether err is a recoverable intent rejection rather than
// a terminal or internal error.
func Rejected(err error) bool {
	var rej *RejectionError
	return errors.As(err, &rej) ||
		errors.Is(err, minigame.ErrInvalidSelection) ||
		errors.Is(err, minigame.ErrNoCoherence)
}
