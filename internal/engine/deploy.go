package engine

import (
	"errors"
	"fmt"

	"github.com/talgya/rift-runner/internal/entropy"
	"github.com/talgya/rift-runner/internal/world"
)

// FieldKind is the type of a player-deployed field.
type FieldKind uint8

const (
	FieldPulse    FieldKind = iota // Damages nearby hostiles
	FieldWeave                     // Generates energy, minor disruption
	FieldTemporal                  // Shifts hostiles, drops stasis markers
)

// FieldKinds lists every deployable kind in display order.
var FieldKinds = [3]FieldKind{FieldPulse, FieldWeave, FieldTemporal}

func (k FieldKind) String() string {
	switch k {
	case FieldPulse:
		return "Pulse"
	case FieldWeave:
		return "Weave"
	case FieldTemporal:
		return "Temporal"
	default:
		return "Unknown"
	}
}

// ParseFieldKind accepts a kind name or its initial letter.
func ParseFieldKind(s string) (FieldKind, error) {
	switch s {
	case "p", "P", "pulse", "Pulse":
		return FieldPulse, nil
	case "w", "W", "weave", "Weave":
		return FieldWeave, nil
	case "t", "T", "temporal", "Temporal":
		return FieldTemporal, nil
	}
	return 0, fmt.Errorf("unknown field kind %q", s)
}

func (k FieldKind) MarshalText() ([]byte, error) {
	return []byte(k.String()), nil
}

func (k *FieldKind) UnmarshalText(b []byte) error {
	parsed, err := ParseFieldKind(string(b))
	if err != nil {
		return err
	}
	*k = parsed
	return nil
}

// fieldPricing is base + scale*cycle ± jitter.
type fieldPricing struct {
	Base, Scale, Jitter int
}

var pricing = map[FieldKind]fieldPricing{
	FieldPulse:    {Base: 15, Scale: 2, Jitter: 3},
	FieldWeave:    {Base: 40, Scale: 5, Jitter: 4},
	FieldTemporal: {Base: 55, Scale: 8, Jitter: 5},
}

// Rejection reasons for a deploy intent.
var (
	ErrInsufficientEnergy = errors.New("insufficient rift energy")
	ErrOccupied           = errors.New("hex occupied")
	ErrOffPlanet          = errors.New("hex not on current planet")
)

// RejectionError reports why a deploy was refused. It matches its Reason
// sentinel with errors.Is.
type RejectionError struct {
	Reason error
	At     world.HexCoord
	Kind   FieldKind
	Cost   int
	Energy int
}

func (e *RejectionError) Error() string {
	return fmt.Sprintf("deploy %s at %s (cost %d, energy %d): %v", e.Kind, e.At, e.Cost, e.Energy, e.Reason)
}

func (e *RejectionError) Unwrap() error {
	return e.Reason
}

// FieldCost quotes the current cost of a field. The jitter is re-rolled on
// every call, so consecutive quotes may differ.
func (s *Simulation) FieldCost(kind FieldKind) int {
	p, ok := pricing[kind]
	if !ok {
		return 0
	}
	return p.Base + p.Scale*s.Cycle + entropy.Between(s.rng, -p.Jitter, p.Jitter)
}

// MaxCost is the highest price FieldCost can quote for kind at cycle.
func MaxCost(kind FieldKind, cycle int) int {
	p := pricing[kind]
	return p.Base + p.Scale*cycle + p.Jitter
}

// QuoteCosts returns a fresh quote for every field kind.
func (s *Simulation) QuoteCosts() map[FieldKind]int {
	costs := make(map[FieldKind]int, len(FieldKinds))
	for _, k := range FieldKinds {
		costs[k] = s.FieldCost(k)
	}
	return costs
}

// DeployField places a field at coord, debiting exactly the quoted cost.
// On rejection no state changes and the error is a *RejectionError.
func (s *Simulation) DeployField(at world.HexCoord, kind FieldKind) (int, error) {
	if s.Outcome.Terminal() {
		return 0, ErrRunOver
	}
	if _, ok := pricing[kind]; !ok {
		return 0, fmt.Errorf("deploy at %s: unknown field kind %d", at, kind)
	}

	cost := s.FieldCost(kind)
	reject := func(reason error) (int, error) {
		return cost, &RejectionError{Reason: reason, At: at, Kind: kind, Cost: cost, Energy: s.RiftEnergy}
	}

	if !s.OnPlanet(at) {
		return reject(ErrOffPlanet)
	}
	if !s.vacant(at) || at == s.Core {
		return reject(ErrOccupied)
	}
	if s.RiftEnergy < cost {
		return reject(ErrInsufficientEnergy)
	}

	s.RiftEnergy -= cost
	s.Fields[at] = kind
	s.record("deploy", "%s field deployed at %s for %d energy", kind, at, cost)
	return cost, nil
}
