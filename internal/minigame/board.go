// Package minigame implements the entropy core: a five-slot matching board
// that turns one pair selection into a rift energy reward.
package minigame

import (
	"errors"
	"fmt"

	"github.com/talgya/rift-runner/internal/entropy"
)

// SlotCount is the number of quanta on a board.
const SlotCount = 5

// Quantum is the category tag carried by a slot.
type Quantum string

const (
	Alpha Quantum = "alpha"
	Beta  Quantum = "beta"
	Gamma Quantum = "gamma"
	Delta Quantum = "delta"
	Omega Quantum = "omega"
)

// Quanta lists every tag a slot can be dealt.
var Quanta = [SlotCount]Quantum{Alpha, Beta, Gamma, Delta, Omega}

var (
	ErrInvalidSelection = errors.New("invalid selection")
	ErrNoCoherence      = errors.New("quanta do not match")
)

// Board is one entropy core deal.
type Board struct {
	Slots    [SlotCount]Quantum `json:"slots"`
	Consumed [SlotCount]bool    `json:"consumed"`
}

// Result describes a successful entanglement.
type Result struct {
	Quantum   Quantum `json:"quantum"`
	Base      int     `json:"base"`
	Bonus     int     `json:"bonus"`
	Coherence int     `json:"coherence"` // percent, flavour only
}

// Reward is the total energy granted.
func (r Result) Reward() int {
	return r.Base + r.Bonus
}

// NewBoard deals a tag uniformly at random into every slot.
func NewBoard(src entropy.Source) *Board {
	b := &Board{}
	for i := range b.Slots {
		b.Slots[i] = Quanta[src.IntN(len(Quanta))]
	}
	return b
}

// NewBoardWith deals a fixed set of tags.
func NewBoardWith(slots [SlotCount]Quantum) *Board {
	return &Board{Slots: slots}
}

// Available reports whether slot i can still be matched.
func (b *Board) Available(i int) bool {
	return i >= 0 && i < SlotCount && !b.Consumed[i]
}

// Entangle tries to match slots i and j. A match consumes both slots and
// pays Between(3,7) plus a 25% chance of Between(1,4). Anything else pays 0.
func (b *Board) Entangle(i, j int, src entropy.Source) (Result, error) {
	if i == j || !b.Available(i) || !b.Available(j) {
		return Result{}, fmt.Errorf("entangle %d and %d: %w", i, j, ErrInvalidSelection)
	}
	if b.Slots[i] != b.Slots[j] {
		return Result{}, fmt.Errorf("entangle %s with %s: %w", b.Slots[i], b.Slots[j], ErrNoCoherence)
	}

	res := Result{
		Quantum:   b.Slots[i],
		Coherence: entropy.Between(src, 75, 100),
		Base:      entropy.Between(src, 3, 7),
	}
	if entropy.Chance(src, 0.25) {
		res.Bonus = entropy.Between(src, 1, 4)
	}

	b.Consumed[i] = true
	b.Consumed[j] = true
	return res, nil
}

// Matchable reports whether any pair on the board can still be entangled.
func (b *Board) Matchable() bool {
	for i := 0; i < SlotCount; i++ {
		for j := i + 1; j < SlotCount; j++ {
			if b.Available(i) && b.Available(j) && b.Slots[i] == b.Slots[j] {
				return true
			}
		}
	}
	return false
}

// String renders the board as "0:alpha 1:XX ...", consumed slots shown as XX.
func (b *Board) String() string {
	out := ""
	for i, q := range b.Slots {
		label := string(q)
		if b.Consumed[i] {
			label = "XX"
		}
		if i > 0 {
			out += " "
		}
		out += fmt.Sprintf("%d:%s", i, label)
	}
	return out
}
