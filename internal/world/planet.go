package world

import (
	"fmt"

	"github.com/talgya/rift-runner/internal/entropy"
)

// Archetype is the hostile species native to a planet.
type Archetype uint8

const (
	ArchetypeGloopers    Archetype = iota // Cycles 1-5
	ArchetypeStaregazers                  // Cycles 6-10, distracted half the time
	ArchetypeEyekings                     // Cycles 11+
)

func (a Archetype) String() string {
	switch a {
	case ArchetypeGloopers:
		return "Gloopers"
	case ArchetypeStaregazers:
		return "Staregazers"
	case ArchetypeEyekings:
		return "Eyekings"
	default:
		return "Unknown"
	}
}

// Effect is the passive effect a planet applies every tick.
type Effect uint8

const (
	EffectAcidPools Effect = iota
	EffectJumpscareShadows
	EffectTripleThreat
)

func (e Effect) String() string {
	switch e {
	case EffectAcidPools:
		return "Acid Pools"
	case EffectJumpscareShadows:
		return "Jumpscare Shadows"
	case EffectTripleThreat:
		return "Triple Threat"
	default:
		return "Unknown"
	}
}

// Description returns the effect label with its in-world explanation.
func (e Effect) Description() string {
	switch e {
	case EffectAcidPools:
		return "Acid Pools: hostiles spit acid"
	case EffectJumpscareShadows:
		return "Jumpscare Shadows: sudden spawns"
	case EffectTripleThreat:
		return "Triple Threat: acid and jumpscares"
	default:
		return e.String()
	}
}

// PlanetHexCount is the size of every planet: a center and its ring.
const PlanetHexCount = 7

// Planet is a themed 7-hex region. Immutable once created.
type Planet struct {
	Name         string                   `json:"name"`
	Cycle        int                      `json:"cycle"`
	Center       HexCoord                 `json:"center"`
	Hexes        [PlanetHexCount]HexCoord `json:"hexes"`
	Archetype    Archetype                `json:"archetype"`
	Effect       Effect                   `json:"effect"`
	BaseStrength int                      `json:"base_strength"`
	Surface      *Surface                 `json:"-"`
}

// NewPlanet creates the planet for a cycle centered at center.
// Archetype and effect depend only on the cycle bracket; base strength
// takes a single draw from src.
func NewPlanet(cycle int, center HexCoord, src entropy.Source) *Planet {
	p := &Planet{
		Cycle:        cycle,
		Center:       center,
		BaseStrength: cycle * entropy.Between(src, 1, 3),
	}

	switch {
	case cycle <= 5:
		p.Name, p.Archetype, p.Effect = "Slime Pits", ArchetypeGloopers, EffectAcidPools
	case cycle <= 10:
		p.Name, p.Archetype, p.Effect = "Triad Moons", ArchetypeStaregazers, EffectJumpscareShadows
	default:
		p.Name, p.Archetype, p.Effect = "Green Abyss", ArchetypeEyekings, EffectTripleThreat
	}

	p.Hexes[0] = center
	for i, n := range center.Neighbors() {
		p.Hexes[i+1] = n
	}

	p.Surface = GenerateSurface(p)
	return p
}

// Contains reports whether coord is one of the planet's hexes.
func (p *Planet) Contains(coord HexCoord) bool {
	for _, h := range p.Hexes {
		if h == coord {
			return true
		}
	}
	return false
}

// String returns a summary of the planet.
func (p *Planet) String() string {
	return fmt.Sprintf("%s(cycle=%d, center=%s, %s, strength=%d)",
		p.Name, p.Cycle, p.Center, p.Archetype, p.BaseStrength)
}
