// Planet surfaces using layered simplex noise.
// Cosmetic only: terrain never changes a rule, so it takes no random draws
// and is fully determined by the planet's cycle and center.
package world

import (
	"math"

	opensimplex "github.com/ojrac/opensimplex-go"
)

// Terrain types for planet hexes.
type Terrain uint8

const (
	TerrainMire    Terrain = iota // Low, wet slime flats
	TerrainBasalt                 // Cooled rock shelves
	TerrainCrystal                // High rift-crystal outcrops
	TerrainVoid                   // Thin patches where the rift shows through
)

// Tile is a single surface hex.
type Tile struct {
	Coord     HexCoord `json:"coord"`
	Terrain   Terrain  `json:"terrain"`
	Elevation float64  `json:"elevation"` // 0.0 to 1.0
	Ooze      float64  `json:"ooze"`      // 0.0 (dry) to 1.0 (dripping)
}

// Surface holds the generated tiles of one planet.
type Surface struct {
	Tiles map[HexCoord]Tile `json:"-"`
	Seed  int64             `json:"seed"`
}

// Get returns the tile at coord and whether it exists.
func (s *Surface) Get(coord HexCoord) (Tile, bool) {
	t, ok := s.Tiles[coord]
	return t, ok
}

// TerrainAt returns the terrain at coord, or TerrainVoid off the surface.
func (s *Surface) TerrainAt(coord HexCoord) Terrain {
	if s == nil {
		return TerrainVoid
	}
	if t, ok := s.Tiles[coord]; ok {
		return t.Terrain
	}
	return TerrainVoid
}

// surfaceSeed mixes cycle and center into a noise seed.
func surfaceSeed(cycle int, center HexCoord) int64 {
	return int64(cycle)*7919 + int64(center.Q)*104729 + int64(center.R)*1299709
}

// GenerateSurface builds the surface for a planet's hexes.
func GenerateSurface(p *Planet) *Surface {
	seed := surfaceSeed(p.Cycle, p.Center)

	// Two noise generators for independent layers.
	elevNoise := opensimplex.NewNormalized(seed)
	oozeNoise := opensimplex.NewNormalized(seed + 1)

	s := &Surface{
		Tiles: make(map[HexCoord]Tile, len(p.Hexes)),
		Seed:  seed,
	}

	for _, coord := range p.Hexes {
		// Hex axial → cartesian: x = q + r*0.5, y = r * sqrt(3)/2
		x := float64(coord.Q) + float64(coord.R)*0.5
		y := float64(coord.R) * math.Sqrt(3.0) / 2.0

		elev := octaveNoise(elevNoise, x, y, 3, 0.35, 0.5)
		ooze := octaveNoise(oozeNoise, x, y, 2, 0.5, 0.5)

		s.Tiles[coord] = Tile{
			Coord:     coord,
			Terrain:   deriveTerrain(elev, ooze),
			Elevation: elev,
			Ooze:      ooze,
		}
	}

	return s
}

// deriveTerrain determines terrain type from the noise layers.
func deriveTerrain(elev, ooze float64) Terrain {
	if elev < 0.2 {
		return TerrainVoid
	}
	if elev > 0.7 {
		return TerrainCrystal
	}
	if ooze > 0.5 {
		return TerrainMire
	}
	return TerrainBasalt
}

// octaveNoise generates fractal noise by layering multiple frequencies.
func octaveNoise(noise opensimplex.Noise, x, y float64, octaves int, frequency, persistence float64) float64 {
	total := 0.0
	amplitude := 1.0
	maxVal := 0.0

	for i := 0; i < octaves; i++ {
		total += noise.Eval2(x*frequency, y*frequency) * amplitude
		maxVal += amplitude
		amplitude *= persistence
		frequency *= 2
	}

	return total / maxVal
}

// TerrainCounts returns a summary of terrain type distribution.
func TerrainCounts(s *Surface) map[Terrain]int {
	counts := make(map[Terrain]int)
	for _, t := range s.Tiles {
		counts[t.Terrain]++
	}
	return counts
}

// TerrainName returns a human-readable name for a terrain type.
func TerrainName(t Terrain) string {
	switch t {
	case TerrainMire:
		return "Mire"
	case TerrainBasalt:
		return "Basalt"
	case TerrainCrystal:
		return "Crystal"
	case TerrainVoid:
		return "Void"
	default:
		return "Unknown"
	}
}

// TerrainGlyph returns the single-character glyph used for an empty hex.
func TerrainGlyph(t Terrain) string {
	switch t {
	case TerrainMire:
		return "~"
	case TerrainCrystal:
		return "*"
	case TerrainVoid:
		return ":"
	default:
		return "."
	}
}

// ParseTerrain is the inverse of TerrainName. Unknown names map to Basalt.
func ParseTerrain(name string) Terrain {
	switch name {
	case "Mire":
		return TerrainMire
	case "Crystal":
		return TerrainCrystal
	case "Void":
		return TerrainVoid
	default:
		return TerrainBasalt
	}
}
