// Package world provides the hex grid, planets, and planet surfaces.
// Uses axial coordinates (q, r) for the hex grid.
package world

import (
	"fmt"

	"golang.org/x/exp/slices"
)

// HexCoord represents a position on the hex grid using axial coordinates.
// The third cube coordinate s is derived: s = -q - r.
type HexCoord struct {
	Q int `json:"q" yaml:"q"`
	R int `json:"r" yaml:"r"`
}

// S returns the implicit third cube coordinate.
func (h HexCoord) S() int {
	return -h.Q - h.R
}

// Add returns the coordinate offset by d.
func (h HexCoord) Add(d HexCoord) HexCoord {
	return HexCoord{Q: h.Q + d.Q, R: h.R + d.R}
}

func (h HexCoord) String() string {
	return fmt.Sprintf("(%d, %d)", h.Q, h.R)
}

// HexNeighborDirections defines the six neighbor offsets in axial coordinates.
// Every adjacency scan in the game walks them in this order.
var HexNeighborDirections = [6]HexCoord{
	{Q: 1, R: 0},
	{Q: -1, R: 0},
	{Q: 0, R: 1},
	{Q: 0, R: -1},
	{Q: 1, R: -1},
	{Q: -1, R: 1},
}

// Neighbors returns the six adjacent hex coordinates.
func (h HexCoord) Neighbors() [6]HexCoord {
	var result [6]HexCoord
	for i, dir := range HexNeighborDirections {
		result[i] = h.Add(dir)
	}
	return result
}

// Distance returns the hex distance between two coordinates.
func Distance(a, b HexCoord) int {
	dq := a.Q - b.Q
	dr := a.R - b.R
	return (abs(dq) + abs(dr) + abs(dq+dr)) / 2
}

// Compare orders coordinates by Q, then R.
func Compare(a, b HexCoord) int {
	if a.Q != b.Q {
		return a.Q - b.Q
	}
	return a.R - b.R
}

// SortCoords sorts coords in place using Compare and returns the slice.
func SortCoords(coords []HexCoord) []HexCoord {
	slices.SortFunc(coords, Compare)
	return coords
}

// SortedKeys returns the keys of a coordinate-keyed map in Compare order.
func SortedKeys[V any](m map[HexCoord]V) []HexCoord {
	keys := make([]HexCoord, 0, len(m))
	for c := range m {
		keys = append(keys, c)
	}
	return SortCoords(keys)
}

func abs(x int) int {
	if x < 0 {
		return -x
	}
	return x
}
