package surface

import "strings"

// Point is a position on the surface. Units are whatever the caller measures
// the viewport in (cells in the terminal desktop).
type Point struct {
	X int
	Y int
}

// Add returns p translated by q.
func (p Point) Add(q Point) Point { return Point{X: p.X + q.X, Y: p.Y + q.Y} }

// Sub returns the delta from q to p.
func (p Point) Sub(q Point) Point { return Point{X: p.X - q.X, Y: p.Y - q.Y} }

// Size is a width/height pair.
type Size struct {
	Width  int
	Height int
}

// Direction identifies the edge or corner grabbed for a resize.
type Direction uint8

const (
	North Direction = 1 << iota
	South
	East
	West

	NorthEast = North | East
	NorthWest = North | West
	SouthEast = South | East
	SouthWest = South | West

	// NoDirection is returned by hit-testing when the pointer is not on an edge.
	NoDirection Direction = 0
)

// Has reports whether d touches every axis in axis.
func (d Direction) Has(axis Direction) bool { return d&axis == axis && axis != 0 }

// Valid reports whether d is one of the eight compass directions.
func (d Direction) Valid() bool {
	if d == NoDirection || d&^(North|South|East|West) != 0 {
		return false
	}
	return !(d.Has(North|South) || d.Has(East|West))
}

func (d Direction) String() string {
	if !d.Valid() {
		return ""
	}
	var b strings.Builder
	if d.Has(North) {
		b.WriteByte('n')
	}
	if d.Has(South) {
		b.WriteByte('s')
	}
	if d.Has(East) {
		b.WriteByte('e')
	}
	if d.Has(West) {
		b.WriteByte('w')
	}
	return b.String()
}

// ParseDirection converts "n", "se", "nw" and friends into a Direction.
func ParseDirection(s string) (Direction, bool) {
	switch strings.ToLower(s) {
	case "n":
		return North, true
	case "s":
		return South, true
	case "e":
		return East, true
	case "w":
		return West, true
	case "ne":
		return NorthEast, true
	case "nw":
		return NorthWest, true
	case "se":
		return SouthEast, true
	case "sw":
		return SouthWest, true
	}
	return NoDirection, false
}

func directionOf(north, south, east, west bool) Direction {
	var d Direction
	if north {
		d |= North
	} else if south {
		d |= South
	}
	if west {
		d |= West
	} else if east {
		d |= East
	}
	return d
}
