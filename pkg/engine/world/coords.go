package world

import "fmt"

// Coords is a position on the dungeon grid.
type Coords struct{ X, Y int }

// Pt is a convenience constructor for Coords.
func Pt(x, y int) Coords { return Coords{x, y} }

// String returns "x,y".
func (c Coords) String() string {
	return fmt.Sprintf("%d,%d", c.X, c.Y)
}

// NextInDirection returns the coordinate one step away in the given direction.
func (c Coords) NextInDirection(d Direction) Coords {
	dx, dy := d.Delta()
	return Coords{c.X + dx, c.Y + dy}
}

// DirectionTo returns the direction from c to other when the two are
// axis-adjacent. ok is false otherwise.
func (c Coords) DirectionTo(other Coords) (d Direction, ok bool) {
	for _, d := range AllDirections() {
		if c.NextInDirection(d) == other {
			return d, true
		}
	}
	return North, false
}

// IsAdjacent reports whether other is one step away along an axis.
func (c Coords) IsAdjacent(other Coords) bool {
	_, ok := c.DirectionTo(other)
	return ok
}

// Min returns the component-wise minimum of c and other.
func (c Coords) Min(other Coords) Coords {
	if other.X < c.X {
		c.X = other.X
	}
	if other.Y < c.Y {
		c.Y = other.Y
	}
	return c
}

// Max returns the component-wise maximum of c and other.
func (c Coords) Max(other Coords) Coords {
	if other.X > c.X {
		c.X = other.X
	}
	if other.Y > c.Y {
		c.Y = other.Y
	}
	return c
}
