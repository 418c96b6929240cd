// Package constraints provides the oracle a dungeon generator consults for
// size, shape and acceptance, plus ready-made implementations.
package constraints

import (
	"keydungeon/pkg/engine/world"
)

// Constraints bounds what a generator may build.
type Constraints interface {
	// NumberSpaces is the number of rooms to place
	NumberSpaces() int
	// NumberKeys is the number of distinct keys (lock tiers)
	NumberKeys() int
	// InitialCoords is where the entrance goes
	InitialCoords() world.Coords
	// ValidRoomCoords reports whether a room may be placed at coords
	ValidRoomCoords(coords world.Coords) bool
	// IsAcceptable is the final verdict on a finished dungeon
	IsAcceptable(dungeon world.View) bool
}

// Count constrains the dungeon to a width×height rectangle with the
// entrance at its centre. Every finished dungeon is acceptable.
type Count struct {
	spaces, keys  int
	width, height int
}

var _ Constraints = (*Count)(nil)

// NewCount returns constraints for spaces rooms and keys keys inside a
// width×height grid whose top-left cell is 0,0.
func NewCount(spaces, keys, width, height int) *Count {
	return &Count{
		spaces: spaces,
		keys:   keys,
		width:  width,
		height: height,
	}
}

// NumberSpaces returns the number of rooms to place
func (c *Count) NumberSpaces() int { return c.spaces }

// NumberKeys returns the number of keys
func (c *Count) NumberKeys() int { return c.keys }

// InitialCoords returns the grid centre
func (c *Count) InitialCoords() world.Coords {
	return world.Pt(c.width/2, c.height/2)
}

// ValidRoomCoords reports whether coords lies inside the rectangle
func (c *Count) ValidRoomCoords(coords world.Coords) bool {
	return coords.X >= 0 && coords.X < c.width && coords.Y >= 0 && coords.Y < c.height
}

// IsAcceptable always returns true
func (c *Count) IsAcceptable(world.View) bool { return true }
