package generator

import (
	"keydungeon/pkg/engine/world"
)

// Generator is an interface for dungeon generation algorithms
type Generator interface {
	// Generate builds a dungeon, retrying internally as needed
	Generate() error
	// Dungeon returns the last successfully generated dungeon, or nil
	Dungeon() world.View
	// Attempts returns how many attempts the last Generate made
	Attempts() int
	Name() string
}

var _ Generator = (*DungeonGenerator)(nil)
