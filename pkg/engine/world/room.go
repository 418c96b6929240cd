// Package world provides the dungeon graph primitives: grid coordinates,
// directions, key symbols and conditions, rooms and the dungeon itself.
package world

// Edge is a door from a room to its neighbour in one direction.
// Locked edges require Lock to pass.
type Edge struct {
	Target Coords
	Lock   Symbol
	Locked bool
}

// Room represents a single node of the dungeon, keyed by its coordinates.
// Rooms are read-only outside this package; the Dungeon mutates them.
type Room struct {
	Coords Coords

	// Placement tree parent. Stored as coordinates so the dungeon stays
	// the only owner of rooms.
	parent    Coords
	hasParent bool

	item    Symbol
	hasItem bool

	precond Condition

	edges [NumDirections]*Edge
}

// NewRoom creates a room at coords that requires precond to enter.
// parent may be nil for the entrance.
func NewRoom(coords Coords, parent *Room, precond Condition) *Room {
	r := &Room{
		Coords:  coords,
		precond: precond,
	}
	if parent != nil {
		r.parent = parent.Coords
		r.hasParent = true
	}
	return r
}

// Parent returns the coordinates of the room this one was placed from
func (r *Room) Parent() (Coords, bool) {
	return r.parent, r.hasParent
}

// Item returns the symbol placed in this room, if any
func (r *Room) Item() (Symbol, bool) {
	return r.item, r.hasItem
}

// Precondition returns the keys required to reach this room
func (r *Room) Precondition() Condition {
	return r.precond
}

// Edge returns the edge in the given direction, or nil
func (r *Room) Edge(dir Direction) *Edge {
	if r == nil || !dir.IsValid() {
		return nil
	}
	return r.edges[dir]
}

// Edges returns the present edges keyed by direction
func (r *Room) Edges() map[Direction]Edge {
	out := make(map[Direction]Edge, NumDirections)
	for _, dir := range AllDirections() {
		if e := r.edges[dir]; e != nil {
			out[dir] = *e
		}
	}
	return out
}

// LinkCount returns the number of doors out of this room
func (r *Room) LinkCount() int {
	n := 0
	for _, e := range r.edges {
		if e != nil {
			n++
		}
	}
	return n
}

// IsDeadEnd returns true if the room has exactly one door
func (r *Room) IsDeadEnd() bool {
	return r.LinkCount() == 1
}

// KeyLevel returns the number of keys needed to reach this room
func (r *Room) KeyLevel() int {
	return r.precond.Size()
}
