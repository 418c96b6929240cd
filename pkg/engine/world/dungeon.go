package world

import (
	"errors"
	"fmt"
)

// Errors returned by Dungeon mutations. Each one signals a caller bug
// rather than bad luck.
var (
	ErrOccupied     = errors.New("coordinate already holds a room")
	ErrNotAdjacent  = errors.New("rooms are not axis-adjacent")
	ErrNotInDungeon = errors.New("room is not part of the dungeon")
	ErrEdgeTaken    = errors.New("room already has an edge in that direction")
	ErrItemAssigned = errors.New("room already holds an item")
)

// View is the read-only surface of a finished dungeon.
type View interface {
	Get(coords Coords) *Room
	Rooms() []*Room
	RoomCount() int
	Entrance() *Room
	Bounds() (min, max Coords)
}

// Dungeon is the room graph: one room per coordinate plus the doors
// between them. Rooms are never removed.
type Dungeon struct {
	rooms map[Coords]*Room
	order []*Room
}

var _ View = (*Dungeon)(nil)

// NewDungeon creates an empty dungeon
func NewDungeon() *Dungeon {
	return &Dungeon{
		rooms: make(map[Coords]*Room),
	}
}

// Add inserts a room. The coordinate must be free.
func (d *Dungeon) Add(room *Room) error {
	if room == nil {
		return fmt.Errorf("add: %w", ErrNotInDungeon)
	}
	if _, found := d.rooms[room.Coords]; found {
		return fmt.Errorf("add %v: %w", room.Coords, ErrOccupied)
	}
	d.rooms[room.Coords] = room
	d.order = append(d.order, room)
	return nil
}

// Get returns the room at coords, or nil
func (d *Dungeon) Get(coords Coords) *Room {
	if d.rooms == nil {
		return nil
	}
	return d.rooms[coords]
}

// RoomCount returns the number of rooms
func (d *Dungeon) RoomCount() int {
	return len(d.order)
}

// Rooms returns the rooms in the order they were added. The slice is a copy.
func (d *Dungeon) Rooms() []*Room {
	out := make([]*Room, len(d.order))
	copy(out, d.order)
	return out
}

// ForEachRoom calls fn for every room in insertion order
func (d *Dungeon) ForEachRoom(fn func(room *Room)) {
	for _, r := range d.order {
		fn(r)
	}
}

// Entrance returns the first room added, or nil for an empty dungeon
func (d *Dungeon) Entrance() *Room {
	if len(d.order) == 0 {
		return nil
	}
	return d.order[0]
}

// Bounds returns the smallest and largest occupied coordinates
func (d *Dungeon) Bounds() (min, max Coords) {
	if len(d.order) == 0 {
		return Coords{}, Coords{}
	}
	min, max = d.order[0].Coords, d.order[0].Coords
	for _, r := range d.order[1:] {
		min = min.Min(r.Coords)
		max = max.Max(r.Coords)
	}
	return min, max
}

// Link adds an unlocked door between two adjacent rooms
func (d *Dungeon) Link(a, b *Room) error {
	return d.link(a, b, Edge{})
}

// LinkLocked adds a door between two adjacent rooms that requires lock to pass
func (d *Dungeon) LinkLocked(a, b *Room, lock Symbol) error {
	return d.link(a, b, Edge{Lock: lock, Locked: true})
}

func (d *Dungeon) link(a, b *Room, e Edge) error {
	if !d.contains(a) || !d.contains(b) {
		return fmt.Errorf("link: %w", ErrNotInDungeon)
	}
	dir, ok := a.Coords.DirectionTo(b.Coords)
	if !ok {
		return fmt.Errorf("link %v -> %v: %w", a.Coords, b.Coords, ErrNotAdjacent)
	}
	if a.edges[dir] != nil || b.edges[dir.Opposite()] != nil {
		return fmt.Errorf("link %v -> %v (%v): %w", a.Coords, b.Coords, dir, ErrEdgeTaken)
	}

	forward, back := e, e
	forward.Target = b.Coords
	back.Target = a.Coords
	a.edges[dir] = &forward
	b.edges[dir.Opposite()] = &back
	return nil
}

// SetItem places sym in the room at coords. A room holds at most one item.
func (d *Dungeon) SetItem(coords Coords, sym Symbol) error {
	room := d.Get(coords)
	if room == nil {
		return fmt.Errorf("set item at %v: %w", coords, ErrNotInDungeon)
	}
	if room.hasItem {
		return fmt.Errorf("set item %v at %v: %w", sym, coords, ErrItemAssigned)
	}
	room.item = sym
	room.hasItem = true
	return nil
}

func (d *Dungeon) contains(r *Room) bool {
	return r != nil && d.Get(r.Coords) == r
}
