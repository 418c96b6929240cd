package analysis

import (
	"keydungeon/pkg/engine/world"
)

// DeadEnds counts rooms with exactly one door
func DeadEnds(d world.View) int {
	n := 0
	for _, room := range d.Rooms() {
		if room.IsDeadEnd() {
			n++
		}
	}
	return n
}

// RoomsPerLevel returns the room count for each key level, indexed by level
func RoomsPerLevel(d world.View) []int {
	var counts []int
	for _, room := range d.Rooms() {
		level := room.KeyLevel()
		for len(counts) <= level {
			counts = append(counts, 0)
		}
		counts[level]++
	}
	return counts
}

// KeyRooms maps each placed key to the room holding it
func KeyRooms(d world.View) map[world.Symbol]*world.Room {
	out := make(map[world.Symbol]*world.Room)
	for _, room := range d.Rooms() {
		if item, ok := room.Item(); ok && item.IsKey() {
			out[item] = room
		}
	}
	return out
}

// LockedEdges counts locked doors, each door once
func LockedEdges(d world.View) int {
	n := 0
	for _, room := range d.Rooms() {
		for _, e := range room.Edges() {
			if e.Locked {
				n++
			}
		}
	}
	return n / 2
}
