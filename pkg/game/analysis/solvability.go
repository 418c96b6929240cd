// Package analysis inspects finished dungeons: whether the lock-and-key
// puzzle can be completed, and simple shape statistics.
package analysis

import (
	"slices"

	"github.com/zyedidia/generic/mapset"
	"github.com/zyedidia/generic/queue"

	"keydungeon/pkg/engine/world"
)

// Report is the result of walking a dungeon from its entrance.
type Report struct {
	Total     int
	Reachable int

	// KeyOrder lists keys in the order they can be collected. Keys that
	// become reachable together are listed by index.
	KeyOrder []world.Symbol

	// Unreachable rooms, in dungeon order
	Unreachable []world.Coords

	// PreconditionViolations lists rooms first reached while holding keys
	// that do not satisfy the room's precondition.
	PreconditionViolations []world.Coords
}

// Solvable returns true if every room can be reached and every room was
// reached only once its precondition was met.
func (r Report) Solvable() bool {
	return len(r.Unreachable) == 0 && len(r.PreconditionViolations) == 0
}

// getReachableRooms returns all rooms reachable from start by BFS. Locked
// edges are passable only when held contains their lock.
func getReachableRooms(d world.View, start *world.Room, held *mapset.Set[world.Symbol]) *mapset.Set[world.Coords] {
	reachable := mapset.New[world.Coords]()
	q := queue.New[*world.Room]()
	q.Enqueue(start)

	for !q.Empty() {
		current := q.Dequeue()
		if current == nil || reachable.Has(current.Coords) {
			continue
		}
		reachable.Put(current.Coords)

		for _, dir := range world.AllDirections() {
			e := current.Edge(dir)
			if e == nil || reachable.Has(e.Target) {
				continue
			}
			if e.Locked && !held.Has(e.Lock) {
				continue
			}
			q.Enqueue(d.Get(e.Target))
		}
	}

	return &reachable
}

// Solve plays the dungeon greedily: walk everything reachable, pick up
// every key found, repeat until no new key turns up.
func Solve(d world.View) Report {
	report := Report{Total: d.RoomCount()}
	start := d.Entrance()
	if start == nil {
		return report
	}

	held := mapset.New[world.Symbol]()
	heldCond := world.NewCondition()
	visited := mapset.New[world.Coords]()

	for {
		reachable := getReachableRooms(d, start, &held)

		var found []world.Symbol
		for _, room := range d.Rooms() {
			if !reachable.Has(room.Coords) {
				continue
			}
			if !visited.Has(room.Coords) {
				visited.Put(room.Coords)
				if !heldCond.Implies(room.Precondition()) {
					report.PreconditionViolations = append(report.PreconditionViolations, room.Coords)
				}
			}
			if item, ok := room.Item(); ok && item.IsKey() && !held.Has(item) {
				found = append(found, item)
			}
		}

		if len(found) == 0 {
			report.Reachable = reachable.Size()
			break
		}
		slices.Sort(found)
		for _, k := range found {
			held.Put(k)
			heldCond = heldCond.And(k)
		}
		report.KeyOrder = append(report.KeyOrder, found...)
	}

	for _, room := range d.Rooms() {
		if !visited.Has(room.Coords) {
			report.Unreachable = append(report.Unreachable, room.Coords)
		}
	}
	return report
}
