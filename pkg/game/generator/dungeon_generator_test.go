package generator

import (
	"bytes"
	"errors"
	"fmt"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"keydungeon/pkg/engine/logging"
	"keydungeon/pkg/engine/world"
	"keydungeon/pkg/game/analysis"
	"keydungeon/pkg/game/constraints"
)

// scripted wraps Count with a programmable acceptance verdict and records
// every dungeon it was asked about.
type scripted struct {
	*constraints.Count
	accept func(call int) bool
	calls  int
	seen   [][]string
}

func (s *scripted) IsAcceptable(d world.View) bool {
	s.calls++
	s.seen = append(s.seen, snapshot(d))
	return s.accept(s.calls)
}

func newScripted(spaces, keys, width, height int, accept func(call int) bool) *scripted {
	return &scripted{Count: constraints.NewCount(spaces, keys, width, height), accept: accept}
}

// snapshot renders a dungeon as comparable lines, one per room.
func snapshot(d world.View) []string {
	var lines []string
	for _, room := range d.Rooms() {
		item, hasItem := room.Item()
		itemStr := "-"
		if hasItem {
			itemStr = item.String()
		}
		var edges []string
		for _, dir := range world.AllDirections() {
			e := room.Edge(dir)
			if e == nil {
				continue
			}
			lock := ""
			if e.Locked {
				lock = "/" + e.Lock.String()
			}
			edges = append(edges, fmt.Sprintf("%v->%v%s", dir, e.Target, lock))
		}
		lines = append(lines, fmt.Sprintf("%v pre=%v item=%s edges=[%s]",
			room.Coords, room.Precondition(), itemStr, strings.Join(edges, " ")))
	}
	return lines
}

func TestGenerate_TenRoomsTwoKeys(t *testing.T) {
	g := NewDungeonGenerator(42, constraints.NewCount(10, 2, 5, 5))
	require.NoError(t, g.Generate())
	assert.Equal(t, 1, g.Attempts())

	d := g.Dungeon()
	require.NotNil(t, d)
	assert.Equal(t, 10, d.RoomCount())

	entrance := d.Entrance()
	require.NotNil(t, entrance)
	assert.Equal(t, world.Pt(2, 2), entrance.Coords)
	item, ok := entrance.Item()
	assert.True(t, ok)
	assert.Equal(t, world.Start, item)
	assert.Equal(t, 0, entrance.Precondition().Size())

	keys := analysis.KeyRooms(d)
	require.Len(t, keys, 2)
	require.Contains(t, keys, world.Key(0))
	require.Contains(t, keys, world.Key(1))
	assert.NotEqual(t, keys[world.Key(0)].Coords, keys[world.Key(1)].Coords)

	items := 0
	for _, room := range d.Rooms() {
		if _, ok := room.Item(); ok {
			items++
		}
	}
	assert.Equal(t, 3, items, "start marker plus two keys")
}

func TestGenerate_AlwaysUnacceptable(t *testing.T) {
	c := newScripted(10, 2, 5, 5, func(int) bool { return false })
	g := NewDungeonGenerator(1, c)

	err := g.Generate()
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrGenerationFailed)
	assert.False(t, errors.Is(err, ErrInvariant))

	var genErr *GenerationError
	require.ErrorAs(t, err, &genErr)
	assert.Equal(t, MaxRetries+1, genErr.Attempts)
	assert.Equal(t, MaxRetries+1, g.Attempts())
	assert.Equal(t, MaxRetries+1, c.calls)
	assert.Nil(t, g.Dungeon())
}

func TestGenerate_RetryCeilingIsConfigurable(t *testing.T) {
	c := newScripted(10, 2, 5, 5, func(int) bool { return false })
	g := NewDungeonGenerator(1, c)
	g.SetMaxRetries(0)

	assert.ErrorIs(t, g.Generate(), ErrGenerationFailed)
	assert.Equal(t, 1, c.calls)
}

func TestGenerate_RetriesUntilAccepted(t *testing.T) {
	c := newScripted(10, 2, 5, 5, func(call int) bool { return call >= 3 })
	g := NewDungeonGenerator(7, c)

	require.NoError(t, g.Generate())
	assert.Equal(t, 3, g.Attempts())
	assert.Equal(t, 3, c.calls)
	assert.Equal(t, c.seen[2], snapshot(g.Dungeon()))
}

func TestGenerate_RetryContinuesRandomStream(t *testing.T) {
	const seed = 99

	fresh := NewDungeonGenerator(seed, constraints.NewCount(30, 3, 8, 8))
	require.NoError(t, fresh.Generate())
	first := snapshot(fresh.Dungeon())

	c := newScripted(30, 3, 8, 8, func(call int) bool { return call >= 2 })
	retried := NewDungeonGenerator(seed, c)
	require.NoError(t, retried.Generate())

	// The rejected attempt is what a fresh generator produces; the second
	// attempt draws on from there instead of starting over.
	assert.Equal(t, first, c.seen[0])
	assert.NotEqual(t, first, snapshot(retried.Dungeon()))
}

func TestGenerate_SameSeedSameDungeon(t *testing.T) {
	for _, seed := range []int64{0, 1, 2, 12345} {
		a := NewDungeonGenerator(seed, constraints.NewCount(25, 3, 7, 7))
		b := NewDungeonGenerator(seed, constraints.NewCount(25, 3, 7, 7))
		require.NoError(t, a.Generate())
		require.NoError(t, b.Generate())
		assert.Equal(t, snapshot(a.Dungeon()), snapshot(b.Dungeon()), "seed %d", seed)
	}
}

func TestGenerate_Invariants(t *testing.T) {
	const (
		spaces = 30
		keys   = 3
	)
	for seed := int64(1); seed <= 40; seed++ {
		g := NewDungeonGenerator(seed, constraints.NewCount(spaces, keys, 8, 8))
		require.NoError(t, g.Generate(), "seed %d", seed)
		d := g.Dungeon()

		require.Equal(t, spaces, d.RoomCount(), "seed %d", seed)

		seen := make(map[world.Coords]bool)
		for _, room := range d.Rooms() {
			require.False(t, seen[room.Coords], "seed %d: duplicate room at %v", seed, room.Coords)
			seen[room.Coords] = true
			require.Same(t, room, d.Get(room.Coords))

			// Preconditions are always "the first n keys".
			pre := room.Precondition()
			for k := 0; k < pre.Size(); k++ {
				assert.True(t, pre.Has(world.Key(k)), "seed %d: %v precondition %v", seed, room.Coords, pre)
			}

			if room == d.Entrance() {
				_, hasParent := room.Parent()
				assert.False(t, hasParent)
				continue
			}

			parentCoords, ok := room.Parent()
			require.True(t, ok, "seed %d: %v has no parent", seed, room.Coords)
			parent := d.Get(parentCoords)
			require.NotNil(t, parent)
			dir, adjacent := parent.Coords.DirectionTo(room.Coords)
			require.True(t, adjacent)
			edge := parent.Edge(dir)
			require.NotNil(t, edge, "seed %d: no door from parent %v to %v", seed, parent.Coords, room.Coords)

			assert.True(t, pre.Implies(parent.Precondition()))
			if !pre.Equal(parent.Precondition()) {
				assert.True(t, edge.Locked, "seed %d: %v crosses a key level without a lock", seed, room.Coords)
			}
		}

		// Key k sits on level k, i.e. behind exactly the first k keys.
		for sym, room := range analysis.KeyRooms(d) {
			pre := room.Precondition()
			assert.Equal(t, sym.KeyIndex(), pre.Size(), "seed %d: key %v on level %d", seed, sym, pre.Size())
			assert.False(t, pre.Has(sym), "seed %d: key %v locked behind itself", seed, sym)
		}

		report := analysis.Solve(d)
		assert.True(t, report.Solvable(), "seed %d: %+v", seed, report)
		assert.Equal(t, []world.Symbol{world.Key(0), world.Key(1), world.Key(2)}, report.KeyOrder, "seed %d", seed)
	}
}

func TestGenerate_ShapeConstraints(t *testing.T) {
	shape, err := constraints.ParseShape(strings.NewReader(`
#........
#...#####
#...#....
S........
`), 20, 2)
	require.NoError(t, err)

	g := NewDungeonGenerator(5, shape)
	require.NoError(t, g.Generate())
	d := g.Dungeon()
	assert.Equal(t, world.Pt(0, 3), d.Entrance().Coords)
	for _, room := range d.Rooms() {
		assert.True(t, shape.ValidRoomCoords(room.Coords), "room outside shape at %v", room.Coords)
	}
}

func TestGenerate_RequireSolvableAcceptance(t *testing.T) {
	c := constraints.WithAcceptance(constraints.NewCount(20, 2, 6, 6), constraints.RequireSolvable())
	g := NewDungeonGenerator(3, c)
	require.NoError(t, g.Generate())
	assert.Equal(t, 1, g.Attempts())
}

func TestGenerate_InvalidConstraints(t *testing.T) {
	assert.ErrorIs(t, NewDungeonGenerator(1, nil).Generate(), ErrInvalidConstraints)
	assert.ErrorIs(t, NewDungeonGenerator(1, constraints.NewCount(0, 0, 5, 5)).Generate(), ErrInvalidConstraints)
	assert.ErrorIs(t, NewDungeonGenerator(1, constraints.NewCount(5, -1, 5, 5)).Generate(), ErrInvalidConstraints)
}

func TestGenerate_InvariantViolationsAreNotRetried(t *testing.T) {
	cases := []struct {
		name string
		c    constraints.Constraints
	}{
		// 20 rooms cannot fit in 9 cells.
		{"space exhausted", constraints.NewCount(20, 1, 3, 3)},
		// One room per lock leaves only the entrance on level 0.
		{"no room for key", constraints.NewCount(2, 1, 5, 5)},
		// The centre of a 0×0 grid is outside it.
		{"invalid entrance", constraints.NewCount(3, 0, 0, 0)},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			g := NewDungeonGenerator(1, tc.c)
			err := g.Generate()
			assert.ErrorIs(t, err, ErrInvariant)
			assert.NotErrorIs(t, err, ErrGenerationFailed)
			assert.Equal(t, 1, g.Attempts())
			assert.Nil(t, g.Dungeon())
		})
	}
}

func TestGenerate_LogsRetries(t *testing.T) {
	var buf bytes.Buffer
	c := newScripted(10, 2, 5, 5, func(call int) bool { return call >= 2 })
	g := NewDungeonGenerator(11, c)
	g.SetLogger(logging.New(&buf, logging.LevelBasic, false))

	require.NoError(t, g.Generate())
	assert.Contains(t, buf.String(), "[@] Retrying dungeon generation (attempt 2)...")
	assert.Contains(t, buf.String(), "[>] Generated 10 rooms with 2 keys in 2 attempts")
}
