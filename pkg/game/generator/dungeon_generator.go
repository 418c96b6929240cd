package generator

import (
	"errors"
	"math/rand"
	"slices"

	"keydungeon/pkg/engine/logging"
	"keydungeon/pkg/engine/world"
	"keydungeon/pkg/game/constraints"
)

// MaxRetries is the default number of whole-run restarts before Generate
// gives up.
const MaxRetries = 20

// DungeonGenerator builds lock-and-key dungeons: rooms grow outward from
// an entrance, grouped into key levels separated by locked doors, with
// the key for each level hidden in the level before it.
//
// All randomness comes from one stream seeded at construction. A failed
// attempt does not rewind it, so the sequence of attempts is fixed by the
// seed and the constraints.
type DungeonGenerator struct {
	seed        int64
	rng         *rand.Rand
	constraints constraints.Constraints
	maxRetries  int
	log         *logging.Logger

	dungeon  *world.Dungeon
	attempts int
}

// NewDungeonGenerator creates a generator for the given seed and constraints
func NewDungeonGenerator(seed int64, c constraints.Constraints) *DungeonGenerator {
	return &DungeonGenerator{
		seed:        seed,
		rng:         rand.New(rand.NewSource(seed)),
		constraints: c,
		maxRetries:  MaxRetries,
		log:         logging.Discard(),
	}
}

// Name returns the name of this generator
func (g *DungeonGenerator) Name() string {
	return "Lock and Key"
}

// Seed returns the seed the generator was created with
func (g *DungeonGenerator) Seed() int64 {
	return g.seed
}

// SetMaxRetries changes how many times a rejected attempt is restarted.
// Negative values are treated as zero.
func (g *DungeonGenerator) SetMaxRetries(n int) {
	if n < 0 {
		n = 0
	}
	g.maxRetries = n
}

// SetLogger sets where retries and results are reported
func (g *DungeonGenerator) SetLogger(l *logging.Logger) {
	if l == nil {
		l = logging.Discard()
	}
	g.log = l
}

// Attempts returns the number of attempts made by the last Generate
func (g *DungeonGenerator) Attempts() int {
	return g.attempts
}

// Dungeon returns the last accepted dungeon, or nil
func (g *DungeonGenerator) Dungeon() world.View {
	if g.dungeon == nil {
		return nil
	}
	return g.dungeon
}

// outcome is how a single attempt ended
type outcome int

const (
	outcomeAccepted outcome = iota
	outcomeRetry
	outcomeFatal
)

// Generate runs attempts until one is accepted, an invariant breaks, or
// the retry ceiling is exceeded.
func (g *DungeonGenerator) Generate() error {
	g.dungeon = nil
	g.attempts = 0

	if err := g.validate(); err != nil {
		return err
	}

	for {
		g.attempts++
		dungeon, result, err := g.attempt()

		switch result {
		case outcomeAccepted:
			g.dungeon = dungeon
			g.log.Basic("Generated %d rooms with %d keys in %d attempts", dungeon.RoomCount(), g.constraints.NumberKeys(), g.attempts)
			return nil
		case outcomeFatal:
			g.log.Error("Dungeon generation aborted: %v", err)
			return err
		}

		if g.attempts > g.maxRetries {
			g.log.Error("Dungeon generation failed after %d attempts", g.attempts)
			return &GenerationError{Attempts: g.attempts}
		}
		g.log.Status("Retrying dungeon generation (attempt %d)...", g.attempts+1)
	}
}

func (g *DungeonGenerator) validate() error {
	c := g.constraints
	switch {
	case c == nil:
		return ErrInvalidConstraints
	case c.NumberSpaces() < 1:
		return errors.Join(ErrInvalidConstraints, errors.New("need at least one space"))
	case c.NumberKeys() < 0:
		return errors.Join(ErrInvalidConstraints, errors.New("number of keys is negative"))
	}
	return nil
}

// attempt runs every phase once on a fresh dungeon
func (g *DungeonGenerator) attempt() (*world.Dungeon, outcome, error) {
	b := &build{
		rng:         g.rng,
		constraints: g.constraints,
		dungeon:     world.NewDungeon(),
		levels:      newKeyLevels(g.constraints.NumberKeys()),
	}

	err := b.run()
	switch {
	case err == nil:
		return b.dungeon, outcomeAccepted, nil
	case errors.Is(err, errRetry):
		return nil, outcomeRetry, err
	default:
		return nil, outcomeFatal, err
	}
}

// build holds the state of one attempt
type build struct {
	rng         *rand.Rand
	constraints constraints.Constraints
	dungeon     *world.Dungeon
	levels      *keyLevels
}

func (b *build) run() error {
	phases := []func() error{
		b.initEntranceRoom,
		b.placeRooms,
		b.graphify,
		b.placeKeys,
		b.checkAcceptable,
	}
	for _, phase := range phases {
		if err := phase(); err != nil {
			return err
		}
	}
	return nil
}

func (b *build) roomsPerLock() int {
	return b.constraints.NumberSpaces() / (b.constraints.NumberKeys() + 1)
}

// isFree reports whether a new room could go at coords
func (b *build) isFree(coords world.Coords) bool {
	return b.dungeon.Get(coords) == nil && b.constraints.ValidRoomCoords(coords)
}

func (b *build) hasFreeEdge(room *world.Room) bool {
	for _, d := range world.AllDirections() {
		if b.isFree(room.Coords.NextInDirection(d)) {
			return true
		}
	}
	return false
}

// chooseRoomWithFreeEdge picks a random room from rooms that has at least
// one free neighbour, or nil if none has.
func (b *build) chooseRoomWithFreeEdge(rooms []*world.Room) *world.Room {
	candidates := slices.Clone(rooms)
	b.rng.Shuffle(len(candidates), func(i, j int) {
		candidates[i], candidates[j] = candidates[j], candidates[i]
	})
	for _, room := range candidates {
		if b.hasFreeEdge(room) {
			return room
		}
	}
	return nil
}

// chooseFreeEdge scans the directions from a random starting point and
// returns the first one leading to a free coordinate.
func (b *build) chooseFreeEdge(room *world.Room) (world.Direction, error) {
	d0 := b.rng.Intn(world.NumDirections)
	for i := 0; i < world.NumDirections; i++ {
		d := world.FromCode(d0 + i)
		if b.isFree(room.Coords.NextInDirection(d)) {
			return d, nil
		}
	}
	return world.North, invariantf("place rooms", "room %v has no free edge", room.Coords)
}

// initEntranceRoom sets up the dungeon's entrance room
func (b *build) initEntranceRoom() error {
	coords := b.constraints.InitialCoords()
	if !b.constraints.ValidRoomCoords(coords) {
		return invariantf("entrance", "initial coordinates %v are not valid room coordinates", coords)
	}

	entry := world.NewRoom(coords, nil, world.NewCondition())
	if err := b.dungeon.Add(entry); err != nil {
		return invariantErr("entrance", err)
	}
	if err := b.dungeon.SetItem(coords, world.Start); err != nil {
		return invariantErr("entrance", err)
	}

	b.levels.addRoom(0, entry)
	return nil
}

// placeRooms fills the dungeon's space with rooms and doors, some locked
func (b *build) placeRooms() error {
	// keyLevel: the number of keys required to get to the new room
	keyLevel := 0
	var latestKey world.Symbol
	haveKey := false
	// cond: the keys the player must hold to reach the new room
	cond := world.NewCondition()
	roomsPerLock := b.roomsPerLock()

	for b.dungeon.RoomCount() < b.constraints.NumberSpaces() {
		doLock := false

		// Time for a new lock?
		if len(b.levels.rooms(keyLevel)) >= roomsPerLock && keyLevel < b.constraints.NumberKeys() {
			latestKey = world.Key(keyLevel)
			haveKey = true
			keyLevel++
			cond = cond.And(latestKey)
			doLock = true
		}

		// Prefer a parent on the current level; anywhere else must be
		// gated by the level's lock.
		var parent *world.Room
		if !doLock && b.rng.Intn(10) > 0 {
			parent = b.chooseRoomWithFreeEdge(b.levels.rooms(keyLevel))
		}
		if parent == nil {
			parent = b.chooseRoomWithFreeEdge(b.dungeon.Rooms())
			doLock = true
		}
		if parent == nil {
			return invariantf("place rooms", "no room has a free edge with %d of %d rooms placed",
				b.dungeon.RoomCount(), b.constraints.NumberSpaces())
		}

		d, err := b.chooseFreeEdge(parent)
		if err != nil {
			return err
		}
		room := world.NewRoom(parent.Coords.NextInDirection(d), parent, cond)

		if err := b.dungeon.Add(room); err != nil {
			return invariantErr("place rooms", err)
		}
		if doLock && haveKey {
			err = b.dungeon.LinkLocked(parent, room, latestKey)
		} else {
			err = b.dungeon.Link(parent, room)
		}
		if err != nil {
			return invariantErr("place rooms", err)
		}

		b.levels.addRoom(keyLevel, room)
	}
	return nil
}

// graphify links up adjacent rooms to make the graph less of a tree
func (b *build) graphify() error {
	for _, room := range b.dungeon.Rooms() {
		for _, d := range world.AllDirections() {
			if room.Edge(d) != nil {
				continue
			}
			if b.rng.Intn(6) != 0 {
				continue
			}

			next := b.dungeon.Get(room.Coords.NextInDirection(d))
			if next == nil {
				continue
			}

			pre, nextPre := room.Precondition(), next.Precondition()
			if pre.Implies(nextPre) && nextPre.Implies(pre) {
				// both rooms are on the same key level
				if err := b.dungeon.Link(room, next); err != nil {
					return invariantErr("graphify", err)
				}
				continue
			}

			// A single lock cannot separate rooms more than one key apart.
			if len(pre.Difference(nextPre)) > 1 {
				continue
			}
			lock, err := pre.SingleSymbolDifference(nextPre)
			if err != nil {
				return invariantErr("graphify", err)
			}
			if err := b.dungeon.LinkLocked(room, next, lock); err != nil {
				return invariantErr("graphify", err)
			}
		}
	}
	return nil
}

// placeKeys puts the key for each level but the last in that level,
// preferring rooms with the fewest doors.
func (b *build) placeKeys() error {
	for key := 0; key < b.levels.keyCount()-1; key++ {
		rooms := b.levels.rooms(key)

		b.rng.Shuffle(len(rooms), func(i, j int) {
			rooms[i], rooms[j] = rooms[j], rooms[i]
		})
		// Stable, so the shuffle still breaks ties.
		slices.SortStableFunc(rooms, func(x, y *world.Room) int {
			return x.LinkCount() - y.LinkCount()
		})

		placed := false
		for _, room := range rooms {
			if _, taken := room.Item(); taken {
				continue
			}
			if err := b.dungeon.SetItem(room.Coords, world.Key(key)); err != nil {
				return invariantErr("place keys", err)
			}
			placed = true
			break
		}
		if !placed {
			return invariantf("place keys", "no empty room on key level %d for key %v", key, world.Key(key))
		}
	}
	return nil
}

func (b *build) checkAcceptable() error {
	if !b.constraints.IsAcceptable(b.dungeon) {
		return errRetry
	}
	return nil
}
