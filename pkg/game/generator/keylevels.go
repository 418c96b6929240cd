package generator

import (
	"keydungeon/pkg/engine/world"
)

// keyLevels maps each key level to the rooms created while that many keys
// were required. It lives for one attempt.
type keyLevels struct {
	levels [][]*world.Room
}

func newKeyLevels(numberKeys int) *keyLevels {
	return &keyLevels{levels: make([][]*world.Room, 0, numberKeys+1)}
}

// rooms returns the rooms at keyLevel, growing the mapping if needed
func (k *keyLevels) rooms(keyLevel int) []*world.Room {
	for keyLevel >= len(k.levels) {
		k.levels = append(k.levels, nil)
	}
	return k.levels[keyLevel]
}

func (k *keyLevels) addRoom(keyLevel int, room *world.Room) {
	k.rooms(keyLevel)
	k.levels[keyLevel] = append(k.levels[keyLevel], room)
}

// keyCount is the number of levels seen so far
func (k *keyLevels) keyCount() int {
	return len(k.levels)
}
