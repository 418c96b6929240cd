package devtools

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"keydungeon/pkg/engine/world"
)

// buildLDungeon builds:
//
//	@-o
//	  a
//	  A
//
// entrance at 0,0, a room east of it, and a room south of that behind
// lock A which also holds key A (for the legend check only).
func buildLDungeon(t *testing.T) *world.Dungeon {
	t.Helper()
	d := world.NewDungeon()
	entrance := world.NewRoom(world.Pt(0, 0), nil, world.NewCondition())
	east := world.NewRoom(world.Pt(1, 0), entrance, world.NewCondition())
	south := world.NewRoom(world.Pt(1, 1), east, world.NewCondition(world.Key(0)))
	for _, r := range []*world.Room{entrance, east, south} {
		require.NoError(t, d.Add(r))
	}
	require.NoError(t, d.Link(entrance, east))
	require.NoError(t, d.LinkLocked(east, south, world.Key(0)))
	require.NoError(t, d.SetItem(entrance.Coords, world.Start))
	require.NoError(t, d.SetItem(south.Coords, world.Key(0)))
	return d
}

func TestWriteMap_Plain(t *testing.T) {
	var buf bytes.Buffer
	WriteMap(&buf, buildLDungeon(t), false)
	assert.Equal(t, "@-o\n  a\n  A\n", buf.String())
}

func TestMapWidth(t *testing.T) {
	assert.Equal(t, 3, MapWidth(buildLDungeon(t)))
}

func TestDumpToFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "dump.txt")
	written, err := DumpToFile(path, buildLDungeon(t), Metadata{Generator: "test", Seed: 9, Attempts: 2, Keys: 1})
	require.NoError(t, err)
	assert.Equal(t, path, written)

	data, err := os.ReadFile(written)
	require.NoError(t, err)
	out := string(data)
	for _, want := range []string{
		"seed: 9\n",
		"attempts: 2\n",
		"rooms: 3\n",
		"locked_doors: 1\n",
		"rooms_per_level: [2 1]\n",
		"--- Map ---\n@-o\n  a\n  A\n",
		"at: 1,1 level: 1 precondition: A item: A parent: 1,0 doors: North(1,0, lock A)",
	} {
		assert.True(t, strings.Contains(out, want), "dump missing %q:\n%s", want, out)
	}
	assert.True(t, strings.HasSuffix(out, "=== END DUNGEON DUMP ===\n"))
}

func TestDumpToFile_NoDungeon(t *testing.T) {
	_, err := DumpToFile("unused.txt", nil, Metadata{})
	assert.Error(t, err)
}
