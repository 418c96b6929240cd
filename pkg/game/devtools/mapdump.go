// Package devtools provides developer tools for inspecting generated dungeons.
package devtools

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/gookit/color"

	"keydungeon/pkg/engine/world"
	"keydungeon/pkg/game/analysis"
)

const mapDumpFilename = "map.txt"

var (
	colorEntrance = color.Style{color.FgGreen, color.BgBlack, color.OpBold}
	colorRoom     = color.Style{color.FgGray}
	colorKey      = color.Style{color.FgBlue, color.OpBold}
	colorDoor     = color.Style{color.FgGray}
	colorLock     = color.Style{color.FgYellow, color.OpBold}
)

// Metadata describes how a dungeon was made
type Metadata struct {
	Generator string
	Seed      int64
	Attempts  int
	Keys      int
}

// MapWidth returns the number of columns WriteMap uses for d
func MapWidth(d world.View) int {
	min, max := d.Bounds()
	return 2*(max.X-min.X) + 1
}

// roomSymbol returns the single-character symbol for a room
func roomSymbol(room *world.Room) (rune, color.Style) {
	item, ok := room.Item()
	switch {
	case ok && item == world.Start:
		return '@', colorEntrance
	case ok && item.IsKey():
		return []rune(item.String())[0], colorKey
	default:
		return 'o', colorRoom
	}
}

// doorSymbol returns the connector for an edge: the plain door rune, or
// the lowercase lock letter for locked doors.
func doorSymbol(e *world.Edge, plain rune) (rune, color.Style) {
	if e == nil {
		return ' ', color.Style{}
	}
	if e.Locked {
		return []rune(strings.ToLower(e.Lock.String()))[0], colorLock
	}
	return plain, colorDoor
}

// WriteMap draws the dungeon with one character per room and one per door
// between rooms.
func WriteMap(w io.Writer, d world.View, colored bool) {
	if d.RoomCount() == 0 {
		return
	}
	min, max := d.Bounds()

	put := func(sb *strings.Builder, ch rune, style color.Style) {
		if colored && len(style) > 0 && ch != ' ' {
			sb.WriteString(style.Sprint(string(ch)))
			return
		}
		sb.WriteRune(ch)
	}

	for y := min.Y; y <= max.Y; y++ {
		var rooms, doors strings.Builder
		for x := min.X; x <= max.X; x++ {
			room := d.Get(world.Pt(x, y))
			if room == nil {
				rooms.WriteRune(' ')
				doors.WriteRune(' ')
			} else {
				ch, style := roomSymbol(room)
				put(&rooms, ch, style)
				ch, style = doorSymbol(room.Edge(world.South), '|')
				put(&doors, ch, style)
			}
			if x == max.X {
				break
			}
			var east *world.Edge
			if room != nil {
				east = room.Edge(world.East)
			}
			ch, style := doorSymbol(east, '-')
			put(&rooms, ch, style)
			doors.WriteRune(' ')
		}
		fmt.Fprintln(w, strings.TrimRight(rooms.String(), " "))
		if y < max.Y {
			fmt.Fprintln(w, strings.TrimRight(doors.String(), " "))
		}
	}
}

// DumpDungeon writes a full debug dump: metadata, legend, map and a
// per-room listing. Format is plain "key: value" sections.
func DumpDungeon(w io.Writer, d world.View, meta Metadata) {
	min, max := d.Bounds()
	report := analysis.Solve(d)

	fmt.Fprintln(w, "=== DUNGEON DUMP ===")
	fmt.Fprintln(w, "")
	fmt.Fprintln(w, "--- Metadata ---")
	fmt.Fprintf(w, "generator: %s\n", meta.Generator)
	fmt.Fprintf(w, "seed: %d\n", meta.Seed)
	fmt.Fprintf(w, "attempts: %d\n", meta.Attempts)
	fmt.Fprintf(w, "keys: %d\n", meta.Keys)
	fmt.Fprintf(w, "rooms: %d\n", d.RoomCount())
	fmt.Fprintf(w, "bounds: %v .. %v\n", min, max)
	fmt.Fprintf(w, "coordinate_system: x,y (y grows south)\n")
	fmt.Fprintf(w, "dead_ends: %d\n", analysis.DeadEnds(d))
	fmt.Fprintf(w, "locked_doors: %d\n", analysis.LockedEdges(d))
	fmt.Fprintf(w, "rooms_per_level: %v\n", analysis.RoomsPerLevel(d))
	fmt.Fprintf(w, "solvable: %v\n", report.Solvable())
	fmt.Fprintf(w, "key_order: %v\n", report.KeyOrder)
	fmt.Fprintln(w, "")

	fmt.Fprintln(w, "--- Legend ---")
	fmt.Fprintln(w, "@ = entrance  A-Z = room holding that key  o = room  - | = open door  a-z = door locked by that key")
	fmt.Fprintln(w, "")

	fmt.Fprintln(w, "--- Map ---")
	WriteMap(w, d, false)
	fmt.Fprintln(w, "")

	fmt.Fprintln(w, "--- Rooms ---")
	for _, room := range d.Rooms() {
		item := "none"
		if sym, ok := room.Item(); ok {
			item = sym.String()
		}
		parent := "none"
		if p, ok := room.Parent(); ok {
			parent = p.String()
		}
		var edges []string
		for _, dir := range world.AllDirections() {
			e := room.Edge(dir)
			if e == nil {
				continue
			}
			if e.Locked {
				edges = append(edges, fmt.Sprintf("%v(%v, lock %v)", dir, e.Target, e.Lock))
			} else {
				edges = append(edges, fmt.Sprintf("%v(%v)", dir, e.Target))
			}
		}
		fmt.Fprintf(w, "  at: %v level: %d precondition: %v item: %s parent: %s doors: %s\n",
			room.Coords, room.KeyLevel(), room.Precondition(), item, parent, strings.Join(edges, " "))
	}
	fmt.Fprintln(w, "")

	if len(report.Unreachable) > 0 {
		fmt.Fprintln(w, "--- Unreachable ---")
		for _, c := range report.Unreachable {
			fmt.Fprintf(w, "  at: %v\n", c)
		}
		fmt.Fprintln(w, "")
	}

	fmt.Fprintln(w, "=== END DUNGEON DUMP ===")
}

// DumpToFile writes DumpDungeon output to path, or map.txt when path is
// empty. Returns the absolute path written.
func DumpToFile(path string, d world.View, meta Metadata) (string, error) {
	if d == nil {
		return "", fmt.Errorf("no dungeon")
	}
	if path == "" {
		path = mapDumpFilename
	}

	absPath, err := filepath.Abs(path)
	if err != nil {
		return "", err
	}

	f, err := os.Create(absPath)
	if err != nil {
		return "", err
	}
	defer f.Close()

	DumpDungeon(f, d, meta)

	if err := f.Sync(); err != nil {
		return absPath, err
	}
	return absPath, nil
}
