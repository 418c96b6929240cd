package constraints

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/zyedidia/generic/mapset"

	"keydungeon/pkg/engine/world"
)

// Shape mask characters
const (
	ShapeOpen     = '.'
	ShapeBlocked  = '#'
	ShapeEntrance = 'S'
)

// ErrEmptyShape is returned when a shape has no open cells
var ErrEmptyShape = errors.New("shape has no open cells")

// Shape constrains rooms to the open cells of a text mask. Row y of the
// mask is line y; column x is the x-th character. '.' and 'S' are open,
// anything else is blocked. 'S' marks the entrance; without one the first
// open cell in reading order is used.
type Shape struct {
	spaces, keys int
	open         mapset.Set[world.Coords]
	initial      world.Coords
	width        int
	height       int
}

var _ Constraints = (*Shape)(nil)

// ParseShape reads a mask from r
func ParseShape(r io.Reader, spaces, keys int) (*Shape, error) {
	s := &Shape{
		spaces: spaces,
		keys:   keys,
		open:   mapset.New[world.Coords](),
	}
	foundEntrance := false
	foundOpen := false

	scanner := bufio.NewScanner(r)
	y := 0
	for scanner.Scan() {
		line := strings.TrimRight(scanner.Text(), "\r")
		if strings.TrimSpace(line) == "" {
			continue
		}
		for x, ch := range []rune(line) {
			if ch != ShapeOpen && ch != ShapeEntrance {
				continue
			}
			c := world.Pt(x, y)
			s.open.Put(c)
			if ch == ShapeEntrance {
				if foundEntrance {
					return nil, fmt.Errorf("shape line %d: second entrance at %v", y+1, c)
				}
				s.initial = c
				foundEntrance = true
			}
			if !foundOpen && !foundEntrance {
				s.initial = c
			}
			foundOpen = true
		}
		if len([]rune(line)) > s.width {
			s.width = len([]rune(line))
		}
		y++
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("read shape: %w", err)
	}
	s.height = y
	if !foundOpen {
		return nil, ErrEmptyShape
	}
	return s, nil
}

// LoadShape reads a mask from a file
func LoadShape(path string, spaces, keys int) (*Shape, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	s, err := ParseShape(f, spaces, keys)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return s, nil
}

// NumberSpaces returns the number of rooms to place
func (s *Shape) NumberSpaces() int { return s.spaces }

// NumberKeys returns the number of keys
func (s *Shape) NumberKeys() int { return s.keys }

// InitialCoords returns the entrance cell
func (s *Shape) InitialCoords() world.Coords { return s.initial }

// ValidRoomCoords reports whether coords is an open cell
func (s *Shape) ValidRoomCoords(coords world.Coords) bool {
	return s.open.Has(coords)
}

// IsAcceptable always returns true
func (s *Shape) IsAcceptable(world.View) bool { return true }

// OpenCells returns the number of open cells in the mask
func (s *Shape) OpenCells() int { return s.open.Size() }

// Size returns the mask's width and height
func (s *Shape) Size() (width, height int) { return s.width, s.height }
