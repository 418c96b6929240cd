package world

import "fmt"

// Symbol identifies a placeable item: either a key, indexed from 0, or a
// special marker such as Start.
type Symbol int

// Special markers. Keys use non-negative values.
const (
	Start Symbol = -1
)

// Key returns the symbol for the key with the given index.
func Key(index int) Symbol {
	return Symbol(index)
}

// IsKey returns true if the symbol is a key rather than a marker
func (s Symbol) IsKey() bool {
	return s >= 0
}

// KeyIndex returns the key index, or -1 for markers
func (s Symbol) KeyIndex() int {
	if !s.IsKey() {
		return -1
	}
	return int(s)
}

// String returns "Start" for the start marker and a letter for keys.
// Keys past Z fall back to "K<index>".
func (s Symbol) String() string {
	switch {
	case s == Start:
		return "Start"
	case s >= 0 && s < 26:
		return string(rune('A' + s))
	case s >= 26:
		return fmt.Sprintf("K%d", int(s))
	default:
		return fmt.Sprintf("Symbol(%d)", int(s))
	}
}
