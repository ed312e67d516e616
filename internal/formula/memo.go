package formula

import (
	"github.com/cespare/xxhash/v2"

	"github.com/codefionn/xl/internal/cellref"
)

// Generational grids bump a counter on every mutation.
type Generational interface {
	Generation() uint64
}

// memo caches formula results for one grid generation. An entry is only
// served while the generation and the digest of the cell's raw text match.
// A nil *memo is a disabled cache.
type memo struct {
	grid    Generational
	gen     uint64
	entries map[cellref.Ref]memoEntry
	hits    uint64
	misses  uint64
}

type memoEntry struct {
	digest uint64
	value  string
}

func newMemo(g Generational) *memo {
	return &memo{
		grid:    g,
		gen:     g.Generation(),
		entries: make(map[cellref.Ref]memoEntry),
	}
}

func (m *memo) generation() uint64 {
	if m == nil {
		return 0
	}
	return m.grid.Generation()
}

func (m *memo) sync() {
	if gen := m.grid.Generation(); gen != m.gen {
		m.gen = gen
		clear(m.entries)
	}
}

func (m *memo) get(ref cellref.Ref, raw string) (string, bool) {
	if m == nil {
		return "", false
	}
	m.sync()
	entry, ok := m.entries[ref]
	if !ok || entry.digest != xxhash.Sum64String(raw) {
		m.misses++
		return "", false
	}
	m.hits++
	return entry.value, true
}

// put stores value if the grid is still at gen, the generation observed
// before the value was computed.
func (m *memo) put(ref cellref.Ref, raw, value string, gen uint64) {
	if m == nil {
		return
	}
	m.sync()
	if m.gen != gen {
		return
	}
	m.entries[ref] = memoEntry{digest: xxhash.Sum64String(raw), value: value}
}
