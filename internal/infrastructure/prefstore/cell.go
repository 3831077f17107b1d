// Package prefstore holds the process-wide preference snapshot.
package prefstore

import (
	"sync/atomic"

	"github.com/bnema/sysprefs/internal/application/port"
	"github.com/bnema/sysprefs/internal/domain/entity"
)

// Compile-time interface check.
var _ port.PreferenceStore = (*Cell)(nil)

// Cell is a single-writer, many-reader snapshot holder.
// Store swaps in a new immutable value so readers never see a partial update.
type Cell struct {
	current atomic.Pointer[entity.Preferences]
	version atomic.Uint64
}

// NewCell creates a cell holding the all-default snapshot.
func NewCell() *Cell {
	c := &Cell{}
	initial := entity.DefaultPreferences()
	c.current.Store(&initial)
	return c
}

// Load returns a copy of the current snapshot.
func (c *Cell) Load() entity.Preferences {
	return *c.current.Load()
}

// Store replaces the snapshot as a whole.
func (c *Cell) Store(prefs entity.Preferences) {
	c.current.Store(&prefs)
	c.version.Add(1)
}

// Version returns the number of stores so far. Hosts compare it between ticks
// to detect a new snapshot without comparing values.
func (c *Cell) Version() uint64 {
	return c.version.Load()
}
