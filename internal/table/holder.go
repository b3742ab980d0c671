package table

import "sync/atomic"

// Snapshot pairs a table with the generation it was installed at.
type Snapshot struct {
	Table      *Table
	Generation uint64
}

// Holder owns the active table. Replacing it is a single atomic store, so the
// last completed load wins and readers never see a partial table.
type Holder struct {
	current atomic.Pointer[Snapshot]
}

// NewHolder starts with initial, or the built-in baseline when initial is nil.
func NewHolder(initial *Table) *Holder {
	if initial == nil {
		initial = Baseline()
	}
	h := &Holder{}
	h.current.Store(&Snapshot{Table: initial})
	return h
}

// Current returns the active table.
func (h *Holder) Current() *Table {
	return h.current.Load().Table
}

// Snapshot returns the active table together with its generation.
func (h *Holder) Snapshot() Snapshot {
	return *h.current.Load()
}

// Swap makes t active and returns the table it replaced. A nil t is ignored.
func (h *Holder) Swap(t *Table) *Table {
	if t == nil {
		return h.Current()
	}
	for {
		prev := h.current.Load()
		next := &Snapshot{Table: t, Generation: prev.Generation + 1}
		if h.current.CompareAndSwap(prev, next) {
			return prev.Table
		}
	}
}

// Reset restores the built-in baseline.
func (h *Holder) Reset() *Table {
	return h.Swap(Baseline())
}
