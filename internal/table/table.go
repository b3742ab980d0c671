package table

import (
	"errors"
	"fmt"
	"sort"

	"DowntimeIncome/internal/model"
)

// Provenance records where a table came from.
type Provenance string

const (
	ProvenanceBuiltin  Provenance = "builtin"
	ProvenanceExternal Provenance = "external"
)

var (
	// ErrEmpty means a source produced no usable rows.
	ErrEmpty = errors.New("income table has no usable rows")
	// ErrDuplicateLevel means two rows share an effective level.
	ErrDuplicateLevel = errors.New("duplicate effective level")
)

// Table is an immutable set of income rows ordered by effective level.
type Table struct {
	rows       []model.IncomeRow
	provenance Provenance
	source     string
}

// New builds a table from rows in any order. It fails with ErrEmpty for zero
// rows and ErrDuplicateLevel when a level repeats.
func New(rows []model.IncomeRow, provenance Provenance, source string) (*Table, error) {
	if len(rows) == 0 {
		return nil, ErrEmpty
	}
	sorted := make([]model.IncomeRow, len(rows))
	copy(sorted, rows)
	sort.Slice(sorted, func(i, j int) bool { return sorted[i].EffectiveLevel < sorted[j].EffectiveLevel })
	for i := 1; i < len(sorted); i++ {
		if sorted[i].EffectiveLevel == sorted[i-1].EffectiveLevel {
			return nil, fmt.Errorf("%w: %d", ErrDuplicateLevel, sorted[i].EffectiveLevel)
		}
	}
	return &Table{rows: sorted, provenance: provenance, source: source}, nil
}

// Lookup returns the row for level. An exact match wins; otherwise the
// nearest lower row, then the nearest higher row.
func (t *Table) Lookup(level int) model.IncomeRow {
	if t == nil || len(t.rows) == 0 {
		// Unreachable through New; degrade instead of failing the evaluation.
		return model.IncomeRow{}
	}
	i := sort.Search(len(t.rows), func(i int) bool { return t.rows[i].EffectiveLevel >= level })
	if i < len(t.rows) && t.rows[i].EffectiveLevel == level {
		return t.rows[i]
	}
	if i > 0 {
		return t.rows[i-1]
	}
	return t.rows[i]
}

// Rows returns a copy of the rows in level order.
func (t *Table) Rows() []model.IncomeRow {
	out := make([]model.IncomeRow, len(t.rows))
	copy(out, t.rows)
	return out
}

func (t *Table) Len() int { return len(t.rows) }

func (t *Table) Provenance() Provenance { return t.provenance }

// Source describes the origin, e.g. a file path or URL.
func (t *Table) Source() string { return t.source }

// MinLevel returns the lowest effective level in the table.
func (t *Table) MinLevel() int { return t.rows[0].EffectiveLevel }

// MaxLevel returns the highest effective level in the table.
func (t *Table) MaxLevel() int { return t.rows[len(t.rows)-1].EffectiveLevel }
