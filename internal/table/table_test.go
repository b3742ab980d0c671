package table

import (
	"errors"
	"testing"

	"github.com/shopspring/decimal"

	"DowntimeIncome/internal/model"
)

func row(level, dc int, trained string) model.IncomeRow {
	v := decimal.RequireFromString(trained)
	return model.IncomeRow{
		EffectiveLevel: level,
		Difficulty:     dc,
		Payouts:        map[model.Proficiency]decimal.Decimal{model.ProficiencyTrained: v},
		FailPayout:     v.Div(decimal.NewFromInt(2)),
	}
}

func TestLookup_Fallback(t *testing.T) {
	tbl, err := New([]model.IncomeRow{row(9, 26, "30"), row(2, 16, "2"), row(5, 20, "7")}, ProvenanceExternal, "test")
	if err != nil {
		t.Fatalf("new table: %v", err)
	}
	tests := []struct {
		level int
		want  int
	}{
		{5, 5},   // exact
		{2, 2},   // exact, lowest
		{9, 9},   // exact, highest
		{3, 2},   // gap: nearest lower
		{8, 5},   // gap: nearest lower
		{0, 2},   // below min: nearest higher
		{-4, 2},  // below min
		{12, 9},  // above max
		{100, 9}, // above max
	}
	for _, tt := range tests {
		got := tbl.Lookup(tt.level).EffectiveLevel
		if got != tt.want {
			t.Errorf("lookup(%d): expected row %d, got %d", tt.level, tt.want, got)
		}
	}
}

func TestLookup_SingleRow(t *testing.T) {
	tbl, err := New([]model.IncomeRow{row(4, 19, "5")}, ProvenanceExternal, "test")
	if err != nil {
		t.Fatalf("new table: %v", err)
	}
	for _, level := range []int{0, 4, 20} {
		if got := tbl.Lookup(level).EffectiveLevel; got != 4 {
			t.Errorf("lookup(%d): expected the only row, got %d", level, got)
		}
	}
}

func TestLookup_NilTableDegrades(t *testing.T) {
	var tbl *Table
	got := tbl.Lookup(3)
	if got.EffectiveLevel != 0 || got.Difficulty != 0 {
		t.Errorf("expected zero row, got %+v", got)
	}
}

func TestNew_Errors(t *testing.T) {
	if _, err := New(nil, ProvenanceExternal, "test"); !errors.Is(err, ErrEmpty) {
		t.Errorf("expected ErrEmpty, got %v", err)
	}
	_, err := New([]model.IncomeRow{row(1, 15, "1"), row(1, 15, "2")}, ProvenanceExternal, "test")
	if !errors.Is(err, ErrDuplicateLevel) {
		t.Errorf("expected ErrDuplicateLevel, got %v", err)
	}
}

func TestNew_DoesNotAliasInput(t *testing.T) {
	rows := []model.IncomeRow{row(3, 18, "3"), row(1, 15, "1")}
	tbl, err := New(rows, ProvenanceExternal, "test")
	if err != nil {
		t.Fatalf("new table: %v", err)
	}
	rows[0].Difficulty = 99
	if tbl.Lookup(3).Difficulty != 18 {
		t.Error("table changed after caller mutated its input slice")
	}
	if tbl.MinLevel() != 1 || tbl.MaxLevel() != 3 {
		t.Errorf("expected levels 1..3, got %d..%d", tbl.MinLevel(), tbl.MaxLevel())
	}
}

func TestBaseline(t *testing.T) {
	tbl := Baseline()
	if tbl.Provenance() != ProvenanceBuiltin {
		t.Errorf("expected builtin provenance, got %s", tbl.Provenance())
	}
	if tbl.MinLevel() != 0 || tbl.MaxLevel() != 20 {
		t.Errorf("expected levels 0..20, got %d..%d", tbl.MinLevel(), tbl.MaxLevel())
	}
	r := tbl.Lookup(3)
	if r.Difficulty != 18 {
		t.Errorf("level 3: expected DC 18, got %d", r.Difficulty)
	}
	if !r.Payout(model.ProficiencyTrained).Equal(decimal.NewFromInt(3)) {
		t.Errorf("level 3: expected trained payout 3, got %s", r.Payout(model.ProficiencyTrained))
	}
	if !r.FailPayout.Equal(decimal.RequireFromString("1.5")) {
		t.Errorf("level 3: expected fail payout 1.5, got %s", r.FailPayout)
	}
}

func TestBaseline_TiersNonDecreasing(t *testing.T) {
	for _, r := range Baseline().Rows() {
		prev := r.FailPayout
		for _, p := range model.Proficiencies {
			v := r.Payout(p)
			if v.LessThan(prev) {
				t.Errorf("level %d: %s payout %s below previous %s", r.EffectiveLevel, p, v, prev)
			}
			prev = v
		}
	}
}

func TestHolder_Swap(t *testing.T) {
	h := NewHolder(nil)
	if h.Current().Provenance() != ProvenanceBuiltin {
		t.Fatal("expected holder to start with the baseline")
	}
	if h.Snapshot().Generation != 0 {
		t.Fatalf("expected generation 0, got %d", h.Snapshot().Generation)
	}

	ext, err := New([]model.IncomeRow{row(1, 15, "1")}, ProvenanceExternal, "ext.csv")
	if err != nil {
		t.Fatalf("new table: %v", err)
	}
	prev := h.Swap(ext)
	if prev.Provenance() != ProvenanceBuiltin {
		t.Error("expected swap to return the baseline")
	}
	if h.Current() != ext {
		t.Error("expected external table to be active")
	}
	if h.Snapshot().Generation != 1 {
		t.Errorf("expected generation 1, got %d", h.Snapshot().Generation)
	}

	h.Swap(nil)
	if h.Current() != ext || h.Snapshot().Generation != 1 {
		t.Error("nil swap must not change the active table")
	}

	h.Reset()
	if h.Current().Provenance() != ProvenanceBuiltin {
		t.Error("expected reset to restore the baseline")
	}
}
