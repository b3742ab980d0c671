package calculator

import (
	"testing"

	"DowntimeIncome/internal/model"
)

func TestInitialLevel(t *testing.T) {
	pf := model.Pathfinder()
	hz := model.Horizon()
	tests := []struct {
		name    string
		level   int
		boon    bool
		variant model.Variant
		want    int
	}{
		{"offset applied", 5, false, pf, 3},
		{"additive boon keeps level", 5, true, pf, 5},
		{"clamped at zero", 1, false, pf, 0},
		{"clamped at max", 30, false, pf, 20},
		{"boon clamped at max", 25, true, pf, 20},
		{"horizon offset", 5, false, hz, 4},
		{"multiplicative boon keeps offset", 5, true, hz, 4},
		{"horizon max", 15, false, hz, 10},
	}
	for _, tt := range tests {
		if got := InitialLevel(tt.level, tt.boon, tt.variant); got != tt.want {
			t.Errorf("%s: expected %d, got %d", tt.name, tt.want, got)
		}
	}
}

func TestModifiedLevel(t *testing.T) {
	pf := model.Pathfinder()
	hz := model.Horizon()
	tests := []struct {
		name     string
		initial  int
		band     model.Band
		variant  model.Variant
		want     int
		resolved bool
	}{
		{"success unchanged", 7, model.BandSuccess, pf, 7, true},
		{"failure unchanged", 7, model.BandFailure, pf, 7, true},
		{"crit success up one", 7, model.BandCriticalSuccess, pf, 8, true},
		{"crit success headroom", 20, model.BandCriticalSuccess, pf, 21, true},
		{"crit success capped without headroom", 10, model.BandCriticalSuccess, hz, 10, true},
		{"crit fail unresolved", 7, model.BandCriticalFailure, pf, 0, false},
		{"crit fail reduced", 6, model.BandCriticalFailure, hz, 2, true},
		{"crit fail reduced floor", 3, model.BandCriticalFailure, hz, 0, true},
	}
	for _, tt := range tests {
		got, ok := ModifiedLevel(tt.initial, tt.band, tt.variant)
		if got != tt.want || ok != tt.resolved {
			t.Errorf("%s: expected (%d, %v), got (%d, %v)", tt.name, tt.want, tt.resolved, got, ok)
		}
	}
}
