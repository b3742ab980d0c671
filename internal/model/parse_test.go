package model

import (
	"errors"
	"testing"
)

func TestParseProficiency(t *testing.T) {
	tests := []struct {
		in   string
		want Proficiency
		err  bool
	}{
		{"", ProficiencyUnknown, false},
		{"trained", ProficiencyTrained, false},
		{" Expert ", ProficiencyExpert, false},
		{"M", ProficiencyMaster, false},
		{"l", ProficiencyLegendary, false},
		{"legend", ProficiencyLegendary, false},
		{"exp", ProficiencyExpert, false},
		{"wizard", ProficiencyUnknown, true},
	}
	for _, tt := range tests {
		got, err := ParseProficiency(tt.in)
		if (err != nil) != tt.err {
			t.Errorf("ParseProficiency(%q) err = %v, want err=%v", tt.in, err, tt.err)
			continue
		}
		if err != nil && !errors.Is(err, ErrUnknownProficiency) {
			t.Errorf("ParseProficiency(%q) err = %v, want ErrUnknownProficiency", tt.in, err)
		}
		if got != tt.want {
			t.Errorf("ParseProficiency(%q) = %v, want %v", tt.in, got, tt.want)
		}
	}
}

func TestParseBand(t *testing.T) {
	tests := []struct {
		in   string
		want Band
		err  bool
	}{
		{"", BandUnknown, false},
		{"crit-success", BandCriticalSuccess, false},
		{"success", BandSuccess, false},
		{"FAIL", BandFailure, false},
		{"crit-fail", BandCriticalFailure, false},
		{"Critical failure", BandCriticalFailure, false},
		{"crit fail", BandCriticalFailure, false},
		{"excellent", BandUnknown, true},
	}
	for _, tt := range tests {
		got, err := ParseBand(tt.in)
		if (err != nil) != tt.err {
			t.Errorf("ParseBand(%q) err = %v, want err=%v", tt.in, err, tt.err)
			continue
		}
		if err != nil && !errors.Is(err, ErrUnknownBand) {
			t.Errorf("ParseBand(%q) err = %v, want ErrUnknownBand", tt.in, err)
		}
		if got != tt.want {
			t.Errorf("ParseBand(%q) = %v, want %v", tt.in, got, tt.want)
		}
	}
}

func TestMatchWord_Ambiguous(t *testing.T) {
	if _, ok := MatchWord("ab", map[string]int{"ab-x": 1, "ab-y": 2}); ok {
		t.Error("expected equal-score matches with different values to be rejected")
	}
	if v, ok := MatchWord("ab", map[string]int{"ab-x": 1, "ab-y": 1}); !ok || v != 1 {
		t.Errorf("MatchWord = %d, %v, want 1, true", v, ok)
	}
	if _, ok := MatchWord("zz", map[string]int{"ab": 1}); ok {
		t.Error("expected no match")
	}
}

func TestBandLabels(t *testing.T) {
	for _, b := range Bands {
		if !b.Valid() || b.Key() == "" || b.Label() == "" {
			t.Errorf("band %d has empty key or label", b)
		}
		if got, err := ParseBand(b.Label()); err != nil || got != b {
			t.Errorf("ParseBand(%q) = %v, %v", b.Label(), got, err)
		}
	}
	if BandUnknown.Valid() || BandUnknown.String() != "Unknown" {
		t.Error("BandUnknown should be invalid")
	}
}

func TestVariantValidate(t *testing.T) {
	for name, v := range BuiltinVariants() {
		if v.Name != name {
			t.Errorf("variant keyed %q is named %q", name, v.Name)
		}
		if err := v.Validate(); err != nil {
			t.Errorf("%s: %v", name, err)
		}
	}

	tests := []struct {
		name string
		mod  func(*Variant)
	}{
		{"no name", func(v *Variant) { v.Name = "" }},
		{"zero max level", func(v *Variant) { v.MaxLevel = 0 }},
		{"negative offset", func(v *Variant) { v.LevelOffset = -1 }},
		{"bad policy", func(v *Variant) { v.CritFailPolicy = "explode" }},
		{"bad boon model", func(v *Variant) { v.BoonModel = "exponential" }},
		{"zero multiplier", func(v *Variant) { v.BoonModel = BoonMultiplicative; v.BoonMultiplier = v.BoonMultiplier.Sub(v.BoonMultiplier) }},
		{"no max proficiency", func(v *Variant) { v.MaxProficiency = ProficiencyUnknown }},
		{"negative rounding", func(v *Variant) { v.RoundPlaces = -1 }},
		{"inverted days", func(v *Variant) { v.MinDays, v.MaxDays = 5, 2 }},
	}
	for _, tt := range tests {
		v := Pathfinder()
		tt.mod(&v)
		if err := v.Validate(); err == nil {
			t.Errorf("%s: expected error", tt.name)
		}
	}
}

func TestVariantAllows(t *testing.T) {
	h := Horizon()
	if h.AllowsProficiency(ProficiencyLegendary) {
		t.Error("horizon should not allow legendary")
	}
	if !h.AllowsProficiency(ProficiencyMaster) || h.AllowsProficiency(ProficiencyUnknown) {
		t.Error("horizon tier bounds wrong")
	}
	for days, want := range map[int]bool{0: false, 1: true, 24: true, 25: false} {
		if got := h.AllowsDays(days); got != want {
			t.Errorf("AllowsDays(%d) = %v, want %v", days, got, want)
		}
	}
}

func TestBuiltinBoonModels(t *testing.T) {
	p := Pathfinder()
	if p.BoonModel != BoonAdditive || p.LevelOffset != 2 {
		t.Errorf("pathfinder boon = %s offset %d, want additive and 2", p.BoonModel, p.LevelOffset)
	}

	h := Horizon()
	if h.BoonModel != BoonMultiplicative || h.BoonTag != "HHST" {
		t.Errorf("horizon boon = %s %q, want multiplicative HHST", h.BoonModel, h.BoonTag)
	}
	if h.LevelOffset != 1 || h.MaxLevel != 10 || h.RoundPlaces != 0 {
		t.Errorf("horizon offset %d max %d places %d, want 1, 10, 0", h.LevelOffset, h.MaxLevel, h.RoundPlaces)
	}
	if h.BoonMultiplier.String() != "1.5" {
		t.Errorf("horizon multiplier = %s, want 1.5", h.BoonMultiplier)
	}
}
