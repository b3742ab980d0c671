package model

import (
	"errors"
	"fmt"
	"strings"
)

// ErrUnknownProficiency is returned when a proficiency string matches no tier.
var ErrUnknownProficiency = errors.New("unknown proficiency")

// Proficiency is a character's skill rank. Tiers are ordered; the zero value
// means no tier has been chosen yet.
type Proficiency int

const (
	ProficiencyUnknown Proficiency = iota
	ProficiencyTrained
	ProficiencyExpert
	ProficiencyMaster
	ProficiencyLegendary
)

// Proficiencies lists every tier from lowest to highest.
var Proficiencies = []Proficiency{
	ProficiencyTrained,
	ProficiencyExpert,
	ProficiencyMaster,
	ProficiencyLegendary,
}

// Key returns the lowercase identifier used in tables, flags and commands.
func (p Proficiency) Key() string {
	switch p {
	case ProficiencyTrained:
		return "trained"
	case ProficiencyExpert:
		return "expert"
	case ProficiencyMaster:
		return "master"
	case ProficiencyLegendary:
		return "legendary"
	default:
		return ""
	}
}

func (p Proficiency) String() string {
	switch p {
	case ProficiencyTrained:
		return "Trained"
	case ProficiencyExpert:
		return "Expert"
	case ProficiencyMaster:
		return "Master"
	case ProficiencyLegendary:
		return "Legendary"
	default:
		return "Unknown"
	}
}

// Valid reports whether p is one of the four tiers.
func (p Proficiency) Valid() bool {
	return p >= ProficiencyTrained && p <= ProficiencyLegendary
}

// ParseProficiency accepts a tier key, its display name or its initial
// (T/E/M/L). Anything else goes through fuzzy matching, see MatchWord.
func ParseProficiency(s string) (Proficiency, error) {
	s = strings.ToLower(strings.TrimSpace(s))
	if s == "" {
		return ProficiencyUnknown, nil
	}
	for _, p := range Proficiencies {
		if s == p.Key() || s == p.Key()[:1] {
			return p, nil
		}
	}
	candidates := make(map[string]int, len(Proficiencies))
	for _, p := range Proficiencies {
		candidates[p.Key()] = int(p)
	}
	if v, ok := MatchWord(s, candidates); ok {
		return Proficiency(v), nil
	}
	return ProficiencyUnknown, fmt.Errorf("%w: %q", ErrUnknownProficiency, s)
}
