package model

import (
	"strconv"

	"github.com/shopspring/decimal"
)

// Placeholder is shown for any value that cannot be resolved yet.
const Placeholder = "—"

// Stage tracks how far an evaluation got with the inputs it was given.
type Stage int

const (
	// StageEmpty means identity or level is missing.
	StageEmpty Stage = iota
	// StageLevelKnown means the difficulty is resolved but payout is not.
	StageLevelKnown
	// StageResolved means every field of the result is populated.
	StageResolved
)

func (s Stage) String() string {
	switch s {
	case StageEmpty:
		return "empty"
	case StageLevelKnown:
		return "level-known"
	case StageResolved:
		return "resolved"
	default:
		return "unknown"
	}
}

// EvaluationInput is a snapshot of one character's form values.
type EvaluationInput struct {
	Name           string
	CharacterLevel int
	Proficiency    Proficiency
	Boon           bool
	// Band is the selected result. When unknown, CheckTotal (and optionally
	// Difficulty) are used to derive it.
	Band       Band
	CheckTotal *int
	// Difficulty overrides the table difficulty when classifying CheckTotal.
	Difficulty *int
	Days       int
}

// EvaluationResult is what the engine reports for one EvaluationInput.
type EvaluationResult struct {
	Stage Stage
	Name  string
	Boon  bool

	// Populated from StageLevelKnown on.
	Difficulty   int
	InitialLevel int

	// Band is set whenever it could be determined, even if the result is not
	// resolved.
	Band Band

	// Populated at StageResolved.
	Proficiency   Proficiency
	ModifiedLevel int
	// Unresolved is true when the band leaves no income tier.
	Unresolved bool
	Days       int
	PerDay     decimal.Decimal
	Total      decimal.Decimal
	Formatted  string
}

// Resolved reports whether the payout fields are populated.
func (r EvaluationResult) Resolved() bool {
	return r.Stage == StageResolved
}

// DifficultyLabel returns the difficulty, or Placeholder before the level is
// known.
func (r EvaluationResult) DifficultyLabel() string {
	if r.Stage < StageLevelKnown {
		return Placeholder
	}
	return strconv.Itoa(r.Difficulty)
}

// LevelLabel returns the modified effective level, or Placeholder when it is
// unresolved or not computed.
func (r EvaluationResult) LevelLabel() string {
	if r.Stage < StageResolved || r.Unresolved {
		return Placeholder
	}
	return strconv.Itoa(r.ModifiedLevel)
}

// IncomeLabel returns the formatted total, or Placeholder.
func (r EvaluationResult) IncomeLabel() string {
	if r.Stage < StageResolved {
		return Placeholder
	}
	return r.Formatted
}
