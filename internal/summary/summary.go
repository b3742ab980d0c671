package summary

import (
	"fmt"
	"strings"

	"DowntimeIncome/internal/calculator"
	"DowntimeIncome/internal/model"
	"DowntimeIncome/internal/table"
)

// Header is the session metadata printed above the character lines.
type Header struct {
	Date     string
	Scenario string
}

// SanitizeScenario keeps letters, digits, spaces and - ( ) : only.
func SanitizeScenario(s string) string {
	var b strings.Builder
	for _, r := range s {
		switch {
		case r >= 'A' && r <= 'Z', r >= 'a' && r <= 'z', r >= '0' && r <= '9':
			b.WriteRune(r)
		case r == '-' || r == '(' || r == ')' || r == ':' || r == ' ':
			b.WriteRune(r)
		}
	}
	return b.String()
}

// HeaderLine formats "<date> - <scenario>" with placeholders for blanks.
func HeaderLine(h Header) string {
	date := strings.TrimSpace(h.Date)
	if date == "" {
		date = "Date not set"
	}
	scenario := strings.TrimSpace(SanitizeScenario(h.Scenario))
	if scenario == "" {
		scenario = "Scenario not set"
	}
	return fmt.Sprintf("%s - %s", date, scenario)
}

// Line formats one resolved result, e.g.
//
//	Ayla: Success, EL = 3 (Boon)     24.00 gp
func Line(r model.EvaluationResult, v model.Variant) string {
	tag := ""
	if r.Boon && v.BoonTag != "" {
		tag = " (" + v.BoonTag + ")"
	}
	return fmt.Sprintf("%s: %s, EL = %s%s     %s", r.Name, r.Band.Label(), r.LevelLabel(), tag, r.IncomeLabel())
}

// Build renders the header followed by one line per resolved result.
// Unresolved results are left out.
func Build(h Header, results []model.EvaluationResult, v model.Variant) string {
	lines := []string{HeaderLine(h)}
	for _, r := range results {
		if !r.Resolved() {
			continue
		}
		lines = append(lines, Line(r, v))
	}
	return strings.Join(lines, "\n")
}

// Describe is a one-line status for a single evaluation at any stage.
func Describe(r model.EvaluationResult, v model.Variant) string {
	switch r.Stage {
	case model.StageEmpty:
		return "Enter a name and character level."
	case model.StageLevelKnown:
		s := fmt.Sprintf("%s: target DC %s", r.Name, r.DifficultyLabel())
		if r.Band.Valid() {
			s += ", " + r.Band.Label()
		}
		return s
	default:
		return fmt.Sprintf("%s (DC %d, %s/day x %d)", Line(r, v), r.Difficulty,
			calculator.Format(r.PerDay, v), r.Days)
	}
}

// RenderTable prints the active table as an appendix: level, DC, then each
// tier's success and critical success payout, the fail payout and the
// critical failure payout.
func RenderTable(t *table.Table, v model.Variant) string {
	var b strings.Builder
	b.WriteString(fmt.Sprintf("Income table (%s: %s)\n", t.Provenance(), t.Source()))
	b.WriteString("EL  DC")
	for _, p := range model.Proficiencies {
		if !v.AllowsProficiency(p) {
			continue
		}
		b.WriteString(fmt.Sprintf(" | %s S/CS", p.Key()[:1]))
	}
	b.WriteString(" | Fail | CF\n")

	for _, r := range t.Rows() {
		b.WriteString(fmt.Sprintf("%-3d %-3d", r.EffectiveLevel, r.Difficulty))
		for _, p := range model.Proficiencies {
			if !v.AllowsProficiency(p) {
				continue
			}
			success := calculator.PerDay(r, model.BandSuccess, p, false, v)
			crit := calculator.PerDay(r, model.BandCriticalSuccess, p, false, v)
			b.WriteString(fmt.Sprintf(" | %s/%s", success.StringFixed(2), crit.StringFixed(2)))
		}
		fail := calculator.PerDay(r, model.BandFailure, model.ProficiencyTrained, false, v)
		b.WriteString(fmt.Sprintf(" | %s | 0.00\n", fail.StringFixed(2)))
	}
	return b.String()
}
