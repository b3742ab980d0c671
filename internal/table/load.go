package table

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/shopspring/decimal"

	"DowntimeIncome/internal/model"
)

// ErrMissingColumns means required columns could not be found in the header.
var ErrMissingColumns = errors.New("income table is missing required columns")

// MissingColumnsError lists the logical columns a header lacked.
type MissingColumnsError struct {
	Missing []string
}

func (e *MissingColumnsError) Error() string {
	return fmt.Sprintf("%v: %s", ErrMissingColumns, strings.Join(e.Missing, ", "))
}

func (e *MissingColumnsError) Unwrap() error { return ErrMissingColumns }

// LoadStats reports what happened to the data rows of a load.
type LoadStats struct {
	Rows    int
	Skipped int
}

// Load builds an external table from parsed tabular text. The first record is
// the header. Level, difficulty and at least one payout column (a generic
// income column or one per tier) are required. Data rows with non-numeric or
// negative required fields, or a level already seen, are skipped.
//
// Tiers without their own column take the generic income figure, else the
// nearest lower tier, else the nearest higher one. Without a fail column the
// fail payout is half the trained payout.
func Load(records [][]string, source string) (*Table, LoadStats, error) {
	var stats LoadStats
	if len(records) == 0 {
		return nil, stats, &MissingColumnsError{Missing: []string{
			columnNames[colLevel], columnNames[colDifficulty], columnNames[colIncome],
		}}
	}

	idx := matchHeaders(records[0])
	if err := checkRequired(idx); err != nil {
		return nil, stats, err
	}

	seen := make(map[int]bool)
	rows := make([]model.IncomeRow, 0, len(records)-1)
	for _, rec := range records[1:] {
		if blankRecord(rec) {
			continue
		}
		row, ok := parseRow(rec, idx)
		if !ok || seen[row.EffectiveLevel] {
			stats.Skipped++
			continue
		}
		seen[row.EffectiveLevel] = true
		rows = append(rows, row)
	}
	stats.Rows = len(rows)

	t, err := New(rows, ProvenanceExternal, source)
	if err != nil {
		return nil, stats, err
	}
	return t, stats, nil
}

func checkRequired(idx [numColumns]int) error {
	var missing []string
	if idx[colLevel] < 0 {
		missing = append(missing, columnNames[colLevel])
	}
	if idx[colDifficulty] < 0 {
		missing = append(missing, columnNames[colDifficulty])
	}
	hasPayout := idx[colIncome] >= 0
	for _, c := range tierColumns {
		if idx[c] >= 0 {
			hasPayout = true
		}
	}
	if !hasPayout {
		missing = append(missing, columnNames[colIncome])
	}
	if len(missing) > 0 {
		return &MissingColumnsError{Missing: missing}
	}
	return nil
}

func parseRow(rec []string, idx [numColumns]int) (model.IncomeRow, bool) {
	level, ok := intField(rec, idx[colLevel])
	if !ok || level < 0 {
		return model.IncomeRow{}, false
	}
	dc, ok := intField(rec, idx[colDifficulty])
	if !ok {
		return model.IncomeRow{}, false
	}

	var generic *decimal.Decimal
	if idx[colIncome] >= 0 {
		v, ok := amountField(rec, idx[colIncome])
		if !ok {
			return model.IncomeRow{}, false
		}
		generic = &v
	}

	own := make(map[model.Proficiency]decimal.Decimal)
	for p, c := range tierColumns {
		if idx[c] < 0 {
			continue
		}
		v, ok := amountField(rec, idx[c])
		if !ok {
			return model.IncomeRow{}, false
		}
		own[p] = v
	}
	payouts := fillTiers(own, generic)

	var fail decimal.Decimal
	if idx[colFail] >= 0 {
		v, ok := amountField(rec, idx[colFail])
		if !ok {
			return model.IncomeRow{}, false
		}
		fail = v
	} else {
		fail = payouts[model.ProficiencyTrained].Div(decimal.NewFromInt(2))
	}

	return model.IncomeRow{
		EffectiveLevel: level,
		Difficulty:     dc,
		Payouts:        payouts,
		FailPayout:     fail,
	}, true
}

// fillTiers resolves a payout for every tier from the columns present.
func fillTiers(own map[model.Proficiency]decimal.Decimal, generic *decimal.Decimal) map[model.Proficiency]decimal.Decimal {
	out := make(map[model.Proficiency]decimal.Decimal, len(model.Proficiencies))
	for i, p := range model.Proficiencies {
		if v, ok := own[p]; ok {
			out[p] = v
			continue
		}
		if generic != nil {
			out[p] = *generic
			continue
		}
		if v, ok := nearestTier(own, i); ok {
			out[p] = v
		}
	}
	return out
}

func nearestTier(own map[model.Proficiency]decimal.Decimal, i int) (decimal.Decimal, bool) {
	for j := i - 1; j >= 0; j-- {
		if v, ok := own[model.Proficiencies[j]]; ok {
			return v, true
		}
	}
	for j := i + 1; j < len(model.Proficiencies); j++ {
		if v, ok := own[model.Proficiencies[j]]; ok {
			return v, true
		}
	}
	return decimal.Zero, false
}

func field(rec []string, i int) string {
	if i < 0 || i >= len(rec) {
		return ""
	}
	return strings.TrimSpace(rec[i])
}

func intField(rec []string, i int) (int, bool) {
	s := field(rec, i)
	if s == "" {
		return 0, false
	}
	n, err := strconv.Atoi(s)
	if err != nil {
		return 0, false
	}
	return n, true
}

// amountField parses a non-negative amount. A trailing currency unit such as
// "gp" is tolerated.
func amountField(rec []string, i int) (decimal.Decimal, bool) {
	s := strings.TrimSpace(strings.TrimRightFunc(field(rec, i), isUnitRune))
	if s == "" {
		return decimal.Zero, false
	}
	v, err := decimal.NewFromString(s)
	if err != nil || v.IsNegative() {
		return decimal.Zero, false
	}
	return v, true
}

func isUnitRune(r rune) bool {
	return (r >= 'a' && r <= 'z') || (r >= 'A' && r <= 'Z') || r == ' '
}

func blankRecord(rec []string) bool {
	for _, f := range rec {
		if strings.TrimSpace(f) != "" {
			return false
		}
	}
	return true
}
