package table

import (
	"github.com/shopspring/decimal"

	"DowntimeIncome/internal/model"
)

// baselineRows is the built-in table: level, difficulty, fail payout, then the
// success payout for trained, expert, master and legendary.
var baselineRows = []struct {
	level, dc int
	fail      string
	tiers     [4]string
}{
	{0, 14, "0.25", [4]string{"0.5", "0.5", "0.5", "0.5"}},
	{1, 15, "0.5", [4]string{"1", "1", "1", "1"}},
	{2, 16, "1", [4]string{"2", "2", "2", "2"}},
	{3, 18, "1.5", [4]string{"3", "3", "3", "3"}},
	{4, 19, "2.5", [4]string{"5", "5", "5", "5"}},
	{5, 20, "3.5", [4]string{"7", "8", "8", "8"}},
	{6, 22, "5", [4]string{"10", "12", "12", "12"}},
	{7, 23, "7.5", [4]string{"15", "18", "18", "18"}},
	{8, 24, "10", [4]string{"20", "25", "25", "25"}},
	{9, 26, "15", [4]string{"30", "35", "35", "35"}},
	{10, 27, "20", [4]string{"40", "45", "50", "50"}},
	{11, 28, "25", [4]string{"50", "60", "65", "65"}},
	{12, 30, "30", [4]string{"60", "75", "85", "85"}},
	{13, 31, "35", [4]string{"70", "90", "100", "100"}},
	{14, 32, "40", [4]string{"80", "110", "125", "125"}},
	{15, 34, "45", [4]string{"90", "130", "150", "150"}},
	{16, 35, "50", [4]string{"100", "150", "175", "200"}},
	{17, 36, "60", [4]string{"120", "180", "210", "250"}},
	{18, 38, "70", [4]string{"140", "210", "250", "300"}},
	{19, 39, "80", [4]string{"160", "240", "300", "375"}},
	{20, 40, "100", [4]string{"200", "280", "350", "450"}},
}

// Baseline returns the built-in table. Each call returns a fresh value.
func Baseline() *Table {
	rows := make([]model.IncomeRow, 0, len(baselineRows))
	for _, b := range baselineRows {
		payouts := make(map[model.Proficiency]decimal.Decimal, len(model.Proficiencies))
		for i, p := range model.Proficiencies {
			payouts[p] = decimal.RequireFromString(b.tiers[i])
		}
		rows = append(rows, model.IncomeRow{
			EffectiveLevel: b.level,
			Difficulty:     b.dc,
			Payouts:        payouts,
			FailPayout:     decimal.RequireFromString(b.fail),
		})
	}
	t, err := New(rows, ProvenanceBuiltin, "builtin")
	if err != nil {
		panic("table: invalid baseline: " + err.Error())
	}
	return t
}
