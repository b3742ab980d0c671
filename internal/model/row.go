package model

import "github.com/shopspring/decimal"

// IncomeRow holds the difficulty and daily payouts for one effective level.
type IncomeRow struct {
	EffectiveLevel int
	Difficulty     int
	// Payouts is the per-day amount on a plain success, by tier.
	Payouts map[Proficiency]decimal.Decimal
	// FailPayout is the per-day amount on a failure, for every tier.
	FailPayout decimal.Decimal
}

// Payout returns the success payout for p, or zero when the row has none.
func (r IncomeRow) Payout(p Proficiency) decimal.Decimal {
	if v, ok := r.Payouts[p]; ok {
		return v
	}
	return decimal.Zero
}
