package calculator

import (
	"github.com/shopspring/decimal"

	"DowntimeIncome/internal/model"
)

var two = decimal.NewFromInt(2)

// PerDay resolves the unrounded daily payout for a band. The fail payout is
// read from the row, never derived from the success figure. A multiplicative
// boon applies after the band adjustment.
func PerDay(row model.IncomeRow, band model.Band, p model.Proficiency, boon bool, v model.Variant) decimal.Decimal {
	var amount decimal.Decimal
	switch band {
	case model.BandCriticalFailure:
		return decimal.Zero
	case model.BandFailure:
		amount = row.FailPayout
	case model.BandSuccess:
		amount = row.Payout(p)
	case model.BandCriticalSuccess:
		amount = row.Payout(p).Mul(two)
	default:
		return decimal.Zero
	}
	if boon && v.BoonModel == model.BoonMultiplicative {
		amount = amount.Mul(v.BoonMultiplier)
	}
	return amount
}

// Total projects a daily payout over a period. It does not round and does
// not check days; callers reject out-of-range periods first.
func Total(perDay decimal.Decimal, days int) decimal.Decimal {
	return perDay.Mul(decimal.NewFromInt(int64(days)))
}

// Round applies the variant's rounding once, to a total.
func Round(amount decimal.Decimal, v model.Variant) decimal.Decimal {
	return amount.Round(v.RoundPlaces)
}

// Format renders a rounded amount with the variant's currency unit.
func Format(amount decimal.Decimal, v model.Variant) string {
	s := amount.StringFixed(v.RoundPlaces)
	if v.Currency == "" {
		return s
	}
	return s + " " + v.Currency
}
