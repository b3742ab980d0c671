package calculator

import "DowntimeIncome/internal/model"

// InitialLevel derives the effective level used for the difficulty lookup.
// An additive boon keeps the character level; otherwise the variant's offset
// is subtracted. The result is clamped to [0, MaxLevel].
func InitialLevel(characterLevel int, boon bool, v model.Variant) int {
	el := characterLevel
	if !boon || v.BoonModel != model.BoonAdditive {
		el -= v.LevelOffset
	}
	return clamp(el, 0, v.MaxLevel)
}

// ModifiedLevel applies the result band to the initial level. It reports
// false when the band leaves no income tier (a critical failure under
// CritFailUnresolved).
func ModifiedLevel(initial int, band model.Band, v model.Variant) (int, bool) {
	switch band {
	case model.BandCriticalSuccess:
		return clamp(initial+1, 0, v.MaxLevel+v.CritSuccessHeadroom), true
	case model.BandCriticalFailure:
		if v.CritFailPolicy == model.CritFailReduced {
			return max(0, initial-v.CritFailOffset), true
		}
		return 0, false
	default:
		return initial, true
	}
}

func clamp(n, lo, hi int) int {
	if n < lo {
		return lo
	}
	if n > hi {
		return hi
	}
	return n
}
