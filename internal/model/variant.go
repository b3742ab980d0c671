package model

import (
	"errors"
	"fmt"

	"github.com/shopspring/decimal"
)

// CritFailPolicy decides what modified level a critical failure reports.
type CritFailPolicy string

const (
	// CritFailUnresolved marks the modified level as unresolved.
	CritFailUnresolved CritFailPolicy = "unresolved"
	// CritFailReduced reports max(0, initial - CritFailOffset).
	CritFailReduced CritFailPolicy = "reduced"
)

// BoonModel decides how an active boon affects the evaluation.
type BoonModel string

const (
	// BoonAdditive cancels the level offset: the effective level equals the
	// character level.
	BoonAdditive BoonModel = "additive"
	// BoonMultiplicative leaves the level alone and scales the per-day payout
	// by BoonMultiplier after the band adjustment.
	BoonMultiplicative BoonModel = "multiplicative"
)

// Variant is the rule set of one game system or edition.
type Variant struct {
	Name string
	// MaxLevel caps the initial effective level.
	MaxLevel int
	// LevelOffset is subtracted from the character level when no additive
	// boon applies.
	LevelOffset int
	// CritSuccessHeadroom lets a critical success exceed MaxLevel.
	CritSuccessHeadroom int
	CritFailPolicy      CritFailPolicy
	// CritFailOffset is used by CritFailReduced only.
	CritFailOffset int
	BoonModel      BoonModel
	BoonMultiplier decimal.Decimal
	// BoonTag is appended to summary lines when the boon is active.
	BoonTag string
	// MaxProficiency is the highest tier the system allows.
	MaxProficiency Proficiency
	Currency       string
	// RoundPlaces is 2 for fractional currency and 0 for whole units.
	RoundPlaces int32
	MinDays     int
	MaxDays     int
}

// Pathfinder is the default rule set: levels to 20, two-level offset, and a
// critical failure leaves no income tier.
func Pathfinder() Variant {
	return Variant{
		Name:                "pathfinder",
		MaxLevel:            20,
		LevelOffset:         2,
		CritSuccessHeadroom: 1,
		CritFailPolicy:      CritFailUnresolved,
		BoonModel:           BoonAdditive,
		BoonMultiplier:      decimal.NewFromInt(1),
		BoonTag:             "Boon",
		MaxProficiency:      ProficiencyLegendary,
		Currency:            "gp",
		RoundPlaces:         2,
		MinDays:             1,
		MaxDays:             24,
	}
}

// Horizon is a short-campaign rule set built around the multiplicative boon
// model: levels to 10 with an offset of 1, the boon multiplies the per-day
// payout by 1.5, there is no legendary tier and payouts are rounded to whole
// gold. It only borrows the HHST tag for display. The Storied Talent boon
// itself raises the effective level by one, which is the additive model of
// Pathfinder.
func Horizon() Variant {
	return Variant{
		Name:                "horizon",
		MaxLevel:            10,
		LevelOffset:         1,
		CritSuccessHeadroom: 0,
		CritFailPolicy:      CritFailReduced,
		CritFailOffset:      4,
		BoonModel:           BoonMultiplicative,
		BoonMultiplier:      decimal.RequireFromString("1.5"),
		BoonTag:             "HHST",
		MaxProficiency:      ProficiencyMaster,
		Currency:            "gp",
		RoundPlaces:         0,
		MinDays:             1,
		MaxDays:             24,
	}
}

// BuiltinVariants returns the rule sets shipped with the calculator, keyed by
// name.
func BuiltinVariants() map[string]Variant {
	return map[string]Variant{
		"pathfinder": Pathfinder(),
		"horizon":    Horizon(),
	}
}

// AllowsProficiency reports whether p is a valid tier under v.
func (v Variant) AllowsProficiency(p Proficiency) bool {
	return p.Valid() && p <= v.MaxProficiency
}

// AllowsDays reports whether days is within the configured period bounds.
func (v Variant) AllowsDays(days int) bool {
	return days >= v.MinDays && days <= v.MaxDays
}

// Validate checks the rule set is internally consistent.
func (v Variant) Validate() error {
	if v.Name == "" {
		return errors.New("variant name is required")
	}
	if v.MaxLevel <= 0 {
		return fmt.Errorf("variant %s: max_level must be positive", v.Name)
	}
	if v.LevelOffset < 0 || v.CritSuccessHeadroom < 0 || v.CritFailOffset < 0 {
		return fmt.Errorf("variant %s: offsets must not be negative", v.Name)
	}
	switch v.CritFailPolicy {
	case CritFailUnresolved, CritFailReduced:
	default:
		return fmt.Errorf("variant %s: unknown crit_fail_policy %q", v.Name, v.CritFailPolicy)
	}
	switch v.BoonModel {
	case BoonAdditive:
	case BoonMultiplicative:
		if !v.BoonMultiplier.IsPositive() {
			return fmt.Errorf("variant %s: boon_multiplier must be positive", v.Name)
		}
	default:
		return fmt.Errorf("variant %s: unknown boon_model %q", v.Name, v.BoonModel)
	}
	if !v.MaxProficiency.Valid() {
		return fmt.Errorf("variant %s: max_proficiency is required", v.Name)
	}
	if v.RoundPlaces < 0 {
		return fmt.Errorf("variant %s: round_places must not be negative", v.Name)
	}
	if v.MinDays < 1 || v.MaxDays < v.MinDays {
		return fmt.Errorf("variant %s: invalid day bounds %d-%d", v.Name, v.MinDays, v.MaxDays)
	}
	return nil
}
