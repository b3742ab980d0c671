package config

import (
	"fmt"

	"github.com/shopspring/decimal"

	"DowntimeIncome/internal/model"
)

// VariantConfig overrides or defines a rule set. Unset fields inherit from
// Base, or from the built-in variant of the same name.
type VariantConfig struct {
	Base                string  `yaml:"base"`
	MaxLevel            *int    `yaml:"max_level"`
	LevelOffset         *int    `yaml:"level_offset"`
	CritSuccessHeadroom *int    `yaml:"crit_success_headroom"`
	CritFailPolicy      string  `yaml:"crit_fail_policy"`
	CritFailOffset      *int    `yaml:"crit_fail_offset"`
	BoonModel           string  `yaml:"boon_model"`
	BoonMultiplier      *string `yaml:"boon_multiplier"` // decimal text, e.g. "1.5"
	BoonTag             *string `yaml:"boon_tag"`
	MaxProficiency      string  `yaml:"max_proficiency"`
	Currency            *string `yaml:"currency"`
	RoundPlaces         *int32  `yaml:"round_places"`
	MinDays             *int    `yaml:"min_days"`
	MaxDays             *int    `yaml:"max_days"`
}

// ResolveVariant returns the named rule set after applying overrides.
func ResolveVariant(name string, overrides map[string]VariantConfig) (model.Variant, error) {
	builtin := model.BuiltinVariants()
	vc, hasOverride := overrides[name]

	base, ok := builtin[name]
	if hasOverride && vc.Base != "" {
		base, ok = builtin[vc.Base]
		if !ok {
			return model.Variant{}, fmt.Errorf("variant %s: unknown base %q", name, vc.Base)
		}
	}
	if !ok && !hasOverride {
		return model.Variant{}, fmt.Errorf("unknown variant %q", name)
	}
	if !ok {
		// A brand-new variant starts from the default rules.
		base = model.Pathfinder()
	}
	base.Name = name

	if hasOverride {
		if err := vc.apply(&base); err != nil {
			return model.Variant{}, fmt.Errorf("variant %s: %w", name, err)
		}
	}
	if err := base.Validate(); err != nil {
		return model.Variant{}, err
	}
	return base, nil
}

func (vc VariantConfig) apply(v *model.Variant) error {
	setInt(&v.MaxLevel, vc.MaxLevel)
	setInt(&v.LevelOffset, vc.LevelOffset)
	setInt(&v.CritSuccessHeadroom, vc.CritSuccessHeadroom)
	setInt(&v.CritFailOffset, vc.CritFailOffset)
	setInt(&v.MinDays, vc.MinDays)
	setInt(&v.MaxDays, vc.MaxDays)
	if vc.CritFailPolicy != "" {
		v.CritFailPolicy = model.CritFailPolicy(vc.CritFailPolicy)
	}
	if vc.BoonModel != "" {
		v.BoonModel = model.BoonModel(vc.BoonModel)
	}
	if vc.BoonMultiplier != nil {
		m, err := decimal.NewFromString(*vc.BoonMultiplier)
		if err != nil {
			return fmt.Errorf("boon_multiplier: %w", err)
		}
		v.BoonMultiplier = m
	}
	if vc.BoonTag != nil {
		v.BoonTag = *vc.BoonTag
	}
	if vc.MaxProficiency != "" {
		p, err := model.ParseProficiency(vc.MaxProficiency)
		if err != nil {
			return err
		}
		v.MaxProficiency = p
	}
	if vc.Currency != nil {
		v.Currency = *vc.Currency
	}
	if vc.RoundPlaces != nil {
		v.RoundPlaces = *vc.RoundPlaces
	}
	return nil
}

func setInt(dst *int, src *int) {
	if src != nil {
		*dst = *src
	}
}
