package bot

import (
	"fmt"
	"strconv"
	"strings"

	"DowntimeIncome/internal/model"
)

// ApplyArgs updates in from key=value fields such as
//
//	name=Ayla_Brightwater level=5 prof=trained band=success days=8
//
// Underscores in a name become spaces. band=, check= and dc= take "-" to
// clear, and a bare "boon" means boon=yes. Fields not mentioned keep their
// current value.
func ApplyArgs(in *model.EvaluationInput, fields []string) error {
	for _, f := range fields {
		key, value, ok := strings.Cut(f, "=")
		if !ok && !strings.EqualFold(f, "boon") {
			return fmt.Errorf("expected key=value, got %q", f)
		}
		key = strings.ToLower(strings.TrimSpace(key))
		value = strings.TrimSpace(value)

		var err error
		switch key {
		case "name", "n":
			in.Name = strings.TrimSpace(strings.ReplaceAll(value, "_", " "))
		case "level", "lvl", "l":
			in.CharacterLevel, err = strconv.Atoi(value)
		case "prof", "proficiency", "p":
			in.Proficiency, err = model.ParseProficiency(value)
		case "band", "result", "b":
			if value == "-" {
				in.Band = model.BandUnknown
				break
			}
			in.Band, err = model.ParseBand(value)
		case "check", "roll":
			in.CheckTotal, err = optionalInt(value)
		case "dc", "difficulty":
			in.Difficulty, err = optionalInt(value)
		case "days", "d":
			in.Days, err = strconv.Atoi(value)
		case "boon":
			in.Boon, err = parseFlag(value)
		default:
			return fmt.Errorf("unknown field %q", key)
		}
		if err != nil {
			return fmt.Errorf("%s: %w", key, err)
		}
	}
	return nil
}

func optionalInt(s string) (*int, error) {
	if s == "" || s == "-" {
		return nil, nil
	}
	n, err := strconv.Atoi(s)
	if err != nil {
		return nil, err
	}
	return &n, nil
}

func parseFlag(s string) (bool, error) {
	switch strings.ToLower(s) {
	case "", "yes", "y", "on":
		return true, nil
	case "no", "n", "off":
		return false, nil
	}
	return strconv.ParseBool(s)
}
