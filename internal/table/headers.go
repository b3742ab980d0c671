package table

import (
	"strings"
	"unicode"

	"github.com/agnivade/levenshtein"

	"DowntimeIncome/internal/model"
)

// column is a logical column of an income table.
type column int

const (
	colLevel column = iota
	colDifficulty
	colIncome
	colFail
	colTrained
	colExpert
	colMaster
	colLegendary
	numColumns
)

var columnNames = [numColumns]string{
	colLevel:      "level",
	colDifficulty: "difficulty",
	colIncome:     "income",
	colFail:       "fail",
	colTrained:    "trained",
	colExpert:     "expert",
	colMaster:     "master",
	colLegendary:  "legendary",
}

// headerAliases are normalized header spellings for each logical column.
var headerAliases = [numColumns][]string{
	colLevel:      {"el", "level", "lvl", "effectivelevel", "tasklevel", "tasklvl"},
	colDifficulty: {"dc", "difficulty", "difficultyclass", "targetdc", "target"},
	colIncome:     {"income", "payout", "success", "incomeperday", "perday", "earned"},
	colFail:       {"fail", "failure", "failed", "failpayout", "failincome"},
	colTrained:    {"trained", "successtrained"},
	colExpert:     {"expert", "successexpert"},
	colMaster:     {"master", "successmaster"},
	colLegendary:  {"legendary", "successlegendary"},
}

// tierColumns maps each proficiency to its own payout column.
var tierColumns = map[model.Proficiency]column{
	model.ProficiencyTrained:   colTrained,
	model.ProficiencyExpert:    colExpert,
	model.ProficiencyMaster:    colMaster,
	model.ProficiencyLegendary: colLegendary,
}

// Headers shorter than this must match an alias exactly.
const minFuzzyHeaderLen = 5

// normalizeHeader lowercases h and drops everything but letters and digits,
// so "Task Level", "task_level" and "TASK-LEVEL" compare equal.
func normalizeHeader(h string) string {
	var b strings.Builder
	for _, r := range strings.ToLower(h) {
		if unicode.IsLetter(r) || unicode.IsDigit(r) {
			b.WriteRune(r)
		}
	}
	return b.String()
}

// fuzzyOrder is the order in which unmatched columns claim loose headers.
// Tier and fail columns go before the generic income column so that
// "Income (Expert)" lands on the expert tier.
var fuzzyOrder = []column{
	colLevel, colDifficulty, colFail,
	colTrained, colExpert, colMaster, colLegendary,
	colIncome,
}

// matchHeaders returns, for each logical column, the index of the header cell
// that carries it, or -1. Exact alias matches are assigned first; remaining
// columns then accept a header one edit away from an alias, or one that starts
// with an alias ("Income (gp)"). A tier column also takes any header naming
// its tier ("Income (Trained)") unless it names a failure.
func matchHeaders(header []string) [numColumns]int {
	var idx [numColumns]int
	for c := range idx {
		idx[c] = -1
	}
	norm := make([]string, len(header))
	for i, h := range header {
		norm[i] = normalizeHeader(h)
	}
	taken := make([]bool, len(header))

	for c := column(0); c < numColumns; c++ {
		for i, h := range norm {
			if !taken[i] && containsString(headerAliases[c], h) {
				idx[c] = i
				taken[i] = true
				break
			}
		}
	}

	for _, c := range fuzzyOrder {
		if idx[c] >= 0 {
			continue
		}
		for i, h := range norm {
			if taken[i] || len(h) < minFuzzyHeaderLen {
				continue
			}
			if nearAlias(h, headerAliases[c]) || namesTier(h, c) {
				idx[c] = i
				taken[i] = true
				break
			}
		}
	}
	return idx
}

func namesTier(h string, c column) bool {
	if c < colTrained || c > colLegendary {
		return false
	}
	return strings.Contains(h, columnNames[c]) && !strings.Contains(h, "fail")
}

func nearAlias(h string, aliases []string) bool {
	for _, a := range aliases {
		if len(a) < minFuzzyHeaderLen {
			continue
		}
		if strings.HasPrefix(h, a) || levenshtein.ComputeDistance(h, a) <= 1 {
			return true
		}
	}
	return false
}

func containsString(list []string, s string) bool {
	for _, v := range list {
		if v == s {
			return true
		}
	}
	return false
}
