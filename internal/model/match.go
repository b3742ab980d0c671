package model

import (
	"sort"

	"github.com/sahilm/fuzzy"
)

// MatchWord resolves free text typed by a user against a set of candidate
// words mapped to values. The best fuzzy match wins; when the best matches
// disagree on the value the input is ambiguous and nothing is returned.
func MatchWord(input string, candidates map[string]int) (int, bool) {
	words := make([]string, 0, len(candidates))
	for w := range candidates {
		words = append(words, w)
	}
	sort.Strings(words)

	matches := fuzzy.Find(input, words)
	if len(matches) == 0 {
		return 0, false
	}
	best := candidates[matches[0].Str]
	for _, m := range matches[1:] {
		if m.Score < matches[0].Score {
			break
		}
		if candidates[m.Str] != best {
			return 0, false
		}
	}
	return best, true
}
