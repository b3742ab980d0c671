package model

import (
	"errors"
	"fmt"
	"strings"
)

// ErrUnknownBand is returned when a result string matches no band.
var ErrUnknownBand = errors.New("unknown result band")

// Band is the outcome of a check against a difficulty. Bands are ordered from
// worst to best; the zero value means no band has been chosen.
type Band int

const (
	BandUnknown Band = iota
	BandCriticalFailure
	BandFailure
	BandSuccess
	BandCriticalSuccess
)

// Bands lists every band from worst to best.
var Bands = []Band{
	BandCriticalFailure,
	BandFailure,
	BandSuccess,
	BandCriticalSuccess,
}

// Key returns the identifier used by the result selector.
func (b Band) Key() string {
	switch b {
	case BandCriticalFailure:
		return "crit-fail"
	case BandFailure:
		return "fail"
	case BandSuccess:
		return "success"
	case BandCriticalSuccess:
		return "crit-success"
	default:
		return ""
	}
}

// Label returns the display text for b, or "" when b is unknown.
func (b Band) Label() string {
	switch b {
	case BandCriticalFailure:
		return "Critical failure"
	case BandFailure:
		return "Failure"
	case BandSuccess:
		return "Success"
	case BandCriticalSuccess:
		return "Critical success"
	default:
		return ""
	}
}

func (b Band) String() string {
	if b == BandUnknown {
		return "Unknown"
	}
	return b.Label()
}

// Valid reports whether b is one of the four bands.
func (b Band) Valid() bool {
	return b >= BandCriticalFailure && b <= BandCriticalSuccess
}

// ParseBand accepts a band key or its label in any case. An empty string is
// not an error: it means the band is still unselected.
func ParseBand(s string) (Band, error) {
	s = strings.ToLower(strings.TrimSpace(s))
	if s == "" {
		return BandUnknown, nil
	}
	candidates := make(map[string]int, 2*len(Bands))
	for _, b := range Bands {
		candidates[b.Key()] = int(b)
		candidates[strings.ToLower(b.Label())] = int(b)
	}
	if v, ok := candidates[s]; ok {
		return Band(v), nil
	}
	if v, ok := MatchWord(s, candidates); ok {
		return Band(v), nil
	}
	return BandUnknown, fmt.Errorf("%w: %q", ErrUnknownBand, s)
}
