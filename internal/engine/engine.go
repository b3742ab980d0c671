package engine

import (
	"errors"
	"fmt"
	"strings"

	lru "github.com/hashicorp/golang-lru"

	"DowntimeIncome/internal/calculator"
	"DowntimeIncome/internal/model"
	"DowntimeIncome/internal/table"
)

// ErrDaysOutOfRange is returned by CheckDays for a period outside the
// variant's bounds.
var ErrDaysOutOfRange = errors.New("day count out of range")

// Engine resolves income for one character at a time. It owns the active
// table and the rule set; Evaluate is safe to call on every input change.
type Engine struct {
	tables  *table.Holder
	variant model.Variant
	memo    *lru.Cache
}

// Option configures an Engine.
type Option func(*Engine) error

// WithCache memoizes up to size results per table generation.
func WithCache(size int) Option {
	return func(e *Engine) error {
		if size <= 0 {
			return nil
		}
		c, err := lru.New(size)
		if err != nil {
			return fmt.Errorf("create cache: %w", err)
		}
		e.memo = c
		return nil
	}
}

// New creates an Engine reading from tables under the rules of variant.
func New(tables *table.Holder, variant model.Variant, opts ...Option) (*Engine, error) {
	if tables == nil {
		return nil, errors.New("table holder is required")
	}
	if err := variant.Validate(); err != nil {
		return nil, fmt.Errorf("invalid variant: %w", err)
	}
	e := &Engine{tables: tables, variant: variant}
	for _, opt := range opts {
		if err := opt(e); err != nil {
			return nil, err
		}
	}
	return e, nil
}

// Variant returns the rule set the engine applies.
func (e *Engine) Variant() model.Variant { return e.variant }

// Table returns the currently active table.
func (e *Engine) Table() *table.Table { return e.tables.Current() }

// Tables returns the holder the engine reads from.
func (e *Engine) Tables() *table.Holder { return e.tables }

// CheckDays rejects a period outside the variant's bounds.
func (e *Engine) CheckDays(days int) error {
	if !e.variant.AllowsDays(days) {
		return fmt.Errorf("%w: %d not in %d-%d", ErrDaysOutOfRange, days, e.variant.MinDays, e.variant.MaxDays)
	}
	return nil
}

// Evaluate computes the result for one input snapshot. Missing inputs are
// not errors: the result's Stage tells how far the evaluation got.
func (e *Engine) Evaluate(in model.EvaluationInput) model.EvaluationResult {
	snap := e.tables.Snapshot()
	if e.memo == nil {
		return evaluate(snap.Table, e.variant, in)
	}
	key := newMemoKey(snap.Generation, in)
	if v, ok := e.memo.Get(key); ok {
		return v.(model.EvaluationResult)
	}
	res := evaluate(snap.Table, e.variant, in)
	e.memo.Add(key, res)
	return res
}

func evaluate(t *table.Table, v model.Variant, in model.EvaluationInput) model.EvaluationResult {
	name := strings.TrimSpace(in.Name)
	res := model.EvaluationResult{
		Stage: model.StageEmpty,
		Name:  name,
		Boon:  in.Boon,
	}
	if name == "" || in.CharacterLevel <= 0 {
		return res
	}

	// Difficulty comes from the initial level.
	initial := calculator.InitialLevel(in.CharacterLevel, in.Boon, v)
	row := t.Lookup(initial)
	res.Stage = model.StageLevelKnown
	res.InitialLevel = initial
	res.Difficulty = row.Difficulty

	// A selected band wins over a check total.
	band, ok := calculator.ClassifySelection(in.Band)
	if !ok && in.CheckTotal != nil {
		dc := row.Difficulty
		if in.Difficulty != nil {
			dc = *in.Difficulty
		}
		band, ok = calculator.Classify(*in.CheckTotal, dc), true
	}
	if !ok {
		return res
	}
	res.Band = band

	if !v.AllowsProficiency(in.Proficiency) || !v.AllowsDays(in.Days) {
		return res
	}

	// Payout is read at the modified level unless the band left none.
	modified, resolved := calculator.ModifiedLevel(initial, band, v)
	payRow := row
	if resolved {
		payRow = t.Lookup(modified)
	}

	// Round once, on the total.
	perDay := calculator.PerDay(payRow, band, in.Proficiency, in.Boon, v)
	total := calculator.Round(calculator.Total(perDay, in.Days), v)

	res.Stage = model.StageResolved
	res.Proficiency = in.Proficiency
	res.ModifiedLevel = modified
	res.Unresolved = !resolved
	res.Days = in.Days
	res.PerDay = perDay
	res.Total = total
	res.Formatted = calculator.Format(total, v)
	return res
}

// memoKey is a comparable copy of an input, tagged with the table generation
// it was evaluated against.
type memoKey struct {
	generation     uint64
	name           string
	characterLevel int
	proficiency    model.Proficiency
	boon           bool
	band           model.Band
	hasCheck       bool
	checkTotal     int
	hasDifficulty  bool
	difficulty     int
	days           int
}

func newMemoKey(generation uint64, in model.EvaluationInput) memoKey {
	k := memoKey{
		generation:     generation,
		name:           in.Name,
		characterLevel: in.CharacterLevel,
		proficiency:    in.Proficiency,
		boon:           in.Boon,
		band:           in.Band,
		days:           in.Days,
	}
	if in.CheckTotal != nil {
		k.hasCheck = true
		k.checkTotal = *in.CheckTotal
	}
	if in.Difficulty != nil {
		k.hasDifficulty = true
		k.difficulty = *in.Difficulty
	}
	return k
}
