// Package tracker keeps an ordered list of evaluation units where each unit
// unlocks the next one once it resolves.
package tracker

import (
	"errors"
	"fmt"

	"DowntimeIncome/internal/model"
)

// MaxUnits is the size of a party roster.
const MaxUnits = 7

var (
	ErrLocked     = errors.New("unit is locked")
	ErrOutOfRange = errors.New("unit index out of range")
)

// State of one unit in a Ladder.
type State int

const (
	StateLocked State = iota
	StateActive
	StateResolved
)

func (s State) String() string {
	switch s {
	case StateLocked:
		return "locked"
	case StateActive:
		return "active"
	case StateResolved:
		return "resolved"
	default:
		return "unknown"
	}
}

// Evaluator turns an input snapshot into a result. *engine.Engine satisfies it.
type Evaluator interface {
	Evaluate(in model.EvaluationInput) model.EvaluationResult
}

// Unit is one row of the ladder.
type Unit struct {
	State  State
	Input  model.EvaluationInput
	Result model.EvaluationResult
}

// Ladder is an ordered list of units. Unit i+1 is unlocked only while unit i
// is resolved; when a unit stops being resolved every later unit is locked
// and cleared.
type Ladder struct {
	eval  Evaluator
	units []Unit
}

// NewLadder creates n units with only the first one active.
func NewLadder(eval Evaluator, n int) *Ladder {
	if n < 1 {
		n = 1
	}
	l := &Ladder{eval: eval, units: make([]Unit, n)}
	l.units[0].State = StateActive
	return l
}

// Len returns the number of units.
func (l *Ladder) Len() int { return len(l.units) }

// Unit returns a copy of unit i.
func (l *Ladder) Unit(i int) (Unit, error) {
	if i < 0 || i >= len(l.units) {
		return Unit{}, fmt.Errorf("%w: %d", ErrOutOfRange, i)
	}
	return l.units[i], nil
}

// Units returns a copy of every unit.
func (l *Ladder) Units() []Unit {
	out := make([]Unit, len(l.units))
	copy(out, l.units)
	return out
}

// Set stores a new input for unit i, evaluates it and updates the units
// after it.
func (l *Ladder) Set(i int, in model.EvaluationInput) (model.EvaluationResult, error) {
	if i < 0 || i >= len(l.units) {
		return model.EvaluationResult{}, fmt.Errorf("%w: %d", ErrOutOfRange, i)
	}
	if l.units[i].State == StateLocked {
		return model.EvaluationResult{}, fmt.Errorf("%w: %d", ErrLocked, i)
	}
	l.units[i].Input = in
	l.apply(i)
	return l.units[i].Result, nil
}

// Clear erases unit i's input and result and locks every later unit.
func (l *Ladder) Clear(i int) error {
	if i < 0 || i >= len(l.units) {
		return fmt.Errorf("%w: %d", ErrOutOfRange, i)
	}
	if l.units[i].State == StateLocked {
		return fmt.Errorf("%w: %d", ErrLocked, i)
	}
	l.units[i] = Unit{State: StateActive}
	l.lockFrom(i + 1)
	return nil
}

// Refresh re-evaluates every unlocked unit in order, e.g. after the active
// table changed.
func (l *Ladder) Refresh() {
	for i := 0; i < len(l.units); i++ {
		if l.units[i].State == StateLocked {
			return
		}
		l.apply(i)
	}
}

// Resolved returns the results of resolved units in order.
func (l *Ladder) Resolved() []model.EvaluationResult {
	var out []model.EvaluationResult
	for _, u := range l.units {
		if u.State == StateResolved {
			out = append(out, u.Result)
		}
	}
	return out
}

func (l *Ladder) apply(i int) {
	u := &l.units[i]
	u.Result = l.eval.Evaluate(u.Input)
	if !u.Result.Resolved() {
		u.State = StateActive
		l.lockFrom(i + 1)
		return
	}
	u.State = StateResolved
	if i+1 < len(l.units) && l.units[i+1].State == StateLocked {
		l.units[i+1].State = StateActive
	}
}

func (l *Ladder) lockFrom(i int) {
	for ; i < len(l.units); i++ {
		l.units[i] = Unit{State: StateLocked}
	}
}
