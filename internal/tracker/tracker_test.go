package tracker

import (
	"errors"
	"testing"

	"DowntimeIncome/internal/engine"
	"DowntimeIncome/internal/model"
	"DowntimeIncome/internal/table"
)

func newLadder(t *testing.T, n int) *Ladder {
	t.Helper()
	e, err := engine.New(table.NewHolder(nil), model.Pathfinder())
	if err != nil {
		t.Fatalf("new engine: %v", err)
	}
	return NewLadder(e, n)
}

func complete(name string) model.EvaluationInput {
	return model.EvaluationInput{
		Name:           name,
		CharacterLevel: 5,
		Proficiency:    model.ProficiencyTrained,
		Band:           model.BandSuccess,
		Days:           8,
	}
}

func states(l *Ladder) []State {
	var out []State
	for _, u := range l.Units() {
		out = append(out, u.State)
	}
	return out
}

func expectStates(t *testing.T, l *Ladder, want ...State) {
	t.Helper()
	got := states(l)
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("expected states %v, got %v", want, got)
		}
	}
}

func TestLadder_InitialState(t *testing.T) {
	l := newLadder(t, 3)
	expectStates(t, l, StateActive, StateLocked, StateLocked)
	if _, err := l.Set(1, complete("B")); !errors.Is(err, ErrLocked) {
		t.Errorf("expected ErrLocked, got %v", err)
	}
	if _, err := l.Set(3, complete("D")); !errors.Is(err, ErrOutOfRange) {
		t.Errorf("expected ErrOutOfRange, got %v", err)
	}
}

func TestLadder_UnlocksNextOnly(t *testing.T) {
	l := newLadder(t, 3)
	res, err := l.Set(0, complete("A"))
	if err != nil {
		t.Fatalf("set: %v", err)
	}
	if !res.Resolved() {
		t.Fatalf("expected resolved result, got %s", res.Stage)
	}
	expectStates(t, l, StateResolved, StateActive, StateLocked)
}

func TestLadder_ClearCascades(t *testing.T) {
	l := newLadder(t, 3)
	for i, name := range []string{"A", "B", "C"} {
		if _, err := l.Set(i, complete(name)); err != nil {
			t.Fatalf("set %d: %v", i, err)
		}
	}
	expectStates(t, l, StateResolved, StateResolved, StateResolved)

	if err := l.Clear(0); err != nil {
		t.Fatalf("clear: %v", err)
	}
	expectStates(t, l, StateActive, StateLocked, StateLocked)
	for i := 1; i < 3; i++ {
		u, _ := l.Unit(i)
		if u.Input.Name != "" || u.Result.Stage != model.StageEmpty {
			t.Errorf("unit %d: expected cleared, got %+v", i, u)
		}
	}
	if len(l.Resolved()) != 0 {
		t.Errorf("expected no resolved units, got %d", len(l.Resolved()))
	}
}

func TestLadder_IncompleteInputRelocks(t *testing.T) {
	l := newLadder(t, 3)
	l.Set(0, complete("A"))
	l.Set(1, complete("B"))

	partial := complete("A")
	partial.Band = model.BandUnknown
	res, err := l.Set(0, partial)
	if err != nil {
		t.Fatalf("set: %v", err)
	}
	if res.Stage != model.StageLevelKnown {
		t.Errorf("expected level-known, got %s", res.Stage)
	}
	expectStates(t, l, StateActive, StateLocked, StateLocked)
}

func TestLadder_ClearMiddle(t *testing.T) {
	l := newLadder(t, MaxUnits)
	for i := 0; i < 4; i++ {
		l.Set(i, complete(string(rune('A'+i))))
	}
	if err := l.Clear(2); err != nil {
		t.Fatalf("clear: %v", err)
	}
	expectStates(t, l, StateResolved, StateResolved, StateActive, StateLocked, StateLocked)
	got := l.Resolved()
	if len(got) != 2 || got[0].Name != "A" || got[1].Name != "B" {
		t.Errorf("expected A and B resolved, got %+v", got)
	}
	if err := l.Clear(5); !errors.Is(err, ErrLocked) {
		t.Errorf("expected ErrLocked clearing a locked unit, got %v", err)
	}
}

func TestLadder_Refresh(t *testing.T) {
	holder := table.NewHolder(nil)
	e, err := engine.New(holder, model.Pathfinder())
	if err != nil {
		t.Fatalf("new engine: %v", err)
	}
	l := NewLadder(e, 2)
	l.Set(0, complete("A"))

	ext, _, err := table.Load([][]string{{"el", "dc", "income"}, {"3", "18", "10"}}, "ext.csv")
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	holder.Swap(ext)
	l.Refresh()

	u, _ := l.Unit(0)
	if u.Result.Formatted != "80.00 gp" {
		t.Errorf("expected refreshed total 80.00 gp, got %s", u.Result.Formatted)
	}
	expectStates(t, l, StateResolved, StateActive)
}
