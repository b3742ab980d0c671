package summary

import (
	"strings"
	"testing"

	"DowntimeIncome/internal/engine"
	"DowntimeIncome/internal/model"
	"DowntimeIncome/internal/table"
)

func evaluate(t *testing.T, v model.Variant, in model.EvaluationInput) model.EvaluationResult {
	t.Helper()
	e, err := engine.New(table.NewHolder(nil), v)
	if err != nil {
		t.Fatalf("new engine: %v", err)
	}
	return e.Evaluate(in)
}

func TestSanitizeScenario(t *testing.T) {
	tests := []struct{ in, want string }{
		{"5-03: The Lost (Part 2)", "5-03: The Lost (Part 2)"},
		{"<b>1-01</b>", "b1-01b"},
		{"Quest #12!", "Quest 12"},
		{"", ""},
	}
	for _, tt := range tests {
		if got := SanitizeScenario(tt.in); got != tt.want {
			t.Errorf("sanitize(%q): expected %q, got %q", tt.in, tt.want, got)
		}
	}
}

func TestHeaderLine(t *testing.T) {
	if got := HeaderLine(Header{}); got != "Date not set - Scenario not set" {
		t.Errorf("unexpected empty header %q", got)
	}
	if got := HeaderLine(Header{Date: "2026-10-19", Scenario: "5-03"}); got != "2026-10-19 - 5-03" {
		t.Errorf("unexpected header %q", got)
	}
}

func TestBuild(t *testing.T) {
	pf := model.Pathfinder()
	ayla := evaluate(t, pf, model.EvaluationInput{
		Name: "Ayla", CharacterLevel: 5, Proficiency: model.ProficiencyTrained,
		Band: model.BandSuccess, Days: 8,
	})
	bram := evaluate(t, pf, model.EvaluationInput{
		Name: "Bram", CharacterLevel: 5, Proficiency: model.ProficiencyTrained, Boon: true,
		Band: model.BandCriticalFailure, Days: 8,
	})
	pending := evaluate(t, pf, model.EvaluationInput{Name: "Cass", CharacterLevel: 4})

	got := Build(Header{Date: "2026-10-19", Scenario: "5-03"}, []model.EvaluationResult{ayla, pending, bram}, pf)
	want := strings.Join([]string{
		"2026-10-19 - 5-03",
		"Ayla: Success, EL = 3     24.00 gp",
		"Bram: Critical failure, EL = — (Boon)     0.00 gp",
	}, "\n")
	if got != want {
		t.Errorf("unexpected summary:\n%s\nwant:\n%s", got, want)
	}
}

func TestDescribe(t *testing.T) {
	pf := model.Pathfinder()
	if got := Describe(model.EvaluationResult{}, pf); !strings.Contains(got, "name") {
		t.Errorf("unexpected empty description %q", got)
	}
	partial := evaluate(t, pf, model.EvaluationInput{Name: "Cass", CharacterLevel: 5})
	if got := Describe(partial, pf); got != "Cass: target DC 18" {
		t.Errorf("unexpected partial description %q", got)
	}
	full := evaluate(t, pf, model.EvaluationInput{
		Name: "Ayla", CharacterLevel: 5, Proficiency: model.ProficiencyTrained,
		Band: model.BandSuccess, Days: 8,
	})
	want := "Ayla: Success, EL = 3     24.00 gp (DC 18, 3.00 gp/day x 8)"
	if got := Describe(full, pf); got != want {
		t.Errorf("expected %q, got %q", want, got)
	}
}

func TestRenderTable(t *testing.T) {
	out := RenderTable(table.Baseline(), model.Horizon())
	if !strings.Contains(out, "builtin") {
		t.Error("expected provenance in the appendix")
	}
	if strings.Contains(out, "l S/CS") {
		t.Error("horizon excludes the legendary tier")
	}
	if !strings.Contains(out, "3   18  | 3.00/6.00") {
		t.Errorf("expected level 3 row, got:\n%s", out)
	}
}
