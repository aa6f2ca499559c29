package problem

import "testing"

func TestFromAPPSProblemDefaultsUnknownName(t *testing.T) {
	m := FromAPPSProblem(APPSRecord{Question: "What is 2+2?"})
	if m.Objective != "Solve unknown" {
		t.Fatalf("expected default name 'unknown', got objective %q", m.Objective)
	}
}

func TestFromAPPSProblemPopulatesIOSpec(t *testing.T) {
	m := FromAPPSProblem(APPSRecord{
		Name:              "add-two",
		Question:          "Add two numbers",
		StarterCode:       "def solve(): pass",
		InputDescription:  "two ints",
		OutputDescription: "their sum",
	})
	if m.StarterCode() != "def solve(): pass" {
		t.Fatalf("expected starter code roundtrip, got %q", m.StarterCode())
	}
	if m.IOSpec["input_description"] != "two ints" {
		t.Fatalf("expected input description in IOSpec, got %+v", m.IOSpec)
	}
}

func TestFromAPPSProblemNilConstraintsBecomesEmptyMap(t *testing.T) {
	m := FromAPPSProblem(APPSRecord{Name: "p1"})
	if m.Constraints == nil {
		t.Fatalf("expected non-nil empty constraints map")
	}
	if len(m.Constraints) != 0 {
		t.Fatalf("expected empty constraints map, got %+v", m.Constraints)
	}
}

func TestSummarizeUsesFirstNonBlankStatementLine(t *testing.T) {
	m := FromAPPSProblem(APPSRecord{
		Name:     "p1",
		Question: "\n\n  Compute the sum.\nMore detail here.",
	})
	got := m.Summarize()
	want := "Solve p1: Compute the sum."
	if got != want {
		t.Fatalf("expected %q, got %q", want, got)
	}
}

func TestSummarizeFallsBackToObjectiveOnBlankStatement(t *testing.T) {
	m := FromAPPSProblem(APPSRecord{Name: "p1", Question: "   \n  "})
	want := "Solve p1: Solve p1"
	if m.Summarize() != want {
		t.Fatalf("expected %q, got %q", want, m.Summarize())
	}
}

func TestStarterCodeEmptyWhenFieldMissing(t *testing.T) {
	m := Model{IOSpec: map[string]any{}}
	if m.StarterCode() != "" {
		t.Fatalf("expected empty starter code, got %q", m.StarterCode())
	}
}
