package board

import (
	"testing"

	"github.com/minnanWei/ARIADNE/internal/schema"
)

func strPtr(s string) *string { return &s }

func TestTestsBoardAddCounterexampleDedup(t *testing.T) {
	b := NewTestsBoard(nil, 1)
	tc := schema.TestCase{Input: "5\n", Expected: strPtr("5")}
	b.AddCounterexample(tc, schema.Diagnostic{})
	b.AddCounterexample(schema.TestCase{Input: "5", Expected: strPtr("5")}, schema.Diagnostic{})
	if len(b.Counterexamples) != 1 {
		t.Fatalf("expected dedup by trimmed input, got %d entries", len(b.Counterexamples))
	}
}

func TestTestsBoardAddGeneratedTestsRouting(t *testing.T) {
	b := NewTestsBoard(nil, 1)
	b.AddGeneratedTests([]schema.TestCase{
		{Input: "1", Origin: schema.OriginMinimized},
		{Input: "2", Origin: schema.OriginCounterexample},
		{Input: "3", Origin: schema.OriginGeneratedRandom},
		{Input: "4", Origin: schema.OriginGeneratedExtreme},
	})
	if len(b.Minimized) != 1 || len(b.Counterexamples) != 1 || len(b.Generated) != 2 {
		t.Fatalf("unexpected routing: minimized=%d counterexamples=%d generated=%d",
			len(b.Minimized), len(b.Counterexamples), len(b.Generated))
	}
}

func TestTestsBoardRecordFailureTimestampMonotonic(t *testing.T) {
	b := NewTestsBoard(nil, 1)
	b.RecordFailure(schema.Diagnostic{Status: schema.StatusWA})
	b.RecordFailure(schema.Diagnostic{Status: schema.StatusRE})
	if b.FailureMetadata[0].Timestamp != 0 || b.FailureMetadata[1].Timestamp != 1 {
		t.Fatalf("expected monotonic pre-append timestamps, got %v",
			[]int64{b.FailureMetadata[0].Timestamp, b.FailureMetadata[1].Timestamp})
	}
}

func TestTestsBoardGetQuickscreenSuiteUniqueAndBudgeted(t *testing.T) {
	b := NewTestsBoard([]schema.TestCase{
		{Input: "1"}, {Input: "2"}, {Input: "3"}, {Input: "4"},
	}, 42)
	b.AddGeneratedTests([]schema.TestCase{{Input: "1"}}) // duplicate of seed

	suite := b.GetQuickscreenSuite(3)
	if len(suite) != 3 {
		t.Fatalf("expected 3 tests, got %d", len(suite))
	}
	seen := make(map[string]bool)
	for _, tc := range suite {
		if seen[tc.TrimmedInput()] {
			t.Fatalf("duplicate input %q in quickscreen suite", tc.Input)
		}
		seen[tc.TrimmedInput()] = true
	}
}

func TestTestsBoardGetQuickscreenSuiteDeterministic(t *testing.T) {
	seed := []schema.TestCase{{Input: "1"}, {Input: "2"}, {Input: "3"}, {Input: "4"}, {Input: "5"}}
	b1 := NewTestsBoard(seed, 7)
	b2 := NewTestsBoard(seed, 7)

	suite1 := b1.GetQuickscreenSuite(2)
	suite2 := b2.GetQuickscreenSuite(2)
	if len(suite1) != len(suite2) {
		t.Fatalf("length mismatch")
	}
	for i := range suite1 {
		if suite1[i].Input != suite2[i].Input {
			t.Fatalf("same seed must produce same quickscreen suite, got %v vs %v", suite1, suite2)
		}
	}
}

func TestTestsBoardCloneIsolation(t *testing.T) {
	b := NewTestsBoard([]schema.TestCase{{Input: "1"}}, 1)
	clone := b.Clone()
	clone.AddCounterexample(schema.TestCase{Input: "2"}, schema.Diagnostic{})
	if len(b.Counterexamples) != 0 {
		t.Fatalf("mutating clone must not affect original")
	}
}
