package eval

import (
	"context"
	"math"
	"testing"
	"time"

	"github.com/minnanWei/ARIADNE/internal/board"
	"github.com/minnanWei/ARIADNE/internal/executor"
	"github.com/minnanWei/ARIADNE/internal/problem"
	"github.com/minnanWei/ARIADNE/internal/schema"
)

// stubRunner returns a scripted RunResult per call, keyed by stdin.
type stubRunner struct {
	byInput map[string]executor.RunResult
}

func (s *stubRunner) Run(_ context.Context, _ string, stdin string, _ time.Duration) (executor.RunResult, error) {
	if r, ok := s.byInput[stdin]; ok {
		return r, nil
	}
	return executor.RunResult{Stdout: ""}, nil
}

func strPtr(s string) *string { return &s }

func newBlackboardWithTests(tests []schema.TestCase) *board.Blackboard {
	model := problem.FromAPPSProblem(problem.APPSRecord{Name: "p"})
	tb := board.NewTestsBoard(tests, 1)
	return board.NewBlackboard(model, tb, board.NewStrategyBoard(1), board.NewPatchBoard())
}

func TestRunQuickscreenStopsAtFirstFailure(t *testing.T) {
	tests := []schema.TestCase{
		{Input: "1", Expected: strPtr("1"), Origin: schema.OriginAPPSTest},
		{Input: "2", Expected: strPtr("2"), Origin: schema.OriginAPPSTest},
		{Input: "3", Expected: strPtr("3"), Origin: schema.OriginAPPSTest},
	}
	bb := newBlackboardWithTests(tests)
	runner := &stubRunner{byInput: map[string]executor.RunResult{
		"1": {Stdout: "1"},
		"2": {Stdout: "WRONG"},
		"3": {Stdout: "3"},
	}}
	result := RunQuickscreen(context.Background(), runner, "code", bb, 200*time.Millisecond)
	if result.Passed {
		t.Fatalf("expected failure due to wrong answer on test 2")
	}
	if result.PassedCount != 1 {
		t.Fatalf("expected exactly 1 passed before stopping, got %d", result.PassedCount)
	}
	if result.Diagnostic == nil || result.Diagnostic.Status != schema.StatusWA {
		t.Fatalf("expected WA diagnostic, got %+v", result.Diagnostic)
	}
}

func TestRunQuickscreenAllPass(t *testing.T) {
	tests := []schema.TestCase{
		{Input: "1", Expected: strPtr("1"), Origin: schema.OriginAPPSTest},
		{Input: "2", Expected: strPtr("2"), Origin: schema.OriginAPPSTest},
	}
	bb := newBlackboardWithTests(tests)
	runner := &stubRunner{byInput: map[string]executor.RunResult{
		"1": {Stdout: "1"},
		"2": {Stdout: "2"},
	}}
	result := RunQuickscreen(context.Background(), runner, "code", bb, 200*time.Millisecond)
	if !result.Passed {
		t.Fatalf("expected all tests to pass")
	}
}

func TestRunDeepEvalCollectsAllFailures(t *testing.T) {
	tests := []schema.TestCase{
		{Input: "1", Expected: strPtr("1"), Origin: schema.OriginAPPSTest},
		{Input: "2", Expected: strPtr("2"), Origin: schema.OriginAPPSTest},
		{Input: "3", Expected: strPtr("3"), Origin: schema.OriginAPPSTest},
	}
	bb := newBlackboardWithTests(tests)
	runner := &stubRunner{byInput: map[string]executor.RunResult{
		"1": {Stdout: "WRONG"},
		"2": {Stdout: "2"},
		"3": {Stdout: "ALSO WRONG"},
	}}
	result := RunDeepEval(context.Background(), runner, "code", bb, time.Second)
	if result.Passed {
		t.Fatalf("expected overall failure")
	}
	if len(result.Diagnostics) != 2 {
		t.Fatalf("expected 2 diagnostics for 2 failing tests, got %d", len(result.Diagnostics))
	}
	if result.PassedCount != 1 {
		t.Fatalf("expected 1 passed, got %d", result.PassedCount)
	}
}

func TestRunDeepEvalTimeoutCounted(t *testing.T) {
	tests := []schema.TestCase{{Input: "1", Expected: strPtr("1"), Origin: schema.OriginAPPSTest}}
	bb := newBlackboardWithTests(tests)
	runner := &stubRunner{byInput: map[string]executor.RunResult{
		"1": {TimedOut: true},
	}}
	result := RunDeepEval(context.Background(), runner, "code", bb, time.Second)
	if result.Timeouts != 1 {
		t.Fatalf("expected 1 timeout recorded, got %d", result.Timeouts)
	}
	if result.Diagnostics[0].Status != schema.StatusTLE {
		t.Fatalf("expected TLE diagnostic")
	}
}

func TestComputeRewardRangeAndFormula(t *testing.T) {
	code := "def f(): return 1"
	r := ComputeReward(10, 10, 0, 0.1, true, code)
	if r < 0 || r > 1 {
		t.Fatalf("reward must be in [0,1], got %f", r)
	}
	// r_corr=1, r_perf=1*(1-0.5*(0.1/0.5))=0.9, r_struct=1-0.5*len/2000.
	want := 0.6 + 0.2*0.9 + 0.2*(1.0-0.5*float64(len(code))/2000.0)
	if math.Abs(r-want) > 1e-9 {
		t.Fatalf("expected reward %v, got %v", want, r)
	}
}

func TestComputeRewardZeroTotalDoesNotPanic(t *testing.T) {
	r := ComputeReward(0, 0, 0, 0, false, "")
	if r < 0 || r > 1 {
		t.Fatalf("reward must stay in range even with zero total, got %f", r)
	}
}

func TestComputeRewardBranchHeuristicCountsSubstringsLiterally(t *testing.T) {
	// "information" contains "for" as a raw substring; this is intentional,
	// preserved from the original heuristic rather than "fixed".
	withInfo := ComputeReward(1, 1, 0, 0, false, "information information information information information information information information information information information information information information information information information information information information information information information information information information information information information information information information information information information information information information information information information information information information information information information information information information")
	plain := ComputeReward(1, 1, 0, 0, false, "x")
	if withInfo >= plain {
		t.Fatalf("expected heuristic to penalize the substring-inflated branch count")
	}
}
