// Package eval implements the two-tier evaluation pipeline (quickscreen,
// deepeval) and the scalar reward function.
package eval

import (
	"context"
	"strings"
	"time"

	"github.com/minnanWei/ARIADNE/internal/board"
	"github.com/minnanWei/ARIADNE/internal/executor"
	"github.com/minnanWei/ARIADNE/internal/schema"
)

// QuickscreenResult summarizes a stop-at-first-failure run over at most N
// tests.
type QuickscreenResult struct {
	Passed      bool
	PassedCount int
	Total       int
	Timeouts    int
	AvgRuntime  float64
	Diagnostic  *schema.Diagnostic
}

// DeepEvalResult summarizes a full run over every problem test, with one
// diagnostic per failure.
type DeepEvalResult struct {
	Passed      bool
	PassedCount int
	Total       int
	Timeouts    int
	AvgRuntime  float64
	Diagnostics []schema.Diagnostic
}

// RunQuickscreen runs code against bb's quickscreen suite, stopping at the
// first failing test.
func RunQuickscreen(ctx context.Context, runner executor.Runner, code string, bb *board.Blackboard, timeout time.Duration) QuickscreenResult {
	tests := bb.GetQuickscreenTests(3)
	return runSuite(ctx, runner, code, tests, timeout, "quickscreen", true).QuickscreenResult
}

// RunDeepEval runs code against every test in bb's problem view, never
// stopping early, collecting one diagnostic per failing test.
func RunDeepEval(ctx context.Context, runner executor.Runner, code string, bb *board.Blackboard, timeout time.Duration) DeepEvalResult {
	tests := bb.ProblemView().Tests
	qr := runSuite(ctx, runner, code, tests, timeout, "deepeval", false)
	return DeepEvalResult{
		Passed:      qr.PassedCount == qr.Total,
		PassedCount: qr.PassedCount,
		Total:       qr.Total,
		Timeouts:    qr.Timeouts,
		AvgRuntime:  qr.AvgRuntime,
		Diagnostics: qr.diagnostics,
	}
}

// internal result shared by both runners; diagnostics accumulates one entry
// per failure (quickscreen only ever gets one, via the stop-at-first-failure
// path).
type suiteResult struct {
	QuickscreenResult
	diagnostics []schema.Diagnostic
}

func runSuite(ctx context.Context, runner executor.Runner, code string, tests []schema.TestCase, timeout time.Duration, stage string, stopAtFirstFailure bool) suiteResult {
	passed := 0
	timeouts := 0
	var runtimes []float64
	var diagnostics []schema.Diagnostic

	for i := range tests {
		test := tests[i]
		result, err := runner.Run(ctx, code, test.Input, timeout)
		if err != nil {
			diag := schema.Diagnostic{Stage: stage, Status: schema.StatusRE, Test: &test, Message: err.Error()}
			diagnostics = append(diagnostics, diag)
			if stopAtFirstFailure {
				break
			}
			continue
		}
		runtimes = append(runtimes, result.RuntimeSec)

		if result.TimedOut {
			timeouts++
			diagnostics = append(diagnostics, schema.Diagnostic{
				Stage: stage, Status: schema.StatusTLE, Test: &test,
				Message: "timeout", RuntimeSeconds: result.RuntimeSec,
			})
			if stopAtFirstFailure {
				break
			}
			continue
		}

		if result.ExitCode != 0 {
			message := strings.TrimSpace(result.Stderr)
			if message == "" {
				message = "runtime error"
			}
			diagnostics = append(diagnostics, schema.Diagnostic{
				Stage: stage, Status: schema.StatusRE, Test: &test,
				Message: message, RuntimeSeconds: result.RuntimeSec,
			})
			if stopAtFirstFailure {
				break
			}
			continue
		}

		expected := test.ExpectedOrEmpty()
		if strings.TrimSpace(result.Stdout) != strings.TrimSpace(expected) {
			actual := result.Stdout
			diagnostics = append(diagnostics, schema.Diagnostic{
				Stage: stage, Status: schema.StatusWA, Test: &test,
				Message:        "wrong answer",
				ActualOutput:   &actual,
				ExpectedOutput: &expected,
				RuntimeSeconds: result.RuntimeSec,
			})
			if stopAtFirstFailure {
				break
			}
			continue
		}

		passed++
	}

	total := len(tests)
	var avgRuntime float64
	if len(runtimes) > 0 {
		var sum float64
		for _, r := range runtimes {
			sum += r
		}
		avgRuntime = sum / float64(len(runtimes))
	}

	var diag *schema.Diagnostic
	if len(diagnostics) > 0 {
		diag = &diagnostics[len(diagnostics)-1]
	}
	passedAll := passed == total && diag == nil

	return suiteResult{
		QuickscreenResult: QuickscreenResult{
			Passed:      passedAll,
			PassedCount: passed,
			Total:       total,
			Timeouts:    timeouts,
			AvgRuntime:  avgRuntime,
			Diagnostic:  diag,
		},
		diagnostics: diagnostics,
	}
}

const (
	alphaCorrectness = 0.6
	betaPerformance  = 0.2
	gammaStructure   = 0.2
)

// ComputeReward computes alpha*r_corr + beta*r_perf + gamma*r_struct. The
// branch-count heuristic counts "if"/"for"/"while" as raw substrings, so
// identifiers like "elif" and "information" inflate the count; this is a
// deliberate cheap proxy and must stay literal for reward reproducibility.
func ComputeReward(passedCount, total, timeouts int, avgRuntimeSec float64, hasAvgRuntime bool, code string) float64 {
	var rCorr float64
	if total > 0 {
		rCorr = float64(passedCount) / float64(total)
	}

	var timeoutRate float64
	if total > 0 {
		timeoutRate = float64(timeouts) / float64(total)
	} else {
		timeoutRate = 1.0
	}
	rPerf := 1.0 - minFloat(1.0, timeoutRate)

	if hasAvgRuntime && avgRuntimeSec > 0 {
		slowFactor := minFloat(1.0, avgRuntimeSec/0.5)
		rPerf *= maxFloat(0.0, 1.0-0.5*slowFactor)
	}

	lengthPenalty := minFloat(float64(len(code))/2000.0, 1.0)
	branchCount := strings.Count(code, "if") + strings.Count(code, "for") + strings.Count(code, "while")
	branchPenalty := minFloat(float64(branchCount)/50.0, 1.0)
	rStruct := maxFloat(0.0, 1.0-0.5*lengthPenalty-0.5*branchPenalty)

	return alphaCorrectness*rCorr + betaPerformance*rPerf + gammaStructure*rStruct
}

func minFloat(a, b float64) float64 {
	if a < b {
		return a
	}
	return b
}

func maxFloat(a, b float64) float64 {
	if a > b {
		return a
	}
	return b
}
