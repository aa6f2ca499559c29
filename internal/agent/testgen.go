package agent

import (
	"context"
	"encoding/json"
	"fmt"
	"math/rand"
	"strconv"
	"strings"

	"github.com/minnanWei/ARIADNE/internal/action"
	"github.com/minnanWei/ARIADNE/internal/board"
	"github.com/minnanWei/ARIADNE/internal/schema"
)

// TestGen proposes new tests: minimized counterexamples, extreme-value
// probes, and random probes, falling back to deterministic synthesis when
// the LLM produces nothing parseable.
type TestGen struct {
	Base
	Seed int64
}

// NewTestGen constructs a TestGen agent seeded for reproducible fallback
// generation.
func NewTestGen(base Base, seed int64) *TestGen {
	return &TestGen{Base: base, Seed: seed}
}

type testgenResponseItem struct {
	Input          string  `json:"input"`
	ExpectedOutput *string `json:"expected_output"`
	Origin         string  `json:"origin"`
	Weight         float64 `json:"weight"`
}

type testgenResponse struct {
	Tests []testgenResponseItem `json:"tests"`
}

// Propose asks the LLM for a JSON test batch; on a parse failure or empty
// batch it synthesizes a minimized counterexample plus extreme and random
// probes using a seeded RNG.
func (a *TestGen) Propose(ctx context.Context, code string, bb *board.Blackboard) []action.Action {
	rng := rand.New(rand.NewSource(a.Seed))
	prompt := a.buildPrompt(bb)
	response := a.CallLLM(ctx, prompt, code, bb)
	tests := a.parseResponse(response)

	if len(tests) == 0 {
		if minimized, ok := minimizeCounterexample(bb); ok {
			tests = append(tests, minimized)
		}
		tests = append(tests, generateExtremeTests(bb)...)
		tests = append(tests, generateRandomTests(bb, rng)...)
	}

	if len(tests) == 0 {
		return nil
	}

	conf, cost, risk := 0.3, 0.2, 0.1
	return []action.Action{
		action.TestGeneration{
			Base: action.Base{
				ActionName:  "test_generation",
				ConfidenceV: &conf,
				CostV:       &cost,
				RiskV:       &risk,
				MetadataV:   map[string]any{"count": len(tests)},
			},
			Tests: tests,
		},
	}
}

func (a *TestGen) buildPrompt(bb *board.Blackboard) string {
	model := bb.ProblemModel
	statement := model.RawStatement
	if strings.TrimSpace(statement) == "" {
		statement = model.Objective
	}
	counterexamples := lastInputs(bb.Tests.Counterexamples, 5)
	return fmt.Sprintf(testgenPromptTemplate,
		statement, model.IOSpec, model.Constraints,
		strings.Join(model.EdgeCaseChecklist, "\n"),
		strings.Join(counterexamples, "\n"),
	)
}

func (a *TestGen) parseResponse(text string) []schema.TestCase {
	var resp testgenResponse
	if text == "" {
		return nil
	}
	if err := json.Unmarshal([]byte(text), &resp); err != nil {
		return nil
	}
	tests := make([]schema.TestCase, 0, len(resp.Tests))
	for _, item := range resp.Tests {
		weight := item.Weight
		if weight == 0 {
			weight = 0.5
		}
		tests = append(tests, schema.TestCase{
			Input:    item.Input,
			Expected: item.ExpectedOutput,
			Origin:   schema.ParseTestOrigin(item.Origin),
			Weight:   weight,
		})
	}
	return tests
}

func minimizeCounterexample(bb *board.Blackboard) (schema.TestCase, bool) {
	counterexamples := bb.Tests.Counterexamples
	if len(counterexamples) == 0 {
		return schema.TestCase{}, false
	}
	original := counterexamples[len(counterexamples)-1]
	tokens := strings.Fields(strings.TrimSpace(original.Input))
	if len(tokens) <= 1 {
		return schema.TestCase{}, false
	}
	half := len(tokens) / 2
	if half < 1 {
		half = 1
	}
	minimizedInput := strings.Join(tokens[:half], " ")
	return schema.TestCase{
		Input:    minimizedInput,
		Expected: original.Expected,
		Origin:   schema.OriginMinimized,
		Weight:   1.5,
	}, true
}

func generateExtremeTests(bb *board.Blackboard) []schema.TestCase {
	extremes := []int{-10, -1, 0}
	tests := make([]schema.TestCase, 0, len(extremes)*len(extremes))
	for _, a := range extremes {
		for _, b := range extremes {
			input := fmt.Sprintf("%d %d\n", a, b)
			tests = append(tests, schema.TestCase{
				Input:    input,
				Expected: maybeComputeExpected(bb, input),
				Origin:   schema.OriginGeneratedExtreme,
				Weight:   0.8,
			})
		}
	}
	return tests
}

func generateRandomTests(bb *board.Blackboard, rng *rand.Rand) []schema.TestCase {
	tests := make([]schema.TestCase, 0, 3)
	for i := 0; i < 3; i++ {
		a := rng.Intn(41) - 20
		b := rng.Intn(41) - 20
		input := fmt.Sprintf("%d %d\n", a, b)
		tests = append(tests, schema.TestCase{
			Input:    input,
			Expected: maybeComputeExpected(bb, input),
			Origin:   schema.OriginGeneratedRandom,
			Weight:   0.6,
		})
	}
	return tests
}

func maybeComputeExpected(bb *board.Blackboard, input string) *string {
	statement := strings.ToLower(bb.ProblemModel.RawStatement)
	if !strings.Contains(statement, "sum") && !strings.Contains(statement, "add") {
		return nil
	}
	var total int
	for _, tok := range strings.Fields(strings.TrimSpace(input)) {
		n, err := strconv.Atoi(tok)
		if err != nil {
			return nil
		}
		total += n
	}
	result := fmt.Sprintf("%d\n", total)
	return &result
}
