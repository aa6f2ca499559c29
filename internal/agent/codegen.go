package agent

import (
	"context"
	"fmt"
	"sort"
	"strings"

	"github.com/minnanWei/ARIADNE/internal/action"
	"github.com/minnanWei/ARIADNE/internal/board"
	"github.com/minnanWei/ARIADNE/internal/schema"
)

// CodeGen proposes full candidate programs targeting the highest-prior
// strategy hypothesis.
type CodeGen struct {
	Base
}

// NewCodeGen constructs a CodeGen agent.
func NewCodeGen(base Base) *CodeGen {
	return &CodeGen{Base: base}
}

// Propose picks the highest-prior strategy hypothesis, asks the LLM for a
// solution, and falls back to a starter-code GenerateCode action if the LLM
// produced nothing usable.
func (a *CodeGen) Propose(ctx context.Context, code string, bb *board.Blackboard) []action.Action {
	prior := bb.Strategy.ComputePrior(1, 1, 1, 1)
	strategyID, confidence := "", 0.4
	if len(prior) > 0 {
		strategyID = maxByValue(prior)
		confidence = prior[strategyID]
	} else {
		strategyID = bb.Strategy.GetActiveHypothesis().ID
	}

	prompt := a.buildPrompt(bb)
	response := a.CallLLM(ctx, prompt, code, bb)

	if actions := a.parseResponse(response, strategyID, confidence, bb); len(actions) > 0 {
		return actions
	}

	var expectedComplexity string
	if h, ok := bb.Strategy.Hypotheses[strategyID]; ok {
		expectedComplexity = h.ComplexityUpperBound
	}
	conf := confidence
	cost := 0.4
	risk := 0.3
	return []action.Action{
		action.GenerateCode{
			Base: action.Base{
				ActionName:  "generate_code",
				ConfidenceV: &conf,
				CostV:       &cost,
				RiskV:       &risk,
				MetadataV:   map[string]any{"strategy": strategyID},
			},
			Variant:            "starter_or_baseline",
			StrategyID:         strategyID,
			ExpectedComplexity: expectedComplexity,
		},
	}
}

func (a *CodeGen) buildPrompt(bb *board.Blackboard) string {
	model := bb.ProblemModel
	statement := model.RawStatement
	if strings.TrimSpace(statement) == "" {
		statement = model.Objective
	}
	counterexamples := lastInputs(bb.Tests.Counterexamples, 5)
	return fmt.Sprintf(codegenPromptTemplate,
		statement, model.IOSpec, model.Constraints,
		strings.Join(model.Invariants, "\n"),
		strings.Join(model.EdgeCaseChecklist, "\n"),
		strings.Join(counterexamples, "\n"),
	)
}

func (a *CodeGen) parseResponse(text, strategyID string, confidence float64, bb *board.Blackboard) []action.Action {
	code := extractCode(text)
	if code == "" {
		return nil
	}
	var expectedComplexity string
	if h, ok := bb.Strategy.Hypotheses[strategyID]; ok {
		expectedComplexity = h.ComplexityUpperBound
	}
	conf := confidence
	cost := 0.4
	risk := 0.3
	return []action.Action{
		action.GenerateCode{
			Base: action.Base{
				ActionName:  "generate_code",
				ConfidenceV: &conf,
				CostV:       &cost,
				RiskV:       &risk,
				MetadataV:   map[string]any{"strategy": strategyID},
			},
			Variant:            "llm",
			StrategyID:         strategyID,
			ExpectedComplexity: expectedComplexity,
			CodeOverride:       code,
		},
	}
}

// maxByValue returns the key with the largest value, breaking ties by the
// lexicographically smallest key so the result is reproducible regardless
// of Go's randomized map iteration order.
func maxByValue(m map[string]float64) string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	best := keys[0]
	for _, k := range keys[1:] {
		if m[k] > m[best] {
			best = k
		}
	}
	return best
}

// lastInputs returns the Input field of the trailing n tests,
// oldest-to-newest, matching Python's tests.counterexamples[-n:] slicing.
func lastInputs(tests []schema.TestCase, n int) []string {
	start := len(tests) - n
	if start < 0 {
		start = 0
	}
	out := make([]string, 0, len(tests)-start)
	for _, t := range tests[start:] {
		out = append(out, t.Input)
	}
	return out
}
