package board

import (
	"github.com/minnanWei/ARIADNE/internal/problem"
	"github.com/minnanWei/ARIADNE/internal/schema"
)

// Problem is a read-only projection of a Blackboard's problem facts, derived
// from ProblemModel + TestsBoard.
type Problem struct {
	Name        string
	Question    string
	StarterCode string
	Examples    []schema.TestCase
	Tests       []schema.TestCase
}

// Blackboard is the shared knowledge base passed between MCTS nodes. Every
// node owns its own Blackboard instance; Clone produces a fully independent
// copy so sibling expansions never observe each other's mutations.
type Blackboard struct {
	ProblemModel problem.Model
	Tests        *TestsBoard
	Strategy     *StrategyBoard
	Patch        *PatchBoard
}

// NewBlackboard assembles a Blackboard from its four parts.
func NewBlackboard(model problem.Model, tests *TestsBoard, strategy *StrategyBoard, patch *PatchBoard) *Blackboard {
	return &Blackboard{ProblemModel: model, Tests: tests, Strategy: strategy, Patch: patch}
}

// Clone returns a deep, independent copy: the ProblemModel is immutable and
// copied by value, and each sub-board is deep-cloned.
func (b *Blackboard) Clone() *Blackboard {
	return &Blackboard{
		ProblemModel: b.ProblemModel,
		Tests:        b.Tests.Clone(),
		Strategy:     b.Strategy.Clone(),
		Patch:        b.Patch.Clone(),
	}
}

// UpdateFromDiagnostic records diag on the TestsBoard failure log, then
// harvests a counterexample: from diag's FailingTests if present, else from
// diag.Test when the status is WA/RE/TLE.
func (b *Blackboard) UpdateFromDiagnostic(diag schema.Diagnostic) {
	b.Tests.RecordFailure(diag)
	if len(diag.FailingTests) > 0 {
		for _, result := range diag.FailingTests {
			b.Tests.AddCounterexample(result.TestCase, diag)
		}
		return
	}
	if diag.Test != nil {
		switch diag.Status {
		case schema.StatusWA, schema.StatusRE, schema.StatusTLE:
			b.Tests.AddCounterexample(*diag.Test, diag)
		}
	}
}

// GetQuickscreenTests delegates to the TestsBoard, defaulting maxTests to 3.
func (b *Blackboard) GetQuickscreenTests(maxTests int) []schema.TestCase {
	if maxTests <= 0 {
		maxTests = 3
	}
	return b.Tests.GetQuickscreenSuite(maxTests)
}

// GetStarterCode returns the starter code recorded on the problem model.
func (b *Blackboard) GetStarterCode() string {
	return b.ProblemModel.StarterCode()
}

// ProblemView derives the read-only Problem projection: examples are seed
// tests tagged APPS_EXAMPLE, tests are seed tests tagged APPS_TEST, falling
// back to all seed tests if none are tagged APPS_TEST.
func (b *Blackboard) ProblemView() Problem {
	var examples, tests []schema.TestCase
	for _, t := range b.Tests.Seed {
		switch t.Origin {
		case schema.OriginAPPSExample:
			examples = append(examples, t)
		case schema.OriginAPPSTest:
			tests = append(tests, t)
		}
	}
	if len(tests) == 0 {
		tests = append([]schema.TestCase(nil), b.Tests.Seed...)
	}
	return Problem{
		Name:        b.ProblemModel.Objective,
		Question:    b.ProblemModel.RawStatement,
		StarterCode: b.ProblemModel.StarterCode(),
		Examples:    examples,
		Tests:       tests,
	}
}

// Summary is the compact, JSON-serializable view used as part of the agent
// response-cache key and for debug logging.
type Summary struct {
	Objective       string         `json:"objective"`
	Constraints     map[string]any `json:"constraints"`
	Tags            []string       `json:"tags"`
	SeedTests       int            `json:"seed_tests"`
	Counterexamples int            `json:"counterexamples"`
	GeneratedTests  int            `json:"generated_tests"`
}

// ToSummary builds the Summary projection.
func (b *Blackboard) ToSummary() Summary {
	return Summary{
		Objective:       b.ProblemModel.Objective,
		Constraints:     b.ProblemModel.Constraints,
		Tags:            b.ProblemModel.Tags,
		SeedTests:       len(b.Tests.Seed),
		Counterexamples: len(b.Tests.Counterexamples),
		GeneratedTests:  len(b.Tests.Generated),
	}
}
