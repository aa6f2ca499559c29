package coordinator

import (
	"context"
	"testing"

	"github.com/minnanWei/ARIADNE/internal/action"
	"github.com/minnanWei/ARIADNE/internal/agent"
	"github.com/minnanWei/ARIADNE/internal/board"
	"github.com/minnanWei/ARIADNE/internal/llmclient"
	"github.com/minnanWei/ARIADNE/internal/problem"
	"github.com/minnanWei/ARIADNE/internal/schema"
)

func newTestBlackboard() *board.Blackboard {
	model := problem.FromAPPSProblem(problem.APPSRecord{
		Name:        "sum-two",
		Question:    "Sum two numbers.",
		StarterCode: "def solve():\n    pass\n",
	})
	tests := board.NewTestsBoard([]schema.TestCase{
		{Input: "1 2\n", Origin: schema.OriginAPPSExample},
	}, 1)
	return board.NewBlackboard(model, tests, board.NewStrategyBoard(1), board.NewPatchBoard())
}

func newTestCoordinator(llm llmclient.Client) *Coordinator {
	return New(
		agent.NewScoring(agent.NewBase("scoring", llm)),
		agent.NewTestGen(agent.NewBase("testgen", llm), 0),
		agent.NewCodeGen(agent.NewBase("codegen", llm)),
		agent.NewRepair(agent.NewBase("repair", llm), 2),
		agent.NewStrategy(agent.NewBase("strategy", llm)),
	)
}

func TestEnumerateActionsResetsBudgetBeforeProposing(t *testing.T) {
	bb := newTestBlackboard()
	llm := &llmclient.StubClient{Default: "```python\nprint(1)\n```"}
	c := newTestCoordinator(llm)

	// Exhaust codegen's per-iteration budget with a direct CallLLM first.
	c.CodeGen.CallLLM(context.Background(), "priming", "code", bb)

	actions := c.EnumerateActions(context.Background(), "code", bb)
	foundGenerateCode := false
	for _, a := range actions {
		if gc, ok := a.(action.GenerateCode); ok && gc.CodeOverride == "print(1)" {
			foundGenerateCode = true
		}
	}
	if !foundGenerateCode {
		t.Fatalf("expected codegen to propose after reset, actions: %+v", actions)
	}
}

func TestEnumerateActionsAttachesStrategyPrior(t *testing.T) {
	bb := newTestBlackboard()
	bb.Strategy.UpsertHypothesis(schema.StrategyHypothesis{ID: "optimize", Name: "Optimize"})
	bb.Strategy.SetBidComponents("optimize", 0.9, 0.1, 0.1)
	llm := &llmclient.StubClient{}
	c := newTestCoordinator(llm)

	prior := bb.Strategy.ComputePrior(1, 1, 1, 1)
	wantConf, ok := prior["optimize"]
	if !ok {
		t.Fatalf("expected prior for 'optimize'")
	}

	gc := action.GenerateCode{
		Base: action.Base{
			ActionName: "generate_code",
			MetadataV:  map[string]any{"strategy": "optimize"},
		},
		StrategyID: "optimize",
	}
	actions := []action.Action{gc}
	c.attachPriors(actions, bb)

	got := actions[0].Confidence()
	if got == nil || *got != wantConf {
		t.Fatalf("expected confidence overridden to strategy prior %v, got %v", wantConf, got)
	}
}

func TestEnumerateActionsAttachesPatchSuccessProb(t *testing.T) {
	bb := newTestBlackboard()
	bb.Patch.ProposePatch(schema.Patch{ID: "p1", SuccessProb: 0.77, Cost: 0.1, Risk: 0.1})
	llm := &llmclient.StubClient{}
	c := newTestCoordinator(llm)

	ap := action.ApplyPatch{
		Base:    action.Base{ActionName: "apply_patch"},
		PatchID: "p1",
	}
	actions := []action.Action{ap}
	c.attachPriors(actions, bb)

	got := actions[0].Confidence()
	if got == nil || *got != 0.77 {
		t.Fatalf("expected confidence overridden to patch success_prob 0.77, got %v", got)
	}
}

func TestEnumerateActionsFixedOrderAgentsAllResetEachIteration(t *testing.T) {
	bb := newTestBlackboard()
	llm := &llmclient.StubClient{Default: "```python\nprint(1)\n```"}
	c := newTestCoordinator(llm)

	first := c.EnumerateActions(context.Background(), "code", bb)
	second := c.EnumerateActions(context.Background(), "code-changed", bb)

	hasGenerateCode := func(actions []action.Action) bool {
		for _, a := range actions {
			if gc, ok := a.(action.GenerateCode); ok && gc.CodeOverride == "print(1)" {
				return true
			}
		}
		return false
	}
	if !hasGenerateCode(first) || !hasGenerateCode(second) {
		t.Fatalf("expected codegen to propose on every EnumerateActions call since its budget resets each time")
	}
}

func TestHandleDiagnosticDelegatesToScoring(t *testing.T) {
	bb := newTestBlackboard()
	llm := &llmclient.StubClient{}
	c := newTestCoordinator(llm)

	diag := schema.Diagnostic{Status: schema.StatusWA}
	c.HandleDiagnostic(context.Background(), diag, bb)

	if _, ok := bb.Patch.Patches["stub_off_by_one"]; !ok {
		t.Fatalf("expected HandleDiagnostic to route through scoring agent's fallback patch")
	}
}
