// Package coordinator implements fixed-order action enumeration across the
// five specialist agents and routes diagnostics to the scoring agent.
package coordinator

import (
	"context"

	"github.com/minnanWei/ARIADNE/internal/action"
	"github.com/minnanWei/ARIADNE/internal/agent"
	"github.com/minnanWei/ARIADNE/internal/board"
	"github.com/minnanWei/ARIADNE/internal/schema"
)

// Coordinator enumerates actions across all five specialist agents in a
// fixed order, then attaches strategy/patch priors to the results.
type Coordinator struct {
	Scoring  *agent.Scoring
	TestGen  *agent.TestGen
	CodeGen  *agent.CodeGen
	Repair   *agent.Repair
	Strategy *agent.Strategy
}

// New constructs a Coordinator from its five agents.
func New(scoring *agent.Scoring, testGen *agent.TestGen, codeGen *agent.CodeGen, repair *agent.Repair, strategy *agent.Strategy) *Coordinator {
	return &Coordinator{Scoring: scoring, TestGen: testGen, CodeGen: codeGen, Repair: repair, Strategy: strategy}
}

// HandleDiagnostic routes diag to the Scoring agent.
func (c *Coordinator) HandleDiagnostic(ctx context.Context, diag schema.Diagnostic, bb *board.Blackboard) {
	c.Scoring.HandleDiagnostic(ctx, diag, bb)
}

// EnumerateActions resets every agent's per-iteration call budget, then
// proposes actions in the fixed order
// [scoring, testgen, codegen, repair, strategy], attaching the strategy and
// patch-success priors to the results before returning.
func (c *Coordinator) EnumerateActions(ctx context.Context, code string, bb *board.Blackboard) []action.Action {
	for _, a := range []agent.Agent{c.Scoring, c.TestGen, c.CodeGen, c.Repair, c.Strategy} {
		a.ResetIteration()
	}

	var actions []action.Action
	actions = append(actions, c.Scoring.Propose(ctx, code, bb)...)
	actions = append(actions, c.TestGen.Propose(ctx, code, bb)...)
	actions = append(actions, c.CodeGen.Propose(ctx, code, bb)...)
	actions = append(actions, c.Repair.Propose(ctx, code, bb)...)
	actions = append(actions, c.Strategy.Propose(ctx, code, bb)...)

	c.attachPriors(actions, bb)
	return actions
}

func (c *Coordinator) attachPriors(actions []action.Action, bb *board.Blackboard) {
	strategyPrior := bb.Strategy.ComputePrior(1, 1, 1, 1)
	for i, a := range actions {
		metadata := a.Metadata()
		if strategyID, ok := metadata["strategy"].(string); ok && strategyID != "" {
			if prior, ok := strategyPrior[strategyID]; ok {
				actions[i] = a.WithConfidence(prior)
				a = actions[i]
			}
		}
		if a.Name() == "apply_patch" {
			if patchAction, ok := a.(action.ApplyPatch); ok {
				if patch, ok := bb.Patch.Patches[patchAction.PatchID]; ok {
					actions[i] = a.WithConfidence(patch.SuccessProb)
				}
			}
		}
	}
}
