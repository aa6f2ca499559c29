package agent

import (
	"context"
	"fmt"
	"strings"

	"github.com/minnanWei/ARIADNE/internal/action"
	"github.com/minnanWei/ARIADNE/internal/board"
	"github.com/minnanWei/ARIADNE/internal/schema"
)

// Repair proposes ApplyPatch actions for the highest-value patch subset on
// the PatchBoard.
type Repair struct {
	Base
	Budget      int
	lastPatches []schema.Patch
}

// NewRepair constructs a Repair agent with the given patch-selection
// budget (defaults to 2).
func NewRepair(base Base, budget int) *Repair {
	if budget <= 0 {
		budget = 2
	}
	return &Repair{Base: base, Budget: budget}
}

// Propose selects a patch subset, asks the LLM to produce a repaired
// program, and falls back to one ApplyPatch action per selected patch
// (without a code override) if the LLM produced nothing usable.
func (a *Repair) Propose(ctx context.Context, code string, bb *board.Blackboard) []action.Action {
	patches := bb.Patch.SelectPatchSubset(a.Budget, 1, 1, 1)
	if len(patches) == 0 {
		return nil
	}
	a.lastPatches = patches

	prompt := a.buildPrompt(code, bb)
	response := a.CallLLM(ctx, prompt, code, bb)
	if actions := a.parseResponse(response, patches); len(actions) > 0 {
		return actions
	}
	return a.fallbackActions(patches)
}

func (a *Repair) buildPrompt(code string, bb *board.Blackboard) string {
	var status, errorType string
	if n := len(bb.Tests.FailureMetadata); n > 0 {
		last := bb.Tests.FailureMetadata[n-1]
		status = string(last.Status)
		errorType = last.Message
	} else {
		status = "UNKNOWN"
	}
	failingTests := strings.Join(lastInputs(bb.Tests.Counterexamples, 3), "\n")

	var proposalLines []string
	for _, p := range a.lastPatches {
		proposalLines = append(proposalLines, fmt.Sprintf(
			"- [%s] %s (level=%s, p=%.2f, cost=%.2f, risk=%.2f)",
			p.ID, p.Description, p.Level, p.SuccessProb, p.Cost, p.Risk))
	}

	statement := bb.ProblemModel.RawStatement
	if strings.TrimSpace(statement) == "" {
		statement = bb.ProblemModel.Objective
	}
	return fmt.Sprintf(repairPromptTemplate,
		statement, code, status, errorType, failingTests, strings.Join(proposalLines, "\n"))
}

func (a *Repair) parseResponse(text string, patches []schema.Patch) []action.Action {
	code := extractCode(text)
	if code == "" {
		return nil
	}
	patch := patches[0]
	conf, cost, risk := patch.SuccessProb, patch.Cost, patch.Risk
	return []action.Action{
		action.ApplyPatch{
			Base: action.Base{
				ActionName:  "apply_patch",
				ConfidenceV: &conf,
				CostV:       &cost,
				RiskV:       &risk,
				MetadataV:   map[string]any{"description": patch.Description},
			},
			PatchID:      patch.ID,
			Level:        patch.Level,
			CodeOverride: code,
		},
	}
}

func (a *Repair) fallbackActions(patches []schema.Patch) []action.Action {
	actions := make([]action.Action, 0, len(patches))
	for _, patch := range patches {
		conf, cost, risk := patch.SuccessProb, patch.Cost, patch.Risk
		actions = append(actions, action.ApplyPatch{
			Base: action.Base{
				ActionName:  "apply_patch",
				ConfidenceV: &conf,
				CostV:       &cost,
				RiskV:       &risk,
				MetadataV:   map[string]any{"description": patch.Description},
			},
			PatchID: patch.ID,
			Level:   patch.Level,
		})
	}
	return actions
}
