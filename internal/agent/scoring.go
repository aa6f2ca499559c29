package agent

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/minnanWei/ARIADNE/internal/action"
	"github.com/minnanWei/ARIADNE/internal/board"
	"github.com/minnanWei/ARIADNE/internal/schema"
)

// Scoring updates the Blackboard from a diagnostic and proposes candidate
// patches for the PatchBoard. It never proposes Actions directly through
// Propose; its work happens through HandleDiagnostic.
type Scoring struct {
	Base
}

// NewScoring constructs a Scoring agent.
func NewScoring(base Base) *Scoring {
	return &Scoring{Base: base}
}

// Propose always returns nil: ScoringAgent's only role is HandleDiagnostic.
func (a *Scoring) Propose(_ context.Context, _ string, _ *board.Blackboard) []action.Action {
	return nil
}

type scoringPatchItem struct {
	ID          string   `json:"id"`
	Level       string   `json:"level"`
	Description string   `json:"description"`
	SuccessProb float64  `json:"success_prob"`
	Cost        float64  `json:"cost"`
	Risk        float64  `json:"risk"`
	Tags        []string `json:"tags"`
}

type scoringResponse struct {
	Patches []scoringPatchItem `json:"patches"`
}

// HandleDiagnostic records diag on the blackboard, asks the LLM for
// candidate patches, falls back to a deterministic stub patch keyed on
// diag's status, and proposes whatever patches result.
func (a *Scoring) HandleDiagnostic(ctx context.Context, diag schema.Diagnostic, bb *board.Blackboard) {
	bb.UpdateFromDiagnostic(diag)

	prompt := a.buildPrompt(diag)
	response := a.CallLLM(ctx, prompt, "", bb)
	patches := a.parseResponse(response)
	if len(patches) == 0 {
		patches = fallbackPatches(diag)
	}
	for _, p := range patches {
		bb.Patch.ProposePatch(p)
	}
}

func (a *Scoring) buildPrompt(diag schema.Diagnostic) string {
	type failingTestPayload struct {
		Input          string  `json:"input"`
		ExpectedOutput *string `json:"expected_output"`
		ActualOutput   *string `json:"actual_output"`
	}
	payload := struct {
		Status       string               `json:"status"`
		Notes        map[string]any       `json:"notes"`
		FailingTests []failingTestPayload `json:"failing_tests"`
	}{
		Status: string(diag.Status),
		Notes:  diag.Notes,
	}
	for _, ft := range diag.FailingTests {
		payload.FailingTests = append(payload.FailingTests, failingTestPayload{
			Input:          ft.TestCase.Input,
			ExpectedOutput: ft.ExpectedOutput,
			ActualOutput:   ft.ActualOutput,
		})
	}
	data, _ := json.Marshal(payload)
	return fmt.Sprintf(
		"Analyze this failure and propose up to 3 candidate patches as JSON. "+
			"Return the format {\"patches\":[{\"id\":...,\"level\":...,\"description\":...,"+
			"\"success_prob\":...,\"cost\":...,\"risk\":...,\"tags\":[...]}]}.\n"+
			"Failure payload:\n%s", string(data))
}

func (a *Scoring) parseResponse(text string) []schema.Patch {
	if text == "" {
		return nil
	}
	var resp scoringResponse
	if err := json.Unmarshal([]byte(text), &resp); err != nil {
		return nil
	}
	patches := make([]schema.Patch, 0, len(resp.Patches))
	for _, item := range resp.Patches {
		id := item.ID
		if id == "" {
			id = "stub_llm_patch"
		}
		patches = append(patches, schema.Patch{
			ID:          id,
			Level:       schema.ParsePatchLevel(item.Level),
			Description: item.Description,
			SuccessProb: item.SuccessProb,
			Cost:        item.Cost,
			Risk:        item.Risk,
			Tags:        item.Tags,
		})
	}
	return patches
}

func fallbackPatches(diag schema.Diagnostic) []schema.Patch {
	switch diag.Status {
	case schema.StatusWA:
		return []schema.Patch{{
			ID:          "stub_off_by_one",
			Level:       schema.PatchL1Local,
			Description: "Check off-by-one / logic conditions.",
			SuccessProb: 0.25,
			Cost:        0.15,
			Risk:        0.2,
			Tags:        []string{"stub", "logic"},
		}}
	case schema.StatusRE:
		return []schema.Patch{{
			ID:          "stub_input_guard",
			Level:       schema.PatchL1Local,
			Description: "Add input validation / guards.",
			SuccessProb: 0.25,
			Cost:        0.15,
			Risk:        0.25,
			Tags:        []string{"stub", "input"},
		}}
	case schema.StatusTLE:
		return []schema.Patch{{
			ID:          "stub_optimize_loop",
			Level:       schema.PatchL2Structural,
			Description: "Optimize loop or reduce complexity.",
			SuccessProb: 0.2,
			Cost:        0.3,
			Risk:        0.3,
			Tags:        []string{"stub", "performance"},
		}}
	default:
		return nil
	}
}
