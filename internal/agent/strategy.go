package agent

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/minnanWei/ARIADNE/internal/action"
	"github.com/minnanWei/ARIADNE/internal/board"
	"github.com/minnanWei/ARIADNE/internal/schema"
)

// Strategy proposes algorithmic hypotheses (and their bids) for the
// StrategyBoard.
type Strategy struct {
	Base
}

// NewStrategy constructs a Strategy agent.
func NewStrategy(base Base) *Strategy {
	return &Strategy{Base: base}
}

type strategyBidItem struct {
	P float64 `json:"p"`
	C float64 `json:"c"`
	R float64 `json:"r"`
}

type strategyItem struct {
	ID                      string          `json:"id"`
	Name                    string          `json:"name"`
	ApplicabilityConditions []string        `json:"applicability_conditions"`
	ComplexityUpperBound    string          `json:"complexity_upper_bound"`
	RiskFlags               []string        `json:"risk_flags"`
	MinimalEvidenceSet      []string        `json:"minimal_evidence_set"`
	Notes                   string          `json:"notes"`
	Bid                     strategyBidItem `json:"bid"`
}

type strategyResponse struct {
	Strategies         []strategyItem `json:"strategies"`
	RecommendedActiveID string        `json:"recommended_active_id"`
}

// Propose asks the LLM for candidate hypotheses; on failure it falls back
// to a deterministic set derived from recent failure statuses (TLE ->
// "optimize", WA -> "boundary_check", RE -> "robust_io").
func (a *Strategy) Propose(ctx context.Context, code string, bb *board.Blackboard) []action.Action {
	prompt := a.buildPrompt(bb)
	response := a.CallLLM(ctx, prompt, code, bb)
	if actions := a.parseResponse(response); len(actions) > 0 {
		return actions
	}
	return fallbackStrategyActions(bb)
}

func (a *Strategy) buildPrompt(bb *board.Blackboard) string {
	records := bb.Tests.FailureMetadata
	start := len(records) - 5
	if start < 0 {
		start = 0
	}
	recent := records[start:]

	var statuses []string
	var patterns []string
	for _, r := range recent {
		statuses = append(statuses, string(r.Status))
		if r.Message != "" {
			patterns = append(patterns, r.Message)
		}
	}

	constraints, _ := json.Marshal(bb.ProblemModel.Constraints)
	counterexamples := lastInputs(bb.Tests.Counterexamples, 3)

	return fmt.Sprintf(strategyPromptTemplate,
		bb.ProblemModel.Summarize(), string(constraints), statuses, patterns,
		strings.Join(counterexamples, "\n"))
}

func (a *Strategy) parseResponse(text string) []action.Action {
	if text == "" {
		return nil
	}
	var resp strategyResponse
	if err := json.Unmarshal([]byte(text), &resp); err != nil {
		return nil
	}

	hypotheses := make([]schema.StrategyHypothesis, 0, len(resp.Strategies))
	bids := make(map[string]schema.Bid, len(resp.Strategies))
	for _, item := range resp.Strategies {
		if item.ID == "" {
			continue
		}
		complexity := item.ComplexityUpperBound
		if complexity == "" {
			complexity = "O(n)"
		}
		hypotheses = append(hypotheses, schema.StrategyHypothesis{
			ID:                      item.ID,
			Name:                    item.Name,
			ApplicabilityConditions: item.ApplicabilityConditions,
			ComplexityUpperBound:    complexity,
			RiskFlags:               item.RiskFlags,
			MinimalEvidenceSet:      item.MinimalEvidenceSet,
			Notes:                   item.Notes,
		})
		p, c, r := item.Bid.P, item.Bid.C, item.Bid.R
		if p == 0 && c == 0 && r == 0 {
			p, c, r = 0.5, 0.5, 0.5
		}
		bids[item.ID] = schema.Bid{P: p, C: c, R: r}
	}
	if len(hypotheses) == 0 {
		return nil
	}

	conf, cost, risk := 0.3, 0.2, 0.2
	metadata := map[string]any{"count": len(hypotheses)}
	if resp.RecommendedActiveID != "" {
		metadata["recommended_active_id"] = resp.RecommendedActiveID
	}
	return []action.Action{
		action.StrategyProposal{
			Base: action.Base{
				ActionName:  "strategy_proposal",
				ConfidenceV: &conf,
				CostV:       &cost,
				RiskV:       &risk,
				MetadataV:   metadata,
			},
			Hypotheses: hypotheses,
			Bids:       bids,
		},
	}
}

func fallbackStrategyActions(bb *board.Blackboard) []action.Action {
	var hypotheses []schema.StrategyHypothesis
	bids := make(map[string]schema.Bid)

	if len(bb.Strategy.Hypotheses) == 0 {
		def := schema.StrategyHypothesis{
			ID: "default", Name: "Baseline",
			ApplicabilityConditions: []string{"default"},
			ComplexityUpperBound:    "O(n)",
			Notes:                   "Default baseline strategy.",
		}
		hypotheses = append(hypotheses, def)
		bids[def.ID] = schema.Bid{P: 0.5, C: 0.5, R: 0.5}
	}

	seen := map[schema.DiagnosticStatus]bool{}
	for _, r := range bb.Tests.FailureMetadata {
		seen[r.Status] = true
	}

	if seen[schema.StatusTLE] {
		if _, ok := bb.Strategy.Hypotheses["optimize"]; !ok {
			h := schema.StrategyHypothesis{
				ID: "optimize", Name: "Optimize Complexity",
				ApplicabilityConditions: []string{"TLE seen"},
				ComplexityUpperBound:    "O(n log n)",
				RiskFlags:               []string{"refactor"},
				MinimalEvidenceSet:      []string{"timeout"},
				Notes:                   "Prefer more efficient loops or data structures.",
			}
			hypotheses = append(hypotheses, h)
			bids[h.ID] = schema.Bid{P: 0.4, C: 0.6, R: 0.5}
		}
	}
	if seen[schema.StatusWA] {
		if _, ok := bb.Strategy.Hypotheses["boundary_check"]; !ok {
			h := schema.StrategyHypothesis{
				ID: "boundary_check", Name: "Boundary Checks",
				ApplicabilityConditions: []string{"WA seen"},
				ComplexityUpperBound:    "O(n)",
				MinimalEvidenceSet:      []string{"wrong answer"},
				Notes:                   "Re-check edge cases and bounds.",
			}
			hypotheses = append(hypotheses, h)
			bids[h.ID] = schema.Bid{P: 0.45, C: 0.4, R: 0.3}
		}
	}
	if seen[schema.StatusRE] {
		if _, ok := bb.Strategy.Hypotheses["robust_io"]; !ok {
			h := schema.StrategyHypothesis{
				ID: "robust_io", Name: "Robust IO",
				ApplicabilityConditions: []string{"RE seen"},
				ComplexityUpperBound:    "O(n)",
				MinimalEvidenceSet:      []string{"runtime error"},
				Notes:                   "Guard against empty input or malformed tokens.",
			}
			hypotheses = append(hypotheses, h)
			bids[h.ID] = schema.Bid{P: 0.35, C: 0.3, R: 0.2}
		}
	}

	if len(hypotheses) == 0 {
		return nil
	}
	conf, cost, risk := 0.3, 0.2, 0.2
	return []action.Action{
		action.StrategyProposal{
			Base: action.Base{
				ActionName:  "strategy_proposal",
				ConfidenceV: &conf,
				CostV:       &cost,
				RiskV:       &risk,
				MetadataV:   map[string]any{"count": len(hypotheses)},
			},
			Hypotheses: hypotheses,
			Bids:       bids,
		},
	}
}
