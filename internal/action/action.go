// Package action implements the tagged-variant Action pattern: every
// mutation an agent proposes to the search state is an Action that knows
// how to apply itself to a candidate program and a Blackboard.
package action

import (
	"github.com/minnanWei/ARIADNE/internal/board"
	"github.com/minnanWei/ARIADNE/internal/schema"
)

// Action is anything an agent can propose during one MCTS iteration.
type Action interface {
	Name() string
	Confidence() *float64
	Cost() *float64
	Risk() *float64
	Metadata() map[string]any
	// Apply mutates blackboard in place (as needed) and returns the code
	// the node should hold after this action is taken.
	Apply(code string, blackboard *board.Blackboard) string
	// WithConfidence returns a copy of this action with Confidence
	// overridden, used by the Coordinator to attach strategy/patch priors
	// after an agent has proposed an action.
	WithConfidence(confidence float64) Action
}

// Base carries the fields shared by every Action variant.
type Base struct {
	ActionName  string
	ConfidenceV *float64
	CostV       *float64
	RiskV       *float64
	MetadataV   map[string]any
}

func (b Base) Name() string         { return b.ActionName }
func (b Base) Confidence() *float64 { return b.ConfidenceV }
func (b Base) Cost() *float64       { return b.CostV }
func (b Base) Risk() *float64       { return b.RiskV }
func (b Base) Metadata() map[string]any {
	if b.MetadataV == nil {
		return map[string]any{}
	}
	return b.MetadataV
}

// GenerateCode proposes a full candidate program, optionally pinning the
// active strategy hypothesis first.
type GenerateCode struct {
	Base
	Variant            string
	StrategyID         string
	ExpectedComplexity string
	CodeOverride       string
}

// Apply pins the strategy (if any), then returns CodeOverride if set, else
// the starter code if non-blank, else "".
func (a GenerateCode) Apply(code string, bb *board.Blackboard) string {
	if a.StrategyID != "" {
		bb.Strategy.SetActiveHypothesis(a.StrategyID)
	}
	if a.CodeOverride != "" {
		return a.CodeOverride
	}
	starter := bb.GetStarterCode()
	if trimmedNonEmpty(starter) {
		return starter
	}
	return ""
}

// Evaluate is a no-op on code/blackboard; it exists so the Coordinator can
// enumerate "run the pipeline" as a first-class action.
type Evaluate struct {
	Base
}

// Apply returns code unchanged.
func (a Evaluate) Apply(code string, _ *board.Blackboard) string {
	return code
}

// TestGeneration proposes new tests, routed into the TestsBoard by origin.
type TestGeneration struct {
	Base
	Tests []schema.TestCase
}

// Apply records the proposed tests and returns code unchanged.
func (a TestGeneration) Apply(code string, bb *board.Blackboard) string {
	bb.Tests.AddGeneratedTests(a.Tests)
	return code
}

// StrategyProposal proposes one or more hypotheses plus their bids, and
// optionally recommends which one becomes active.
type StrategyProposal struct {
	Base
	Hypotheses []schema.StrategyHypothesis
	Bids       map[string]schema.Bid
}

// Apply upserts each hypothesis (with its bid, if any), then sets the
// active hypothesis: to metadata["recommended_active_id"] if present, else
// to the first proposed hypothesis if none is currently active.
func (a StrategyProposal) Apply(code string, bb *board.Blackboard) string {
	for _, h := range a.Hypotheses {
		bb.Strategy.UpsertHypothesis(h)
		if bid, ok := a.Bids[h.ID]; ok {
			bb.Strategy.SetBidComponents(h.ID, bid.P, bid.C, bid.R)
		}
	}
	if recommended, ok := a.Metadata()["recommended_active_id"]; ok {
		if id, ok := recommended.(string); ok && id != "" {
			bb.Strategy.SetActiveHypothesis(id)
			return code
		}
	}
	if bb.Strategy.ActiveID == "" && len(a.Hypotheses) > 0 {
		bb.Strategy.SetActiveHypothesis(a.Hypotheses[0].ID)
	}
	return code
}

// ApplyPatch proposes applying a previously registered patch. Without a
// CodeOverride it is intentionally a no-op on code: dependency/conflict
// checking happens earlier, when the Repair agent picks patches through
// PatchBoard.SelectPatchSubset. Applying this action records nothing on the
// PatchBoard.
type ApplyPatch struct {
	Base
	PatchID      string
	Level        schema.PatchLevel
	CodeOverride string
}

// Apply returns CodeOverride if set, else code unchanged. Callers that need
// to observe the no-op can check whether CodeOverride is empty directly.
func (a ApplyPatch) Apply(code string, _ *board.Blackboard) string {
	if a.CodeOverride != "" {
		return a.CodeOverride
	}
	return code
}

// WithConfidence returns a copy with Confidence overridden.
func (a GenerateCode) WithConfidence(c float64) Action { a.ConfidenceV = &c; return a }

// WithConfidence returns a copy with Confidence overridden.
func (a Evaluate) WithConfidence(c float64) Action { a.ConfidenceV = &c; return a }

// WithConfidence returns a copy with Confidence overridden.
func (a TestGeneration) WithConfidence(c float64) Action { a.ConfidenceV = &c; return a }

// WithConfidence returns a copy with Confidence overridden.
func (a StrategyProposal) WithConfidence(c float64) Action { a.ConfidenceV = &c; return a }

// WithConfidence returns a copy with Confidence overridden.
func (a ApplyPatch) WithConfidence(c float64) Action { a.ConfidenceV = &c; return a }

func trimmedNonEmpty(s string) bool {
	for _, r := range s {
		if r != ' ' && r != '\t' && r != '\n' && r != '\r' {
			return true
		}
	}
	return false
}
