package board

import (
	"math"
	"math/rand"
	"sort"

	"github.com/minnanWei/ARIADNE/internal/schema"
)

// StrategyBoard holds the hypothesis catalog, per-id bid components, and the
// active hypothesis. A well-formed board always contains a "default"
// hypothesis with bid (0.5, 0.5, 0.5) unless explicitly overwritten.
type StrategyBoard struct {
	Hypotheses map[string]schema.StrategyHypothesis
	Bids       map[string]schema.Bid
	ActiveID   string
	RandSeed   int64
}

// NewStrategyBoard creates a board pre-populated with the default hypothesis.
func NewStrategyBoard(randSeed int64) *StrategyBoard {
	b := &StrategyBoard{
		Hypotheses: make(map[string]schema.StrategyHypothesis),
		Bids:       make(map[string]schema.Bid),
		RandSeed:   randSeed,
	}
	b.UpsertHypothesis(schema.StrategyHypothesis{
		ID:                      "default",
		Name:                    "Baseline",
		ApplicabilityConditions: []string{"default"},
		ComplexityUpperBound:    "O(n)",
		Notes:                   "Default baseline hypothesis.",
	})
	b.SetActiveHypothesis("default")
	b.SetBidComponents("default", 0.5, 0.5, 0.5)
	return b
}

// UpsertHypothesis inserts or replaces a hypothesis by id. First insertion
// also initializes its bid to (0.5, 0.5, 0.5) if no bid is present.
func (b *StrategyBoard) UpsertHypothesis(h schema.StrategyHypothesis) {
	b.Hypotheses[h.ID] = h
	if _, ok := b.Bids[h.ID]; !ok {
		b.Bids[h.ID] = schema.DefaultBid
	}
}

// SetBidComponents overwrites the (p, c, r) bid for a hypothesis id.
func (b *StrategyBoard) SetBidComponents(id string, p, c, r float64) {
	b.Bids[id] = schema.Bid{P: p, C: c, R: r}
}

// ComputePrior returns a softmax distribution over hypothesis ids derived
// from min-max normalized bids. If an axis is constant across all ids, that
// axis contributes 0.5 uniformly instead of dividing by zero.
func (b *StrategyBoard) ComputePrior(alpha, beta, gamma, tau float64) map[string]float64 {
	ids := sortedIDs(b.Hypotheses)
	if len(ids) == 0 {
		return map[string]float64{}
	}

	ps := make([]float64, len(ids))
	cs := make([]float64, len(ids))
	rs := make([]float64, len(ids))
	for i, id := range ids {
		bid, ok := b.Bids[id]
		if !ok {
			bid = schema.DefaultBid
		}
		ps[i], cs[i], rs[i] = bid.P, bid.C, bid.R
	}

	pNorm := minMaxNormalize(ps)
	cNorm := minMaxNormalize(cs)
	rNorm := minMaxNormalize(rs)

	scores := make([]float64, len(ids))
	for i := range ids {
		scores[i] = alpha*pNorm[i] - beta*cNorm[i] - gamma*rNorm[i]
	}

	return softmax(ids, scores, tau)
}

func minMaxNormalize(values []float64) []float64 {
	min, max := values[0], values[0]
	for _, v := range values {
		if v < min {
			min = v
		}
		if v > max {
			max = v
		}
	}
	out := make([]float64, len(values))
	if max == min {
		for i := range out {
			out[i] = 0.5
		}
		return out
	}
	for i, v := range values {
		out[i] = (v - min) / (max - min)
	}
	return out
}

func softmax(ids []string, scores []float64, tau float64) map[string]float64 {
	if tau < 1e-6 {
		tau = 1e-6
	}
	scaled := make([]float64, len(scores))
	max := math.Inf(-1)
	for i, s := range scores {
		scaled[i] = s / tau
		if scaled[i] > max {
			max = scaled[i]
		}
	}
	exps := make([]float64, len(scaled))
	var total float64
	for i, s := range scaled {
		exps[i] = math.Exp(s - max)
		total += exps[i]
	}
	out := make(map[string]float64, len(ids))
	for i, id := range ids {
		out[id] = exps[i] / total
	}
	return out
}

// sortedIDs returns hypothesis ids in a deterministic (lexicographic) order,
// since Go map iteration order is randomized and the prior/sample must be
// reproducible given the same bids and seed.
func sortedIDs(hypotheses map[string]schema.StrategyHypothesis) []string {
	ids := make([]string, 0, len(hypotheses))
	for id := range hypotheses {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}

// SampleHypothesis draws one hypothesis via inverse-CDF sampling seeded by
// RandSeed, falling back to "default" if the board is empty.
func (b *StrategyBoard) SampleHypothesis() schema.StrategyHypothesis {
	prior := b.ComputePrior(1, 1, 1, 1)
	ids := sortedIDs(b.Hypotheses)
	if len(ids) == 0 {
		return b.Hypotheses["default"]
	}
	rng := rand.New(rand.NewSource(b.RandSeed))
	r := rng.Float64()
	var cumulative float64
	for _, id := range ids {
		cumulative += prior[id]
		if r <= cumulative {
			return b.Hypotheses[id]
		}
	}
	return b.Hypotheses[ids[len(ids)-1]]
}

// GetActiveHypothesis returns the active hypothesis, falling back to
// "default" if ActiveID is unset or unknown.
func (b *StrategyBoard) GetActiveHypothesis() schema.StrategyHypothesis {
	if b.ActiveID != "" {
		if h, ok := b.Hypotheses[b.ActiveID]; ok {
			return h
		}
	}
	return b.Hypotheses["default"]
}

// SetActiveHypothesis sets the active id; a no-op if id is unknown.
func (b *StrategyBoard) SetActiveHypothesis(id string) {
	if _, ok := b.Hypotheses[id]; ok {
		b.ActiveID = id
	}
}

// Clone returns a deep, independent copy of the board.
func (b *StrategyBoard) Clone() *StrategyBoard {
	clone := &StrategyBoard{
		Hypotheses: make(map[string]schema.StrategyHypothesis, len(b.Hypotheses)),
		Bids:       make(map[string]schema.Bid, len(b.Bids)),
		ActiveID:   b.ActiveID,
		RandSeed:   b.RandSeed,
	}
	for k, v := range b.Hypotheses {
		clone.Hypotheses[k] = v
	}
	for k, v := range b.Bids {
		clone.Bids[k] = v
	}
	return clone
}
