// Package board implements the TestsBoard, StrategyBoard, and PatchBoard
// sub-boards plus the Blackboard aggregate that owns them alongside the
// immutable problem model. Every board supports a deep Clone so MCTS
// expansion can hand each child an independent copy.
package board

import (
	"math/rand"

	"github.com/minnanWei/ARIADNE/internal/schema"
)

// TestsBoard holds the seed / generated / counterexample / minimized test
// sequences plus an append-only failure log. No sequence may contain two
// TestCases with the same (trimmed) Input.
type TestsBoard struct {
	Seed            []schema.TestCase
	Generated       []schema.TestCase
	Counterexamples []schema.TestCase
	Minimized       []schema.TestCase
	FailureMetadata []schema.FailureRecord

	// RandSeed drives the deterministic shuffle in GetQuickscreenSuite.
	RandSeed int64
}

// NewTestsBoard creates a TestsBoard seeded with the given tests (typically
// APPS_EXAMPLE / APPS_TEST records from the dataset loader).
func NewTestsBoard(seedTests []schema.TestCase, randSeed int64) *TestsBoard {
	return &TestsBoard{Seed: append([]schema.TestCase(nil), seedTests...), RandSeed: randSeed}
}

func containsInput(tests []schema.TestCase, input string) bool {
	for _, t := range tests {
		if t.TrimmedInput() == input {
			return true
		}
	}
	return false
}

// AddCounterexample appends tc to Counterexamples, deduping by input.
func (b *TestsBoard) AddCounterexample(tc schema.TestCase, _ schema.Diagnostic) {
	if !containsInput(b.Counterexamples, tc.TrimmedInput()) {
		b.Counterexamples = append(b.Counterexamples, tc)
	}
}

// AddMinimized appends tc to Minimized, deduping by input.
func (b *TestsBoard) AddMinimized(tc schema.TestCase, _ schema.Diagnostic) {
	if !containsInput(b.Minimized, tc.TrimmedInput()) {
		b.Minimized = append(b.Minimized, tc)
	}
}

// RecordFailure appends a FailureRecord derived from diag. Timestamp is the
// pre-append length of FailureMetadata (a monotonic integer, not wall-clock).
func (b *TestsBoard) RecordFailure(diag schema.Diagnostic) {
	rec := schema.FailureRecord{
		Status:    diag.Status,
		Test:      diag.OffendingTest(),
		Stage:     diag.Stage,
		Message:   diag.Message,
		Timestamp: int64(len(b.FailureMetadata)),
	}
	b.FailureMetadata = append(b.FailureMetadata, rec)
}

// AddGeneratedTests routes each test to the bucket matching its Origin:
// MINIMIZED -> Minimized, COUNTEREXAMPLE -> Counterexamples, else Generated.
// Each bucket dedupes by input independently.
func (b *TestsBoard) AddGeneratedTests(tests []schema.TestCase) {
	for _, t := range tests {
		switch t.Origin {
		case schema.OriginMinimized:
			if !containsInput(b.Minimized, t.TrimmedInput()) {
				b.Minimized = append(b.Minimized, t)
			}
		case schema.OriginCounterexample:
			if !containsInput(b.Counterexamples, t.TrimmedInput()) {
				b.Counterexamples = append(b.Counterexamples, t)
			}
		default:
			if !containsInput(b.Generated, t.TrimmedInput()) {
				b.Generated = append(b.Generated, t)
			}
		}
	}
}

// GetQuickscreenSuite scans groups in priority order
// [minimized, counterexamples, seed, generated], taking unique inputs until
// maxN is filled. A group with more unique entries than the remaining budget
// is deterministically shuffled (seeded by RandSeed) before truncation.
func (b *TestsBoard) GetQuickscreenSuite(maxN int) []schema.TestCase {
	if maxN <= 0 {
		return nil
	}
	groups := [][]schema.TestCase{b.Minimized, b.Counterexamples, b.Seed, b.Generated}
	rng := rand.New(rand.NewSource(b.RandSeed))

	var suite []schema.TestCase
	seen := make(map[string]struct{})
	remaining := maxN

	for _, group := range groups {
		if remaining <= 0 {
			break
		}
		unique := make([]schema.TestCase, 0, len(group))
		inGroup := make(map[string]struct{})
		for _, t := range group {
			key := t.TrimmedInput()
			if _, ok := seen[key]; ok {
				continue
			}
			if _, ok := inGroup[key]; ok {
				continue
			}
			inGroup[key] = struct{}{}
			unique = append(unique, t)
		}
		selected := unique
		if len(unique) > remaining {
			shuffled := append([]schema.TestCase(nil), unique...)
			rng.Shuffle(len(shuffled), func(i, j int) { shuffled[i], shuffled[j] = shuffled[j], shuffled[i] })
			selected = shuffled[:remaining]
		}
		for _, t := range selected {
			seen[t.TrimmedInput()] = struct{}{}
			suite = append(suite, t)
		}
		remaining = maxN - len(suite)
	}
	return suite
}

// Clone returns a deep, independent copy of the board.
func (b *TestsBoard) Clone() *TestsBoard {
	clone := &TestsBoard{
		Seed:            append([]schema.TestCase(nil), b.Seed...),
		Generated:       append([]schema.TestCase(nil), b.Generated...),
		Counterexamples: append([]schema.TestCase(nil), b.Counterexamples...),
		Minimized:       append([]schema.TestCase(nil), b.Minimized...),
		FailureMetadata: append([]schema.FailureRecord(nil), b.FailureMetadata...),
		RandSeed:        b.RandSeed,
	}
	return clone
}
