package board

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/minnanWei/ARIADNE/internal/schema"
)

func TestPatchBoardCanApplyDependenciesAndConflicts(t *testing.T) {
	b := NewPatchBoard()
	b.ProposePatch(schema.Patch{ID: "a"})
	b.ProposePatch(schema.Patch{ID: "b", Dependencies: []string{"a"}})
	b.ProposePatch(schema.Patch{ID: "c", Conflicts: []string{"a"}})

	ok, _ := b.CanApply("b", map[string]struct{}{})
	assert.False(t, ok, "b depends on a, should not apply without it")

	ok, _ = b.CanApply("b", map[string]struct{}{"a": {}})
	assert.True(t, ok, "b should apply once a is selected")

	ok, _ = b.CanApply("c", map[string]struct{}{"a": {}})
	assert.False(t, ok, "c conflicts with a, should not apply")

	ok, _ = b.CanApply("missing", map[string]struct{}{})
	assert.False(t, ok, "unknown patch must not apply")
}

func TestPatchBoardSelectPatchSubsetRespectsConstraints(t *testing.T) {
	b := NewPatchBoard()
	b.ProposePatch(schema.Patch{ID: "high", SuccessProb: 0.9, Cost: 0.1, Risk: 0.1})
	b.ProposePatch(schema.Patch{ID: "conflicting", SuccessProb: 0.95, Cost: 0.1, Risk: 0.1, Conflicts: []string{"high"}})
	b.ProposePatch(schema.Patch{ID: "low", SuccessProb: 0.2, Cost: 0.5, Risk: 0.5})

	selected := b.SelectPatchSubset(2, 1, 1, 1)
	require.Len(t, selected, 2)

	ids := map[string]bool{}
	for _, p := range selected {
		ids[p.ID] = true
	}
	assert.False(t, ids["high"] && ids["conflicting"], "conflicting patches must not both be selected")
}

func TestPatchBoardSelectPatchSubsetEnforcesSymmetricConflicts(t *testing.T) {
	b := NewPatchBoard()
	b.ProposePatch(schema.Patch{ID: "A", SuccessProb: 0.9, Cost: 0.1, Risk: 0.1})
	b.ProposePatch(schema.Patch{ID: "B", Dependencies: []string{"A"}, SuccessProb: 0.8, Cost: 0.1, Risk: 0.1})
	b.ProposePatch(schema.Patch{ID: "C", Conflicts: []string{"A"}, SuccessProb: 0.95, Cost: 0.1, Risk: 0.1})

	selected := b.SelectPatchSubset(2, 1, 1, 1)
	require.Len(t, selected, 1, "A is blocked by C's declared conflict even though A itself declares none")
	assert.Equal(t, "C", selected[0].ID)
}

func TestPatchBoardSelectPatchSubsetBudgetZero(t *testing.T) {
	b := NewPatchBoard()
	b.ProposePatch(schema.Patch{ID: "a", SuccessProb: 0.9})
	selected := b.SelectPatchSubset(0, 1, 1, 1)
	assert.Empty(t, selected, "zero budget must select nothing")
}

func TestPatchBoardRecordPatchOutcome(t *testing.T) {
	b := NewPatchBoard()
	b.RecordPatchOutcome("p1", true, schema.Diagnostic{})
	b.RecordPatchOutcome("p2", false, schema.Diagnostic{Status: schema.StatusWA})

	require.Len(t, b.AppliedPatchHistory, 1)
	assert.Equal(t, "p1", b.AppliedPatchHistory[0])
	assert.Equal(t, string(schema.StatusWA), b.RejectedPatches["p2"])
}

func TestPatchBoardCloneIsolation(t *testing.T) {
	b := NewPatchBoard()
	b.ProposePatch(schema.Patch{ID: "a"})
	clone := b.Clone()
	clone.ProposePatch(schema.Patch{ID: "b"})

	_, ok := b.Patches["b"]
	assert.False(t, ok, "mutating clone must not affect original")
}
