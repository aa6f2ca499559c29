package board

import (
	"sort"

	"github.com/minnanWei/ARIADNE/internal/schema"
)

// PatchBoard tracks proposed patches, the accepted-patch history, and
// rejections.
type PatchBoard struct {
	Patches             map[string]schema.Patch
	AppliedPatchHistory []string
	RejectedPatches     map[string]string
}

// NewPatchBoard returns an empty board.
func NewPatchBoard() *PatchBoard {
	return &PatchBoard{
		Patches:         make(map[string]schema.Patch),
		RejectedPatches: make(map[string]string),
	}
}

// ProposePatch registers patch if its id is not already known. Re-proposing
// an existing id is a no-op: the original proposal wins.
func (b *PatchBoard) ProposePatch(patch schema.Patch) {
	if _, ok := b.Patches[patch.ID]; !ok {
		b.Patches[patch.ID] = patch
	}
}

// CanApply reports whether patchID's dependencies are all satisfied by
// alreadySelected and none of its conflicts are present there. Conflicts are
// treated as symmetric: patchID is also blocked if it appears in the
// conflicts list of any already-selected patch, even if patchID does not
// declare the reverse conflict itself.
func (b *PatchBoard) CanApply(patchID string, alreadySelected map[string]struct{}) (bool, string) {
	patch, ok := b.Patches[patchID]
	if !ok {
		return false, "unknown patch"
	}
	for _, dep := range patch.Dependencies {
		if _, ok := alreadySelected[dep]; !ok {
			return false, "missing dependency " + dep
		}
	}
	for _, conflict := range patch.Conflicts {
		if _, ok := alreadySelected[conflict]; ok {
			return false, "conflict with " + conflict
		}
	}
	for selectedID := range alreadySelected {
		if selected, ok := b.Patches[selectedID]; ok {
			for _, conflict := range selected.Conflicts {
				if conflict == patchID {
					return false, "conflict with " + selectedID
				}
			}
		}
	}
	return true, "ok"
}

// SelectPatchSubset greedily selects up to budgetK patches, scored by
// w1*successProb - w2*cost - w3*risk, highest score first, skipping any
// patch whose dependencies/conflicts are not satisfied by the selection
// made so far. Ties break on patch id for determinism.
func (b *PatchBoard) SelectPatchSubset(budgetK int, w1, w2, w3 float64) []schema.Patch {
	ids := make([]string, 0, len(b.Patches))
	for id := range b.Patches {
		ids = append(ids, id)
	}
	sort.Strings(ids)

	type scoredPatch struct {
		score float64
		patch schema.Patch
	}
	scored := make([]scoredPatch, 0, len(ids))
	for _, id := range ids {
		patch := b.Patches[id]
		score := w1*patch.SuccessProb - w2*patch.Cost - w3*patch.Risk
		scored = append(scored, scoredPatch{score: score, patch: patch})
	}
	sort.SliceStable(scored, func(i, j int) bool {
		return scored[i].score > scored[j].score
	})

	selected := make([]schema.Patch, 0, budgetK)
	selectedIDs := make(map[string]struct{})
	for _, sp := range scored {
		if len(selected) >= budgetK {
			break
		}
		ok, _ := b.CanApply(sp.patch.ID, selectedIDs)
		if ok {
			selected = append(selected, sp.patch)
			selectedIDs[sp.patch.ID] = struct{}{}
		}
	}
	return selected
}

// RecordPatchOutcome appends patchID to AppliedPatchHistory on success, or
// records diag's status as the rejection reason on failure.
func (b *PatchBoard) RecordPatchOutcome(patchID string, success bool, diag schema.Diagnostic) {
	if success {
		b.AppliedPatchHistory = append(b.AppliedPatchHistory, patchID)
		return
	}
	b.RejectedPatches[patchID] = string(diag.Status)
}

// Clone returns a deep, independent copy of the board.
func (b *PatchBoard) Clone() *PatchBoard {
	clone := &PatchBoard{
		Patches:             make(map[string]schema.Patch, len(b.Patches)),
		AppliedPatchHistory: append([]string(nil), b.AppliedPatchHistory...),
		RejectedPatches:     make(map[string]string, len(b.RejectedPatches)),
	}
	for k, v := range b.Patches {
		clone.Patches[k] = v
	}
	for k, v := range b.RejectedPatches {
		clone.RejectedPatches[k] = v
	}
	return clone
}
