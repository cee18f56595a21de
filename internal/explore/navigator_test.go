package explore_test

import (
	"slices"
	"testing"

	"mirwalk/internal/explore"
)

// twoBlockModule is a minimal rendered module: bb0 -> bb1, bb1 terminal.
func twoBlockModule() *explore.Module {
	return &explore.Module{
		Name: "demo",
		Functions: []*explore.Function{
			{
				Name:      "demo::first",
				ShortName: "first",
				Blocks: []explore.Block{
					{ID: 0, Role: "entry", Edges: []explore.Edge{{To: 1, Kind: "normal"}}},
					{ID: 1, Role: "return"},
				},
			},
			{
				Name:      "demo::second",
				ShortName: "second",
				Blocks: []explore.Block{
					{ID: 0, Role: "entry", Edges: []explore.Edge{
						{To: 1, Kind: "branch", Label: "0"},
						{To: 2, Kind: "otherwise", Label: "else"},
					}},
					{ID: 1, Role: "return"},
					{ID: 2, Role: "panic"},
				},
			},
		},
	}
}

// TestNavigator_FollowAndStepBack tests the two-block walkthrough: follow
// reaches bb1 and step-back is its inverse.
func TestNavigator_FollowAndStepBack(t *testing.T) {
	nav := explore.NewNavigator(twoBlockModule())
	if got := nav.CurrentBlock(); got == nil || got.ID != 0 {
		t.Fatalf("start block = %+v, want bb0", got)
	}

	nav.Follow()
	if got := nav.CurrentBlock(); got == nil || got.ID != 1 {
		t.Fatalf("after Follow block = %+v, want bb1", got)
	}
	if !slices.Equal(nav.Path(), []int{0, 1}) {
		t.Fatalf("path = %v, want [0 1]", nav.Path())
	}

	nav.StepBack()
	if !slices.Equal(nav.Path(), []int{0}) {
		t.Fatalf("path after StepBack = %v, want [0]", nav.Path())
	}
}

// TestNavigator_EntryRetained tests that stepping back never drops the
// entry block.
func TestNavigator_EntryRetained(t *testing.T) {
	nav := explore.NewNavigator(twoBlockModule())
	nav.StepBack()
	nav.StepBack()
	if !slices.Equal(nav.Path(), []int{0}) {
		t.Fatalf("path = %v, want entry retained", nav.Path())
	}
}

// TestNavigator_FollowOnTerminalIsNoOp tests that terminal blocks ignore
// follow.
func TestNavigator_FollowOnTerminalIsNoOp(t *testing.T) {
	nav := explore.NewNavigator(twoBlockModule())
	nav.Follow()
	nav.Follow()
	if !slices.Equal(nav.Path(), []int{0, 1}) {
		t.Fatalf("path = %v, want [0 1] after follow on terminal", nav.Path())
	}
}

// TestNavigator_EdgeSelectionWraps tests select next/prev modulo the
// edge count.
func TestNavigator_EdgeSelectionWraps(t *testing.T) {
	nav := explore.NewNavigator(twoBlockModule())
	nav.SwitchTo("second")

	if nav.SelectedEdge() != 0 {
		t.Fatalf("SelectedEdge() = %d, want 0", nav.SelectedEdge())
	}
	nav.SelectNext()
	if nav.SelectedEdge() != 1 {
		t.Fatalf("SelectedEdge() = %d, want 1", nav.SelectedEdge())
	}
	nav.SelectNext()
	if nav.SelectedEdge() != 0 {
		t.Fatalf("SelectedEdge() = %d, want wrap to 0", nav.SelectedEdge())
	}
	nav.SelectPrev()
	if nav.SelectedEdge() != 1 {
		t.Fatalf("SelectedEdge() = %d, want wrap back to 1", nav.SelectedEdge())
	}
}

// TestNavigator_JumpTo tests that jumping sets the selection only; the
// current block moves when the edge is followed, not before.
func TestNavigator_JumpTo(t *testing.T) {
	nav := explore.NewNavigator(twoBlockModule())
	nav.SwitchTo("second")

	nav.JumpTo(1)
	if got := nav.CurrentBlock(); got == nil || got.ID != 0 {
		t.Fatalf("after JumpTo(1) block = %+v, want bb0 unchanged", got)
	}
	if nav.SelectedEdge() != 1 {
		t.Fatalf("SelectedEdge() = %d, want 1", nav.SelectedEdge())
	}
	nav.Follow()
	if got := nav.CurrentBlock(); got == nil || got.ID != 2 {
		t.Fatalf("after Follow block = %+v, want bb2", got)
	}

	nav.Reset()
	nav.JumpTo(5)
	if nav.SelectedEdge() != 0 || !slices.Equal(nav.Path(), []int{0}) {
		t.Fatalf("selected = %d path = %v, want no-op on out-of-range jump",
			nav.SelectedEdge(), nav.Path())
	}
}

// TestNavigator_ResetAfterWalk tests that reset returns to the entry.
func TestNavigator_ResetAfterWalk(t *testing.T) {
	nav := explore.NewNavigator(twoBlockModule())
	nav.Follow()
	nav.Reset()
	if !slices.Equal(nav.Path(), []int{0}) || nav.SelectedEdge() != 0 {
		t.Fatalf("after Reset path = %v selected = %d", nav.Path(), nav.SelectedEdge())
	}
}

// TestNavigator_CycleFunc tests function cycling in both directions with
// wraparound, resetting the path each time.
func TestNavigator_CycleFunc(t *testing.T) {
	nav := explore.NewNavigator(twoBlockModule())
	nav.Follow()

	nav.CycleFunc(1)
	if got := nav.Current(); got == nil || got.ShortName != "second" {
		t.Fatalf("Current() = %+v, want second", got)
	}
	if !slices.Equal(nav.Path(), []int{0}) {
		t.Fatalf("path = %v, want reset on function switch", nav.Path())
	}

	nav.CycleFunc(1)
	if got := nav.Current(); got == nil || got.ShortName != "first" {
		t.Fatalf("Current() = %+v, want wrap to first", got)
	}
	nav.CycleFunc(-1)
	if got := nav.Current(); got == nil || got.ShortName != "second" {
		t.Fatalf("Current() = %+v, want backward wrap to second", got)
	}
}

// TestNavigator_SwitchToUnknownIsNoOp tests silent handling of unknown
// function names.
func TestNavigator_SwitchToUnknownIsNoOp(t *testing.T) {
	nav := explore.NewNavigator(twoBlockModule())
	nav.Follow()
	nav.SwitchTo("nope")
	if got := nav.Current(); got == nil || got.ShortName != "first" {
		t.Fatalf("Current() = %+v, want unchanged", got)
	}
	if !slices.Equal(nav.Path(), []int{0, 1}) {
		t.Fatalf("path = %v, want unchanged", nav.Path())
	}
}

// TestNavigator_EmptyModule tests that every operation is a no-op on an
// empty module.
func TestNavigator_EmptyModule(t *testing.T) {
	nav := explore.NewNavigator(&explore.Module{Name: "empty"})
	nav.Follow()
	nav.StepBack()
	nav.SelectNext()
	nav.CycleFunc(1)
	nav.JumpTo(0)
	if got := nav.Current(); got != nil {
		t.Fatalf("Current() = %+v, want nil", got)
	}
	snap := nav.Snapshot()
	if snap.Function != "" || !slices.Equal(snap.Path, []int{0}) {
		t.Fatalf("Snapshot() = %+v", snap)
	}
}

// TestNavigator_Snapshot tests the serialized state.
func TestNavigator_Snapshot(t *testing.T) {
	nav := explore.NewNavigator(twoBlockModule())
	nav.Follow()
	snap := nav.Snapshot()
	if snap.Function != "first" || snap.FunctionIndex != 0 {
		t.Fatalf("Snapshot() = %+v, want first/0", snap)
	}
	if !slices.Equal(snap.Path, []int{0, 1}) || snap.SelectedEdge != 0 {
		t.Fatalf("Snapshot() = %+v", snap)
	}

	nav.CycleFunc(1)
	if snap := nav.Snapshot(); snap.FunctionIndex != 1 {
		t.Fatalf("Snapshot().FunctionIndex = %d, want 1", snap.FunctionIndex)
	}
}
