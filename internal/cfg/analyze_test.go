package cfg_test

import (
	"testing"

	"mirwalk/internal/cfg"
	"mirwalk/internal/mir"
)

func gotoBlock(id, target mir.BlockID) mir.Block {
	return mir.Block{
		ID:   id,
		Term: mir.Terminator{Kind: mir.TermGoto, Goto: mir.GotoTerm{Target: target}},
	}
}

func returnBlock(id mir.BlockID) mir.Block {
	return mir.Block{ID: id, Term: mir.Terminator{Kind: mir.TermReturn}}
}

// TestAnalyze_EntryRole tests that bb0 is classified as the entry even
// when other conditions also hold for it.
func TestAnalyze_EntryRole(t *testing.T) {
	// bb0 loops back to itself, which would otherwise make it a loop.
	f := &mir.Body{
		Name:   "entry_loop",
		Blocks: []mir.Block{gotoBlock(0, 0)},
	}
	info := cfg.Analyze(f)
	if got := info.Role(0); got != cfg.RoleEntry {
		t.Fatalf("bb0 role = %v, want entry", got)
	}
}

// TestAnalyze_LoopBeatsBranch tests that a block which both branches and
// participates in a cycle is classified as a loop.
func TestAnalyze_LoopBeatsBranch(t *testing.T) {
	// bb0 -> bb1, bb1 switches back to bb1's own cycle or exits:
	// bb1 -> {bb2, bb3}, bb2 -> bb1, bb3 returns.
	f := &mir.Body{
		Name: "loop_branch",
		Blocks: []mir.Block{
			gotoBlock(0, 1),
			{
				ID: 1,
				Term: mir.Terminator{
					Kind: mir.TermSwitchInt,
					SwitchInt: mir.SwitchIntTerm{
						Discr:     mir.Operand{Kind: mir.OperandCopy, Place: mir.Place{Local: 0}},
						Cases:     []mir.SwitchCase{{Value: 0, Target: 2}},
						Otherwise: 3,
					},
				},
			},
			gotoBlock(2, 1),
			returnBlock(3),
		},
		Locals: []mir.Local{{Name: "c"}},
	}
	info := cfg.Analyze(f)
	if got := info.Role(1); got != cfg.RoleLoop {
		t.Fatalf("bb1 role = %v, want loop", got)
	}
	if got := info.Role(2); got != cfg.RoleLoop {
		t.Fatalf("bb2 role = %v, want loop", got)
	}
	if got := info.Role(3); got != cfg.RoleReturn {
		t.Fatalf("bb3 role = %v, want return", got)
	}
}

// TestAnalyze_CleanupBeatsLoop tests that an unwind target is cleanup
// even when it is part of a cycle.
func TestAnalyze_CleanupBeatsLoop(t *testing.T) {
	f := &mir.Body{
		Name: "cleanup",
		Blocks: []mir.Block{
			{
				ID: 0,
				Term: mir.Terminator{
					Kind: mir.TermCall,
					Call: mir.CallTerm{
						Func:   mir.Operand{Kind: mir.OperandConst, Const: mir.Const{Kind: mir.ConstZeroSized, Fn: 7}},
						Dest:   mir.Place{Local: mir.NoLocalID},
						Target: 1,
						Unwind: 2,
					},
				},
			},
			returnBlock(1),
			{ID: 2, Term: mir.Terminator{Kind: mir.TermResume}},
		},
	}
	info := cfg.Analyze(f)
	if got := info.Role(2); got != cfg.RoleCleanup {
		t.Fatalf("bb2 role = %v, want cleanup", got)
	}
	if got := info.Role(1); got != cfg.RoleReturn {
		t.Fatalf("bb1 role = %v, want return", got)
	}
}

// TestAnalyze_PanicRole tests diverging blocks that are not unwind
// targets.
func TestAnalyze_PanicRole(t *testing.T) {
	f := &mir.Body{
		Name: "panics",
		Blocks: []mir.Block{
			gotoBlock(0, 1),
			{ID: 1, Term: mir.Terminator{Kind: mir.TermAbort}},
		},
	}
	info := cfg.Analyze(f)
	if got := info.Role(1); got != cfg.RolePanic {
		t.Fatalf("bb1 role = %v, want panic", got)
	}
}

// TestAnalyze_MergeRole tests that a straight-line block with two
// predecessors is a merge point.
func TestAnalyze_MergeRole(t *testing.T) {
	f := &mir.Body{
		Name: "merge",
		Blocks: []mir.Block{
			{
				ID: 0,
				Term: mir.Terminator{
					Kind: mir.TermSwitchInt,
					SwitchInt: mir.SwitchIntTerm{
						Discr:     mir.Operand{Kind: mir.OperandCopy, Place: mir.Place{Local: 0}},
						Cases:     []mir.SwitchCase{{Value: 0, Target: 1}},
						Otherwise: 2,
					},
				},
			},
			gotoBlock(1, 3),
			gotoBlock(2, 3),
			gotoBlock(3, 4),
			returnBlock(4),
		},
		Locals: []mir.Local{{Name: "c"}},
	}
	info := cfg.Analyze(f)
	if got := info.Role(0); got != cfg.RoleEntry {
		t.Fatalf("bb0 role = %v, want entry", got)
	}
	if got := info.Role(3); got != cfg.RoleMerge {
		t.Fatalf("bb3 role = %v, want merge; preds=%v", got, info.Preds[3])
	}
	if len(info.Preds[3]) != 2 {
		t.Fatalf("bb3 preds = %v, want two", info.Preds[3])
	}
}

// TestAnalyze_NormalRole tests that a straight-line block with a single
// predecessor and a single successor stays normal.
func TestAnalyze_NormalRole(t *testing.T) {
	f := &mir.Body{
		Name: "straight",
		Blocks: []mir.Block{
			gotoBlock(0, 1),
			gotoBlock(1, 2),
			returnBlock(2),
		},
	}
	info := cfg.Analyze(f)
	if got := info.Role(1); got != cfg.RoleNormal {
		t.Fatalf("bb1 role = %v, want normal", got)
	}
}

// TestAnalyze_NoSelfPathIsNotLoop tests that reachability of other
// cycles does not mark a block as a loop.
func TestAnalyze_NoSelfPathIsNotLoop(t *testing.T) {
	// bb1 leads into a bb2<->bb3 cycle but never back to itself.
	f := &mir.Body{
		Name: "feeds_cycle",
		Blocks: []mir.Block{
			gotoBlock(0, 1),
			gotoBlock(1, 2),
			gotoBlock(2, 3),
			gotoBlock(3, 2),
		},
	}
	info := cfg.Analyze(f)
	if got := info.Role(1); got == cfg.RoleLoop {
		t.Fatalf("bb1 role = loop, want non-loop")
	}
	if got := info.Role(2); got != cfg.RoleLoop {
		t.Fatalf("bb2 role = %v, want loop", got)
	}
	if got := info.Role(3); got != cfg.RoleLoop {
		t.Fatalf("bb3 role = %v, want loop", got)
	}
}
