package mir_test

import (
	"strings"
	"testing"

	"mirwalk/internal/mir"
)

// TestValidate_WellFormed tests that a small well-formed body passes.
func TestValidate_WellFormed(t *testing.T) {
	f := &mir.Body{
		Name:   "ok",
		Locals: []mir.Local{{Name: "x"}},
		Blocks: []mir.Block{
			{
				ID: 0,
				Stmts: []mir.Statement{
					{Kind: mir.StmtStorageLive, StorageLocal: 0},
					{
						Kind: mir.StmtAssign,
						Assign: mir.AssignStmt{
							Dst: mir.Place{Local: 0},
							Src: mir.RValue{
								Kind: mir.RValueUse,
								Use: mir.Operand{
									Kind:  mir.OperandConst,
									Const: mir.Const{Kind: mir.ConstBytes, Bytes: []byte{1}},
								},
							},
						},
					},
					{Kind: mir.StmtStorageDead, StorageLocal: 0},
				},
				Term: mir.Terminator{Kind: mir.TermReturn},
			},
		},
	}
	if err := mir.ValidateBody(f); err != nil {
		t.Fatalf("ValidateBody() = %v, want nil", err)
	}
}

// TestValidate_EmptyBody tests that a body without blocks is rejected.
func TestValidate_EmptyBody(t *testing.T) {
	err := mir.ValidateBody(&mir.Body{Name: "empty"})
	if err == nil || !strings.Contains(err.Error(), "bb0") {
		t.Fatalf("ValidateBody() = %v, want entry error", err)
	}
}

// TestValidate_Unterminated tests that a block without a terminator is
// rejected.
func TestValidate_Unterminated(t *testing.T) {
	f := &mir.Body{
		Name:   "open",
		Blocks: []mir.Block{{ID: 0}},
	}
	err := mir.ValidateBody(f)
	if err == nil || !strings.Contains(err.Error(), "unterminated") {
		t.Fatalf("ValidateBody() = %v, want unterminated error", err)
	}
}

// TestValidate_BadEdgeTarget tests that out-of-range edge targets are
// rejected with the offending block named.
func TestValidate_BadEdgeTarget(t *testing.T) {
	f := &mir.Body{
		Name: "dangling",
		Blocks: []mir.Block{
			{ID: 0, Term: mir.Terminator{Kind: mir.TermGoto, Goto: mir.GotoTerm{Target: 5}}},
		},
	}
	err := mir.ValidateBody(f)
	if err == nil || !strings.Contains(err.Error(), "bb5 does not exist") {
		t.Fatalf("ValidateBody() = %v, want dangling edge error", err)
	}
}

// TestValidate_DuplicateSwitchCase tests duplicate case values.
func TestValidate_DuplicateSwitchCase(t *testing.T) {
	f := &mir.Body{
		Name:   "dupes",
		Locals: []mir.Local{{Name: "c"}},
		Blocks: []mir.Block{
			{
				ID: 0,
				Term: mir.Terminator{
					Kind: mir.TermSwitchInt,
					SwitchInt: mir.SwitchIntTerm{
						Discr:     mir.Operand{Kind: mir.OperandCopy, Place: mir.Place{Local: 0}},
						Cases:     []mir.SwitchCase{{Value: 1, Target: 1}, {Value: 1, Target: 1}},
						Otherwise: 1,
					},
				},
			},
			{ID: 1, Term: mir.Terminator{Kind: mir.TermReturn}},
		},
	}
	err := mir.ValidateBody(f)
	if err == nil || !strings.Contains(err.Error(), "duplicate case") {
		t.Fatalf("ValidateBody() = %v, want duplicate case error", err)
	}
}

// TestValidate_UnknownLocal tests that statements naming missing locals
// are rejected.
func TestValidate_UnknownLocal(t *testing.T) {
	f := &mir.Body{
		Name: "ghost",
		Blocks: []mir.Block{
			{
				ID: 0,
				Stmts: []mir.Statement{
					{Kind: mir.StmtStorageLive, StorageLocal: 3},
				},
				Term: mir.Terminator{Kind: mir.TermReturn},
			},
		},
	}
	err := mir.ValidateBody(f)
	if err == nil || !strings.Contains(err.Error(), "_3 does not exist") {
		t.Fatalf("ValidateBody() = %v, want unknown local error", err)
	}
}

// TestValidate_ModuleAggregatesErrors tests that module validation names
// the failing function.
func TestValidate_ModuleAggregatesErrors(t *testing.T) {
	m := &mir.Module{
		Name: "demo",
		Funcs: []*mir.Body{
			{Name: "good", Blocks: []mir.Block{{ID: 0, Term: mir.Terminator{Kind: mir.TermReturn}}}},
			{Name: "bad"},
		},
	}
	err := mir.Validate(m)
	if err == nil || !strings.Contains(err.Error(), "function bad") {
		t.Fatalf("Validate() = %v, want error naming function bad", err)
	}
}
