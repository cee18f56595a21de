package explore_test

import (
	"context"
	"testing"

	"mirwalk/internal/explore"
	"mirwalk/internal/mir"
	"mirwalk/internal/render"
)

// fixtureModule builds a module with one recursive function:
// bb0 creates a borrow and calls itself, bb1 loops back to bb0's
// switch... kept small but exercising roles, borrows, and notes.
func fixtureModule() *mir.Module {
	return &mir.Module{
		Name: "demo",
		Funcs: []*mir.Body{
			{
				Fn:   0,
				Name: "demo::walk",
				Span: 0,
				Locals: []mir.Local{
					{Name: "x", Type: 0, Mutable: true},
					{Name: "r", Type: 1},
				},
				Blocks: []mir.Block{
					{
						ID: 0,
						Stmts: []mir.Statement{
							{Kind: mir.StmtStorageLive, StorageLocal: 1, Span: 1},
							{
								Kind: mir.StmtAssign,
								Span: 1,
								Assign: mir.AssignStmt{
									Dst: mir.Place{Local: 1},
									Src: mir.RValue{
										Kind: mir.RValueRef,
										Ref:  mir.RefRValue{Kind: mir.BorrowShared, Place: mir.Place{Local: 0}},
									},
								},
							},
							{Kind: mir.StmtStorageDead, StorageLocal: 1, Span: 2},
						},
						Term: mir.Terminator{
							Kind: mir.TermCall,
							Span: 2,
							Call: mir.CallTerm{
								Func:   mir.Operand{Kind: mir.OperandConst, Const: mir.Const{Kind: mir.ConstZeroSized, Fn: 0}},
								Dest:   mir.Place{Local: mir.NoLocalID},
								Target: 1,
								Unwind: mir.NoBlockID,
							},
						},
					},
					{ID: 1, Term: mir.Terminator{Kind: mir.TermReturn, Span: 2}},
				},
			},
		},
		Meta: mir.Metadata{
			Types: []mir.TypeMeta{{ID: 0, Name: "i32"}, {ID: 1, Name: "&i32"}},
			Spans: []mir.SpanMeta{
				{ID: 0, File: "demo.rs", LineStart: 1, ColStart: 1, LineEnd: 9, ColEnd: 2},
				{ID: 1, File: "demo.rs", LineStart: 3, ColStart: 5, LineEnd: 3, ColEnd: 18},
				{ID: 2, File: "demo.rs", LineStart: 8, ColStart: 1, LineEnd: 8, ColEnd: 2},
			},
			Funcs: []mir.FnSymbol{{ID: 0, Kind: mir.FnSymNormal, Name: "demo::walk"}},
		},
	}
}

func TestBuild_Function(t *testing.T) {
	m := fixtureModule()
	rc := render.NewContext(m, render.Options{})
	out, err := explore.Build(context.Background(), m, rc)
	if err != nil {
		t.Fatalf("Build() error = %v", err)
	}
	if len(out.Functions) != 1 {
		t.Fatalf("len(Functions) = %d, want 1", len(out.Functions))
	}
	fn := out.Functions[0]

	if fn.ShortName != "walk" {
		t.Errorf("ShortName = %q, want walk", fn.ShortName)
	}
	if fn.Span != "demo.rs:1:1" {
		t.Errorf("Span = %q, want demo.rs:1:1", fn.Span)
	}

	if len(fn.Blocks) != 2 {
		t.Fatalf("len(Blocks) = %d, want 2", len(fn.Blocks))
	}
	if fn.Blocks[0].Role != "entry" || fn.Blocks[1].Role != "return" {
		t.Errorf("roles = %q/%q, want entry/return", fn.Blocks[0].Role, fn.Blocks[1].Role)
	}
	if len(fn.Blocks[0].Preds) != 0 {
		t.Errorf("entry preds = %v, want none", fn.Blocks[0].Preds)
	}
	if len(fn.Blocks[1].Preds) != 1 || fn.Blocks[1].Preds[0] != 0 {
		t.Errorf("bb1 preds = %v, want [0]", fn.Blocks[1].Preds)
	}

	// The borrow is discovered, labeled, and live at its creation.
	if len(fn.Borrows) != 1 {
		t.Fatalf("len(Borrows) = %d, want 1", len(fn.Borrows))
	}
	br := fn.Borrows[0]
	if br.Label != "'b0" || br.Kind != "shared" || br.Borrower != "r" || br.Borrowed != "x" {
		t.Errorf("borrow = %+v", br)
	}
	live := fn.Blocks[0].Stmts[1].LiveBorrows
	if len(live) != 1 || live[0] != 0 {
		t.Errorf("LiveBorrows at creation = %v, want [0]", live)
	}

	// The self-call is annotated and flips the recursion property.
	if note := fn.Blocks[0].Term.Note; note != "recursive call to walk" {
		t.Errorf("Term.Note = %q, want recursive call to walk", note)
	}
	if !fn.Properties.Recursive {
		t.Error("Properties.Recursive = false, want true")
	}
	if fn.Properties.Blocks != 2 || fn.Properties.Loops != 0 {
		t.Errorf("Properties = %+v", fn.Properties)
	}

	// Locals carry resolved types and lexical scopes.
	if fn.Locals[0].Type != "i32" || !fn.Locals[0].Mutable {
		t.Errorf("Locals[0] = %+v", fn.Locals[0])
	}
	if fn.Locals[1].Scope != "lines 3-8" {
		t.Errorf("Locals[1].Scope = %q, want lines 3-8", fn.Locals[1].Scope)
	}
	// x has no storage markers.
	if fn.Locals[0].Scope != "no source range available" {
		t.Errorf("Locals[0].Scope = %q, want fallback", fn.Locals[0].Scope)
	}

	// Edges carry kinds and labels from the terminator.
	edges := fn.Blocks[0].Edges
	if len(edges) != 1 || edges[0].To != 1 || edges[0].Kind != "normal" || edges[0].Label != "return" {
		t.Errorf("edges = %+v", edges)
	}
}
