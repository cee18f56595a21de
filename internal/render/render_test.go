package render_test

import (
	"strings"
	"testing"

	"mirwalk/internal/mir"
	"mirwalk/internal/render"
)

func demoContext(opts render.Options) *render.Context {
	m := &mir.Module{
		Meta: mir.Metadata{
			Types: []mir.TypeMeta{{ID: 0, Name: "i32"}, {ID: 1, Name: "&str"}},
			Allocs: []mir.AllocMeta{
				{ID: 0, Kind: mir.AllocMemory, Type: 1, Bytes: []byte("hi"), Refs: []mir.AllocID{1}},
				{ID: 1, Kind: mir.AllocStatic, Name: "GREETING"},
			},
			Spans: []mir.SpanMeta{{ID: 0, File: "a/b.rs", LineStart: 2, ColStart: 1, LineEnd: 2, ColEnd: 5}},
			Funcs: []mir.FnSymbol{{ID: 0, Kind: mir.FnSymNormal, Name: "demo::helper"}},
		},
	}
	return render.NewContext(m, opts)
}

func demoBody() *mir.Body {
	return &mir.Body{
		Fn:   3,
		Name: "demo::main",
		Locals: []mir.Local{
			{Name: "x", Type: 0},
			{Name: "", Type: 0},
			{Name: "idx", Type: 0},
		},
	}
}

// TestPlace_Projections tests the nesting order of projection rendering.
func TestPlace_Projections(t *testing.T) {
	c := demoContext(render.Options{})
	f := demoBody()

	p := mir.Place{Local: 0, Proj: []mir.PlaceProj{
		{Kind: mir.PlaceProjDeref},
		{Kind: mir.PlaceProjField, FieldIdx: 2},
		{Kind: mir.PlaceProjIndex, IndexLocal: 2},
	}}
	if got := c.Place(f, p); got != "(*x).2[idx]" {
		t.Fatalf("Place() = %q, want (*x).2[idx]", got)
	}
	// Unnamed locals fall back to positional names.
	if got := c.Place(f, mir.Place{Local: 1}); got != "_1" {
		t.Fatalf("Place() = %q, want _1", got)
	}
}

// TestConst_NumericAndString tests little-endian decoding and allocation
// provenance in constant rendering.
func TestConst_NumericAndString(t *testing.T) {
	c := demoContext(render.Options{})

	num := mir.Const{Kind: mir.ConstBytes, Type: 0, Bytes: []byte{0x07, 0x01}}
	if got := c.Const(num); got != "const i32 = 263" {
		t.Fatalf("Const(num) = %q, want const i32 = 263", got)
	}

	allocated := mir.Const{Kind: mir.ConstAllocated, Type: 1, Refs: []mir.AllocID{0}}
	got := c.Const(allocated)
	if !strings.Contains(got, `"hi"`) || !strings.Contains(got, "static GREETING") {
		t.Fatalf("Const(allocated) = %q, want provenance chain", got)
	}

	fnConst := mir.Const{Kind: mir.ConstZeroSized, Type: 0, Fn: 0}
	if got := c.Const(fnConst); got != "helper" {
		t.Fatalf("Const(fn) = %q, want helper", got)
	}
}

// TestStmt_Rendering tests representative statement forms.
func TestStmt_Rendering(t *testing.T) {
	c := demoContext(render.Options{})
	f := demoBody()

	st := mir.Statement{
		Kind: mir.StmtAssign,
		Assign: mir.AssignStmt{
			Dst: mir.Place{Local: 0},
			Src: mir.RValue{
				Kind: mir.RValueBinaryOp,
				Binary: mir.BinaryOpRValue{
					Op:    mir.BinAdd,
					Left:  mir.Operand{Kind: mir.OperandCopy, Place: mir.Place{Local: 0}},
					Right: mir.Operand{Kind: mir.OperandConst, Const: mir.Const{Kind: mir.ConstBytes, Type: 0, Bytes: []byte{1}}},
				},
			},
		},
	}
	if got := c.Stmt(f, &st); got != "x = x + const i32 = 1" {
		t.Fatalf("Stmt() = %q", got)
	}

	live := mir.Statement{Kind: mir.StmtStorageLive, StorageLocal: 0}
	if got := c.Stmt(f, &live); got != "StorageLive(x)" {
		t.Fatalf("Stmt() = %q, want StorageLive(x)", got)
	}
}

// TestStmt_SpanSuffix tests the optional source-location suffix.
func TestStmt_SpanSuffix(t *testing.T) {
	c := demoContext(render.Options{ShowSpans: true})
	f := demoBody()
	st := mir.Statement{Kind: mir.StmtNop, Span: 0}
	if got := c.Stmt(f, &st); got != "nop  // b.rs:2:1" {
		t.Fatalf("Stmt() = %q, want span suffix", got)
	}
}

// TestTerm_Call tests call rendering with destination and move args.
func TestTerm_Call(t *testing.T) {
	c := demoContext(render.Options{})
	f := demoBody()
	term := mir.Terminator{
		Kind: mir.TermCall,
		Call: mir.CallTerm{
			Func:   mir.Operand{Kind: mir.OperandConst, Const: mir.Const{Kind: mir.ConstZeroSized, Fn: 0}},
			Args:   []mir.Operand{{Kind: mir.OperandMove, Place: mir.Place{Local: 0}}},
			Dest:   mir.Place{Local: 2},
			Target: 1,
		},
	}
	if got := c.Term(f, &term); got != "idx = helper(move x)" {
		t.Fatalf("Term() = %q", got)
	}
}

// TestIsRecursiveCall tests self-call detection against the enclosing
// function ID.
func TestIsRecursiveCall(t *testing.T) {
	c := demoContext(render.Options{})
	f := demoBody()

	self := mir.Terminator{
		Kind: mir.TermCall,
		Call: mir.CallTerm{
			Func: mir.Operand{Kind: mir.OperandConst, Const: mir.Const{Kind: mir.ConstZeroSized, Fn: 3}},
		},
	}
	if !c.IsRecursiveCall(f, &self) {
		t.Error("IsRecursiveCall(self) = false, want true")
	}
	other := mir.Terminator{
		Kind: mir.TermCall,
		Call: mir.CallTerm{
			Func: mir.Operand{Kind: mir.OperandConst, Const: mir.Const{Kind: mir.ConstZeroSized, Fn: 0}},
		},
	}
	if c.IsRecursiveCall(f, &other) {
		t.Error("IsRecursiveCall(other) = true, want false")
	}
}

// TestAllocsUsed tests the transitive allocation legend.
func TestAllocsUsed(t *testing.T) {
	c := demoContext(render.Options{})
	f := demoBody()
	f.Blocks = []mir.Block{
		{
			ID: 0,
			Stmts: []mir.Statement{
				{
					Kind: mir.StmtAssign,
					Assign: mir.AssignStmt{
						Dst: mir.Place{Local: 0},
						Src: mir.RValue{
							Kind: mir.RValueUse,
							Use: mir.Operand{
								Kind:  mir.OperandConst,
								Const: mir.Const{Kind: mir.ConstAllocated, Type: 1, Refs: []mir.AllocID{0}},
							},
						},
					},
				},
			},
			Term: mir.Terminator{Kind: mir.TermReturn},
		},
	}
	entries := c.AllocsUsed(f)
	if len(entries) != 2 {
		t.Fatalf("len(AllocsUsed) = %d, want 2 (transitive)", len(entries))
	}
	if entries[0].ID != 0 || entries[1].ID != 1 {
		t.Fatalf("AllocsUsed order = %d,%d, want 0,1", entries[0].ID, entries[1].ID)
	}
}
