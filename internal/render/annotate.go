package render

import (
	"slices"

	"mirwalk/internal/index"
	"mirwalk/internal/mir"
)

// AnnotateStmt returns a short human explanation of a statement, or ""
// when the rendered form already says everything.
func (c *Context) AnnotateStmt(f *mir.Body, st *mir.Statement) string {
	switch st.Kind {
	case mir.StmtAssign:
		return c.annotateRValue(f, &st.Assign.Src)
	case mir.StmtStorageLive:
		return "stack slot comes into scope for " + LocalName(f, st.StorageLocal)
	case mir.StmtStorageDead:
		return "stack slot goes out of scope for " + LocalName(f, st.StorageLocal)
	case mir.StmtSetDiscriminant:
		return "selects the active enum variant"
	default:
		return ""
	}
}

func (c *Context) annotateRValue(f *mir.Body, rv *mir.RValue) string {
	switch rv.Kind {
	case mir.RValueRef:
		target := c.Place(f, rv.Ref.Place)
		switch rv.Ref.Kind {
		case mir.BorrowMut:
			return "creates mutable reference to " + target
		case mir.BorrowShallow:
			return "creates shallow reference to " + target
		default:
			return "creates shared reference to " + target
		}
	case mir.RValueCheckedBinaryOp:
		return rv.Binary.Op.Name() + " with overflow check"
	case mir.RValueBinaryOp:
		return rv.Binary.Op.Name()
	case mir.RValueCast:
		return "converts to " + c.Types.Name(rv.Cast.Type)
	case mir.RValueDiscriminant:
		return "reads the active enum variant"
	case mir.RValueAggregate:
		return "builds a composite value"
	default:
		return ""
	}
}

// AnnotateTerm returns a short human explanation of a terminator.
// Self-calls are pointed out explicitly since they are easy to miss in a
// mangled call operand.
func (c *Context) AnnotateTerm(f *mir.Body, t *mir.Terminator) string {
	switch t.Kind {
	case mir.TermSwitchInt:
		return "branches on " + c.Operand(f, t.SwitchInt.Discr)
	case mir.TermDrop:
		return "drops " + c.Place(f, t.Drop.Place) + ", running its destructor"
	case mir.TermCall:
		if c.IsRecursiveCall(f, t) {
			return "recursive call to " + index.ShortFnName(f.Name)
		}
		if name, ok := c.callTargetName(t); ok {
			return "calls " + name
		}
		return "indirect call"
	case mir.TermAssert:
		return "runtime check, panics when it fails"
	case mir.TermResume:
		return "continues unwinding into the caller"
	case mir.TermAbort:
		return "terminates the process"
	case mir.TermUnreachable:
		return "never reached at runtime"
	default:
		return ""
	}
}

func (c *Context) callTargetName(t *mir.Terminator) (string, bool) {
	fn, ok := callTargetFn(t)
	if !ok {
		return "", false
	}
	return c.Funcs.ShortName(fn), true
}

func callTargetFn(t *mir.Terminator) (mir.FnID, bool) {
	op := t.Call.Func
	if op.Kind != mir.OperandConst || op.Const.Kind != mir.ConstZeroSized || op.Const.Fn == mir.NoFnID {
		return mir.NoFnID, false
	}
	return op.Const.Fn, true
}

// IsRecursiveCall reports whether the call terminator targets the
// enclosing function itself.
func (c *Context) IsRecursiveCall(f *mir.Body, t *mir.Terminator) bool {
	if t.Kind != mir.TermCall {
		return false
	}
	fn, ok := callTargetFn(t)
	return ok && fn == f.Fn
}

// AllocsUsed collects the allocation entries referenced anywhere in the
// body, ordered by ID, for a per-function legend.
func (c *Context) AllocsUsed(f *mir.Body) []*index.AllocEntry {
	seen := make(map[mir.AllocID]struct{})
	visitOperand := func(op *mir.Operand) {
		if op.Kind != mir.OperandConst {
			return
		}
		for _, ref := range op.Const.Refs {
			c.collectAlloc(ref, seen)
		}
	}

	for bi := range f.Blocks {
		bb := &f.Blocks[bi]
		for si := range bb.Stmts {
			st := &bb.Stmts[si]
			if st.Kind != mir.StmtAssign {
				continue
			}
			for _, op := range rvalueOperands(&st.Assign.Src) {
				visitOperand(op)
			}
		}
		t := &bb.Term
		switch t.Kind {
		case mir.TermSwitchInt:
			visitOperand(&t.SwitchInt.Discr)
		case mir.TermCall:
			visitOperand(&t.Call.Func)
			for i := range t.Call.Args {
				visitOperand(&t.Call.Args[i])
			}
		case mir.TermAssert:
			visitOperand(&t.Assert.Cond)
		}
	}

	out := make([]*index.AllocEntry, 0, len(seen))
	for id := range seen {
		if e, ok := c.Allocs.Get(id); ok {
			out = append(out, e)
		}
	}
	slices.SortFunc(out, func(a, b *index.AllocEntry) int {
		return int(a.ID) - int(b.ID)
	})
	return out
}

// collectAlloc adds an allocation and its provenance closure. The visited
// set bounds the walk on cyclic allocation graphs.
func (c *Context) collectAlloc(id mir.AllocID, seen map[mir.AllocID]struct{}) {
	if _, ok := seen[id]; ok {
		return
	}
	seen[id] = struct{}{}
	if e, ok := c.Allocs.Get(id); ok {
		for _, ref := range e.Refs {
			c.collectAlloc(ref, seen)
		}
	}
}

func rvalueOperands(rv *mir.RValue) []*mir.Operand {
	switch rv.Kind {
	case mir.RValueUse:
		return []*mir.Operand{&rv.Use}
	case mir.RValueUnaryOp:
		return []*mir.Operand{&rv.Unary.Operand}
	case mir.RValueBinaryOp, mir.RValueCheckedBinaryOp:
		return []*mir.Operand{&rv.Binary.Left, &rv.Binary.Right}
	case mir.RValueCast:
		return []*mir.Operand{&rv.Cast.Operand}
	case mir.RValueRepeat:
		return []*mir.Operand{&rv.Repeat.Operand}
	case mir.RValueAggregate:
		out := make([]*mir.Operand, len(rv.Aggregate.Operands))
		for i := range rv.Aggregate.Operands {
			out[i] = &rv.Aggregate.Operands[i]
		}
		return out
	default:
		return nil
	}
}
