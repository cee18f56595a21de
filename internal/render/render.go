package render

import (
	"fmt"
	"strings"

	"mirwalk/internal/index"
	"mirwalk/internal/mir"
)

// Place renders a place with its projection chain, innermost first.
func (c *Context) Place(f *mir.Body, p mir.Place) string {
	s := LocalName(f, p.Local)
	for _, proj := range p.Proj {
		switch proj.Kind {
		case mir.PlaceProjDeref:
			s = "(*" + s + ")"
		case mir.PlaceProjField:
			s = fmt.Sprintf("%s.%d", s, proj.FieldIdx)
		case mir.PlaceProjIndex:
			s = fmt.Sprintf("%s[%s]", s, LocalName(f, proj.IndexLocal))
		case mir.PlaceProjDowncast:
			s = fmt.Sprintf("(%s as variant#%d)", s, proj.Variant)
		}
	}
	return s
}

// Operand renders an operand. Copy reads are shown bare; moves keep their
// prefix so transfer of ownership stays visible.
func (c *Context) Operand(f *mir.Body, op mir.Operand) string {
	switch op.Kind {
	case mir.OperandMove:
		return "move " + c.Place(f, op.Place)
	case mir.OperandConst:
		return c.Const(op.Const)
	default:
		return c.Place(f, op.Place)
	}
}

// Const renders a constant. Byte images up to 8 bytes decode as a
// little-endian number; string-typed allocations get a quoted preview;
// everything else falls back to the type name and byte count.
func (c *Context) Const(k mir.Const) string {
	switch k.Kind {
	case mir.ConstZeroSized:
		if k.Fn != mir.NoFnID {
			return c.Funcs.ShortName(k.Fn)
		}
		return "const " + c.Types.Name(k.Type)
	case mir.ConstUnevaluated:
		return "const " + k.Name
	case mir.ConstParam:
		return "const param " + k.Name
	case mir.ConstAllocated:
		if len(k.Refs) == 1 {
			return c.Allocs.DescribeWithRefs(k.Refs[0], c.Opts.AllocDepth)
		}
		parts := make([]string, len(k.Refs))
		for i, ref := range k.Refs {
			parts[i] = c.Allocs.Describe(ref)
		}
		return "{" + strings.Join(parts, ", ") + "}"
	default:
		return c.constBytes(k)
	}
}

func (c *Context) constBytes(k mir.Const) string {
	tyName := c.Types.Name(k.Type)
	if n := len(k.Bytes); n > 0 && n <= index.MaxNumericBytes {
		return fmt.Sprintf("const %s = %d", tyName, index.LittleEndianU64(k.Bytes))
	}
	return fmt.Sprintf("const %s (%d bytes)", tyName, len(k.Bytes))
}

// RValue renders a right-hand value.
func (c *Context) RValue(f *mir.Body, rv mir.RValue) string {
	switch rv.Kind {
	case mir.RValueUse:
		return c.Operand(f, rv.Use)
	case mir.RValueRef:
		return rv.Ref.Kind.String() + c.Place(f, rv.Ref.Place)
	case mir.RValueAddrOf:
		if rv.AddrOf.Mutable {
			return "&raw mut " + c.Place(f, rv.AddrOf.Place)
		}
		return "&raw const " + c.Place(f, rv.AddrOf.Place)
	case mir.RValueUnaryOp:
		return rv.Unary.Op.String() + c.Operand(f, rv.Unary.Operand)
	case mir.RValueBinaryOp:
		return fmt.Sprintf("%s %s %s",
			c.Operand(f, rv.Binary.Left), rv.Binary.Op, c.Operand(f, rv.Binary.Right))
	case mir.RValueCheckedBinaryOp:
		return fmt.Sprintf("checked(%s %s %s)",
			c.Operand(f, rv.Binary.Left), rv.Binary.Op, c.Operand(f, rv.Binary.Right))
	case mir.RValueCast:
		return fmt.Sprintf("%s as %s", c.Operand(f, rv.Cast.Operand), c.Types.Name(rv.Cast.Type))
	case mir.RValueLen:
		return "len(" + c.Place(f, rv.Place) + ")"
	case mir.RValueDiscriminant:
		return "discriminant(" + c.Place(f, rv.Place) + ")"
	case mir.RValueAggregate:
		parts := make([]string, len(rv.Aggregate.Operands))
		for i, op := range rv.Aggregate.Operands {
			parts[i] = c.Operand(f, op)
		}
		head := rv.Aggregate.Head
		if head == "" {
			head = "aggregate"
		}
		return head + " { " + strings.Join(parts, ", ") + " }"
	case mir.RValueRepeat:
		return fmt.Sprintf("[%s; %d]", c.Operand(f, rv.Repeat.Operand), rv.Repeat.Count)
	default:
		return "?"
	}
}

// Stmt renders one statement as a single line.
func (c *Context) Stmt(f *mir.Body, st *mir.Statement) string {
	return c.stmtCore(f, st) + c.spanSuffix(st.Span)
}

func (c *Context) stmtCore(f *mir.Body, st *mir.Statement) string {
	switch st.Kind {
	case mir.StmtAssign:
		return c.Place(f, st.Assign.Dst) + " = " + c.RValue(f, st.Assign.Src)
	case mir.StmtStorageLive:
		return "StorageLive(" + LocalName(f, st.StorageLocal) + ")"
	case mir.StmtStorageDead:
		return "StorageDead(" + LocalName(f, st.StorageLocal) + ")"
	case mir.StmtSetDiscriminant:
		return fmt.Sprintf("discriminant(%s) = %d",
			c.Place(f, st.SetDiscriminant.Place), st.SetDiscriminant.Variant)
	case mir.StmtFakeRead:
		return "FakeRead(" + c.Place(f, st.Place) + ")"
	case mir.StmtRetag:
		return "Retag(" + c.Place(f, st.Place) + ")"
	case mir.StmtPlaceMention:
		return "PlaceMention(" + c.Place(f, st.Place) + ")"
	case mir.StmtDeinit:
		return "Deinit(" + c.Place(f, st.Place) + ")"
	default:
		return "nop"
	}
}

// Term renders a terminator header without its edge list; edges are
// rendered separately so emitters can draw them as graph arrows.
func (c *Context) Term(f *mir.Body, t *mir.Terminator) string {
	return c.termCore(f, t) + c.spanSuffix(t.Span)
}

func (c *Context) termCore(f *mir.Body, t *mir.Terminator) string {
	switch t.Kind {
	case mir.TermGoto:
		return fmt.Sprintf("goto -> bb%d", t.Goto.Target)
	case mir.TermSwitchInt:
		return "switchInt(" + c.Operand(f, t.SwitchInt.Discr) + ")"
	case mir.TermReturn:
		return "return"
	case mir.TermResume:
		return "resume"
	case mir.TermAbort:
		return "abort"
	case mir.TermUnreachable:
		return "unreachable"
	case mir.TermDrop:
		return "drop(" + c.Place(f, t.Drop.Place) + ")"
	case mir.TermCall:
		args := make([]string, len(t.Call.Args))
		for i, a := range t.Call.Args {
			args[i] = c.Operand(f, a)
		}
		call := c.Operand(f, t.Call.Func) + "(" + strings.Join(args, ", ") + ")"
		if t.Call.Dest.Local != mir.NoLocalID {
			return c.Place(f, t.Call.Dest) + " = " + call
		}
		return call
	case mir.TermAssert:
		return fmt.Sprintf("assert(%s == %t)", c.Operand(f, t.Assert.Cond), t.Assert.Expected)
	case mir.TermInlineAsm:
		return "inline asm"
	default:
		return "<no terminator>"
	}
}

// EdgeLabel renders an edge annotation for diagrams, combining the kind
// and the terminator-provided label.
func EdgeLabel(e mir.Edge) string {
	switch {
	case e.Kind == mir.EdgeCleanup:
		if e.Label != "" {
			return e.Label
		}
		return "unwind"
	case e.Label != "":
		return e.Label
	default:
		return ""
	}
}
