package mir

import (
	"fmt"
	"io"
	"slices"
	"strings"
)

// DumpModule writes a raw, index-free representation of a module. It is a
// debugging aid; the render package produces the resolved labels.
func DumpModule(w io.Writer, m *Module) error {
	if w == nil || m == nil {
		return nil
	}

	funcs := make([]*Body, 0, len(m.Funcs))
	for _, f := range m.Funcs {
		if f != nil {
			funcs = append(funcs, f)
		}
	}
	slices.SortStableFunc(funcs, func(a, b *Body) int {
		return strings.Compare(a.Name, b.Name)
	})

	fmt.Fprintf(w, "funcs=%d\n", len(funcs))
	for _, f := range funcs {
		if err := dumpBody(w, f); err != nil {
			return err
		}
	}
	return nil
}

func dumpBody(w io.Writer, f *Body) error {
	if w == nil || f == nil {
		return nil
	}
	fmt.Fprintf(w, "\nfn %s:\n", f.Name)

	fmt.Fprintf(w, "  locals:\n")
	for i := range f.Locals {
		l := f.Locals[i]
		name := l.Name
		if name == "" {
			name = "_"
		}
		mut := ""
		if l.Mutable {
			mut = " mut"
		}
		fmt.Fprintf(w, "    _%d: ty%d%s name=%s\n", i, l.Type, mut, name)
	}

	for i := range f.Blocks {
		bb := &f.Blocks[i]
		fmt.Fprintf(w, "  bb%d:\n", bb.ID)
		for j := range bb.Stmts {
			fmt.Fprintf(w, "    %s\n", rawStmt(&bb.Stmts[j]))
		}
		fmt.Fprintf(w, "    %s\n", rawTerm(&bb.Term))
	}

	return nil
}

func rawPlace(p Place) string {
	s := fmt.Sprintf("_%d", p.Local)
	for _, proj := range p.Proj {
		switch proj.Kind {
		case PlaceProjDeref:
			s = "(*" + s + ")"
		case PlaceProjField:
			s = fmt.Sprintf("%s.%d", s, proj.FieldIdx)
		case PlaceProjIndex:
			s = fmt.Sprintf("%s[_%d]", s, proj.IndexLocal)
		case PlaceProjDowncast:
			s = fmt.Sprintf("(%s as variant %d)", s, proj.Variant)
		}
	}
	return s
}

func rawStmt(s *Statement) string {
	switch s.Kind {
	case StmtAssign:
		return fmt.Sprintf("%s = <rvalue kind %d>", rawPlace(s.Assign.Dst), s.Assign.Src.Kind)
	case StmtStorageLive:
		return fmt.Sprintf("StorageLive(_%d)", s.StorageLocal)
	case StmtStorageDead:
		return fmt.Sprintf("StorageDead(_%d)", s.StorageLocal)
	case StmtSetDiscriminant:
		return fmt.Sprintf("discr(%s) = %d", rawPlace(s.SetDiscriminant.Place), s.SetDiscriminant.Variant)
	case StmtFakeRead:
		return fmt.Sprintf("FakeRead(%s)", rawPlace(s.Place))
	case StmtRetag:
		return fmt.Sprintf("Retag(%s)", rawPlace(s.Place))
	case StmtPlaceMention:
		return fmt.Sprintf("PlaceMention(%s)", rawPlace(s.Place))
	case StmtDeinit:
		return fmt.Sprintf("Deinit(%s)", rawPlace(s.Place))
	default:
		return "nop"
	}
}

func rawTerm(t *Terminator) string {
	switch t.Kind {
	case TermGoto:
		return fmt.Sprintf("goto bb%d", t.Goto.Target)
	case TermSwitchInt:
		parts := make([]string, 0, len(t.SwitchInt.Cases))
		for _, c := range t.SwitchInt.Cases {
			parts = append(parts, fmt.Sprintf("%d->bb%d", c.Value, c.Target))
		}
		return fmt.Sprintf("switchInt [%s; else->bb%d]", strings.Join(parts, ", "), t.SwitchInt.Otherwise)
	case TermReturn:
		return "return"
	case TermResume:
		return "resume"
	case TermAbort:
		return "abort"
	case TermUnreachable:
		return "unreachable"
	case TermDrop:
		return fmt.Sprintf("drop(%s) -> bb%d", rawPlace(t.Drop.Place), t.Drop.Target)
	case TermCall:
		return fmt.Sprintf("%s = call(...) -> bb%d", rawPlace(t.Call.Dest), t.Call.Target)
	case TermAssert:
		return fmt.Sprintf("assert(.. == %t) -> bb%d", t.Assert.Expected, t.Assert.Target)
	case TermInlineAsm:
		return "inline asm"
	default:
		return "<unterminated>"
	}
}
