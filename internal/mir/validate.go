package mir

import (
	"errors"
	"fmt"
)

// Validate checks the input contract on a module. Any violation is fatal:
// the analyses assume a well-formed CFG and do not repair malformed input.
// Resolution misses in the metadata tables are not checked here; every
// lookup has a rendering fallback.
func Validate(m *Module) error {
	if m == nil {
		return nil
	}
	var errs []error
	for _, f := range m.Funcs {
		if f == nil {
			continue
		}
		if err := ValidateBody(f); err != nil {
			errs = append(errs, fmt.Errorf("function %s: %w", f.Name, err))
		}
	}
	return errors.Join(errs...)
}

// ValidateBody checks a single function body against the input contract.
func ValidateBody(f *Body) error {
	if f == nil {
		return nil
	}

	var errs []error
	if len(f.Blocks) == 0 {
		return errors.New("no blocks: entry bb0 is required")
	}

	if err := validateTerminated(f); err != nil {
		errs = append(errs, err)
	}
	if err := validateEdgeTargets(f); err != nil {
		errs = append(errs, err)
	}
	if err := validateLocalIDs(f); err != nil {
		errs = append(errs, err)
	}

	return errors.Join(errs...)
}

// validateTerminated checks that every block ends with a terminator.
func validateTerminated(f *Body) error {
	var errs []error
	for i := range f.Blocks {
		if f.Blocks[i].Term.Kind == TermNone {
			errs = append(errs, fmt.Errorf("bb%d: unterminated block", i))
		}
	}
	return errors.Join(errs...)
}

// validateEdgeTargets checks that all edges point inside the node range.
func validateEdgeTargets(f *Body) error {
	var errs []error

	blockExists := func(id BlockID) bool {
		return id >= 0 && int(id) < len(f.Blocks)
	}

	for i := range f.Blocks {
		term := &f.Blocks[i].Term
		for _, e := range term.Edges() {
			if !blockExists(e.Target) {
				errs = append(errs, fmt.Errorf("bb%d: %s edge target bb%d does not exist", i, e.Kind, e.Target))
			}
		}
		if term.Kind == TermSwitchInt {
			seen := make(map[uint64]bool)
			for _, c := range term.SwitchInt.Cases {
				if seen[c.Value] {
					errs = append(errs, fmt.Errorf("bb%d: switchInt has duplicate case for value %d", i, c.Value))
				}
				seen[c.Value] = true
			}
		}
	}
	return errors.Join(errs...)
}

// validateLocalIDs checks that all local references are valid.
func validateLocalIDs(f *Body) error {
	var errs []error

	localExists := func(id LocalID) bool {
		return id >= 0 && int(id) < len(f.Locals)
	}

	checkPlace := func(p Place, context string) {
		if p.Local != NoLocalID && !localExists(p.Local) {
			errs = append(errs, fmt.Errorf("%s: local _%d does not exist", context, p.Local))
		}
		for _, proj := range p.Proj {
			if proj.Kind == PlaceProjIndex && proj.IndexLocal != NoLocalID && !localExists(proj.IndexLocal) {
				errs = append(errs, fmt.Errorf("%s: index local _%d does not exist", context, proj.IndexLocal))
			}
		}
	}

	checkOperand := func(op Operand, context string) {
		switch op.Kind {
		case OperandCopy, OperandMove:
			checkPlace(op.Place, context)
		}
	}

	checkRValue := func(rv *RValue, context string) {
		switch rv.Kind {
		case RValueUse:
			checkOperand(rv.Use, context)
		case RValueRef:
			checkPlace(rv.Ref.Place, context)
		case RValueAddrOf:
			checkPlace(rv.AddrOf.Place, context)
		case RValueUnaryOp:
			checkOperand(rv.Unary.Operand, context)
		case RValueBinaryOp, RValueCheckedBinaryOp:
			checkOperand(rv.Binary.Left, context)
			checkOperand(rv.Binary.Right, context)
		case RValueCast:
			checkOperand(rv.Cast.Operand, context)
		case RValueLen, RValueDiscriminant:
			checkPlace(rv.Place, context)
		case RValueAggregate:
			for _, op := range rv.Aggregate.Operands {
				checkOperand(op, context)
			}
		case RValueRepeat:
			checkOperand(rv.Repeat.Operand, context)
		}
	}

	for i := range f.Blocks {
		bb := &f.Blocks[i]
		for j := range bb.Stmts {
			s := &bb.Stmts[j]
			ctx := fmt.Sprintf("bb%d stmt %d", i, j)

			switch s.Kind {
			case StmtAssign:
				checkPlace(s.Assign.Dst, ctx)
				checkRValue(&s.Assign.Src, ctx)
			case StmtStorageLive, StmtStorageDead:
				if !localExists(s.StorageLocal) {
					errs = append(errs, fmt.Errorf("%s: local _%d does not exist", ctx, s.StorageLocal))
				}
			case StmtSetDiscriminant:
				checkPlace(s.SetDiscriminant.Place, ctx)
			case StmtFakeRead, StmtRetag, StmtPlaceMention, StmtDeinit:
				checkPlace(s.Place, ctx)
			}
		}

		ctx := fmt.Sprintf("bb%d terminator", i)
		term := &bb.Term
		switch term.Kind {
		case TermSwitchInt:
			checkOperand(term.SwitchInt.Discr, ctx)
		case TermDrop:
			checkPlace(term.Drop.Place, ctx)
		case TermCall:
			checkOperand(term.Call.Func, ctx)
			for _, arg := range term.Call.Args {
				checkOperand(arg, ctx)
			}
			checkPlace(term.Call.Dest, ctx)
		case TermAssert:
			checkOperand(term.Assert.Cond, ctx)
		}
	}

	return errors.Join(errs...)
}
