package driver

import (
	"encoding/json"
	"fmt"
	"os"

	"fortio.org/safecast"

	"mirwalk/internal/mir"
)

// Load reads a module dump from disk, decodes it, and validates the
// result against the input contract. A dump that fails validation is
// rejected as a whole.
func Load(path string) (*mir.Module, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read module dump: %w", err)
	}
	m, err := Decode(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	if err := mir.Validate(m); err != nil {
		return nil, fmt.Errorf("%s: invalid module: %w", path, err)
	}
	return m, nil
}

// Decode parses the JSON wire form into a module without validating it.
func Decode(data []byte) (*mir.Module, error) {
	var w wireModule
	if err := json.Unmarshal(data, &w); err != nil {
		return nil, fmt.Errorf("parse module dump: %w", err)
	}
	return fromWire(&w)
}

// id32 narrows a wire integer into a 32-bit ID type.
func id32[T ~int32](v int) (T, error) {
	n, err := safecast.Conv[int32](v)
	if err != nil {
		return 0, fmt.Errorf("id %d out of range: %w", v, err)
	}
	return T(n), nil
}

// optID narrows an optional wire integer, mapping absence to the
// sentinel.
func optID[T ~int32](v *int, sentinel T) (T, error) {
	if v == nil {
		return sentinel, nil
	}
	return id32[T](*v)
}

func fromWire(w *wireModule) (*mir.Module, error) {
	m := &mir.Module{Name: w.Name}

	var err error
	if m.Meta, err = metaFromWire(w); err != nil {
		return nil, err
	}
	for i := range w.Functions {
		f, err := funcFromWire(&w.Functions[i])
		if err != nil {
			return nil, fmt.Errorf("function %q: %w", w.Functions[i].Name, err)
		}
		m.Funcs = append(m.Funcs, f)
	}
	return m, nil
}

func funcFromWire(w *wireFunction) (*mir.Body, error) {
	fn, err := id32[mir.FnID](w.ID)
	if err != nil {
		return nil, err
	}
	span, err := optID(w.Span, mir.NoSpanID)
	if err != nil {
		return nil, err
	}
	f := &mir.Body{Fn: fn, Name: w.Name, Span: span}

	for i := range w.Locals {
		l, err := localFromWire(&w.Locals[i])
		if err != nil {
			return nil, fmt.Errorf("local %d: %w", i, err)
		}
		f.Locals = append(f.Locals, l)
	}
	for i := range w.Blocks {
		b, err := blockFromWire(&w.Blocks[i], i)
		if err != nil {
			return nil, fmt.Errorf("bb%d: %w", i, err)
		}
		f.Blocks = append(f.Blocks, b)
	}
	return f, nil
}

func localFromWire(w *wireLocal) (mir.Local, error) {
	ty, err := id32[mir.TypeID](w.Type)
	if err != nil {
		return mir.Local{}, err
	}
	span, err := optID(w.Span, mir.NoSpanID)
	if err != nil {
		return mir.Local{}, err
	}
	return mir.Local{Name: w.Name, Type: ty, Span: span, Mutable: w.Mutable}, nil
}

func blockFromWire(w *wireBlock, idx int) (mir.Block, error) {
	id, err := id32[mir.BlockID](idx)
	if err != nil {
		return mir.Block{}, err
	}
	b := mir.Block{ID: id}
	for i := range w.Statements {
		st, err := stmtFromWire(&w.Statements[i])
		if err != nil {
			return mir.Block{}, fmt.Errorf("stmt %d: %w", i, err)
		}
		b.Stmts = append(b.Stmts, st)
	}
	if w.Terminator == nil {
		return mir.Block{}, fmt.Errorf("missing terminator")
	}
	if b.Term, err = termFromWire(w.Terminator); err != nil {
		return mir.Block{}, fmt.Errorf("terminator: %w", err)
	}
	return b, nil
}

var stmtKinds = map[string]mir.StmtKind{
	"assign":           mir.StmtAssign,
	"storage_live":     mir.StmtStorageLive,
	"storage_dead":     mir.StmtStorageDead,
	"set_discriminant": mir.StmtSetDiscriminant,
	"fake_read":        mir.StmtFakeRead,
	"retag":            mir.StmtRetag,
	"place_mention":    mir.StmtPlaceMention,
	"deinit":           mir.StmtDeinit,
	"nop":              mir.StmtNop,
}

func stmtFromWire(w *wireStmt) (mir.Statement, error) {
	kind, ok := stmtKinds[w.Kind]
	if !ok {
		return mir.Statement{}, fmt.Errorf("unknown statement kind %q", w.Kind)
	}
	span, err := optID(w.Span, mir.NoSpanID)
	if err != nil {
		return mir.Statement{}, err
	}
	st := mir.Statement{Kind: kind, Span: span}

	switch kind {
	case mir.StmtAssign:
		if w.Dst == nil || w.Src == nil {
			return mir.Statement{}, fmt.Errorf("assign needs dst and src")
		}
		if st.Assign.Dst, err = placeFromWire(w.Dst); err != nil {
			return mir.Statement{}, err
		}
		if st.Assign.Src, err = rvalueFromWire(w.Src); err != nil {
			return mir.Statement{}, err
		}
	case mir.StmtStorageLive, mir.StmtStorageDead:
		if w.Local == nil {
			return mir.Statement{}, fmt.Errorf("%s needs a local", w.Kind)
		}
		if st.StorageLocal, err = id32[mir.LocalID](*w.Local); err != nil {
			return mir.Statement{}, err
		}
	case mir.StmtSetDiscriminant:
		if w.Place == nil {
			return mir.Statement{}, fmt.Errorf("set_discriminant needs a place")
		}
		if st.SetDiscriminant.Place, err = placeFromWire(w.Place); err != nil {
			return mir.Statement{}, err
		}
		st.SetDiscriminant.Variant = w.Variant
	case mir.StmtFakeRead, mir.StmtRetag, mir.StmtPlaceMention, mir.StmtDeinit:
		if w.Place == nil {
			return mir.Statement{}, fmt.Errorf("%s needs a place", w.Kind)
		}
		if st.Place, err = placeFromWire(w.Place); err != nil {
			return mir.Statement{}, err
		}
	}
	return st, nil
}

var projKinds = map[string]mir.PlaceProjKind{
	"deref":    mir.PlaceProjDeref,
	"field":    mir.PlaceProjField,
	"index":    mir.PlaceProjIndex,
	"downcast": mir.PlaceProjDowncast,
}

func placeFromWire(w *wirePlace) (mir.Place, error) {
	local, err := id32[mir.LocalID](w.Local)
	if err != nil {
		return mir.Place{}, err
	}
	p := mir.Place{Local: local}
	for i := range w.Proj {
		kind, ok := projKinds[w.Proj[i].Kind]
		if !ok {
			return mir.Place{}, fmt.Errorf("unknown projection kind %q", w.Proj[i].Kind)
		}
		proj := mir.PlaceProj{Kind: kind, FieldIdx: w.Proj[i].Index, Variant: w.Proj[i].Variant}
		if kind == mir.PlaceProjIndex {
			if proj.IndexLocal, err = id32[mir.LocalID](w.Proj[i].Local); err != nil {
				return mir.Place{}, err
			}
		}
		p.Proj = append(p.Proj, proj)
	}
	return p, nil
}

func operandFromWire(w *wireOperand) (mir.Operand, error) {
	switch w.Kind {
	case "copy", "move":
		if w.Place == nil {
			return mir.Operand{}, fmt.Errorf("%s operand needs a place", w.Kind)
		}
		place, err := placeFromWire(w.Place)
		if err != nil {
			return mir.Operand{}, err
		}
		kind := mir.OperandCopy
		if w.Kind == "move" {
			kind = mir.OperandMove
		}
		return mir.Operand{Kind: kind, Place: place}, nil
	case "const":
		if w.Const == nil {
			return mir.Operand{}, fmt.Errorf("const operand needs a const")
		}
		k, err := constFromWire(w.Const)
		if err != nil {
			return mir.Operand{}, err
		}
		return mir.Operand{Kind: mir.OperandConst, Const: k}, nil
	default:
		return mir.Operand{}, fmt.Errorf("unknown operand kind %q", w.Kind)
	}
}

var constKinds = map[string]mir.ConstKind{
	"bytes":       mir.ConstBytes,
	"allocated":   mir.ConstAllocated,
	"zero_sized":  mir.ConstZeroSized,
	"unevaluated": mir.ConstUnevaluated,
	"param":       mir.ConstParam,
}

func constFromWire(w *wireConst) (mir.Const, error) {
	kind, ok := constKinds[w.Kind]
	if !ok {
		return mir.Const{}, fmt.Errorf("unknown const kind %q", w.Kind)
	}
	ty, err := id32[mir.TypeID](w.Type)
	if err != nil {
		return mir.Const{}, err
	}
	fn, err := optID(w.Fn, mir.NoFnID)
	if err != nil {
		return mir.Const{}, err
	}
	k := mir.Const{Kind: kind, Type: ty, Bytes: w.Bytes, Fn: fn, Name: w.Name}
	for _, ref := range w.Refs {
		id, err := id32[mir.AllocID](ref)
		if err != nil {
			return mir.Const{}, err
		}
		k.Refs = append(k.Refs, id)
	}
	return k, nil
}

var borrowKinds = map[string]mir.BorrowKind{
	"shared":  mir.BorrowShared,
	"mut":     mir.BorrowMut,
	"shallow": mir.BorrowShallow,
}

var binOps = map[string]mir.BinOp{
	"add": mir.BinAdd, "sub": mir.BinSub, "mul": mir.BinMul,
	"div": mir.BinDiv, "rem": mir.BinRem,
	"eq": mir.BinEq, "ne": mir.BinNe,
	"lt": mir.BinLt, "le": mir.BinLe, "gt": mir.BinGt, "ge": mir.BinGe,
	"bitand": mir.BinBitAnd, "bitor": mir.BinBitOr, "bitxor": mir.BinBitXor,
	"shl": mir.BinShl, "shr": mir.BinShr,
}

func rvalueFromWire(w *wireRValue) (mir.RValue, error) {
	need := func(op *wireOperand, what string) (mir.Operand, error) {
		if op == nil {
			return mir.Operand{}, fmt.Errorf("%s rvalue needs %s", w.Kind, what)
		}
		return operandFromWire(op)
	}
	needPlace := func() (mir.Place, error) {
		if w.Place == nil {
			return mir.Place{}, fmt.Errorf("%s rvalue needs a place", w.Kind)
		}
		return placeFromWire(w.Place)
	}

	var (
		rv  mir.RValue
		err error
	)
	switch w.Kind {
	case "use":
		rv.Kind = mir.RValueUse
		rv.Use, err = need(w.Use, "an operand")
	case "ref":
		rv.Kind = mir.RValueRef
		kind, ok := borrowKinds[w.Borrow]
		if !ok {
			return mir.RValue{}, fmt.Errorf("unknown borrow kind %q", w.Borrow)
		}
		rv.Ref.Kind = kind
		rv.Ref.Place, err = needPlace()
	case "addr_of":
		rv.Kind = mir.RValueAddrOf
		rv.AddrOf.Mutable = w.Mutable
		rv.AddrOf.Place, err = needPlace()
	case "unary":
		rv.Kind = mir.RValueUnaryOp
		switch w.Op {
		case "not":
			rv.Unary.Op = mir.UnNot
		case "neg":
			rv.Unary.Op = mir.UnNeg
		default:
			return mir.RValue{}, fmt.Errorf("unknown unary op %q", w.Op)
		}
		rv.Unary.Operand, err = need(w.Operand, "an operand")
	case "binary", "checked_binary":
		rv.Kind = mir.RValueBinaryOp
		if w.Kind == "checked_binary" {
			rv.Kind = mir.RValueCheckedBinaryOp
		}
		op, ok := binOps[w.Op]
		if !ok {
			return mir.RValue{}, fmt.Errorf("unknown binary op %q", w.Op)
		}
		rv.Binary.Op = op
		if rv.Binary.Left, err = need(w.Left, "a left operand"); err != nil {
			return mir.RValue{}, err
		}
		rv.Binary.Right, err = need(w.Right, "a right operand")
	case "cast":
		rv.Kind = mir.RValueCast
		if rv.Cast.Type, err = id32[mir.TypeID](w.Type); err != nil {
			return mir.RValue{}, err
		}
		rv.Cast.Operand, err = need(w.Operand, "an operand")
	case "len":
		rv.Kind = mir.RValueLen
		rv.Place, err = needPlace()
	case "discriminant":
		rv.Kind = mir.RValueDiscriminant
		rv.Place, err = needPlace()
	case "aggregate":
		rv.Kind = mir.RValueAggregate
		rv.Aggregate.Head = w.Head
		for i := range w.Fields {
			op, opErr := operandFromWire(&w.Fields[i])
			if opErr != nil {
				return mir.RValue{}, opErr
			}
			rv.Aggregate.Operands = append(rv.Aggregate.Operands, op)
		}
	case "repeat":
		rv.Kind = mir.RValueRepeat
		rv.Repeat.Count = w.Count
		rv.Repeat.Operand, err = need(w.Operand, "an operand")
	default:
		return mir.RValue{}, fmt.Errorf("unknown rvalue kind %q", w.Kind)
	}
	if err != nil {
		return mir.RValue{}, err
	}
	return rv, nil
}

func termFromWire(w *wireTerm) (mir.Terminator, error) {
	span, err := optID(w.Span, mir.NoSpanID)
	if err != nil {
		return mir.Terminator{}, err
	}
	t := mir.Terminator{Span: span}

	needTarget := func() (mir.BlockID, error) {
		if w.Target == nil {
			return mir.NoBlockID, fmt.Errorf("%s needs a target", w.Kind)
		}
		return id32[mir.BlockID](*w.Target)
	}

	switch w.Kind {
	case "goto":
		t.Kind = mir.TermGoto
		t.Goto.Target, err = needTarget()
	case "switch_int":
		t.Kind = mir.TermSwitchInt
		if w.Discr == nil {
			return mir.Terminator{}, fmt.Errorf("switch_int needs a discriminant")
		}
		if t.SwitchInt.Discr, err = operandFromWire(w.Discr); err != nil {
			return mir.Terminator{}, err
		}
		for _, c := range w.Cases {
			target, cErr := id32[mir.BlockID](c.Target)
			if cErr != nil {
				return mir.Terminator{}, cErr
			}
			t.SwitchInt.Cases = append(t.SwitchInt.Cases, mir.SwitchCase{Value: c.Value, Target: target})
		}
		if w.Otherwise == nil {
			return mir.Terminator{}, fmt.Errorf("switch_int needs an otherwise target")
		}
		t.SwitchInt.Otherwise, err = id32[mir.BlockID](*w.Otherwise)
	case "return":
		t.Kind = mir.TermReturn
	case "resume":
		t.Kind = mir.TermResume
	case "abort":
		t.Kind = mir.TermAbort
	case "unreachable":
		t.Kind = mir.TermUnreachable
	case "drop":
		t.Kind = mir.TermDrop
		if w.Place == nil {
			return mir.Terminator{}, fmt.Errorf("drop needs a place")
		}
		if t.Drop.Place, err = placeFromWire(w.Place); err != nil {
			return mir.Terminator{}, err
		}
		if t.Drop.Target, err = needTarget(); err != nil {
			return mir.Terminator{}, err
		}
		t.Drop.Unwind, err = optID(w.Unwind, mir.NoBlockID)
	case "call":
		t.Kind = mir.TermCall
		if w.Func == nil {
			return mir.Terminator{}, fmt.Errorf("call needs a callee operand")
		}
		if t.Call.Func, err = operandFromWire(w.Func); err != nil {
			return mir.Terminator{}, err
		}
		for i := range w.Args {
			arg, aErr := operandFromWire(&w.Args[i])
			if aErr != nil {
				return mir.Terminator{}, aErr
			}
			t.Call.Args = append(t.Call.Args, arg)
		}
		t.Call.Dest = mir.Place{Local: mir.NoLocalID}
		if w.Dest != nil {
			if t.Call.Dest, err = placeFromWire(w.Dest); err != nil {
				return mir.Terminator{}, err
			}
		}
		if t.Call.Target, err = optID(w.Target, mir.NoBlockID); err != nil {
			return mir.Terminator{}, err
		}
		t.Call.Unwind, err = optID(w.Unwind, mir.NoBlockID)
	case "assert":
		t.Kind = mir.TermAssert
		if w.Cond == nil {
			return mir.Terminator{}, fmt.Errorf("assert needs a condition")
		}
		if t.Assert.Cond, err = operandFromWire(w.Cond); err != nil {
			return mir.Terminator{}, err
		}
		t.Assert.Expected = w.Expected
		if t.Assert.Target, err = needTarget(); err != nil {
			return mir.Terminator{}, err
		}
		t.Assert.Unwind, err = optID(w.Unwind, mir.NoBlockID)
	case "inline_asm":
		t.Kind = mir.TermInlineAsm
		if t.InlineAsm.Target, err = optID(w.Target, mir.NoBlockID); err != nil {
			return mir.Terminator{}, err
		}
		t.InlineAsm.Unwind, err = optID(w.Unwind, mir.NoBlockID)
	default:
		return mir.Terminator{}, fmt.Errorf("unknown terminator kind %q", w.Kind)
	}
	if err != nil {
		return mir.Terminator{}, err
	}
	return t, nil
}

var allocKinds = map[string]mir.AllocMetaKind{
	"":         mir.AllocMemory,
	"memory":   mir.AllocMemory,
	"static":   mir.AllocStatic,
	"vtable":   mir.AllocVTable,
	"function": mir.AllocFunction,
}

var fnSymKinds = map[string]mir.FnSymKind{
	"":          mir.FnSymNormal,
	"normal":    mir.FnSymNormal,
	"noop":      mir.FnSymNoOp,
	"intrinsic": mir.FnSymIntrinsic,
}

func metaFromWire(w *wireModule) (mir.Metadata, error) {
	var meta mir.Metadata

	for _, t := range w.Types {
		id, err := id32[mir.TypeID](t.ID)
		if err != nil {
			return mir.Metadata{}, fmt.Errorf("type table: %w", err)
		}
		meta.Types = append(meta.Types, mir.TypeMeta{ID: id, Name: t.Name})
	}
	for _, a := range w.Allocs {
		kind, ok := allocKinds[a.Kind]
		if !ok {
			return mir.Metadata{}, fmt.Errorf("alloc table: unknown kind %q", a.Kind)
		}
		id, err := id32[mir.AllocID](a.ID)
		if err != nil {
			return mir.Metadata{}, fmt.Errorf("alloc table: %w", err)
		}
		ty, err := id32[mir.TypeID](a.Type)
		if err != nil {
			return mir.Metadata{}, fmt.Errorf("alloc table: %w", err)
		}
		entry := mir.AllocMeta{ID: id, Kind: kind, Type: ty, Bytes: a.Bytes, Name: a.Name}
		for _, ref := range a.Refs {
			refID, err := id32[mir.AllocID](ref)
			if err != nil {
				return mir.Metadata{}, fmt.Errorf("alloc table: %w", err)
			}
			entry.Refs = append(entry.Refs, refID)
		}
		meta.Allocs = append(meta.Allocs, entry)
	}
	for _, s := range w.Spans {
		id, err := id32[mir.SpanID](s.ID)
		if err != nil {
			return mir.Metadata{}, fmt.Errorf("span table: %w", err)
		}
		meta.Spans = append(meta.Spans, mir.SpanMeta{
			ID: id, File: s.File,
			LineStart: s.LineStart, ColStart: s.ColStart,
			LineEnd: s.LineEnd, ColEnd: s.ColEnd,
		})
	}
	for _, f := range w.Funcs {
		kind, ok := fnSymKinds[f.Kind]
		if !ok {
			return mir.Metadata{}, fmt.Errorf("func table: unknown kind %q", f.Kind)
		}
		id, err := id32[mir.FnID](f.ID)
		if err != nil {
			return mir.Metadata{}, fmt.Errorf("func table: %w", err)
		}
		meta.Funcs = append(meta.Funcs, mir.FnSymbol{ID: id, Kind: kind, Name: f.Name})
	}
	return meta, nil
}
