package mir

// StmtKind enumerates statement kinds in MIR.
type StmtKind uint8

const (
	// StmtAssign represents `place = rvalue`.
	StmtAssign StmtKind = iota
	// StmtStorageLive marks the beginning of a local's lexical scope.
	StmtStorageLive
	// StmtStorageDead marks the end of a local's lexical scope.
	StmtStorageDead
	// StmtSetDiscriminant writes an enum discriminant.
	StmtSetDiscriminant
	// StmtFakeRead is a borrow-checker hint with no runtime effect.
	StmtFakeRead
	// StmtRetag is a stacked-borrows retag hint.
	StmtRetag
	// StmtPlaceMention is a borrow-checker hint mentioning a place.
	StmtPlaceMention
	// StmtDeinit marks a place as deinitialized.
	StmtDeinit
	// StmtNop represents a no-op statement.
	StmtNop
)

// Statement is one non-terminating instruction of a basic block.
type Statement struct {
	Kind StmtKind
	Span SpanID

	Assign          AssignStmt
	StorageLocal    LocalID
	SetDiscriminant SetDiscriminantStmt
	Place           Place
}

// AssignStmt represents an assignment statement.
type AssignStmt struct {
	Dst Place
	Src RValue
}

// SetDiscriminantStmt represents a discriminant write.
type SetDiscriminantStmt struct {
	Place   Place
	Variant int
}

// OperandKind distinguishes operand types.
type OperandKind uint8

const (
	// OperandCopy reads a place by copy.
	OperandCopy OperandKind = iota
	// OperandMove reads a place by move.
	OperandMove
	// OperandConst is a constant operand.
	OperandConst
)

// Operand is a value read by a statement or terminator.
type Operand struct {
	Kind OperandKind

	Place Place
	Const Const
}

// ConstKind distinguishes constant kinds.
type ConstKind uint8

const (
	// ConstBytes is an inline constant carried as raw bytes.
	ConstBytes ConstKind = iota
	// ConstAllocated is a constant backed by one or more allocations.
	ConstAllocated
	// ConstZeroSized is a zero-sized constant (unit, fn items).
	ConstZeroSized
	// ConstUnevaluated is a named constant not yet evaluated.
	ConstUnevaluated
	// ConstParam is a const generic parameter.
	ConstParam
)

// Const is a MIR constant.
type Const struct {
	Kind ConstKind
	Type TypeID

	// Bytes holds the concrete byte image for inline constants.
	Bytes []byte
	// Refs lists allocations referenced via provenance.
	Refs []AllocID
	// Fn is set for zero-sized function-item constants.
	Fn FnID
	// Name is set for unevaluated named constants.
	Name string
}

// BorrowKind distinguishes reference-creating operations.
type BorrowKind uint8

const (
	// BorrowShared is `&place`.
	BorrowShared BorrowKind = iota
	// BorrowMut is `&mut place`.
	BorrowMut
	// BorrowShallow is the shallow borrow used in match guards.
	BorrowShallow
)

// String returns the display prefix for the borrow kind.
func (k BorrowKind) String() string {
	switch k {
	case BorrowMut:
		return "&mut "
	case BorrowShallow:
		return "&shallow "
	default:
		return "&"
	}
}

// BinOp enumerates binary operators.
type BinOp uint8

const (
	BinAdd BinOp = iota
	BinSub
	BinMul
	BinDiv
	BinRem
	BinEq
	BinNe
	BinLt
	BinLe
	BinGt
	BinGe
	BinBitAnd
	BinBitOr
	BinBitXor
	BinShl
	BinShr
)

// String returns the operator symbol.
func (op BinOp) String() string {
	switch op {
	case BinAdd:
		return "+"
	case BinSub:
		return "-"
	case BinMul:
		return "*"
	case BinDiv:
		return "/"
	case BinRem:
		return "%"
	case BinEq:
		return "=="
	case BinNe:
		return "!="
	case BinLt:
		return "<"
	case BinLe:
		return "<="
	case BinGt:
		return ">"
	case BinGe:
		return ">="
	case BinBitAnd:
		return "&"
	case BinBitOr:
		return "|"
	case BinBitXor:
		return "^"
	case BinShl:
		return "<<"
	case BinShr:
		return ">>"
	default:
		return "?"
	}
}

// Name returns a human-readable operation name for annotations.
func (op BinOp) Name() string {
	switch op {
	case BinAdd:
		return "Add"
	case BinSub:
		return "Subtract"
	case BinMul:
		return "Multiply"
	case BinDiv:
		return "Divide"
	case BinRem:
		return "Remainder"
	case BinEq:
		return "Equality"
	case BinNe:
		return "Inequality"
	case BinLt, BinLe, BinGt, BinGe:
		return "Comparison"
	default:
		return "Binary"
	}
}

// UnOp enumerates unary operators.
type UnOp uint8

const (
	UnNot UnOp = iota
	UnNeg
)

// String returns the operator symbol.
func (op UnOp) String() string {
	if op == UnNeg {
		return "-"
	}
	return "!"
}

// RValueKind distinguishes right-hand value kinds.
type RValueKind uint8

const (
	// RValueUse is a plain use of an operand.
	RValueUse RValueKind = iota
	// RValueRef is a reference-creating operation.
	RValueRef
	// RValueAddrOf is a raw address-of operation.
	RValueAddrOf
	// RValueUnaryOp is a unary operation.
	RValueUnaryOp
	// RValueBinaryOp is a binary operation.
	RValueBinaryOp
	// RValueCheckedBinaryOp is an overflow-checked binary operation.
	RValueCheckedBinaryOp
	// RValueCast is a type cast.
	RValueCast
	// RValueLen reads the length of an array or slice place.
	RValueLen
	// RValueDiscriminant reads an enum discriminant.
	RValueDiscriminant
	// RValueAggregate constructs a composite value.
	RValueAggregate
	// RValueRepeat constructs an array by repetition.
	RValueRepeat
)

// RValue is a right-hand value in MIR.
type RValue struct {
	Kind RValueKind

	Use       Operand
	Ref       RefRValue
	AddrOf    AddrOfRValue
	Unary     UnaryOpRValue
	Binary    BinaryOpRValue
	Cast      CastRValue
	Place     Place
	Aggregate AggregateRValue
	Repeat    RepeatRValue
}

// RefRValue is a borrow of a place.
type RefRValue struct {
	Kind  BorrowKind
	Place Place
}

// AddrOfRValue is a raw pointer to a place.
type AddrOfRValue struct {
	Mutable bool
	Place   Place
}

// UnaryOpRValue is a unary operation.
type UnaryOpRValue struct {
	Op      UnOp
	Operand Operand
}

// BinaryOpRValue is a binary operation; shared by the checked variant.
type BinaryOpRValue struct {
	Op    BinOp
	Left  Operand
	Right Operand
}

// CastRValue is a type cast.
type CastRValue struct {
	Operand Operand
	Type    TypeID
}

// AggregateRValue constructs a composite value.
type AggregateRValue struct {
	// Head names the aggregate shape (struct/tuple/array/closure label).
	Head     string
	Operands []Operand
}

// RepeatRValue constructs an array by repeating an element.
type RepeatRValue struct {
	Operand Operand
	Count   uint64
}
