package mir

type BlockID int32
type LocalID int32
type TypeID int32
type AllocID int32
type SpanID int32
type FnID int32

const (
	NoBlockID BlockID = -1
	NoLocalID LocalID = -1
	NoTypeID  TypeID  = -1
	NoAllocID AllocID = -1
	NoSpanID  SpanID  = -1
	NoFnID    FnID    = -1
)

// Location identifies a program point inside a function body.
// Stmt == len(block.Stmts) addresses the terminator.
type Location struct {
	Block BlockID
	Stmt  int
}

// Local is a declared local variable of a function body.
type Local struct {
	Name    string
	Type    TypeID
	Span    SpanID
	Mutable bool
}

type PlaceProjKind uint8

const (
	PlaceProjDeref PlaceProjKind = iota
	PlaceProjField
	PlaceProjIndex
	PlaceProjDowncast
)

type PlaceProj struct {
	Kind PlaceProjKind

	FieldIdx   int
	IndexLocal LocalID
	Variant    int
}

// Place is a local plus a projection chain (field access, deref, ...).
type Place struct {
	Local LocalID
	Proj  []PlaceProj
}

// IsLocal reports whether the place is a whole local without projections.
func (p Place) IsLocal() bool {
	return p.Local != NoLocalID && len(p.Proj) == 0
}
