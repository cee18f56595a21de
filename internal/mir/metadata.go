package mir

// Metadata carries the four flat lookup tables delivered alongside the
// function bodies. Entries are addressed by small integer IDs; a missing
// entry is a resolution miss, not an input error.
type Metadata struct {
	Types  []TypeMeta
	Allocs []AllocMeta
	Spans  []SpanMeta
	Funcs  []FnSymbol
}

// TypeMeta names a type ID.
type TypeMeta struct {
	ID   TypeID
	Name string
}

// AllocMetaKind distinguishes allocation entries.
type AllocMetaKind uint8

const (
	// AllocMemory is a plain byte allocation.
	AllocMemory AllocMetaKind = iota
	// AllocStatic is a named static.
	AllocStatic
	// AllocVTable is a vtable allocation.
	AllocVTable
	// AllocFunction is a function-item allocation.
	AllocFunction
)

// AllocMeta describes one allocation. Refs lists allocations referenced
// via provenance; the resulting graph may be cyclic.
type AllocMeta struct {
	ID    AllocID
	Kind  AllocMetaKind
	Type  TypeID
	Bytes []byte
	Name  string
	Refs  []AllocID
}

// SpanMeta maps a span ID to a source location.
type SpanMeta struct {
	ID        SpanID
	File      string
	LineStart int
	ColStart  int
	LineEnd   int
	ColEnd    int
}

// FnSymKind distinguishes function symbol flavors.
type FnSymKind uint8

const (
	// FnSymNormal is an ordinary function symbol.
	FnSymNormal FnSymKind = iota
	// FnSymNoOp is a known no-op symbol.
	FnSymNoOp
	// FnSymIntrinsic is a compiler intrinsic.
	FnSymIntrinsic
)

// FnSymbol maps a function ID to its linker-level name.
type FnSymbol struct {
	ID   FnID
	Kind FnSymKind
	Name string
}
