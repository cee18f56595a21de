package mir

// EntryBlock is the fixed entry node of every function body.
const EntryBlock BlockID = 0

// Body is the immutable MIR of one compiled function.
type Body struct {
	Fn     FnID
	Name   string
	Span   SpanID
	Locals []Local
	Blocks []Block
}

// Module is a set of function bodies plus the flat metadata tables they
// reference. The module is input data; nothing in this package or the
// analysis layers mutates it.
type Module struct {
	Name  string
	Funcs []*Body
	Meta  Metadata
}
