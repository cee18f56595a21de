// Package driver loads module dumps from disk, validates them, and runs
// the analysis pipeline over them. It owns the JSON input contract and a
// content-addressed disk cache for analysis results.
package driver

// wireModule is the on-disk JSON shape of a module dump. IDs are plain
// integers on the wire and are range-checked during decoding.
type wireModule struct {
	Name      string         `json:"name"`
	Functions []wireFunction `json:"functions"`
	Types     []wireType     `json:"types,omitempty"`
	Allocs    []wireAlloc    `json:"allocs,omitempty"`
	Spans     []wireSpan     `json:"spans,omitempty"`
	Funcs     []wireFnSymbol `json:"funcs,omitempty"`
}

type wireFunction struct {
	ID     int         `json:"id"`
	Name   string      `json:"name"`
	Span   *int        `json:"span,omitempty"`
	Locals []wireLocal `json:"locals"`
	Blocks []wireBlock `json:"blocks"`
}

type wireLocal struct {
	Name    string `json:"name,omitempty"`
	Type    int    `json:"type"`
	Span    *int   `json:"span,omitempty"`
	Mutable bool   `json:"mutable,omitempty"`
}

type wireBlock struct {
	Statements []wireStmt `json:"statements"`
	Terminator *wireTerm  `json:"terminator"`
}

type wireStmt struct {
	Kind string `json:"kind"`
	Span *int   `json:"span,omitempty"`

	// assign
	Dst *wirePlace  `json:"dst,omitempty"`
	Src *wireRValue `json:"src,omitempty"`
	// storage_live / storage_dead
	Local *int `json:"local,omitempty"`
	// set_discriminant, fake_read, retag, place_mention, deinit
	Place   *wirePlace `json:"place,omitempty"`
	Variant int        `json:"variant,omitempty"`
}

type wireTerm struct {
	Kind string `json:"kind"`
	Span *int   `json:"span,omitempty"`

	Target    *int          `json:"target,omitempty"`
	Unwind    *int          `json:"unwind,omitempty"`
	Discr     *wireOperand  `json:"discr,omitempty"`
	Cases     []wireCase    `json:"cases,omitempty"`
	Otherwise *int          `json:"otherwise,omitempty"`
	Place     *wirePlace    `json:"place,omitempty"`
	Func      *wireOperand  `json:"func,omitempty"`
	Args      []wireOperand `json:"args,omitempty"`
	Dest      *wirePlace    `json:"dest,omitempty"`
	Cond      *wireOperand  `json:"cond,omitempty"`
	Expected  bool          `json:"expected,omitempty"`
}

type wireCase struct {
	Value  uint64 `json:"value"`
	Target int    `json:"target"`
}

type wirePlace struct {
	Local int        `json:"local"`
	Proj  []wireProj `json:"proj,omitempty"`
}

type wireProj struct {
	Kind    string `json:"kind"`
	Index   int    `json:"index,omitempty"`
	Local   int    `json:"local,omitempty"`
	Variant int    `json:"variant,omitempty"`
}

type wireOperand struct {
	Kind  string     `json:"kind"`
	Place *wirePlace `json:"place,omitempty"`
	Const *wireConst `json:"const,omitempty"`
}

type wireConst struct {
	Kind  string `json:"kind"`
	Type  int    `json:"type"`
	Bytes []byte `json:"bytes,omitempty"`
	Refs  []int  `json:"refs,omitempty"`
	Fn    *int   `json:"fn,omitempty"`
	Name  string `json:"name,omitempty"`
}

type wireRValue struct {
	Kind string `json:"kind"`

	Use     *wireOperand  `json:"use,omitempty"`
	Borrow  string        `json:"borrow,omitempty"`
	Place   *wirePlace    `json:"place,omitempty"`
	Mutable bool          `json:"mutable,omitempty"`
	Op      string        `json:"op,omitempty"`
	Operand *wireOperand  `json:"operand,omitempty"`
	Left    *wireOperand  `json:"left,omitempty"`
	Right   *wireOperand  `json:"right,omitempty"`
	Type    int           `json:"type,omitempty"`
	Head    string        `json:"head,omitempty"`
	Fields  []wireOperand `json:"fields,omitempty"`
	Count   uint64        `json:"count,omitempty"`
}

type wireType struct {
	ID   int    `json:"id"`
	Name string `json:"name"`
}

type wireAlloc struct {
	ID    int    `json:"id"`
	Kind  string `json:"kind"`
	Type  int    `json:"type,omitempty"`
	Bytes []byte `json:"bytes,omitempty"`
	Name  string `json:"name,omitempty"`
	Refs  []int  `json:"refs,omitempty"`
}

type wireSpan struct {
	ID        int    `json:"id"`
	File      string `json:"file"`
	LineStart int    `json:"line_start"`
	ColStart  int    `json:"col_start"`
	LineEnd   int    `json:"line_end"`
	ColEnd    int    `json:"col_end"`
}

type wireFnSymbol struct {
	ID   int    `json:"id"`
	Kind string `json:"kind,omitempty"`
	Name string `json:"name"`
}
