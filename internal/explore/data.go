// Package explore assembles the per-function exploration model consumed
// by the emitters and the interactive UI: rendered blocks with roles and
// annotations, typed edges, borrow and lifetime summaries, and a path
// navigator for walking the graph.
package explore

// Module is the fully rendered exploration model of one MIR module.
type Module struct {
	Name      string      `json:"name"`
	Functions []*Function `json:"functions"`
}

// Function is the rendered model of one function body.
type Function struct {
	Name       string     `json:"name"`
	ShortName  string     `json:"short_name"`
	Span       string     `json:"span,omitempty"`
	Locals     []Local    `json:"locals"`
	Blocks     []Block    `json:"blocks"`
	Borrows    []Borrow   `json:"borrows,omitempty"`
	Allocs     []string   `json:"allocs,omitempty"`
	Properties Properties `json:"properties"`
}

// Local is one declared local with its resolved type and lexical scope.
type Local struct {
	Name    string `json:"name"`
	Type    string `json:"type"`
	Scope   string `json:"scope"`
	Mutable bool   `json:"mutable,omitempty"`
}

// Borrow is one rendered borrow with its lifetime range.
type Borrow struct {
	Label    string `json:"label"`
	Kind     string `json:"kind"`
	Borrower string `json:"borrower"`
	Borrowed string `json:"borrowed"`
	Range    string `json:"range"`
}

// Block is one rendered basic block.
type Block struct {
	ID      int    `json:"id"`
	Role    string `json:"role"`
	Summary string `json:"summary,omitempty"`
	Preds   []int  `json:"preds,omitempty"`
	Stmts   []Stmt `json:"stmts"`
	Term    Term   `json:"term"`
	Edges   []Edge `json:"edges"`
}

// Stmt is one rendered statement with its annotation and the borrows live
// at its location.
type Stmt struct {
	Text        string `json:"text"`
	Note        string `json:"note,omitempty"`
	LiveBorrows []int  `json:"live_borrows,omitempty"`
}

// Term is the rendered terminator of a block.
type Term struct {
	Text string `json:"text"`
	Note string `json:"note,omitempty"`
}

// Edge is one typed outgoing edge.
type Edge struct {
	To    int    `json:"to"`
	Kind  string `json:"kind"`
	Label string `json:"label,omitempty"`
}

// Properties summarizes the structure of a function for quick inspection.
type Properties struct {
	Blocks     int  `json:"blocks"`
	Loops      int  `json:"loops"`
	Branches   int  `json:"branches"`
	HasCleanup bool `json:"has_cleanup"`
	HasPanic   bool `json:"has_panic"`
	Recursive  bool `json:"recursive"`
}
