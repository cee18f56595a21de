package explore

// Navigator is a cursor over a rendered module: one current function, the
// block path walked so far, and a selected outgoing edge. Every operation
// is total; an operation that cannot apply in the current state leaves the
// state unchanged instead of failing.
type Navigator struct {
	mod      *Module
	fn       int
	path     []int
	selected int
}

// NewNavigator positions the cursor on the first function's entry block.
func NewNavigator(m *Module) *Navigator {
	n := &Navigator{mod: m}
	n.Reset()
	return n
}

// Current returns the function under the cursor, nil for empty modules.
func (n *Navigator) Current() *Function {
	if n.mod == nil || n.fn < 0 || n.fn >= len(n.mod.Functions) {
		return nil
	}
	return n.mod.Functions[n.fn]
}

// CurrentBlock returns the block at the end of the path.
func (n *Navigator) CurrentBlock() *Block {
	fn := n.Current()
	if fn == nil || len(n.path) == 0 {
		return nil
	}
	id := n.path[len(n.path)-1]
	if id < 0 || id >= len(fn.Blocks) {
		return nil
	}
	return &fn.Blocks[id]
}

// Path returns the walked block IDs, entry first.
func (n *Navigator) Path() []int {
	return n.path
}

// SelectedEdge returns the index of the selected outgoing edge.
func (n *Navigator) SelectedEdge() int {
	return n.selected
}

// Follow walks the selected edge and appends its target to the path.
// Blocks without outgoing edges are terminal; Follow does nothing there.
func (n *Navigator) Follow() {
	blk := n.CurrentBlock()
	if blk == nil || n.selected < 0 || n.selected >= len(blk.Edges) {
		return
	}
	n.path = append(n.path, blk.Edges[n.selected].To)
	n.selected = 0
}

// StepBack removes the last step of the path. The entry block is always
// retained, so stepping back from the entry does nothing.
func (n *Navigator) StepBack() {
	if len(n.path) > 1 {
		n.path = n.path[:len(n.path)-1]
		n.selected = 0
	}
}

// SelectNext moves the edge selection forward, wrapping around.
func (n *Navigator) SelectNext() {
	if blk := n.CurrentBlock(); blk != nil && len(blk.Edges) > 0 {
		n.selected = (n.selected + 1) % len(blk.Edges)
	}
}

// SelectPrev moves the edge selection backward, wrapping around.
func (n *Navigator) SelectPrev() {
	if blk := n.CurrentBlock(); blk != nil && len(blk.Edges) > 0 {
		n.selected = (n.selected + len(blk.Edges) - 1) % len(blk.Edges)
	}
}

// JumpTo sets the edge selection to i directly. Out-of-range indices do
// nothing; the current block never changes.
func (n *Navigator) JumpTo(i int) {
	blk := n.CurrentBlock()
	if blk == nil || i < 0 || i >= len(blk.Edges) {
		return
	}
	n.selected = i
}

// Reset returns the cursor to the current function's entry block.
func (n *Navigator) Reset() {
	n.path = []int{0}
	n.selected = 0
}

// CycleFunc advances to the next function, wrapping around, and resets
// the path. delta may be negative to cycle backward.
func (n *Navigator) CycleFunc(delta int) {
	if n.mod == nil || len(n.mod.Functions) == 0 {
		return
	}
	count := len(n.mod.Functions)
	n.fn = ((n.fn+delta)%count + count) % count
	n.Reset()
}

// SwitchTo jumps to the function with the given short or full name.
// Unknown names do nothing.
func (n *Navigator) SwitchTo(name string) {
	if n.mod == nil {
		return
	}
	for i, fn := range n.mod.Functions {
		if fn.Name == name || fn.ShortName == name {
			n.fn = i
			n.Reset()
			return
		}
	}
}

// Snapshot captures the navigator state for serialization: the function
// both by index and by name, the walked path, and the edge selection.
type Snapshot struct {
	Function      string `json:"function"`
	FunctionIndex int    `json:"function_index"`
	Path          []int  `json:"path"`
	SelectedEdge  int    `json:"selected_edge"`
}

// Snapshot returns the current state.
func (n *Navigator) Snapshot() Snapshot {
	s := Snapshot{
		FunctionIndex: n.fn,
		Path:          append([]int(nil), n.path...),
		SelectedEdge:  n.selected,
	}
	if fn := n.Current(); fn != nil {
		s.Function = fn.ShortName
	}
	return s
}
