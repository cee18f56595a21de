package mir

import "strconv"

// TermKind enumerates terminator kinds.
type TermKind uint8

const (
	TermNone TermKind = iota
	TermGoto
	TermSwitchInt
	TermReturn
	TermResume
	TermAbort
	TermUnreachable
	TermDrop
	TermCall
	TermAssert
	TermInlineAsm
)

// Terminator is the single control-transfer instruction ending a block.
type Terminator struct {
	Kind TermKind
	Span SpanID

	Goto      GotoTerm
	SwitchInt SwitchIntTerm
	Return    ReturnTerm
	Drop      DropTerm
	Call      CallTerm
	Assert    AssertTerm
	InlineAsm InlineAsmTerm
}

type GotoTerm struct {
	Target BlockID
}

// SwitchCase is one value-tagged branch of a switch.
type SwitchCase struct {
	Value  uint64
	Target BlockID
}

type SwitchIntTerm struct {
	Discr     Operand
	Cases     []SwitchCase
	Otherwise BlockID
}

type ReturnTerm struct{}

type DropTerm struct {
	Place  Place
	Target BlockID
	Unwind BlockID
}

// CallTerm represents a function call. Target is NoBlockID when the call
// diverges; Unwind is NoBlockID when there is no cleanup edge.
type CallTerm struct {
	Func   Operand
	Args   []Operand
	Dest   Place
	Target BlockID
	Unwind BlockID
}

type AssertTerm struct {
	Cond     Operand
	Expected bool
	Target   BlockID
	Unwind   BlockID
}

type InlineAsmTerm struct {
	Target BlockID
	Unwind BlockID
}

// EdgeKind tags an outgoing CFG edge.
type EdgeKind uint8

const (
	// EdgeNormal is an ordinary control transfer.
	EdgeNormal EdgeKind = iota
	// EdgeCleanup is an unwind edge taken on panic.
	EdgeCleanup
	// EdgeOtherwise is a switch fallthrough taken when no case matches.
	EdgeOtherwise
	// EdgeBranch is a value-tagged switch branch.
	EdgeBranch
)

// String returns the wire name of the edge kind.
func (k EdgeKind) String() string {
	switch k {
	case EdgeCleanup:
		return "cleanup"
	case EdgeOtherwise:
		return "otherwise"
	case EdgeBranch:
		return "branch"
	default:
		return "normal"
	}
}

// Edge is one typed outgoing edge of a terminator.
type Edge struct {
	Target BlockID
	Kind   EdgeKind
	Label  string
}

// Edges returns the typed outgoing edges of the terminator.
// New terminator kinds must be handled here; the default arm is reached
// only for TermNone and the diverging kinds, which carry no edges.
func (t *Terminator) Edges() []Edge {
	switch t.Kind {
	case TermGoto:
		return []Edge{{Target: t.Goto.Target, Kind: EdgeNormal}}
	case TermSwitchInt:
		out := make([]Edge, 0, len(t.SwitchInt.Cases)+1)
		for _, c := range t.SwitchInt.Cases {
			out = append(out, Edge{
				Target: c.Target,
				Kind:   EdgeBranch,
				Label:  strconv.FormatUint(c.Value, 10),
			})
		}
		out = append(out, Edge{Target: t.SwitchInt.Otherwise, Kind: EdgeOtherwise, Label: "else"})
		return out
	case TermDrop:
		out := []Edge{{Target: t.Drop.Target, Kind: EdgeNormal}}
		if t.Drop.Unwind != NoBlockID {
			out = append(out, Edge{Target: t.Drop.Unwind, Kind: EdgeCleanup, Label: "unwind"})
		}
		return out
	case TermCall:
		var out []Edge
		if t.Call.Target != NoBlockID {
			out = append(out, Edge{Target: t.Call.Target, Kind: EdgeNormal, Label: "return"})
		}
		if t.Call.Unwind != NoBlockID {
			out = append(out, Edge{Target: t.Call.Unwind, Kind: EdgeCleanup, Label: "unwind"})
		}
		return out
	case TermAssert:
		out := []Edge{{Target: t.Assert.Target, Kind: EdgeNormal, Label: "ok"}}
		if t.Assert.Unwind != NoBlockID {
			out = append(out, Edge{Target: t.Assert.Unwind, Kind: EdgeCleanup, Label: "panic"})
		}
		return out
	case TermInlineAsm:
		var out []Edge
		if t.InlineAsm.Target != NoBlockID {
			out = append(out, Edge{Target: t.InlineAsm.Target, Kind: EdgeNormal})
		}
		if t.InlineAsm.Unwind != NoBlockID {
			out = append(out, Edge{Target: t.InlineAsm.Unwind, Kind: EdgeCleanup, Label: "unwind"})
		}
		return out
	default:
		return nil
	}
}

// Successors returns the target blocks of all outgoing edges.
func (t *Terminator) Successors() []BlockID {
	edges := t.Edges()
	if len(edges) == 0 {
		return nil
	}
	out := make([]BlockID, len(edges))
	for i, e := range edges {
		out[i] = e.Target
	}
	return out
}

// UnwindTarget returns the cleanup edge target, or NoBlockID.
func (t *Terminator) UnwindTarget() BlockID {
	switch t.Kind {
	case TermDrop:
		return t.Drop.Unwind
	case TermCall:
		return t.Call.Unwind
	case TermAssert:
		return t.Assert.Unwind
	case TermInlineAsm:
		return t.InlineAsm.Unwind
	default:
		return NoBlockID
	}
}

// DivergesNormally reports whether the terminator exits the function on
// the non-panic path (a plain return).
func (t *Terminator) DivergesNormally() bool {
	return t.Kind == TermReturn
}

// DivergesAbnormally reports whether the terminator leaves the function
// via panic, abort, or unreachable code.
func (t *Terminator) DivergesAbnormally() bool {
	switch t.Kind {
	case TermResume, TermAbort, TermUnreachable:
		return true
	case TermCall:
		return t.Call.Target == NoBlockID
	default:
		return false
	}
}
