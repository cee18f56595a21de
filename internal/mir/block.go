package mir

// Block is a straight-line sequence of statements plus one terminator.
type Block struct {
	ID    BlockID
	Stmts []Statement
	Term  Terminator
}

func (b *Block) Terminated() bool {
	if b == nil {
		return true
	}
	return b.Term.Kind != TermNone
}

// TermOffset is the statement offset that addresses the terminator.
func (b *Block) TermOffset() int {
	return len(b.Stmts)
}
