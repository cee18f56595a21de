// Package borrow discovers reference-creating operations in a function
// body and computes a deliberately conservative liveness approximation for
// each of them. This is a may-analysis: it over-approximates true liveness
// and does not model partial moves, disjoint-field borrows, or non-lexical
// precision. That imprecision is part of the contract; consumers display
// the result as "still in scope", not as a borrow-check verdict.
package borrow

import (
	"fmt"
	"slices"

	"mirwalk/internal/index"
	"mirwalk/internal/mir"
)

// Borrow is one reference-creating operation `borrower = &borrowed`
// discovered at a fixed location. Borrows never change after discovery.
type Borrow struct {
	Index    int
	Borrower mir.LocalID
	Borrowed mir.LocalID
	Kind     mir.BorrowKind
	Loc      mir.Location
	Span     mir.SpanID
}

// Label renders the borrow's lifetime name, e.g. "'b0".
func (b *Borrow) Label() string {
	return fmt.Sprintf("'b%d", b.Index)
}

// Set is the borrow list of one function plus its liveness facts.
type Set struct {
	Borrows []Borrow

	liveAt     map[mir.Location][]int
	liveAtLine map[int][]int
}

// Analyze scans the body for borrows in one linear pass, then runs the
// per-borrow liveness traversal and folds the result onto source lines.
func Analyze(f *mir.Body, spans *index.SpanIndex) *Set {
	s := &Set{
		liveAt:     make(map[mir.Location][]int),
		liveAtLine: make(map[int][]int),
	}

	for bi := range f.Blocks {
		bb := &f.Blocks[bi]
		for si := range bb.Stmts {
			st := &bb.Stmts[si]
			if st.Kind != mir.StmtAssign || st.Assign.Src.Kind != mir.RValueRef {
				continue
			}
			// Only whole-local borrows of whole locals are tracked.
			if !st.Assign.Dst.IsLocal() || !st.Assign.Src.Ref.Place.IsLocal() {
				continue
			}
			s.Borrows = append(s.Borrows, Borrow{
				Index:    len(s.Borrows),
				Borrower: st.Assign.Dst.Local,
				Borrowed: st.Assign.Src.Ref.Place.Local,
				Kind:     st.Assign.Src.Ref.Kind,
				Loc:      mir.Location{Block: mir.BlockID(bi), Stmt: si}, //nolint:gosec // bounded by block count
				Span:     st.Span,
			})
		}
	}

	for i := range s.Borrows {
		s.traverse(f, &s.Borrows[i])
	}
	for _, live := range s.liveAt {
		slices.Sort(live)
	}
	s.foldToLines(f, spans)

	return s
}

// traverse marks every location where the borrow is considered live:
// from its creation, forward along successor edges (unwind targets
// included), until the first kill condition on each path. The kill
// location itself is not live; liveness ends just before it. The visited
// set over (block, offset) pairs makes the walk terminate on cyclic CFGs
// and visits each location at most once.
func (s *Set) traverse(f *mir.Body, b *Borrow) {
	type point struct {
		block mir.BlockID
		stmt  int
	}
	visited := make(map[point]struct{})
	worklist := []point{{b.Loc.Block, b.Loc.Stmt}}

	for len(worklist) > 0 {
		p := worklist[len(worklist)-1]
		worklist = worklist[:len(worklist)-1]
		if _, ok := visited[p]; ok {
			continue
		}
		visited[p] = struct{}{}

		bb := &f.Blocks[p.block]
		killed := false
		for offset := p.stmt; offset <= len(bb.Stmts); offset++ {
			loc := mir.Location{Block: p.block, Stmt: offset}
			// The creating assignment writes the borrower itself and
			// must not count as its own kill.
			if loc != b.Loc && killsAt(bb, offset, b.Borrower) {
				killed = true
				break
			}
			s.liveAt[loc] = append(s.liveAt[loc], b.Index)
		}

		if killed {
			continue
		}
		for _, succ := range bb.Term.Successors() {
			worklist = append(worklist, point{succ, 0})
		}
	}
}

// killsAt reports whether the location at offset ends the borrow: a kill
// statement when the offset addresses one, the terminator otherwise.
func killsAt(bb *mir.Block, offset int, borrower mir.LocalID) bool {
	if offset < len(bb.Stmts) {
		return killsBorrow(&bb.Stmts[offset], borrower)
	}
	return terminatorKills(&bb.Term, borrower)
}

// killsBorrow reports whether a statement ends the borrow: an explicit
// scope end of the borrower, or a whole reassignment (not through a
// projection).
func killsBorrow(st *mir.Statement, borrower mir.LocalID) bool {
	switch st.Kind {
	case mir.StmtStorageDead:
		return st.StorageLocal == borrower
	case mir.StmtAssign:
		return st.Assign.Dst.IsLocal() && st.Assign.Dst.Local == borrower
	default:
		return false
	}
}

// terminatorKills reports whether the terminator ends the borrow. Return
// terminates every borrow unconditionally.
func terminatorKills(t *mir.Terminator, borrower mir.LocalID) bool {
	switch t.Kind {
	case mir.TermReturn:
		return true
	case mir.TermDrop:
		return t.Drop.Place.IsLocal() && t.Drop.Place.Local == borrower
	default:
		return false
	}
}

// foldToLines projects per-location liveness onto source line numbers:
// each live location contributes the lines of its statement/terminator
// span. Locations with unresolvable spans contribute nothing.
func (s *Set) foldToLines(f *mir.Body, spans *index.SpanIndex) {
	for loc, live := range s.liveAt {
		span := spanAt(f, loc)
		meta, ok := spans.Get(span)
		if !ok {
			continue
		}
		for line := meta.LineStart; line <= meta.LineEnd; line++ {
			s.liveAtLine[line] = append(s.liveAtLine[line], live...)
		}
	}
	for line, live := range s.liveAtLine {
		slices.Sort(live)
		s.liveAtLine[line] = slices.Compact(live)
	}
}

func spanAt(f *mir.Body, loc mir.Location) mir.SpanID {
	bb := &f.Blocks[loc.Block]
	if loc.Stmt < len(bb.Stmts) {
		return bb.Stmts[loc.Stmt].Span
	}
	return bb.Term.Span
}

// Get returns a borrow by index.
func (s *Set) Get(i int) (*Borrow, bool) {
	if s == nil || i < 0 || i >= len(s.Borrows) {
		return nil, false
	}
	return &s.Borrows[i], true
}

// LiveAt returns the borrow indices live at a location, sorted ascending.
func (s *Set) LiveAt(loc mir.Location) []int {
	if s == nil {
		return nil
	}
	return s.liveAt[loc]
}

// LiveAtLine returns the borrow indices live at a source line.
func (s *Set) LiveAtLine(line int) []int {
	if s == nil {
		return nil
	}
	return s.liveAtLine[line]
}

// EndOf finds the first kill point of a borrow reachable from its
// creation, if any. A borrow that escapes into a cycle with no kill has
// no end location.
func (s *Set) EndOf(f *mir.Body, i int) (mir.Location, bool) {
	b, ok := s.Get(i)
	if !ok {
		return mir.Location{}, false
	}

	type point struct {
		block mir.BlockID
		stmt  int
	}
	visited := make(map[point]struct{})
	worklist := []point{{b.Loc.Block, b.Loc.Stmt}}

	for len(worklist) > 0 {
		p := worklist[len(worklist)-1]
		worklist = worklist[:len(worklist)-1]
		if _, ok := visited[p]; ok {
			continue
		}
		visited[p] = struct{}{}

		bb := &f.Blocks[p.block]
		for offset := p.stmt; offset <= len(bb.Stmts); offset++ {
			loc := mir.Location{Block: p.block, Stmt: offset}
			if loc != b.Loc && killsAt(bb, offset, b.Borrower) {
				return loc, true
			}
		}
		for _, succ := range bb.Term.Successors() {
			worklist = append(worklist, point{succ, 0})
		}
	}
	return mir.Location{}, false
}

// SourceLines resolves a borrow to a (startLine, endLine) pair: the
// creation span's start and the kill location's end, falling back to the
// start line when no end resolves.
func (s *Set) SourceLines(f *mir.Body, i int, spans *index.SpanIndex) (int, int, bool) {
	b, ok := s.Get(i)
	if !ok {
		return 0, 0, false
	}
	start, ok := spans.Get(b.Span)
	if !ok {
		return 0, 0, false
	}

	endLine := start.LineStart
	if end, ok := s.EndOf(f, i); ok {
		if meta, ok := spans.Get(spanAt(f, end)); ok {
			endLine = meta.LineEnd
		}
	}
	return start.LineStart, endLine, true
}

// RangeLabel renders a borrow's lifetime range, e.g. "'b0: lines 5-12".
func (s *Set) RangeLabel(f *mir.Body, i int, spans *index.SpanIndex) string {
	b, ok := s.Get(i)
	if !ok {
		return ""
	}
	start, end, resolved := s.SourceLines(f, i, spans)
	switch {
	case !resolved:
		return fmt.Sprintf("%s: <unknown>", b.Label())
	case start == end:
		return fmt.Sprintf("%s: line %d", b.Label(), start)
	default:
		return fmt.Sprintf("%s: lines %d-%d", b.Label(), start, end)
	}
}
