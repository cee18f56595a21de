// Package lifetime approximates the lexical scope of every local in a
// function body from its storage markers. The approximation is purely
// lexical: first StorageLive to last StorageDead in block order, with no
// path sensitivity.
package lifetime

import (
	"mirwalk/internal/index"
	"mirwalk/internal/mir"
)

// Scopes maps each local to its resolved lexical range, when one exists.
type Scopes struct {
	byLocal map[mir.LocalID]index.SourceRange
}

// Analyze collects the first StorageLive and last StorageDead span of each
// local and resolves the pair into a source range. Locals without both
// markers, or whose markers resolve to different files, get no range.
func Analyze(f *mir.Body, spans *index.SpanIndex) *Scopes {
	firstLive := make(map[mir.LocalID]mir.SpanID)
	lastDead := make(map[mir.LocalID]mir.SpanID)

	for bi := range f.Blocks {
		for si := range f.Blocks[bi].Stmts {
			st := &f.Blocks[bi].Stmts[si]
			switch st.Kind {
			case mir.StmtStorageLive:
				if _, ok := firstLive[st.StorageLocal]; !ok {
					firstLive[st.StorageLocal] = st.Span
				}
			case mir.StmtStorageDead:
				lastDead[st.StorageLocal] = st.Span
			}
		}
	}

	s := &Scopes{byLocal: make(map[mir.LocalID]index.SourceRange)}
	for local, live := range firstLive {
		dead, ok := lastDead[local]
		if !ok {
			continue
		}
		if r, ok := spans.RangeBetween(live, dead); ok {
			s.byLocal[local] = r
		}
	}
	return s
}

// Scope returns the lexical range of a local.
func (s *Scopes) Scope(local mir.LocalID) (index.SourceRange, bool) {
	if s == nil {
		return index.SourceRange{}, false
	}
	r, ok := s.byLocal[local]
	return r, ok
}

// Label renders the scope of a local for display, with a fixed fallback
// when no range could be resolved.
func (s *Scopes) Label(local mir.LocalID) string {
	r, ok := s.Scope(local)
	if !ok {
		return "no source range available"
	}
	return r.FormatVerbose()
}
