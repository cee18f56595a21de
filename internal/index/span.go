package index

import (
	"fmt"
	"path/filepath"

	"mirwalk/internal/mir"
)

// SpanIndex resolves span IDs to source locations.
type SpanIndex struct {
	byID map[mir.SpanID]mir.SpanMeta
}

// NewSpanIndex builds the index in one pass over the span table.
func NewSpanIndex(spans []mir.SpanMeta) *SpanIndex {
	x := &SpanIndex{byID: make(map[mir.SpanID]mir.SpanMeta, len(spans))}
	for _, s := range spans {
		x.byID[s.ID] = s
	}
	return x
}

// Get returns the span entry for an ID.
func (x *SpanIndex) Get(id mir.SpanID) (mir.SpanMeta, bool) {
	if x == nil {
		return mir.SpanMeta{}, false
	}
	s, ok := x.byID[id]
	return s, ok
}

// Short renders a span as "file:line:col" with the file basename only.
func (x *SpanIndex) Short(id mir.SpanID) string {
	s, ok := x.Get(id)
	if !ok {
		return fmt.Sprintf("span%d", id)
	}
	return fmt.Sprintf("%s:%d:%d", filepath.Base(s.File), s.LineStart, s.ColStart)
}

// SourceRange is a resolved region of one source file. Single-line ranges
// carry column precision; multi-line ranges are line-only.
type SourceRange struct {
	File      string
	StartLine int
	StartCol  int
	EndLine   int
	EndCol    int
}

// Format renders the range without a prefix, e.g. "5:3-15" or "5-12".
func (r SourceRange) Format() string {
	if r.StartLine == r.EndLine {
		return fmt.Sprintf("%d:%d-%d", r.StartLine, r.StartCol, r.EndCol)
	}
	return fmt.Sprintf("%d-%d", r.StartLine, r.EndLine)
}

// FormatVerbose renders the range with a "line(s)" prefix.
func (r SourceRange) FormatVerbose() string {
	if r.StartLine == r.EndLine {
		return fmt.Sprintf("line %d:%d-%d", r.StartLine, r.StartCol, r.EndCol)
	}
	return fmt.Sprintf("lines %d-%d", r.StartLine, r.EndLine)
}

// RangeBetween resolves two span IDs and combines them into a SourceRange.
// Both spans must resolve and agree on the file; otherwise no range is
// reported rather than a guessed one.
func (x *SpanIndex) RangeBetween(start, end mir.SpanID) (SourceRange, bool) {
	s, ok := x.Get(start)
	if !ok {
		return SourceRange{}, false
	}
	e, ok := x.Get(end)
	if !ok {
		return SourceRange{}, false
	}
	if s.File != e.File {
		return SourceRange{}, false
	}
	return SourceRange{
		File:      s.File,
		StartLine: s.LineStart,
		StartCol:  s.ColStart,
		EndLine:   e.LineEnd,
		EndCol:    e.ColEnd,
	}, true
}
