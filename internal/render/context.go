// Package render turns MIR values into display text. All rendering goes
// through a Context that bundles the module's resolution indices; every
// function here is total and returns fallback text on resolution misses.
package render

import (
	"fmt"

	"mirwalk/internal/index"
	"mirwalk/internal/mir"
)

// DefaultAllocDepth bounds transitive allocation rendering.
const DefaultAllocDepth = 2

// Options controls optional rendering detail.
type Options struct {
	// ShowSpans appends a resolved source location to each rendered line.
	ShowSpans bool
	// AllocDepth bounds how deep allocation provenance is followed.
	AllocDepth int
}

// Context bundles the resolution indices of one module.
type Context struct {
	Types  *index.TypeIndex
	Allocs *index.AllocIndex
	Spans  *index.SpanIndex
	Funcs  *index.FuncIndex
	Opts   Options
}

// NewContext builds the four indices from the module's metadata tables.
func NewContext(m *mir.Module, opts Options) *Context {
	if opts.AllocDepth == 0 {
		opts.AllocDepth = DefaultAllocDepth
	}
	types := index.NewTypeIndex(m.Meta.Types)
	return &Context{
		Types:  types,
		Allocs: index.NewAllocIndex(m.Meta.Allocs, types),
		Spans:  index.NewSpanIndex(m.Meta.Spans),
		Funcs:  index.NewFuncIndex(m.Meta.Funcs),
		Opts:   opts,
	}
}

// LocalName renders a local by its debug name when one exists, otherwise
// as the positional "_N" form.
func LocalName(f *mir.Body, id mir.LocalID) string {
	if f != nil && id >= 0 && int(id) < len(f.Locals) && f.Locals[id].Name != "" {
		return f.Locals[id].Name
	}
	return fmt.Sprintf("_%d", id)
}

// LocalDecl renders a local's declaration line, e.g. "mut x: i32".
func (c *Context) LocalDecl(f *mir.Body, id mir.LocalID) string {
	name := LocalName(f, id)
	if id < 0 || int(id) >= len(f.Locals) {
		return name
	}
	l := &f.Locals[id]
	decl := name + ": " + c.Types.Name(l.Type)
	if l.Mutable {
		decl = "mut " + decl
	}
	return decl
}

// spanSuffix renders the trailing source-location comment when enabled.
func (c *Context) spanSuffix(id mir.SpanID) string {
	if !c.Opts.ShowSpans || id == mir.NoSpanID {
		return ""
	}
	return "  // " + c.Spans.Short(id)
}
