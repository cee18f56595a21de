package emit

import (
	"fmt"
	"strings"

	"mirwalk/internal/explore"
)

// Markdown renders the module as a markdown report: one section per
// function with properties, locals, borrows, the allocation legend, and
// every block with its annotations and edges.
func Markdown(m *explore.Module) string {
	var b strings.Builder
	fmt.Fprintf(&b, "# Module `%s`\n", m.Name)
	for _, fn := range m.Functions {
		markdownFunction(&b, fn)
	}
	return b.String()
}

func markdownFunction(b *strings.Builder, fn *explore.Function) {
	fmt.Fprintf(b, "\n## `%s`\n\n", fn.ShortName)
	if fn.Span != "" {
		fmt.Fprintf(b, "Defined at %s.\n\n", fn.Span)
	}
	markdownProperties(b, fn.Properties)

	if len(fn.Locals) > 0 {
		b.WriteString("\n### Locals\n\n")
		b.WriteString("| Name | Type | Scope |\n|---|---|---|\n")
		for _, l := range fn.Locals {
			name := l.Name
			if l.Mutable {
				name = "mut " + name
			}
			fmt.Fprintf(b, "| `%s` | `%s` | %s |\n", name, l.Type, l.Scope)
		}
	}

	if len(fn.Borrows) > 0 {
		b.WriteString("\n### Borrows\n\n")
		for _, br := range fn.Borrows {
			fmt.Fprintf(b, "- `%s` borrows `%s` (%s), %s\n",
				br.Borrower, br.Borrowed, br.Kind, br.Range)
		}
	}

	if len(fn.Allocs) > 0 {
		b.WriteString("\n### Allocations\n\n")
		for _, a := range fn.Allocs {
			fmt.Fprintf(b, "- %s\n", a)
		}
	}

	b.WriteString("\n### Blocks\n")
	for i := range fn.Blocks {
		markdownBlock(b, &fn.Blocks[i])
	}
}

func markdownProperties(b *strings.Builder, p explore.Properties) {
	fmt.Fprintf(b, "%d block(s), %d loop(s), %d branch(es)", p.Blocks, p.Loops, p.Branches)
	var extra []string
	if p.HasCleanup {
		extra = append(extra, "cleanup paths")
	}
	if p.HasPanic {
		extra = append(extra, "panic paths")
	}
	if p.Recursive {
		extra = append(extra, "recursion")
	}
	if len(extra) > 0 {
		fmt.Fprintf(b, "; has %s", strings.Join(extra, ", "))
	}
	b.WriteString(".\n")
}

func markdownBlock(b *strings.Builder, blk *explore.Block) {
	fmt.Fprintf(b, "\n#### bb%d (%s)\n\n", blk.ID, blk.Role)
	if blk.Summary != "" {
		fmt.Fprintf(b, "%s\n\n", blk.Summary)
	}
	b.WriteString("```\n")
	for _, st := range blk.Stmts {
		b.WriteString(st.Text)
		if st.Note != "" {
			b.WriteString("  // " + st.Note)
		}
		b.WriteByte('\n')
	}
	b.WriteString(blk.Term.Text)
	if blk.Term.Note != "" {
		b.WriteString("  // " + blk.Term.Note)
	}
	b.WriteString("\n```\n")
	for _, e := range blk.Edges {
		if e.Label != "" {
			fmt.Fprintf(b, "- %s -> bb%d (%s)\n", e.Label, e.To, e.Kind)
		} else {
			fmt.Fprintf(b, "- -> bb%d (%s)\n", e.To, e.Kind)
		}
	}
}
