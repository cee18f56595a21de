package emit

import (
	"fmt"
	"strings"

	"mirwalk/internal/explore"
)

var roleColors = map[string]string{
	"entry":   "darkgreen",
	"return":  "blue",
	"panic":   "red",
	"cleanup": "orange",
	"loop":    "purple",
	"branch":  "darkorange",
	"merge":   "teal",
}

// Dot renders one function as a Graphviz digraph with record-shaped
// nodes: the block heading on top, the statements and terminator below.
func Dot(fn *explore.Function) string {
	var b strings.Builder
	fmt.Fprintf(&b, "digraph %q {\n", fn.ShortName)
	b.WriteString("    node [shape=record, fontname=\"monospace\"];\n")

	for i := range fn.Blocks {
		blk := &fn.Blocks[i]
		var body strings.Builder
		fmt.Fprintf(&body, "bb%d (%s)", blk.ID, blk.Role)
		for _, st := range blk.Stmts {
			body.WriteByte('\n')
			body.WriteString(st.Text)
		}
		body.WriteByte('\n')
		body.WriteString(blk.Term.Text)

		attrs := fmt.Sprintf("label=\"{%s\\l}\"", escapeDot(body.String()))
		if color, ok := roleColors[blk.Role]; ok {
			attrs += fmt.Sprintf(", color=%s", color)
		}
		fmt.Fprintf(&b, "    bb%d [%s];\n", blk.ID, attrs)
	}

	for i := range fn.Blocks {
		blk := &fn.Blocks[i]
		for _, e := range blk.Edges {
			var attrs []string
			if e.Label != "" {
				attrs = append(attrs, fmt.Sprintf("label=%q", e.Label))
			}
			if e.Kind == "cleanup" {
				attrs = append(attrs, "style=dashed", "color=orange")
			}
			if len(attrs) > 0 {
				fmt.Fprintf(&b, "    bb%d -> bb%d [%s];\n", blk.ID, e.To, strings.Join(attrs, ", "))
			} else {
				fmt.Fprintf(&b, "    bb%d -> bb%d;\n", blk.ID, e.To)
			}
		}
	}
	b.WriteString("}\n")
	return b.String()
}
