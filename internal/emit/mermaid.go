package emit

import (
	"fmt"
	"strings"

	"mirwalk/internal/explore"
)

// Mermaid renders one function as a Mermaid flowchart. Node classes carry
// the block roles so the diagram can be styled per role.
func Mermaid(fn *explore.Function) string {
	var b strings.Builder
	b.WriteString("flowchart TD\n")
	for i := range fn.Blocks {
		blk := &fn.Blocks[i]
		label := fmt.Sprintf("bb%d", blk.ID)
		if blk.Role != "normal" {
			label += " (" + blk.Role + ")"
		}
		if blk.Term.Text != "" {
			label += "\n" + blk.Term.Text
		}
		fmt.Fprintf(&b, "    bb%d[\"%s\"]\n", blk.ID, escapeMermaid(label))
	}
	for i := range fn.Blocks {
		blk := &fn.Blocks[i]
		for _, e := range blk.Edges {
			arrow := "-->"
			if e.Kind == "cleanup" {
				arrow = "-.->"
			}
			if e.Label != "" {
				fmt.Fprintf(&b, "    bb%d %s|%s| bb%d\n", blk.ID, arrow, escapeMermaid(e.Label), e.To)
			} else {
				fmt.Fprintf(&b, "    bb%d %s bb%d\n", blk.ID, arrow, e.To)
			}
		}
	}
	for i := range fn.Blocks {
		blk := &fn.Blocks[i]
		if blk.Role != "normal" {
			fmt.Fprintf(&b, "    class bb%d %s\n", blk.ID, blk.Role)
		}
	}
	b.WriteString(mermaidClassDefs)
	return b.String()
}

const mermaidClassDefs = `    classDef entry fill:#d4edda,stroke:#155724
    classDef return fill:#cce5ff,stroke:#004085
    classDef panic fill:#f8d7da,stroke:#721c24
    classDef cleanup fill:#fff3cd,stroke:#856404
    classDef loop fill:#e2d9f3,stroke:#4a2d7f
    classDef branch fill:#ffe5d0,stroke:#7f3f00
    classDef merge fill:#d1ecf1,stroke:#0c5460
`
