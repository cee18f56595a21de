package emit

import (
	"fmt"
	"strings"

	"github.com/mattn/go-runewidth"

	"mirwalk/internal/explore"
)

// ASCII renders one function as boxed blocks listed in ID order with
// arrow lines for edges. Box widths use display width, not byte length,
// so labels with wide runes stay aligned.
func ASCII(fn *explore.Function) string {
	var b strings.Builder
	fmt.Fprintf(&b, "fn %s\n", fn.ShortName)
	for i := range fn.Blocks {
		blk := &fn.Blocks[i]
		b.WriteByte('\n')
		asciiBlock(&b, blk)
		for _, e := range blk.Edges {
			if e.Label != "" {
				fmt.Fprintf(&b, "  -> bb%d (%s)\n", e.To, e.Label)
			} else {
				fmt.Fprintf(&b, "  -> bb%d\n", e.To)
			}
		}
	}
	return b.String()
}

func asciiBlock(b *strings.Builder, blk *explore.Block) {
	heading := fmt.Sprintf("bb%d", blk.ID)
	if blk.Role != "normal" {
		heading += " (" + blk.Role + ")"
	}

	lines := make([]string, 0, len(blk.Stmts)+1)
	for _, st := range blk.Stmts {
		lines = append(lines, st.Text)
	}
	lines = append(lines, blk.Term.Text)

	width := runewidth.StringWidth(heading)
	for _, line := range lines {
		if w := runewidth.StringWidth(line); w > width {
			width = w
		}
	}

	border := "+" + strings.Repeat("-", width+2) + "+"
	b.WriteString(border + "\n")
	b.WriteString("| " + pad(heading, width) + " |\n")
	b.WriteString(border + "\n")
	for _, line := range lines {
		b.WriteString("| " + pad(line, width) + " |\n")
	}
	b.WriteString(border + "\n")
}

func pad(s string, width int) string {
	return s + strings.Repeat(" ", width-runewidth.StringWidth(s))
}
