// Package emit renders an explored module into the supported output
// formats: markdown, Mermaid, Graphviz DOT, ASCII diagrams, and JSON.
// Emitters are pure; they take the rendered model and return text.
package emit

import "strings"

var dotEscaper = strings.NewReplacer(
	`\`, `\\`,
	`"`, `\"`,
	"{", `\{`,
	"}", `\}`,
	"|", `\|`,
	"<", `\<`,
	">", `\>`,
	"\n", `\l`,
)

// escapeDot escapes text for use inside a DOT record label.
func escapeDot(s string) string {
	return dotEscaper.Replace(s)
}

var mermaidEscaper = strings.NewReplacer(
	`"`, "&quot;",
	"<", "&lt;",
	">", "&gt;",
	"\n", "<br/>",
)

// escapeMermaid escapes text for use inside a Mermaid node label.
func escapeMermaid(s string) string {
	return mermaidEscaper.Replace(s)
}
