// Package ui is the interactive terminal explorer: one function at a
// time, walking the control-flow graph edge by edge with the keyboard.
package ui

import (
	"fmt"
	"os"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/mattn/go-runewidth"

	"mirwalk/internal/explore"
)

// Explorer is the Bubble Tea model wrapping a path navigator.
type Explorer struct {
	mod       *explore.Module
	nav       *explore.Navigator
	filter    textinput.Model
	filtering bool
	width     int
	height    int
}

// NewExplorer builds the model positioned on the first function's entry.
func NewExplorer(m *explore.Module) *Explorer {
	filter := textinput.New()
	filter.Prompt = "filter: "
	filter.Placeholder = "function name"
	filter.CharLimit = 128
	return &Explorer{
		mod:    m,
		nav:    explore.NewNavigator(m),
		filter: filter,
		width:  80,
	}
}

// Run starts the explorer and blocks until the user quits.
func Run(m *explore.Module) error {
	program := tea.NewProgram(NewExplorer(m), tea.WithOutput(os.Stdout), tea.WithAltScreen())
	_, err := program.Run()
	return err
}

func (e *Explorer) Init() tea.Cmd {
	return nil
}

func (e *Explorer) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		if msg.Width > 0 {
			e.width = msg.Width
		}
		e.height = msg.Height
		return e, nil
	case tea.KeyMsg:
		return e.handleKey(msg)
	}
	return e, nil
}

func (e *Explorer) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if e.filtering {
		return e.handleFilterKey(msg)
	}

	switch msg.String() {
	case "q", "ctrl+c":
		return e, tea.Quit
	case "h", "left", "backspace":
		e.nav.StepBack()
	case "l", "right", "enter":
		e.nav.Follow()
	case "j", "down":
		e.nav.SelectNext()
	case "k", "up":
		e.nav.SelectPrev()
	case "g":
		e.nav.Reset()
	case "tab":
		e.nav.CycleFunc(1)
	case "shift+tab":
		e.nav.CycleFunc(-1)
	case "/":
		e.filtering = true
		e.filter.SetValue("")
		return e, e.filter.Focus()
	case "1", "2", "3", "4", "5", "6", "7", "8", "9":
		e.nav.JumpTo(int(msg.String()[0] - '1'))
	}
	return e, nil
}

func (e *Explorer) handleFilterKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.Type {
	case tea.KeyEscape:
		e.filtering = false
		e.filter.Blur()
		return e, nil
	case tea.KeyEnter:
		e.filtering = false
		e.filter.Blur()
		e.applyFilter(e.filter.Value())
		return e, nil
	}
	var cmd tea.Cmd
	e.filter, cmd = e.filter.Update(msg)
	return e, cmd
}

// applyFilter switches to the first function matching the filter text.
func (e *Explorer) applyFilter(filter string) {
	if filter == "" {
		return
	}
	for _, fn := range e.mod.Functions {
		if matchesFilter(fn.ShortName, filter) || matchesFilter(fn.Name, filter) {
			e.nav.SwitchTo(fn.Name)
			return
		}
	}
}

func (e *Explorer) View() string {
	fn := e.nav.Current()
	if fn == nil {
		return dimStyle.Render("module has no functions") + "\n"
	}

	var b strings.Builder
	e.viewHeader(&b, fn)
	e.viewPath(&b)
	b.WriteByte('\n')

	blk := e.nav.CurrentBlock()
	if blk == nil {
		b.WriteString(dimStyle.Render("no block under cursor") + "\n")
		return b.String()
	}
	e.viewBlock(&b, fn, blk)
	e.viewEdges(&b, blk)
	e.viewBorrows(&b, fn, blk)
	b.WriteByte('\n')
	b.WriteString(e.helpLine())
	return b.String()
}

func (e *Explorer) viewHeader(b *strings.Builder, fn *explore.Function) {
	title := fmt.Sprintf("%s :: %s", e.mod.Name, fn.ShortName)
	if fn.Span != "" {
		title += "  " + fn.Span
	}
	b.WriteString(titleStyle.Render(truncate(title, e.width)))
	b.WriteByte('\n')
	p := fn.Properties
	summary := fmt.Sprintf("%d block(s), %d loop(s), %d branch(es)", p.Blocks, p.Loops, p.Branches)
	if p.Recursive {
		summary += ", recursive"
	}
	b.WriteString(dimStyle.Render(summary))
	b.WriteByte('\n')
	if e.filtering {
		b.WriteString(e.filter.View() + "\n")
	}
}

func (e *Explorer) viewPath(b *strings.Builder) {
	parts := make([]string, 0, len(e.nav.Path()))
	for _, id := range e.nav.Path() {
		parts = append(parts, fmt.Sprintf("bb%d", id))
	}
	b.WriteString(pathStyle.Render("path: " + strings.Join(parts, " -> ")))
	b.WriteByte('\n')
}

func (e *Explorer) viewBlock(b *strings.Builder, fn *explore.Function, blk *explore.Block) {
	heading := fmt.Sprintf("bb%d", blk.ID)
	b.WriteString(roleStyle(blk.Role).Render(heading) + " " + dimStyle.Render("("+blk.Role+")"))
	if blk.Summary != "" {
		b.WriteString("  " + dimStyle.Render(blk.Summary))
	}
	b.WriteByte('\n')

	for _, st := range blk.Stmts {
		b.WriteString("  " + truncate(st.Text, e.width-2))
		if st.Note != "" {
			b.WriteString(noteStyle.Render("  // " + st.Note))
		}
		if len(st.LiveBorrows) > 0 {
			labels := make([]string, len(st.LiveBorrows))
			for i, idx := range st.LiveBorrows {
				labels[i] = borrowLabel(fn, idx)
			}
			b.WriteString(borrowStyle.Render("  [" + strings.Join(labels, " ") + "]"))
		}
		b.WriteByte('\n')
	}
	b.WriteString("  " + truncate(blk.Term.Text, e.width-2))
	if blk.Term.Note != "" {
		b.WriteString(noteStyle.Render("  // " + blk.Term.Note))
	}
	b.WriteByte('\n')
}

func (e *Explorer) viewEdges(b *strings.Builder, blk *explore.Block) {
	if len(blk.Edges) == 0 {
		b.WriteString(dimStyle.Render("\nterminal block, no outgoing edges\n"))
		return
	}
	b.WriteString("\n" + headerStyle.Render("edges") + "\n")
	for i, edge := range blk.Edges {
		label := fmt.Sprintf("%d. -> bb%d (%s)", i+1, edge.To, edge.Kind)
		if edge.Label != "" {
			label += " " + edge.Label
		}
		if i == e.nav.SelectedEdge() {
			b.WriteString("  " + selectedStyle.Render(label))
		} else {
			b.WriteString("  " + label)
		}
		b.WriteByte('\n')
	}
}

func (e *Explorer) viewBorrows(b *strings.Builder, fn *explore.Function, blk *explore.Block) {
	if len(fn.Borrows) == 0 {
		return
	}
	b.WriteString("\n" + headerStyle.Render("borrows") + "\n")
	for _, br := range fn.Borrows {
		line := fmt.Sprintf("%s %s of %s by %s, %s",
			br.Label, br.Kind, br.Borrowed, br.Borrower, br.Range)
		b.WriteString("  " + truncate(line, e.width-2))
		b.WriteByte('\n')
	}
}

func (e *Explorer) helpLine() string {
	return dimStyle.Render("h back  l follow  j/k edge  1-9 select  g entry  tab fn  / filter  q quit")
}

func borrowLabel(fn *explore.Function, idx int) string {
	if idx >= 0 && idx < len(fn.Borrows) {
		return fn.Borrows[idx].Label
	}
	return fmt.Sprintf("'b%d", idx)
}

func truncate(value string, width int) string {
	if width <= 0 || runewidth.StringWidth(value) <= width {
		return value
	}
	if width <= 3 {
		return runewidth.Truncate(value, width, "")
	}
	return runewidth.Truncate(value, width-3, "...")
}
