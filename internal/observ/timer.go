// Package observ measures wall-clock time of the analysis pipeline's
// phases (load, decode, validate, analyze) for the timings report.
package observ

import (
	"fmt"
	"strings"
	"time"
)

// Phase is one timed pipeline step, open from Begin until End.
type Phase struct {
	Name string
	Note string

	start time.Time
	dur   time.Duration
}

// End closes the phase and attaches an optional note. Safe on nil.
func (p *Phase) End(note string) {
	if p == nil {
		return
	}
	p.dur = time.Since(p.start)
	p.Note = note
}

// Millis returns the phase duration in milliseconds, 0 while open.
func (p *Phase) Millis() float64 {
	return float64(p.dur) / float64(time.Millisecond)
}

// Timer collects the phases of one pipeline run in begin order.
type Timer struct {
	phases []*Phase
}

// NewTimer returns an empty timer.
func NewTimer() *Timer { return &Timer{} }

// Begin opens a named phase. The caller closes it with End.
func (t *Timer) Begin(name string) *Phase {
	p := &Phase{Name: name, start: time.Now()}
	t.phases = append(t.phases, p)
	return p
}

// Phases returns the recorded phases in begin order.
func (t *Timer) Phases() []*Phase {
	return t.phases
}

// TotalMillis sums all phase durations in milliseconds.
func (t *Timer) TotalMillis() float64 {
	var total time.Duration
	for _, p := range t.phases {
		total += p.dur
	}
	return float64(total) / float64(time.Millisecond)
}

// Summary renders the phases as an aligned text block for stderr.
func (t *Timer) Summary() string {
	var b strings.Builder
	b.WriteString("timings:\n")
	for _, p := range t.phases {
		fmt.Fprintf(&b, "  %-10s %7.2f ms", p.Name, p.Millis())
		if p.Note != "" {
			b.WriteString("  // " + p.Note)
		}
		b.WriteByte('\n')
	}
	fmt.Fprintf(&b, "  %-10s %7.2f ms\n", "total", t.TotalMillis())
	return b.String()
}
