// Package trace provides lightweight leveled tracing of the analysis
// pipeline. A tracer at LevelOff has near-zero cost; callers gate event
// construction on Enabled.
package trace

import (
	"fmt"
	"io"
	"sync"
	"time"
)

// Tracer records events. Implementations must be goroutine-safe.
type Tracer interface {
	Emit(ev *Event)
	Level() Level
	Enabled() bool
}

// New returns a tracer writing text lines to w, or a no-op tracer when
// the level is off.
func New(w io.Writer, level Level) Tracer {
	if level == LevelOff || w == nil {
		return nopTracer{}
	}
	return &streamTracer{w: w, level: level, start: time.Now()}
}

// Point emits an instant event when the tracer level admits its scope.
func Point(t Tracer, scope Scope, name, detail string) {
	if t == nil || !t.Enabled() || !t.Level().ShouldEmit(scope) {
		return
	}
	t.Emit(&Event{Time: time.Now(), Scope: scope, Name: name, Detail: detail})
}

type nopTracer struct{}

func (nopTracer) Emit(*Event)   {}
func (nopTracer) Level() Level  { return LevelOff }
func (nopTracer) Enabled() bool { return false }

type streamTracer struct {
	mu    sync.Mutex
	w     io.Writer
	level Level
	start time.Time
}

func (t *streamTracer) Emit(ev *Event) {
	t.mu.Lock()
	defer t.mu.Unlock()
	offset := ev.Time.Sub(t.start)
	if ev.Detail != "" {
		fmt.Fprintf(t.w, "[%8.3fms] %-8s %s: %s\n", millis(offset), ev.Scope, ev.Name, ev.Detail)
		return
	}
	fmt.Fprintf(t.w, "[%8.3fms] %-8s %s\n", millis(offset), ev.Scope, ev.Name)
}

func (t *streamTracer) Level() Level  { return t.level }
func (t *streamTracer) Enabled() bool { return true }

func millis(d time.Duration) float64 {
	return float64(d) / float64(time.Millisecond)
}
