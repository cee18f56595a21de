package trace_test

import (
	"strings"
	"testing"

	"mirwalk/internal/trace"
)

// TestParseLevel tests level parsing including the error case.
func TestParseLevel(t *testing.T) {
	tests := []struct {
		in      string
		want    trace.Level
		wantErr bool
	}{
		{"off", trace.LevelOff, false},
		{"phase", trace.LevelPhase, false},
		{"FUNCTION", trace.LevelFunction, false},
		{"debug", trace.LevelDebug, false},
		{"verbose", trace.LevelOff, true},
	}
	for _, tt := range tests {
		got, err := trace.ParseLevel(tt.in)
		if (err != nil) != tt.wantErr {
			t.Errorf("ParseLevel(%q) error = %v, wantErr %v", tt.in, err, tt.wantErr)
			continue
		}
		if got != tt.want {
			t.Errorf("ParseLevel(%q) = %v, want %v", tt.in, got, tt.want)
		}
	}
}

// TestLevel_ShouldEmit tests scope filtering per level.
func TestLevel_ShouldEmit(t *testing.T) {
	if trace.LevelOff.ShouldEmit(trace.ScopePhase) {
		t.Error("LevelOff emits phase events")
	}
	if !trace.LevelPhase.ShouldEmit(trace.ScopePhase) {
		t.Error("LevelPhase drops phase events")
	}
	if trace.LevelPhase.ShouldEmit(trace.ScopeFunction) {
		t.Error("LevelPhase emits function events")
	}
	if !trace.LevelDebug.ShouldEmit(trace.ScopeBlock) {
		t.Error("LevelDebug drops block events")
	}
}

// TestPoint_WritesLine tests the stream tracer output shape.
func TestPoint_WritesLine(t *testing.T) {
	var b strings.Builder
	tr := trace.New(&b, trace.LevelPhase)

	trace.Point(tr, trace.ScopePhase, "load", "demo.json")
	trace.Point(tr, trace.ScopeFunction, "analyze", "demo::main")

	out := b.String()
	if !strings.Contains(out, "load: demo.json") {
		t.Errorf("output = %q, want load event", out)
	}
	if strings.Contains(out, "demo::main") {
		t.Errorf("output = %q, function event leaked past phase level", out)
	}
	if !strings.Contains(out, "ms]") {
		t.Errorf("output = %q, want timestamp prefix", out)
	}
}

// TestNew_OffIsNop tests that the off level produces a disabled tracer.
func TestNew_OffIsNop(t *testing.T) {
	var b strings.Builder
	tr := trace.New(&b, trace.LevelOff)
	if tr.Enabled() {
		t.Error("Enabled() = true, want false at off level")
	}
	trace.Point(tr, trace.ScopePhase, "load", "")
	if b.Len() != 0 {
		t.Errorf("output = %q, want none", b.String())
	}
}
