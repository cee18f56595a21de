package driver

import (
	"context"
	"fmt"
	"os"

	"mirwalk/internal/explore"
	"mirwalk/internal/mir"
	"mirwalk/internal/observ"
	"mirwalk/internal/render"
	"mirwalk/internal/trace"
)

// Options configures one analysis run.
type Options struct {
	Render render.Options
	// Cache enables the content-addressed result cache. The cache is
	// keyed by the dump bytes, so render options must be part of the
	// decision to use it; cached entries were built with the options
	// in effect when they were stored.
	Cache  bool
	Tracer trace.Tracer
	Timer  *observ.Timer
}

// Analyze loads a module dump and runs the full pipeline over it:
// decode, validate, index, and per-function analysis. With caching
// enabled, a dump that hashes to a known key skips straight to the
// stored result.
func Analyze(ctx context.Context, path string, opts Options) (*explore.Module, error) {
	timer := opts.Timer
	if timer == nil {
		timer = observ.NewTimer()
	}

	phase := timer.Begin("load")
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read module dump: %w", err)
	}
	phase.End(fmt.Sprintf("%d bytes", len(data)))

	var cache *DiskCache
	if opts.Cache {
		cache, err = OpenDiskCache("mirwalk")
		if err != nil {
			// Cache failures degrade to a cold run.
			trace.Point(opts.Tracer, trace.ScopePhase, "cache", fmt.Sprintf("unavailable: %v", err))
			cache = nil
		}
	}
	key := HashBytes(data)
	if cache != nil {
		if cached, ok, err := cache.Get(key); err == nil && ok {
			trace.Point(opts.Tracer, trace.ScopePhase, "cache", "hit")
			return cached, nil
		}
	}

	phase = timer.Begin("decode")
	m, err := Decode(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	phase.End(fmt.Sprintf("%d function(s)", len(m.Funcs)))

	phase = timer.Begin("validate")
	if err := mir.Validate(m); err != nil {
		return nil, fmt.Errorf("%s: invalid module: %w", path, err)
	}
	phase.End("")

	phase = timer.Begin("analyze")
	rc := render.NewContext(m, opts.Render)
	out, err := explore.Build(ctx, m, rc)
	if err != nil {
		return nil, err
	}
	phase.End("")
	if opts.Tracer != nil && opts.Tracer.Enabled() {
		for _, fn := range out.Functions {
			trace.Point(opts.Tracer, trace.ScopeFunction, fn.ShortName,
				fmt.Sprintf("%d block(s)", fn.Properties.Blocks))
		}
	}

	if cache != nil {
		if err := cache.Put(key, out); err != nil {
			trace.Point(opts.Tracer, trace.ScopePhase, "cache", fmt.Sprintf("store failed: %v", err))
		}
	}
	return out, nil
}
