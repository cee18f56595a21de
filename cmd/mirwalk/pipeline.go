package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"mirwalk/internal/config"
	"mirwalk/internal/driver"
	"mirwalk/internal/explore"
	"mirwalk/internal/observ"
	"mirwalk/internal/render"
	"mirwalk/internal/trace"
)

// runPipeline wires the shared flags into one analysis run: config
// discovery, trace setup, the cache switch, and the timing report.
func runPipeline(cmd *cobra.Command, dumpPath string) (*explore.Module, error) {
	cfg, err := config.Load(".")
	if err != nil {
		return nil, err
	}

	traceLevel, _ := cmd.Flags().GetString("trace")
	level, err := trace.ParseLevel(traceLevel)
	if err != nil {
		return nil, err
	}
	tracer := trace.New(cmd.ErrOrStderr(), level)

	showSpans, _ := cmd.Flags().GetBool("spans")
	allocDepth, _ := cmd.Flags().GetInt("alloc-depth")
	if allocDepth <= 0 {
		allocDepth = cfg.Render.AllocDepth
	}
	noCache, _ := cmd.Flags().GetBool("no-cache")

	timer := observ.NewTimer()
	opts := driver.Options{
		Render: render.Options{
			ShowSpans:  showSpans || cfg.Render.ShowSpans,
			AllocDepth: allocDepth,
		},
		Cache:  cfg.Cache.Enabled && !noCache,
		Tracer: tracer,
		Timer:  timer,
	}

	out, err := driver.Analyze(cmd.Context(), dumpPath, opts)
	if err != nil {
		return nil, err
	}

	if timings, _ := cmd.Flags().GetBool("timings"); timings {
		fmt.Fprint(os.Stderr, timer.Summary())
	}
	return out, nil
}

// pickFunction selects one function by name, defaulting to the first.
func pickFunction(m *explore.Module, name string) (*explore.Function, error) {
	if len(m.Functions) == 0 {
		return nil, fmt.Errorf("module has no functions")
	}
	if name == "" {
		return m.Functions[0], nil
	}
	for _, fn := range m.Functions {
		if fn.Name == name || fn.ShortName == name {
			return fn, nil
		}
	}
	return nil, fmt.Errorf("no function named %q in module", name)
}
