package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"arrowgraph/internal/trace"
)

var (
	traceCleanup func()
	// crashRing keeps recent events when tracing has no output; dumped on failure.
	crashRing *trace.RingTracer
)

const crashRingSize = 512

// setupTracing inspects trace-related flags and attaches a tracer to the
// command context. It returns a cleanup function that flushes and closes it.
func setupTracing(cmd *cobra.Command) (func(), error) {
	root := cmd.Root()

	traceOutput, err := root.PersistentFlags().GetString("trace")
	if err != nil {
		return nil, fmt.Errorf("failed to get trace flag: %w", err)
	}
	levelStr, err := root.PersistentFlags().GetString("trace-level")
	if err != nil {
		return nil, fmt.Errorf("failed to get trace-level flag: %w", err)
	}
	formatStr, err := root.PersistentFlags().GetString("trace-format")
	if err != nil {
		return nil, fmt.Errorf("failed to get trace-format flag: %w", err)
	}

	level, err := trace.ParseLevel(levelStr)
	if err != nil {
		return nil, fmt.Errorf("invalid trace level: %w", err)
	}
	// --trace без уровня включает фазы
	if level == trace.LevelOff && traceOutput != "" && !root.PersistentFlags().Changed("trace-level") {
		level = trace.LevelPhase
	}
	if level == trace.LevelOff {
		cmd.SetContext(trace.WithTracer(cmd.Context(), trace.Nop))
		return func() {}, nil
	}

	format, err := trace.ParseFormat(formatStr)
	if err != nil {
		return nil, fmt.Errorf("invalid trace format: %w", err)
	}

	var tracer trace.Tracer
	if traceOutput == "" {
		// без --trace события держим в памяти и печатаем только при сбое
		crashRing = trace.NewRingTracer(crashRingSize, level)
		tracer = crashRing
	} else {
		tracer, err = trace.New(trace.Config{
			Level:      level,
			Format:     format,
			OutputPath: traceOutput,
		})
		if err != nil {
			return nil, fmt.Errorf("failed to create tracer: %w", err)
		}
	}

	ctx := trace.WithTracer(cmd.Context(), tracer)
	cmd.SetContext(ctx)
	cmd.Root().SetContext(ctx)

	cleanup := func() {
		if err := tracer.Flush(); err != nil {
			fmt.Fprintf(cmd.ErrOrStderr(), "trace: flush error: %v\n", err)
		}
		if err := tracer.Close(); err != nil {
			fmt.Fprintf(cmd.ErrOrStderr(), "trace: close error: %v\n", err)
		}
	}
	return cleanup, nil
}

// dumpCrashTrace writes the in-memory trace to stderr, if one is kept.
func dumpCrashTrace() {
	if crashRing == nil {
		return
	}
	fmt.Fprintln(os.Stderr, "--- recent trace events ---")
	if err := crashRing.Dump(os.Stderr, trace.FormatText); err != nil {
		fmt.Fprintf(os.Stderr, "trace: dump error: %v\n", err)
	}
}

// dumpTraceOnPanic dumps the in-memory trace and re-panics.
func dumpTraceOnPanic() {
	if r := recover(); r != nil {
		dumpCrashTrace()
		panic(r)
	}
}

func runTraceCleanup() {
	if traceCleanup != nil {
		traceCleanup()
		traceCleanup = nil
	}
}
