// Package trace provides structured event tracing for the decode/generate
// pipeline.
//
// # Usage
//
// Enable tracing via command-line flags:
//
//	l5cond gen --trace=- --trace-level=debug -d <base64>
//
// # Tracers
//
//   - Nop: zero-overhead no-op tracer when disabled
//   - StreamTracer: immediate write to output (file/stderr)
//   - RingTracer: circular buffer, dumped when decoding fails
//
// # Levels
//
//   - LevelOff: no tracing
//   - LevelError: only ring dumps on failure
//   - LevelPhase: driver operations and passes (decode, generate)
//   - LevelDebug: everything including one event per decoded token
//
// # Context propagation
//
//	ctx = trace.WithTracer(ctx, tracer)
//	t := trace.FromContext(ctx)
//
//	span := trace.Begin(t, trace.ScopePass, "decode", 0)
//	defer span.End("")
package trace
