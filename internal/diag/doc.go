// Package diag defines the recoverable findings produced while decoding a
// condition payload.
//
// Fatal problems (out-of-bounds reads, unknown functions, arity mismatches)
// are returned as errors and abort decoding. Everything the decoder can step
// over, such as a comparator with nothing to compare, is recorded here as a
// Diagnostic pointing at the byte range of the offending token, and decoding
// continues.
//
// Producers report through a Reporter; BagReporter collects into a Bag, which
// supports sorting and limits. Rendering lives in the CLI.
package diag
