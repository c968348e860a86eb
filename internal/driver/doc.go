// Package driver wires the pipeline together for the CLI: base64 payload
// text in, decoded model, diagnostics and generated code out. Batch runs many
// payloads concurrently and reports progress through a ProgressSink.
package driver
