// Package fuzztests houses Go fuzz harnesses for the payload pipeline
// (bytes -> decoder -> model -> codegen). Arbitrary input must never panic or
// hang, and every successfully decoded model must satisfy the model
// invariants and generate identical text on repeated runs.
package fuzztests
