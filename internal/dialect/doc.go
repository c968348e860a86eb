// Package dialect describes the target languages generated code is written
// in: their spelling of the condition function, local declarations and
// boolean literals, and their keyword sets.
//
// It holds no rendering logic; codegen and highlight read these tables.
package dialect
