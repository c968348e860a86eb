// Package codegen renders a decoded condition model as source text in one of
// the target dialects (see internal/dialect).
//
// Every block of the model becomes an independent top-level guard that sets
// `result` when all of its conditions hold. The C dialect joins a block's
// conditions with && in one guard; Squirrel nests one guard per condition.
// Two-stage bit-flag conditions always nest: an outer guard on the last
// global bit-flag id and, when a value check is present, an inner guard on
// the looked-up flag value.
//
// Output is a pure function of the model and the options.
package codegen
