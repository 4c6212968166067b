// Package identity defines the shared data model for the identification
// engine: the per-disc request, catalog candidates, track descriptors, and
// the file-to-track reconciliation mapping exchanged between strategies,
// validators, and callers.
//
// It also carries the outcome taxonomy. Strategy failures are classified with
// sentinel errors (unavailable, transient, permanent, low confidence, parse)
// so the orchestrator can decide whether to fall through to the next strategy
// without inspecting error strings. None of these outcomes is fatal to an
// identification call.
package identity
