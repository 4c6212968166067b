// Package logging constructs the engine's slog loggers and provides small
// helpers for attribute construction and component scoping.
//
// Two output formats are supported: "console" (human-oriented single line)
// and "json" (machine-oriented, RFC3339 UTC timestamps). Components obtain
// scoped loggers through NewComponentLogger so every record carries a
// component attribute.
package logging
