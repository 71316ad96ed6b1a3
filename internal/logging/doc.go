// Package logging builds the slog loggers used by the thermbat CLI and
// workflow service.
//
// It owns the console and JSON handlers, level parsing and the request-scoped
// fields (request ID, battery, tag) that workflow code attaches through the
// context. NewNop gives tests and optional wiring a logger that discards
// everything.
package logging
