// Package logging wires log/slog for mixdown.
//
// New builds a logger from config-level options (console or JSON output);
// NewComponentLogger attaches the standard component attribute so console
// lines read "INFO export: ...". Typed attr helpers keep call sites terse.
package logging
