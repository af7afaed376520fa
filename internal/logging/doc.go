// Package logging builds slog loggers for scribe with console and JSON
// handlers, context-derived structured fields, and attr helpers shared by
// every component.
package logging
