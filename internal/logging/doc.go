// Package logging assembles the structured slog loggers used by the import
// pipelines.
//
// It centralizes level parsing, console/JSON handler selection, and the
// optional log-file tee, and provides a no-op logger for tests. Prefer these
// constructors over hand-rolled slog setup so every component emits the same
// line shape.
package logging
