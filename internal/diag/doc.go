// Package diag defines the diagnostic model shared by the lexer, the parser and
// the driver.
//
// # Data model
//
// Diagnostic is the central record:
//
//   - Severity – tri-level enum (Info, Warning, Error) defined in severity.go.
//   - Code – compact numeric identifier (see codes.go) with stable string form
//     (LEX1xxx, SYN2xxx, IO4xxx, PRJ5xxx, OBS6xxx).
//   - Message – human oriented text; keep it short and actionable.
//   - Primary span – the canonical source.Span pointing to the issue.
//   - Notes – optional secondary spans/messages for additional context.
//   - Fixes – optional text edits (e.g. "insert `;`").
//
// # Emitting diagnostics
//
// Phases report through a Reporter. The parser builds a ReportBuilder via
// ReportError and chains WithNote / WithFix before calling Emit. BagReporter
// aggregates diagnostics into a Bag, which supports sorting, deduplication and
// merging. Rendering lives in internal/diagfmt; package diag does no IO.
package diag
