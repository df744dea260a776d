package diag

import (
	"crest/internal/source"
)

type Note struct {
	Span source.Span `json:"span"`
	Msg  string      `json:"msg"`
}

// FixEdit replaces the text under Span with NewText, or inserts NewText
// before Span.Start when Insert is set.
type FixEdit struct {
	Span    source.Span `json:"span"`
	NewText string      `json:"new_text"`
	Insert  bool        `json:"insert,omitempty"`
}

type Fix struct {
	Title string    `json:"title"`
	Edits []FixEdit `json:"edits"`
}

type Diagnostic struct {
	Severity Severity    `json:"severity"`
	Code     Code        `json:"code"`
	Message  string      `json:"message"`
	Primary  source.Span `json:"primary"`
	Notes    []Note      `json:"notes,omitempty"`
	Fixes    []Fix       `json:"fixes,omitempty"`
}

// NewError returns an error-level diagnostic without notes or fixes.
func NewError(code Code, primary source.Span, msg string) Diagnostic {
	return Diagnostic{Severity: SevError, Code: code, Primary: primary, Message: msg}
}

// WithNote returns a copy of d with one more note; d itself is not changed.
func (d Diagnostic) WithNote(sp source.Span, msg string) Diagnostic {
	d.Notes = append(d.Notes[:len(d.Notes):len(d.Notes)], Note{Span: sp, Msg: msg})
	return d
}

// WithFix returns a copy of d with one more fix.
func (d Diagnostic) WithFix(title string, edits ...FixEdit) Diagnostic {
	d.Fixes = append(d.Fixes[:len(d.Fixes):len(d.Fixes)], Fix{Title: title, Edits: edits})
	return d
}
