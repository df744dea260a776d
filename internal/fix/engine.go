package fix

import (
	"errors"
	"fmt"
	"sort"

	"crest/internal/diag"
	"crest/internal/source"
)

// ErrNoFixes is returned when no fixes were applied.
var ErrNoFixes = errors.New("no applicable fixes found")

// ApplyMode determines selection strategy for fixes.
type ApplyMode uint8

const (
	// ApplyModeOnce применяет только первый (по позиции) fix.
	ApplyModeOnce ApplyMode = iota
	// ApplyModeAll применяет все непересекающиеся fixes.
	ApplyModeAll
)

// ApplyOptions configures how fixes are selected.
type ApplyOptions struct {
	Mode ApplyMode
}

// AppliedFix records a successfully applied fix.
type AppliedFix struct {
	Title     string
	Code      diag.Code
	Message   string
	At        source.LineCol
	EditCount int
}

// SkippedFix captures a skipped fix with a reason.
type SkippedFix struct {
	Title  string
	Reason string
}

// ApplyResult aggregates applied and skipped fixes plus the rewritten text.
type ApplyResult struct {
	Applied []AppliedFix
	Skipped []SkippedFix
	Content []byte
}

type candidate struct {
	diag  diag.Diagnostic
	fix   diag.Fix
	order int
}

// edit: правка в координатах исходного файла: руны [start, end) заменяются на text.
type edit struct {
	start, end uint32
	text       string
}

// Apply collects fixes attached to diagnostics for file, selects a subset
// according to opts and returns the rewritten content. The file itself is
// left untouched; writing the result back is up to the caller.
func Apply(file *source.File, diagnostics []diag.Diagnostic, opts ApplyOptions) (*ApplyResult, error) {
	result := &ApplyResult{}
	if file == nil {
		return result, fmt.Errorf("fix: file is nil")
	}

	candidates := gatherCandidates(file.ID, diagnostics)
	if len(candidates) == 0 {
		return result, ErrNoFixes
	}
	sortCandidates(candidates)

	var accepted []edit
	for _, cand := range candidates {
		if opts.Mode == ApplyModeOnce && len(result.Applied) > 0 {
			break
		}
		edits, reason := resolveEdits(file, cand.fix)
		if reason == "" && conflicts(accepted, edits) {
			reason = "conflicts with previously applied edits"
		}
		if reason != "" {
			result.Skipped = append(result.Skipped, SkippedFix{Title: cand.fix.Title, Reason: reason})
			continue
		}
		accepted = append(accepted, edits...)
		result.Applied = append(result.Applied, AppliedFix{
			Title:     cand.fix.Title,
			Code:      cand.diag.Code,
			Message:   cand.diag.Message,
			At:        file.LineCol(cand.diag.Primary.Start),
			EditCount: len(edits),
		})
	}
	if len(result.Applied) == 0 {
		return result, ErrNoFixes
	}
	result.Content = splice(file.Chars, accepted)
	return result, nil
}

// gatherCandidates keeps fixes with at least one edit; diagnostics of other
// files are ignored.
func gatherCandidates(id source.FileID, diagnostics []diag.Diagnostic) []candidate {
	var out []candidate
	for _, d := range diagnostics {
		if d.Primary.File != id {
			continue
		}
		for _, f := range d.Fixes {
			if len(f.Edits) == 0 {
				continue
			}
			out = append(out, candidate{diag: d, fix: f, order: len(out)})
		}
	}
	return out
}

func sortCandidates(cands []candidate) {
	sort.SliceStable(cands, func(i, j int) bool {
		a, b := cands[i].diag.Primary, cands[j].diag.Primary
		if a.Start != b.Start {
			return a.Start < b.Start
		}
		return cands[i].order < cands[j].order
	})
}

// resolveEdits переводит FixEdit в полуоткрытые интервалы.
// Непустая причина означает, что fix применить нельзя.
func resolveEdits(file *source.File, f diag.Fix) ([]edit, string) {
	n := file.Len()
	out := make([]edit, 0, len(f.Edits))
	for _, fe := range f.Edits {
		if fe.Span.File != file.ID {
			return nil, "edit targets another file"
		}
		e := edit{start: fe.Span.Start, end: fe.Span.Start, text: fe.NewText}
		if !fe.Insert {
			if fe.Span.End < fe.Span.Start {
				return nil, "edit span out of range"
			}
			e.end = fe.Span.End + 1
		}
		if e.end > n {
			return nil, "edit span out of range"
		}
		if conflicts(out, []edit{e}) {
			return nil, "fix has overlapping edits"
		}
		out = append(out, e)
	}
	return out, ""
}

func conflicts(existing, edits []edit) bool {
	for _, prev := range existing {
		for _, e := range edits {
			if spansConflict(prev, e) {
				return true
			}
		}
	}
	return false
}

// spansConflict reports whether two edits overlap. Two inserts conflict only
// at the same position, since their relative order would be ambiguous.
// An insert conflicts with a replacement strictly inside it.
func spansConflict(a, b edit) bool {
	aEmpty, bEmpty := a.start == a.end, b.start == b.end
	switch {
	case aEmpty && bEmpty:
		return a.start == b.start
	case aEmpty:
		return b.start < a.start && a.start < b.end
	case bEmpty:
		return a.start < b.start && b.start < a.end
	}
	return a.start < b.end && b.start < a.end
}

// splice применяет правки с конца, чтобы смещения оставались валидными.
func splice(chars []rune, edits []edit) []byte {
	sorted := append([]edit(nil), edits...)
	sort.SliceStable(sorted, func(i, j int) bool {
		if sorted[i].start != sorted[j].start {
			return sorted[i].start > sorted[j].start
		}
		return sorted[i].end > sorted[j].end
	})
	out := append([]rune(nil), chars...)
	for _, e := range sorted {
		tail := append([]rune(nil), out[e.end:]...)
		out = append(append(out[:e.start], []rune(e.text)...), tail...)
	}
	return []byte(string(out))
}
