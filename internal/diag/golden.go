package diag

import (
	"fmt"
	"path/filepath"
	"sort"
	"strings"

	"crest/internal/source"
)

// GoldenOpts selects the extra lines emitted besides the primary ones.
type GoldenOpts struct {
	Notes bool // строка "note" на каждую заметку, в её собственной позиции
	Fixes bool // строка "fix" с заголовком fix в позиции диагностики
}

type goldenLine struct {
	kind string // error | warning | info | note | fix
	code string
	path string
	pos  source.LineCol
	msg  string
}

func (l goldenLine) String() string {
	return fmt.Sprintf("%s %s %s:%d:%d %s", l.kind, l.code, l.path, l.pos.Line, l.pos.Col, l.msg)
}

// FormatGoldenDiagnostics renders diagnostics as stable single-line entries
// for golden files, sorted by path, position, kind, code and message.
// Entries whose file is unknown to fs are skipped; the result has no
// trailing newline and is empty when nothing remains.
func FormatGoldenDiagnostics(diags []Diagnostic, fs *source.FileSet, opts GoldenOpts) string {
	if fs == nil || len(diags) == 0 {
		return ""
	}

	lines := make([]goldenLine, 0, len(diags))
	add := func(kind string, code Code, span source.Span, msg string) {
		file := fs.Get(span.File)
		if file == nil {
			return
		}
		lines = append(lines, goldenLine{
			kind: kind,
			code: code.ID(),
			path: goldenPath(file, fs.BaseDir()),
			pos:  file.LineCol(span.Start),
			msg:  oneLine(msg),
		})
	}
	for i := range diags {
		d := &diags[i]
		add(d.Severity.Label(), d.Code, d.Primary, d.Message)
		if opts.Notes {
			for _, n := range d.Notes {
				add("note", d.Code, n.Span, n.Msg)
			}
		}
		if opts.Fixes {
			for _, f := range d.Fixes {
				add("fix", d.Code, d.Primary, f.Title)
			}
		}
	}

	sort.SliceStable(lines, func(i, j int) bool {
		a, b := lines[i], lines[j]
		switch {
		case a.path != b.path:
			return a.path < b.path
		case a.pos.Line != b.pos.Line:
			return a.pos.Line < b.pos.Line
		case a.pos.Col != b.pos.Col:
			return a.pos.Col < b.pos.Col
		case a.kind != b.kind:
			return a.kind < b.kind
		case a.code != b.code:
			return a.code < b.code
		}
		return a.msg < b.msg
	})

	out := make([]string, len(lines))
	for i, l := range lines {
		out[i] = l.String()
	}
	return strings.Join(out, "\n")
}

func goldenPath(file *source.File, baseDir string) string {
	p := filepath.ToSlash(file.FormatPath("relative", baseDir))
	for strings.HasPrefix(p, "./") {
		p = strings.TrimPrefix(p, "./")
	}
	return p
}

// oneLine схлопывает переводы строк (в том числе \r\n) в пробелы.
func oneLine(msg string) string {
	msg = strings.ReplaceAll(msg, "\r\n", "\n")
	msg = strings.ReplaceAll(msg, "\r", "\n")
	return strings.TrimSpace(strings.ReplaceAll(msg, "\n", " "))
}
