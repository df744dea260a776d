package diagfmt

import (
	"fmt"
	"io"
	"strings"

	"github.com/fatih/color"
	"github.com/mattn/go-runewidth"

	"crest/internal/diag"
	"crest/internal/source"
)

type palette struct {
	err, warn, info, note, help, gutter, caret *color.Color
}

func newPalette(enabled bool) palette {
	mk := func(attrs ...color.Attribute) *color.Color {
		c := color.New(attrs...)
		if enabled {
			c.EnableColor()
		} else {
			c.DisableColor()
		}
		return c
	}
	return palette{
		err:    mk(color.FgRed, color.Bold),
		warn:   mk(color.FgYellow, color.Bold),
		info:   mk(color.FgCyan, color.Bold),
		note:   mk(color.FgBlue, color.Bold),
		help:   mk(color.FgGreen, color.Bold),
		gutter: mk(color.FgBlue),
		caret:  mk(color.FgRed, color.Bold),
	}
}

func (p palette) severity(s diag.Severity) *color.Color {
	switch s {
	case diag.SevError:
		return p.err
	case diag.SevWarning:
		return p.warn
	}
	return p.info
}

// Pretty форматирует диагностики в человекочитаемый вид.
// Для каждой печатает:
//
//	error[SYN2012]: Expected `;`, found `}`
//	  --> main.crs:3:5
//	   |
//	 3 |     let x = 1 }
//	   |               ^
//
// затем Notes и Fixes, если включены.
func Pretty(w io.Writer, bag *diag.Bag, fs *source.FileSet, opts PrettyOpts) error {
	pal := newPalette(opts.Color)
	for i := range bag.Items() {
		if i > 0 {
			if _, err := fmt.Fprintln(w); err != nil {
				return err
			}
		}
		if err := prettyOne(w, &bag.Items()[i], fs, opts, pal); err != nil {
			return err
		}
	}
	return nil
}

func prettyOne(w io.Writer, d *diag.Diagnostic, fs *source.FileSet, opts PrettyOpts, pal palette) error {
	var sb strings.Builder
	sev := d.Severity.Label()
	sb.WriteString(pal.severity(d.Severity).Sprintf("%s[%s]", sev, d.Code.ID()))
	sb.WriteString(": " + d.Message + "\n")

	f := fs.Get(d.Primary.File)
	if f != nil {
		writeSnippet(&sb, f, fs, d.Primary, opts, pal, "")
	}

	if opts.ShowNotes {
		for _, note := range d.Notes {
			sb.WriteString(pal.note.Sprint("note") + ": " + note.Msg + "\n")
			if nf := fs.Get(note.Span.File); nf != nil && note.Span != d.Primary {
				writeSnippet(&sb, nf, fs, note.Span, opts, pal, "")
			}
		}
	}
	if opts.ShowFixes {
		for _, fix := range d.Fixes {
			sb.WriteString(pal.help.Sprint("help") + ": " + fix.Title + "\n")
		}
	}
	_, err := io.WriteString(w, sb.String())
	return err
}

// writeSnippet печатает строку span с контекстом и подчёркивает span.
// Ширина колонок учитывает широкие символы через runewidth.
func writeSnippet(sb *strings.Builder, f *source.File, fs *source.FileSet, span source.Span, opts PrettyOpts, pal palette, label string) {
	start := f.LineCol(span.Start)
	end := f.LineCol(span.End)
	fmt.Fprintf(sb, "  %s %s:%d:%d\n", pal.gutter.Sprint("-->"), formatPath(f, fs, opts.PathMode), start.Line, start.Col)

	ctx := uint32(max(opts.Context, 0))
	first := start.Line - min(ctx, start.Line-1)
	last := min(start.Line+ctx, f.LineCount())
	width := len(fmt.Sprint(last))
	bar := pal.gutter.Sprint(strings.Repeat(" ", width+1) + "|")

	sb.WriteString(bar + "\n")
	for ln := first; ln <= last; ln++ {
		text := f.GetLine(ln)
		fmt.Fprintf(sb, "%s %s\n", pal.gutter.Sprintf("%*d |", width, ln), text)
		if ln != start.Line {
			continue
		}
		lineRunes := []rune(text)
		col := int(start.Col) - 1
		n := 1
		if end.Line == start.Line && end.Col >= start.Col {
			n = int(end.Col-start.Col) + 1
		}
		pad := runewidth.StringWidth(string(lineRunes[:min(col, len(lineRunes))]))
		if col > len(lineRunes) {
			pad += col - len(lineRunes)
		}
		underWidth := 0
		if col < len(lineRunes) {
			underWidth = runewidth.StringWidth(string(lineRunes[col:min(col+n, len(lineRunes))]))
		}
		underWidth = max(underWidth, 1)
		carets := pal.caret.Sprint(strings.Repeat("^", underWidth))
		if label != "" {
			carets += " " + pal.caret.Sprint(label)
		}
		fmt.Fprintf(sb, "%s %s%s\n", bar, strings.Repeat(" ", pad), carets)
	}
	sb.WriteString(bar + "\n")
}
