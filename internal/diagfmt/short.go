package diagfmt

import (
	"fmt"
	"io"

	"crest/internal/diag"
	"crest/internal/source"
)

// FormatShort renders one diagnostic as `[file:line:col]: message`,
// or `[line:col]: message` when the file has no label.
func FormatShort(d *diag.Diagnostic, fs *source.FileSet, opts ShortOpts) string {
	msg := d.Message
	if opts.WithCode {
		msg = d.Code.ID() + ": " + msg
	}
	f := fs.Get(d.Primary.File)
	if f == nil {
		return fmt.Sprintf("[?]: %s", msg)
	}
	pos := f.LineCol(d.Primary.Start)
	if path := formatPath(f, fs, opts.PathMode); path != "" {
		return fmt.Sprintf("[%s:%d:%d]: %s", path, pos.Line, pos.Col, msg)
	}
	return fmt.Sprintf("[%d:%d]: %s", pos.Line, pos.Col, msg)
}

// Short печатает все диагностики bag по одной строке.
func Short(w io.Writer, bag *diag.Bag, fs *source.FileSet, opts ShortOpts) error {
	for i := range bag.Items() {
		if _, err := fmt.Fprintln(w, FormatShort(&bag.Items()[i], fs, opts)); err != nil {
			return err
		}
	}
	return nil
}
