package diagfmt

import (
	"io"

	"crest/internal/diag"
	"crest/internal/source"
)

// Golden writes one stable line per diagnostic and note, without colors or
// source context. Nothing is written for an empty bag.
func Golden(w io.Writer, bag *diag.Bag, fs *source.FileSet) error {
	out := diag.FormatGoldenDiagnostics(bag.Items(), fs, diag.GoldenOpts{Notes: true, Fixes: true})
	if out == "" {
		return nil
	}
	_, err := io.WriteString(w, out+"\n")
	return err
}
