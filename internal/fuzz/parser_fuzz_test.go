package fuzztests

import (
	"context"
	"testing"
	"time"

	"crest/internal/diag"
	"crest/internal/parser"
	"crest/internal/source"
	"crest/internal/testkit"
)

// parseTimeout is the maximum time allowed for parsing a single input.
// If parsing takes longer, it indicates a potential infinite loop.
const parseTimeout = 5 * time.Second

func FuzzParserBuildsAST(f *testing.F) {
	addCorpusSeeds(f)
	f.Fuzz(func(t *testing.T, input []byte) {
		input = clampInput(input)

		fs := source.NewFileSet()
		file := fs.Get(fs.AddVirtual("fuzz.crs", input))

		bag := diag.NewBag(128)
		res := parser.ParseFile(file, parser.Options{
			Reporter:  diag.BagReporter{Bag: bag},
			MaxErrors: 128,
		})
		if err := testkit.CheckSpanInvariants(res.Program, file); err != nil {
			t.Fatalf("span invariants: %v\ninput: %q", err, truncateForLog(input, 200))
		}
	})
}

// FuzzParserNoHang tests that the parser doesn't hang on any input.
// Recovery must always make progress, so a timeout means a loop.
func FuzzParserNoHang(f *testing.F) {
	addCorpusSeeds(f)

	// edge cases for recovery
	f.Add([]byte("fn test() { x + y\nlet z: int = 3; }"))
	f.Add([]byte("fn f() { for x in { } }"))
	f.Add([]byte("pub"))
	f.Add([]byte("impl"))
	f.Add([]byte("fn f() where T: { }"))

	f.Fuzz(func(t *testing.T, input []byte) {
		input = clampInput(input)

		ctx, cancel := context.WithTimeout(context.Background(), parseTimeout)
		defer cancel()

		done := make(chan struct{})
		go func() {
			defer close(done)
			fs := source.NewFileSet()
			file := fs.Get(fs.AddVirtual("fuzz.crs", input))
			_ = parser.ParseFile(file, parser.Options{MaxErrors: 128})
		}()

		select {
		case <-done:
		case <-ctx.Done():
			t.Fatalf("parser hang detected: parsing took longer than %v\ninput (%d bytes): %q",
				parseTimeout, len(input), truncateForLog(input, 200))
		}
	})
}

// truncateForLog truncates input for logging purposes
func truncateForLog(input []byte, maxLen int) []byte {
	if len(input) <= maxLen {
		return input
	}
	return append(input[:maxLen:maxLen], []byte("...")...)
}
