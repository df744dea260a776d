package driver

import (
	"context"
	"strconv"

	"fortio.org/safecast"

	"crest/internal/ast"
	"crest/internal/diag"
	"crest/internal/lexer"
	"crest/internal/parser"
	"crest/internal/source"
	"crest/internal/token"
	"crest/internal/trace"
)

type ParseResult struct {
	FileSet   *source.FileSet
	File      *source.File
	Tokens    []token.Token
	LexErrors []lexer.LexError
	Program   *ast.Program
	Errors    []*parser.ParseError
	Bag       *diag.Bag
	Cached    bool
}

// Parse loads, lexes and parses a single file.
func Parse(ctx context.Context, path string, opts Options) (*ParseResult, error) {
	span := trace.Begin(trace.FromContext(ctx), trace.ScopePass, "parse", trace.ParentSpan(ctx))
	defer span.End(path)
	ctx = trace.WithParent(ctx, span)

	fs := newFileSet("", opts)
	file, err := loadFile(ctx, fs, path, opts)
	if err != nil {
		return nil, err
	}
	res, err := parseLoaded(ctx, fs, file, diag.NewBag(opts.maxDiagnostics()), opts)
	if err != nil {
		return nil, err
	}
	span.WithExtra("errors", strconv.Itoa(len(res.Errors)))
	return res, nil
}

// ParseSource parses in-memory text registered under name.
func ParseSource(ctx context.Context, name string, src []byte, opts Options) (*ParseResult, error) {
	fs := newFileSet("", opts)
	file := fs.Get(fs.AddVirtual(name, src))
	return parseLoaded(ctx, fs, file, diag.NewBag(opts.maxDiagnostics()), opts)
}

func parseLoaded(ctx context.Context, fs *source.FileSet, file *source.File, bag *diag.Bag, opts Options) (*ParseResult, error) {
	// повтор из кэша и восстановление парсера не должны дублировать записи
	reporter := diag.NewDedupReporter(diag.BagReporter{Bag: bag})
	lx, cached := lexFile(ctx, file, reporter, opts)

	maxErrors, err := safecast.Conv[uint](opts.maxDiagnostics())
	if err != nil {
		return nil, err
	}
	var idx int
	if opts.Timer != nil {
		idx = opts.Timer.Begin("parse")
	}
	prog, errs := parser.ParseTokens(lx.Tokens, parser.Options{
		MaxErrors: maxErrors,
		Reporter:  reporter,
	})
	if opts.Timer != nil {
		opts.Timer.End(idx, strconv.Itoa(len(errs))+" errors")
	}

	return &ParseResult{
		FileSet:   fs,
		File:      file,
		Tokens:    lx.Tokens,
		LexErrors: lx.Errors,
		Program:   prog,
		Errors:    errs,
		Bag:       bag,
		Cached:    cached,
	}, nil
}
