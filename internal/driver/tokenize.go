package driver

import (
	"context"
	"fmt"
	"strconv"

	"crest/internal/diag"
	"crest/internal/lexer"
	"crest/internal/source"
	"crest/internal/token"
	"crest/internal/trace"
)

type TokenizeResult struct {
	FileSet *source.FileSet
	File    *source.File
	Tokens  []token.Token
	Errors  []lexer.LexError
	Bag     *diag.Bag
	Cached  bool // токены взяты из DiskCache
}

// Tokenize loads path and lexes it to the EOF token.
func Tokenize(ctx context.Context, path string, opts Options) (*TokenizeResult, error) {
	span := trace.Begin(trace.FromContext(ctx), trace.ScopePass, "tokenize", trace.ParentSpan(ctx))
	defer span.End(path)
	ctx = trace.WithParent(ctx, span)

	fs := newFileSet("", opts)
	file, err := loadFile(ctx, fs, path, opts)
	if err != nil {
		return nil, err
	}
	res := tokenizeLoaded(ctx, fs, file, opts)
	span.WithExtra("tokens", strconv.Itoa(len(res.Tokens)))
	return res, nil
}

// TokenizeSource lexes in-memory text registered under name (stdin, tests).
func TokenizeSource(ctx context.Context, name string, src []byte, opts Options) *TokenizeResult {
	fs := newFileSet("", opts)
	file := fs.Get(fs.AddVirtual(name, src))
	return tokenizeLoaded(ctx, fs, file, opts)
}

func tokenizeLoaded(ctx context.Context, fs *source.FileSet, file *source.File, opts Options) *TokenizeResult {
	bag := diag.NewBag(opts.maxDiagnostics())
	lx, cached := lexFile(ctx, file, diag.BagReporter{Bag: bag}, opts)
	return &TokenizeResult{
		FileSet: fs,
		File:    file,
		Tokens:  lx.Tokens,
		Errors:  lx.Errors,
		Bag:     bag,
		Cached:  cached,
	}
}

func newFileSet(base string, opts Options) *source.FileSet {
	fs := source.NewFileSetWithBase(base)
	fs.SetNormalization(opts.Normalize)
	return fs
}

func loadFile(ctx context.Context, fs *source.FileSet, path string, opts Options) (*source.File, error) {
	var idx int
	if opts.Timer != nil {
		idx = opts.Timer.Begin("load")
	}
	id, err := fs.Load(path)
	if opts.Timer != nil {
		opts.Timer.End(idx, path)
	}
	if err != nil {
		trace.Point(trace.FromContext(ctx), trace.ScopeFile, "load", err.Error(), trace.ParentSpan(ctx))
		return nil, fmt.Errorf("failed to load %s: %w", path, err)
	}
	return fs.Get(id), nil
}

// lexFile лексит файл или берёт токены из кэша; в обоих случаях
// лексические ошибки уходят в r.
func lexFile(ctx context.Context, file *source.File, r diag.Reporter, opts Options) (lexer.Result, bool) {
	if opts.Timer != nil {
		idx := opts.Timer.Begin("lex")
		defer opts.Timer.End(idx, "")
	}
	if opts.Cache == nil {
		return lexer.Lex(file, lexer.Options{Reporter: r}), false
	}

	key := cacheKey(file)
	var payload TokenPayload
	ok, err := opts.Cache.Get(key, &payload)
	if err != nil {
		reportCacheError(r, file, err)
	}
	if ok {
		res := payload.restore(file)
		for _, e := range res.Errors {
			e.Report(r)
		}
		trace.Point(trace.FromContext(ctx), trace.ScopeFile, "cache_hit", file.Path, trace.ParentSpan(ctx))
		return res, true
	}

	res := lexer.Lex(file, lexer.Options{Reporter: r})
	if err := opts.Cache.Put(key, newTokenPayload(res)); err != nil {
		reportCacheError(r, file, err)
	}
	return res, false
}

func reportCacheError(r diag.Reporter, file *source.File, err error) {
	diag.ReportWarning(r, diag.IOCacheError, source.Point(file.ID, 0), "token cache: "+err.Error()).Emit()
}
