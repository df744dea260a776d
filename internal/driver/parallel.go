package driver

import (
	"context"
	"fmt"
	"io/fs"
	"path/filepath"
	"runtime"
	"sort"
	"strconv"
	"strings"
	"time"

	"golang.org/x/sync/errgroup"

	"crest/internal/ast"
	"crest/internal/diag"
	"crest/internal/lexer"
	"crest/internal/parser"
	"crest/internal/source"
	"crest/internal/token"
	"crest/internal/trace"
)

// SourceExt is the extension of source files picked up by directory walks.
const SourceExt = ".crs"

// FileResult содержит результат обработки одного файла директории.
type FileResult struct {
	Path      string        // путь относительно корня обхода
	FileID    source.FileID // ID файла в общем FileSet
	Tokens    []token.Token
	LexErrors []lexer.LexError
	Program   *ast.Program // nil у TokenizeDir и у незагруженных файлов
	Errors    []*parser.ParseError
	Bag       *diag.Bag
	Cached    bool
	LoadErr   error
}

// DirResult is the outcome of TokenizeDir/ParseDir; Files are sorted by path.
type DirResult struct {
	FileSet *source.FileSet
	Files   []FileResult
}

// HasErrors reports whether any file produced an error diagnostic.
func (r *DirResult) HasErrors() bool {
	for i := range r.Files {
		if r.Files[i].Bag.HasErrors() {
			return true
		}
	}
	return false
}

// ListSourceFiles возвращает отсортированный список всех *.crs файлов в директории.
func ListSourceFiles(dir string) ([]string, error) {
	var files []string
	err := filepath.WalkDir(dir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if !d.IsDir() && strings.HasSuffix(path, SourceExt) {
			files = append(files, path)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	// Сортируем для детерминированного порядка
	sort.Strings(files)
	return files, nil
}

// TokenizeDir токенизирует все *.crs файлы в директории параллельно.
func TokenizeDir(ctx context.Context, dir string, opts Options) (*DirResult, error) {
	return runDir(ctx, dir, opts, false)
}

// ParseDir разбирает все *.crs файлы в директории параллельно.
func ParseDir(ctx context.Context, dir string, opts Options) (*DirResult, error) {
	return runDir(ctx, dir, opts, true)
}

func runDir(ctx context.Context, dir string, opts Options, parse bool) (*DirResult, error) {
	name := "tokenize_dir"
	if parse {
		name = "parse_dir"
	}
	tracer := trace.FromContext(ctx)
	dirSpan := trace.Begin(tracer, trace.ScopePass, name, trace.ParentSpan(ctx))
	defer dirSpan.End(dir)

	files, err := ListSourceFiles(dir)
	if err != nil {
		return nil, fmt.Errorf("failed to list %s: %w", dir, err)
	}
	fileSet := newFileSet(dir, opts)
	out := &DirResult{FileSet: fileSet, Files: make([]FileResult, len(files))}
	if len(files) == 0 {
		return out, nil
	}
	dirSpan.WithExtra("files", strconv.Itoa(len(files)))

	// Предзагрузка последовательно: FileID не зависят от планировщика.
	var loadIdx int
	if opts.Timer != nil {
		loadIdx = opts.Timer.Begin("load")
	}
	for i, path := range files {
		rel := path
		if r, err := source.RelativePath(path, dir); err == nil {
			rel = r
		}
		out.Files[i] = FileResult{Path: rel, Bag: diag.NewBag(opts.maxDiagnostics())}
		opts.emit(Event{File: rel, Stage: StageLoad, Status: StatusQueued})
		id, err := fileSet.Load(path)
		if err != nil {
			// файл без содержимого, чтобы диагностика получила путь
			id = fileSet.AddVirtual(path, nil)
			out.Files[i].LoadErr = err
			diag.ReportError(diag.BagReporter{Bag: out.Files[i].Bag}, diag.IOLoadFileError,
				source.Point(id, 0), "failed to load file: "+err.Error()).Emit()
			trace.Point(tracer, trace.ScopeFile, "load", err.Error(), dirSpan.ID())
		}
		out.Files[i].FileID = id
	}
	if opts.Timer != nil {
		opts.Timer.End(loadIdx, strconv.Itoa(len(files))+" files")
	}

	jobs := opts.Jobs
	if jobs <= 0 {
		jobs = runtime.GOMAXPROCS(0)
	}
	phase := "lex"
	if parse {
		phase = "parse"
	}
	var workIdx int
	if opts.Timer != nil {
		workIdx = opts.Timer.Begin(phase)
	}
	workerOpts := opts
	workerOpts.Timer = nil // Timer не потокобезопасен

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(min(jobs, len(files)))
	for i := range out.Files {
		// индексы уникальны для каждой горутины, мьютекс не нужен
		res := &out.Files[i]
		if res.LoadErr != nil {
			opts.emit(Event{File: res.Path, Stage: StageLoad, Status: StatusError, Err: res.LoadErr})
			continue
		}
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			started := time.Now()
			stage := StageLex
			if parse {
				stage = StageParse
			}
			opts.emit(Event{File: res.Path, Stage: stage, Status: StatusWorking})

			fileSpan := trace.Begin(tracer, trace.ScopeFile, "file:"+res.Path, dirSpan.ID())
			fctx := trace.WithParent(gctx, fileSpan)
			if err := processFile(fctx, fileSet.Get(res.FileID), res, workerOpts, parse); err != nil {
				fileSpan.End(err.Error())
				return err
			}
			fileSpan.WithExtra("tokens", strconv.Itoa(len(res.Tokens))).End("")

			status := StatusDone
			if res.Bag.HasErrors() {
				status = StatusError
			}
			opts.emit(Event{File: res.Path, Stage: stage, Status: status, Elapsed: time.Since(started)})
			return nil
		})
	}
	err = g.Wait()
	if opts.Timer != nil {
		opts.Timer.End(workIdx, fmt.Sprintf("%d jobs", jobs))
	}
	if err != nil {
		return nil, err
	}
	return out, nil
}

func processFile(ctx context.Context, file *source.File, res *FileResult, opts Options, parse bool) error {
	if !parse {
		lx, cached := lexFile(ctx, file, diag.BagReporter{Bag: res.Bag}, opts)
		res.Tokens, res.LexErrors, res.Cached = lx.Tokens, lx.Errors, cached
		return nil
	}
	pr, err := parseLoaded(ctx, nil, file, res.Bag, opts)
	if err != nil {
		return err
	}
	res.Tokens, res.LexErrors, res.Cached = pr.Tokens, pr.LexErrors, pr.Cached
	res.Program, res.Errors = pr.Program, pr.Errors
	return nil
}
