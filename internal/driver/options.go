package driver

import (
	"crest/internal/observ"
	"crest/internal/source"
)

// DefaultMaxDiagnostics is used when Options.MaxDiagnostics is not positive.
const DefaultMaxDiagnostics = 100

// Options configures Tokenize/Parse and their directory variants.
type Options struct {
	MaxDiagnostics int
	Normalize      source.Normalization
	Jobs           int           // 0: GOMAXPROCS
	Cache          *DiskCache    // nil: без кэша токенов
	Progress       ProgressSink  // события по файлам для ui
	Timer          *observ.Timer // фазы load/lex/parse; может быть nil
}

func (o Options) maxDiagnostics() int {
	if o.MaxDiagnostics <= 0 {
		return DefaultMaxDiagnostics
	}
	return o.MaxDiagnostics
}

func (o Options) emit(ev Event) {
	if o.Progress != nil {
		o.Progress.OnEvent(ev)
	}
}
