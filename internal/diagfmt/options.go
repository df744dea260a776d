package diagfmt

// PathMode specifies how file paths are displayed.
type PathMode uint8

const (
	// PathModeAuto chooses relative or absolute path automatically.
	PathModeAuto PathMode = iota
	// PathModeAbsolute always uses absolute paths.
	PathModeAbsolute
	PathModeRelative
	PathModeBasename
)

func (m PathMode) String() string {
	switch m {
	case PathModeAbsolute:
		return "absolute"
	case PathModeRelative:
		return "relative"
	case PathModeBasename:
		return "basename"
	}
	return "auto"
}

// ParsePathMode converts a flag value; unknown values fall back to auto.
func ParsePathMode(s string) PathMode {
	switch s {
	case "absolute":
		return PathModeAbsolute
	case "relative":
		return PathModeRelative
	case "basename":
		return PathModeBasename
	}
	return PathModeAuto
}

// Format selects the diagnostic renderer.
type Format uint8

const (
	FormatShortLine Format = iota
	FormatPretty
	FormatJSON
	FormatGolden // стабильные строки для snapshot-тестов
)

// ParseFormat converts a config/flag value into Format.
func ParseFormat(s string) (Format, bool) {
	switch s {
	case "", "short":
		return FormatShortLine, true
	case "pretty":
		return FormatPretty, true
	case "json":
		return FormatJSON, true
	case "golden":
		return FormatGolden, true
	}
	return FormatShortLine, false
}

// ShortOpts configures the one-line renderer.
type ShortOpts struct {
	PathMode PathMode
	// WithCode добавляет код диагностики перед сообщением.
	WithCode bool
}

// PrettyOpts configures pretty-printing of diagnostics.
type PrettyOpts struct {
	Color     bool
	Context   int8
	PathMode  PathMode
	ShowNotes bool
	ShowFixes bool
}

// JSONOpts configures JSON output of diagnostics.
type JSONOpts struct {
	IncludePositions bool // добавить line/col
	PathMode         PathMode
	Max              int // обрезка вывода, не Bag
	IncludeNotes     bool
	IncludeFixes     bool
}
