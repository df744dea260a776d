package source

type (
	// FileID uniquely identifies a source file within a FileSet.
	FileID uint32 // просто ID источника
	// FileFlags encodes metadata about a source file.
	FileFlags uint8 // метаданные
)

const (
	// FileVirtual indicates the file was added from memory (test, stdin, etc.).
	FileVirtual FileFlags = 1 << iota // добавлен не с диска (тест, stdin)
	FileHadBOM
	FileNormalizedCRLF
	FileNormalizedNFC
)

// Normalization selects the Unicode normalization applied to file content.
type Normalization uint8

const (
	// NormNone keeps the text as decoded.
	NormNone Normalization = iota
	// NormNFC applies canonical composition before lexing.
	NormNFC
)

// ParseNormalization converts a config/flag value into Normalization.
func ParseNormalization(s string) (Normalization, bool) {
	switch s {
	case "", "none":
		return NormNone, true
	case "nfc", "NFC":
		return NormNFC, true
	}
	return NormNone, false
}

// File captures metadata and content for a single source file.
type File struct {
	ID      FileID
	Path    string
	Content []byte   // нормализованный UTF-8
	Chars   []rune   // тот же текст посимвольно; все Span считаются здесь
	LineIdx []uint32 // позиции '\n' в Chars
	Hash    [32]byte
	Flags   FileFlags
}

// LineCol represents a human-readable position in a source file.
type LineCol struct {
	Line uint32 // 1-based
	Col  uint32 // 1-based
}
