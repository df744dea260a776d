package fuzztests

import (
	"io/fs"
	"os"
	"path/filepath"
	"testing"
)

const (
	maxSeedBytes = 64 << 10 // 64 KiB: ограничение для тестового корпуса
	maxFuzzInput = 1 << 16
)

// builtinSeeds покрывают основные конструкции языка и типичные ошибки.
var builtinSeeds = []string{
	"",
	"fn main() -> int { return 0; }\n",
	"pub fn add[T](a: int, mut b: int = 1, self) -> int where T: Num + Eq { a + b }",
	"struct Point { x: int, y: int }\nenum Shape { Circle(int), Square { side: int } }",
	"interface Show { pub fn show(self) -> string; }\nimpl Show for Pair[int, int] { pub fn show(self) -> string { \"\" } }",
	"let f = |a: int, b,| -> int => a; let g = || => 0;",
	"fn f() { while let Some(x) = it.next() && x > 0 { break; } }",
	"fn f(v: Shape) -> int { match v { Shape.Circle(r) => r, Shape.Square { side } => side, _ => 0 } }",
	"fn f() { if Empty {} {} }",
	"fn test() { let x: int = 1\nlet y: int = 2; }",
	"fn f() { { { { } } } }",
	"impl[ T ] []T {}",
	"pub pub fn",
	";;;",
	"let мир = 'ж'; /* unterminated",
	"\"unterminated string\nfn ok() {}",
}

func addCorpusSeeds(f *testing.F) {
	for _, s := range builtinSeeds {
		f.Add([]byte(s))
	}
	addTestdataSeeds(f)
}

// addTestdataSeeds добавляет все *.crs из testdata в корне модуля.
func addTestdataSeeds(f *testing.F) {
	root := filepath.Join("..", "..", "testdata")
	if _, err := os.Stat(root); err != nil {
		return
	}
	_ = filepath.WalkDir(root, func(path string, d fs.DirEntry, walkErr error) error {
		if walkErr != nil || d.IsDir() || filepath.Ext(path) != ".crs" {
			return nil
		}
		// #nosec G304 -- path comes from repository testdata walk
		src, err := os.ReadFile(path)
		if err != nil {
			return nil
		}
		f.Add(clampSeed(src))
		return nil
	})
}

func clampSeed(src []byte) []byte {
	if len(src) <= maxSeedBytes {
		return append([]byte(nil), src...)
	}
	return append([]byte(nil), src[:maxSeedBytes]...)
}

func clampInput(input []byte) []byte {
	if len(input) > maxFuzzInput {
		return append([]byte(nil), input[:maxFuzzInput]...)
	}
	return append([]byte(nil), input...)
}
