package diagfmt

import (
	"encoding/json"
	"fmt"
	"io"

	"crest/internal/ast"
	"crest/internal/source"
)

type ASTNodeOutput struct {
	Type     string          `json:"type"`
	Span     source.Span     `json:"span"`
	Children []ASTNodeOutput `json:"children,omitempty"`
}

func programHeader(prog *ast.Program, fs *source.FileSet) string {
	header := "Program"
	if fs != nil {
		if f := fs.Get(prog.EOF.Span.File); f != nil && f.Path != "" {
			header = f.FormatPath("auto", fs.BaseDir())
		}
	}
	return header
}

// FormatASTPretty печатает дерево программы с отступами ├─ / └─.
func FormatASTPretty(w io.Writer, prog *ast.Program, fs *source.FileSet) error {
	if prog == nil {
		return fmt.Errorf("nil program")
	}
	root := treeBuilder{b: prog.Builder}.program(prog, programHeader(prog, fs))
	if _, err := fmt.Fprintf(w, "%s (span: %s)\n", root.label, formatSpan(root.span, fs)); err != nil {
		return err
	}
	return writeChildren(w, root, "", fs)
}

func writeChildren(w io.Writer, n *treeNode, prefix string, fs *source.FileSet) error {
	for i, child := range n.children {
		branch, next := "├─ ", "│  "
		if i == len(n.children)-1 {
			branch, next = "└─ ", "   "
		}
		line := prefix + branch + child.label
		if child.span != (source.Span{}) {
			line += " (span: " + formatSpan(child.span, fs) + ")"
		}
		if _, err := fmt.Fprintln(w, line); err != nil {
			return err
		}
		if err := writeChildren(w, child, prefix+next, fs); err != nil {
			return err
		}
	}
	return nil
}

// FormatASTJSON выводит то же дерево в JSON.
func FormatASTJSON(w io.Writer, prog *ast.Program) error {
	if prog == nil {
		return fmt.Errorf("nil program")
	}
	root := treeBuilder{b: prog.Builder}.program(prog, "Program")
	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	return encoder.Encode(toJSONNode(root))
}

func toJSONNode(n *treeNode) ASTNodeOutput {
	out := ASTNodeOutput{Type: n.label, Span: n.span}
	for _, c := range n.children {
		out.Children = append(out.Children, toJSONNode(c))
	}
	return out
}
