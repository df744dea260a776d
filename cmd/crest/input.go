package main

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"crest/internal/diag"
	"crest/internal/driver"
)

const stdinName = "<stdin>"

func isDir(path string) (bool, error) {
	if path == "-" {
		return false, nil
	}
	st, err := os.Stat(path)
	if err != nil {
		return false, fmt.Errorf("failed to stat path: %w", err)
	}
	return st.IsDir(), nil
}

func readStdin(cmd *cobra.Command) ([]byte, error) {
	data, err := io.ReadAll(cmd.InOrStdin())
	if err != nil {
		return nil, fmt.Errorf("failed to read stdin: %w", err)
	}
	return data, nil
}

// parseInput parses a file path or stdin ("-").
func parseInput(cmd *cobra.Command, s *session, target string) (*driver.ParseResult, error) {
	if target != "-" {
		return driver.Parse(cmd.Context(), target, s.opts)
	}
	src, err := readStdin(cmd)
	if err != nil {
		return nil, err
	}
	return driver.ParseSource(cmd.Context(), stdinName, src, s.opts)
}

func tokenizeInput(cmd *cobra.Command, s *session, target string) (*driver.TokenizeResult, error) {
	if target != "-" {
		return driver.Tokenize(cmd.Context(), target, s.opts)
	}
	src, err := readStdin(cmd)
	if err != nil {
		return nil, err
	}
	return driver.TokenizeSource(cmd.Context(), stdinName, src, s.opts), nil
}

// mergeBags собирает диагностики всех файлов директории в один Bag.
func mergeBags(res *driver.DirResult) *diag.Bag {
	all := diag.NewBag(0)
	for i := range res.Files {
		all.Merge(res.Files[i].Bag)
	}
	return all
}

func exitStatus(bag *diag.Bag) error {
	if bag.HasErrors() {
		return errDiagnostics
	}
	return nil
}
