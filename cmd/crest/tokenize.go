package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"crest/internal/diagfmt"
	"crest/internal/source"
	"crest/internal/token"
)

func newTokenizeCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "tokenize [flags] <file.crs|directory|->",
		Short: "Tokenize a crest source file or directory",
		Long:  `Tokenize breaks a crest source file into tokens and prints them with their positions`,
		Args:  cobra.ExactArgs(1),
		RunE:  runTokenize,
	}
	cmd.Flags().String("format", "pretty", "token output format (pretty|json)")
	cmd.Flags().Int("jobs", 0, "max parallel workers for directory processing (0=auto)")
	return cmd
}

func runTokenize(cmd *cobra.Command, args []string) error {
	target := args[0]
	format, err := cmd.Flags().GetString("format")
	if err != nil {
		return fmt.Errorf("failed to get format flag: %w", err)
	}
	if format != "pretty" && format != "json" {
		return fmt.Errorf("unknown format: %s", format)
	}
	s, err := newSession(cmd, target)
	if err != nil {
		return err
	}
	defer s.finish()

	dir, err := isDir(target)
	if err != nil {
		return err
	}
	if !dir {
		res, err := tokenizeInput(cmd, s, target)
		if err != nil {
			return fmt.Errorf("tokenization failed: %w", err)
		}
		err = s.phase("render", func() error {
			if err := dumpTokens(s, format, res.Tokens, res.FileSet); err != nil {
				return err
			}
			s.timingsInto(res.Bag, "tokenize", target)
			return s.renderDiagnostics(res.Bag, res.FileSet)
		})
		if err != nil {
			return err
		}
		return exitStatus(res.Bag)
	}

	res, err := s.runDir(cmd.Context(), target, false)
	if err != nil {
		return fmt.Errorf("tokenization failed: %w", err)
	}
	bag := mergeBags(res)
	err = s.phase("render", func() error {
		for _, f := range res.Files {
			if f.LoadErr != nil {
				continue
			}
			if !s.quiet && format == "pretty" {
				fmt.Fprintf(s.stdout, "== %s ==\n", f.Path)
			}
			if err := dumpTokens(s, format, f.Tokens, res.FileSet); err != nil {
				return err
			}
		}
		s.timingsInto(bag, "tokenize_dir", target)
		return s.renderDiagnostics(bag, res.FileSet)
	})
	if err != nil {
		return err
	}
	return exitStatus(bag)
}

func dumpTokens(s *session, format string, toks []token.Token, fs *source.FileSet) error {
	if format == "json" {
		return diagfmt.FormatTokensJSON(s.stdout, toks)
	}
	return diagfmt.FormatTokensPretty(s.stdout, toks, fs)
}
