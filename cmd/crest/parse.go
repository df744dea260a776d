package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"crest/internal/diagfmt"
)

func newParseCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "parse [flags] <file.crs|directory|->",
		Short: "Parse a crest source file or directory and output the AST",
		Long:  `Parse analyzes a crest source file or all *.crs files in a directory and prints their syntax trees`,
		Args:  cobra.ExactArgs(1),
		RunE:  runParse,
	}
	cmd.Flags().String("format", "pretty", "AST output format (pretty|json)")
	cmd.Flags().Int("jobs", 0, "max parallel workers for directory processing (0=auto)")
	return cmd
}

func runParse(cmd *cobra.Command, args []string) error {
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
		res, err := parseInput(cmd, s, target)
		if err != nil {
			return fmt.Errorf("parsing failed: %w", err)
		}
		err = s.phase("render", func() error {
			if format == "json" {
				if err := diagfmt.FormatASTJSON(s.stdout, res.Program); err != nil {
					return err
				}
			} else if err := diagfmt.FormatASTPretty(s.stdout, res.Program, res.FileSet); err != nil {
				return err
			}
			s.timingsInto(res.Bag, "parse", target)
			return s.renderDiagnostics(res.Bag, res.FileSet)
		})
		if err != nil {
			return err
		}
		return exitStatus(res.Bag)
	}

	res, err := s.runDir(cmd.Context(), target, true)
	if err != nil {
		return fmt.Errorf("parsing failed: %w", err)
	}
	bag := mergeBags(res)
	err = s.phase("render", func() error {
		for idx, f := range res.Files {
			if f.Program == nil {
				continue
			}
			if format == "json" {
				if err := diagfmt.FormatASTJSON(s.stdout, f.Program); err != nil {
					return err
				}
				continue
			}
			if err := diagfmt.FormatASTPretty(s.stdout, f.Program, res.FileSet); err != nil {
				return err
			}
			if !s.quiet && idx < len(res.Files)-1 {
				fmt.Fprintln(s.stdout)
			}
		}
		s.timingsInto(bag, "parse_dir", target)
		return s.renderDiagnostics(bag, res.FileSet)
	})
	if err != nil {
		return err
	}
	return exitStatus(bag)
}
