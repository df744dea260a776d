package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"crest/internal/diagfmt"
)

func newCheckCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "check [flags] <file.crs|directory|->",
		Short: "Report syntax diagnostics without printing trees",
		Long:  `Check parses the input and prints only diagnostics; the exit status is 1 when any error is found`,
		Args:  cobra.ExactArgs(1),
		RunE:  runCheck,
	}
	cmd.Flags().Int("jobs", 0, "max parallel workers for directory processing (0=auto)")
	return cmd
}

func runCheck(cmd *cobra.Command, args []string) error {
	target := args[0]
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
		s.timingsInto(res.Bag, "check", target)
		if err := s.phase("render", func() error { return s.renderDiagnostics(res.Bag, res.FileSet) }); err != nil {
			return err
		}
		s.summary(1, boolToInt(res.Bag.HasErrors()))
		return exitStatus(res.Bag)
	}

	res, err := s.runDir(cmd.Context(), target, true)
	if err != nil {
		return fmt.Errorf("parsing failed: %w", err)
	}
	bag := mergeBags(res)
	s.timingsInto(bag, "check", target)
	if err := s.phase("render", func() error { return s.renderDiagnostics(bag, res.FileSet) }); err != nil {
		return err
	}
	failed := 0
	for i := range res.Files {
		failed += boolToInt(res.Files[i].Bag.HasErrors())
	}
	s.summary(len(res.Files), failed)
	return exitStatus(bag)
}

// summary печатает итог в stderr; в json и с --quiet молчит.
func (s *session) summary(files, failed int) {
	if s.quiet || s.diagFormat == diagfmt.FormatJSON {
		return
	}
	if failed == 0 {
		fmt.Fprintf(s.stderr, "ok: %d file(s)\n", files)
		return
	}
	fmt.Fprintf(s.stderr, "%d of %d file(s) have errors\n", failed, files)
}

func boolToInt(b bool) int {
	if b {
		return 1
	}
	return 0
}
