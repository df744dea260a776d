package main

import (
	"bytes"
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"crest/internal/diagfmt"
	"crest/internal/driver"
	"crest/internal/fix"
)

// maxFixRounds ограничивает цикл parse -> fix на случай fix, который не чинит ошибку.
const maxFixRounds = 16

func newFixCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "fix [flags] <file.crs>",
		Short: "Apply suggested fixes from syntax diagnostics",
		Long: `Fix parses the file, applies the machine-applicable fixes attached to its diagnostics
and repeats until no fixes remain. The rewritten text is normalized the same way the parser sees it`,
		Args: cobra.ExactArgs(1),
		RunE: runFix,
	}
	cmd.Flags().Bool("dry-run", false, "print the fixed source to stdout instead of writing the file")
	cmd.Flags().Bool("once", false, "apply only the first fix")
	return cmd
}

func runFix(cmd *cobra.Command, args []string) error {
	target := args[0]
	dryRun, _ := cmd.Flags().GetBool("dry-run")
	once, _ := cmd.Flags().GetBool("once")

	s, err := newSession(cmd, target)
	if err != nil {
		return err
	}
	defer s.finish()

	// #nosec G304 -- path is provided by the user
	src, err := os.ReadFile(target)
	if err != nil {
		return fmt.Errorf("failed to read file: %w", err)
	}
	info, err := os.Stat(target)
	if err != nil {
		return fmt.Errorf("failed to stat file: %w", err)
	}

	mode := fix.ApplyOptions{Mode: fix.ApplyModeAll}
	if once {
		mode.Mode = fix.ApplyModeOnce
	}

	var (
		res     *driver.ParseResult
		applied []fix.AppliedFix
		current = src
	)
	for round := 0; ; round++ {
		res, err = driver.ParseSource(cmd.Context(), target, current, s.opts)
		if err != nil {
			return fmt.Errorf("parsing failed: %w", err)
		}
		if round == maxFixRounds || (once && round == 1) {
			break
		}
		out, applyErr := fix.Apply(res.File, res.Bag.Items(), mode)
		if errors.Is(applyErr, fix.ErrNoFixes) {
			break
		}
		if applyErr != nil {
			return applyErr
		}
		applied = append(applied, out.Applied...)
		if bytes.Equal(out.Content, res.File.Content) {
			break
		}
		current = out.Content
	}

	changed := !bytes.Equal(current, src)
	if dryRun {
		if _, err := s.stdout.Write(current); err != nil {
			return err
		}
	} else if changed {
		if err := os.WriteFile(target, current, info.Mode().Perm()); err != nil {
			return fmt.Errorf("write %s: %w", target, err)
		}
	}

	s.reportFixes(target, applied)
	s.timingsInto(res.Bag, "fix", target)
	if err := s.renderDiagnostics(res.Bag, res.FileSet); err != nil {
		return err
	}
	return exitStatus(res.Bag)
}

func (s *session) reportFixes(path string, applied []fix.AppliedFix) {
	if s.quiet || s.diagFormat == diagfmt.FormatJSON {
		return
	}
	for _, a := range applied {
		fmt.Fprintf(s.stderr, "fixed %s:%d:%d: %s (%s)\n", path, a.At.Line, a.At.Col, a.Title, a.Code.ID())
	}
	if len(applied) == 0 {
		fmt.Fprintln(s.stderr, "no fixes to apply")
	}
}
