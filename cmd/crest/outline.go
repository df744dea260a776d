package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"crest/internal/outline"
)

func newOutlineCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "outline [flags] <file.crs|->",
		Short: "List declarations with their identities",
		Args:  cobra.ExactArgs(1),
		RunE:  runOutline,
	}
	cmd.Flags().String("format", "text", "output format (text|json)")
	cmd.Flags().Bool("stable", false, "derive ids from path and position instead of random UUIDs")
	return cmd
}

func runOutline(cmd *cobra.Command, args []string) error {
	target := args[0]
	format, err := cmd.Flags().GetString("format")
	if err != nil {
		return fmt.Errorf("failed to get format flag: %w", err)
	}
	if format != "text" && format != "json" {
		return fmt.Errorf("unknown format: %s", format)
	}
	stable, err := cmd.Flags().GetBool("stable")
	if err != nil {
		return fmt.Errorf("failed to get stable flag: %w", err)
	}
	s, err := newSession(cmd, target)
	if err != nil {
		return err
	}
	defer s.finish()

	res, err := parseInput(cmd, s, target)
	if err != nil {
		return fmt.Errorf("parsing failed: %w", err)
	}
	err = s.phase("render", func() error {
		entries := outline.Build(res.Program, res.File, outline.Options{Stable: stable})
		if format == "json" {
			if err := outline.WriteJSON(s.stdout, res.File.Path, entries); err != nil {
				return err
			}
		} else if err := outline.WriteText(s.stdout, entries); err != nil {
			return err
		}
		return s.renderDiagnostics(res.Bag, res.FileSet)
	})
	if err != nil {
		return err
	}
	return exitStatus(res.Bag)
}
