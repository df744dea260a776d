package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"crest/internal/driver"
)

func newCacheCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "cache",
		Short: "Manage the token cache",
	}
	cmd.AddCommand(&cobra.Command{
		Use:   "clean [path]",
		Short: "Remove cached tokens",
		Long:  "Remove the token cache configured by crest.toml above path (or the default cache directory).",
		Args:  cobra.MaximumNArgs(1),
		RunE:  runCacheClean,
	})
	cmd.AddCommand(&cobra.Command{
		Use:   "dir [path]",
		Short: "Print the cache directory",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			dir, err := cacheDirFor(cmd, args)
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), dir)
			return nil
		},
	})
	return cmd
}

func cacheDirFor(cmd *cobra.Command, args []string) (string, error) {
	base := "."
	if len(args) > 0 && args[0] != "" {
		base = args[0]
	}
	cfg, err := loadConfig(cmd, base)
	if err != nil {
		return "", err
	}
	if cfg.Cache.Dir != "" {
		return cfg.Cache.Dir, nil
	}
	return driver.DefaultCacheDir("crest")
}

func runCacheClean(cmd *cobra.Command, args []string) error {
	dir, err := cacheDirFor(cmd, args)
	if err != nil {
		return err
	}
	out := cmd.OutOrStdout()
	if _, err := os.Stat(dir); err != nil {
		if errors.Is(err, os.ErrNotExist) {
			fmt.Fprintln(out, "cache directory not found")
			return nil
		}
		return fmt.Errorf("failed to stat %q: %w", dir, err)
	}
	cache, err := driver.OpenDiskCache(dir)
	if err != nil {
		return err
	}
	if err := cache.DropAll(); err != nil {
		return fmt.Errorf("failed to clean %q: %w", dir, err)
	}
	fmt.Fprintf(out, "removed %s\n", dir)
	return nil
}
