package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"crest/internal/version"
)

// errDiagnostics: ошибки уже напечатаны как диагностики, нужен только код выхода.
var errDiagnostics = errors.New("errors reported")

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:           "crest",
		Short:         "Crest language front end",
		Long:          `Crest tokenizes and parses *.crs sources and reports syntax diagnostics`,
		Version:       version.Current().Version,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	// Глобальные флаги
	flags := root.PersistentFlags()
	flags.String("color", "auto", "colorize output (auto|on|off)")
	flags.Bool("quiet", false, "suppress non-essential output")
	flags.Bool("timings", false, "show timing information")
	flags.Int("max-diagnostics", 0, "maximum number of diagnostics per file (0 = crest.toml or 100)")
	flags.String("diag-format", "", "diagnostics format (short|pretty|json|golden); default from crest.toml")
	flags.String("normalize", "", "source normalization (none|nfc); default from crest.toml")
	flags.String("config", "", "path to crest.toml (default: search upwards from the input)")
	flags.Bool("no-cache", false, "disable the token cache")
	flags.String("ui", "auto", "progress UI for directories (auto|on|off)")
	flags.String("trace", "", "trace output file, or - for stderr")
	flags.String("trace-level", "off", "trace level (off|error|phase|detail|debug)")
	flags.String("trace-format", "auto", "trace format (auto|text|ndjson)")
	flags.String("cpu-profile", "", "write a CPU profile to file")
	flags.String("mem-profile", "", "write a heap profile to file on exit")
	flags.String("runtime-trace", "", "write a Go runtime trace to file")

	root.PersistentPreRunE = func(cmd *cobra.Command, _ []string) error {
		stopProf, err := setupProfiling(cmd)
		if err != nil {
			return err
		}
		cleanups = append(cleanups, stopProf)
		stopTrace, err := setupTracing(cmd)
		if err != nil {
			return err
		}
		cleanups = append(cleanups, stopTrace)
		return nil
	}
	root.PersistentPostRun = func(*cobra.Command, []string) {
		runCleanups()
	}

	root.AddCommand(newTokenizeCmd())
	root.AddCommand(newParseCmd())
	root.AddCommand(newCheckCmd())
	root.AddCommand(newFixCmd())
	root.AddCommand(newOutlineCmd())
	root.AddCommand(newVersionCmd())
	root.AddCommand(newCacheCmd())
	return root
}

func main() {
	os.Exit(run(os.Args[1:]))
}

func run(args []string) int {
	root := newRootCmd()
	root.SetArgs(args)
	err := root.Execute()
	// PostRun не вызывается, если RunE вернул ошибку
	runCleanups()
	if err == nil {
		return 0
	}
	if !errors.Is(err, errDiagnostics) {
		fmt.Fprintln(root.ErrOrStderr(), "error:", err)
	}
	return 1
}

// isTerminal проверяет, является ли файл терминалом
func isTerminal(f *os.File) bool {
	return term.IsTerminal(int(f.Fd()))
}
