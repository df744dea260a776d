package main

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"crest/internal/config"
	"crest/internal/diag"
	"crest/internal/diagfmt"
	"crest/internal/driver"
	"crest/internal/observ"
	"crest/internal/source"
)

// session: настройки одной команды: crest.toml + флаги поверх него.
type session struct {
	cfg        config.Config
	opts       driver.Options
	diagFormat diagfmt.Format
	color      bool
	quiet      bool
	timer      *observ.Timer // nil без --timings
	ui         uiMode
	stdout     io.Writer
	stderr     io.Writer
}

func newSession(cmd *cobra.Command, target string) (*session, error) {
	flags := cmd.Root().PersistentFlags()

	cfg, err := loadConfig(cmd, target)
	if err != nil {
		return nil, err
	}

	if flags.Changed("max-diagnostics") {
		v, _ := flags.GetInt("max-diagnostics")
		cfg.Frontend.MaxDiagnostics = v
	}
	if v, _ := flags.GetString("diag-format"); v != "" {
		cfg.Frontend.Format = v
	}
	if v, _ := flags.GetString("normalize"); v != "" {
		cfg.Frontend.Normalize = v
	}
	if cmd.Flags().Lookup("jobs") != nil && cmd.Flags().Changed("jobs") {
		v, _ := cmd.Flags().GetInt("jobs")
		cfg.Parallel.Jobs = v
	}
	if noCache, _ := flags.GetBool("no-cache"); noCache {
		cfg.Cache.Enabled = false
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	s := &session{cfg: cfg, stdout: cmd.OutOrStdout(), stderr: cmd.ErrOrStderr()}
	s.diagFormat, _ = diagfmt.ParseFormat(cfg.Frontend.Format)
	s.quiet, _ = flags.GetBool("quiet")

	colorFlag, _ := flags.GetString("color")
	if s.color, err = resolveColor(colorFlag); err != nil {
		return nil, err
	}
	color.NoColor = !s.color

	uiFlag, _ := flags.GetString("ui")
	if s.ui, err = readUIMode(uiFlag); err != nil {
		return nil, err
	}

	if timings, _ := flags.GetBool("timings"); timings {
		s.timer = observ.NewTimer()
	}

	s.opts = driver.Options{
		MaxDiagnostics: cfg.Frontend.MaxDiagnostics,
		Normalize:      cfg.Normalization(),
		Jobs:           cfg.Parallel.Jobs,
		Timer:          s.timer,
	}
	if cfg.Cache.Enabled {
		s.opts.Cache = s.openCache()
	}
	return s, nil
}

func loadConfig(cmd *cobra.Command, target string) (config.Config, error) {
	path, _ := cmd.Root().PersistentFlags().GetString("config")
	if path != "" {
		return config.LoadFile(path)
	}
	if target == "" || target == "-" {
		target = "."
	}
	cfg, _, err := config.Load(target)
	return cfg, err
}

func resolveColor(flag string) (bool, error) {
	switch strings.ToLower(flag) {
	case "on":
		return true, nil
	case "off":
		return false, nil
	case "", "auto":
		return isTerminal(os.Stderr), nil
	}
	return false, fmt.Errorf("invalid --color value %q (expected auto|on|off)", flag)
}

func (s *session) cacheDir() (string, error) {
	if s.cfg.Cache.Dir != "" {
		return s.cfg.Cache.Dir, nil
	}
	return driver.DefaultCacheDir("crest")
}

// openCache: кэш необязателен, при ошибке работаем без него.
func (s *session) openCache() *driver.DiskCache {
	dir, err := s.cacheDir()
	if err == nil {
		var cache *driver.DiskCache
		if cache, err = driver.OpenDiskCache(dir); err == nil {
			return cache
		}
	}
	if !s.quiet {
		fmt.Fprintf(s.stderr, "warning: token cache disabled: %v\n", err)
	}
	return nil
}

// renderDiagnostics печатает bag в выбранном формате: json и golden в stdout, остальное в stderr.
func (s *session) renderDiagnostics(bag *diag.Bag, fs *source.FileSet) error {
	if bag == nil {
		return nil
	}
	bag.Sort()
	switch s.diagFormat {
	case diagfmt.FormatJSON:
		return diagfmt.JSON(s.stdout, bag, fs, diagfmt.JSONOpts{
			IncludePositions: true,
			IncludeNotes:     true,
			IncludeFixes:     true,
		})
	case diagfmt.FormatGolden:
		return diagfmt.Golden(s.stdout, bag, fs)
	case diagfmt.FormatPretty:
		if bag.Len() > 0 {
			err := diagfmt.Pretty(s.stderr, bag, fs, diagfmt.PrettyOpts{
				Color:     s.color,
				Context:   2,
				ShowNotes: true,
				ShowFixes: true,
			})
			if err != nil {
				return err
			}
		}
	default:
		if err := diagfmt.Short(s.stderr, bag, fs, diagfmt.ShortOpts{}); err != nil {
			return err
		}
	}
	if n := bag.Dropped(); n > 0 && !s.quiet {
		fmt.Fprintf(s.stderr, "note: %d more diagnostic(s) not shown (--max-diagnostics)\n", n)
	}
	return nil
}

// phase measures fn as a timer phase when --timings is on.
func (s *session) phase(name string, fn func() error) error {
	if s.timer == nil {
		return fn()
	}
	return s.timer.Measure(name, fn)
}

// finish печатает тайминги; при json они уже попали в диагностики.
func (s *session) finish() {
	if s.timer == nil || s.diagFormat == diagfmt.FormatJSON {
		return
	}
	if err := s.timer.WriteSummary(s.stderr); err != nil {
		fmt.Fprintf(s.stderr, "failed to print timings: %v\n", err)
	}
}

// timingsInto adds the timer report to bag for json output.
func (s *session) timingsInto(bag *diag.Bag, kind, path string) {
	if s.timer != nil && s.diagFormat == diagfmt.FormatJSON {
		driver.AppendTimings(bag, kind, path, s.timer.Report())
	}
}
