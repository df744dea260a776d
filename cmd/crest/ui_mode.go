package main

import (
	"context"
	"fmt"
	"os"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"crest/internal/driver"
	"crest/internal/source"
	"crest/internal/ui"
)

type uiMode string

const (
	uiModeAuto uiMode = "auto"
	uiModeOn   uiMode = "on"
	uiModeOff  uiMode = "off"
)

func readUIMode(value string) (uiMode, error) {
	switch strings.TrimSpace(strings.ToLower(value)) {
	case "", "auto":
		return uiModeAuto, nil
	case "on":
		return uiModeOn, nil
	case "off":
		return uiModeOff, nil
	default:
		return "", fmt.Errorf("invalid --ui value %q (expected auto|on|off)", value)
	}
}

func (s *session) useTUI() bool {
	switch s.ui {
	case uiModeOn:
		return true
	case uiModeOff:
		return false
	default:
		return !s.quiet && isTerminal(os.Stdout)
	}
}

type dirOutcome struct {
	result *driver.DirResult
	err    error
}

// runDir processes a directory, drawing the progress view when the UI is on.
func (s *session) runDir(ctx context.Context, dir string, parse bool) (*driver.DirResult, error) {
	run := driver.TokenizeDir
	title := "tokenize " + dir
	if parse {
		run = driver.ParseDir
		title = "parse " + dir
	}
	if !s.useTUI() {
		return run(ctx, dir, s.opts)
	}

	abs, err := driver.ListSourceFiles(dir)
	if err != nil {
		return nil, err
	}
	files := make([]string, len(abs))
	for i, p := range abs {
		files[i] = p
		if rel, err := source.RelativePath(p, dir); err == nil {
			files[i] = rel
		}
	}

	events := make(chan driver.Event, 256)
	outcomeCh := make(chan dirOutcome, 1)
	go func() {
		opts := s.opts
		opts.Progress = driver.ChannelSink{Ch: events}
		res, err := run(ctx, dir, opts)
		close(events)
		outcomeCh <- dirOutcome{result: res, err: err}
	}()

	program := tea.NewProgram(ui.NewProgressModel(title, files, events), tea.WithOutput(s.stderr))
	_, uiErr := program.Run()
	// если окно закрылось раньше, события надо дочитать, иначе воркеры встанут
	for range events {
	}
	outcome := <-outcomeCh
	if uiErr != nil && outcome.err == nil {
		return outcome.result, uiErr
	}
	return outcome.result, outcome.err
}
