package main

import (
	"context"
	"os"

	tea "github.com/charmbracelet/bubbletea"

	"arrowgraph/internal/driver"
	"arrowgraph/internal/source"
	"arrowgraph/internal/ui"
)

type lintOutcome struct {
	fs      *source.FileSet
	results []driver.LintResult
	err     error
}

// runLintWithUI runs LintDir while a progress model renders its events.
func runLintWithUI(ctx context.Context, title string, files []string, dir string, opts driver.LintOptions) (*source.FileSet, []driver.LintResult, error) {
	events := make(chan driver.Event, 256)
	outcomeCh := make(chan lintOutcome, 1)

	go func() {
		optsCopy := opts
		optsCopy.Sink = driver.ChannelSink{Ch: events}
		fs, results, err := driver.LintDir(ctx, dir, optsCopy)
		outcomeCh <- lintOutcome{fs: fs, results: results, err: err}
		close(events)
	}()

	model := ui.NewProgressModel(title, files, events)
	program := tea.NewProgram(model, tea.WithOutput(os.Stdout))
	_, uiErr := program.Run()
	// после выхода модели (в т.ч. по Ctrl+C) канал никто не читает
	go func() {
		for range events {
		}
	}()
	outcome := <-outcomeCh
	if uiErr != nil {
		return outcome.fs, outcome.results, uiErr
	}
	return outcome.fs, outcome.results, outcome.err
}
