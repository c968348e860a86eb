package main

import (
	"context"
	"os"

	tea "github.com/charmbracelet/bubbletea"

	"l5cond/internal/driver"
	"l5cond/internal/ui"
)

type batchOutcome struct {
	results []driver.Result
	err     error
}

func runBatchWithUI(ctx context.Context, title string, items []driver.Item, opts driver.Options, jobs int) ([]driver.Result, error) {
	events := make(chan driver.Event, 256)
	outcomeCh := make(chan batchOutcome, 1)

	go func() {
		res, err := driver.Batch(ctx, items, opts, jobs, driver.ChannelSink{Ch: events})
		outcomeCh <- batchOutcome{results: res, err: err}
		close(events)
	}()

	names := make([]string, len(items))
	for i, it := range items {
		names[i] = it.Name
	}
	model := ui.NewProgressModel(title, names, events)
	program := tea.NewProgram(model, tea.WithOutput(os.Stderr))
	_, uiErr := program.Run()
	// keep workers unblocked if the view quit before the batch finished
	go func() {
		for range events {
		}
	}()
	outcome := <-outcomeCh
	if uiErr != nil {
		return outcome.results, uiErr
	}
	return outcome.results, outcome.err
}
