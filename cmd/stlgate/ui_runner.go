package main

import (
	"context"
	"os"

	tea "github.com/charmbracelet/bubbletea"

	"stlgate/internal/driver"
	"stlgate/internal/ui"
)

type batchOutcome struct {
	items []driver.BatchItem
	err   error
}

// runValidateWithUI runs a batch validation behind a Bubble Tea
// progress screen. The validator feeds progress events through a
// channel; the screen quits when the channel closes.
func runValidateWithUI(ctx context.Context, paths []string, opts driver.Options, jobs int) ([]driver.BatchItem, error) {
	events := make(chan driver.Event, 256)
	outcomeCh := make(chan batchOutcome, 1)

	go func() {
		items, err := driver.ValidateAll(ctx, paths, opts, jobs, events)
		outcomeCh <- batchOutcome{items: items, err: err}
	}()

	model := ui.NewProgressModel("validating STL files", paths, events)
	program := tea.NewProgram(model, tea.WithOutput(os.Stdout))
	_, uiErr := program.Run()
	outcome := <-outcomeCh
	if uiErr != nil {
		return outcome.items, uiErr
	}
	return outcome.items, outcome.err
}
