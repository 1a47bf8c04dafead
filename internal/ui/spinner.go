package ui

import (
	"context"

	"github.com/charmbracelet/huh/spinner"
)

// RunWithSpinner blocks on action while showing a spinner with the given
// title. Cancelling ctx stops both the spinner and the action.
func RunWithSpinner(ctx context.Context, title string, action func(context.Context) error) error {
	return spinner.New().
		Title(title).
		Context(ctx).
		ActionWithErr(action).
		Run()
}
