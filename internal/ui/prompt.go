package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/huh"
)

// Target is what an interactive session asked to fetch.
type Target struct {
	Mode  string
	Value string
}

// PromptForTarget asks for a fetch target when none was given on the command
// line. Returns an error if the user aborts the form.
func PromptForTarget() (Target, error) {
	var target Target

	form := huh.NewForm(
		huh.NewGroup(
			huh.NewSelect[string]().
				Title("What do you want to fetch?").
				Options(
					huh.NewOption("User profile and history", "user"),
					huh.NewOption("Subreddit posts", "subreddit"),
					huh.NewOption("Post with comment tree", "post"),
					huh.NewOption("Site-wide search", "search"),
					huh.NewOption("Front page", "frontpage"),
				).
				Value(&target.Mode),

			huh.NewInput().
				Title("Target").
				Description("Username, subreddit, subreddit/postid, or search query").
				Placeholder("golang").
				Value(&target.Value).
				Validate(func(s string) error {
					if strings.TrimSpace(s) == "" && target.Mode != "frontpage" {
						return fmt.Errorf("target cannot be empty")
					}
					return nil
				}),
		),
	)

	if err := form.Run(); err != nil {
		return Target{}, fmt.Errorf("prompt aborted: %w", err)
	}
	target.Value = strings.TrimSpace(target.Value)
	return target, nil
}

// ConfirmLargeFetch warns before a fetch that will walk many pages.
func ConfirmLargeFetch(limit int) (bool, error) {
	proceed := true
	err := huh.NewConfirm().
		Title(fmt.Sprintf("Fetch up to %d records?", limit)).
		Description("Large fetches walk many pages with a politeness delay between each.").
		Affirmative("Fetch").
		Negative("Cancel").
		Value(&proceed).
		Run()
	if err != nil {
		return false, fmt.Errorf("prompt aborted: %w", err)
	}
	return proceed, nil
}
