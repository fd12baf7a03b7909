package cli

import (
	"fmt"
	"os"

	"github.com/AlecAivazis/survey/v2"
	"github.com/mattn/go-isatty"
)

// promptForAssistant interactively asks which AI assistant the project
// targets. Falls back to the first flavor when stdin is not a terminal.
func promptForAssistant() (string, error) {
	if !isatty.IsTerminal(os.Stdin.Fd()) {
		return assistants[0], nil
	}

	var choice string
	prompt := &survey.Select{
		Message: "Which AI assistant will this project use?",
		Options: assistants,
		Default: assistants[0],
	}
	if err := survey.AskOne(prompt, &choice); err != nil {
		return "", fmt.Errorf("assistant selection aborted: %w", err)
	}
	return choice, nil
}
