package cmd

import (
	"errors"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"
)

type promptModel struct {
	input     textinput.Model
	cancelled bool
}

func newPromptModel(label string, masked bool) promptModel {
	input := textinput.New()
	input.Prompt = label + ": "
	input.Focus()
	if masked {
		input.EchoMode = textinput.EchoPassword
		input.EchoCharacter = '*'
	}

	return promptModel{input: input}
}

func (m promptModel) Init() tea.Cmd {
	return textinput.Blink
}

func (m promptModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if key, ok := msg.(tea.KeyMsg); ok {
		switch key.Type {
		case tea.KeyEnter:
			return m, tea.Quit
		case tea.KeyCtrlC, tea.KeyEsc:
			m.cancelled = true
			return m, tea.Quit
		}
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

func (m promptModel) View() string {
	return m.input.View()
}

// promptLine asks for one line of input on the command's terminal. A masked
// prompt echoes asterisks instead of the typed characters.
func promptLine(cmd *cobra.Command, label string, masked bool) (string, error) {
	p := tea.NewProgram(
		newPromptModel(label, masked),
		tea.WithInput(cmd.InOrStdin()),
		tea.WithOutput(cmd.OutOrStdout()),
	)

	finalModel, err := p.Run()
	if err != nil {
		return "", fmt.Errorf("read %s: %w", strings.ToLower(label), err)
	}

	result, ok := finalModel.(promptModel)
	if !ok {
		return "", fmt.Errorf("unexpected final prompt model type %T", finalModel)
	}
	if result.cancelled {
		return "", errors.New("cancelled")
	}

	return strings.TrimSpace(result.input.Value()), nil
}
