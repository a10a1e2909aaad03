package main

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/reflow/wordwrap"
)

const promptWidth = 80

// ErrAborted is returned when the user cancels an input prompt.
var ErrAborted = errors.New("aborted")

var (
	questionStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("212")).
			Bold(true)

	labelStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("39"))

	bannerStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("229")).
			Bold(true).
			BorderStyle(lipgloss.NormalBorder()).
			BorderBottom(true).
			BorderForeground(lipgloss.Color("63"))

	dimStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("241"))
)

// inputModel is a single-line text input run as its own small program. Each
// prompt in the linear pipeline is one of these; there is no persistent
// full-screen UI.
type inputModel struct {
	textInput textinput.Model
	label     string
	done      bool
	aborted   bool
}

func newInputModel(label, placeholder string) inputModel {
	ti := textinput.New()
	ti.Placeholder = placeholder
	ti.CharLimit = 500
	ti.Width = promptWidth - len(label) - 4
	ti.Focus()
	return inputModel{textInput: ti, label: label}
}

func (m inputModel) Init() tea.Cmd {
	return textinput.Blink
}

func (m inputModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if key, ok := msg.(tea.KeyMsg); ok {
		switch key.Type {
		case tea.KeyEnter:
			m.done = true
			return m, tea.Quit
		case tea.KeyCtrlC, tea.KeyEsc:
			m.aborted = true
			return m, tea.Quit
		}
	}
	var cmd tea.Cmd
	m.textInput, cmd = m.textInput.Update(msg)
	return m, cmd
}

func (m inputModel) View() string {
	if m.done || m.aborted {
		// Leave the entered value on screen when the program exits.
		return fmt.Sprintf("%s %s\n", labelStyle.Render(m.label+":"), m.textInput.Value())
	}
	return fmt.Sprintf("%s %s", labelStyle.Render(m.label+":"), m.textInput.View())
}

// promptLine collects one line of input from the user.
func promptLine(label, placeholder string) (string, error) {
	p := tea.NewProgram(newInputModel(label, placeholder))
	result, err := p.Run()
	if err != nil {
		return "", fmt.Errorf("input prompt failed: %w", err)
	}
	m, ok := result.(inputModel)
	if !ok || m.aborted {
		return "", ErrAborted
	}
	return strings.TrimSpace(m.textInput.Value()), nil
}

// terminalAsker renders clarifying questions and reads answers
// interactively. It backs the pipeline's Asker interface.
type terminalAsker struct{}

func (a *terminalAsker) Ask(ctx context.Context, question string) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	fmt.Println()
	fmt.Println(questionStyle.Render(wordwrap.String(question, promptWidth)))
	return promptLine("Your answer", "")
}
