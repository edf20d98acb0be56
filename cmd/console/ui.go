package main

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

const placeholderText = "look / go north / take key / use key on door / talk to guard ..."

var (
	titleStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("205")). // pink
			Bold(true)

	narratorStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("86")) // green

	userStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("39")) // teal

	errorStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("196")) // red

	promptStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("240")) // dark grey
)

// ConsoleUI is the BubbleTea model that runs the UI.
// https://github.com/charmbracelet/bubbletea
type ConsoleUI struct {
	api      *apiClient
	gameID   string
	viewport viewport.Model
	input    textinput.Model
	lines    []string
	ready    bool
	ended    bool
}

type actionResponseMsg struct {
	echo     string
	response *actionResponse
	err      error
}

func NewConsoleUI(api *apiClient, gameID string) ConsoleUI {
	ti := textinput.New()
	ti.Placeholder = placeholderText
	ti.Prompt = promptStyle.Render(":: ")
	ti.CharLimit = 200
	ti.Focus()

	return ConsoleUI{
		api:    api,
		gameID: gameID,
		input:  ti,
		lines:  []string{titleStyle.Render("State of Play"), ""},
	}
}

func (m ConsoleUI) Init() tea.Cmd {
	return tea.Batch(textinput.Blink, m.performAction("look around", actionRequest{Action: "look"}))
}

func (m ConsoleUI) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		inputHeight := 3
		if !m.ready {
			m.viewport = viewport.New(msg.Width, msg.Height-inputHeight)
			m.ready = true
		} else {
			m.viewport.Width = msg.Width
			m.viewport.Height = msg.Height - inputHeight
		}
		m.input.Width = msg.Width - 4
		m.refreshViewport()
		return m, nil

	case tea.KeyMsg:
		switch msg.Type {
		case tea.KeyCtrlC, tea.KeyEsc:
			return m, tea.Quit
		case tea.KeyEnter:
			command := strings.TrimSpace(m.input.Value())
			m.input.Reset()
			if command == "" {
				return m, nil
			}
			if command == "quit" || command == "exit" {
				return m, tea.Quit
			}
			req, err := parseCommand(command)
			if err != nil {
				m.appendLine(errorStyle.Render(err.Error()))
				m.refreshViewport()
				return m, nil
			}
			return m, m.performAction(command, req)
		}

	case actionResponseMsg:
		m.appendLine(userStyle.Render("> " + msg.echo))
		if msg.err != nil {
			m.appendLine(errorStyle.Render(msg.err.Error()))
		} else {
			m.appendResponse(msg.response)
		}
		m.appendLine("")
		m.refreshViewport()
		if m.ended {
			return m, tea.Quit
		}
		return m, nil
	}

	var cmds []tea.Cmd
	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	cmds = append(cmds, cmd)
	m.viewport, cmd = m.viewport.Update(msg)
	cmds = append(cmds, cmd)
	return m, tea.Batch(cmds...)
}

func (m ConsoleUI) View() string {
	if !m.ready {
		return "Loading..."
	}
	return m.viewport.View() + "\n\n" + m.input.View()
}

func (m *ConsoleUI) performAction(echo string, req actionRequest) tea.Cmd {
	api := m.api
	gameID := m.gameID
	return func() tea.Msg {
		response, err := api.doAction(gameID, req)
		return actionResponseMsg{echo: echo, response: response, err: err}
	}
}

func (m *ConsoleUI) appendLine(line string) {
	m.lines = append(m.lines, line)
}

func (m *ConsoleUI) appendResponse(resp *actionResponse) {
	switch {
	case resp.Result != nil:
		style := narratorStyle
		if !resp.Result.Success {
			style = errorStyle
		}
		m.appendLine(style.Render(resp.Result.Message))
	case resp.Description != "":
		m.appendLine(narratorStyle.Render(resp.Description))
	case resp.Inventory != nil:
		if len(resp.Inventory) == 0 {
			m.appendLine(narratorStyle.Render("Your inventory is empty."))
			return
		}
		for _, item := range resp.Inventory {
			line := fmt.Sprintf("- %s: %s", item.Name, item.Description)
			if item.Useable {
				line += " (useable)"
			}
			m.appendLine(narratorStyle.Render(line))
		}
	case resp.Actions != nil:
		m.appendLine(narratorStyle.Render("Available actions:"))
		for _, action := range resp.Actions {
			m.appendLine(narratorStyle.Render("- " + action))
		}
	case resp.Summary != nil:
		s := resp.Summary
		m.appendLine(titleStyle.Render("Game over: " + s.Outcome))
		m.appendLine(narratorStyle.Render(fmt.Sprintf("%s - %d turns in %s, %d items collected",
			s.Title, s.TotalTurns, s.Duration, s.ItemsCollected)))
		for _, event := range s.MajorEvents {
			m.appendLine(narratorStyle.Render("- " + event))
		}
		m.ended = true
	}
}

func (m *ConsoleUI) refreshViewport() {
	m.viewport.SetContent(strings.Join(m.lines, "\n"))
	m.viewport.GotoBottom()
}

// parseCommand maps console shorthand onto action requests.
func parseCommand(command string) (actionRequest, error) {
	fields := strings.Fields(command)
	verb := strings.ToLower(fields[0])
	rest := strings.TrimSpace(strings.TrimPrefix(command, fields[0]))

	switch verb {
	case "look":
		return actionRequest{Action: "look"}, nil
	case "go", "move":
		if rest == "" {
			return actionRequest{}, fmt.Errorf("go where? e.g. 'go north'")
		}
		return actionRequest{Action: "move", Direction: rest}, nil
	case "take", "get":
		if rest == "" {
			return actionRequest{}, fmt.Errorf("take what? e.g. 'take key'")
		}
		return actionRequest{Action: "take", Item: rest}, nil
	case "drop":
		if rest == "" {
			return actionRequest{}, fmt.Errorf("drop what? e.g. 'drop key'")
		}
		return actionRequest{Action: "drop", Item: rest}, nil
	case "use":
		if rest == "" {
			return actionRequest{}, fmt.Errorf("use what? e.g. 'use key' or 'use key on door'")
		}
		item, target, found := strings.Cut(rest, " on ")
		if !found {
			return actionRequest{Action: "use", Item: rest}, nil
		}
		return actionRequest{Action: "use", Item: strings.TrimSpace(item), Target: strings.TrimSpace(target)}, nil
	case "talk":
		rest = strings.TrimSpace(strings.TrimPrefix(rest, "to "))
		if rest == "" {
			return actionRequest{}, fmt.Errorf("talk to whom? e.g. 'talk to guard'")
		}
		return actionRequest{Action: "talk", NPC: rest}, nil
	case "inventory", "inv", "i":
		return actionRequest{Action: "inventory"}, nil
	case "actions", "help":
		return actionRequest{Action: "actions"}, nil
	case "end":
		return actionRequest{Action: "end", Outcome: "Player ended game"}, nil
	default:
		return actionRequest{}, fmt.Errorf("unknown command %q - try 'actions' for a list", verb)
	}
}
