package chat

import (
	"strings"

	tea "charm.land/bubbletea/v2"

	"github.com/havenchat/haven/internal/tui/util"
)

// Command message types.
type (
	// NewSessionMsg requests creating a fresh chat session.
	NewSessionMsg struct{}

	// OpenSessionsMsg requests opening the sessions panel.
	OpenSessionsMsg struct{}

	// AttachFileMsg requests staging a file for the next message.
	AttachFileMsg struct {
		Path string
	}

	// OpenTimerMsg requests opening the focus timer.
	OpenTimerMsg struct{}

	// OpenBreathingMsg requests opening the breathing exercise.
	OpenBreathingMsg struct{}

	// OpenStudyPlanMsg requests opening the study plan form.
	OpenStudyPlanMsg struct{}

	// ToggleDebugMsg requests flipping debug logging on or off.
	ToggleDebugMsg struct{}

	// QuitMsg requests exiting the application.
	QuitMsg struct{}

	// UnknownCommandMsg indicates an unknown slash command was entered.
	UnknownCommandMsg struct {
		Command string
	}
)

// Command represents a slash command.
type Command struct {
	Name        string
	Description string
	Handler     func(args []string) tea.Msg
}

// CommandRegistry holds registered slash commands.
type CommandRegistry struct {
	commands map[string]Command
}

// NewCommandRegistry creates a new command registry with default commands.
func NewCommandRegistry() *CommandRegistry {
	r := &CommandRegistry{
		commands: make(map[string]Command),
	}

	r.Register(Command{
		Name:        "new",
		Description: "Start a fresh chat",
		Handler:     func(args []string) tea.Msg { return NewSessionMsg{} },
	})
	r.Register(Command{
		Name:        "sessions",
		Description: "Browse and manage your chats",
		Handler:     func(args []string) tea.Msg { return OpenSessionsMsg{} },
	})
	r.Register(Command{
		Name:        "attach",
		Description: "Attach a file to your next message",
		Handler: func(args []string) tea.Msg {
			return AttachFileMsg{Path: strings.Join(args, " ")}
		},
	})
	r.Register(Command{
		Name:        "timer",
		Description: "Open the focus timer",
		Handler:     func(args []string) tea.Msg { return OpenTimerMsg{} },
	})
	r.Register(Command{
		Name:        "breathe",
		Description: "Start a guided breathing exercise",
		Handler:     func(args []string) tea.Msg { return OpenBreathingMsg{} },
	})
	r.Register(Command{
		Name:        "plan",
		Description: "Build a study plan",
		Handler:     func(args []string) tea.Msg { return OpenStudyPlanMsg{} },
	})
	r.Register(Command{
		Name:        "debug",
		Description: "Toggle debug logging",
		Handler:     func(args []string) tea.Msg { return ToggleDebugMsg{} },
	})
	r.Register(Command{
		Name:        "quit",
		Description: "Exit Haven",
		Handler:     func(args []string) tea.Msg { return QuitMsg{} },
	})

	return r
}

// Register adds a command to the registry.
func (r *CommandRegistry) Register(cmd Command) {
	r.commands[cmd.Name] = cmd
}

// Parse attempts to parse input as a slash command.
// Returns the command message and true if it's a command, nil and false otherwise.
func (r *CommandRegistry) Parse(input string) (tea.Msg, bool) {
	input = strings.TrimSpace(input)
	if !strings.HasPrefix(input, "/") {
		return nil, false
	}

	parts := strings.Fields(input[1:])
	if len(parts) == 0 {
		return nil, false
	}

	cmdName := strings.ToLower(parts[0])
	args := parts[1:]

	cmd, ok := r.commands[cmdName]
	if !ok {
		return UnknownCommandMsg{Command: cmdName}, true
	}

	return cmd.Handler(args), true
}

// GetCommands returns all registered commands.
func (r *CommandRegistry) GetCommands() []Command {
	cmds := make([]Command, 0, len(r.commands))
	for _, cmd := range r.commands {
		cmds = append(cmds, cmd)
	}
	return cmds
}

// parseCommand is a helper method for the chat Model.
// Returns a tea.Cmd if the input is a command, nil otherwise.
func (m *Model) parseCommand(input string) tea.Cmd {
	msg, isCmd := m.commandRegistry.Parse(input)
	if !isCmd {
		return nil
	}

	return util.CmdHandler(msg)
}
