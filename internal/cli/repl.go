package cli

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"

	"github.com/ganrobot/ganrobot"
	"github.com/ganrobot/ganrobot/internal/ble"
)

var replDebug bool

var replCmd = &cobra.Command{
	Use:   "repl",
	Short: "Interactive move session",
	Long: `Start an interactive session with the robot. Each line is parsed as a
move sequence and executed; the session shows the robot's remaining-move
status while it works.

With --debug, lines are read as raw decimal wire codes (0-14) instead of
notation, matching the protocol table one byte per move.

Type exit (or press Ctrl+C) to leave.`,
	RunE: runRepl,
}

func init() {
	rootCmd.AddCommand(replCmd)
	replCmd.Flags().BoolVar(&replDebug, "debug", false, "Accept raw wire codes instead of notation")
}

// Styles
var (
	replTitleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("205"))

	replPromptStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("39"))

	replMoveStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("82"))

	replErrorStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("196"))

	replStatusStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("241"))

	replHelpStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("241"))
)

// Messages
type movesDoneMsg struct {
	input string
	err   error
}

type statusEventMsg struct {
	event ganrobot.StatusEvent
}

// Model
type replModel struct {
	client *ble.Client
	debug  bool

	input     string
	history   []string
	busy      bool
	remaining uint8
	quitting  bool
}

func newReplModel(client *ble.Client, debug bool) replModel {
	return replModel{client: client, debug: debug}
}

func (m replModel) Init() tea.Cmd {
	return nil
}

func (m replModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.Type {
		case tea.KeyCtrlC, tea.KeyEsc:
			m.quitting = true
			return m, tea.Quit

		case tea.KeyEnter:
			if m.busy {
				return m, nil
			}
			line := strings.TrimSpace(m.input)
			m.input = ""
			if line == "" {
				return m, nil
			}
			if line == "exit" || line == "quit" {
				m.quitting = true
				return m, tea.Quit
			}
			m.busy = true
			return m, execLine(m.client, line, m.debug)

		case tea.KeyBackspace:
			if len(m.input) > 0 {
				runes := []rune(m.input)
				m.input = string(runes[:len(runes)-1])
			}

		case tea.KeySpace:
			m.input += " "

		case tea.KeyRunes:
			m.input += string(msg.Runes)
		}

	case movesDoneMsg:
		m.busy = false
		if msg.err != nil {
			m.history = append(m.history,
				replErrorStyle.Render(fmt.Sprintf("%s  ✗ %v", msg.input, msg.err)))
		} else {
			m.history = append(m.history,
				replMoveStyle.Render(fmt.Sprintf("%s  ✓", msg.input)))
		}

	case statusEventMsg:
		m.remaining = msg.event.Remaining
	}

	return m, nil
}

func (m replModel) View() string {
	if m.quitting {
		return ""
	}

	var b strings.Builder

	title := "GAN robot"
	if m.debug {
		title += " (debug: raw wire codes)"
	}
	b.WriteString(replTitleStyle.Render(title))
	b.WriteString("\n\n")

	// Last few executed lines
	start := 0
	if len(m.history) > 8 {
		start = len(m.history) - 8
	}
	for _, line := range m.history[start:] {
		b.WriteString("  " + line + "\n")
	}
	if len(m.history) > 0 {
		b.WriteString("\n")
	}

	status := fmt.Sprintf("connected: %s  seq: %d", m.client.DeviceName(), m.client.Seq())
	if m.busy {
		status += fmt.Sprintf("  executing (%d remaining)", m.remaining)
	}
	b.WriteString(replStatusStyle.Render(status))
	b.WriteString("\n\n")

	b.WriteString(replPromptStyle.Render("> "))
	b.WriteString(m.input)
	b.WriteString("\n\n")
	b.WriteString(replHelpStyle.Render("enter: send  •  exit / Ctrl+C: quit"))
	b.WriteString("\n")

	return b.String()
}

// execLine runs one REPL line against the robot.
func execLine(client *ble.Client, line string, debug bool) tea.Cmd {
	return func() tea.Msg {
		ctx := context.Background()

		if debug {
			codes, err := parseRawCodes(line)
			if err != nil {
				return movesDoneMsg{input: line, err: err}
			}
			return movesDoneMsg{input: line, err: client.DoRawCodes(ctx, codes)}
		}

		moves, err := ganrobot.ParseMoves(line)
		if err != nil {
			return movesDoneMsg{input: line, err: err}
		}
		return movesDoneMsg{input: line, err: client.DoMoves(ctx, moves)}
	}
}

// parseRawCodes parses a whitespace-separated list of decimal wire codes.
func parseRawCodes(line string) ([]byte, error) {
	fields := strings.Fields(line)
	codes := make([]byte, 0, len(fields))
	for _, f := range fields {
		v, err := strconv.ParseUint(f, 10, 8)
		if err != nil {
			return nil, fmt.Errorf("invalid wire code %q: %w", f, err)
		}
		codes = append(codes, byte(v))
	}
	return codes, nil
}

func runRepl(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	client, err := newClient(cfg, newLogger())
	if err != nil {
		return fmt.Errorf("BLE not available: %w", err)
	}

	ctx := context.Background()
	if err := client.ConnectByName(ctx, scanTimeout(cfg)); err != nil {
		return err
	}
	defer client.Disconnect()

	p := tea.NewProgram(newReplModel(client, replDebug))
	client.SetStatusCallback(func(event ganrobot.StatusEvent) {
		p.Send(statusEventMsg{event: event})
	})

	_, err = p.Run()
	return err
}
