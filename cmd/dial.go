package cmd

import (
	"bufio"
	"fmt"
	"net"
	"strconv"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"

	"github.com/nrgonzalez/depot/depot"
)

var dialSelfName string
var dialSelfPort int

var dialCmd = &cobra.Command{
	Use:   "dial <port>",
	Short: "Open an interactive raw session against a depot",
	Long: `Dial a depot's listening port and perform its IM handshake, then
drop into a terminal UI for typing raw protocol lines and watching the
depot's replies. Useful for exercising Deliver/Withdraw/Transfer/Defer/
Execute/Connect by hand without writing a peer depot.

Example:
  depot dial 45213 --name Debugger --port 1`,
	Args: cobra.ExactArgs(1),
	RunE: runDial,
}

func init() {
	dialCmd.Flags().StringVar(&dialSelfName, "name", "debug-client", "name to present in this session's IM")
	dialCmd.Flags().IntVar(&dialSelfPort, "port", 1, "port to present in this session's IM (need not be real)")
	rootCmd.AddCommand(dialCmd)
}

func runDial(cmd *cobra.Command, args []string) error {
	portN, err := strconv.Atoi(args[0])
	if err != nil {
		return usageErrorf("invalid port: %q", args[0])
	}
	port, ok := depot.ValidPort(portN)
	if !ok {
		return usageErrorf("port out of range: %d", portN)
	}
	if !depot.ValidName(dialSelfName) {
		return nameErrorf("invalid --name: %q", dialSelfName)
	}

	nc, err := net.Dial("tcp4", net.JoinHostPort("127.0.0.1", strconv.Itoa(int(port))))
	if err != nil {
		return fmt.Errorf("dial: %w", err)
	}

	p := tea.NewProgram(newDialModel(nc, dialSelfName, depot.Port(dialSelfPort)))
	go pumpLines(p, nc)

	_, err = p.Run()
	nc.Close()
	return err
}

// pumpLines reads lines off nc and feeds each to the bubbletea program
// as a lineMsg, until the connection closes.
func pumpLines(p *tea.Program, nc net.Conn) {
	r := bufio.NewReader(nc)
	for {
		line, err := depot.ReadLine(r)
		if err != nil {
			p.Send(disconnectedMsg{err: err})
			return
		}
		p.Send(lineMsg(line))
	}
}

type lineMsg string
type disconnectedMsg struct{ err error }

type dialModel struct {
	nc         net.Conn
	transcript []string
	input      string
	connected  bool
	err        error
}

func newDialModel(nc net.Conn, selfName string, selfPort depot.Port) dialModel {
	fmt.Fprintf(nc, "IM:%d:%s\n", selfPort, selfName)
	return dialModel{
		nc:         nc,
		transcript: []string{fmt.Sprintf("> IM:%d:%s", selfPort, selfName)},
		connected:  true,
	}
}

func (m dialModel) Init() tea.Cmd { return nil }

func (m dialModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.Type {
		case tea.KeyCtrlC, tea.KeyEsc:
			return m, tea.Quit
		case tea.KeyEnter:
			if m.input == "" {
				return m, nil
			}
			line := m.input
			m.input = ""
			if m.connected {
				if _, err := fmt.Fprintf(m.nc, "%s\n", line); err != nil {
					m.err = err
					m.connected = false
				} else {
					m.transcript = append(m.transcript, "> "+line)
				}
			}
			return m, nil
		case tea.KeyBackspace:
			if len(m.input) > 0 {
				m.input = m.input[:len(m.input)-1]
			}
			return m, nil
		default:
			m.input += msg.String()
			return m, nil
		}
	case lineMsg:
		m.transcript = append(m.transcript, "< "+string(msg))
		return m, nil
	case disconnectedMsg:
		m.connected = false
		m.err = msg.err
		m.transcript = append(m.transcript, fmt.Sprintf("[disconnected: %v]", msg.err))
		return m, nil
	}
	return m, nil
}

func (m dialModel) View() string {
	var s strings.Builder

	titleStyle := lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("62")).Padding(0, 1)
	s.WriteString(titleStyle.Render("depot dial"))
	s.WriteString("\n\n")

	shown := m.transcript
	if len(shown) > 20 {
		shown = shown[len(shown)-20:]
	}
	boxStyle := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color("240")).
		Padding(0, 1).
		Width(80).
		Height(22)
	s.WriteString(boxStyle.Render(strings.Join(shown, "\n")))
	s.WriteString("\n\n")

	promptStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("240"))
	if m.connected {
		s.WriteString(promptStyle.Render("> " + m.input))
	} else {
		errStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("196")).Bold(true)
		s.WriteString(errStyle.Render(fmt.Sprintf("disconnected: %v", m.err)))
	}
	s.WriteString("\n")
	s.WriteString(promptStyle.Italic(true).Render("Enter to send a line, Esc to quit"))

	return s.String()
}
