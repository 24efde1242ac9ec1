// SPDX-License-Identifier: GPL-2.0-or-later
// Copyright (c) 2026 Garudasat Aerospace Team

package cmd

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"

	"github.com/garudasat/cansim/pkg/simulator"
)

var dashboardCmd = &cobra.Command{
	Use:   "dashboard",
	Short: "Run the simulator with a live status view",
	Long: `Run the simulator loop with a full-screen dashboard instead of scrolling
console output.

Shows the flight state machine, the last transmitted record, link
statistics and an event log while the simulator responds to ground-station
commands as usual.`,
	RunE: runDashboard,
}

func init() {
	rootCmd.AddCommand(dashboardCmd)
	dashboardCmd.Flags().Int64Var(&randomSeed, "seed", 0, "Random seed for reproducible runs (0 = from clock)")
}

// Snapshot of the engine state, sent after every mutation so the model
// never touches the engine's goroutine.
type stateMsg struct {
	phase       string
	pgPhase     string
	packetCount int
	telemetry   bool
	flight      bool
	simMode     bool
	echo        string
	records     uint64
	commands    uint64
	writeErrors uint64
}

type txMsg struct {
	line string
}

type eventMsg struct {
	text    string
	isError bool
}

type linkClosedMsg struct{}

type dashLogEntry struct {
	timestamp time.Time
	message   string
	isError   bool
}

type dashModel struct {
	connInfo string
	profile  string
	spin     spinner.Model
	state    stateMsg
	lastTX   string
	events   []dashLogEntry
	maxLog   int
	width    int
	height   int
	quitting bool
	cancel   context.CancelFunc
}

func newDashModel(connInfo, profile string, cancel context.CancelFunc) dashModel {
	sp := spinner.New()
	sp.Spinner = spinner.Dot
	sp.Style = lipgloss.NewStyle().Foreground(lipgloss.Color("12"))
	return dashModel{
		connInfo: connInfo,
		profile:  profile,
		spin:     sp,
		maxLog:   50,
		width:    80,
		height:   24,
		cancel:   cancel,
	}
}

func (m dashModel) Init() tea.Cmd {
	return tea.Batch(m.spin.Tick, tea.EnterAltScreen)
}

func (m dashModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c":
			m.quitting = true
			m.cancel()
			return m, tea.Quit
		}

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height

	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spin, cmd = m.spin.Update(msg)
		return m, cmd

	case stateMsg:
		m.state = msg

	case txMsg:
		m.lastTX = msg.line

	case eventMsg:
		m.addLog(msg.text, msg.isError)

	case linkClosedMsg:
		m.addLog("link closed", true)
		m.quitting = true
		m.cancel()
		return m, tea.Quit
	}

	return m, nil
}

func (m *dashModel) addLog(message string, isError bool) {
	m.events = append(m.events, dashLogEntry{
		timestamp: time.Now(),
		message:   message,
		isError:   isError,
	})
	if len(m.events) > m.maxLog {
		m.events = m.events[len(m.events)-m.maxLog:]
	}
}

func (m dashModel) View() string {
	if m.quitting {
		return "Shutting down...\n"
	}

	titleStyle := lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color("12")).
		Background(lipgloss.Color("235")).
		Padding(0, 1)

	headerStyle := lipgloss.NewStyle().
		Foreground(lipgloss.Color("241"))

	labelStyle := lipgloss.NewStyle().
		Foreground(lipgloss.Color("12")).
		Bold(true)

	valueStyle := lipgloss.NewStyle().
		Foreground(lipgloss.Color("10"))

	errorStyle := lipgloss.NewStyle().
		Foreground(lipgloss.Color("9")).
		Bold(true)

	boxStyle := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color("240")).
		Padding(0, 1)

	var s strings.Builder
	s.WriteString(titleStyle.Render("CANSIM - TELEMETRY SIMULATOR"))
	s.WriteString("\n")
	s.WriteString(headerStyle.Render(fmt.Sprintf("%s | Profile: %s | Press 'q' to quit", m.connInfo, m.profile)))
	s.WriteString("\n\n")

	// Flight state panel
	var state strings.Builder
	mode := "STANDBY"
	if m.state.flight {
		mode = "FLIGHT"
	}
	telemetry := "OFF"
	if m.state.telemetry {
		telemetry = "ON"
	}
	state.WriteString(fmt.Sprintf("%s %s    %s %s    %s %s\n",
		labelStyle.Render("Mode:"), valueStyle.Render(mode),
		labelStyle.Render("Telemetry:"), valueStyle.Render(telemetry),
		labelStyle.Render("Packets:"), valueStyle.Render(fmt.Sprintf("%d", m.state.packetCount))))
	state.WriteString(fmt.Sprintf("%s %s", labelStyle.Render("Phase:"), valueStyle.Render(m.state.phase)))
	if m.state.pgPhase != "" {
		state.WriteString(fmt.Sprintf("    %s %s", labelStyle.Render("PG:"), valueStyle.Render(m.state.pgPhase)))
	}
	if m.state.echo != "" {
		state.WriteString(fmt.Sprintf("    %s %s", labelStyle.Render("Echo:"), valueStyle.Render(m.state.echo)))
	}
	if m.state.simMode {
		state.WriteString(fmt.Sprintf("    %s", valueStyle.Render("SIM")))
	}
	if !m.state.telemetry {
		state.WriteString(fmt.Sprintf("\n%s waiting for CX ON", m.spin.View()))
	}
	s.WriteString(boxStyle.Render(state.String()))
	s.WriteString("\n\n")

	// Last record panel
	tx := m.lastTX
	if tx == "" {
		tx = "(nothing transmitted yet)"
	} else if len(tx) > m.width-6 && m.width > 10 {
		tx = tx[:m.width-9] + "..."
	}
	s.WriteString(labelStyle.Render("Last record"))
	s.WriteString("\n")
	s.WriteString(boxStyle.Render(tx))
	s.WriteString("\n\n")

	// Counters
	s.WriteString(headerStyle.Render(fmt.Sprintf("records=%d commands=%d write_errors=%d",
		m.state.records, m.state.commands, m.state.writeErrors)))
	s.WriteString("\n\n")

	// Event log, newest last
	s.WriteString(labelStyle.Render("Events"))
	s.WriteString("\n")
	visible := m.events
	if max := m.height - 16; max > 0 && len(visible) > max {
		visible = visible[len(visible)-max:]
	}
	for _, e := range visible {
		line := fmt.Sprintf("[%s] %s", e.timestamp.Format("15:04:05"), e.message)
		if e.isError {
			s.WriteString(errorStyle.Render(line))
		} else {
			s.WriteString(line)
		}
		s.WriteString("\n")
	}

	return s.String()
}

func runDashboard(cmd *cobra.Command, args []string) error {
	conn, connInfo, err := OpenConnection()
	if err != nil {
		return err
	}
	defer conn.Close()

	engine, err := buildEngine(nil)
	if err != nil {
		return err
	}

	if err := writeLine(conn, engine.HeaderLine()); err != nil {
		return fmt.Errorf("send header: %w", err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	profile := fmt.Sprintf("%d (team %s)", engine.Profile.Year, engine.Profile.TeamID)
	program := tea.NewProgram(newDashModel(connInfo, profile, cancel))

	go dashboardLoop(ctx, program, engine, conn)

	_, err = program.Run()
	return err
}

// dashboardLoop is the run loop with console logging replaced by messages
// to the TUI. It is the only goroutine touching the engine.
func dashboardLoop(ctx context.Context, program *tea.Program, engine *simulator.Engine, conn Connection) {
	lines := make(chan string, 16)
	go readLines(conn, lines)

	ticker := time.NewTicker(time.Second)
	defer ticker.Stop()

	sendState := func() {
		program.Send(stateMsg{
			phase:       engine.State.Phase,
			pgPhase:     engine.State.PGPhase,
			packetCount: engine.State.PacketCount,
			telemetry:   engine.State.TelemetryEnabled,
			flight:      engine.State.FlightActive,
			simMode:     engine.State.SimulationMode,
			echo:        engine.State.CommandEcho,
			records:     engine.Stats.RecordsSent,
			commands:    engine.Stats.CommandsAccepted,
			writeErrors: engine.Stats.WriteErrors,
		})
	}
	sendState()

	for {
		select {
		case <-ctx.Done():
			return

		case line, ok := <-lines:
			if !ok {
				program.Send(linkClosedMsg{})
				return
			}
			desc, err := engine.HandleLine(line)
			if err != nil {
				program.Send(eventMsg{text: fmt.Sprintf("rejected: %v", err), isError: true})
			} else {
				program.Send(eventMsg{text: fmt.Sprintf("RX %s: %s", line, desc)})
			}
			sendState()

		case <-ticker.C:
			record, ok, ended := engine.Tick()
			if ended {
				program.Send(eventMsg{text: "flight complete - telemetry stopped"})
				sendState()
				continue
			}
			if !ok {
				continue
			}
			if err := writeLine(conn, record); err != nil {
				engine.NoteWriteError()
				program.Send(eventMsg{text: fmt.Sprintf("write error: %v", err), isError: true})
			} else {
				program.Send(txMsg{line: record})
			}
			sendState()
		}
	}
}
