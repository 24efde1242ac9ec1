// SPDX-License-Identifier: Apache-2.0
// Copyright (c) 2026 Garudasat Aerospace Team

package simulator

import (
	"fmt"
	"time"

	"github.com/garudasat/cansim/pkg/groundlink"
)

// FlightState is the single mutable state value of the running simulator.
// It is owned by the engine's run loop; nothing else mutates it.
type FlightState struct {
	profile *MissionProfile

	Phase            string
	PGPhase          string
	PacketCount      int
	TelemetryEnabled bool
	FlightActive     bool
	SimulationMode   bool
	CommandEcho      string

	// MissionStart anchors MISSION_TIME; zero until telemetry first
	// enables.
	MissionStart time.Time
}

// NewFlightState creates the on-the-pad state for a profile.
func NewFlightState(p *MissionProfile) *FlightState {
	s := &FlightState{profile: p}
	s.Phase = p.Phases.First()
	if p.PGPhases != nil {
		s.PGPhase = p.PGPhases.First()
	}
	return s
}

// Advance recomputes the phase for the current packet count. It returns
// true when the flight just auto-stopped: the terminal phase has been held
// past the profile's grace window, both the flight and telemetry flags have
// been cleared, and no record must be produced this tick.
//
// Phase selection is monotonically non-decreasing in packet count because
// the table bounds are ascending and the count only grows between resets.
func (s *FlightState) Advance() (ended bool) {
	if !s.FlightActive {
		s.Phase = s.profile.Phases.First()
		if s.profile.PGPhases != nil {
			s.PGPhase = s.profile.PGPhases.First()
		}
		return false
	}

	s.Phase = s.profile.Phases.At(s.PacketCount)
	if s.profile.PGPhases != nil {
		s.PGPhase = s.profile.PGPhases.At(s.PacketCount)
	}

	if s.Phase == s.profile.Phases.Terminal &&
		s.PacketCount > s.profile.Phases.LastBound()+s.profile.LandedGrace {
		s.FlightActive = false
		s.TelemetryEnabled = false
		return true
	}
	return false
}

// CommitRecord advances the packet counter after a tick's record has been
// built and handed to the transport.
func (s *FlightState) CommitRecord() {
	s.PacketCount++
}

// Mode renders the MODE column.
func (s *FlightState) Mode() string {
	if s.FlightActive {
		return groundlink.ModeFlight
	}
	return groundlink.ModeStandby
}

// MissionTime renders elapsed time since the mission started as HH:MM:SS.
func (s *FlightState) MissionTime(now time.Time) string {
	if s.MissionStart.IsZero() {
		return "00:00:00"
	}
	elapsed := int(now.Sub(s.MissionStart).Seconds())
	if elapsed < 0 {
		elapsed = 0
	}
	return fmt.Sprintf("%02d:%02d:%02d", elapsed/3600, (elapsed%3600)/60, elapsed%60)
}

// Apply dispatches one parsed uplink command against the state, returning a
// short description for the console log. The switch is exhaustive over the
// command union; bad input never reaches here (the parser rejects it), so
// Apply cannot fail.
func (s *FlightState) Apply(cmd *groundlink.Command, now time.Time) string {
	switch cmd.Kind {
	case groundlink.CmdTelemetry:
		if cmd.On {
			s.TelemetryEnabled = true
			s.PacketCount = 0
			s.MissionStart = now
			s.CommandEcho = cmd.Echo
			return "telemetry transmission activated"
		}
		s.TelemetryEnabled = false
		s.FlightActive = false
		s.CommandEcho = cmd.Echo
		return "telemetry transmission deactivated"

	case groundlink.CmdStartFlight:
		if !s.TelemetryEnabled {
			s.TelemetryEnabled = true
			s.MissionStart = now
		}
		s.FlightActive = true
		s.PacketCount = 0
		s.CommandEcho = cmd.Echo
		return "flight mode activated"

	case groundlink.CmdCalibrate:
		s.PacketCount = 0
		s.CommandEcho = cmd.Echo
		return "altitude reference zeroed"

	case groundlink.CmdSimulation:
		switch cmd.Sim {
		case groundlink.SimEnable:
			s.SimulationMode = true
			s.CommandEcho = cmd.Echo
			return "simulation mode enabled"
		case groundlink.SimActivate:
			if !s.SimulationMode {
				return "simulation activate ignored: not enabled"
			}
			s.CommandEcho = cmd.Echo
			return "simulation mode activated"
		default:
			s.SimulationMode = false
			s.CommandEcho = cmd.Echo
			return "simulation mode disabled"
		}

	case groundlink.CmdSetTime:
		// Informational: the simulator keys MISSION_TIME off its own
		// mission start, but the echo confirms receipt.
		s.CommandEcho = cmd.Echo
		return fmt.Sprintf("mission time source acknowledged: %s", cmd.Time)

	case groundlink.CmdMechanism:
		// No physical actuator exists in the simulator.
		s.CommandEcho = cmd.Echo
		return fmt.Sprintf("mechanism %s commanded %s (no-op)", cmd.Device, onOffWord(cmd.On))

	case groundlink.CmdSetTarget:
		s.CommandEcho = cmd.Echo
		return fmt.Sprintf("guidance target acknowledged: %s,%s", cmd.TgtLat, cmd.TgtLon)

	default:
		// Unrecognized keyword: echo it back, mutate nothing else.
		s.CommandEcho = cmd.Echo
		return fmt.Sprintf("unrecognized command %q", cmd.Keyword)
	}
}

func onOffWord(on bool) string {
	if on {
		return "ON"
	}
	return "OFF"
}
