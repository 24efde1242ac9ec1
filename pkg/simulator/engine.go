// SPDX-License-Identifier: Apache-2.0
// Copyright (c) 2026 Garudasat Aerospace Team

package simulator

import (
	"fmt"

	"github.com/garudasat/cansim/pkg/groundlink"
)

// Engine ties the mission profile, flight state machine, synthesizer and
// record encoder together. All methods must be called from the single run
// loop goroutine; the engine holds no locks by construction.
type Engine struct {
	Profile *MissionProfile
	State   *FlightState
	Stats   *Statistics

	synth   *Synthesizer
	clock   Clock
	metrics *Metrics
}

// NewEngine validates the profile and builds a ready engine. metrics may be
// nil when no listener is configured.
func NewEngine(p *MissionProfile, clock Clock, seed int64, metrics *Metrics) (*Engine, error) {
	if err := p.Validate(); err != nil {
		return nil, fmt.Errorf("mission profile %d: %w", p.Year, err)
	}
	e := &Engine{
		Profile: p,
		State:   NewFlightState(p),
		Stats:   NewStatistics(clock.Now()),
		synth:   NewSynthesizer(seed),
		clock:   clock,
		metrics: metrics,
	}
	e.metrics.observeState(e.State)
	return e, nil
}

// HeaderLine renders the column header announced when the link opens.
func (e *Engine) HeaderLine() string {
	return groundlink.HeaderLine(e.Profile.ColumnNames())
}

// HandleLine parses and dispatches one inbound command line. The returned
// description is for the console log. A non-nil error means the line was
// rejected and no state changed; the error is never fatal.
func (e *Engine) HandleLine(line string) (string, error) {
	cmd, err := groundlink.ParseCommand(line)
	if err != nil {
		e.Stats.CommandsRejected++
		if e.metrics != nil {
			e.metrics.CommandsRejected.Inc()
		}
		return "", err
	}

	desc := e.State.Apply(cmd, e.clock.Now())
	if cmd.Kind == groundlink.CmdUnknown {
		e.Stats.UnknownCommands++
	} else {
		e.Stats.CommandsAccepted++
	}
	if e.metrics != nil {
		e.metrics.Commands.WithLabelValues(cmd.Keyword).Inc()
	}
	e.metrics.observeState(e.State)
	return desc, nil
}

// Tick runs one transmission cycle: advance the state machine, synthesize a
// record and encode it. It returns ok=false when nothing should be sent
// this tick — telemetry disabled, or the flight just auto-stopped (ended
// reports which).
func (e *Engine) Tick() (line string, ok, ended bool) {
	if !e.State.TelemetryEnabled {
		return "", false, false
	}

	if e.State.Advance() {
		e.Stats.FlightsCompleted++
		if e.metrics != nil {
			e.metrics.FlightsCompleted.Inc()
		}
		e.metrics.observeState(e.State)
		return "", false, true
	}

	rec := e.synth.Sample(e.Profile, e.State, e.clock.Now())
	line = rec.Encode(e.Profile.ChecksumCharLimit)
	e.State.CommitRecord()

	e.Stats.RecordsSent++
	if e.metrics != nil {
		e.metrics.RecordsSent.Inc()
	}
	e.metrics.observeState(e.State)
	return line, true, false
}

// NoteWriteError records a failed transport write. The record is lost;
// delivery is at most once.
func (e *Engine) NoteWriteError() {
	e.Stats.WriteErrors++
	if e.metrics != nil {
		e.metrics.WriteErrors.Inc()
	}
}
