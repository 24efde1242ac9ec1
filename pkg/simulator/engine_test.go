// SPDX-License-Identifier: Apache-2.0
// Copyright (c) 2026 Garudasat Aerospace Team

package simulator

import (
	"strconv"
	"strings"
	"testing"
	"time"

	"github.com/garudasat/cansim/pkg/groundlink"
)

type fakeClock struct {
	t time.Time
}

func (c *fakeClock) Now() time.Time { return c.t }

func (c *fakeClock) advance(d time.Duration) { c.t = c.t.Add(d) }

func newTestEngine(t *testing.T, year int) (*Engine, *fakeClock) {
	t.Helper()
	clock := &fakeClock{t: time.Date(2026, 11, 14, 13, 0, 0, 0, time.UTC)}
	e, err := NewEngine(ProfileFor(year), clock, 1, nil)
	if err != nil {
		t.Fatalf("NewEngine: %v", err)
	}
	return e, clock
}

func TestEngineIdleUntilEnabled(t *testing.T) {
	e, _ := newTestEngine(t, 2026)
	if line, ok, ended := e.Tick(); ok || ended || line != "" {
		t.Errorf("Tick() before CX ON = (%q, %v, %v), want idle", line, ok, ended)
	}
}

func TestEngineCommandScenario(t *testing.T) {
	e, clock := newTestEngine(t, 2026)

	desc, err := e.HandleLine("CMD,1,CX,ON")
	if err != nil {
		t.Fatalf("HandleLine(CX ON): %v", err)
	}
	if desc == "" {
		t.Error("HandleLine returned empty description")
	}
	if !e.State.TelemetryEnabled || e.State.PacketCount != 0 {
		t.Fatalf("after CX ON: enabled=%v count=%d", e.State.TelemetryEnabled, e.State.PacketCount)
	}

	line, ok, _ := e.Tick()
	if !ok {
		t.Fatal("Tick() produced no record with telemetry on")
	}
	fields := strings.Split(line, groundlink.Delimiter)
	schema := e.Profile.ColumnNames()
	if len(fields) != len(schema) {
		t.Fatalf("record has %d fields, schema has %d columns", len(fields), len(schema))
	}
	byName := func(name string) string {
		for i, n := range schema {
			if n == name {
				return fields[i]
			}
		}
		t.Fatalf("column %q not in schema", name)
		return ""
	}

	// Flight not yet active: standby mode, echo reflects the toggle.
	if got := byName(groundlink.ColMode); got != "S" {
		t.Errorf("MODE = %q, want S before FLY", got)
	}
	if got := byName(groundlink.ColCmdEcho); got != "CXON" {
		t.Errorf("CMD_ECHO = %q, want CXON", got)
	}
	if e.State.PacketCount != 1 {
		t.Errorf("PacketCount after first record = %d, want 1", e.State.PacketCount)
	}

	clock.advance(time.Second)
	if _, err := e.HandleLine("CMD,1,FLY"); err != nil {
		t.Fatalf("HandleLine(FLY): %v", err)
	}
	if !e.State.FlightActive || e.State.PacketCount != 0 {
		t.Fatalf("after FLY: active=%v count=%d, want true 0", e.State.FlightActive, e.State.PacketCount)
	}

	line, ok, _ = e.Tick()
	if !ok {
		t.Fatal("Tick() produced no record after FLY")
	}
	fields = strings.Split(line, groundlink.Delimiter)
	if got := byName(groundlink.ColMode); got != "F" {
		t.Errorf("MODE = %q, want F after FLY", got)
	}
	if got := byName(groundlink.ColCmdEcho); got != "FLY" {
		t.Errorf("CMD_ECHO = %q, want FLY", got)
	}
}

func TestEngineRecordChecksumParses(t *testing.T) {
	e, _ := newTestEngine(t, 2025)
	if _, err := e.HandleLine("CMD,1,CX,ON"); err != nil {
		t.Fatal(err)
	}

	for i := 0; i < 20; i++ {
		line, ok, _ := e.Tick()
		if !ok {
			t.Fatal("Tick() idle with telemetry on")
		}
		fields := strings.Split(line, groundlink.Delimiter)
		cs, err := strconv.Atoi(fields[len(fields)-1])
		if err != nil {
			t.Fatalf("checksum field %q: %v", fields[len(fields)-1], err)
		}
		if cs < 0 || cs > 255 {
			t.Fatalf("checksum = %d, want 0..255", cs)
		}

		body := strings.Join(fields[:len(fields)-1], groundlink.Delimiter) + groundlink.Delimiter
		if want := groundlink.Checksum(body, e.Profile.ChecksumCharLimit); uint8(cs) != want {
			t.Fatalf("checksum = %d, recomputed %d for %q", cs, want, body)
		}
	}
}

func TestEngineFullFlightAutoStops(t *testing.T) {
	e, clock := newTestEngine(t, 2026)
	if _, err := e.HandleLine("CMD,1,FLY"); err != nil {
		t.Fatal(err)
	}

	limit := e.Profile.Phases.LastBound() + e.Profile.LandedGrace + 1
	sent := 0
	endedAt := -1
	for i := 0; i < limit+10; i++ {
		clock.advance(time.Second)
		_, ok, ended := e.Tick()
		if ok {
			sent++
		}
		if ended {
			endedAt = i
			break
		}
	}

	if endedAt == -1 {
		t.Fatal("flight never auto-stopped")
	}
	if e.State.FlightActive || e.State.TelemetryEnabled {
		t.Error("auto-stop left flags set")
	}
	// Records for counts 0..limit-1 are transmitted; the ending tick
	// suppresses its record.
	if sent != limit {
		t.Errorf("sent %d records before auto-stop, want %d", sent, limit)
	}
	if e.Stats.FlightsCompleted != 1 {
		t.Errorf("FlightsCompleted = %d, want 1", e.Stats.FlightsCompleted)
	}

	// Subsequent ticks stay silent.
	if _, ok, ended := e.Tick(); ok || ended {
		t.Error("Tick() after auto-stop still produced output")
	}
}

func TestEngineRejectsMalformedLine(t *testing.T) {
	e, _ := newTestEngine(t, 2026)
	e.State.TelemetryEnabled = true
	e.State.CommandEcho = "CXON"

	if _, err := e.HandleLine("CMD,1"); err == nil {
		t.Fatal("HandleLine accepted a 2-field line")
	}
	if e.State.CommandEcho != "CXON" {
		t.Errorf("CommandEcho = %q, want unchanged", e.State.CommandEcho)
	}
	if e.Stats.CommandsRejected != 1 {
		t.Errorf("CommandsRejected = %d, want 1", e.Stats.CommandsRejected)
	}
}

func TestEngineHeaderMatchesSchema(t *testing.T) {
	e, _ := newTestEngine(t, 2026)
	header := strings.Split(e.HeaderLine(), groundlink.Delimiter)
	if len(header) != len(e.Profile.Schema) {
		t.Errorf("header has %d columns, schema %d", len(header), len(e.Profile.Schema))
	}
}

func TestEngineStatsCountRecords(t *testing.T) {
	e, _ := newTestEngine(t, 2026)
	if _, err := e.HandleLine("CMD,1,CX,ON"); err != nil {
		t.Fatal(err)
	}
	for i := 0; i < 5; i++ {
		if _, ok, _ := e.Tick(); !ok {
			t.Fatal("unexpected idle tick")
		}
	}
	if e.Stats.RecordsSent != 5 {
		t.Errorf("RecordsSent = %d, want 5", e.Stats.RecordsSent)
	}
	if e.Stats.CommandsAccepted != 1 {
		t.Errorf("CommandsAccepted = %d, want 1", e.Stats.CommandsAccepted)
	}

	e.NoteWriteError()
	if e.Stats.WriteErrors != 1 {
		t.Errorf("WriteErrors = %d, want 1", e.Stats.WriteErrors)
	}
}
