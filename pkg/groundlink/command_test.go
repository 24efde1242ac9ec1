// SPDX-License-Identifier: Apache-2.0
// Copyright (c) 2026 Garudasat Aerospace Team

package groundlink

import (
	"errors"
	"testing"
)

func TestParseCommand(t *testing.T) {
	tests := []struct {
		name     string
		line     string
		wantKind CommandKind
		wantEcho string
		check    func(t *testing.T, c *Command)
	}{
		{
			name:     "telemetry on",
			line:     "CMD,1000,CX,ON",
			wantKind: CmdTelemetry,
			wantEcho: "CXON",
			check: func(t *testing.T, c *Command) {
				if !c.On {
					t.Error("On = false, want true")
				}
			},
		},
		{
			name:     "telemetry off lowercase argument",
			line:     "CMD,1000,CX,off",
			wantKind: CmdTelemetry,
			wantEcho: "CXOFF",
			check: func(t *testing.T, c *Command) {
				if c.On {
					t.Error("On = true, want false")
				}
			},
		},
		{
			name:     "start flight bare",
			line:     "CMD,1064,FLY",
			wantKind: CmdStartFlight,
			wantEcho: "FLY",
		},
		{
			name:     "start flight with legacy GO argument",
			line:     "CMD,3121,FLY,GO",
			wantKind: CmdStartFlight,
			wantEcho: "FLY",
		},
		{
			name:     "calibrate",
			line:     "CMD,1064,CAL",
			wantKind: CmdCalibrate,
			wantEcho: "CAL",
		},
		{
			name:     "simulation enable",
			line:     "CMD,1064,SIM,ENABLE",
			wantKind: CmdSimulation,
			wantEcho: "SIMENABLE",
			check: func(t *testing.T, c *Command) {
				if c.Sim != SimEnable {
					t.Errorf("Sim = %v, want SimEnable", c.Sim)
				}
			},
		},
		{
			name:     "simulation activate",
			line:     "CMD,1064,SIM,ACTIVATE",
			wantKind: CmdSimulation,
			wantEcho: "SIMACTIVATE",
		},
		{
			name:     "set time gps",
			line:     "CMD,1064,ST,GPS",
			wantKind: CmdSetTime,
			wantEcho: "STGPS",
		},
		{
			name:     "set time literal",
			line:     "CMD,1064,ST,13:45:00",
			wantKind: CmdSetTime,
			wantEcho: "ST13:45:00",
			check: func(t *testing.T, c *Command) {
				if c.Time != "13:45:00" {
					t.Errorf("Time = %q, want 13:45:00", c.Time)
				}
			},
		},
		{
			name:     "mechanism on",
			line:     "CMD,1064,MEC,PC1,ON",
			wantKind: CmdMechanism,
			wantEcho: "MECPC1ON",
			check: func(t *testing.T, c *Command) {
				if c.Device != "PC1" || !c.On {
					t.Errorf("Device=%q On=%v, want PC1 true", c.Device, c.On)
				}
			},
		},
		{
			name:     "set target",
			line:     "CMD,1064,SET_TARGET,-7.2750,112.7940",
			wantKind: CmdSetTarget,
			wantEcho: "SETTARGET",
			check: func(t *testing.T, c *Command) {
				if c.TgtLat != "-7.2750" || c.TgtLon != "112.7940" {
					t.Errorf("target = %q,%q", c.TgtLat, c.TgtLon)
				}
			},
		},
		{
			name:     "unknown keyword echoes raw",
			line:     "CMD,1064,WARP,9",
			wantKind: CmdUnknown,
			wantEcho: "WARP",
		},
		{
			name:     "trailing CRLF stripped",
			line:     "CMD,1000,CX,ON\r\n",
			wantKind: CmdTelemetry,
			wantEcho: "CXON",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cmd, err := ParseCommand(tt.line)
			if err != nil {
				t.Fatalf("ParseCommand(%q) error: %v", tt.line, err)
			}
			if cmd.Kind != tt.wantKind {
				t.Errorf("Kind = %v, want %v", cmd.Kind, tt.wantKind)
			}
			if cmd.Echo != tt.wantEcho {
				t.Errorf("Echo = %q, want %q", cmd.Echo, tt.wantEcho)
			}
			if tt.check != nil {
				tt.check(t, cmd)
			}
		})
	}
}

func TestParseCommandRejects(t *testing.T) {
	tests := []struct {
		name    string
		line    string
		wantErr error
	}{
		{"empty line", "", ErrTooFewFields},
		{"one field", "CMD", ErrTooFewFields},
		{"two fields", "CMD,1000", ErrTooFewFields},
		{"telemetry without argument", "CMD,1000,CX", ErrBadArgument},
		{"telemetry bad argument", "CMD,1000,CX,MAYBE", ErrBadArgument},
		{"simulation bad argument", "CMD,1000,SIM,LOUDLY", ErrBadArgument},
		{"set time bad literal", "CMD,1000,ST,25:99:99", ErrBadArgument},
		{"set time garbage", "CMD,1000,ST,noon", ErrBadArgument},
		{"mechanism missing state", "CMD,1000,MEC,PC1", ErrBadArgument},
		{"mechanism bad state", "CMD,1000,MEC,PC1,UP", ErrBadArgument},
		{"set target missing longitude", "CMD,1000,SET_TARGET,-7.2", ErrBadArgument},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cmd, err := ParseCommand(tt.line)
			if err == nil {
				t.Fatalf("ParseCommand(%q) = %+v, want error", tt.line, cmd)
			}
			if !errors.Is(err, tt.wantErr) {
				t.Errorf("error = %v, want %v", err, tt.wantErr)
			}
		})
	}
}
