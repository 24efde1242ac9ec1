// SPDX-License-Identifier: Apache-2.0
// Copyright (c) 2026 Garudasat Aerospace Team

package groundlink

import (
	"errors"
	"fmt"
	"strings"
)

// CommandKind discriminates the parsed uplink command union.
type CommandKind int

// Command kinds. CmdUnknown carries the raw keyword so the simulator can
// echo it back without acting on it.
const (
	CmdUnknown CommandKind = iota
	CmdTelemetry
	CmdStartFlight
	CmdCalibrate
	CmdSimulation
	CmdSetTime
	CmdMechanism
	CmdSetTarget
)

// SimAction is the argument of a SIM command.
type SimAction int

// SIM command actions.
const (
	SimEnable SimAction = iota
	SimActivate
	SimDisable
)

// Parse errors. Lines failing these checks must not mutate simulator state.
var (
	ErrTooFewFields = errors.New("command line has fewer than 3 fields")
	ErrBadArgument  = errors.New("invalid command argument")
)

// Command is one parsed uplink command. Kind selects which payload fields
// are meaningful; Echo is the compact confirmation string embedded in the
// next telemetry record.
type Command struct {
	Kind    CommandKind
	Origin  string
	ID      string
	Keyword string
	Echo    string

	On      bool      // CmdTelemetry, CmdMechanism
	Sim     SimAction // CmdSimulation
	Time    string    // CmdSetTime: "GPS" or HH:MM:SS
	Device  string    // CmdMechanism
	TgtLat  string    // CmdSetTarget
	TgtLon  string    // CmdSetTarget
}

// String returns a short human-readable description for logging.
func (c *Command) String() string {
	switch c.Kind {
	case CmdTelemetry:
		return fmt.Sprintf("telemetry %s", onOff(c.On))
	case CmdStartFlight:
		return "start flight"
	case CmdCalibrate:
		return "calibrate altitude"
	case CmdSimulation:
		return fmt.Sprintf("simulation %s", [...]string{"ENABLE", "ACTIVATE", "DISABLE"}[c.Sim])
	case CmdSetTime:
		return fmt.Sprintf("set mission time %s", c.Time)
	case CmdMechanism:
		return fmt.Sprintf("mechanism %s %s", c.Device, onOff(c.On))
	case CmdSetTarget:
		return fmt.Sprintf("set target %s,%s", c.TgtLat, c.TgtLon)
	default:
		return fmt.Sprintf("unknown command %q", c.Keyword)
	}
}

func onOff(on bool) string {
	if on {
		return "ON"
	}
	return "OFF"
}

// ParseCommand parses one uplink line into a Command. The grammar is
// <origin>,<id>,<keyword>[,<arg>[,<arg>]]. Lines with fewer than three
// fields, or with an argument the keyword cannot accept, return an error
// and no command. An unrecognized keyword is not an error: it parses to
// CmdUnknown with the keyword as its echo.
func ParseCommand(line string) (*Command, error) {
	parts := strings.Split(strings.TrimSpace(line), Delimiter)
	if len(parts) < 3 {
		return nil, fmt.Errorf("%w: %q", ErrTooFewFields, line)
	}

	cmd := &Command{
		Origin:  parts[0],
		ID:      parts[1],
		Keyword: strings.ToUpper(strings.TrimSpace(parts[2])),
	}
	args := parts[3:]

	switch cmd.Keyword {
	case KeywordTelemetry:
		if len(args) < 1 {
			return nil, fmt.Errorf("%w: CX needs ON or OFF", ErrBadArgument)
		}
		switch strings.ToUpper(args[0]) {
		case "ON":
			cmd.On = true
		case "OFF":
			cmd.On = false
		default:
			return nil, fmt.Errorf("%w: CX got %q", ErrBadArgument, args[0])
		}
		cmd.Kind = CmdTelemetry
		cmd.Echo = cmd.Keyword + strings.ToUpper(args[0])

	case KeywordStartFlight:
		// 2025 ground stations send FLY,GO; later years send bare FLY.
		// The argument is accepted and ignored either way.
		cmd.Kind = CmdStartFlight
		cmd.Echo = cmd.Keyword

	case KeywordCalibrate:
		cmd.Kind = CmdCalibrate
		cmd.Echo = cmd.Keyword

	case KeywordSimulation:
		if len(args) < 1 {
			return nil, fmt.Errorf("%w: SIM needs ENABLE, ACTIVATE or DISABLE", ErrBadArgument)
		}
		arg := strings.ToUpper(args[0])
		switch arg {
		case "ENABLE":
			cmd.Sim = SimEnable
		case "ACTIVATE":
			cmd.Sim = SimActivate
		case "DISABLE":
			cmd.Sim = SimDisable
		default:
			return nil, fmt.Errorf("%w: SIM got %q", ErrBadArgument, args[0])
		}
		cmd.Kind = CmdSimulation
		cmd.Echo = cmd.Keyword + arg

	case KeywordSetTime:
		if len(args) < 1 {
			return nil, fmt.Errorf("%w: ST needs GPS or HH:MM:SS", ErrBadArgument)
		}
		arg := strings.TrimSpace(args[0])
		if !strings.EqualFold(arg, "GPS") && !validClock(arg) {
			return nil, fmt.Errorf("%w: ST got %q", ErrBadArgument, args[0])
		}
		cmd.Kind = CmdSetTime
		cmd.Time = strings.ToUpper(arg)
		cmd.Echo = cmd.Keyword + cmd.Time

	case KeywordMechanism:
		if len(args) < 2 {
			return nil, fmt.Errorf("%w: MEC needs device and ON/OFF", ErrBadArgument)
		}
		switch strings.ToUpper(args[1]) {
		case "ON":
			cmd.On = true
		case "OFF":
			cmd.On = false
		default:
			return nil, fmt.Errorf("%w: MEC got %q", ErrBadArgument, args[1])
		}
		cmd.Kind = CmdMechanism
		cmd.Device = strings.TrimSpace(args[0])
		cmd.Echo = cmd.Keyword + strings.ToUpper(cmd.Device) + strings.ToUpper(args[1])

	case KeywordSetTarget:
		if len(args) < 2 {
			return nil, fmt.Errorf("%w: SET_TARGET needs latitude and longitude", ErrBadArgument)
		}
		cmd.Kind = CmdSetTarget
		cmd.TgtLat = strings.TrimSpace(args[0])
		cmd.TgtLon = strings.TrimSpace(args[1])
		cmd.Echo = "SETTARGET"

	default:
		cmd.Kind = CmdUnknown
		cmd.Echo = cmd.Keyword
	}

	return cmd, nil
}

// validClock reports whether s is a plausible HH:MM:SS literal.
func validClock(s string) bool {
	if len(s) != 8 || s[2] != ':' || s[5] != ':' {
		return false
	}
	for i, c := range s {
		if i == 2 || i == 5 {
			continue
		}
		if c < '0' || c > '9' {
			return false
		}
	}
	hh := int(s[0]-'0')*10 + int(s[1]-'0')
	mm := int(s[3]-'0')*10 + int(s[4]-'0')
	ss := int(s[6]-'0')*10 + int(s[7]-'0')
	return hh < 24 && mm < 60 && ss < 60
}
