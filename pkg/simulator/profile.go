// SPDX-License-Identifier: Apache-2.0
// Copyright (c) 2026 Garudasat Aerospace Team

package simulator

import (
	"fmt"
	"sort"

	"github.com/hashicorp/go-multierror"

	"github.com/garudasat/cansim/pkg/groundlink"
)

// Range is an inclusive numeric sampling range.
type Range struct {
	Min, Max float64
}

// RangeSet resolves a field's sampling range. Fields whose behavior depends
// on the flight phase carry PerPhase entries; Global is the fallback for
// phases without their own entry.
type RangeSet struct {
	Global   *Range
	PerPhase map[string]Range
}

// For returns the range active for phase, or false when the set cannot
// resolve one.
func (rs RangeSet) For(phase string) (Range, bool) {
	if r, ok := rs.PerPhase[phase]; ok {
		return r, true
	}
	if rs.Global != nil {
		return *rs.Global, true
	}
	return Range{}, false
}

// PhaseStep is one row of the ordered phase transition table: the phase is
// active while packet count <= UpperBound.
type PhaseStep struct {
	Name       string
	UpperBound int
}

// PhaseTable is the declarative phase-from-packet-count rule. Steps are
// evaluated in order; a count beyond every bound selects Terminal.
type PhaseTable struct {
	Steps    []PhaseStep
	Terminal string
}

// At returns the phase active at the given packet count.
func (t PhaseTable) At(count int) string {
	for _, s := range t.Steps {
		if count <= s.UpperBound {
			return s.Name
		}
	}
	return t.Terminal
}

// First returns the on-the-pad phase, forced while the flight is inactive.
func (t PhaseTable) First() string {
	if len(t.Steps) > 0 {
		return t.Steps[0].Name
	}
	return t.Terminal
}

// LastBound returns the packet count at which the last non-terminal phase
// ends; the terminal phase is first reached one packet later.
func (t PhaseTable) LastBound() int {
	if len(t.Steps) == 0 {
		return 0
	}
	return t.Steps[len(t.Steps)-1].UpperBound
}

// Names returns every phase name in transition order, terminal last.
func (t PhaseTable) Names() []string {
	names := make([]string, 0, len(t.Steps)+1)
	for _, s := range t.Steps {
		names = append(names, s.Name)
	}
	return append(names, t.Terminal)
}

// FieldKind tells the synthesizer how to render a schema column.
type FieldKind int

// Schema column kinds.
const (
	KindTeamID FieldKind = iota
	KindMissionTime
	KindPacketCount
	KindMode
	KindState
	KindPGState
	KindFloat
	KindInt
	KindGPSTime
	KindLatitude
	KindLongitude
	KindCmdEcho
	KindBlank
	KindChecksum
)

// FieldSpec is one column of a mission profile's record schema.
type FieldSpec struct {
	Name      string
	Kind      FieldKind
	Precision int // decimal places for KindFloat, KindLatitude, KindLongitude
}

// MissionProfile is the immutable per-mission-year configuration bundle:
// phases, field ranges, record schema, command vocabulary and link
// parameters. Profiles are pure data; the state machine and synthesizer
// interpret them.
type MissionProfile struct {
	Year   int
	TeamID string

	Phases      PhaseTable
	PGPhases    *PhaseTable // paraglider sub-state table, nil for years without one
	LandedGrace int         // packets past the last bound before auto-stop

	Ranges map[string]RangeSet
	Schema []FieldSpec

	Commands []string // recognized uplink vocabulary, for operator listings

	// ChecksumCharLimit bounds the character sum; the deployed decoders
	// disagree between revisions (150 vs 200), so the limit is per-profile.
	ChecksumCharLimit int

	BaseLat      float64
	BaseLon      float64
	MaxDriftKm   float64 // drift radius ceiling while airborne
	PadJitterDeg float64 // fix scatter while grounded, in degrees
}

// ColumnNames returns the schema's column names in wire order, for the
// header line.
func (p *MissionProfile) ColumnNames() []string {
	names := make([]string, len(p.Schema))
	for i, f := range p.Schema {
		names[i] = f.Name
	}
	return names
}

// Validate checks profile consistency, accumulating every problem rather
// than stopping at the first. Profiles ship with the binary, so a failure
// here is a build-time mistake and the caller should exit.
func (p *MissionProfile) Validate() error {
	var result *multierror.Error

	if p.TeamID == "" {
		result = multierror.Append(result, fmt.Errorf("profile %d: empty team ID", p.Year))
	}
	if len(p.Phases.Steps) == 0 || p.Phases.Terminal == "" {
		result = multierror.Append(result, fmt.Errorf("profile %d: phase table needs steps and a terminal phase", p.Year))
	}
	if p.ChecksumCharLimit <= 0 {
		result = multierror.Append(result, fmt.Errorf("profile %d: checksum char limit must be positive", p.Year))
	}
	if p.LandedGrace < 0 {
		result = multierror.Append(result, fmt.Errorf("profile %d: landed grace must be non-negative", p.Year))
	}
	if p.MaxDriftKm < 0 {
		result = multierror.Append(result, fmt.Errorf("profile %d: drift radius must be non-negative", p.Year))
	}

	prev := -1
	for _, s := range p.Phases.Steps {
		if s.UpperBound <= prev {
			result = multierror.Append(result, fmt.Errorf("profile %d: phase %q bound %d not ascending", p.Year, s.Name, s.UpperBound))
		}
		prev = s.UpperBound
	}

	if len(p.Schema) == 0 {
		result = multierror.Append(result, fmt.Errorf("profile %d: empty record schema", p.Year))
	}
	if len(p.Schema) > 0 && p.Schema[len(p.Schema)-1].Kind != KindChecksum {
		result = multierror.Append(result, fmt.Errorf("profile %d: schema must end with the checksum column", p.Year))
	}

	// Every ranged column must resolve for every phase it can be sampled in.
	for _, f := range p.Schema {
		switch f.Kind {
		case KindFloat, KindInt:
			rs, ok := p.Ranges[f.Name]
			if !ok {
				result = multierror.Append(result, fmt.Errorf("profile %d: field %q has no range set", p.Year, f.Name))
				continue
			}
			for _, phase := range p.Phases.Names() {
				r, ok := rs.For(phase)
				if !ok {
					result = multierror.Append(result, fmt.Errorf("profile %d: field %q has no range for phase %q", p.Year, f.Name, phase))
					continue
				}
				if r.Min > r.Max {
					result = multierror.Append(result, fmt.Errorf("profile %d: field %q range inverted for phase %q", p.Year, f.Name, phase))
				}
			}
		case KindPGState:
			if p.PGPhases == nil {
				result = multierror.Append(result, fmt.Errorf("profile %d: schema has %s but no paraglider phase table", p.Year, f.Name))
			}
		}
	}

	return result.ErrorOrNil()
}

// DefaultYear selects the profile used when the requested mission year is
// unknown.
const DefaultYear = 2026

// ProfileFor returns the profile for the given mission year, falling back
// to the default profile for unknown years. The returned profile is a copy;
// callers may override link parameters without touching the built-ins.
func ProfileFor(year int) *MissionProfile {
	p, ok := profiles[year]
	if !ok {
		p = profiles[DefaultYear]
	}
	cp := *p
	return &cp
}

// Years returns the built-in mission years in ascending order.
func Years() []int {
	years := make([]int, 0, len(profiles))
	for y := range profiles {
		years = append(years, y)
	}
	sort.Ints(years)
	return years
}

func floatCol(name string, prec int) FieldSpec {
	return FieldSpec{Name: name, Kind: KindFloat, Precision: prec}
}

func global(min, max float64) RangeSet {
	return RangeSet{Global: &Range{Min: min, Max: max}}
}

var profiles = map[int]*MissionProfile{
	2025: {
		Year:   2025,
		TeamID: "3121",
		Phases: PhaseTable{
			Steps: []PhaseStep{
				{"LAUNCH_PAD", 9},
				{"ASCENT", 19},
				{"APOGEE", 29},
				{"DESCENT", 39},
				{"PROBE_RELEASE", 49},
			},
			Terminal: "LANDED",
		},
		LandedGrace: 5,
		Ranges: map[string]RangeSet{
			groundlink.ColAltitude: {
				PerPhase: map[string]Range{
					"LAUNCH_PAD":    {0, 0.1},
					"ASCENT":        {10, 1000},
					"APOGEE":        {1000, 1100},
					"DESCENT":       {500, 1000},
					"PROBE_RELEASE": {50, 500},
					"LANDED":        {0, 0.1},
				},
			},
			groundlink.ColTemperature:  global(-5.0, 35.0),
			groundlink.ColPressure:     global(80.0, 120.0),
			groundlink.ColVoltage:      global(3.5, 4.2),
			groundlink.ColGyroR:        global(-5.0, 5.0),
			groundlink.ColGyroP:        global(-5.0, 5.0),
			groundlink.ColGyroY:        global(-5.0, 5.0),
			groundlink.ColAccelR:       global(-2.0, 2.0),
			groundlink.ColAccelP:       global(-2.0, 2.0),
			groundlink.ColAccelY:       global(-2.0, 2.0),
			groundlink.ColMagR:         global(-1.0, 1.0),
			groundlink.ColMagP:         global(-1.0, 1.0),
			groundlink.ColMagY:         global(-1.0, 1.0),
			groundlink.ColRotationRate: global(0, 360),
			groundlink.ColGPSAltitude:  global(0, 1000),
			groundlink.ColGPSSats:      global(3, 12),
		},
		Schema: []FieldSpec{
			{Name: groundlink.ColTeamID, Kind: KindTeamID},
			{Name: groundlink.ColMissionTime, Kind: KindMissionTime},
			{Name: groundlink.ColPacketCount, Kind: KindPacketCount},
			{Name: groundlink.ColMode, Kind: KindMode},
			{Name: groundlink.ColState, Kind: KindState},
			floatCol(groundlink.ColAltitude, 1),
			floatCol(groundlink.ColTemperature, 2),
			floatCol(groundlink.ColPressure, 1),
			floatCol(groundlink.ColVoltage, 2),
			floatCol(groundlink.ColGyroR, 2),
			floatCol(groundlink.ColGyroP, 2),
			floatCol(groundlink.ColGyroY, 2),
			floatCol(groundlink.ColAccelR, 2),
			floatCol(groundlink.ColAccelP, 2),
			floatCol(groundlink.ColAccelY, 2),
			floatCol(groundlink.ColMagR, 2),
			floatCol(groundlink.ColMagP, 2),
			floatCol(groundlink.ColMagY, 2),
			{Name: groundlink.ColRotationRate, Kind: KindInt},
			{Name: groundlink.ColGPSTime, Kind: KindGPSTime},
			floatCol(groundlink.ColGPSAltitude, 2),
			// The 2025 ground station expects 4-decimal longitudes.
			{Name: groundlink.ColGPSLatitude, Kind: KindLatitude, Precision: 6},
			{Name: groundlink.ColGPSLongitude, Kind: KindLongitude, Precision: 4},
			{Name: groundlink.ColGPSSats, Kind: KindInt},
			{Name: groundlink.ColCmdEcho, Kind: KindCmdEcho},
			{Name: groundlink.ColBlank, Kind: KindBlank},
			{Name: groundlink.ColChecksum, Kind: KindChecksum},
		},
		Commands: []string{
			groundlink.KeywordTelemetry, groundlink.KeywordStartFlight,
			groundlink.KeywordCalibrate, groundlink.KeywordSimulation,
			groundlink.KeywordSetTime, groundlink.KeywordMechanism,
		},
		ChecksumCharLimit: 150,
		BaseLat:           -7.275764,
		BaseLon:           112.794317,
		MaxDriftKm:        0.5,
		PadJitterDeg:      0.0001,
	},

	2026: {
		Year:   2026,
		TeamID: "1064",
		Phases: PhaseTable{
			Steps: []PhaseStep{
				{"LAUNCH_PAD", 5},
				{"ASCENT", 30},
				{"APOGEE", 40},
				{"DESCENT", 65},
				{"PROBE_RELEASE", 70},
				{"PAYLOAD_RELEASE", 75},
			},
			Terminal: "LANDED",
		},
		PGPhases: &PhaseTable{
			Steps: []PhaseStep{
				{"_PG_CRUISE", 40},
				{"_PG_APPROACH", 55},
				{"_PG_LOITER", 65},
				{"_PG_FINAL", 70},
				{"_PG_FLARE", 75},
			},
			Terminal: "_PG_LANDED",
		},
		LandedGrace: 5,
		Ranges: map[string]RangeSet{
			groundlink.ColAltitude: {
				PerPhase: map[string]Range{
					"LAUNCH_PAD":      {0, 0.5},
					"ASCENT":          {10, 700},
					"APOGEE":          {690, 710},
					"DESCENT":         {50, 690},
					"PROBE_RELEASE":   {20, 100},
					"PAYLOAD_RELEASE": {5, 50},
					"LANDED":          {0, 1},
				},
			},
			groundlink.ColTemperature: global(5.0, 35.0),
			groundlink.ColPressure:    global(85.0, 103.0),
			groundlink.ColVoltage:     global(3.5, 4.2),
			groundlink.ColCurrent:     global(0.10, 0.50),
			groundlink.ColGyroR:       inertial(-50, 50, -2, 2),
			groundlink.ColGyroP:       inertial(-50, 50, -2, 2),
			groundlink.ColGyroY:       inertial(-50, 50, -2, 2),
			groundlink.ColAccelR:      inertial(-10, 10, -0.5, 0.5),
			groundlink.ColAccelP:      inertial(-10, 10, -0.5, 0.5),
			// Vertical axis reads gravity while grounded.
			groundlink.ColAccelY: inertial(-10, 10, 9.5, 10.5),
			groundlink.ColGPSAltitude: {
				PerPhase: map[string]Range{
					"LAUNCH_PAD":      {0, 10},
					"ASCENT":          {10, 710},
					"APOGEE":          {680, 720},
					"DESCENT":         {40, 700},
					"PROBE_RELEASE":   {10, 110},
					"PAYLOAD_RELEASE": {0, 60},
					"LANDED":          {0, 10},
				},
			},
			groundlink.ColGPSSats:      global(4, 12),
			groundlink.ColRoll:         guidance(-45, 45),
			groundlink.ColPitch:        guidance(-30, 30),
			groundlink.ColYaw:          global(0, 360),
			groundlink.ColHeadingError: global(-15, 15),
			groundlink.ColDistanceTarget: {
				Global: &Range{0, 1000},
				PerPhase: map[string]Range{
					"LANDED": {0, 50},
				},
			},
			groundlink.ColGroundDetect: {
				PerPhase: map[string]Range{
					"LAUNCH_PAD":      {0, 5},
					"ASCENT":          {10, 705},
					"APOGEE":          {685, 715},
					"DESCENT":         {45, 695},
					"PROBE_RELEASE":   {15, 105},
					"PAYLOAD_RELEASE": {0, 55},
					"LANDED":          {0, 5},
				},
			},
		},
		Schema: []FieldSpec{
			{Name: groundlink.ColTeamID, Kind: KindTeamID},
			{Name: groundlink.ColMissionTime, Kind: KindMissionTime},
			{Name: groundlink.ColPacketCount, Kind: KindPacketCount},
			{Name: groundlink.ColMode, Kind: KindMode},
			{Name: groundlink.ColState, Kind: KindState},
			floatCol(groundlink.ColAltitude, 1),
			floatCol(groundlink.ColTemperature, 1),
			floatCol(groundlink.ColPressure, 1),
			floatCol(groundlink.ColVoltage, 1),
			floatCol(groundlink.ColCurrent, 2),
			floatCol(groundlink.ColGyroR, 1),
			floatCol(groundlink.ColGyroP, 1),
			floatCol(groundlink.ColGyroY, 1),
			floatCol(groundlink.ColAccelR, 1),
			floatCol(groundlink.ColAccelP, 1),
			floatCol(groundlink.ColAccelY, 1),
			{Name: groundlink.ColGPSTime, Kind: KindGPSTime},
			floatCol(groundlink.ColGPSAltitude, 1),
			{Name: groundlink.ColGPSLatitude, Kind: KindLatitude, Precision: 6},
			{Name: groundlink.ColGPSLongitude, Kind: KindLongitude, Precision: 6},
			{Name: groundlink.ColGPSSats, Kind: KindInt},
			{Name: groundlink.ColCmdEcho, Kind: KindCmdEcho},
			{Name: groundlink.ColBlank, Kind: KindBlank},
			floatCol(groundlink.ColRoll, 1),
			floatCol(groundlink.ColPitch, 1),
			floatCol(groundlink.ColYaw, 1),
			floatCol(groundlink.ColHeadingError, 1),
			{Name: groundlink.ColPGState, Kind: KindPGState},
			floatCol(groundlink.ColDistanceTarget, 1),
			floatCol(groundlink.ColGroundDetect, 1),
			{Name: groundlink.ColChecksum, Kind: KindChecksum},
		},
		Commands: []string{
			groundlink.KeywordTelemetry, groundlink.KeywordStartFlight,
			groundlink.KeywordCalibrate, groundlink.KeywordSimulation,
			groundlink.KeywordSetTime, groundlink.KeywordMechanism,
			groundlink.KeywordSetTarget,
		},
		ChecksumCharLimit: 150,
		BaseLat:           -7.275764,
		BaseLon:           112.794317,
		MaxDriftKm:        2.0,
		PadJitterDeg:      0.0001,
	},
}

// inertial builds a range set for an IMU axis: a wide range during the
// dynamic flight phases, a narrow grounded range everywhere else.
func inertial(activeMin, activeMax, calmMin, calmMax float64) RangeSet {
	return RangeSet{
		Global: &Range{Min: calmMin, Max: calmMax},
		PerPhase: map[string]Range{
			"ASCENT":  {activeMin, activeMax},
			"APOGEE":  {activeMin, activeMax},
			"DESCENT": {activeMin, activeMax},
		},
	}
}

// guidance builds a range set for a paraglider attitude column: dynamic
// from release through flare, near-level on the ground.
func guidance(activeMin, activeMax float64) RangeSet {
	active := Range{activeMin, activeMax}
	return RangeSet{
		Global: &Range{Min: -2, Max: 2},
		PerPhase: map[string]Range{
			"ASCENT":          active,
			"APOGEE":          active,
			"DESCENT":         active,
			"PROBE_RELEASE":   active,
			"PAYLOAD_RELEASE": active,
		},
	}
}
