// SPDX-License-Identifier: Apache-2.0
// Copyright (c) 2026 Garudasat Aerospace Team

package simulator

import (
	"strconv"
	"strings"
	"testing"

	"github.com/garudasat/cansim/pkg/groundlink"
)

func TestBuiltinProfilesValidate(t *testing.T) {
	for _, year := range Years() {
		t.Run(strconv.Itoa(year), func(t *testing.T) {
			if err := ProfileFor(year).Validate(); err != nil {
				t.Errorf("profile %d invalid: %v", year, err)
			}
		})
	}
}

func TestProfileForFallsBack(t *testing.T) {
	p := ProfileFor(1999)
	if p.Year != DefaultYear {
		t.Errorf("ProfileFor(1999).Year = %d, want default %d", p.Year, DefaultYear)
	}
}

func TestProfileForReturnsCopy(t *testing.T) {
	a := ProfileFor(2026)
	a.TeamID = "scratch"
	if b := ProfileFor(2026); b.TeamID == "scratch" {
		t.Error("ProfileFor returned a shared built-in, want a copy")
	}
}

func TestPhaseTableAt(t *testing.T) {
	table := ProfileFor(2026).Phases

	tests := []struct {
		count int
		want  string
	}{
		{0, "LAUNCH_PAD"},
		{5, "LAUNCH_PAD"},
		{6, "ASCENT"},
		{30, "ASCENT"},
		{31, "APOGEE"},
		{40, "APOGEE"},
		{41, "DESCENT"},
		{65, "DESCENT"},
		{66, "PROBE_RELEASE"},
		{71, "PAYLOAD_RELEASE"},
		{76, "LANDED"},
		{10000, "LANDED"},
	}
	for _, tt := range tests {
		if got := table.At(tt.count); got != tt.want {
			t.Errorf("At(%d) = %q, want %q", tt.count, got, tt.want)
		}
	}
}

func TestPhaseTableMonotonic(t *testing.T) {
	for _, year := range Years() {
		table := ProfileFor(year).Phases
		index := func(name string) int {
			for i, n := range table.Names() {
				if n == name {
					return i
				}
			}
			t.Fatalf("phase %q not in table", name)
			return -1
		}

		prev := -1
		for count := 0; count <= 200; count++ {
			i := index(table.At(count))
			if i < prev {
				t.Fatalf("year %d: phase regressed at count %d", year, count)
			}
			prev = i
		}
	}
}

func TestValidateAccumulatesErrors(t *testing.T) {
	p := &MissionProfile{
		Year:   2030,
		TeamID: "",
		Phases: PhaseTable{
			Steps:    []PhaseStep{{"UP", 10}, {"DOWN", 5}}, // not ascending
			Terminal: "LANDED",
		},
		ChecksumCharLimit: 0,
		Schema: []FieldSpec{
			floatCol("UNRANGED", 1), // no range set, and not a checksum tail
		},
	}

	err := p.Validate()
	if err == nil {
		t.Fatal("Validate() = nil, want accumulated errors")
	}
	msg := err.Error()
	for _, want := range []string{"team ID", "not ascending", "checksum char limit", "UNRANGED", "checksum column"} {
		if !strings.Contains(msg, want) {
			t.Errorf("Validate() error missing %q:\n%s", want, msg)
		}
	}
}

func TestSchemaColumnNames(t *testing.T) {
	p := ProfileFor(2026)
	names := p.ColumnNames()

	if names[0] != groundlink.ColTeamID {
		t.Errorf("first column = %q, want TEAM_ID", names[0])
	}
	if names[len(names)-1] != groundlink.ColChecksum {
		t.Errorf("last column = %q, want CHECKSUM", names[len(names)-1])
	}

	// The structural blank column sits between CMD_ECHO and the guidance
	// block.
	for i, n := range names {
		if n == groundlink.ColCmdEcho {
			if names[i+1] != groundlink.ColBlank {
				t.Errorf("column after CMD_ECHO = %q, want blank", names[i+1])
			}
		}
	}
}
