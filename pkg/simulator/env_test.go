// SPDX-License-Identifier: Apache-2.0
// Copyright (c) 2026 Garudasat Aerospace Team

package simulator

import "testing"

func TestApplyEnvOverrides(t *testing.T) {
	t.Setenv(EnvTeamID, "9001")
	t.Setenv(EnvBaseLat, "-6.914744")
	t.Setenv(EnvBaseLon, "107.609810")
	t.Setenv(EnvDriftKm, "1.5")

	p := ProfileFor(2026)
	ApplyEnv(p)

	if p.TeamID != "9001" {
		t.Errorf("TeamID = %q, want 9001", p.TeamID)
	}
	if p.BaseLat != -6.914744 || p.BaseLon != 107.609810 {
		t.Errorf("base = %v,%v, want Bandung override", p.BaseLat, p.BaseLon)
	}
	if p.MaxDriftKm != 1.5 {
		t.Errorf("MaxDriftKm = %v, want 1.5", p.MaxDriftKm)
	}
}

func TestApplyEnvIgnoresGarbage(t *testing.T) {
	t.Setenv(EnvBaseLat, "not-a-number")
	t.Setenv(EnvDriftKm, "-3")

	p := ProfileFor(2026)
	want := *p
	ApplyEnv(p)

	if p.BaseLat != want.BaseLat {
		t.Errorf("BaseLat = %v, want untouched %v", p.BaseLat, want.BaseLat)
	}
	if p.MaxDriftKm != want.MaxDriftKm {
		t.Errorf("MaxDriftKm = %v, want untouched %v", p.MaxDriftKm, want.MaxDriftKm)
	}
}
