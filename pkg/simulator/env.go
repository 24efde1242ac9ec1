// SPDX-License-Identifier: Apache-2.0
// Copyright (c) 2026 Garudasat Aerospace Team

package simulator

import (
	"os"
	"strconv"
)

// Environment overrides, applied on top of the selected built-in profile.
// Ground crews use these for field tests without rebuilding the binary; a
// .env file next to the binary is honored by the CLI.
const (
	EnvTeamID  = "CANSIM_TEAM_ID"
	EnvBaseLat = "CANSIM_BASE_LAT"
	EnvBaseLon = "CANSIM_BASE_LON"
	EnvDriftKm = "CANSIM_DRIFT_KM"
	EnvPort    = "CANSIM_PORT"
	EnvBaud    = "CANSIM_BAUD"
)

// ApplyEnv overlays CANSIM_* environment variables onto the profile.
// Unset or unparsable variables leave the profile untouched.
func ApplyEnv(p *MissionProfile) {
	if v := os.Getenv(EnvTeamID); v != "" {
		p.TeamID = v
	}
	if v, ok := envFloat(EnvBaseLat); ok {
		p.BaseLat = v
	}
	if v, ok := envFloat(EnvBaseLon); ok {
		p.BaseLon = v
	}
	if v, ok := envFloat(EnvDriftKm); ok && v >= 0 {
		p.MaxDriftKm = v
	}
}

func envFloat(key string) (float64, bool) {
	v := os.Getenv(key)
	if v == "" {
		return 0, false
	}
	f, err := strconv.ParseFloat(v, 64)
	if err != nil {
		return 0, false
	}
	return f, true
}
