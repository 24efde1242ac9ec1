// SPDX-License-Identifier: GPL-2.0-or-later
// Copyright (c) 2026 Garudasat Aerospace Team
//
// Cansim - CanSat Telemetry Simulator
//
// Simulates a competition payload on the bench: synthetic telemetry out,
// ground-station commands in, over a serial link or WebSocket relay.

package main

import (
	"os"

	"github.com/garudasat/cansim/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
