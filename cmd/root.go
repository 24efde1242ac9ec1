// SPDX-License-Identifier: GPL-2.0-or-later
// Copyright (c) 2026 Garudasat Aerospace Team

package cmd

import (
	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
)

var (
	// Serial connection flags
	portName string
	baudRate int

	// WebSocket relay flags
	wsURL         string
	wsUsername    string
	wsNoSSLVerify bool

	// Mission selection
	missionYear int
)

var rootCmd = &cobra.Command{
	Use:   "cansim",
	Short: "CanSat Telemetry Simulator",
	Long: `Cansim - a flight telemetry simulator for CanSat ground-station testing.

Transmits one comma-delimited telemetry record per second over a serial link
or a WebSocket relay, and accepts ground-station commands (CX, FLY, CAL, SIM,
ST, MEC) that drive the simulated flight state machine.

Connection modes:
  Serial:    --port /dev/ttyUSB0 [--baud 115200]
  WebSocket: --url ws://host/path [--username user]

For WebSocket authentication, the password is read from the CANSIM_PASSWORD
environment variable, or prompted interactively if not set. The --password
flag is intentionally not provided to avoid leaking credentials in shell
history. A .env file in the working directory is loaded on startup; CANSIM_*
variables override the selected mission profile's team ID, base coordinate
and drift radius.`,
	Version: "1.2.0",
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		// Missing .env is the normal case; real problems surface through
		// the unset variables they cause.
		_ = godotenv.Load()
	},
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&portName, "port", "p", "", "Serial port device (or CANSIM_PORT)")
	rootCmd.PersistentFlags().IntVarP(&baudRate, "baud", "b", 115200, "Baud rate (serial only)")

	rootCmd.PersistentFlags().StringVarP(&wsURL, "url", "u", "", "WebSocket URL (ws:// or wss://)")
	rootCmd.PersistentFlags().StringVar(&wsUsername, "username", "", "Username for HTTP Basic auth")
	rootCmd.PersistentFlags().BoolVar(&wsNoSSLVerify, "no-ssl-verify", false, "Skip TLS certificate verification (wss:// only)")

	rootCmd.PersistentFlags().IntVarP(&missionYear, "year", "y", 0, "Mission year profile (default: latest)")
}

// Execute runs the root command
func Execute() error {
	return rootCmd.Execute()
}
