// SPDX-License-Identifier: GPL-2.0-or-later
// Copyright (c) 2026 Garudasat Aerospace Team

package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/garudasat/cansim/pkg/groundlink"
	"github.com/garudasat/cansim/pkg/simulator"
)

var checksumCmd = &cobra.Command{
	Use:   "checksum <record-body>",
	Short: "Compute the checksum byte for a record body",
	Long: `Compute the ground-station checksum for a record body.

The body is the record line without its checksum field. A trailing
delimiter is appended automatically if missing, matching what the encoder
feeds the checksum. Shows the intermediate character sum and byte split for
comparison against a ground-station decoder.

Example:
  cansim checksum '3121,12:00:00,0,F,LAUNCH_PAD'`,
	Args: cobra.ExactArgs(1),
	RunE: runChecksum,
}

func init() {
	rootCmd.AddCommand(checksumCmd)
}

func runChecksum(cmd *cobra.Command, args []string) error {
	profile := simulator.ProfileFor(missionYear)

	body := args[0]
	if !strings.HasSuffix(body, groundlink.Delimiter) {
		body += groundlink.Delimiter
	}

	sum := groundlink.SumChars(body, profile.ChecksumCharLimit)
	cs := groundlink.Checksum(body, profile.ChecksumCharLimit)

	fmt.Printf("Input:      %s\n", body)
	fmt.Printf("Char limit: %d (profile %d)\n", profile.ChecksumCharLimit, profile.Year)
	fmt.Printf("Sum16:      %d (0x%04X)\n", sum, sum)
	fmt.Printf("Low byte:   0x%02X  High byte: 0x%02X\n", sum&0xFF, (sum>>8)&0xFF)
	fmt.Printf("Checksum:   %d\n", cs)
	return nil
}
