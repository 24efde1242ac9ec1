// SPDX-License-Identifier: GPL-2.0-or-later
// Copyright (c) 2026 Garudasat Aerospace Team

package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/garudasat/cansim/pkg/simulator"
)

var profilesCmd = &cobra.Command{
	Use:   "profiles",
	Short: "List built-in mission profiles",
	RunE:  runProfiles,
}

func init() {
	rootCmd.AddCommand(profilesCmd)
}

func runProfiles(cmd *cobra.Command, args []string) error {
	for _, year := range simulator.Years() {
		p := simulator.ProfileFor(year)
		marker := " "
		if year == simulator.DefaultYear {
			marker = "*"
		}
		fmt.Printf("%s %d  team %s\n", marker, p.Year, p.TeamID)
		fmt.Printf("    phases:   %s\n", strings.Join(p.Phases.Names(), " -> "))
		if p.PGPhases != nil {
			fmt.Printf("    pg:       %s\n", strings.Join(p.PGPhases.Names(), " -> "))
		}
		fmt.Printf("    columns:  %d (checksum over first %d chars)\n", len(p.Schema), p.ChecksumCharLimit)
		fmt.Printf("    base:     %f,%f drift %.1f km\n", p.BaseLat, p.BaseLon, p.MaxDriftKm)
		fmt.Printf("    commands: %s\n", strings.Join(p.Commands, " "))
	}
	fmt.Println("\n* default profile for unknown years")
	return nil
}
