// SPDX-License-Identifier: GPL-2.0-or-later
// Copyright (c) 2026 Garudasat Aerospace Team

package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/garudasat/cansim/pkg/groundlink"
)

var captureCmd = &cobra.Command{
	Use:   "capture <file>",
	Short: "Print a CBOR flight capture log",
	Long: `Decode a flight capture written by 'run --capture' and print each
archived record with its sequence number and timestamp.

A truncated final entry (simulator killed mid-write) is reported but does
not hide the intact entries before it.`,
	Args: cobra.ExactArgs(1),
	RunE: runCaptureDump,
}

func init() {
	rootCmd.AddCommand(captureCmd)
}

func runCaptureDump(cmd *cobra.Command, args []string) error {
	f, err := os.Open(args[0])
	if err != nil {
		return err
	}
	defer f.Close()

	entries, readErr := groundlink.ReadCapture(f)
	for _, e := range entries {
		fmt.Printf("%6d  %s  %s\n", e.Seq, e.Time().Format("15:04:05.000"), e.Line)
	}
	fmt.Printf("%d records\n", len(entries))

	if readErr != nil {
		fmt.Fprintf(os.Stderr, "warning: %v\n", readErr)
	}
	return nil
}
