// SPDX-License-Identifier: GPL-2.0-or-later
// Copyright (c) 2026 Garudasat Aerospace Team

package cmd

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"log"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/spf13/cobra"

	"github.com/garudasat/cansim/pkg/groundlink"
	"github.com/garudasat/cansim/pkg/simulator"
)

var (
	captureFile string
	metricsAddr string
	randomSeed  int64
)

var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Run the telemetry simulator",
	Long: `Run the simulator loop against a connected ground station.

The simulator waits for commands and, once telemetry is enabled, transmits
one record per second. A column header line is announced when the link
opens.

  Send 'CMD,1000,CX,ON' to start telemetry
  Send 'CMD,1000,FLY' to start the flight simulation

With --capture, every transmitted record is archived to a CBOR flight log
readable with 'cansim capture'. With --metrics-addr, engine counters are
exposed for Prometheus scraping.`,
	RunE: runSimulator,
}

func init() {
	rootCmd.AddCommand(runCmd)
	runCmd.Flags().StringVar(&captureFile, "capture", "", "Append transmitted records to a CBOR flight log")
	runCmd.Flags().StringVar(&metricsAddr, "metrics-addr", "", "Listen address for Prometheus metrics (e.g. :9105)")
	runCmd.Flags().Int64Var(&randomSeed, "seed", 0, "Random seed for reproducible runs (0 = from clock)")
}

// buildEngine assembles the engine for the selected mission year with
// environment overrides applied.
func buildEngine(metrics *simulator.Metrics) (*simulator.Engine, error) {
	profile := simulator.ProfileFor(missionYear)
	simulator.ApplyEnv(profile)

	seed := randomSeed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	return simulator.NewEngine(profile, simulator.SystemClock(), seed, metrics)
}

func runSimulator(cmd *cobra.Command, args []string) error {
	conn, connInfo, err := OpenConnection()
	if err != nil {
		return err
	}
	defer conn.Close()

	var metrics *simulator.Metrics
	if metricsAddr != "" {
		metrics = simulator.NewMetrics(prometheus.DefaultRegisterer)
		mux := http.NewServeMux()
		mux.Handle("/metrics", promhttp.Handler())
		go func() {
			if err := http.ListenAndServe(metricsAddr, mux); err != nil {
				log.Printf("Metrics listener error: %v", err)
			}
		}()
	}

	engine, err := buildEngine(metrics)
	if err != nil {
		return err
	}

	var capture *groundlink.CaptureWriter
	if captureFile != "" {
		f, err := os.OpenFile(captureFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
		if err != nil {
			return fmt.Errorf("open capture file: %w", err)
		}
		defer f.Close()
		capture = groundlink.NewCaptureWriter(f)
	}

	fmt.Printf("Cansim - CanSat Telemetry Simulator\n")
	fmt.Printf("Connection: %s\n", connInfo)
	fmt.Printf("Profile: %d (team %s)\n", engine.Profile.Year, engine.Profile.TeamID)
	fmt.Printf("Waiting for commands. Press Ctrl+C to exit\n\n")

	// Announce the column set before any data line.
	if err := writeLine(conn, engine.HeaderLine()); err != nil {
		return fmt.Errorf("send header: %w", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	lines := make(chan string, 16)
	go readLines(conn, lines)

	ticker := time.NewTicker(time.Second)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			log.Printf("Simulation stopped")
			fmt.Print(engine.Stats.String())
			return nil

		case line, ok := <-lines:
			if !ok {
				log.Printf("Link closed")
				return nil
			}
			log.Printf("RX %s", line)
			desc, err := engine.HandleLine(line)
			if err != nil {
				log.Printf("Command rejected: %v", err)
				continue
			}
			log.Printf("%s", desc)

		case <-ticker.C:
			record, ok, ended := engine.Tick()
			if ended {
				log.Printf("Flight complete - telemetry stopped")
				continue
			}
			if !ok {
				continue
			}
			if err := writeLine(conn, record); err != nil {
				// Record is lost; delivery is at most once.
				engine.NoteWriteError()
				log.Printf("Write error: %v", err)
				continue
			}
			log.Printf("TX %s", record)
			if capture != nil {
				if err := capture.Append(record, time.Now()); err != nil {
					log.Printf("Capture error: %v", err)
				}
			}
		}
	}
}

// readLines delivers complete inbound lines to the run loop. It owns the
// only blocking read; the channel closes when the link does.
func readLines(conn io.Reader, lines chan<- string) {
	scanner := bufio.NewScanner(conn)
	for scanner.Scan() {
		if line := strings.TrimSpace(scanner.Text()); line != "" {
			lines <- line
		}
	}
	close(lines)
}

// writeLine transmits one wire line with the configured terminator.
func writeLine(conn io.Writer, line string) error {
	_, err := conn.Write([]byte(line + groundlink.LineTerminator))
	return err
}
