// SPDX-License-Identifier: Apache-2.0
// Copyright (c) 2026 Garudasat Aerospace Team

package simulator

import (
	"fmt"
	"time"
)

// Statistics tracks downlink and uplink counters for the running simulator.
type Statistics struct {
	StartTime time.Time

	RecordsSent      uint64
	CommandsAccepted uint64
	CommandsRejected uint64
	UnknownCommands  uint64
	WriteErrors      uint64
	FlightsCompleted uint64

	RecordRate float64 // records/sec since start
}

// NewStatistics creates a statistics tracker anchored at now.
func NewStatistics(now time.Time) *Statistics {
	return &Statistics{StartTime: now}
}

// CalculateRates refreshes the derived rate fields.
func (s *Statistics) CalculateRates(now time.Time) {
	elapsed := now.Sub(s.StartTime).Seconds()
	if elapsed > 0 {
		s.RecordRate = float64(s.RecordsSent) / elapsed
	}
}

// String returns a formatted summary for the console and dashboard.
func (s *Statistics) String() string {
	elapsed := time.Since(s.StartTime)
	s.CalculateRates(time.Now())

	result := fmt.Sprintf("=== Statistics (%.0f seconds) ===\n", elapsed.Seconds())
	result += fmt.Sprintf("Records Sent:     %8d\n", s.RecordsSent)
	result += fmt.Sprintf("Commands OK:      %8d\n", s.CommandsAccepted)
	if s.CommandsRejected > 0 {
		result += fmt.Sprintf("Commands Rejected:%8d\n", s.CommandsRejected)
	}
	if s.UnknownCommands > 0 {
		result += fmt.Sprintf("Unknown Commands: %8d\n", s.UnknownCommands)
	}
	if s.WriteErrors > 0 {
		result += fmt.Sprintf("Write Errors:     %8d\n", s.WriteErrors)
	}
	if s.FlightsCompleted > 0 {
		result += fmt.Sprintf("Flights Complete: %8d\n", s.FlightsCompleted)
	}
	result += fmt.Sprintf("Record Rate:      %8.1f rec/sec\n", s.RecordRate)
	result += "================================\n"
	return result
}
