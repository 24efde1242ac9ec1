// SPDX-License-Identifier: Apache-2.0
// Copyright (c) 2026 Garudasat Aerospace Team

package simulator

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics exports engine counters to Prometheus. Registration happens once
// per registry; the run command wires this to an optional promhttp listener.
type Metrics struct {
	RecordsSent      prometheus.Counter
	WriteErrors      prometheus.Counter
	Commands         *prometheus.CounterVec
	CommandsRejected prometheus.Counter
	FlightsCompleted prometheus.Counter

	PacketCount      prometheus.Gauge
	TelemetryEnabled prometheus.Gauge
	FlightActive     prometheus.Gauge
}

// NewMetrics registers the engine collectors with reg.
func NewMetrics(reg prometheus.Registerer) *Metrics {
	factory := promauto.With(reg)
	return &Metrics{
		RecordsSent: factory.NewCounter(prometheus.CounterOpts{
			Name: "cansim_records_sent_total",
			Help: "Telemetry records handed to the transport.",
		}),
		WriteErrors: factory.NewCounter(prometheus.CounterOpts{
			Name: "cansim_write_errors_total",
			Help: "Transport write failures (records lost).",
		}),
		Commands: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "cansim_commands_total",
			Help: "Uplink commands dispatched, by keyword.",
		}, []string{"keyword"}),
		CommandsRejected: factory.NewCounter(prometheus.CounterOpts{
			Name: "cansim_commands_rejected_total",
			Help: "Uplink lines rejected by the command grammar.",
		}),
		FlightsCompleted: factory.NewCounter(prometheus.CounterOpts{
			Name: "cansim_flights_completed_total",
			Help: "Simulated flights ended by the landing auto-stop.",
		}),
		PacketCount: factory.NewGauge(prometheus.GaugeOpts{
			Name: "cansim_packet_count",
			Help: "Current session packet counter.",
		}),
		TelemetryEnabled: factory.NewGauge(prometheus.GaugeOpts{
			Name: "cansim_telemetry_enabled",
			Help: "1 while telemetry transmission is enabled.",
		}),
		FlightActive: factory.NewGauge(prometheus.GaugeOpts{
			Name: "cansim_flight_active",
			Help: "1 while the simulated flight is active.",
		}),
	}
}

func boolGauge(v bool) float64 {
	if v {
		return 1
	}
	return 0
}

// observeState refreshes the state gauges after a mutation.
func (m *Metrics) observeState(s *FlightState) {
	if m == nil {
		return
	}
	m.PacketCount.Set(float64(s.PacketCount))
	m.TelemetryEnabled.Set(boolGauge(s.TelemetryEnabled))
	m.FlightActive.Set(boolGauge(s.FlightActive))
}
