// SPDX-License-Identifier: Apache-2.0
// Copyright (c) 2026 Garudasat Aerospace Team

package simulator

import (
	"math"
	"math/rand"
	"strconv"
	"time"

	"github.com/garudasat/cansim/pkg/groundlink"
)

// kmPerDegree converts radial drift from kilometers to degrees of latitude
// with the usual equirectangular approximation.
const kmPerDegree = 111.0

// Synthesizer draws one bounded-random value per schema column. It holds
// only its random source; sampling is a pure function of the profile and a
// flight-state snapshot.
type Synthesizer struct {
	rng *rand.Rand
}

// NewSynthesizer creates a synthesizer seeded for reproducible runs.
func NewSynthesizer(seed int64) *Synthesizer {
	return &Synthesizer{rng: rand.New(rand.NewSource(seed))}
}

// Sample builds one telemetry record for the current state snapshot. The
// checksum column is left to the encoder.
func (sy *Synthesizer) Sample(p *MissionProfile, s *FlightState, now time.Time) *groundlink.Record {
	rec := groundlink.NewRecord(len(p.Schema))
	missionTime := s.MissionTime(now)
	lat, lon := sy.fix(p, s)

	for _, f := range p.Schema {
		switch f.Kind {
		case KindTeamID:
			rec.Append(f.Name, p.TeamID)
		case KindMissionTime:
			rec.Append(f.Name, missionTime)
		case KindPacketCount:
			rec.Append(f.Name, strconv.Itoa(s.PacketCount))
		case KindMode:
			rec.Append(f.Name, s.Mode())
		case KindState:
			rec.Append(f.Name, s.Phase)
		case KindPGState:
			rec.Append(f.Name, s.PGPhase)
		case KindFloat:
			r, _ := p.Ranges[f.Name].For(s.Phase)
			rec.Append(f.Name, formatFloat(sy.uniform(r), f.Precision))
		case KindInt:
			r, _ := p.Ranges[f.Name].For(s.Phase)
			rec.Append(f.Name, strconv.Itoa(sy.uniformInt(r)))
		case KindGPSTime:
			// The simulated receiver reports the same clock.
			rec.Append(f.Name, missionTime)
		case KindLatitude:
			rec.Append(f.Name, formatFloat(lat, f.Precision))
		case KindLongitude:
			rec.Append(f.Name, formatFloat(lon, f.Precision))
		case KindCmdEcho:
			rec.Append(f.Name, s.CommandEcho)
		case KindBlank:
			rec.Append(f.Name, "")
		case KindChecksum:
			// Appended by Record.Encode.
		}
	}
	return rec
}

// uniform draws a real number uniformly from the inclusive range.
func (sy *Synthesizer) uniform(r Range) float64 {
	return r.Min + sy.rng.Float64()*(r.Max-r.Min)
}

// uniformInt draws an integer uniformly from the inclusive range.
func (sy *Synthesizer) uniformInt(r Range) int {
	lo, hi := int(r.Min), int(r.Max)
	if hi <= lo {
		return lo
	}
	return lo + sy.rng.Intn(hi-lo+1)
}

// fix synthesizes one GPS fix: a random bearing and radial offset around
// the base coordinate. The radius grows with packet count while airborne,
// modeling drift, and collapses to pad jitter while grounded.
func (sy *Synthesizer) fix(p *MissionProfile, s *FlightState) (lat, lon float64) {
	var radiusDeg float64
	if s.FlightActive {
		drift := math.Min(float64(s.PacketCount)/100.0, 1.0)
		radiusDeg = p.MaxDriftKm * drift / kmPerDegree
	} else {
		radiusDeg = p.PadJitterDeg
	}

	bearing := sy.rng.Float64() * 2 * math.Pi
	offset := sy.rng.Float64() * radiusDeg
	latOff := offset * math.Cos(bearing)
	lonOff := offset * math.Sin(bearing) / math.Cos(p.BaseLat*math.Pi/180)

	return p.BaseLat + latOff, p.BaseLon + lonOff
}

func formatFloat(v float64, prec int) string {
	return strconv.FormatFloat(v, 'f', prec, 64)
}
