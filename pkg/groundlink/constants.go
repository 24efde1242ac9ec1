// SPDX-License-Identifier: Apache-2.0
// Copyright (c) 2026 Garudasat Aerospace Team

// Package groundlink implements the Garudasat ground-station wire protocol.
//
// Telemetry travels downlink as one comma-delimited text record per second,
// terminated by CR-LF and closed by a summed-character checksum byte.
// Commands travel uplink as short comma-delimited lines. This package holds
// the record encoder, the checksum, the command grammar, and the CBOR
// flight-capture codec; it knows nothing about the simulator state machine.
package groundlink

// Wire framing
const (
	Delimiter      = ","
	LineTerminator = "\r\n"
)

// OriginTag is the expected first field of every uplink command line.
const OriginTag = "CMD"

// DefaultChecksumLimit is the character-count bound the checksum sum is
// truncated to when a mission profile does not override it. The ground
// station decoder sums at most this many characters.
const DefaultChecksumLimit = 150

// Command keywords recognized by the uplink grammar.
const (
	KeywordTelemetry   = "CX"
	KeywordStartFlight = "FLY"
	KeywordCalibrate   = "CAL"
	KeywordSimulation  = "SIM"
	KeywordSetTime     = "ST"
	KeywordMechanism   = "MEC"
	KeywordSetTarget   = "SET_TARGET"
)

// Standard record column names. Mission profiles assemble their schema from
// these; not every profile carries every column.
const (
	ColTeamID         = "TEAM_ID"
	ColMissionTime    = "MISSION_TIME"
	ColPacketCount    = "PACKET_COUNT"
	ColMode           = "MODE"
	ColState          = "STATE"
	ColAltitude       = "ALTITUDE"
	ColTemperature    = "TEMPERATURE"
	ColPressure       = "PRESSURE"
	ColVoltage        = "VOLTAGE"
	ColCurrent        = "CURRENT"
	ColGyroR          = "GYRO_R"
	ColGyroP          = "GYRO_P"
	ColGyroY          = "GYRO_Y"
	ColAccelR         = "ACCEL_R"
	ColAccelP         = "ACCEL_P"
	ColAccelY         = "ACCEL_Y"
	ColMagR           = "MAG_R"
	ColMagP           = "MAG_P"
	ColMagY           = "MAG_Y"
	ColRotationRate   = "AUTO_GYRO_ROTATION_RATE"
	ColGPSTime        = "GPS_TIME"
	ColGPSAltitude    = "GPS_ALTITUDE"
	ColGPSLatitude    = "GPS_LATITUDE"
	ColGPSLongitude   = "GPS_LONGITUDE"
	ColGPSSats        = "GPS_SATS"
	ColCmdEcho        = "CMD_ECHO"
	ColBlank          = ""
	ColRoll           = "ROLL"
	ColPitch          = "PITCH"
	ColYaw            = "YAW"
	ColHeadingError   = "HEADING_ERROR"
	ColPGState        = "PG_STATE"
	ColDistanceTarget = "DISTANCE_TO_TARGET"
	ColGroundDetect   = "GROUND_DETECTION_ALTITUDE"
	ColChecksum       = "CHECKSUM"
)

// Mode field values: F while the flight state machine is active, S otherwise.
const (
	ModeFlight  = "F"
	ModeStandby = "S"
)
