// SPDX-License-Identifier: Apache-2.0
// Copyright (c) 2026 Garudasat Aerospace Team

package groundlink

// Checksum computes the ground-station checksum byte for a rendered record
// line. The line must already carry its trailing delimiter and must not
// include the checksum field itself.
//
// The algorithm is fixed by the deployed ground-station decoder and is not a
// standard CRC: sum the byte value of every character up to charLimit
// characters (a NUL terminates the sum early), mask the sum to 16 bits,
// split into low and high bytes, and return the bitwise NOT of their sum
// masked to 8 bits.
func Checksum(line string, charLimit int) uint8 {
	sum := SumChars(line, charLimit)
	b0 := sum & 0xFF
	b1 := (sum >> 8) & 0xFF
	return uint8(^(b0 + b1) & 0xFF)
}

// SumChars returns the 16-bit masked character sum the checksum is derived
// from. Exposed separately so diagnostic tooling can show the intermediate
// value next to the final byte.
func SumChars(line string, charLimit int) uint16 {
	if charLimit <= 0 || charLimit > len(line) {
		charLimit = len(line)
	}
	sum := 0
	for i := 0; i < charLimit; i++ {
		c := line[i]
		if c == 0 {
			break
		}
		sum += int(c)
	}
	return uint16(sum & 0xFFFF)
}
