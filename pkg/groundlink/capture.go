// SPDX-License-Identifier: Apache-2.0
// Copyright (c) 2026 Garudasat Aerospace Team

package groundlink

import (
	"errors"
	"fmt"
	"io"
	"time"

	"github.com/fxamacker/cbor/v2"
)

// CaptureEntry is one archived downlink transmission. Entries are appended
// to the capture file as a stream of CBOR maps with integer keys, so the
// file stays readable even if the process dies mid-flight.
type CaptureEntry struct {
	Seq        uint64 `cbor:"1,keyasint"`
	TimeUnixMS int64  `cbor:"2,keyasint"`
	Line       string `cbor:"3,keyasint"`
}

// Time returns the entry timestamp.
func (e CaptureEntry) Time() time.Time {
	return time.UnixMilli(e.TimeUnixMS)
}

// CaptureWriter appends transmitted record lines to a capture stream.
type CaptureWriter struct {
	enc *cbor.Encoder
	seq uint64
}

// NewCaptureWriter creates a capture writer on w. The caller owns w and
// closes it after the run loop exits.
func NewCaptureWriter(w io.Writer) *CaptureWriter {
	return &CaptureWriter{enc: cbor.NewEncoder(w)}
}

// Append archives one transmitted line.
func (cw *CaptureWriter) Append(line string, at time.Time) error {
	cw.seq++
	entry := CaptureEntry{
		Seq:        cw.seq,
		TimeUnixMS: at.UnixMilli(),
		Line:       line,
	}
	if err := cw.enc.Encode(entry); err != nil {
		return fmt.Errorf("capture append: %w", err)
	}
	return nil
}

// ReadCapture decodes every entry from a capture stream. A truncated final
// entry (process killed mid-write) is tolerated: entries decoded before the
// truncation are returned along with the decode error.
func ReadCapture(r io.Reader) ([]CaptureEntry, error) {
	dec := cbor.NewDecoder(r)
	var entries []CaptureEntry
	for {
		var e CaptureEntry
		if err := dec.Decode(&e); err != nil {
			if errors.Is(err, io.EOF) {
				return entries, nil
			}
			return entries, fmt.Errorf("capture decode after %d entries: %w", len(entries), err)
		}
		entries = append(entries, e)
	}
}
