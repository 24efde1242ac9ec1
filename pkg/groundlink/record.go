// SPDX-License-Identifier: Apache-2.0
// Copyright (c) 2026 Garudasat Aerospace Team

package groundlink

import (
	"strconv"
	"strings"
)

// Field is one rendered column of a telemetry record.
type Field struct {
	Name  string
	Value string
}

// Record is one telemetry sample: an ordered list of rendered fields, built
// once per transmission tick and discarded after encoding. The checksum
// column is appended by Encode, never stored as a field.
type Record struct {
	fields []Field
}

// NewRecord creates an empty record with room for n fields.
func NewRecord(n int) *Record {
	return &Record{fields: make([]Field, 0, n)}
}

// Append adds one rendered field to the record.
func (r *Record) Append(name, value string) {
	r.fields = append(r.fields, Field{Name: name, Value: value})
}

// Fields returns the record's fields in wire order.
func (r *Record) Fields() []Field {
	return r.fields
}

// Len returns the number of fields, excluding the checksum column.
func (r *Record) Len() int {
	return len(r.fields)
}

// Value returns the rendered value of the named field, or "" if absent.
func (r *Record) Value(name string) string {
	for _, f := range r.fields {
		if f.Name == name {
			return f.Value
		}
	}
	return ""
}

// Encode renders the record as one wire line: fields joined by the
// delimiter, closed by the checksum byte as an unsigned decimal. The
// checksum is computed over the joined fields plus one trailing delimiter,
// truncated to charLimit characters. The caller appends LineTerminator
// before transmission.
func (r *Record) Encode(charLimit int) string {
	var b strings.Builder
	for _, f := range r.fields {
		b.WriteString(f.Value)
		b.WriteString(Delimiter)
	}
	body := b.String()
	cs := Checksum(body, charLimit)
	return body + strconv.Itoa(int(cs))
}

// HeaderLine renders the column-name header announced once when the link
// opens, so the peer can interpret a profile's optional columns.
func HeaderLine(names []string) string {
	return strings.Join(names, Delimiter)
}
