// Copyright (c) 2021 by library authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package ataio

import "encoding/binary"

// ATAString decodes an ATA text field: ATA stores text as big-endian
// 16-bit words on an otherwise little-endian wire, so adjacent byte
// pairs must be swapped before the field reads as ASCII. Bytes outside
// the printable range become spaces, and runs of whitespace collapse
// to a single space before the result is trimmed.
func ATAString(raw []byte) string {
	out := make([]byte, len(raw))
	for i := 0; i+1 < len(raw); i += 2 {
		out[i] = raw[i+1]
		out[i+1] = raw[i]
	}
	if len(raw)%2 == 1 {
		out[len(raw)-1] = raw[len(raw)-1]
	}

	for i, b := range out {
		if b < 0x20 || b >= 0x7F {
			out[i] = ' '
		}
	}

	collapsed := make([]byte, 0, len(out))
	prevSpace := false
	for _, b := range out {
		if b == ' ' {
			if prevSpace {
				continue
			}
			prevSpace = true
		} else {
			prevSpace = false
		}
		collapsed = append(collapsed, b)
	}

	start, end := 0, len(collapsed)
	for start < end && collapsed[start] == ' ' {
		start++
	}
	for end > start && collapsed[end-1] == ' ' {
		end--
	}
	return string(collapsed[start:end])
}

// LE16 reads a little-endian 16-bit unsigned integer.
func LE16(b []byte) uint16 { return binary.LittleEndian.Uint16(b) }

// LE32 reads a little-endian 32-bit unsigned integer.
func LE32(b []byte) uint32 { return binary.LittleEndian.Uint32(b) }

// LE48 reads a little-endian 48-bit unsigned integer out of the first
// six bytes of b, as used by the raw SMART attribute field.
func LE48(b []byte) uint64 {
	var v uint64
	for i := 5; i >= 0; i-- {
		v = v<<8 | uint64(b[i])
	}
	return v
}
