// Copyright (c) 2021 by library authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package smart

import (
	"encoding/binary"
	"fmt"
)

// Blob tag FourCCs, interpreted as big-endian 32-bit integers.
const (
	tagIdentify        uint32 = 0x49444659 // 'IDFY'
	tagSmartStatus     uint32 = 0x534D5354 // 'SMST'
	tagSmartData       uint32 = 0x534D4454 // 'SMDT'
	tagSmartThresholds uint32 = 0x534D5448 // 'SMTH'
)

func tagSize(tag uint32) (size int, known bool) {
	switch tag {
	case tagIdentify:
		return 512, true
	case tagSmartStatus:
		return 4, true
	case tagSmartData:
		return 512, true
	case tagSmartThresholds:
		return 512, true
	default:
		return 0, false
	}
}

// Blob is a platform-independent snapshot of captured telemetry,
// parsed from or serialized to the tag-length-value wire format
// described in spec section 4.10. Identify is mandatory; the rest are
// optional.
type Blob struct {
	Identify         [512]byte
	SmartStatus      *bool
	SmartData        *[512]byte
	SmartThresholds  *[512]byte
}

// ParseBlob decodes a blob file's contents in two passes: the first
// validates every tag is known, every size matches the tag's fixed
// expectation, no tag repeats, and an IDFY block is present; the
// second copies payloads into the returned Blob. Any violation is
// reported as ErrInvalidData before any payload is copied.
func ParseBlob(data []byte) (Blob, error) {
	seen := map[uint32]bool{}

	pos := 0
	for pos+8 <= len(data) {
		tag := binary.BigEndian.Uint32(data[pos : pos+4])
		size := int(binary.BigEndian.Uint32(data[pos+4 : pos+8]))
		pos += 8

		if pos+size > len(data) {
			return Blob{}, fmt.Errorf("%w: truncated blob payload", ErrInvalidData)
		}

		wantSize, known := tagSize(tag)
		if !known {
			return Blob{}, fmt.Errorf("%w: unknown blob tag 0x%08X", ErrInvalidData, tag)
		}
		if size != wantSize || seen[tag] {
			return Blob{}, fmt.Errorf("%w: invalid or duplicate block for tag 0x%08X", ErrInvalidData, tag)
		}
		seen[tag] = true
		pos += size
	}

	if !seen[tagIdentify] {
		return Blob{}, fmt.Errorf("%w: blob missing mandatory IDFY block", ErrInvalidData)
	}

	var blob Blob
	pos = 0
	for pos+8 <= len(data) {
		tag := binary.BigEndian.Uint32(data[pos : pos+4])
		size := int(binary.BigEndian.Uint32(data[pos+4 : pos+8]))
		pos += 8

		switch tag {
		case tagIdentify:
			copy(blob.Identify[:], data[pos:pos+512])
		case tagSmartStatus:
			v := binary.BigEndian.Uint32(data[pos:pos+4]) != 0
			blob.SmartStatus = &v
		case tagSmartData:
			var sd [512]byte
			copy(sd[:], data[pos:pos+512])
			blob.SmartData = &sd
		case tagSmartThresholds:
			var th [512]byte
			copy(th[:], data[pos:pos+512])
			blob.SmartThresholds = &th
		}
		pos += size
	}

	return blob, nil
}

// EncodeBlob serializes blob in the recommended tag order IDFY, SMST,
// SMDT, SMTH.
func EncodeBlob(blob Blob) []byte {
	var out []byte

	writeBlock := func(tag uint32, payload []byte) {
		hdr := make([]byte, 8)
		binary.BigEndian.PutUint32(hdr[0:4], tag)
		binary.BigEndian.PutUint32(hdr[4:8], uint32(len(payload)))
		out = append(out, hdr...)
		out = append(out, payload...)
	}

	writeBlock(tagIdentify, blob.Identify[:])
	if blob.SmartStatus != nil {
		status := make([]byte, 4)
		if *blob.SmartStatus {
			binary.BigEndian.PutUint32(status, 1)
		}
		writeBlock(tagSmartStatus, status)
	}
	if blob.SmartData != nil {
		writeBlock(tagSmartData, blob.SmartData[:])
	}
	if blob.SmartThresholds != nil {
		writeBlock(tagSmartThresholds, blob.SmartThresholds[:])
	}

	return out
}
