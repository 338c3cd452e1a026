// Copyright (c) 2021 by library authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package smart

import (
	"bytes"
	"testing"
)

func TestBlobRoundTrip(t *testing.T) {
	var identify [512]byte
	for i := range identify {
		identify[i] = 0xAA
	}
	var sd [512]byte
	for i := range sd {
		sd[i] = 0xBB
	}
	status := true

	original := Blob{Identify: identify, SmartStatus: &status, SmartData: &sd}

	encoded := EncodeBlob(original)
	decoded, err := ParseBlob(encoded)
	if err != nil {
		t.Fatalf("ParseBlob: %v", err)
	}

	if decoded.Identify != identify {
		t.Fatalf("identify mismatch")
	}
	if decoded.SmartStatus == nil || *decoded.SmartStatus != true {
		t.Fatalf("smart status = %v, want true", decoded.SmartStatus)
	}
	if decoded.SmartData == nil || *decoded.SmartData != sd {
		t.Fatalf("smart data mismatch")
	}
	if decoded.SmartThresholds != nil {
		t.Fatalf("thresholds should be absent")
	}

	// Re-encode and re-parse must be equal.
	reEncoded := EncodeBlob(decoded)
	if !bytes.Equal(encoded, reEncoded) {
		t.Fatalf("re-encoding changed the wire bytes")
	}
	reDecoded, err := ParseBlob(reEncoded)
	if err != nil {
		t.Fatalf("ParseBlob (2nd pass): %v", err)
	}
	if reDecoded.Identify != decoded.Identify || *reDecoded.SmartStatus != *decoded.SmartStatus {
		t.Fatalf("round trip not idempotent")
	}
}

func TestBlobMissingIdentifyRejected(t *testing.T) {
	status := true
	encoded := EncodeBlobWithoutIdentify(status)
	if _, err := ParseBlob(encoded); err == nil {
		t.Fatalf("expected error for blob missing mandatory IDFY block")
	}
}

func TestBlobUnknownTagRejected(t *testing.T) {
	buf := make([]byte, 8)
	buf[0], buf[1], buf[2], buf[3] = 0x12, 0x34, 0x56, 0x78
	if _, err := ParseBlob(buf); err == nil {
		t.Fatalf("expected error for unknown tag")
	}
}

// EncodeBlobWithoutIdentify is a test-only helper building a blob
// missing its mandatory IDFY block, to exercise the validation path.
func EncodeBlobWithoutIdentify(status bool) []byte {
	var out []byte
	hdr := make([]byte, 8)
	copy(hdr[0:4], []byte{0x53, 0x4D, 0x53, 0x54}) // 'SMST'
	payload := make([]byte, 4)
	if status {
		payload[3] = 1
	}
	hdr[4], hdr[5], hdr[6], hdr[7] = 0, 0, 0, 4
	out = append(out, hdr...)
	out = append(out, payload...)
	return out
}
