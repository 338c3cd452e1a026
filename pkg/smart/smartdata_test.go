// Copyright (c) 2021 by library authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package smart

import "testing"

func TestParseSmartExtendedTestTimeOverride(t *testing.T) {
	raw := make([]byte, 512)
	raw[373] = 0xFF
	raw[375] = 0x2C
	raw[376] = 0x01

	blk, err := ParseSmart(raw)
	if err != nil {
		t.Fatalf("ParseSmart: %v", err)
	}
	if blk.PollingMinutes.Extended != 300 {
		t.Fatalf("extended polling minutes = %d, want 300", blk.PollingMinutes.Extended)
	}
}

func TestParseSmartExtendedTestTimeDirect(t *testing.T) {
	raw := make([]byte, 512)
	raw[373] = 45

	blk, err := ParseSmart(raw)
	if err != nil {
		t.Fatalf("ParseSmart: %v", err)
	}
	if blk.PollingMinutes.Extended != 45 {
		t.Fatalf("extended polling minutes = %d, want 45", blk.PollingMinutes.Extended)
	}
}

func TestDecodeOfflineStatus(t *testing.T) {
	cases := map[byte]OfflineDataCollectionStatus{
		0x00: OfflineNever,
		0x80: OfflineNever,
		0x02: OfflineSuccess,
		0x03: OfflineInProgress,
		0x84: OfflineSuspended,
		0x05: OfflineAborted,
		0x86: OfflineFatal,
		0x7F: OfflineUnknown,
	}
	for in, want := range cases {
		if got := decodeOfflineStatus(in); got != want {
			t.Errorf("decodeOfflineStatus(%#02x) = %v, want %v", in, got, want)
		}
	}
}
