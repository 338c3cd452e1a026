// Copyright (c) 2021 by library authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package ataio

import "testing"

func TestLE48(t *testing.T) {
	raw := [6]byte{0xE8, 0x03, 0, 0, 0, 0}
	if got := LE48(raw[:]); got != 1000 {
		t.Fatalf("LE48 = %d, want 1000", got)
	}
}

func TestATAStringTrimsAndCollapses(t *testing.T) {
	// "AB" byte-swapped is "BA"; trailing garbage bytes become spaces
	// and collapse.
	raw := []byte{'B', 'A', 0x00, 0x00}
	if got := ATAString(raw); got != "AB" {
		t.Fatalf("ATAString = %q, want %q", got, "AB")
	}
}
