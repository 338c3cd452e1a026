// Copyright (c) 2021 by library authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package smart

import "testing"

func buildSmartData(slots map[int][12]byte) []byte {
	data := make([]byte, 512)
	for i, slot := range slots {
		off := attributeSlotBase + i*attributeSlotStride
		copy(data[off:off+12], slot[:])
	}
	return data
}

func TestDecodeAttributePowerOnHours(t *testing.T) {
	// id=9, flags=0x0002, current=100, worst=100, raw=1000 (0x3E8) LE.
	slot := [12]byte{9, 0x02, 0x00, 100, 100, 0xE8, 0x03, 0, 0, 0, 0, 0}
	data := buildSmartData(map[int][12]byte{0: slot})

	attrs, err := DecodeAttributes(data, nil, 0, "", nil)
	if err != nil {
		t.Fatalf("DecodeAttributes: %v", err)
	}
	if len(attrs) != 1 {
		t.Fatalf("got %d attributes, want 1", len(attrs))
	}
	a := attrs[0]
	if a.Name != "power-on-hours" {
		t.Fatalf("name = %q", a.Name)
	}
	if !a.Online || a.Prefailure {
		t.Fatalf("online/prefailure = %v/%v, want true/false", a.Online, a.Prefailure)
	}
	want := uint64(1000 * 3_600_000)
	if a.PrettyValue != want {
		t.Fatalf("pretty value = %d, want %d", a.PrettyValue, want)
	}
	if a.Unit != UnitMilliseconds {
		t.Fatalf("unit = %v, want Milliseconds", a.Unit)
	}
}

func TestDecodeAttributeTemperature194(t *testing.T) {
	// raw[0..2] = 25 (0x19), rest 0.
	slot := [12]byte{194, 0, 0, 100, 100, 0x19, 0x00, 0, 0, 0, 0, 0}
	data := buildSmartData(map[int][12]byte{0: slot})

	attrs, err := DecodeAttributes(data, nil, 0, "", nil)
	if err != nil {
		t.Fatalf("DecodeAttributes: %v", err)
	}
	want := uint64(298150)
	if attrs[0].PrettyValue != want {
		t.Fatalf("pretty value = %d, want %d", attrs[0].PrettyValue, want)
	}
	if attrs[0].Unit != UnitMilliKelvin {
		t.Fatalf("unit downgraded unexpectedly: %v", attrs[0].Unit)
	}
}

func TestDecodeAttributeZeroIDSkipped(t *testing.T) {
	data := buildSmartData(nil)
	attrs, err := DecodeAttributes(data, nil, 0, "", nil)
	if err != nil {
		t.Fatalf("DecodeAttributes: %v", err)
	}
	if len(attrs) != 0 {
		t.Fatalf("got %d attributes for all-zero slots, want 0", len(attrs))
	}
}

func TestDecodeAttributeWarnOnBadSectorPresence(t *testing.T) {
	slot5 := [12]byte{5, 0, 0, 100, 100, 3, 0, 0, 0, 0, 0, 0}
	slot197 := [12]byte{197, 0, 0, 100, 100, 2, 0, 0, 0, 0, 0, 0}
	data := buildSmartData(map[int][12]byte{0: slot5, 1: slot197})

	attrs, err := DecodeAttributes(data, nil, 0, "", nil)
	if err != nil {
		t.Fatalf("DecodeAttributes: %v", err)
	}
	for _, a := range attrs {
		if !a.Warn {
			t.Errorf("attribute %d: warn = false, want true", a.ID)
		}
	}

	bad := BadSectors(attrs)
	if bad == nil || *bad != 5 {
		t.Fatalf("BadSectors = %v, want 5", bad)
	}
}

func TestBadSectorsEitherOr(t *testing.T) {
	onlyReallocated := []Attribute{{ID: 5, PrettyValue: 3}}
	if got := BadSectors(onlyReallocated); got == nil || *got != 3 {
		t.Fatalf("BadSectors(only reallocated) = %v, want 3", got)
	}
	if got := BadSectors(nil); got != nil {
		t.Fatalf("BadSectors(none) = %v, want nil", got)
	}
}

func TestPlausibilityDowngradesImplausibleSectors(t *testing.T) {
	// current-pending-sector with an all-ones raw value must downgrade.
	slot := [12]byte{197, 0, 0, 100, 100, 0xFF, 0xFF, 0xFF, 0xFF, 0, 0, 0}
	data := buildSmartData(map[int][12]byte{0: slot})

	attrs, err := DecodeAttributes(data, nil, 0, "", nil)
	if err != nil {
		t.Fatalf("DecodeAttributes: %v", err)
	}
	if attrs[0].Unit != UnitUnknown {
		t.Fatalf("unit = %v, want Unknown for implausible sector count", attrs[0].Unit)
	}
}

func TestThresholdWarnComputation(t *testing.T) {
	slot := [12]byte{5, 0, 0, 10, 10, 0, 0, 0, 0, 0, 0, 0} // current=10
	thSlot := [12]byte{5, 20, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0} // threshold=20 > current
	data := buildSmartData(map[int][12]byte{0: slot})
	thresholds := buildSmartData(map[int][12]byte{0: thSlot})

	attrs, err := DecodeAttributes(data, thresholds, 0, "", nil)
	if err != nil {
		t.Fatalf("DecodeAttributes: %v", err)
	}
	a := attrs[0]
	if !a.ThresholdValid || a.Threshold != 20 {
		t.Fatalf("threshold = %d/%v", a.Threshold, a.ThresholdValid)
	}
	if !a.GoodNowValid || a.GoodNow {
		t.Fatalf("good_now = %v/%v, want valid & false", a.GoodNow, a.GoodNowValid)
	}
	if !a.Warn {
		t.Fatalf("expected warn=true when current <= threshold")
	}
}
