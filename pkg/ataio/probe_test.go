// Copyright (c) 2021 by library authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package ataio

import (
	"bytes"
	"testing"
)

func TestAllZeroHelper(t *testing.T) {
	if !allZero(make([]byte, 512)) {
		t.Fatalf("expected all-zero buffer to be detected as such")
	}
	nonZero := make([]byte, 512)
	nonZero[54] = 'X'
	if allZero(nonZero) {
		t.Fatalf("expected non-zero buffer to not be detected as all-zero")
	}
}

// fakeIdentifyTransport answers IDENTIFY DEVICE with all-zero data for
// every dialect except okDialect, for which it fills the buffer with a
// marker byte.
func fakeIdentifyTransport(okDialect Dialect) submitFunc {
	return func(fd uintptr, dialect Dialect, command Command, direction Direction, regs *Registers, data []byte) error {
		if dialect == okDialect {
			for i := range data {
				data[i] = 0xAB
			}
		}
		return nil
	}
}

func TestProbeDialectFallsBackToPT12WhenPT16IsAllZero(t *testing.T) {
	dialect, buf := probeDialect(0, fakeIdentifyTransport(DialectATAPT12))
	if dialect != DialectATAPT12 {
		t.Fatalf("dialect = %v, want ATA_PT12", dialect)
	}
	want := bytes.Repeat([]byte{0xAB}, 512)
	if !bytes.Equal(buf, want) {
		t.Fatalf("unexpected probe buffer contents")
	}
}

func TestProbeDialectPrefersPT16OverPT12(t *testing.T) {
	dialect, _ := probeDialect(0, fakeIdentifyTransport(DialectATAPT16))
	if dialect != DialectATAPT16 {
		t.Fatalf("dialect = %v, want ATA_PT16", dialect)
	}
}

func TestProbeDialectNoneWhenBothDialectsAreAllZero(t *testing.T) {
	allZeroTransport := func(fd uintptr, dialect Dialect, command Command, direction Direction, regs *Registers, data []byte) error {
		return nil
	}
	dialect, buf := probeDialect(0, allZeroTransport)
	if dialect != DialectNone {
		t.Fatalf("dialect = %v, want NONE", dialect)
	}
	if buf != nil {
		t.Fatalf("expected nil buffer when no dialect responds")
	}
}
