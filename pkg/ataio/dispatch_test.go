// Copyright (c) 2021 by library authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package ataio

import "testing"

func TestDecodeSenseRegistersRejectsMalformedHeader(t *testing.T) {
	sense := make([]byte, 32)
	sense[0] = 0x70 // wrong: fixed format, not descriptor format
	sense[8] = 0x09
	sense[9] = 0x0c

	var regs Registers
	if err := decodeSenseRegisters(sense, &regs); err != ErrInvalidData {
		t.Fatalf("err = %v, want ErrInvalidData", err)
	}
}

func TestDecodeSenseRegistersRejectsWrongDescriptorCode(t *testing.T) {
	sense := make([]byte, 32)
	sense[0] = 0x72
	sense[8] = 0x08 // wrong descriptor code
	sense[9] = 0x0c

	var regs Registers
	if err := decodeSenseRegisters(sense, &regs); err != ErrInvalidData {
		t.Fatalf("err = %v, want ErrInvalidData", err)
	}
}

func TestDecodeSenseRegistersAcceptsValidDescriptor(t *testing.T) {
	sense := make([]byte, 32)
	sense[0] = 0x72
	sense[8] = 0x09
	sense[9] = 0x0c
	desc := sense[8:]
	desc[3] = 0x11 // FEATURES
	desc[4] = 0x50 // STATUS
	desc[5] = 0x01 // SECTOR COUNT
	desc[7] = 0x00 // LBA LOW
	desc[9] = 0x4F  // LBA MID
	desc[11] = 0xC2 // LBA HIGH
	desc[12] = 0xE0 // DEVICE
	desc[13] = 0x00 // ERROR

	var regs Registers
	if err := decodeSenseRegisters(sense, &regs); err != nil {
		t.Fatalf("decodeSenseRegisters: %v", err)
	}
	if regs.Features() != 0x11 || regs.Status() != 0x50 || regs.LBAMid() != 0x4F || regs.LBAHigh() != 0xC2 {
		t.Fatalf("decoded registers incorrect: %+v", regs)
	}
}
