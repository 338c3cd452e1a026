// Copyright (c) 2021 by library authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package ataio

import (
	"errors"
	"fmt"

	"github.com/go-atasmart/atasmart/pkg/ataio/sgio"
)

// ErrNotSupported is returned when a command is attempted against a
// dialect, device, or handle state that cannot carry it (BLOB/NONE
// dialects, or a JMicron bridge reporting no valid port).
var ErrNotSupported = errors.New("ataio: operation not supported on this dialect")

// ErrInvalidData is returned when a sense buffer or response register
// snapshot does not match the shape this package knows how to decode.
var ErrInvalidData = errors.New("ataio: malformed response data")

// Submit dispatches an ATA command over the CDB shape appropriate for
// dialect. On success regs holds the post-command ATA return
// register-file; data (when direction is DirIn) holds the bytes
// returned by the device.
func Submit(fd uintptr, dialect Dialect, command Command, direction Direction, regs *Registers, data []byte) error {
	switch dialect {
	case DialectATAPT16:
		return passthrough16(fd, command, direction, regs, data)
	case DialectATAPT12:
		return passthrough12(fd, command, direction, regs, data)
	case DialectSunplus:
		return sunplusCommand(fd, command, direction, regs, data)
	case DialectJMicron:
		return jmicronCommand(fd, command, direction, regs, data)
	default:
		return ErrNotSupported
	}
}

func sgDirection(dir Direction) sgio.CDBDirection {
	switch dir {
	case DirIn:
		return sgio.CDBFromDevice
	case DirOut:
		return sgio.CDBToDevice
	default:
		return sgio.CDBNone
	}
}

// decodeSenseRegisters extracts the ATA return register-file from a
// descriptor-format sense buffer as produced by ATA_PT12/16. The
// buffer must begin with the descriptor-format header 0x72 and carry
// an ATA Status Return descriptor (code 0x09, length 0x0C) at offset 8.
func decodeSenseRegisters(sense []byte, regs *Registers) error {
	if len(sense) < 8+14 || sense[0] != 0x72 || sense[8] != 0x09 || sense[9] != 0x0c {
		return ErrInvalidData
	}
	desc := sense[8:]
	regs[regFeaturesHi] = 0
	regs.SetFeatures(desc[3])
	regs.SetStatus(desc[4])
	regs.SetSectorCount(desc[5])
	regs.SetLBAHigh(desc[11])
	regs.SetLBAMid(desc[9])
	regs.SetLBALow(desc[7])
	regs.SetDevice(desc[12])
	regs.SetError(desc[13])
	return nil
}

// passthrough16 builds the 16-byte ATA PASS-THROUGH CDB (T10 04-262r8).
func passthrough16(fd uintptr, command Command, direction Direction, regs *Registers, data []byte) error {
	var cdb sgio.CDB16
	cdb[0] = 0x85

	switch direction {
	case DirNone:
		cdb[1] = 3 << 1
		cdb[2] = 0x20
	case DirIn:
		cdb[1] = 4 << 1
		cdb[2] = 0x2e
	case DirOut:
		cdb[1] = 5 << 1
		cdb[2] = 0x26
	}

	cdb[3] = regs[regFeaturesHi]
	cdb[4] = regs.Features()
	cdb[5] = 0 // SECTOR COUNT (15:8)
	cdb[6] = regs.SectorCount()
	cdb[8] = regs.LBALow()
	cdb[10] = regs.LBAMid()
	cdb[12] = regs.LBAHigh()
	cdb[13] = regs.Device() & 0x4F
	cdb[14] = byte(command)

	sense, err := sgio.SendCDB(fd, cdb[:], sgDirection(direction), data)
	if err != nil {
		return err
	}
	return decodeSenseRegisters(sense, regs)
}

// passthrough12 builds the 12-byte ATA PASS-THROUGH CDB.
func passthrough12(fd uintptr, command Command, direction Direction, regs *Registers, data []byte) error {
	var cdb sgio.CDB12
	cdb[0] = 0xa1

	switch direction {
	case DirNone:
		cdb[1] = 3 << 1
		cdb[2] = 0x20
	case DirIn:
		cdb[1] = 4 << 1
		cdb[2] = 0x2e
	case DirOut:
		cdb[1] = 5 << 1
		cdb[2] = 0x26
	}

	cdb[3] = regs.Features()
	cdb[4] = regs.SectorCount()
	cdb[5] = regs.LBALow()
	cdb[6] = regs.LBAMid()
	cdb[7] = regs.LBAHigh()
	cdb[8] = regs.Device() & 0x4F
	cdb[9] = byte(command)

	sense, err := sgio.SendCDB(fd, cdb[:], sgDirection(direction), data)
	if err != nil {
		return err
	}
	return decodeSenseRegisters(sense, regs)
}

// sunplusCommand builds the Sunplus USB-ATA bridge's vendor-specific
// CDB, then issues a second read-back submission to retrieve the ATA
// return registers, which this bridge does not hand back via sense
// data. Note the bridge swaps STATUS and ERROR relative to PT12/16.
func sunplusCommand(fd uintptr, command Command, direction Direction, regs *Registers, data []byte) error {
	var cdb sgio.CDB12
	cdb[0] = 0xF8
	cdb[1] = 0x00
	cdb[2] = 0x22

	switch direction {
	case DirNone:
		cdb[3] = 0x00
	case DirIn:
		cdb[3] = 0x10
	case DirOut:
		cdb[3] = 0x11
	}

	cdb[4] = regs.SectorCount()
	cdb[5] = regs.Features()
	cdb[6] = regs.SectorCount()
	cdb[7] = regs.LBALow()
	cdb[8] = regs.LBAMid()
	cdb[9] = regs.LBAHigh()
	cdb[10] = regs.Device() | 0xA0
	cdb[11] = byte(command)

	if _, err := sgio.SendCDB(fd, cdb[:], sgDirection(direction), data); err != nil {
		return err
	}

	var respCDB sgio.CDB12
	respCDB[0] = 0xF8
	respCDB[1] = 0x00
	respCDB[2] = 0x21

	buf := make([]byte, 8)
	if _, err := sgio.SendCDB(fd, respCDB[:], sgio.CDBFromDevice, buf); err != nil {
		return err
	}

	regs[regFeaturesHi] = 0
	regs.SetError(buf[1])
	regs.SetSectorCount(buf[2])
	regs.SetLBAHigh(buf[5])
	regs.SetLBAMid(buf[4])
	regs.SetLBALow(buf[3])
	regs.SetDevice(buf[6])
	regs.SetStatus(buf[7])
	return nil
}

// jmicronCommand builds the JMicron USB-ATA bridge's vendor-specific
// CDB sequence: a port-validity read, the command submission, and a
// register snapshot read-back.
func jmicronCommand(fd uintptr, command Command, direction Direction, regs *Registers, data []byte) error {
	var portCDB sgio.CDB12
	portCDB[0] = 0xdf
	portCDB[1] = 0x10
	portCDB[2] = 0x00
	portCDB[3] = 0x00
	portCDB[4] = 1
	portCDB[5] = 0x00
	portCDB[6] = 0x72
	portCDB[7] = 0x0f
	portCDB[11] = 0xfd

	portBuf := make([]byte, 1)
	if _, err := sgio.SendCDB(fd, portCDB[:], sgio.CDBFromDevice, portBuf); err != nil {
		return err
	}
	port := portBuf[0]
	// Port & 0x04 is port #0, port & 0x40 is port #1; either marks a
	// valid port, hence the combined mask below.
	if port&0x44 == 0 {
		return fmt.Errorf("%w: invalid JMicron port", ErrNotSupported)
	}

	var cdb sgio.CDB12
	cdb[0] = 0xdf
	cdb[1] = 0x10
	cdb[2] = 0x00
	cdb[3] = byte(len(data) >> 8)
	cdb[4] = byte(len(data) & 0xFF)
	cdb[5] = regs.Features()
	cdb[6] = regs.SectorCount()
	cdb[7] = regs.LBALow()
	cdb[8] = regs.LBAMid()
	cdb[9] = regs.LBAHigh()
	if port&0x04 != 0 {
		cdb[10] = regs.Device() | 0xA0
	} else {
		cdb[10] = regs.Device() | 0xB0
	}
	cdb[11] = byte(command)

	if _, err := sgio.SendCDB(fd, cdb[:], sgDirection(direction), data); err != nil {
		return err
	}

	var regCDB sgio.CDB12
	regCDB[0] = 0xdf
	regCDB[1] = 0x10
	regCDB[2] = 0x00
	regCDB[3] = 0x00
	regBuf := make([]byte, 16)
	regCDB[4] = byte(len(regBuf))
	regCDB[5] = 0x00
	if port&0x04 != 0 {
		regCDB[6] = 0x80
	} else {
		regCDB[6] = 0x90
	}
	regCDB[11] = 0xfd

	if _, err := sgio.SendCDB(fd, regCDB[:], sgio.CDBFromDevice, regBuf); err != nil {
		return err
	}

	regs[regFeaturesHi] = 0
	regs.SetStatus(regBuf[14])
	regs.SetSectorCount(regBuf[0])
	regs.SetLBAHigh(regBuf[10])
	regs.SetLBAMid(regBuf[4])
	regs.SetLBALow(regBuf[6])
	regs.SetDevice(regBuf[9])
	regs.SetError(regBuf[13])
	return nil
}
