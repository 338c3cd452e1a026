// Copyright (c) 2021 by library authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package disk is the public entry point of this module: it owns the
// lifecycle of a device (or blob) handle and the cached sector blobs
// read from it, and exposes decoding and statistics as methods on that
// handle.
package disk

import (
	"fmt"

	"github.com/go-atasmart/atasmart/pkg/ataio"
	"github.com/go-atasmart/atasmart/pkg/smart"
)

// Handle is a live session against either a physical device or a blob.
// It is not safe for concurrent use from multiple goroutines.
type Handle struct {
	dev     *ataio.Device
	dialect ataio.Dialect
	size    uint64
	model   string

	identify        *[512]byte
	smartData       *[512]byte
	smartThresholds *[512]byte
	smartStatus     *bool

	quirks *smart.QuirksDB
}

// Open opens path, probes its transport dialect, and returns a Handle
// in the Opened state.
func Open(path string) (*Handle, error) {
	dev, err := ataio.OpenDevice(path)
	if err != nil {
		return nil, &smart.IoError{Op: "open", Err: err}
	}

	size, err := ataio.BlockDeviceSize(dev.Fd())
	if err != nil {
		size = 0
	}

	dialect, _ := ataio.ProbeDialect(dev.Fd())

	return &Handle{
		dev:     dev,
		dialect: dialect,
		size:    size,
	}, nil
}

// FromBlob loads a blob snapshot from path and returns a Handle with
// dialect BLOB. Every live ATA command against this handle fails with
// smart.ErrNotSupported.
func FromBlob(path string) (*Handle, error) {
	data, err := readFile(path)
	if err != nil {
		return nil, &smart.IoError{Op: "read blob", Err: err}
	}

	b, err := smart.ParseBlob(data)
	if err != nil {
		return nil, err
	}

	h := &Handle{dialect: ataio.DialectBlob}
	h.identify = &b.Identify
	if b.SmartData != nil {
		h.smartData = b.SmartData
	}
	if b.SmartThresholds != nil {
		h.smartThresholds = b.SmartThresholds
	}
	if b.SmartStatus != nil {
		h.smartStatus = b.SmartStatus
	}
	return h, nil
}

// WithQuirks installs an optional attribute-name/unit override table,
// used by ParseSmartAttributes once the device model is known.
func (h *Handle) WithQuirks(db *smart.QuirksDB) { h.quirks = db }

// Size returns the device's capacity in bytes (0 for a blob handle).
func (h *Handle) Size() uint64 { return h.size }

// DiskType returns the transport dialect this handle was opened with.
func (h *Handle) DiskType() ataio.Dialect { return h.dialect }

// Close releases the underlying file descriptor, if any. Dropping a
// handle never fails for blob handles.
func (h *Handle) Close() error {
	if h.dev == nil {
		return nil
	}
	return h.dev.Close()
}

func (h *Handle) requireDevice(op string) error {
	if h.dev == nil {
		return fmt.Errorf("%s: %w", op, smart.ErrNotSupported)
	}
	return nil
}

func (h *Handle) submit(cmd ataio.Command, dir ataio.Direction, regs *ataio.Registers, data []byte) error {
	if err := ataio.Submit(h.dev.Fd(), h.dialect, cmd, dir, regs, data); err != nil {
		return &smart.IoError{Op: "ata submit", Err: err}
	}
	return nil
}

// CheckSleepMode issues CHECK_POWER_MODE and reports whether the
// device is awake. Per spec, awake iff the returned SECTOR_COUNT is
// 0xFF or 0x80 and the STATUS byte has bit 0 clear.
func (h *Handle) CheckSleepMode() (bool, error) {
	if err := h.requireDevice("check sleep mode"); err != nil {
		return false, err
	}
	var regs ataio.Registers
	if err := h.submit(ataio.CmdCheckPowerMode, ataio.DirNone, &regs, nil); err != nil {
		return false, err
	}
	awake := (regs.SectorCount() == 0xFF || regs.SectorCount() == 0x80) && regs.Status()&0x01 == 0
	return awake, nil
}

// ReadIdentify issues IDENTIFY DEVICE and caches its 512-byte response.
func (h *Handle) ReadIdentify() error {
	if err := h.requireDevice("read identify"); err != nil {
		return err
	}
	buf := make([]byte, 512)
	var regs ataio.Registers
	regs.SetSectorCount(1)
	if err := h.submit(ataio.CmdIdentifyDevice, ataio.DirIn, &regs, buf); err != nil {
		return err
	}
	var blob [512]byte
	copy(blob[:], buf)
	h.identify = &blob

	id, err := smart.ParseIdentify(buf)
	if err == nil {
		h.model = id.Model
	}
	return nil
}

func smartRegs(subcommand uint8) ataio.Registers {
	var regs ataio.Registers
	regs.SetFeatures(subcommand)
	regs.SetLBAMid(ataio.SmartSignatureLBAMid)
	regs.SetLBAHigh(ataio.SmartSignatureLBAHigh)
	return regs
}

// ReadSmartData issues SMART READ DATA and caches its response. Per
// the state machine, this requires the handle to already be
// Identified.
func (h *Handle) ReadSmartData() error {
	if err := h.requireDevice("read smart data"); err != nil {
		return err
	}
	if h.identify == nil {
		return fmt.Errorf("read smart data: %w", smart.ErrNoData)
	}
	if !smart.SmartSupported(h.identify[:]) {
		return smart.ErrSmartNotAvailable
	}

	buf := make([]byte, 512)
	regs := smartRegs(ataio.SmartReadData)
	regs.SetSectorCount(1)
	if err := h.submit(ataio.CmdSMART, ataio.DirIn, &regs, buf); err != nil {
		return err
	}
	var blob [512]byte
	copy(blob[:], buf)
	h.smartData = &blob
	return nil
}

// ReadSmartThresholds issues SMART READ THRESHOLDS and caches its
// response.
func (h *Handle) ReadSmartThresholds() error {
	if err := h.requireDevice("read smart thresholds"); err != nil {
		return err
	}
	buf := make([]byte, 512)
	regs := smartRegs(ataio.SmartReadThresholds)
	regs.SetSectorCount(1)
	if err := h.submit(ataio.CmdSMART, ataio.DirIn, &regs, buf); err != nil {
		return err
	}
	var blob [512]byte
	copy(blob[:], buf)
	h.smartThresholds = &blob
	return nil
}

// SmartStatus issues SMART RETURN STATUS. Healthy iff the returned
// LBA_MID=0x4F and LBA_HIGH=0xC2; unhealthy iff 0xF4/0x2C; anything
// else is ErrInvalidData. ATA_PT12 does not reliably return LBA_HIGH,
// so on that dialect the verdict is based on LBA_MID alone.
func (h *Handle) SmartStatus() (bool, error) {
	if h.dialect == ataio.DialectBlob {
		if h.smartStatus == nil {
			return false, fmt.Errorf("smart status: %w", smart.ErrNoData)
		}
		return *h.smartStatus, nil
	}
	if err := h.requireDevice("smart status"); err != nil {
		return false, err
	}

	regs := smartRegs(ataio.SmartReturnStatus)
	if err := h.submit(ataio.CmdSMART, ataio.DirNone, &regs, nil); err != nil {
		return false, err
	}

	mid, high := regs.LBAMid(), regs.LBAHigh()
	if h.dialect == ataio.DialectATAPT12 {
		switch mid {
		case ataio.SmartStatusOKLBAMid:
			return true, nil
		case ataio.SmartStatusBadLBAMid:
			return false, nil
		default:
			return false, smart.ErrInvalidData
		}
	}

	switch {
	case mid == ataio.SmartStatusOKLBAMid && high == ataio.SmartStatusOKLBAHigh:
		return true, nil
	case mid == ataio.SmartStatusBadLBAMid && high == ataio.SmartStatusBadLBAHigh:
		return false, nil
	default:
		return false, smart.ErrInvalidData
	}
}

// StartSelfTest launches a self-test of the given kind via EXECUTE
// OFFLINE IMMEDIATE, after checking the device advertises support for
// it in the cached SMART block's capability flags.
func (h *Handle) StartSelfTest(kind smart.SelfTestKind) error {
	if err := h.requireDevice("start self test"); err != nil {
		return err
	}
	block, err := h.ParseSmart()
	if err != nil {
		return err
	}
	switch kind {
	case smart.SelfTestShort, smart.SelfTestExtended:
		if !block.Capabilities.ShortAndExtended {
			return fmt.Errorf("start self test: %w", smart.ErrNotSupported)
		}
	case smart.SelfTestConveyance:
		if !block.Capabilities.Conveyance {
			return fmt.Errorf("start self test: %w", smart.ErrNotSupported)
		}
	case smart.SelfTestAbort:
		if !block.Capabilities.Abort {
			return fmt.Errorf("start self test: %w", smart.ErrNotSupported)
		}
	}

	var regs ataio.Registers
	regs.SetFeatures(ataio.SmartExecOffline)
	regs.SetLBALow(uint8(kind))
	regs.SetLBAMid(ataio.SmartSignatureLBAMid)
	regs.SetLBAHigh(ataio.SmartSignatureLBAHigh)
	return h.submit(ataio.CmdSMART, ataio.DirNone, &regs, nil)
}

// ParseIdentify decodes the cached IDENTIFY response.
func (h *Handle) ParseIdentify() (smart.Identity, error) {
	if h.identify == nil {
		return smart.Identity{}, fmt.Errorf("parse identify: %w", smart.ErrNoData)
	}
	return smart.ParseIdentify(h.identify[:])
}

// ParseSmart decodes the cached SMART DATA response.
func (h *Handle) ParseSmart() (smart.SmartBlock, error) {
	if h.smartData == nil {
		return smart.SmartBlock{}, fmt.Errorf("parse smart: %w", smart.ErrNoData)
	}
	return smart.ParseSmart(h.smartData[:])
}

// ParseSmartAttributes decodes the cached SMART DATA attribute table,
// consulting the cached thresholds block when present.
func (h *Handle) ParseSmartAttributes() ([]smart.Attribute, error) {
	if h.smartData == nil {
		return nil, fmt.Errorf("parse smart attributes: %w", smart.ErrNoData)
	}
	var thresholds []byte
	if h.smartThresholds != nil {
		thresholds = h.smartThresholds[:]
	}
	return smart.DecodeAttributes(h.smartData[:], thresholds, h.size, h.model, h.quirks)
}

// Statistics aggregates the decoded attribute list into derived health
// statistics.
func (h *Handle) Statistics() (smart.Statistics, error) {
	attrs, err := h.ParseSmartAttributes()
	if err != nil {
		return smart.Statistics{}, err
	}
	return smart.ComputeStatistics(attrs), nil
}

// OverallVerdict computes the worst-wins overall health verdict from
// the decoded attributes and SMART RETURN STATUS.
func (h *Handle) OverallVerdict() (smart.Overall, error) {
	attrs, err := h.ParseSmartAttributes()
	if err != nil {
		return 0, err
	}
	healthy, err := h.SmartStatus()
	if err != nil {
		return 0, err
	}
	return smart.OverallVerdict(attrs, !healthy), nil
}
