// Copyright (c) 2021 by library authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package smart

import "github.com/go-atasmart/atasmart/pkg/ataio"

// OfflineDataCollectionStatus is the decoded value of SMART DATA
// byte 362.
type OfflineDataCollectionStatus int

const (
	OfflineNever OfflineDataCollectionStatus = iota
	OfflineSuccess
	OfflineInProgress
	OfflineSuspended
	OfflineAborted
	OfflineFatal
	OfflineUnknown
)

func (s OfflineDataCollectionStatus) String() string {
	switch s {
	case OfflineNever:
		return "never-started"
	case OfflineSuccess:
		return "success"
	case OfflineInProgress:
		return "in-progress"
	case OfflineSuspended:
		return "suspended"
	case OfflineAborted:
		return "aborted"
	case OfflineFatal:
		return "fatal-error"
	default:
		return "unknown"
	}
}

func decodeOfflineStatus(b byte) OfflineDataCollectionStatus {
	switch b {
	case 0x00, 0x80:
		return OfflineNever
	case 0x02, 0x82:
		return OfflineSuccess
	case 0x03:
		return OfflineInProgress
	case 0x04, 0x84:
		return OfflineSuspended
	case 0x05, 0x85:
		return OfflineAborted
	case 0x06, 0x86:
		return OfflineFatal
	default:
		return OfflineUnknown
	}
}

// SelfTestExecutionStatus is the high nibble of SMART DATA byte 363.
type SelfTestExecutionStatus int

const (
	SelfTestSuccessOrNever SelfTestExecutionStatus = 0
	SelfTestAborted        SelfTestExecutionStatus = 1
	SelfTestInterrupted    SelfTestExecutionStatus = 2
	SelfTestFatal          SelfTestExecutionStatus = 3
	SelfTestErrorUnknown   SelfTestExecutionStatus = 4
	SelfTestErrorElectrical SelfTestExecutionStatus = 5
	SelfTestErrorServo     SelfTestExecutionStatus = 6
	SelfTestErrorRead      SelfTestExecutionStatus = 7
	SelfTestErrorHandling  SelfTestExecutionStatus = 8
	SelfTestInProgress     SelfTestExecutionStatus = 15
)

func decodeSelfTestStatus(nibble byte) SelfTestExecutionStatus {
	switch nibble {
	case 0, 1, 2, 3, 4, 5, 6, 7, 8, 15:
		return SelfTestExecutionStatus(nibble)
	default:
		return SelfTestSuccessOrNever
	}
}

// SelfTestKind identifies a self-test to launch via StartSelfTest.
// Numeric values are the ATA LBA_LOW codes for EXECUTE OFFLINE
// IMMEDIATE.
type SelfTestKind uint8

const (
	SelfTestShort      SelfTestKind = 1
	SelfTestExtended   SelfTestKind = 2
	SelfTestConveyance SelfTestKind = 3
	SelfTestAbort      SelfTestKind = 127
)

// SelfTestCapabilities reports which self-tests the device advertises
// support for, decoded from SMART DATA byte 367.
type SelfTestCapabilities struct {
	ShortAndExtended bool
	Conveyance       bool
	Start            bool
	Abort            bool
}

// PollingMinutes gives the expected completion time of each self-test
// kind, in minutes, as advertised by the device.
type PollingMinutes struct {
	Short      uint8
	Extended   uint16
	Conveyance uint8
}

// SmartBlock is the decoded subset of a SMART DATA (subcommand 0xD0)
// response.
type SmartBlock struct {
	OfflineStatus            OfflineDataCollectionStatus
	OfflineTotalSeconds      uint16
	SelfTestStatus           SelfTestExecutionStatus
	SelfTestPercentRemaining uint8
	Capabilities             SelfTestCapabilities
	PollingMinutes           PollingMinutes
}

// ParseSmart decodes the fixed-offset fields of a raw 512-byte SMART
// DATA response.
func ParseSmart(raw []byte) (SmartBlock, error) {
	if len(raw) != 512 {
		return SmartBlock{}, ErrInvalidData
	}

	flags := raw[367]
	blk := SmartBlock{
		OfflineStatus:            decodeOfflineStatus(raw[362]),
		SelfTestStatus:           decodeSelfTestStatus(raw[363] >> 4),
		SelfTestPercentRemaining: (raw[363] & 0x0F) * 10,
		OfflineTotalSeconds:      ataio.LE16(raw[364:366]),
		Capabilities: SelfTestCapabilities{
			Conveyance:       flags&0x20 != 0,
			ShortAndExtended: flags&0x10 != 0,
			Start:            flags&0x01 != 0,
			Abort:            flags&0x29 != 0,
		},
		PollingMinutes: PollingMinutes{
			Short:      raw[372],
			Conveyance: raw[374],
		},
	}

	if raw[373] == 0xFF {
		blk.PollingMinutes.Extended = ataio.LE16(raw[375:377])
	} else {
		blk.PollingMinutes.Extended = uint16(raw[373])
	}

	return blk, nil
}
