// Copyright 2017-18 Daniel Swarbrick. All rights reserved.
// Copyright 2021 Christian Svensson. All rights reserved.
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
// http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

// Package sgio wraps the Linux SG_IO generic SCSI ioctl used to carry
// ATA pass-through commands.
package sgio

import (
	"encoding/binary"
	"errors"
	"fmt"
	"unsafe"

	"github.com/dswarbrick/smart/ioctl"
)

type CDBDirection int32

const (
	CDBNone         CDBDirection = -1
	CDBToDevice     CDBDirection = -2
	CDBFromDevice   CDBDirection = -3
	CDBToFromDevice CDBDirection = -4

	SG_INFO_OK_MASK = 0x1
	SG_INFO_OK      = 0x0

	SG_IO = 'S'<<8 | 0x85

	// TimeoutMillis is the fixed SCSI submission timeout, enforced by
	// the kernel rather than by any userspace timer.
	TimeoutMillis = 2000

	SENSE_ILLEGAL_REQUEST = 0x5

	DRIVER_SENSE = 0x8
)

var (
	ErrIllegalRequest = errors.New("illegal SCSI request")

	nativeEndian binary.ByteOrder
)

type (
	CDB6  [6]byte
	CDB10 [10]byte
	CDB12 [12]byte
	CDB16 [16]byte
)

func init() {
	i := uint32(1)
	b := (*[4]byte)(unsafe.Pointer(&i))
	if b[0] == 1 {
		nativeEndian = binary.LittleEndian
	} else {
		nativeEndian = binary.BigEndian
	}
}

// sgIoHdr is the SCSI generic ioctl header, defined as sg_io_hdr_t in
// <scsi/sg.h>.
type sgIoHdr struct {
	interface_id    int32
	dxfer_direction  CDBDirection
	cmd_len          uint8
	mx_sb_len        uint8
	iovec_count      uint16 //nolint:structcheck,unused
	dxfer_len        uint32
	dxferp           uintptr
	cmdp             uintptr
	sbp              uintptr
	timeout          uint32
	flags            uint32 //nolint:structcheck,unused
	pack_id          int32  //nolint:structcheck,unused
	usr_ptr          uintptr //nolint:structcheck,unused
	status           uint8
	masked_status    uint8 //nolint:structcheck,unused
	msg_status       uint8 //nolint:structcheck,unused
	sb_len_wr        uint8
	host_status      uint16
	driver_status    uint16
	resid            int32 //nolint:structcheck,unused
	duration         uint32 //nolint:structcheck,unused
	info             uint32
}

func execGenericIO(fd uintptr, hdr *sgIoHdr, sense []byte) error {
	if err := ioctl.Ioctl(fd, SG_IO, uintptr(unsafe.Pointer(hdr))); err != nil {
		return err
	}

	// See http://www.t10.org/lists/2status.htm for SCSI status codes
	if hdr.info&SG_INFO_OK_MASK != SG_INFO_OK {
		if hdr.driver_status == DRIVER_SENSE {
			if sense[0]&0x7f == 0x70 {
				if sense[2]&0x0f == SENSE_ILLEGAL_REQUEST {
					return ErrIllegalRequest
				}
				return fmt.Errorf("SCSI status: sense key: %#02x", sense[2]&0x0f)
			}
			if sense[0]&0x7f == 0x72 {
				if sense[1]&0x0f == SENSE_ILLEGAL_REQUEST {
					return ErrIllegalRequest
				}
				return fmt.Errorf("SCSI status: sense key: %#02x", sense[1]&0x0f)
			}
		}
		return fmt.Errorf("SCSI status: %#02x, host status: %#02x, driver status: %#02x, response: %#02x",
			hdr.status, hdr.host_status, hdr.driver_status, sense[0])
	}

	return nil
}

// SendCDB submits cdb via SG_IO, transferring buf in direction dir, and
// returns the raw sense buffer so callers that need the descriptor
// format ATA return registers (see decodeSenseRegisters in package
// ataio) can decode it themselves.
// buf may be empty for commands with no data phase.
func SendCDB(fd uintptr, cdb []byte, dir CDBDirection, buf []byte) (sense []byte, err error) {
	sense = make([]byte, 32)

	hdr := sgIoHdr{
		interface_id:    'S',
		dxfer_direction: dir,
		timeout:         TimeoutMillis,
		cmd_len:         uint8(len(cdb)),
		mx_sb_len:       uint8(len(sense)),
		cmdp:            uintptr(unsafe.Pointer(&cdb[0])),
		sbp:             uintptr(unsafe.Pointer(&sense[0])),
	}
	if len(buf) > 0 {
		hdr.dxfer_len = uint32(len(buf))
		hdr.dxferp = uintptr(unsafe.Pointer(&buf[0]))
	}

	if err := execGenericIO(fd, &hdr, sense); err != nil {
		return sense, err
	}
	return sense, nil
}
