// Copyright (c) 2021 by library authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package ataio

import (
	"unsafe"

	"github.com/dswarbrick/smart/ioctl"
)

// blkGetSize64 is the Linux request code for BLKGETSIZE64, which
// returns the device's capacity in bytes as a uint64.
const blkGetSize64 = 0x80081272

// BlockDeviceSize returns the capacity in bytes of the block device
// behind fd, via the BLKGETSIZE64 ioctl. It returns 0 and the ioctl
// error for devices that don't support it (e.g. non-block character
// special files).
func BlockDeviceSize(fd uintptr) (uint64, error) {
	var size uint64
	if err := ioctl.Ioctl(fd, blkGetSize64, uintptr(unsafe.Pointer(&size))); err != nil {
		return 0, err
	}
	return size, nil
}
