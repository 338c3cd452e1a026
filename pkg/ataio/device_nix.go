// Copyright (c) 2021 by library authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package ataio

import "golang.org/x/sys/unix"

// Device is a live handle on a block special file opened for ATA
// pass-through, wrapping the raw kernel file descriptor the way
// sagarkrsd-smart's SCSIDevice wraps one for its SG_IO ioctls.
type Device struct {
	fd int
}

// OpenDevice opens path for read-write ATA pass-through access.
func OpenDevice(path string) (*Device, error) {
	fd, err := unix.Open(path, unix.O_RDWR, 0)
	if err != nil {
		return nil, err
	}
	return &Device{fd: fd}, nil
}

func (d *Device) Fd() uintptr { return uintptr(d.fd) }

func (d *Device) Close() error { return unix.Close(d.fd) }
