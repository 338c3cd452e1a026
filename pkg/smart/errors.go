// Copyright (c) 2021 by library authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package smart

import (
	"errors"
	"fmt"
)

// Sentinel error kinds. Every fallible operation in this package and
// in pkg/disk returns one of these, wrapped with errors.Is-compatible
// context where useful.
var (
	// ErrNotSupported means the feature is unavailable on this
	// dialect, device, or handle state (SMART disabled, blob can't
	// execute a live command, dialect probe found none).
	ErrNotSupported = errors.New("smart: not supported")

	// ErrSmartNotAvailable means IDENTIFY reported the SMART-supported
	// bit clear.
	ErrSmartNotAvailable = errors.New("smart: SMART not available on this device")

	// ErrInvalidData means a sense buffer, SMART status response, or
	// blob block was malformed.
	ErrInvalidData = errors.New("smart: invalid data")

	// ErrDeviceSleeping is informational: the device is in a low-power
	// state. It is not raised automatically; callers may check for it
	// to avoid waking the drive.
	ErrDeviceSleeping = errors.New("smart: device is sleeping")

	// ErrNoData means a cached sector blob is required for this
	// operation but has not yet been read.
	ErrNoData = errors.New("smart: required data has not been read")
)

// IoError wraps a kernel I/O failure with the operation that caused it.
type IoError struct {
	Op  string
	Err error
}

func (e *IoError) Error() string { return fmt.Sprintf("smart: %s: %v", e.Op, e.Err) }

func (e *IoError) Unwrap() error { return e.Err }
