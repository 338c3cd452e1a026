// Copyright (c) 2021 by library authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package ataio

// Dialect identifies the transport-specific CDB shape a device answers
// to. The dispatcher picks one CDB builder per dialect; all of them
// produce and consume the same canonical Registers layout.
type Dialect int

const (
	DialectNone Dialect = iota
	DialectATAPT16
	DialectATAPT12
	DialectSunplus
	DialectJMicron
	DialectLinuxIDE
	DialectBlob
)

func (d Dialect) String() string {
	switch d {
	case DialectATAPT16:
		return "ATA_PT16"
	case DialectATAPT12:
		return "ATA_PT12"
	case DialectSunplus:
		return "SUNPLUS"
	case DialectJMicron:
		return "JMICRON"
	case DialectLinuxIDE:
		return "LINUX_IDE"
	case DialectBlob:
		return "BLOB"
	default:
		return "NONE"
	}
}
