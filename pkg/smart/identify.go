// Copyright (c) 2021 by library authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package smart

import "github.com/go-atasmart/atasmart/pkg/ataio"

// Identity is the decoded subset of an IDENTIFY DEVICE response that
// callers care about.
type Identity struct {
	Model    string
	Serial   string
	Firmware string
}

// smartSupportedByte holds the SMART-supported bit: bit 0 of word 82
// (byte 164, LSB).
const smartSupportedByte = 164

// ParseIdentify decodes the fixed-offset fields of a raw 512-byte
// IDENTIFY DEVICE response.
func ParseIdentify(raw []byte) (Identity, error) {
	if len(raw) != 512 {
		return Identity{}, ErrInvalidData
	}
	if allZero(raw) {
		return Identity{}, ErrInvalidData
	}
	return Identity{
		Serial:   ataio.ATAString(raw[20:40]),
		Firmware: ataio.ATAString(raw[46:54]),
		Model:    ataio.ATAString(raw[54:94]),
	}, nil
}

// SmartSupported reports whether the SMART-supported bit is set in a
// raw IDENTIFY DEVICE response.
func SmartSupported(raw []byte) bool {
	if len(raw) <= smartSupportedByte {
		return false
	}
	return raw[smartSupportedByte]&0x01 != 0
}

func allZero(b []byte) bool {
	for _, v := range b {
		if v != 0 {
			return false
		}
	}
	return true
}
