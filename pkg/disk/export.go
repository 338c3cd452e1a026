// Copyright (c) 2021 by library authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package disk

import (
	"fmt"
	"os"

	"github.com/go-atasmart/atasmart/pkg/smart"
)

// ToBlob captures the handle's currently cached sector blobs into a
// smart.Blob snapshot. ReadIdentify must have succeeded at least once.
func (h *Handle) ToBlob() (smart.Blob, error) {
	if h.identify == nil {
		return smart.Blob{}, fmt.Errorf("to blob: %w", smart.ErrNoData)
	}
	b := smart.Blob{Identify: *h.identify}
	if h.smartData != nil {
		b.SmartData = h.smartData
	}
	if h.smartThresholds != nil {
		b.SmartThresholds = h.smartThresholds
	}
	if h.smartStatus != nil {
		b.SmartStatus = h.smartStatus
	} else if healthy, err := h.SmartStatus(); err == nil {
		b.SmartStatus = &healthy
	}
	return b, nil
}

// SaveBlob writes the handle's current snapshot to path in the blob
// wire format.
func (h *Handle) SaveBlob(path string) error {
	b, err := h.ToBlob()
	if err != nil {
		return err
	}
	return os.WriteFile(path, smart.EncodeBlob(b), 0o644)
}
