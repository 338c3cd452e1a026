// Copyright (c) 2021 by library authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package disk

import (
	"encoding/binary"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/go-atasmart/atasmart/pkg/ataio"
	"github.com/go-atasmart/atasmart/pkg/smart"
)

func writeTestBlob(t *testing.T, healthy bool) string {
	t.Helper()
	var identify [512]byte
	identify[164] = 0x01 // SMART supported
	identify[54] = 'X'   // keep IDENTIFY non-zero

	status := healthy
	blob := smart.Blob{Identify: identify, SmartStatus: &status}
	data := smart.EncodeBlob(blob)

	path := filepath.Join(t.TempDir(), "snapshot.blob")
	if err := os.WriteFile(path, data, 0o644); err != nil {
		t.Fatalf("writing test blob: %v", err)
	}
	return path
}

func TestFromBlobDialectAndStatus(t *testing.T) {
	path := writeTestBlob(t, true)

	h, err := FromBlob(path)
	if err != nil {
		t.Fatalf("FromBlob: %v", err)
	}
	defer h.Close()

	if h.DiskType() != ataio.DialectBlob {
		t.Fatalf("dialect = %v, want BLOB", h.DiskType())
	}

	ok, err := h.SmartStatus()
	if err != nil {
		t.Fatalf("SmartStatus: %v", err)
	}
	if !ok {
		t.Fatalf("expected healthy status")
	}
}

func TestBlobHandleRejectsLiveCommands(t *testing.T) {
	path := writeTestBlob(t, true)
	h, err := FromBlob(path)
	if err != nil {
		t.Fatalf("FromBlob: %v", err)
	}
	defer h.Close()

	if err := h.ReadIdentify(); !errors.Is(err, smart.ErrNotSupported) {
		t.Fatalf("ReadIdentify on blob handle = %v, want ErrNotSupported", err)
	}
	if err := h.ReadSmartData(); !errors.Is(err, smart.ErrNotSupported) {
		t.Fatalf("ReadSmartData on blob handle = %v, want ErrNotSupported", err)
	}
	if _, err := h.CheckSleepMode(); !errors.Is(err, smart.ErrNotSupported) {
		t.Fatalf("CheckSleepMode on blob handle = %v, want ErrNotSupported", err)
	}
}

func TestBlobRoundTripThroughHandle(t *testing.T) {
	path := writeTestBlob(t, false)
	h, err := FromBlob(path)
	if err != nil {
		t.Fatalf("FromBlob: %v", err)
	}
	defer h.Close()

	out := filepath.Join(t.TempDir(), "resaved.blob")
	if err := h.SaveBlob(out); err != nil {
		t.Fatalf("SaveBlob: %v", err)
	}

	h2, err := FromBlob(out)
	if err != nil {
		t.Fatalf("FromBlob (resaved): %v", err)
	}
	defer h2.Close()

	ok, err := h2.SmartStatus()
	if err != nil {
		t.Fatalf("SmartStatus: %v", err)
	}
	if ok {
		t.Fatalf("expected unhealthy status to survive round trip")
	}
}

func init() {
	// sanity check that the FourCC constant used in tests matches the
	// spec's documented big-endian encoding.
	var b [4]byte
	binary.BigEndian.PutUint32(b[:], 0x49444659)
	if string(b[:]) != "IDFY" {
		panic("unexpected FourCC encoding")
	}
}
