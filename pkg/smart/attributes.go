// Copyright (c) 2021 by library authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package smart

import (
	"strings"

	"github.com/go-atasmart/atasmart/pkg/ataio"
)

const (
	attributeSlotCount  = 30
	attributeSlotStride = 12
	attributeSlotBase   = 2
)

// Attribute is a single decoded SMART attribute record.
type Attribute struct {
	ID   uint8
	Name string
	Unit AttributeUnit

	Flags      uint16
	Prefailure bool
	Online     bool

	CurrentValue uint8
	CurrentValid bool
	WorstValue   uint8
	WorstValid   bool

	Raw         [6]byte
	PrettyValue uint64

	Threshold      uint8
	ThresholdValid bool

	GoodNow          bool
	GoodNowValid     bool
	GoodInPast       bool
	GoodInPastValid  bool

	Warn bool
}

func attributeSlot(data []byte, i int) []byte {
	off := attributeSlotBase + i*attributeSlotStride
	return data[off : off+attributeSlotStride]
}

func validNormalized(v uint8) bool { return v >= 1 && v <= 0xFD }

// DecodeAttributes parses the 30-slot attribute table embedded in raw
// SMART DATA. thresholds may be nil; when present it supplies
// per-attribute threshold values from its own 30-slot layout.
// capacityBytes is used to bound plausible sector counts, and may be 0
// if unknown (sector-count plausibility is then skipped). model and
// quirks together select an optional attribute name/unit override
// table; quirks may be nil.
func DecodeAttributes(smartData []byte, thresholds []byte, capacityBytes uint64, model string, quirks *QuirksDB) ([]Attribute, error) {
	if len(smartData) != 512 {
		return nil, ErrInvalidData
	}
	if thresholds != nil && len(thresholds) != 512 {
		return nil, ErrInvalidData
	}

	overrides := quirks.Lookup(model)

	var out []Attribute
	for i := 0; i < attributeSlotCount; i++ {
		slot := attributeSlot(smartData, i)
		id := slot[0]
		if id == 0 {
			continue
		}

		flags := ataio.LE16(slot[1:3])
		attr := Attribute{
			ID:         id,
			Flags:      flags,
			Prefailure: flags&0x0001 != 0,
			Online:     flags&0x0002 != 0,
			Raw:        [6]byte(slot[5:11]),
		}
		attr.CurrentValue = slot[3]
		attr.CurrentValid = validNormalized(slot[3])
		attr.WorstValue = slot[4]
		attr.WorstValid = validNormalized(slot[4])

		attr.Name, attr.Unit = lookupAttributeWithQuirks(id, overrides)
		attr.PrettyValue = prettyValue(attr.Name, attr.Raw, attr.CurrentValue)

		if thresholds != nil {
			applyThreshold(&attr, thresholds)
		}

		validatePlausibility(&attr, capacityBytes)

		if (id == 5 || id == 197) && attr.PrettyValue > 0 {
			attr.Warn = true
		}

		out = append(out, attr)
	}
	return out, nil
}

func applyThreshold(attr *Attribute, thresholds []byte) {
	for i := 0; i < attributeSlotCount; i++ {
		slot := attributeSlot(thresholds, i)
		if slot[0] != attr.ID {
			continue
		}
		attr.Threshold = slot[1]
		attr.ThresholdValid = attr.Threshold != 0xFE
		if attr.ThresholdValid && attr.Threshold >= 1 && attr.Threshold <= 0xFD {
			if attr.CurrentValid {
				attr.GoodNow = attr.CurrentValue > attr.Threshold
				attr.GoodNowValid = true
			}
			if attr.WorstValid {
				attr.GoodInPast = attr.WorstValue > attr.Threshold
				attr.GoodInPastValid = true
			}
		}
		if (attr.GoodNowValid && !attr.GoodNow) || (attr.GoodInPastValid && !attr.GoodInPast) {
			attr.Warn = true
		}
		return
	}
}

// prettyValue computes the unit-aware physical quantity from the raw
// 48-bit attribute field, per the table of attribute identities in
// spec section 4.8.
func prettyValue(name string, raw [6]byte, current uint8) uint64 {
	v := ataio.LE48(raw[:])

	switch name {
	case "spin-up-time":
		return v & 0xFFFF
	case "airflow-temperature-celsius", "temperature-celsius", "temperature-celsius-2":
		return (v&0xFFFF)*1000 + 273150
	case "temperature-centi-celsius":
		return (v&0xFFFF)*100 + 273150
	case "power-on-minutes":
		return v * 60_000
	case "power-on-seconds", "power-on-seconds-2":
		return v * 1000
	case "power-on-half-minutes":
		return v * 30_000
	case "power-on-hours", "loaded-hours", "head-flying-hours":
		return (v & 0xFFFFFFFF) * 3_600_000
	case "reallocated-sector-count", "current-pending-sector":
		return v & 0xFFFFFFFF
	case "endurance-remaining", "available-reserved-space":
		return uint64(current)
	case "total-lbas-written", "total-lbas-read":
		return v * 65536 * 512 / 1_000_000
	case "timed-workload-media-wear", "timed-workload-host-reads":
		return v / 1024
	case "workload-timer":
		return v * 60_000
	default:
		return v
	}
}

const (
	milliKelvinFloor   = 258150
	milliKelvinCeiling = 373150
	oneHourMs          = 3_600_000
	thirtyYearsMs       = 30 * 365 * 24 * 3_600_000
)

// validatePlausibility downgrades an attribute's unit to Unknown when
// its pretty value falls outside the physically plausible range for
// that unit.
func validatePlausibility(attr *Attribute, capacityBytes uint64) {
	switch attr.Unit {
	case UnitMilliKelvin:
		if attr.PrettyValue < milliKelvinFloor || attr.PrettyValue > milliKelvinCeiling {
			attr.Unit = UnitUnknown
		}
	case UnitMilliseconds:
		ceiling := uint64(thirtyYearsMs)
		if strings.Contains(attr.Name, "spin-up") || strings.Contains(attr.Name, "load-in") {
			ceiling = oneHourMs
		}
		if attr.PrettyValue < 1 || attr.PrettyValue > ceiling {
			attr.Unit = UnitUnknown
		}
	case UnitSectors:
		if attr.PrettyValue == 0xFFFFFFFF || attr.PrettyValue == 0xFFFFFFFFFFFF {
			attr.Unit = UnitUnknown
		} else if capacityBytes > 0 && attr.PrettyValue > capacityBytes/512 {
			attr.Unit = UnitUnknown
		}
	}
}
