// Copyright (c) 2021 by library authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package smart

import "fmt"

// AttributeUnit is the physical unit a SMART attribute's pretty value
// is expressed in.
type AttributeUnit int

const (
	UnitUnknown AttributeUnit = iota
	UnitNone
	UnitMilliseconds
	UnitSectors
	UnitMilliKelvin
	UnitSmallPercent
	UnitPercent
	UnitMegabytes
)

func (u AttributeUnit) String() string {
	switch u {
	case UnitNone:
		return "none"
	case UnitMilliseconds:
		return "ms"
	case UnitSectors:
		return "sectors"
	case UnitMilliKelvin:
		return "mK"
	case UnitSmallPercent:
		return "small-percent"
	case UnitPercent:
		return "%"
	case UnitMegabytes:
		return "MB"
	default:
		return "unknown"
	}
}

type attrMeta struct {
	name string
	unit AttributeUnit
}

// attributeTable is the process-wide, immutable, 256-entry attribute
// metadata table keyed by attribute ID. IDs with no entry below report
// a zero attrMeta and get a synthesized name at decode time.
var attributeTable [256]attrMeta

func init() {
	set := func(id uint8, name string, unit AttributeUnit) {
		attributeTable[id] = attrMeta{name: name, unit: unit}
	}

	set(1, "raw-read-error-rate", UnitNone)
	set(3, "spin-up-time", UnitMilliseconds)
	set(4, "start-stop-count", UnitNone)
	set(5, "reallocated-sector-count", UnitSectors)
	set(7, "seek-error-rate", UnitNone)
	set(9, "power-on-hours", UnitMilliseconds)
	set(10, "spin-retry-count", UnitNone)
	set(11, "calibration-retry-count", UnitNone)
	set(12, "power-cycle-count", UnitNone)
	set(13, "read-soft-error-rate", UnitNone)

	// 170-183: SSD health / wear-leveling set.
	set(170, "available-reserved-space", UnitPercent)
	set(171, "program-fail-count", UnitNone)
	set(172, "erase-fail-count", UnitNone)
	set(173, "wear-leveling-count", UnitNone)
	set(174, "unexpected-power-loss-count", UnitNone)
	set(175, "power-loss-protection-failure", UnitNone)
	set(176, "erase-fail-count-chip", UnitNone)
	set(177, "wear-range-delta", UnitNone)
	set(178, "used-reserved-block-count-chip", UnitNone)
	set(179, "used-reserved-block-count-total", UnitNone)
	set(180, "unused-reserved-block-count-total", UnitNone)
	set(181, "program-fail-count-total", UnitNone)
	set(182, "erase-fail-count-total", UnitNone)
	set(183, "sata-downshift-count", UnitNone)

	set(184, "end-to-end-error", UnitNone)
	set(187, "reported-uncorrect", UnitSectors)
	set(188, "command-timeout", UnitNone)
	set(189, "high-fly-writes", UnitNone)
	set(190, "airflow-temperature-celsius", UnitMilliKelvin)
	set(191, "g-sense-error-rate", UnitNone)
	set(192, "power-off-retract-count", UnitNone)
	set(193, "load-cycle-count", UnitNone)
	set(194, "temperature-celsius-2", UnitMilliKelvin)
	set(195, "hardware-ecc-recovered", UnitNone)
	set(196, "reallocated-event-count", UnitNone)
	set(197, "current-pending-sector", UnitSectors)
	set(198, "offline-uncorrectable", UnitSectors)
	set(199, "udma-crc-error-count", UnitNone)
	set(200, "multi-zone-error-rate", UnitNone)

	// 220-242: assorted vendor set.
	set(220, "disk-shift", UnitNone)
	set(221, "g-sense-error-rate-2", UnitNone)
	set(222, "loaded-hours", UnitMilliseconds)
	set(223, "load-retry-count", UnitNone)
	set(224, "load-friction", UnitNone)
	set(225, "load-cycle-count-2", UnitNone)
	set(226, "timed-workload-media-wear", UnitSmallPercent)
	set(227, "timed-workload-host-reads", UnitSmallPercent)
	set(228, "workload-timer", UnitMilliseconds)
	set(229, "flash-gb-erased", UnitMegabytes)
	set(230, "life-left", UnitPercent)
	set(231, "temperature-celsius", UnitMilliKelvin)
	set(232, "endurance-remaining", UnitPercent)
	set(233, "media-wearout-indicator", UnitNone)
	set(234, "average-erase-count", UnitNone)
	set(235, "good-block-count", UnitNone)
	set(240, "head-flying-hours", UnitMilliseconds)
	set(241, "total-lbas-written", UnitMegabytes)
	set(242, "total-lbas-read", UnitMegabytes)

	set(250, "read-error-retry-rate", UnitNone)
}

// lookupAttribute returns the static metadata for id, synthesizing a
// name for IDs without a canonical entry.
func lookupAttribute(id uint8) (name string, unit AttributeUnit) {
	m := attributeTable[id]
	if m.name == "" {
		return fmt.Sprintf("attribute-%d", id), UnitUnknown
	}
	return m.name, m.unit
}
