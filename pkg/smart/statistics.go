// Copyright (c) 2021 by library authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package smart

import "strings"

// Overall is the worst-wins overall health verdict derived from a
// disk's decoded attributes and SMART RETURN STATUS result.
type Overall int

const (
	OverallGood Overall = iota
	OverallBadAttributeInThePast
	OverallBadSector
	OverallBadAttributeNow
	OverallBadSectorMany
	OverallBadStatus
)

func (o Overall) String() string {
	switch o {
	case OverallGood:
		return "good"
	case OverallBadAttributeInThePast:
		return "bad-attribute-in-the-past"
	case OverallBadSector:
		return "bad-sector"
	case OverallBadAttributeNow:
		return "bad-attribute-now"
	case OverallBadSectorMany:
		return "bad-sector-many"
	case OverallBadStatus:
		return "bad-status"
	default:
		return "unknown"
	}
}

// BadSectorManyThreshold is the bad-sector count above which the
// overall verdict escalates from BadSector to BadSectorMany.
const BadSectorManyThreshold = 100

// Statistics aggregates derived health metrics from a decoded
// attribute list. Each field is nil/zero-valued-absent when the
// underlying attribute is missing or failed plausibility validation.
type Statistics struct {
	BadSectors      *uint64
	PowerOnDuration *Duration
	PowerCycleCount *uint64
	Temperature     *Temperature
}

// BadSectors sums the reallocated-sector-count (id 5) and
// current-pending-sector (id 197) pretty values. Either attribute
// alone is reported; the sum only when both are present.
func BadSectors(attrs []Attribute) *uint64 {
	var reallocated, pending *uint64
	for _, a := range attrs {
		switch a.ID {
		case 5:
			v := a.PrettyValue
			reallocated = &v
		case 197:
			v := a.PrettyValue
			pending = &v
		}
	}
	switch {
	case reallocated != nil && pending != nil:
		sum := *reallocated + *pending
		return &sum
	case reallocated != nil:
		return reallocated
	case pending != nil:
		return pending
	default:
		return nil
	}
}

// PowerOnDuration returns the power-on-hours (id 9) attribute's pretty
// value as a Duration in milliseconds.
func PowerOnDuration(attrs []Attribute) *Duration {
	for _, a := range attrs {
		if a.ID == 9 && a.Name == "power-on-hours" {
			d := Duration(a.PrettyValue)
			return &d
		}
	}
	return nil
}

// PowerCycleCount returns the power-cycle-count (id 12) attribute's
// pretty value.
func PowerCycleCount(attrs []Attribute) *uint64 {
	for _, a := range attrs {
		if a.ID == 12 && a.Name == "power-cycle-count" {
			v := a.PrettyValue
			return &v
		}
	}
	return nil
}

// AttributeTemperature returns the first present temperature among
// attribute IDs 194, 190, 231 in that priority order, whose name
// contains "temperature".
func AttributeTemperature(attrs []Attribute) *Temperature {
	byID := make(map[uint8]Attribute, len(attrs))
	for _, a := range attrs {
		byID[a.ID] = a
	}
	for _, id := range []uint8{194, 190, 231} {
		a, ok := byID[id]
		if !ok || !strings.Contains(a.Name, "temperature") {
			continue
		}
		t := Temperature(a.PrettyValue)
		return &t
	}
	return nil
}

// ComputeStatistics aggregates all derived statistics from a decoded
// attribute list. Attributes whose unit is Unknown (including those
// downgraded by plausibility validation) are left out.
func ComputeStatistics(attrs []Attribute) Statistics {
	valid := make([]Attribute, 0, len(attrs))
	for _, a := range attrs {
		if a.Unit != UnitUnknown {
			valid = append(valid, a)
		}
	}
	return Statistics{
		BadSectors:      BadSectors(valid),
		PowerOnDuration: PowerOnDuration(valid),
		PowerCycleCount: PowerCycleCount(valid),
		Temperature:     AttributeTemperature(valid),
	}
}

// OverallVerdict applies the worst-wins precedence rule: a bad SMART
// RETURN STATUS outranks every attribute-derived signal, a currently
// failing attribute outranks sector counts, and a large bad-sector
// count outranks a merely nonzero one.
func OverallVerdict(attrs []Attribute, smartStatusBad bool) Overall {
	if smartStatusBad {
		return OverallBadStatus
	}

	anyBadNow := false
	anyBadInPast := false
	for _, a := range attrs {
		if a.GoodNowValid && !a.GoodNow {
			anyBadNow = true
		}
		if a.GoodInPastValid && !a.GoodInPast {
			anyBadInPast = true
		}
	}
	if anyBadNow {
		return OverallBadAttributeNow
	}

	if bad := BadSectors(attrs); bad != nil {
		if *bad > BadSectorManyThreshold {
			return OverallBadSectorMany
		}
		if *bad > 0 {
			return OverallBadSector
		}
	}

	if anyBadInPast {
		return OverallBadAttributeInThePast
	}

	return OverallGood
}
