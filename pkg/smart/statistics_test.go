// Copyright (c) 2021 by library authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package smart

import "testing"

func TestBadSectorAggregation(t *testing.T) {
	both := []Attribute{{ID: 5, PrettyValue: 3}, {ID: 197, PrettyValue: 2}}
	if got := BadSectors(both); got == nil || *got != 5 {
		t.Fatalf("BadSectors(both) = %v, want 5", got)
	}

	reallocatedOnly := []Attribute{{ID: 5, PrettyValue: 3}}
	if got := BadSectors(reallocatedOnly); got == nil || *got != 3 {
		t.Fatalf("BadSectors(reallocated only) = %v, want 3", got)
	}

	if got := BadSectors(nil); got != nil {
		t.Fatalf("BadSectors(none) = %v, want nil", got)
	}
}

func TestTemperaturePriorityOrder(t *testing.T) {
	attrs := []Attribute{
		{ID: 231, Name: "temperature-celsius", PrettyValue: 300000},
		{ID: 194, Name: "temperature-celsius-2", PrettyValue: 298150},
		{ID: 190, Name: "airflow-temperature-celsius", PrettyValue: 297000},
	}
	got := AttributeTemperature(attrs)
	if got == nil || *got != Temperature(298150) {
		t.Fatalf("AttributeTemperature = %v, want 298150 (id 194 wins priority)", got)
	}
}

func TestOverallVerdictWorstWins(t *testing.T) {
	if v := OverallVerdict(nil, true); v != OverallBadStatus {
		t.Fatalf("verdict with bad status = %v, want BadStatus", v)
	}

	currentlyBad := []Attribute{{GoodNowValid: true, GoodNow: false}}
	if v := OverallVerdict(currentlyBad, false); v != OverallBadAttributeNow {
		t.Fatalf("verdict = %v, want BadAttributeNow", v)
	}

	manySectors := []Attribute{{ID: 5, PrettyValue: BadSectorManyThreshold + 1}}
	if v := OverallVerdict(manySectors, false); v != OverallBadSectorMany {
		t.Fatalf("verdict = %v, want BadSectorMany", v)
	}

	fewSectors := []Attribute{{ID: 5, PrettyValue: 1}}
	if v := OverallVerdict(fewSectors, false); v != OverallBadSector {
		t.Fatalf("verdict = %v, want BadSector", v)
	}

	pastBad := []Attribute{{GoodInPastValid: true, GoodInPast: false}}
	if v := OverallVerdict(pastBad, false); v != OverallBadAttributeInThePast {
		t.Fatalf("verdict = %v, want BadAttributeInThePast", v)
	}

	if v := OverallVerdict(nil, false); v != OverallGood {
		t.Fatalf("verdict = %v, want Good", v)
	}
}
