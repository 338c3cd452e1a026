// Copyright (c) 2021 by library authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package smart

import (
	"fmt"
	"regexp"

	"github.com/BurntSushi/toml"
)

// QuirksDB holds optional per-model attribute-name/unit overrides,
// shaped after dswarbrick/smart's drivedb.toml preset table: a list of
// drives matched by model regex, each carrying overrides for specific
// attribute IDs. Unlike that table, a quirks entry only overlays the
// static 256-entry attributeTable — it never replaces it wholesale.
type QuirksDB struct {
	Drives []quirkDrive `toml:"drives"`
}

type quirkDrive struct {
	ModelRegex string                  `toml:"model_regex"`
	Attributes map[string]quirkAttr    `toml:"attributes"`
	compiled   *regexp.Regexp
}

type quirkAttr struct {
	Name string        `toml:"name"`
	Unit AttributeUnit `toml:"-"`
	UnitName string     `toml:"unit"`
}

// LoadQuirksFile parses a TOML quirks file at path.
func LoadQuirksFile(path string) (*QuirksDB, error) {
	var db QuirksDB
	if _, err := toml.DecodeFile(path, &db); err != nil {
		return nil, fmt.Errorf("smart: loading quirks file: %w", err)
	}
	for i := range db.Drives {
		re, err := regexp.Compile(db.Drives[i].ModelRegex)
		if err != nil {
			return nil, fmt.Errorf("smart: quirks entry %d: %w", i, err)
		}
		db.Drives[i].compiled = re
		for id, attr := range db.Drives[i].Attributes {
			attr.Unit = parseUnitName(attr.UnitName)
			db.Drives[i].Attributes[id] = attr
		}
	}
	return &db, nil
}

func parseUnitName(name string) AttributeUnit {
	switch name {
	case "none":
		return UnitNone
	case "ms":
		return UnitMilliseconds
	case "sectors":
		return UnitSectors
	case "mK":
		return UnitMilliKelvin
	case "small-percent":
		return UnitSmallPercent
	case "%":
		return UnitPercent
	case "MB":
		return UnitMegabytes
	default:
		return UnitUnknown
	}
}

// Lookup returns the overrides (keyed by decimal attribute ID string,
// matching the TOML table shape) that apply to model, or nil if no
// quirks entry matches.
func (db *QuirksDB) Lookup(model string) map[string]quirkAttr {
	if db == nil {
		return nil
	}
	for _, d := range db.Drives {
		if d.compiled != nil && d.compiled.MatchString(model) {
			return d.Attributes
		}
	}
	return nil
}

// lookupAttributeWithQuirks behaves like lookupAttribute but checks an
// optional quirks overlay first.
func lookupAttributeWithQuirks(id uint8, overrides map[string]quirkAttr) (name string, unit AttributeUnit) {
	if overrides != nil {
		if o, ok := overrides[fmt.Sprintf("%d", id)]; ok {
			name, unit = lookupAttribute(id)
			if o.Name != "" {
				name = o.Name
			}
			if o.UnitName != "" {
				unit = o.Unit
			}
			return name, unit
		}
	}
	return lookupAttribute(id)
}
