// Copyright (c) 2021 by library authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package smart

import (
	"fmt"
	"time"
)

// Temperature is a physical quantity in thousandths of a Kelvin,
// chosen because SMART attributes are integer-valued and the library
// avoids introducing floating point into the decode path.
type Temperature int64

// Celsius converts to degrees Celsius for display.
func (t Temperature) Celsius() float64 {
	return float64(t)/1000 - 273.15
}

func (t Temperature) String() string {
	return fmt.Sprintf("%.1f°C", t.Celsius())
}

// Duration is a physical quantity in milliseconds.
type Duration int64

// AsGoDuration converts to a time.Duration for display or arithmetic.
func (d Duration) AsGoDuration() time.Duration {
	return time.Duration(d) * time.Millisecond
}

func (d Duration) String() string {
	return d.AsGoDuration().String()
}
