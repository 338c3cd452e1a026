// Copyright (c) 2021 by library authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package main

import (
	"github.com/alecthomas/kong"
	"github.com/go-atasmart/atasmart/pkg/cmdutil"
)

const (
	programName = "smartctl"
	programDesc = "Read and control ATA S.M.A.R.T. telemetry"
)

func main() {
	ctx := kong.Parse(&cli,
		kong.Name(programName),
		kong.Description(programDesc),
		kong.UsageOnError(),
		kong.NamedMapper("accessiblefile", cmdutil.AccessibleFileMapper()),
		kong.ConfigureHelp(kong.HelpOptions{
			Compact: true,
			Summary: true,
		}))

	err := ctx.Run(&context{})
	ctx.FatalIfErrorf(err)
}
