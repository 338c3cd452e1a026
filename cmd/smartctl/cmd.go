// Copyright (c) 2021 by library authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package main

import (
	"errors"
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/davecgh/go-spew/spew"

	"github.com/go-atasmart/atasmart/pkg/cmdutil"
	"github.com/go-atasmart/atasmart/pkg/disk"
	"github.com/go-atasmart/atasmart/pkg/smart"
)

// context is the context struct required by kong command line parser.
type context struct{}

type identifyCmd struct {
	Device string `arg:"" type:"accessiblefile" help:"Path to ATA device (e.g. /dev/sda)"`
}

type smartCmd struct {
	Device string `arg:"" type:"accessiblefile" help:"Path to ATA device (e.g. /dev/sda)"`
	Quirks string `optional:"" type:"accessiblefile" help:"Path to a TOML attribute quirks file"`
	Dump   bool   `optional:"" help:"Dump the decoded attribute table with go-spew"`
}

type selfTestCmd struct {
	Start selfTestStartCmd `cmd:"" help:"Start a self-test"`
	Abort selfTestAbortCmd `cmd:"" help:"Abort a running self-test"`
}

type selfTestStartCmd struct {
	Device string `arg:"" type:"accessiblefile" help:"Path to ATA device (e.g. /dev/sda)"`
	Kind   string `optional:"" default:"short" enum:"short,extended,conveyance" help:"Self-test kind to start"`
}

type selfTestAbortCmd struct {
	Device string `arg:"" type:"accessiblefile" help:"Path to ATA device (e.g. /dev/sda)"`
}

type dumpBlobCmd struct {
	Device string `arg:"" type:"accessiblefile" help:"Path to ATA device (e.g. /dev/sda)"`
	Path   string `arg:"" help:"Path to write the blob snapshot to"`
}

type loadBlobCmd struct {
	Path string `arg:"" type:"accessiblefile" help:"Path to a previously captured blob snapshot"`
}

// cli is the main command line interface struct required by kong.
var cli struct {
	Identify identifyCmd `cmd:"" help:"Read and print IDENTIFY DEVICE information"`
	Smart    smartCmd    `cmd:"" help:"Read SMART data, attributes, and overall health verdict"`
	SelfTest selfTestCmd `cmd:"self-test" help:"Control SMART self-tests"`
	DumpBlob dumpBlobCmd `cmd:"dump-blob" help:"Snapshot a device's SMART state to a blob file"`
	LoadBlob loadBlobCmd `cmd:"load-blob" help:"Print a previously captured blob snapshot"`
}

func (i *identifyCmd) Run(ctx *context) error {
	h, err := disk.Open(i.Device)
	if err != nil {
		return fmt.Errorf("identify: %w", err)
	}
	defer h.Close()

	if err := h.ReadIdentify(); err != nil {
		return fmt.Errorf("identify: %w", err)
	}
	id, err := h.ParseIdentify()
	if err != nil {
		return fmt.Errorf("identify: %w", err)
	}

	fmt.Printf("model:    %s\n", id.Model)
	fmt.Printf("serial:   %s\n", id.Serial)
	fmt.Printf("firmware: %s\n", id.Firmware)
	fmt.Printf("dialect:  %s\n", h.DiskType())
	fmt.Printf("capacity: %d bytes\n", h.Size())
	return nil
}

func (s *smartCmd) Run(ctx *context) error {
	h, err := disk.Open(s.Device)
	if err != nil {
		return fmt.Errorf("smart: %w", err)
	}
	defer h.Close()

	if s.Quirks != "" {
		db, err := smart.LoadQuirksFile(s.Quirks)
		if err != nil {
			return fmt.Errorf("smart: %w", err)
		}
		h.WithQuirks(db)
	}

	if err := h.ReadIdentify(); err != nil {
		return fmt.Errorf("smart: %w", err)
	}
	if err := h.ReadSmartData(); err != nil {
		return fmt.Errorf("smart: %w", err)
	}
	if err := h.ReadSmartThresholds(); err != nil && !errors.Is(err, smart.ErrNotSupported) {
		fmt.Fprintf(os.Stderr, "warning: reading thresholds: %v\n", err)
	}

	return printReport(h, s.Dump)
}

func (s *selfTestStartCmd) Run(ctx *context) error {
	kind, err := selfTestKindFromFlag(s.Kind)
	if err != nil {
		return err
	}

	ok, err := cmdutil.ConfirmDestructive(fmt.Sprintf("start a %s self-test on %s", s.Kind, s.Device))
	if err != nil {
		return fmt.Errorf("selftest start: %w", err)
	}
	if !ok {
		fmt.Println("aborted")
		return nil
	}

	h, err := disk.Open(s.Device)
	if err != nil {
		return fmt.Errorf("selftest start: %w", err)
	}
	defer h.Close()

	if err := h.ReadIdentify(); err != nil {
		return fmt.Errorf("selftest start: %w", err)
	}
	if err := h.ReadSmartData(); err != nil {
		return fmt.Errorf("selftest start: %w", err)
	}
	if err := h.StartSelfTest(kind); err != nil {
		return fmt.Errorf("selftest start: %w", err)
	}
	fmt.Println("self-test started")
	return nil
}

func (a *selfTestAbortCmd) Run(ctx *context) error {
	ok, err := cmdutil.ConfirmDestructive(fmt.Sprintf("abort the running self-test on %s", a.Device))
	if err != nil {
		return fmt.Errorf("selftest abort: %w", err)
	}
	if !ok {
		fmt.Println("aborted")
		return nil
	}

	h, err := disk.Open(a.Device)
	if err != nil {
		return fmt.Errorf("selftest abort: %w", err)
	}
	defer h.Close()

	if err := h.ReadIdentify(); err != nil {
		return fmt.Errorf("selftest abort: %w", err)
	}
	if err := h.ReadSmartData(); err != nil {
		return fmt.Errorf("selftest abort: %w", err)
	}
	if err := h.StartSelfTest(smart.SelfTestAbort); err != nil {
		return fmt.Errorf("selftest abort: %w", err)
	}
	fmt.Println("self-test abort requested")
	return nil
}

func (d *dumpBlobCmd) Run(ctx *context) error {
	h, err := disk.Open(d.Device)
	if err != nil {
		return fmt.Errorf("dump-blob: %w", err)
	}
	defer h.Close()

	if err := h.ReadIdentify(); err != nil {
		return fmt.Errorf("dump-blob: %w", err)
	}
	if err := h.ReadSmartData(); err != nil {
		return fmt.Errorf("dump-blob: %w", err)
	}
	if err := h.ReadSmartThresholds(); err != nil && !errors.Is(err, smart.ErrNotSupported) {
		fmt.Fprintf(os.Stderr, "warning: reading thresholds: %v\n", err)
	}

	if err := h.SaveBlob(d.Path); err != nil {
		return fmt.Errorf("dump-blob: %w", err)
	}
	fmt.Printf("wrote snapshot to %s\n", d.Path)
	return nil
}

func (l *loadBlobCmd) Run(ctx *context) error {
	h, err := disk.FromBlob(l.Path)
	if err != nil {
		return fmt.Errorf("load-blob: %w", err)
	}
	defer h.Close()

	return printReport(h, false)
}

func selfTestKindFromFlag(kind string) (smart.SelfTestKind, error) {
	switch kind {
	case "short":
		return smart.SelfTestShort, nil
	case "extended":
		return smart.SelfTestExtended, nil
	case "conveyance":
		return smart.SelfTestConveyance, nil
	default:
		return 0, fmt.Errorf("unknown self-test kind %q", kind)
	}
}

// printReport prints a device's decoded SMART state: identity, the
// self-test/offline status block, the attribute table, derived
// statistics, and the overall health verdict.
func printReport(h *disk.Handle, dump bool) error {
	id, err := h.ParseIdentify()
	if err != nil {
		return fmt.Errorf("smart: %w", err)
	}
	fmt.Printf("model:    %s\n", id.Model)
	fmt.Printf("serial:   %s\n", id.Serial)
	fmt.Printf("firmware: %s\n", id.Firmware)
	fmt.Printf("dialect:  %s\n\n", h.DiskType())

	block, err := h.ParseSmart()
	if err != nil {
		return fmt.Errorf("smart: %w", err)
	}
	fmt.Printf("offline data collection: %s (%d s total)\n", block.OfflineStatus, block.OfflineTotalSeconds)
	fmt.Printf("self-test status:        %v, %d%% remaining\n", block.SelfTestStatus, block.SelfTestPercentRemaining)
	fmt.Printf("self-test polling time:  short=%dmin extended=%dmin conveyance=%dmin\n\n",
		block.PollingMinutes.Short, block.PollingMinutes.Extended, block.PollingMinutes.Conveyance)

	attrs, err := h.ParseSmartAttributes()
	if err != nil {
		return fmt.Errorf("smart: %w", err)
	}
	printAttributeTable(attrs)

	if dump {
		spew.Dump(attrs)
	}

	stats, err := h.Statistics()
	if err != nil {
		return fmt.Errorf("smart: %w", err)
	}
	fmt.Println()
	printStatistics(stats)

	verdict, err := h.OverallVerdict()
	if err != nil {
		fmt.Printf("overall verdict: unknown (%v)\n", err)
		return nil
	}
	fmt.Printf("overall verdict: %s\n", verdict)
	return nil
}

func printAttributeTable(attrs []smart.Attribute) {
	w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tNAME\tVALUE\tWORST\tTHRESH\tPRETTY\tUNIT\tWARN")
	for _, a := range attrs {
		warn := ""
		if a.Warn {
			warn = "*"
		}
		fmt.Fprintf(w, "%d\t%s\t%d\t%d\t%d\t%d\t%s\t%s\n",
			a.ID, a.Name, a.CurrentValue, a.WorstValue, a.Threshold, a.PrettyValue, a.Unit, warn)
	}
	w.Flush()
}

func printStatistics(s smart.Statistics) {
	if s.Temperature != nil {
		fmt.Printf("temperature:      %s\n", s.Temperature)
	}
	if s.PowerOnDuration != nil {
		fmt.Printf("power-on time:    %s\n", s.PowerOnDuration)
	}
	if s.PowerCycleCount != nil {
		fmt.Printf("power cycles:     %d\n", *s.PowerCycleCount)
	}
	if s.BadSectors != nil {
		fmt.Printf("bad sectors:      %d\n", *s.BadSectors)
	}
}
