// Copyright (c) 2021 by library authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package main

import (
	"flag"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"text/tabwriter"

	"github.com/go-atasmart/atasmart/pkg/disk"
	"github.com/go-atasmart/atasmart/pkg/smart"
)

var (
	outputFmt = flag.String("output", "openmetrics", "Output format; one of [table, openmetrics]")
	noHeader  = flag.Bool("no-header", false, "Suppress the header in table format output")
)

// deviceState is one enumerated block device's decoded SMART state.
// When reading the device fails, Err carries the reason; fields filled
// before the failing step keep their values and the rest stay zero.
type deviceState struct {
	Device     string
	Identity   smart.Identity
	Statistics smart.Statistics
	Verdict    smart.Overall
	Err        error
}

func main() {
	flag.Usage = func() {
		fmt.Fprintf(flag.CommandLine.Output(), "Usage of %s:\n", os.Args[0])
		fmt.Println()
		flag.PrintDefaults()
	}
	flag.Parse()

	sysblk, err := os.ReadDir("/sys/class/block/")
	if err != nil {
		log.Fatalf("enumerating block devices: %v", err)
	}

	var states []deviceState
	for _, fi := range sysblk {
		devname := fi.Name()
		if _, err := os.Stat(filepath.Join("/sys/class/block", devname, "device")); os.IsNotExist(err) {
			continue
		}
		devpath := filepath.Join("/dev", devname)
		if _, err := os.Stat(devpath); os.IsNotExist(err) {
			log.Printf("missing device node %s", devpath)
			continue
		}

		states = append(states, readDevice(devpath))
	}

	switch *outputFmt {
	case "table":
		outputTable(states)
	case "openmetrics":
		outputMetrics(states)
	default:
		fmt.Printf("unsupported output format %q\n", *outputFmt)
		flag.Usage()
		os.Exit(2)
	}
}

func readDevice(devpath string) deviceState {
	s := deviceState{Device: devpath}

	h, err := disk.Open(devpath)
	if err != nil {
		s.Err = fmt.Errorf("open: %w", err)
		return s
	}
	defer h.Close()

	if err := h.ReadIdentify(); err != nil {
		s.Err = fmt.Errorf("identify: %w", err)
		return s
	}
	id, err := h.ParseIdentify()
	if err != nil {
		s.Err = fmt.Errorf("identify: %w", err)
		return s
	}
	s.Identity = id

	if err := h.ReadSmartData(); err != nil {
		s.Err = fmt.Errorf("read smart data: %w", err)
		return s
	}
	_ = h.ReadSmartThresholds()

	stats, err := h.Statistics()
	if err != nil {
		s.Err = fmt.Errorf("statistics: %w", err)
		return s
	}
	s.Statistics = stats

	verdict, err := h.OverallVerdict()
	if err != nil {
		s.Err = fmt.Errorf("overall verdict: %w", err)
		return s
	}
	s.Verdict = verdict
	return s
}

func outputTable(states []deviceState) {
	w := tabwriter.NewWriter(os.Stdout, 0, 0, 3, ' ', 0)
	if !*noHeader {
		fmt.Fprintf(w, "DEVICE\tMODEL\tSERIAL\tVERDICT\tTEMP\tPOWER-ON\tBAD-SECTORS\n")
	}
	for _, s := range states {
		if s.Err != nil {
			fmt.Fprintf(w, "%s\t-\t-\terror: %v\t-\t-\t-\n", s.Device, s.Err)
			continue
		}
		temp, power, bad := "-", "-", "-"
		if s.Statistics.Temperature != nil {
			temp = s.Statistics.Temperature.String()
		}
		if s.Statistics.PowerOnDuration != nil {
			power = s.Statistics.PowerOnDuration.String()
		}
		if s.Statistics.BadSectors != nil {
			bad = fmt.Sprintf("%d", *s.Statistics.BadSectors)
		}
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\t%s\t%s\n",
			s.Device, s.Identity.Model, s.Identity.Serial, s.Verdict, temp, power, bad)
	}
	w.Flush()
}
