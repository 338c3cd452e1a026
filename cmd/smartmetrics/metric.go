// Copyright (c) 2021 by library authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package main

import (
	"log"
	"os"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/common/expfmt"
)

type metricCollector struct {
	m []prometheus.Metric
}

func (mc *metricCollector) Collect(c chan<- prometheus.Metric) {
	for _, m := range mc.m {
		c <- m
	}
}

func (mc *metricCollector) Describe(c chan<- *prometheus.Desc) {
}

func outputMetrics(states []deviceState) {
	var (
		mDriveInfo = prometheus.NewDesc(
			"atasmart_drive_info",
			"Info metric identifying a probed drive",
			[]string{"device", "model", "serial", "firmware"}, nil,
		)
		mReadError = prometheus.NewDesc(
			"atasmart_read_error",
			"Boolean describing whether reading SMART state from the device failed",
			[]string{"device"}, nil,
		)
		mOverallVerdict = prometheus.NewDesc(
			"atasmart_overall_verdict",
			"Worst-wins overall health verdict, one of the Overall enum ordinals",
			[]string{"device", "verdict"}, nil,
		)
		mTemperature = prometheus.NewDesc(
			"atasmart_temperature_celsius",
			"Reported drive temperature in degrees Celsius",
			[]string{"device"}, nil,
		)
		mPowerOnSeconds = prometheus.NewDesc(
			"atasmart_power_on_seconds",
			"Cumulative power-on time in seconds",
			[]string{"device"}, nil,
		)
		mPowerCycles = prometheus.NewDesc(
			"atasmart_power_cycle_count",
			"Cumulative power cycle count",
			[]string{"device"}, nil,
		)
		mBadSectors = prometheus.NewDesc(
			"atasmart_bad_sectors",
			"Reallocated plus pending bad sector count",
			[]string{"device"}, nil,
		)
	)

	mc := &metricCollector{}
	for _, s := range states {
		errVal := float64(0)
		if s.Err != nil {
			errVal = 1
		}
		mc.m = append(mc.m, prometheus.MustNewConstMetric(mReadError, prometheus.GaugeValue, errVal, s.Device))
		if s.Err != nil {
			continue
		}

		mc.m = append(mc.m, prometheus.MustNewConstMetric(mDriveInfo, prometheus.GaugeValue, 1,
			s.Device, s.Identity.Model, s.Identity.Serial, s.Identity.Firmware))
		mc.m = append(mc.m, prometheus.MustNewConstMetric(mOverallVerdict, prometheus.GaugeValue,
			float64(s.Verdict), s.Device, s.Verdict.String()))

		if s.Statistics.Temperature != nil {
			mc.m = append(mc.m, prometheus.MustNewConstMetric(mTemperature, prometheus.GaugeValue,
				s.Statistics.Temperature.Celsius(), s.Device))
		}
		if s.Statistics.PowerOnDuration != nil {
			mc.m = append(mc.m, prometheus.MustNewConstMetric(mPowerOnSeconds, prometheus.GaugeValue,
				s.Statistics.PowerOnDuration.AsGoDuration().Seconds(), s.Device))
		}
		if s.Statistics.PowerCycleCount != nil {
			mc.m = append(mc.m, prometheus.MustNewConstMetric(mPowerCycles, prometheus.GaugeValue,
				float64(*s.Statistics.PowerCycleCount), s.Device))
		}
		if s.Statistics.BadSectors != nil {
			mc.m = append(mc.m, prometheus.MustNewConstMetric(mBadSectors, prometheus.GaugeValue,
				float64(*s.Statistics.BadSectors), s.Device))
		}
	}

	reg := prometheus.NewPedanticRegistry()
	reg.MustRegister(mc)

	mfs, err := reg.Gather()
	if err != nil {
		log.Fatalf("failed to gather metrics: %v", err)
	}
	for _, mf := range mfs {
		if _, err := expfmt.MetricFamilyToText(os.Stdout, mf); err != nil {
			log.Fatalf("failed to serialize metrics: %v", err)
		}
	}
}
