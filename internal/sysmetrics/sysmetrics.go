// Package sysmetrics samples live CPU, memory, disk and I/O readings
// for the system health score. Unavailable samplers leave their metric
// absent; staleness is never an error.
package sysmetrics

import (
	"context"
	"strings"
	"time"

	"github.com/shirou/gopsutil/v3/cpu"
	"github.com/shirou/gopsutil/v3/disk"
	"github.com/shirou/gopsutil/v3/host"
	"github.com/shirou/gopsutil/v3/mem"
	"go.uber.org/zap"

	"github.com/tonicapp/tonic/internal/scan"
)

// Provider samples system metrics through gopsutil.
type Provider struct {
	logger *zap.Logger

	// I/O rate needs two observations; the previous one lives here.
	lastIO      uint64
	lastIOAt    time.Time
	sampleDelay time.Duration
}

// NewProvider returns a metrics provider.
func NewProvider(logger *zap.Logger) *Provider {
	return &Provider{logger: logger, sampleDelay: 500 * time.Millisecond}
}

// Snapshot gathers one metrics snapshot. Individual sampler failures
// degrade to absent fields.
func (p *Provider) Snapshot(ctx context.Context) (scan.SystemMetrics, error) {
	var m scan.SystemMetrics

	if percents, err := cpu.PercentWithContext(ctx, p.sampleDelay, false); err == nil && len(percents) > 0 {
		m.CPUPercent = percents[0]
	} else if err != nil {
		p.logger.Debug("cpu sample unavailable", zap.Error(err))
	}

	if vm, err := mem.VirtualMemoryWithContext(ctx); err == nil {
		m.MemoryPercent = vm.UsedPercent
		m.MemoryPressure = classifyPressure(vm.UsedPercent)
	} else {
		m.MemoryPressure = scan.PressureNormal
		p.logger.Debug("memory sample unavailable", zap.Error(err))
	}

	if usage, err := disk.UsageWithContext(ctx, "/"); err == nil {
		v := usage.UsedPercent
		m.DiskPercent = &v
	}

	if temps, err := host.SensorsTemperaturesWithContext(ctx); err == nil {
		if t, ok := cpuTemperature(temps); ok {
			m.CPUTempC = &t
		}
	}

	if rate, ok := p.ioRate(ctx); ok {
		m.DiskIOMBs = &rate
	}

	return m, ctx.Err()
}

// ioRate derives MB/s from the delta of total read+write bytes across
// calls. The first call has no baseline and reports nothing.
func (p *Provider) ioRate(ctx context.Context) (float64, bool) {
	counters, err := disk.IOCountersWithContext(ctx)
	if err != nil {
		return 0, false
	}

	var total uint64
	for _, c := range counters {
		total += c.ReadBytes + c.WriteBytes
	}

	now := time.Now()
	defer func() {
		p.lastIO = total
		p.lastIOAt = now
	}()

	if p.lastIOAt.IsZero() || total < p.lastIO {
		return 0, false
	}
	elapsed := now.Sub(p.lastIOAt).Seconds()
	if elapsed <= 0 {
		return 0, false
	}
	return float64(total-p.lastIO) / elapsed / (1024 * 1024), true
}

// classifyPressure approximates the kernel's memory pressure signal
// from used percentage.
func classifyPressure(usedPercent float64) scan.MemoryPressure {
	switch {
	case usedPercent >= 95:
		return scan.PressureCritical
	case usedPercent >= 85:
		return scan.PressureWarning
	default:
		return scan.PressureNormal
	}
}

// cpuTemperature picks the hottest sensor that looks CPU-related.
func cpuTemperature(temps []host.TemperatureStat) (float64, bool) {
	var best float64
	var found bool
	for _, t := range temps {
		if t.Temperature <= 0 {
			continue
		}
		key := strings.ToLower(t.SensorKey)
		if !strings.Contains(key, "cpu") && !strings.Contains(key, "core") &&
			!strings.Contains(key, "package") && !strings.Contains(key, "tdie") {
			continue
		}
		if t.Temperature > best {
			best = t.Temperature
			found = true
		}
	}
	return best, found
}
