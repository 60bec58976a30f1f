package score

import (
	"math"
	"strings"

	"github.com/tonicapp/tonic/internal/scan"
)

// Per-metric ramp weights and thresholds for the live-metrics score.
// Unlike the findings tables these interpolate: half the weight applies
// as soon as the normal threshold is passed, the full weight at the high
// threshold, and the penalty keeps growing proportionally beyond it.
var systemRamps = []struct {
	weight float64
	normal float64
	high   float64
}{
	{weight: 30, normal: 30, high: 70},   // CPU %
	{weight: 30, normal: 60, high: 85},   // memory %
	{weight: 20, normal: 70, high: 90},   // disk %
	{weight: 10, normal: 100, high: 300}, // disk I/O MB/s
}

const (
	rampCPU = iota
	rampMemory
	rampDisk
	rampDiskIO
)

const (
	tempWarnC        = 70
	tempHighC        = 80
	tempWarnStep     = 8
	tempHighStep     = 15
	pressureWarnStep = 10
	pressureCritStep = 25
)

// SystemScore rates a live metrics snapshot. The message names every
// sub-metric past its high threshold, in evaluation order (CPU, memory,
// memory pressure, disk, thermal, I/O), or reports a quiet system.
func SystemScore(m scan.SystemMetrics) (int, string) {
	var penalty float64
	var alerts []string

	penalty += rampPenalty(rampCPU, m.CPUPercent)
	if m.CPUPercent > systemRamps[rampCPU].high {
		alerts = append(alerts, "high CPU load")
	}

	penalty += rampPenalty(rampMemory, m.MemoryPercent)
	if m.MemoryPercent > systemRamps[rampMemory].high {
		alerts = append(alerts, "high memory usage")
	}

	switch m.MemoryPressure {
	case scan.PressureWarning:
		penalty += pressureWarnStep
	case scan.PressureCritical:
		penalty += pressureCritStep
		alerts = append(alerts, "critical memory pressure")
	}

	if m.DiskPercent != nil {
		penalty += rampPenalty(rampDisk, *m.DiskPercent)
		if *m.DiskPercent > systemRamps[rampDisk].high {
			alerts = append(alerts, "disk almost full")
		}
	}

	if m.CPUTempC != nil {
		switch {
		case *m.CPUTempC >= tempHighC:
			penalty += tempHighStep
			alerts = append(alerts, "CPU running hot")
		case *m.CPUTempC >= tempWarnC:
			penalty += tempWarnStep
		}
	}

	if m.DiskIOMBs != nil {
		penalty += rampPenalty(rampDiskIO, *m.DiskIOMBs)
		if *m.DiskIOMBs > systemRamps[rampDiskIO].high {
			alerts = append(alerts, "heavy disk I/O")
		}
	}

	finalScore := clampScore(100 - int(math.Round(penalty)))

	message := "System running smoothly"
	if len(alerts) > 0 {
		message = "Attention: " + strings.Join(alerts, ", ")
	}
	return finalScore, message
}

// rampPenalty interpolates one metric's penalty: zero at or below the
// normal threshold, half the weight just past it rising linearly to the
// full weight at the high threshold, then proportional overflow.
func rampPenalty(ramp int, value float64) float64 {
	r := systemRamps[ramp]
	switch {
	case value <= r.normal:
		return 0
	case value <= r.high:
		return r.weight/2 + (value-r.normal)/(r.high-r.normal)*r.weight/2
	default:
		return r.weight * value / r.high
	}
}
