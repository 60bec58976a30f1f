package sysmetrics

import (
	"testing"

	"github.com/shirou/gopsutil/v3/host"
	"github.com/stretchr/testify/assert"

	"github.com/tonicapp/tonic/internal/scan"
)

func TestClassifyPressure(t *testing.T) {
	tests := []struct {
		percent float64
		want    scan.MemoryPressure
	}{
		{0, scan.PressureNormal},
		{84.9, scan.PressureNormal},
		{85, scan.PressureWarning},
		{94.9, scan.PressureWarning},
		{95, scan.PressureCritical},
		{100, scan.PressureCritical},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, classifyPressure(tt.percent), "at %.1f%%", tt.percent)
	}
}

func TestCPUTemperaturePicksHottestCPUSensor(t *testing.T) {
	temps := []host.TemperatureStat{
		{SensorKey: "acpitz", Temperature: 90}, // not CPU-related
		{SensorKey: "coretemp_core_0", Temperature: 62},
		{SensorKey: "coretemp_core_1", Temperature: 68},
		{SensorKey: "k10temp_tdie", Temperature: 0}, // bogus reading
	}

	got, ok := cpuTemperature(temps)
	assert.True(t, ok)
	assert.Equal(t, 68.0, got)
}

func TestCPUTemperatureAbsent(t *testing.T) {
	_, ok := cpuTemperature(nil)
	assert.False(t, ok)

	_, ok = cpuTemperature([]host.TemperatureStat{{SensorKey: "ambient", Temperature: 40}})
	assert.False(t, ok)
}
