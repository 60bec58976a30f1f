package scan

// MemoryPressure classifies how hard the kernel is working to keep
// memory available.
type MemoryPressure string

const (
	PressureNormal   MemoryPressure = "normal"
	PressureWarning  MemoryPressure = "warning"
	PressureCritical MemoryPressure = "critical"
)

// SystemMetrics is one snapshot of live system readings. Pointer fields
// are absent when their sampler has no data; an absent metric is never
// an error, it simply contributes no penalty.
type SystemMetrics struct {
	CPUPercent     float64        `json:"cpu_percent"`
	MemoryPercent  float64        `json:"memory_percent"`
	MemoryPressure MemoryPressure `json:"memory_pressure"`
	DiskPercent    *float64       `json:"disk_percent,omitempty"`
	CPUTempC       *float64       `json:"cpu_temp_c,omitempty"`
	DiskIOMBs      *float64       `json:"disk_io_mbs,omitempty"`
}
