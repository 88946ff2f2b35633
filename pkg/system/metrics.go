package system

import (
	"fmt"
	"runtime"
)

// RuntimeStats is the process view the liveness probe reports
type RuntimeStats struct {
	HeapAlloc  string `json:"heap_alloc"`
	HeapInuse  string `json:"heap_inuse"`
	SystemMem  string `json:"system_mem"`
	GCCycles   uint32 `json:"gc_cycles"`
	Goroutines int    `json:"goroutines"`
}

// ReadRuntimeStats samples the Go runtime
func ReadRuntimeStats() RuntimeStats {
	var m runtime.MemStats
	runtime.ReadMemStats(&m)

	return RuntimeStats{
		HeapAlloc:  FormatBytes(m.HeapAlloc),
		HeapInuse:  FormatBytes(m.HeapInuse),
		SystemMem:  FormatBytes(m.Sys),
		GCCycles:   m.NumGC,
		Goroutines: runtime.NumGoroutine(),
	}
}

// FormatBytes renders a byte count as B, KB, MB or GB with one decimal
func FormatBytes(bytes uint64) string {
	const (
		KB = 1024
		MB = KB * 1024
		GB = MB * 1024
	)

	switch {
	case bytes >= GB:
		return fmt.Sprintf("%.1fGB", float64(bytes)/GB)
	case bytes >= MB:
		return fmt.Sprintf("%.1fMB", float64(bytes)/MB)
	case bytes >= KB:
		return fmt.Sprintf("%.1fKB", float64(bytes)/KB)
	default:
		return fmt.Sprintf("%dB", bytes)
	}
}
