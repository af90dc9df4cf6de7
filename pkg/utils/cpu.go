package utils

import "github.com/shirou/gopsutil/cpu"

// CheckCPUUsage reports whether current host CPU usage is at or below the
// given limit. A failed or empty reading opens the gate, so workers never
// stall on a broken measurement.
func CheckCPUUsage(maxCPUUsage float64) (bool, float64) {
	usage, err := cpu.Percent(0, false)
	if err != nil || len(usage) == 0 {
		return true, 0
	}
	return usage[0] <= maxCPUUsage, usage[0]
}
