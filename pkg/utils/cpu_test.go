package utils

import "testing"

func TestCheckCPUUsageFailsOpen(t *testing.T) {
	// Usage can never exceed 100, and a failed reading also opens the gate,
	// so a limit of 100 must always pass.
	ok, usage := CheckCPUUsage(100)
	if !ok {
		t.Fatalf("gate closed at limit 100, usage %.1f", usage)
	}
	if usage < 0 || usage > 100 {
		t.Errorf("usage = %.1f, want within [0,100]", usage)
	}
}
