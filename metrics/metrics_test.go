package metrics

import "testing"

func TestRegistryCountersAreIndependentPerInstance(t *testing.T) {
	r1 := NewRegistry()
	r2 := NewRegistry()

	r1.Reorganizations.Inc(1)
	r1.BlocksProcessed.Inc(3)

	if got := r1.Reorganizations.Count(); got != 1 {
		t.Fatalf("r1.Reorganizations = %d, want 1", got)
	}
	if got := r2.Reorganizations.Count(); got != 0 {
		t.Fatalf("r2.Reorganizations = %d, want 0 (registries must not share state)", got)
	}
	if got := r1.BlocksProcessed.Count(); got != 3 {
		t.Fatalf("r1.BlocksProcessed = %d, want 3", got)
	}
}

func TestRegistryEachVisitsRegisteredMetrics(t *testing.T) {
	r := NewRegistry()
	seen := make(map[string]bool)
	r.Each(func(name string, _ any) { seen[name] = true })

	for _, name := range []string{"chain/reorgs", "chain/blocks/processed", "chain/blocks/processingTime"} {
		if !seen[name] {
			t.Fatalf("expected Each to visit %q", name)
		}
	}
}
