package darkness

import "testing"

func TestFlatFloorsAtZero(t *testing.T) {
	f := Flat[float64]{Delta: 1.0}
	if got := f.Compute(0.5); got != 0 {
		t.Fatalf("expected floor at 0, got %v", got)
	}
	if got := f.Compute(2.0); got != 1.0 {
		t.Fatalf("expected 1.0, got %v", got)
	}
}

func TestPercentageScales(t *testing.T) {
	p := Percentage[float64]{Rho: 0.5}
	if got := p.Compute(4.0); got != 2.0 {
		t.Fatalf("expected 2.0, got %v", got)
	}
}
