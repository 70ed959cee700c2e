package imageio

import "testing"

func TestSRGBToLinearEndpoints(t *testing.T) {
	if got := sRGBToLinear[float64](0); got != 0 {
		t.Fatalf("expected 0 at black, got %v", got)
	}
	if got := sRGBToLinear[float64](255); got < 0.99 || got > 1.0 {
		t.Fatalf("expected ~1.0 at white, got %v", got)
	}
}

func TestSRGBToLinearMonotonic(t *testing.T) {
	prev := sRGBToLinear[float64](0)
	for c := 1; c <= 255; c++ {
		cur := sRGBToLinear[float64](uint8(c))
		if cur < prev {
			t.Fatalf("expected monotonic increase, got %v after %v at channel %d", cur, prev, c)
		}
		prev = cur
	}
}

func TestColorLinearMatchesChannelConversion(t *testing.T) {
	p := ColorLinear[float64](255, 0, 0)
	if p.R < 0.99 || p.G != 0 || p.B != 0 {
		t.Fatalf("unexpected linear color: %+v", p)
	}
}
