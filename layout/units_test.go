package layout

import (
	"math"
	"testing"
)

func TestPtToPx(t *testing.T) {
	cases := []struct {
		pt   float64
		dpi  int
		want float64
	}{
		{72, 72, 72},
		{10, 72, 10},
		{3, 300, 12.5},
		{12, 300, 50},
	}
	for _, c := range cases {
		if got := PtToPx(c.pt, c.dpi); math.Abs(got-c.want) > 1e-9 {
			t.Fatalf("PtToPx(%v, %d) = %v, want %v", c.pt, c.dpi, got, c.want)
		}
	}
}

func TestPxPtRoundTrip(t *testing.T) {
	for _, v := range []float64{0, 1, 12.5, 1203.7} {
		if got := PxToPt(PtToPx(v, 300), 300); math.Abs(got-v) > 1e-9 {
			t.Fatalf("round trip of %v gave %v", v, got)
		}
	}
}

func TestMmPxRoundTrip(t *testing.T) {
	if got := MmToPx(25.4, 300); math.Abs(got-300) > 1e-9 {
		t.Fatalf("one inch of mm at 300 dpi = %v, want 300", got)
	}
	for _, v := range []float64{0, 3.5278, 210} {
		if got := PxToMm(MmToPx(v, 300), 300); math.Abs(got-v) > 1e-9 {
			t.Fatalf("round trip of %v gave %v", v, got)
		}
	}
}

func TestCeilPx(t *testing.T) {
	cases := []struct {
		in   float64
		want int
	}{
		{-3, 0},
		{0, 0},
		{0.001, 1},
		{12, 12},
		{12.01, 13},
	}
	for _, c := range cases {
		if got := ceilPx(c.in); got != c.want {
			t.Fatalf("ceilPx(%v) = %d, want %d", c.in, got, c.want)
		}
	}
}
