package render

import (
	"math"
	"testing"
)

func TestComputeChartDimensions(t *testing.T) {
	cases := []struct {
		in    int
		wantW int
	}{
		{0, 800},
		{100, 800},
		{799, 800},
		{800, 800},
		{1600, 1600},
	}
	for _, c := range cases {
		w, h := ComputeChartDimensions(c.in)
		if w != c.wantW {
			t.Fatalf("input %d => width %d want %d", c.in, w, c.wantW)
		}
		if h < 280 || h > 520 {
			t.Fatalf("height clamp violated for input %d => h=%d", c.in, h)
		}
	}
}

func TestBuildTimeAxisTicks(t *testing.T) {
	ticks := BuildTimeAxisTicks(10, 6)
	if len(ticks) < 2 {
		t.Fatalf("expected at least 2 ticks got %v", ticks)
	}
	if ticks[0] != 0 {
		t.Fatalf("first tick should be 0 got %v", ticks[0])
	}
	if last := ticks[len(ticks)-1]; last != 10 {
		t.Fatalf("last tick should equal domain (10) got %v (%v)", last, ticks)
	}
	tiny := BuildTimeAxisTicks(0.05, 5)
	if tiny[0] != 0 {
		t.Fatalf("tiny domain first tick !=0: %v", tiny)
	}
	if last := tiny[len(tiny)-1]; math.Abs(last-0.05) > 0.011 {
		t.Fatalf("tiny domain last tick not near 0.05 (got %v ticks=%v)", last, tiny)
	}
	invalid := BuildTimeAxisTicks(5, 1)
	if len(invalid) != 2 || invalid[0] != 0 || invalid[1] != 5 {
		t.Fatalf("fallback for invalid n failed: %v", invalid)
	}
}

func TestBuildNumericTicksAndFormat(t *testing.T) {
	cases := []struct {
		min, max float64
		n        int
	}{
		{0, 100, 6},
		{0, 1, 5},
		{5, 5.2, 4},
		{-10, 10, 7},
	}
	for _, c := range cases {
		vals := BuildNumericTicks(c.min, c.max, c.n)
		if len(vals) < 2 {
			t.Fatalf("expected >=2 ticks for %#v got %v", c, vals)
		}
		if vals[0] > c.min && math.Abs(vals[0]-c.min) > 1e-6 {
			t.Fatalf("first tick %v should not exceed min %v", vals[0], c.min)
		}
		if last := vals[len(vals)-1]; last < c.max && math.Abs(last-c.max) > 1e-6 {
			t.Fatalf("last tick %v should not be below max %v (vals=%v)", last, c.max, vals)
		}
	}

	if got := FormatNumericTick(123.4); got != "123" {
		t.Fatalf("format 123.4 => %q want 123", got)
	}
	if got := FormatNumericTick(12.34); got != "12.3" {
		t.Fatalf("format 12.34 => %q want 12.3", got)
	}
	if got := FormatNumericTick(1.234); got != "1.23" {
		t.Fatalf("format 1.234 => %q want 1.23", got)
	}
	if got := FormatNumericTick(0.1234); got != "0.123" {
		t.Fatalf("format 0.1234 => %q want 0.123", got)
	}
	if got := FormatNumericTick(0.001234); got != "0.0012" {
		t.Fatalf("format 0.001234 => %q want 0.0012", got)
	}
}

func TestNiceAxisBounds(t *testing.T) {
	a, b := niceAxisBounds(3, 97)
	if a > 3 || b < 97 {
		t.Fatalf("bounds [%v,%v] do not contain [3,97]", a, b)
	}
	a, b = niceAxisBounds(5, 5)
	if !(a < 5 && b > 5) {
		t.Fatalf("flat data should get a non-empty range, got [%v,%v]", a, b)
	}
}

func TestClipTicks(t *testing.T) {
	got := clipTicks([]float64{-5, 0, 5, 10, 15}, 0, 10)
	if len(got) != 3 || got[0] != 0 || got[2] != 10 {
		t.Fatalf("clipTicks => %v", got)
	}
}

func TestBuildTimeAxisTicksClockSteps(t *testing.T) {
	cases := []struct {
		span float64
		n    int
		want []float64
	}{
		{45, 4, []float64{0, 15, 30, 45}},
		{600, 6, []float64{0, 120, 240, 360, 480, 600}},
		{7200, 5, []float64{0, 1800, 3600, 5400, 7200}},
		// hourly steps past 2h10m stop at the last whole hour
		{7800, 5, []float64{0, 3600, 7200}},
	}
	for _, c := range cases {
		got := BuildTimeAxisTicks(c.span, c.n)
		if len(got) != len(c.want) {
			t.Fatalf("span %v n %d => %v want %v", c.span, c.n, got, c.want)
		}
		for i := range got {
			if got[i] != c.want[i] {
				t.Fatalf("span %v n %d => %v want %v", c.span, c.n, got, c.want)
			}
		}
	}
	if got := BuildTimeAxisTicks(math.NaN(), 5); len(got) != 2 {
		t.Fatalf("NaN span should fall back to two ticks: %v", got)
	}
}

func TestFormatTimeTick(t *testing.T) {
	cases := map[float64]string{
		0:    "0s",
		0.02: "0.02s",
		2.5:  "2.5s",
		45:   "45s",
		90:   "1m30s",
		120:  "2m",
		3600: "1h00m",
		3900: "1h05m",
		3725: "1h02m05s",
	}
	for in, want := range cases {
		if got := FormatTimeTick(in); got != want {
			t.Fatalf("FormatTimeTick(%v) = %q want %q", in, got, want)
		}
	}
}
