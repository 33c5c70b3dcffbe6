package render

import (
	"fmt"
	"math"
	"strconv"
)

// Window charts are at least minChartWidth wide and a third as tall, within
// [minChartHeight, maxChartHeight].
const (
	minChartWidth  = 800
	minChartHeight = 280
	maxChartHeight = 520
)

// ComputeChartDimensions clamps a raw canvas width to chart width and height.
func ComputeChartDimensions(rawW int) (int, int) {
	w := rawW
	if w < minChartWidth {
		w = minChartWidth
	}
	h := w / 3
	if h < minChartHeight {
		h = minChartHeight
	}
	if h > maxChartHeight {
		h = maxChartHeight
	}
	return w, h
}

// clockSteps are the elapsed-time tick spacings in seconds once a step reaches one
// second: whole seconds, then whole minutes, then whole hours up to a day.
var clockSteps = []float64{1, 2, 5, 10, 15, 30, 60, 120, 300, 600, 900, 1800, 3600, 7200, 10800, 21600, 43200, 86400}

const secondsPerDay = 86400

// BuildTimeAxisTicks returns about n ticks from 0 to span seconds of elapsed time.
// Sub-second steps use the 1, 2, 2.5, 5 × 10^k grid; longer steps land on whole
// seconds, minutes or hours so labels read as clock durations. The last tick is
// clamped to span. A degenerate span or n gives {0, span}.
func BuildTimeAxisTicks(span float64, n int) []float64 {
	if n < 2 || !(span > 0) || math.IsInf(span, 0) {
		return []float64{0, span}
	}
	step := timeStep(span, n)
	var out []float64
	for i := 0; ; i++ {
		v := float64(i) * step
		if v > span+step*0.25 {
			break
		}
		if v >= span {
			out = append(out, round6(span))
			break
		}
		out = append(out, round6(v))
	}
	if len(out) < 2 {
		out = []float64{0, span}
	}
	return out
}

func timeStep(span float64, n int) float64 {
	raw := span / float64(n-1)
	if raw < 1 {
		return decimalStep(raw)
	}
	for _, s := range clockSteps {
		if s >= raw {
			return s
		}
	}
	return decimalStep(raw/secondsPerDay) * secondsPerDay
}

// decimalStep rounds raw up onto the 1, 2, 2.5, 5 × 10^k grid.
func decimalStep(raw float64) float64 {
	mag := pow10Floor(raw)
	for _, c := range []float64{1, 2, 2.5, 5} {
		if raw/mag <= c {
			return c * mag
		}
	}
	return 10 * mag
}

// FormatTimeTick labels an elapsed-time tick: "2.5s" below a minute, then
// "1m30s", "2m", "1h05m" or "1h02m05s".
func FormatTimeTick(sec float64) string {
	if math.IsNaN(sec) || math.IsInf(sec, 0) || sec < 0 {
		return FormatNumericTick(sec)
	}
	if sec < 60 {
		return strconv.FormatFloat(math.Round(sec*1000)/1000, 'f', -1, 64) + "s"
	}
	total := int64(math.Round(sec))
	h, m, s := total/3600, total/60%60, total%60
	switch {
	case h > 0 && s == 0:
		return fmt.Sprintf("%dh%02dm", h, m)
	case h > 0:
		return fmt.Sprintf("%dh%02dm%02ds", h, m, s)
	case s == 0:
		return fmt.Sprintf("%dm", m)
	default:
		return fmt.Sprintf("%dm%02ds", m, s)
	}
}

// pow10Floor returns 10^floor(log10(x)), 1 for non-positive x.
func pow10Floor(x float64) float64 {
	if x <= 0 {
		return 1
	}
	return math.Pow(10, math.Floor(math.Log10(x)))
}

// round6 keeps tick values stable at six decimals.
func round6(v float64) float64 { return math.Round(v*1e6) / 1e6 }

// BuildNumericTicks generates about n ticks spanning [min,max] on the same 1, 2, 2.5, 5 grid.
// The first tick may sit below min and the last above max.
func BuildNumericTicks(min, max float64, n int) []float64 {
	if n < 2 || math.IsNaN(min) || math.IsNaN(max) {
		return nil
	}
	if max <= min {
		max = min + 1
	}
	span := max - min
	mag := math.Pow(10, math.Floor(math.Log10(span/float64(n-1))))
	candidates := []float64{1, 2, 2.5, 5, 10}
	bestStep := mag
	bestScore := math.MaxFloat64
	for _, c := range candidates {
		step := c * mag
		count := math.Ceil(span/step) + 1
		if count < 2 {
			count = 2
		}
		diff := math.Abs(count - float64(n))
		if diff < bestScore {
			bestScore = diff
			bestStep = step
		}
	}
	start := math.Floor(min/bestStep) * bestStep
	end := math.Ceil(max/bestStep) * bestStep
	var out []float64
	for v := start; v <= end+bestStep*0.5; v += bestStep {
		out = append(out, round6(v))
	}
	if len(out) < 2 {
		out = []float64{min, max}
	}
	return out
}

// FormatNumericTick gives a compact label with precision chosen by magnitude.
func FormatNumericTick(v float64) string {
	av := math.Abs(v)
	switch {
	case v == 0:
		return "0"
	case av >= 100:
		return strconv.FormatFloat(math.Round(v), 'f', 0, 64)
	case av >= 10:
		return strconv.FormatFloat(v, 'f', 1, 64)
	case av >= 1:
		return strconv.FormatFloat(v, 'f', 2, 64)
	case av >= 0.01:
		return strconv.FormatFloat(v, 'f', 3, 64)
	default:
		return strconv.FormatFloat(v, 'f', 4, 64)
	}
}

// niceAxisBounds expands [min,max] by a 5% margin and rounds outwards to the span's
// order of magnitude.
func niceAxisBounds(min, max float64) (float64, float64) {
	if math.IsNaN(min) || math.IsNaN(max) {
		return min, max
	}
	if max <= min {
		max = min + 1
	}
	span := max - min
	pad := span * 0.05
	if pad <= 0 {
		pad = 1
	}
	a := min - pad
	b := max + pad
	mag := math.Pow(10, math.Floor(math.Log10(span)))
	if !math.IsInf(mag, 0) && mag > 0 {
		a = math.Floor(a/mag) * mag
		b = math.Ceil(b/mag) * mag
	}
	return a, b
}

// clipTicks keeps ticks inside [min,max] (with a little float slack).
func clipTicks(ticks []float64, min, max float64) []float64 {
	eps := (max - min) * 1e-9
	out := ticks[:0:0]
	for _, v := range ticks {
		if v >= min-eps && v <= max+eps {
			out = append(out, v)
		}
	}
	return out
}
