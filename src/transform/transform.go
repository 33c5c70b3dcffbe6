// Package transform derives columns from rig logs: elapsed time from nanosecond
// timestamps, angle normalisation into [0, 2π) and simple means.
package transform

import (
	"math"

	"github.com/montanaflynn/stats"
	"gonum.org/v1/gonum/floats"
)

const (
	// TwoPi is one full revolution in radians.
	TwoPi = 2.0 * math.Pi
	// NanosPerSecond converts recorder timestamps to seconds.
	NanosPerSecond = 1e9
)

// ElapsedSeconds rebases nanosecond timestamps on the first row and converts to seconds.
func ElapsedSeconds(ns []float64) []float64 {
	out := make([]float64, len(ns))
	if len(ns) == 0 {
		return out
	}
	copy(out, ns)
	floats.AddConst(-ns[0], out)
	for i := range out {
		out[i] /= NanosPerSecond
	}
	return out
}

// Seconds converts nanoseconds to seconds without rebasing.
func Seconds(ns []float64) []float64 {
	out := make([]float64, len(ns))
	for i, v := range ns {
		out[i] = v / NanosPerSecond
	}
	return out
}

// NormaliseAngle2Pi reduces angle into [0, 2π) by repeatedly adding or subtracting 2π.
//
// Once a step no longer changes the value (|angle| far beyond 2^53 revolutions) the
// reduction finishes with math.Mod instead of spinning forever. NaN and ±Inf have no
// meaningful angle and return NaN.
func NormaliseAngle2Pi(angle float64) float64 {
	if math.IsNaN(angle) || math.IsInf(angle, 0) {
		return math.NaN()
	}
	for angle < 0 || angle >= TwoPi {
		for angle >= TwoPi {
			next := angle - TwoPi
			if next == angle {
				return modTwoPi(angle)
			}
			angle = next
		}
		for angle < 0 {
			next := angle + TwoPi
			if next == angle {
				return modTwoPi(angle)
			}
			// tiny negatives can round up to exactly 2π; the outer loop takes that back to 0
			angle = next
		}
	}
	return angle
}

func modTwoPi(angle float64) float64 {
	m := math.Mod(angle, TwoPi)
	if m < 0 {
		m += TwoPi
	}
	if m >= TwoPi {
		m = 0
	}
	return m
}

// NormaliseAngles applies NormaliseAngle2Pi to every value.
func NormaliseAngles(angles []float64) []float64 {
	out := make([]float64, len(angles))
	for i, a := range angles {
		out[i] = NormaliseAngle2Pi(a)
	}
	return out
}

// Invert2Pi mirrors normalised angles: 2π − angle.
func Invert2Pi(angles []float64) []float64 {
	out := make([]float64, len(angles))
	copy(out, angles)
	floats.Scale(-1, out)
	floats.AddConst(TwoPi, out)
	return out
}

// Mean averages the non-NaN values. It returns NaN when there are none.
func Mean(values []float64) float64 {
	data := make(stats.Float64Data, 0, len(values))
	for _, v := range values {
		if !math.IsNaN(v) {
			data = append(data, v)
		}
	}
	m, err := stats.Mean(data)
	if err != nil {
		return math.NaN()
	}
	return m
}
