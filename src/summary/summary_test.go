package summary

import (
	"bytes"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCompute(t *testing.T) {
	s := Compute("i_bus", []float64{1, 2, 3, math.NaN()})
	assert.Equal(t, "i_bus", s.Column)
	assert.Equal(t, 3, s.Count)
	assert.Equal(t, 1.0, s.Min)
	assert.Equal(t, 3.0, s.Max)
	assert.Equal(t, 2.0, s.Mean)
	assert.InDelta(t, 1.0, s.StdDev, 1e-12)
}

func TestComputeDegenerate(t *testing.T) {
	empty := Compute("t_hs", nil)
	assert.Equal(t, 0, empty.Count)
	assert.True(t, math.IsNaN(empty.Mean))
	assert.True(t, math.IsNaN(empty.Min))

	one := Compute("t_hs", []float64{4})
	assert.Equal(t, 4.0, one.Mean)
	assert.True(t, math.IsNaN(one.StdDev))
}

func TestFormatFloat(t *testing.T) {
	cases := map[float64]string{
		2.0:          "2.0",
		0.125:        "0.125",
		-3:           "-3.0",
		0:            "0.0",
		1234567:      "1234567.0",
		2.5e-5:       "2.5e-05",
		1e16:         "1e+16",
		12.345678901: "12.345678901",
	}
	for in, want := range cases {
		assert.Equal(t, want, FormatFloat(in), "FormatFloat(%v)", in)
	}
	assert.Equal(t, "nan", FormatFloat(math.NaN()))
	assert.Equal(t, "inf", FormatFloat(math.Inf(1)))
	assert.Equal(t, "-inf", FormatFloat(math.Inf(-1)))
}

func TestWriteTable(t *testing.T) {
	var buf bytes.Buffer
	WriteTable(&buf, []Stats{Compute("t_0", []float64{20, 30}), Compute("t_1", nil)})
	out := buf.String()
	assert.Contains(t, out, "COLUMN")
	assert.Contains(t, out, "t_0")
	assert.Contains(t, out, "25.0")
	assert.Contains(t, out, "nan")
}
