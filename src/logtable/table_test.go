package logtable

import (
	"math"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeCSV(t *testing.T, dir, name, content string) string {
	t.Helper()
	p := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(p, []byte(content), 0o644))
	return p
}

func TestLoadRecorderFile(t *testing.T) {
	dir := t.TempDir()
	p := writeCSV(t, dir, "data_rotate.csv",
		"timestamp_ns,host_i_d,host_th_m,t_0\n"+
			"0.00000000,5.00000000,0.10000000,25.50000000\n"+
			"1000000.00000000,5.00000000,0.20000000,25.75000000\n")

	tab, err := Load(p)
	require.NoError(t, err)
	assert.Equal(t, p, tab.Source())
	assert.Equal(t, 2, tab.Len())
	assert.Equal(t, []string{"timestamp_ns", "host_i_d", "host_th_m", "t_0"}, tab.Names())

	ts, err := tab.Column("timestamp_ns")
	require.NoError(t, err)
	assert.Equal(t, []float64{0, 1e6}, ts)

	t0, err := tab.Column("t_0")
	require.NoError(t, err)
	assert.Equal(t, []float64{25.5, 25.75}, t0)
}

func TestReadOscilloscopeHeaderWithNamespacedColumns(t *testing.T) {
	tab, err := Read(strings.NewReader("t,mc_0::i_q,sg_0::sg_an_0\n0,1.5,-0.25\n0.001,1.6,-0.5\n"))
	require.NoError(t, err)
	assert.True(t, tab.Has("mc_0::i_q"))
	sg, err := tab.Column("sg_0::sg_an_0")
	require.NoError(t, err)
	assert.Equal(t, []float64{-0.25, -0.5}, sg)
}

func TestReadEmptyCellIsNaN(t *testing.T) {
	tab, err := Read(strings.NewReader("a,b\n1,\n2,3\n"))
	require.NoError(t, err)
	b, err := tab.Column("b")
	require.NoError(t, err)
	require.Len(t, b, 2)
	assert.True(t, math.IsNaN(b[0]))
	assert.Equal(t, 3.0, b[1])
}

func TestReadErrors(t *testing.T) {
	_, err := Read(strings.NewReader(""))
	assert.Error(t, err)

	_, err = Read(strings.NewReader("a,b\n1,x\n"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), `line 2 column "b"`)

	_, err = Read(strings.NewReader("a,b\n1,2,3\n"))
	assert.Error(t, err, "ragged rows must be rejected")
}

func TestHeaderOnlyIsEmptyTable(t *testing.T) {
	tab, err := Read(strings.NewReader("t_ave,timestamp_ns\n"))
	require.NoError(t, err)
	assert.Equal(t, 0, tab.Len())
	col, err := tab.Column("t_ave")
	require.NoError(t, err)
	assert.Empty(t, col)
	require.NoError(t, tab.Set("t_s", nil))
	assert.True(t, tab.Has("t_s"))
}

func TestMissingColumn(t *testing.T) {
	tab, err := Read(strings.NewReader("a\n1\n"))
	require.NoError(t, err)
	_, err = tab.Column("i_bus")
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrMissingColumn))
	assert.Contains(t, err.Error(), `"i_bus"`)
}

func TestSetAddsAndReplaces(t *testing.T) {
	tab, err := Read(strings.NewReader("a,b\n1,2\n3,4\n"))
	require.NoError(t, err)

	require.NoError(t, tab.Set("c", []float64{10, 20}))
	assert.Equal(t, []string{"a", "b", "c"}, tab.Names())
	a, _ := tab.Column("a")
	c, _ := tab.Column("c")
	assert.Equal(t, []float64{1, 3}, a)
	assert.Equal(t, []float64{10, 20}, c)

	require.NoError(t, tab.Set("a", []float64{-1, -3}))
	a, _ = tab.Column("a")
	assert.Equal(t, []float64{-1, -3}, a)

	assert.Error(t, tab.Set("d", []float64{1}))
}

func TestColumnReturnsCopy(t *testing.T) {
	tab, err := Read(strings.NewReader("a\n1\n"))
	require.NoError(t, err)
	a, _ := tab.Column("a")
	a[0] = 99
	again, _ := tab.Column("a")
	assert.Equal(t, 1.0, again[0])
}

func TestHeaderNamesBlankAndDuplicate(t *testing.T) {
	assert.Equal(t, []string{"x", "Unnamed: 1", "x.1", "y"}, headerNames([]string{"x", " ", "x", " y"}))
}

func TestGlobSortedAndEmpty(t *testing.T) {
	dir := t.TempDir()
	writeCSV(t, dir, "run_b.csv", "a\n1\n")
	writeCSV(t, dir, "run_a.csv", "a\n1\n")
	writeCSV(t, dir, "run_c.txt", "a\n1\n")
	writeCSV(t, dir, "other.csv", "a\n1\n")

	got, err := Glob(filepath.Join(dir, "run_"))
	require.NoError(t, err)
	assert.Equal(t, []string{filepath.Join(dir, "run_a.csv"), filepath.Join(dir, "run_b.csv")}, got)

	none, err := Glob(filepath.Join(dir, "nothing_"))
	require.NoError(t, err)
	assert.Empty(t, none)
}

func TestLoadAllStopsOnError(t *testing.T) {
	dir := t.TempDir()
	good := writeCSV(t, dir, "good.csv", "a\n1\n")
	_, err := LoadAll([]string{good, filepath.Join(dir, "missing.csv")})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "missing.csv")

	tabs, err := LoadAll([]string{good, good})
	require.NoError(t, err)
	assert.Len(t, tabs, 2)
}
