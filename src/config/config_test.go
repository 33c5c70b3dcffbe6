package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeYAML(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "jcsplot.yaml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o644))
	return path
}

func TestLoadDefaults(t *testing.T) {
	tests := []struct {
		tool    string
		x       string
		columns []string
		invert  bool
	}{
		{PlotTool, "t", []string{"sg_0::sg_an_0"}, false},
		{PlotMulti, "t_s", []string{"t_ave"}, false},
		{Plotter, "timestamp", []string{"t_0", "t_1", "t_hs"}, true},
	}
	for _, tt := range tests {
		t.Run(tt.tool, func(t *testing.T) {
			cfg, err := Load(tt.tool, "", nil)
			require.NoError(t, err)
			assert.Equal(t, tt.x, cfg.X)
			assert.Equal(t, tt.columns, cfg.Columns)
			assert.Equal(t, tt.invert, cfg.Invert)
			assert.Equal(t, 1100, cfg.Width)
			assert.Equal(t, "info", cfg.LogLevel)
			assert.False(t, cfg.Dark())
		})
	}

	cfg, err := Load(Plotter, "", nil)
	require.NoError(t, err)
	assert.Equal(t, "host_th_m", cfg.Angle)
	assert.Equal(t, []string{"i_mot_abs", "i_bus"}, cfg.Currents)
	assert.Equal(t, "timestamp_ns", cfg.Timestamp)
	assert.True(t, cfg.Rebase)
}

func TestLoadFileWithToolSection(t *testing.T) {
	path := writeYAML(t, `
theme: dark
width: 1400
columns: [t_hs]
plot_multi:
  columns: [i_d, i_q]
plotter:
  invert: false
  rebase: false
`)
	multi, err := Load(PlotMulti, path, nil)
	require.NoError(t, err)
	assert.Equal(t, []string{"i_d", "i_q"}, multi.Columns)
	assert.True(t, multi.Dark())
	assert.Equal(t, 1400, multi.Width)

	rot, err := Load(Plotter, path, nil)
	require.NoError(t, err)
	assert.False(t, rot.Invert)
	assert.False(t, rot.Rebase)
	assert.True(t, multi.Rebase)
	assert.Equal(t, []string{"t_hs"}, rot.Columns, "top-level keys apply to every tool")

	single, err := Load(PlotTool, path, nil)
	require.NoError(t, err)
	assert.Equal(t, []string{"t_hs"}, single.Columns)
}

func TestLoadPrecedence(t *testing.T) {
	path := writeYAML(t, "width: 900\nlog_level: warn\ncolumns: [a]\n")
	t.Setenv("JCSPLOT_WIDTH", "1000")
	t.Setenv("JCSPLOT_COLUMNS", "t_0, t_1")
	t.Setenv("JCSPLOT_SUMMARY", "true")

	cfg, err := Load(PlotTool, path, nil)
	require.NoError(t, err)
	assert.Equal(t, 1000, cfg.Width, "env beats file")
	assert.Equal(t, []string{"t_0", "t_1"}, cfg.Columns)
	assert.True(t, cfg.Summary)
	assert.Equal(t, "warn", cfg.LogLevel)

	cfg, err = Load(PlotTool, path, map[string]interface{}{
		"width":   1200,
		"columns": []string{"mc_0::i_q"},
	})
	require.NoError(t, err)
	assert.Equal(t, 1200, cfg.Width, "flags beat env")
	assert.Equal(t, []string{"mc_0::i_q"}, cfg.Columns)
}

func TestLoadErrors(t *testing.T) {
	_, err := Load(PlotTool, filepath.Join(t.TempDir(), "missing.yaml"), nil)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "read config file")

	_, err = Load(PlotTool, writeYAML(t, "theme: purple\n"), nil)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unknown theme")

	_, err = Load(PlotTool, "", map[string]interface{}{"log_level": "chatty"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "log_level")

	_, err = Load(PlotTool, "", map[string]interface{}{"width": -1})
	require.Error(t, err)
}

func TestSplitList(t *testing.T) {
	assert.Equal(t, []string{"a", "b"}, splitList(" a,,b ,"))
	assert.Nil(t, splitList(""))
}
