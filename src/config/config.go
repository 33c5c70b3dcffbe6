// Package config loads plotter settings layered as defaults, YAML file,
// JCSPLOT_ environment variables and finally command-line flags.
package config

import (
	"strings"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/confmap"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
	"github.com/pkg/errors"

	"github.com/Arbite-Robotics/jcs-applications/src/logging"
)

// Tool names. A YAML file may carry a section per tool.
const (
	PlotTool  = "plot_tool"
	PlotMulti = "plot_multi"
	Plotter   = "plotter"
)

// Tools lists every tool name.
var Tools = []string{PlotTool, PlotMulti, Plotter}

// EnvPrefix marks environment variables read as configuration,
// e.g. JCSPLOT_LOG_LEVEL=debug or JCSPLOT_COLUMNS=t_0,t_hs.
const EnvPrefix = "JCSPLOT_"

// Config is the merged configuration for one tool run.
type Config struct {
	// X is the x-axis column (plot_tool, plot_multi) or derived column name (plotter).
	X       string   `koanf:"x"`
	Columns []string `koanf:"columns"`
	// Timestamp is the nanosecond column elapsed time is derived from.
	Timestamp string `koanf:"timestamp"`
	// Angle is the column normalised into [0, 2π) by plotter.
	Angle string `koanf:"angle"`
	// Currents are the columns whose means plotter prints, motor then bus.
	Currents []string `koanf:"currents"`
	Invert   bool     `koanf:"invert"`
	// Rebase starts derived time at zero on the first row; false keeps recorder seconds.
	Rebase bool `koanf:"rebase"`

	Title    string `koanf:"title"`
	Width    int    `koanf:"width"`
	Height   int    `koanf:"height"`
	Theme    string `koanf:"theme"`
	Out      string `koanf:"out"`
	Summary  bool   `koanf:"summary"`
	Hint     bool   `koanf:"hint"`
	Watch    bool   `koanf:"watch"`
	LogLevel string `koanf:"log_level"`
}

// Dark reports whether the dark theme was selected.
func (c *Config) Dark() bool { return strings.EqualFold(c.Theme, "dark") }

// Defaults returns the built-in settings for tool.
func Defaults(tool string) map[string]interface{} {
	d := map[string]interface{}{
		"width":     1100,
		"height":    0,
		"theme":     "light",
		"log_level": "info",
		"summary":   false,
		"hint":      false,
		"watch":     false,
		"invert":    false,
		"rebase":    true,
	}
	switch tool {
	case PlotTool:
		d["x"] = "t"
		d["columns"] = []string{"sg_0::sg_an_0"}
	case PlotMulti:
		d["x"] = "t_s"
		d["timestamp"] = "timestamp_ns"
		d["columns"] = []string{"t_ave"}
	case Plotter:
		d["x"] = "timestamp"
		d["timestamp"] = "timestamp_ns"
		d["angle"] = "host_th_m"
		d["invert"] = true
		d["currents"] = []string{"i_mot_abs", "i_bus"}
		d["columns"] = []string{"t_0", "t_1", "t_hs"}
	}
	return d
}

// listKeys are split on commas when they come from the environment.
var listKeys = map[string]bool{"columns": true, "currents": true}

// Load builds the configuration for tool.
// Precedence (highest to lowest): overrides > env vars > config file tool section >
// config file top level > defaults.
func Load(tool, cfgFile string, overrides map[string]interface{}) (*Config, error) {
	k := koanf.New(".")

	if err := k.Load(confmap.Provider(Defaults(tool), "."), nil); err != nil {
		return nil, errors.Wrap(err, "load defaults")
	}

	if cfgFile != "" {
		f := koanf.New(".")
		if err := f.Load(file.Provider(cfgFile), yaml.Parser()); err != nil {
			return nil, errors.Wrapf(err, "read config file %s", cfgFile)
		}
		section := f.Cut(tool)
		for _, t := range Tools {
			f.Delete(t)
		}
		if err := k.Merge(f); err != nil {
			return nil, errors.Wrapf(err, "merge config file %s", cfgFile)
		}
		if err := k.Merge(section); err != nil {
			return nil, errors.Wrapf(err, "merge %s section of %s", tool, cfgFile)
		}
		logging.Debugf("config file %s loaded", cfgFile)
	}

	// JCSPLOT_LOG_LEVEL -> log_level
	if err := k.Load(env.ProviderWithValue(EnvPrefix, ".", func(key, value string) (string, interface{}) {
		key = strings.ToLower(strings.TrimPrefix(key, EnvPrefix))
		if listKeys[key] {
			return key, splitList(value)
		}
		return key, value
	}), nil); err != nil {
		return nil, errors.Wrap(err, "load env vars")
	}

	if len(overrides) > 0 {
		if err := k.Load(confmap.Provider(overrides, "."), nil); err != nil {
			return nil, errors.Wrap(err, "load flags")
		}
	}

	var cfg Config
	if err := k.Unmarshal("", &cfg); err != nil {
		return nil, errors.Wrap(err, "decode config")
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func splitList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if p := strings.TrimSpace(part); p != "" {
			out = append(out, p)
		}
	}
	return out
}

// Validate checks values that would otherwise fail late, after files were loaded.
func (c *Config) Validate() error {
	if len(c.Columns) == 0 {
		return errors.New("columns: at least one column is required")
	}
	if c.Width < 0 || c.Height < 0 {
		return errors.Errorf("width/height must not be negative (got %dx%d)", c.Width, c.Height)
	}
	switch strings.ToLower(c.Theme) {
	case "", "light", "dark":
	default:
		return errors.Errorf("theme: unknown theme %q (want light or dark)", c.Theme)
	}
	if !logging.ValidLevel(c.LogLevel) {
		return errors.Errorf("log_level: unknown level %q", c.LogLevel)
	}
	return nil
}
