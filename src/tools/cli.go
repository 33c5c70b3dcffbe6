package tools

import (
	"fmt"
	"strings"

	"github.com/pkg/errors"
	"github.com/urfave/cli/v2"

	"github.com/Arbite-Robotics/jcs-applications/src/config"
	"github.com/Arbite-Robotics/jcs-applications/src/logging"
	"github.com/Arbite-Robotics/jcs-applications/src/render"
	"github.com/Arbite-Robotics/jcs-applications/src/viewer"
)

// MissingPathMessage is printed when a tool is not given its path argument.
const MissingPathMessage = "Missing path to data"

// ExitMissingPath is the exit status for a bad path argument.
const ExitMissingPath = 2

// PlotFunc is one of PlotSingle, PlotMulti or PlotRotating.
type PlotFunc func(env Env, cfg *config.Config, path string) error

// CommonFlags are accepted by every tool.
func CommonFlags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{Name: "config", Usage: "load settings from YAML `FILE`", EnvVars: []string{"JCSPLOT_CONFIG"}},
		&cli.StringFlag{Name: "out", Aliases: []string{"o"}, Usage: "write the chart to `FILE` (.png .svg .pdf .eps .tif .jpg) instead of opening a window"},
		&cli.IntFlag{Name: "width", Usage: "chart width in pixels"},
		&cli.IntFlag{Name: "height", Usage: "chart height in pixels (default: width/3, clamped)"},
		&cli.StringFlag{Name: "title", Usage: "chart title"},
		&cli.StringFlag{Name: "theme", Usage: "light or dark"},
		&cli.BoolFlag{Name: "summary", Usage: "print count/min/max/mean/std of every plotted series"},
		&cli.BoolFlag{Name: "hint", Usage: "stamp the summary onto the chart"},
		&cli.BoolFlag{Name: "watch", Usage: "reload the chart when the input files change"},
		&cli.StringFlag{Name: "log-level", Usage: "debug, info, warn or error"},
	}
}

// ColumnFlag selects the plotted columns.
func ColumnFlag(usage string) cli.Flag {
	return &cli.StringSliceFlag{Name: "column", Aliases: []string{"c"}, Usage: usage}
}

// flagKeys maps flag names onto configuration keys where they differ.
var flagKeys = map[string]string{
	"column":    "columns",
	"log-level": "log_level",
}

// negatedFlags are boolean flags that switch a default-on key off.
var negatedFlags = map[string]string{
	"no-invert":     "invert",
	"absolute-time": "rebase",
}

// extraArgsIgnored lists tools that plot from the first argument and ignore the rest,
// so an unquoted shell glob still plots.
var extraArgsIgnored = map[string]bool{config.PlotMulti: true}

// Overrides collects explicitly set flags as configuration keys.
func Overrides(c *cli.Context) map[string]interface{} {
	out := map[string]interface{}{}
	for _, f := range c.App.Flags {
		name := f.Names()[0]
		if name == "config" || !c.IsSet(name) {
			continue
		}
		key := name
		if k, ok := flagKeys[name]; ok {
			key = k
		}
		switch f.(type) {
		case *cli.StringFlag:
			out[key] = c.String(name)
		case *cli.IntFlag:
			out[key] = c.Int(name)
		case *cli.StringSliceFlag:
			out[key] = c.StringSlice(name)
		case *cli.BoolFlag:
			if k, ok := negatedFlags[name]; ok {
				out[k] = !c.Bool(name)
				continue
			}
			out[key] = c.Bool(name)
		}
	}
	return out
}

// DisplayFor picks a file writer when an output path is configured and a window otherwise.
func DisplayFor(cfg *config.Config) Display {
	opts := render.Options{Width: cfg.Width, Height: cfg.Height, Dark: cfg.Dark()}
	if cfg.Out != "" {
		return FileDisplay{Path: cfg.Out, Options: opts}
	}
	return viewer.New(opts, cfg.Watch)
}

// Action wraps plot as a cli action for tool.
func Action(tool string, plot PlotFunc) cli.ActionFunc {
	return func(c *cli.Context) error {
		if err := checkArgs(tool, c.Args()); err != nil {
			return err
		}
		cfg, err := config.Load(tool, c.String("config"), Overrides(c))
		if err != nil {
			return err
		}
		logging.SetLogLevel(cfg.LogLevel)
		if cfg.Out != "" && !render.SupportedFormat(cfg.Out) {
			return errors.Errorf("--out %s: unsupported format (want one of %v)", cfg.Out, render.Formats)
		}
		env := Env{Stdout: c.App.Writer, Display: DisplayFor(cfg)}
		return plot(env, cfg, c.Args().First())
	}
}

// checkArgs requires the path argument. Flag parsing stops at the first positional
// argument, so a flag after the path is reported instead of being taken as a path.
func checkArgs(tool string, args cli.Args) error {
	if args.Len() == 0 {
		return cli.Exit(MissingPathMessage, ExitMissingPath)
	}
	for _, a := range args.Tail() {
		if strings.HasPrefix(a, "-") && a != "-" {
			return cli.Exit(fmt.Sprintf("flags must come before the path: %s after %s", a, args.First()), ExitMissingPath)
		}
	}
	if args.Len() > 1 {
		if !extraArgsIgnored[tool] {
			return cli.Exit(MissingPathMessage, ExitMissingPath)
		}
		logging.Warnf("using %s, ignoring %d extra argument(s)", args.First(), args.Len()-1)
	}
	return nil
}
