// Package tools holds the three rig-log plotting pipelines: load, derive, summarise,
// build a figure, then hand it to a Display.
package tools

import (
	"fmt"
	"io"
	"path/filepath"
	"strings"

	"github.com/Arbite-Robotics/jcs-applications/src/config"
	"github.com/Arbite-Robotics/jcs-applications/src/logging"
	"github.com/Arbite-Robotics/jcs-applications/src/logtable"
	"github.com/Arbite-Robotics/jcs-applications/src/render"
	"github.com/Arbite-Robotics/jcs-applications/src/summary"
	"github.com/Arbite-Robotics/jcs-applications/src/transform"
	"github.com/Arbite-Robotics/jcs-applications/src/viewer"
)

// Display shows a finished figure. The viewer window blocks until closed;
// FileDisplay writes the figure and returns.
type Display interface {
	Show(fig render.Figure, src viewer.Source) error
}

// FileDisplay renders figures to Path, format chosen by extension.
type FileDisplay struct {
	Path    string
	Options render.Options
}

func (d FileDisplay) Show(fig render.Figure, _ viewer.Source) error {
	if err := render.Export(d.Path, fig, d.Options); err != nil {
		return err
	}
	logging.Infof("wrote %s", d.Path)
	return nil
}

// Env is where a tool writes its output.
type Env struct {
	// Stdout receives the progress lines and summary tables.
	Stdout  io.Writer
	Display Display
}

// builder produces a figure and its per-series statistics. Progress lines go to
// out, which is io.Discard on reloads.
type builder func(out io.Writer) (render.Figure, []summary.Stats, error)

func (e Env) run(cfg *config.Config, src viewer.Source, build builder) error {
	fig, stats, err := build(e.Stdout)
	if err != nil {
		return err
	}
	if cfg.Summary {
		summary.WriteTable(e.Stdout, stats)
	}
	src.Reload = func() (render.Figure, error) {
		fig, _, err := build(io.Discard)
		return fig, err
	}
	return e.Display.Show(fig, src)
}

func title(cfg *config.Config, fallback string) string {
	if cfg.Title != "" {
		return cfg.Title
	}
	return fallback
}

func yLabel(columns []string) string {
	if len(columns) == 1 {
		return columns[0]
	}
	return ""
}

// hintLines summarises each series on one line each, after any extra lines.
func hintLines(extra []string, stats []summary.Stats) []string {
	lines := append([]string{}, extra...)
	for _, s := range stats {
		lines = append(lines, fmt.Sprintf("%s: mean %s  min %s  max %s",
			s.Column, summary.FormatFloat(s.Mean), summary.FormatFloat(s.Min), summary.FormatFloat(s.Max)))
	}
	return lines
}

// PlotSingle plots cfg.Columns of one CSV against cfg.X.
func PlotSingle(env Env, cfg *config.Config, path string) error {
	fmt.Fprintf(env.Stdout, "data %s\n", path)
	build := func(io.Writer) (render.Figure, []summary.Stats, error) {
		t, err := logtable.Load(path)
		if err != nil {
			return render.Figure{}, nil, err
		}
		x, err := t.Column(cfg.X)
		if err != nil {
			return render.Figure{}, nil, err
		}
		fig := render.Figure{Title: title(cfg, filepath.Base(path)), XLabel: cfg.X, YLabel: yLabel(cfg.Columns)}
		var stats []summary.Stats
		for _, c := range cfg.Columns {
			y, err := t.Column(c)
			if err != nil {
				return render.Figure{}, nil, err
			}
			fig.Series = append(fig.Series, render.Series{Name: c, X: x, Y: y})
			stats = append(stats, summary.Compute(c, y))
		}
		if cfg.Hint {
			fig.Hint = hintLines(nil, stats)
		}
		return fig, stats, nil
	}
	return env.run(cfg, viewer.Source{Label: path, Watch: []string{path}}, build)
}

// PlotMulti overlays cfg.Columns from every file matching prefix*.csv against
// elapsed seconds, one series per file and column, in sorted path order.
// No matching files gives an empty chart.
func PlotMulti(env Env, cfg *config.Config, prefix string) error {
	pattern := prefix + "*.csv"
	build := func(out io.Writer) (render.Figure, []summary.Stats, error) {
		paths, err := logtable.Glob(prefix)
		if err != nil {
			return render.Figure{}, nil, err
		}
		if len(paths) == 0 {
			logging.Warnf("no files match %s", pattern)
		}
		fig := render.Figure{Title: title(cfg, pattern), XLabel: cfg.X, YLabel: yLabel(cfg.Columns)}
		var stats []summary.Stats
		for _, p := range paths {
			fmt.Fprintln(out, p)
		}
		tables, err := logtable.LoadAll(paths)
		if err != nil {
			return render.Figure{}, nil, err
		}
		for i, t := range tables {
			if err := deriveElapsed(t, cfg.Timestamp, cfg.X, cfg.Rebase); err != nil {
				return render.Figure{}, nil, err
			}
			x, err := t.Column(cfg.X)
			if err != nil {
				return render.Figure{}, nil, err
			}
			base := filepath.Base(paths[i])
			for _, c := range cfg.Columns {
				y, err := t.Column(c)
				if err != nil {
					return render.Figure{}, nil, err
				}
				name := base
				if len(cfg.Columns) > 1 {
					name = base + ":" + c
				}
				fig.Series = append(fig.Series, render.Series{Name: name, X: x, Y: y})
				stats = append(stats, summary.Compute(name, y))
			}
		}
		if cfg.Hint {
			fig.Hint = hintLines(nil, stats)
		}
		return fig, stats, nil
	}
	return env.run(cfg, viewer.Source{Label: pattern, Watch: []string{pattern}}, build)
}

// currentLabels name the first two cfg.Currents in the printed means.
var currentLabels = []string{"motor current", "bus current"}

// PlotRotating derives elapsed time, normalises (and by default inverts) the angle
// column, prints the mean of each current column and plots cfg.Columns against time.
func PlotRotating(env Env, cfg *config.Config, path string) error {
	fmt.Fprintf(env.Stdout, "data %s\n", path)
	build := func(out io.Writer) (render.Figure, []summary.Stats, error) {
		t, err := logtable.Load(path)
		if err != nil {
			return render.Figure{}, nil, err
		}
		if err := deriveElapsed(t, cfg.Timestamp, cfg.X, cfg.Rebase); err != nil {
			return render.Figure{}, nil, err
		}
		if err := normaliseAngle(t, cfg.Angle, cfg.Invert); err != nil {
			return render.Figure{}, nil, err
		}
		var means []string
		for i, c := range cfg.Currents {
			v, err := t.Column(c)
			if err != nil {
				return render.Figure{}, nil, err
			}
			label := c
			if i < len(currentLabels) {
				label = currentLabels[i]
			}
			line := fmt.Sprintf("ave %s: %s", label, summary.FormatFloat(transform.Mean(v)))
			fmt.Fprintln(out, line)
			means = append(means, line)
		}
		x, err := t.Column(cfg.X)
		if err != nil {
			return render.Figure{}, nil, err
		}
		fig := render.Figure{Title: title(cfg, filepath.Base(path)), XLabel: cfg.X, YLabel: yLabel(cfg.Columns)}
		var stats []summary.Stats
		for _, c := range cfg.Columns {
			y, err := t.Column(c)
			if err != nil {
				return render.Figure{}, nil, err
			}
			fig.Series = append(fig.Series, render.Series{Name: c, X: x, Y: y})
			stats = append(stats, summary.Compute(c, y))
		}
		if cfg.Hint {
			fig.Hint = hintLines(means, stats)
		}
		return fig, stats, nil
	}
	return env.run(cfg, viewer.Source{Label: path, Watch: []string{path}}, build)
}

// deriveElapsed adds column `to` holding the `from` nanosecond timestamps in seconds,
// counted from the first row when rebase is set.
func deriveElapsed(t *logtable.Table, from, to string, rebase bool) error {
	ns, err := t.Column(from)
	if err != nil {
		return err
	}
	if !rebase {
		return t.Set(to, transform.Seconds(ns))
	}
	return t.Set(to, transform.ElapsedSeconds(ns))
}

// normaliseAngle rewrites column in place as [0, 2π) angles, mirrored when invert is set.
// An empty column name skips the step.
func normaliseAngle(t *logtable.Table, column string, invert bool) error {
	if strings.TrimSpace(column) == "" {
		return nil
	}
	a, err := t.Column(column)
	if err != nil {
		return err
	}
	a = transform.NormaliseAngles(a)
	if invert {
		a = transform.Invert2Pi(a)
	}
	return t.Set(column, a)
}
