package render

import (
	"image/color"
	"os"
	"path/filepath"
	"strings"

	"github.com/pkg/errors"
	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"
	"gonum.org/v1/plot/vg/draw"
)

// Formats lists the output file extensions Export understands.
var Formats = []string{".png", ".svg", ".pdf", ".eps", ".tif", ".tiff", ".jpg", ".jpeg"}

// SupportedFormat reports whether path has an extension Export can write.
func SupportedFormat(path string) bool {
	ext := strings.ToLower(filepath.Ext(path))
	for _, f := range Formats {
		if f == ext {
			return true
		}
	}
	return false
}

// Export writes fig to path, picking the encoder from the file extension.
// PNG and SVG go through go-chart; the remaining formats, and SVG for an empty
// figure, go through gonum/plot. Parent directories are created as needed.
func Export(path string, fig Figure, opts Options) error {
	if !SupportedFormat(path) {
		return errors.Errorf("unsupported output format %q (want one of %s)", filepath.Ext(path), strings.Join(Formats, ", "))
	}
	if dir := filepath.Dir(path); dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return errors.Wrap(err, "create output dir")
		}
	}
	ext := strings.ToLower(filepath.Ext(path))
	if ext == ".png" || (ext == ".svg" && !fig.Empty()) {
		f, err := os.Create(path)
		if err != nil {
			return errors.Wrapf(err, "create %s", path)
		}
		if ext == ".png" {
			err = WritePNG(f, fig, opts)
		} else {
			err = WriteSVG(f, fig, opts)
		}
		if cerr := f.Close(); err == nil {
			err = cerr
		}
		return errors.Wrapf(err, "write %s", path)
	}
	p, err := Plot(fig, opts)
	if err != nil {
		return err
	}
	w, h := opts.size()
	return errors.Wrapf(p.Save(vg.Points(float64(w)), vg.Points(float64(h)), path), "write %s", path)
}

// Plot builds the gonum/plot rendition of fig.
func Plot(fig Figure, opts Options) (*plot.Plot, error) {
	th := opts.theme()
	p := plot.New()
	p.Title.Text = fig.Title
	p.X.Label.Text = fig.XLabel
	p.Y.Label.Text = fig.YLabel
	p.BackgroundColor = th.bg
	p.Title.TextStyle.Color = th.fg
	for _, ax := range []*plot.Axis{&p.X, &p.Y} {
		ax.Label.TextStyle.Color = th.fg
		ax.Tick.Label.Color = th.fg
		ax.Tick.LineStyle.Color = th.fg
		ax.LineStyle.Color = th.fg
	}
	p.Legend.TextStyle.Color = th.fg
	p.Legend.Top = true
	p.Legend.Padding = vg.Points(5)
	p.Add(plotter.NewGrid())

	for i, s := range fig.Series {
		xs, ys := finitePairs(s.X, s.Y)
		if len(xs) == 0 {
			continue
		}
		pts := make(plotter.XYs, len(xs))
		for j := range xs {
			pts[j].X = xs[j]
			pts[j].Y = ys[j]
		}
		line, points, err := plotter.NewLinePoints(pts)
		if err != nil {
			return nil, errors.Wrapf(err, "series %q", s.Name)
		}
		var col color.Color = SeriesColor(i)
		line.Color = col
		points.Shape = draw.CircleGlyph{}
		points.Color = col
		points.Radius = vg.Points(1)
		if len(xs) == 1 {
			points.Radius = vg.Points(3)
		}
		p.Add(line, points)
		p.Legend.Add(s.Name, line)
	}
	return p, nil
}
