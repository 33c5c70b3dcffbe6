// Package render turns a Figure (named x/y series plus labels) into images: PNG and SVG
// through go-chart, and PDF/EPS/TIFF/JPEG through gonum/plot.
package render

import (
	"bytes"
	"image"
	"image/color"
	"image/png"
	"io"
	"math"

	"github.com/pkg/errors"
	chart "github.com/wcharczuk/go-chart/v2"
	"github.com/wcharczuk/go-chart/v2/drawing"
	"golang.org/x/image/colornames"
)

// Series is one line on a figure. X and Y are paired by index; points where either
// value is NaN or infinite are not drawn.
type Series struct {
	Name string
	X    []float64
	Y    []float64
}

// Figure is everything needed to draw one chart.
type Figure struct {
	Title  string
	XLabel string
	YLabel string
	Series []Series
	// Hint lines are drawn over the bottom-left corner of raster output.
	Hint []string
}

// Options controls output size and colours.
type Options struct {
	Width  int
	Height int
	Dark   bool
}

// ErrNoData is returned by Chart when no series has a drawable point.
var ErrNoData = errors.New("no data to plot")

// palette is cycled through in series order.
var palette = []color.RGBA{
	colornames.Steelblue,
	colornames.Darkorange,
	colornames.Forestgreen,
	colornames.Crimson,
	colornames.Mediumpurple,
	colornames.Sienna,
	colornames.Orchid,
	colornames.Gray,
	colornames.Olive,
	colornames.Darkturquoise,
}

// SeriesColor returns the colour used for the i-th series.
func SeriesColor(i int) color.RGBA { return palette[i%len(palette)] }

func toDrawing(c color.RGBA) drawing.Color {
	return drawing.Color{R: c.R, G: c.G, B: c.B, A: c.A}
}

type theme struct {
	bg, fg, legendBg color.RGBA
}

var (
	lightTheme = theme{bg: colornames.White, fg: color.RGBA{R: 51, G: 51, B: 51, A: 255}, legendBg: colornames.White}
	darkTheme  = theme{bg: color.RGBA{R: 18, G: 18, B: 18, A: 255}, fg: colornames.Lightgray, legendBg: color.RGBA{R: 36, G: 36, B: 36, A: 255}}
)

func (o Options) theme() theme {
	if o.Dark {
		return darkTheme
	}
	return lightTheme
}

// size falls back to the clamped window-width rules when a dimension is unset.
func (o Options) size() (int, int) {
	w, h := ComputeChartDimensions(o.Width)
	if o.Width > 0 {
		w = o.Width
	}
	if o.Height > 0 {
		h = o.Height
	}
	return w, h
}

// finitePairs drops index pairs where either coordinate is NaN or ±Inf.
func finitePairs(xs, ys []float64) ([]float64, []float64) {
	n := len(xs)
	if len(ys) < n {
		n = len(ys)
	}
	outX := make([]float64, 0, n)
	outY := make([]float64, 0, n)
	for i := 0; i < n; i++ {
		x, y := xs[i], ys[i]
		if math.IsNaN(x) || math.IsNaN(y) || math.IsInf(x, 0) || math.IsInf(y, 0) {
			continue
		}
		outX = append(outX, x)
		outY = append(outY, y)
	}
	return outX, outY
}

// extent is the bounding box of every drawable point in a figure.
type extent struct {
	minX, maxX, minY, maxY float64
	points                 int
}

func (f Figure) extent() extent {
	e := extent{minX: math.MaxFloat64, maxX: -math.MaxFloat64, minY: math.MaxFloat64, maxY: -math.MaxFloat64}
	for _, s := range f.Series {
		xs, ys := finitePairs(s.X, s.Y)
		for i := range xs {
			e.minX = math.Min(e.minX, xs[i])
			e.maxX = math.Max(e.maxX, xs[i])
			e.minY = math.Min(e.minY, ys[i])
			e.maxY = math.Max(e.maxY, ys[i])
		}
		e.points += len(xs)
	}
	return e
}

// Empty reports whether the figure has nothing to draw.
func (f Figure) Empty() bool { return f.extent().points == 0 }

// Chart builds the go-chart definition for fig.
func Chart(fig Figure, opts Options) (chart.Chart, error) {
	e := fig.extent()
	if e.points == 0 {
		return chart.Chart{}, ErrNoData
	}
	th := opts.theme()
	fg := toDrawing(th.fg)
	bg := toDrawing(th.bg)

	series := []chart.Series{}
	for i, s := range fig.Series {
		xs, ys := finitePairs(s.X, s.Y)
		if len(xs) == 0 {
			continue
		}
		col := toDrawing(SeriesColor(i))
		st := chart.Style{StrokeColor: col, StrokeWidth: 1.5, DotColor: col}
		if len(xs) == 1 { // a lone point has no segment to stroke
			st.DotWidth = 4
		}
		series = append(series, chart.ContinuousSeries{Name: s.Name, XValues: xs, YValues: ys, Style: st})
	}

	xMin, xMax := e.minX, e.maxX
	if xMax <= xMin {
		xMin, xMax = xMin-0.5, xMax+0.5
	}
	// x starting at zero is elapsed seconds
	xTicks, xLabel := clipTicks(BuildNumericTicks(xMin, xMax, 8), xMin, xMax), FormatNumericTick
	if xMin == 0 {
		xTicks, xLabel = BuildTimeAxisTicks(xMax, 8), FormatTimeTick
	}
	yMin, yMax := niceAxisBounds(e.minY, e.maxY)
	yTicks := clipTicks(BuildNumericTicks(yMin, yMax, 6), yMin, yMax)

	padBottom := 28
	if fig.XLabel != "" {
		padBottom += 16
	}
	padBottom += 18 * len(fig.Hint)

	axisStyle := chart.Style{FontColor: fg, StrokeColor: fg}
	ch := chart.Chart{
		Title:      fig.Title,
		TitleStyle: chart.Style{FontColor: fg},
		Background: chart.Style{Padding: chart.Box{Top: 24, Left: 16, Right: 16, Bottom: padBottom}, FillColor: bg},
		Canvas:     chart.Style{FillColor: bg},
		XAxis: chart.XAxis{
			Name:      fig.XLabel,
			NameStyle: chart.Style{FontColor: fg},
			Style:     axisStyle,
			Range:     &chart.ContinuousRange{Min: xMin, Max: xMax},
			Ticks:     ticks(xTicks, xLabel),
		},
		YAxis: chart.YAxis{
			Name:      fig.YLabel,
			NameStyle: chart.Style{FontColor: fg},
			Style:     axisStyle,
			Range:     &chart.ContinuousRange{Min: yMin, Max: yMax},
			Ticks:     ticks(yTicks, FormatNumericTick),
		},
		Series: series,
	}
	ch.Width, ch.Height = opts.size()
	ch.Elements = []chart.Renderable{chart.Legend(&ch, chart.Style{
		FillColor:   toDrawing(th.legendBg),
		FontColor:   fg,
		StrokeColor: fg,
	})}
	return ch, nil
}

func ticks(values []float64, label func(float64) string) []chart.Tick {
	if len(values) < 2 {
		return nil
	}
	out := make([]chart.Tick, len(values))
	for i, v := range values {
		out[i] = chart.Tick{Value: v, Label: label(v)}
	}
	return out
}

// Render draws fig as an image. An empty figure renders as a blank canvas with a
// "no data" note. On a chart error the blank canvas is returned alongside the error so
// a window can still show something.
func Render(fig Figure, opts Options) (image.Image, error) {
	w, h := opts.size()
	ch, err := Chart(fig, opts)
	if errors.Is(err, ErrNoData) {
		img := blank(w, h, opts.theme().bg)
		return drawHint(img, append([]string{"no data"}, fig.Hint...)), nil
	}
	if err != nil {
		return blank(w, h, opts.theme().bg), err
	}
	var buf bytes.Buffer
	if err := ch.Render(chart.PNG, &buf); err != nil {
		return blank(w, h, opts.theme().bg), errors.Wrap(err, "render chart")
	}
	img, err := png.Decode(&buf)
	if err != nil {
		return blank(w, h, opts.theme().bg), errors.Wrap(err, "decode chart")
	}
	return drawHint(img, fig.Hint), nil
}

// WritePNG renders fig and encodes it as PNG.
func WritePNG(w io.Writer, fig Figure, opts Options) error {
	img, err := Render(fig, opts)
	if err != nil {
		return err
	}
	return errors.Wrap(png.Encode(w, img), "encode png")
}

// WriteSVG renders fig as SVG through go-chart. Hints are raster-only and are skipped.
func WriteSVG(w io.Writer, fig Figure, opts Options) error {
	ch, err := Chart(fig, opts)
	if err != nil {
		return err
	}
	return errors.Wrap(ch.Render(chart.SVG, w), "render svg")
}
