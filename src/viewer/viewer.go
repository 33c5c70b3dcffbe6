// Package viewer shows a rendered figure in a desktop window that stays open until the
// user closes it, with reload, export and optional live reloading of the source files.
package viewer

import (
	"context"
	"image"
	"image/color"
	"path/filepath"
	"strings"
	"time"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/app"
	"fyne.io/fyne/v2/canvas"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/dialog"
	"fyne.io/fyne/v2/driver/desktop"
	"fyne.io/fyne/v2/storage"
	"fyne.io/fyne/v2/theme"
	"fyne.io/fyne/v2/widget"

	"github.com/Arbite-Robotics/jcs-applications/src/logging"
	"github.com/Arbite-Robotics/jcs-applications/src/render"
)

// AppID identifies the viewer to the fyne preferences store.
const AppID = "com.arbite.jcsplot"

// prefLastExportDir remembers where the export dialog was last used.
const prefLastExportDir = "lastExportDir"

// Source describes where a figure came from so the window can rebuild it.
type Source struct {
	// Label is shown in the status line, usually the data path or pattern.
	Label string
	// Watch holds file paths or glob patterns whose changes trigger a reload.
	Watch []string
	// Reload rebuilds the figure from disk. Nil disables reloading.
	Reload func() (render.Figure, error)
}

// Viewer opens one window per Show call.
type Viewer struct {
	Options render.Options
	// LiveReload re-runs Source.Reload when a watched file changes.
	LiveReload bool
	newApp     func() fyne.App
}

// New returns a Viewer drawing with opts.
func New(opts render.Options, liveReload bool) *Viewer {
	return &Viewer{Options: opts, LiveReload: liveReload, newApp: func() fyne.App { return app.NewWithID(AppID) }}
}

// variantTheme pins the default theme to one variant.
type variantTheme struct {
	variant fyne.ThemeVariant
}

func (t *variantTheme) Color(name fyne.ThemeColorName, _ fyne.ThemeVariant) color.Color {
	return theme.DefaultTheme().Color(name, t.variant)
}
func (t *variantTheme) Font(style fyne.TextStyle) fyne.Resource { return theme.DefaultTheme().Font(style) }
func (t *variantTheme) Icon(name fyne.ThemeIconName) fyne.Resource {
	return theme.DefaultTheme().Icon(name)
}
func (t *variantTheme) Size(name fyne.ThemeSizeName) float32 { return theme.DefaultTheme().Size(name) }

// Show displays fig and blocks until the window is closed.
func (v *Viewer) Show(fig render.Figure, src Source) error {
	a := v.newApp()
	s := v.open(a, fig, src)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	s.win.SetOnClosed(cancel)
	go s.trackResize(ctx)
	if v.LiveReload && src.Reload != nil && len(src.Watch) > 0 {
		go func() {
			err := watchFiles(ctx, src.Watch, 200*time.Millisecond, func() {
				fyne.Do(s.reload)
			})
			if err != nil {
				logging.Warnf("live reload disabled: %v", err)
			}
		}()
	}
	s.win.ShowAndRun()
	return nil
}

// session is the state behind one open window. Its methods run on the fyne
// main goroutine.
type session struct {
	win    fyne.Window
	prefs  fyne.Preferences
	img    *canvas.Image
	status *widget.Label
	fig    render.Figure
	src    Source
	opts   render.Options
}

func (v *Viewer) open(a fyne.App, fig render.Figure, src Source) *session {
	if v.Options.Dark {
		a.Settings().SetTheme(&variantTheme{variant: theme.VariantDark})
	} else {
		a.Settings().SetTheme(&variantTheme{variant: theme.VariantLight})
	}
	title := fig.Title
	if title == "" {
		title = "jcsplot"
	}
	w := a.NewWindow(title)
	width, height := render.ComputeChartDimensions(v.Options.Width)
	if v.Options.Height > 0 {
		height = v.Options.Height
	}
	w.Resize(fyne.NewSize(float32(width)+24, float32(height)+72))

	s := &session{win: w, prefs: a.Preferences(), fig: fig, src: src, opts: v.Options}
	s.img = canvas.NewImageFromImage(image.NewRGBA(image.Rect(0, 0, 100, 60)))
	s.img.FillMode = canvas.ImageFillContain
	s.img.SetMinSize(fyne.NewSize(320, 200))
	s.status = widget.NewLabel(truncatePath(src.Label, 80))
	w.SetContent(container.NewBorder(nil, s.status, nil, nil, s.img))
	s.buildMenus()
	s.redraw()
	return s
}

func (s *session) buildMenus() {
	reload := fyne.NewMenuItem("Reload", s.reload)
	reload.Disabled = s.src.Reload == nil
	fileMenu := fyne.NewMenu("File",
		reload,
		fyne.NewMenuItem("Export…", s.exportDialog),
		fyne.NewMenuItemSeparator(),
		fyne.NewMenuItem("Quit", func() { s.win.Close() }),
	)
	s.win.SetMainMenu(fyne.NewMainMenu(fileMenu))

	if canv := s.win.Canvas(); canv != nil {
		for _, mod := range []fyne.KeyModifier{fyne.KeyModifierSuper, fyne.KeyModifierControl} {
			canv.AddShortcut(&desktop.CustomShortcut{KeyName: fyne.KeyR, Modifier: mod}, func(fyne.Shortcut) { s.reload() })
			canv.AddShortcut(&desktop.CustomShortcut{KeyName: fyne.KeyS, Modifier: mod}, func(fyne.Shortcut) { s.exportDialog() })
			canv.AddShortcut(&desktop.CustomShortcut{KeyName: fyne.KeyW, Modifier: mod}, func(fyne.Shortcut) { s.win.Close() })
		}
	}
}

// chartOptions sizes the chart to the current canvas.
func (s *session) chartOptions() render.Options {
	opts := s.opts
	c := s.win.Canvas()
	if c == nil {
		return opts
	}
	sz := c.Size()
	if sz.Width <= 0 {
		return opts
	}
	opts.Width, opts.Height = render.ComputeChartDimensions(int(sz.Width*0.95) - 12)
	if h := int(sz.Height) - 60; h > opts.Height {
		opts.Height = h
	}
	return opts
}

func (s *session) redraw() {
	img, err := render.Render(s.fig, s.chartOptions())
	if err != nil {
		logging.Errorf("render %q: %v", s.fig.Title, err)
		s.status.SetText("render failed: " + err.Error())
	}
	s.img.Image = img
	s.img.Refresh()
}

func (s *session) reload() {
	if s.src.Reload == nil {
		return
	}
	defer logging.TimeTrack(time.Now(), "reload "+s.src.Label)
	fig, err := s.src.Reload()
	if err != nil {
		logging.Warnf("reload %s: %v", s.src.Label, err)
		s.status.SetText("reload failed: " + err.Error())
		return
	}
	s.fig = fig
	s.status.SetText(truncatePath(s.src.Label, 80) + "  (reloaded " + time.Now().Format("15:04:05") + ")")
	s.redraw()
}

// export writes the current figure at the current window size.
func (s *session) export(path string) error {
	if err := render.Export(path, s.fig, s.chartOptions()); err != nil {
		return err
	}
	s.prefs.SetString(prefLastExportDir, filepath.Dir(path))
	return nil
}

func (s *session) exportDialog() {
	fs := dialog.NewFileSave(func(wc fyne.URIWriteCloser, err error) {
		if err != nil || wc == nil {
			return
		}
		path := wc.URI().Path()
		// render.Export reopens the file by path so every format goes through one place
		_ = wc.Close()
		if err := s.export(path); err != nil {
			dialog.ShowError(err, s.win)
			return
		}
		logging.Infof("exported %s", path)
	}, s.win)
	fs.SetFileName(defaultExportName(s.fig.Title))
	if dir := s.prefs.String(prefLastExportDir); dir != "" {
		if l, err := storage.ListerForURI(storage.NewFileURI(dir)); err == nil {
			fs.SetLocation(l)
		}
	}
	fs.Show()
}

func defaultExportName(title string) string {
	name := strings.TrimSpace(title)
	if name == "" {
		return "plot.png"
	}
	name = strings.Map(func(r rune) rune {
		switch r {
		case '/', '\\', ':', '*', '?', '"', '<', '>', '|', ' ':
			return '_'
		}
		return r
	}, filepath.Base(name))
	return name + ".png"
}

// trackResize redraws when the canvas width changes.
func (s *session) trackResize(ctx context.Context) {
	prevW := -1
	t := time.NewTicker(300 * time.Millisecond)
	defer t.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-t.C:
			c := s.win.Canvas()
			if c == nil {
				continue
			}
			curW := int(c.Size().Width)
			if curW != prevW {
				prevW = curW
				fyne.Do(s.redraw)
			}
		}
	}
}

// truncatePath shortens p to about n bytes for the status line, keeping the file name
// and as many whole leading directories as fit.
func truncatePath(p string, n int) string {
	if len(p) <= n {
		return p
	}
	base := filepath.Base(p)
	budget := n - len(base) - len("...")
	dir := filepath.Dir(p)
	if budget <= 0 || dir == "." {
		return "..." + base
	}
	sep := string(filepath.Separator)
	var head strings.Builder
	for _, part := range strings.SplitAfter(strings.TrimSuffix(dir, sep)+sep, sep) {
		if head.Len()+len(part) > budget {
			break
		}
		head.WriteString(part)
	}
	return head.String() + "..." + base
}
