package render

import (
	"image"
	"image/color"
	"image/draw"
	"strings"

	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/math/fixed"
)

func blank(w, h int, bg color.RGBA) image.Image {
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	draw.Draw(img, img.Bounds(), image.NewUniform(bg), image.Point{}, draw.Src)
	return img
}

// drawHint writes lines onto img near the bottom-left, last line lowest.
func drawHint(img image.Image, lines []string) image.Image {
	var text []string
	for _, l := range lines {
		if strings.TrimSpace(l) != "" {
			text = append(text, l)
		}
	}
	if img == nil || len(text) == 0 {
		return img
	}
	b := img.Bounds()
	rgba := image.NewRGBA(b)
	draw.Draw(rgba, b, img, b.Min, draw.Src)
	pad := 6
	lineH := 18
	face := basicfont.Face7x13
	textCol := image.NewUniform(color.RGBA{R: 255, G: 255, B: 255, A: 255})
	shadowCol := image.NewUniform(color.RGBA{R: 0, G: 0, B: 0, A: 180})
	bg := image.NewUniform(color.RGBA{R: 0, G: 0, B: 0, A: 200})
	dr := &font.Drawer{Dst: rgba, Src: textCol, Face: face}
	x := b.Min.X + 8
	for i, line := range text {
		y := b.Max.Y - 6 - lineH*(len(text)-1-i)
		tw := dr.MeasureString(line).Ceil()
		rect := image.Rect(x-pad, y-face.Metrics().Ascent.Ceil()-pad, x+tw+pad, y+pad/2)
		draw.Draw(rgba, rect, bg, image.Point{}, draw.Over)
		shadow := &font.Drawer{Dst: rgba, Src: shadowCol, Face: face, Dot: fixed.Point26_6{X: fixed.I(x + 1), Y: fixed.I(y + 1)}}
		shadow.DrawString(line)
		dr.Dot = fixed.Point26_6{X: fixed.I(x), Y: fixed.I(y)}
		dr.DrawString(line)
	}
	return rgba
}
