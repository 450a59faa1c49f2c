// Copyright 2018 Denis Bernard <db047h@gmail.com>
// Licensed under the MIT license. See license text in the LICENSE file.

package render

import (
	"image"
	"image/color"
	"io"

	sim "github.com/db47h/logicsim"
	"github.com/fogleman/gg"
	"github.com/golang/freetype/truetype"
	"github.com/pkg/errors"
	"golang.org/x/image/font"
	"golang.org/x/image/font/gofont/gomono"
	"golang.org/x/image/font/gofont/gomonobold"
)

// Image is a raster Surface.
//
type Image struct {
	dc      *gg.Context
	regular *truetype.Font
	bold    *truetype.Font
	faces   map[Font]font.Face
}

// NewImage returns a new Image of the given size, using the Go Mono fonts.
//
func NewImage(w, h int) (*Image, error) {
	regular, err := truetype.Parse(gomono.TTF)
	if err != nil {
		return nil, errors.Wrap(err, "parse font")
	}
	bold, err := truetype.Parse(gomonobold.TTF)
	if err != nil {
		return nil, errors.Wrap(err, "parse bold font")
	}
	return &Image{
		dc:      gg.NewContext(w, h),
		regular: regular,
		bold:    bold,
		faces:   make(map[Font]font.Face),
	}, nil
}

func (im *Image) face(f Font) font.Face {
	if fc, ok := im.faces[f]; ok {
		return fc
	}
	ttf := im.regular
	if f.Bold {
		ttf = im.bold
	}
	fc := truetype.NewFace(ttf, &truetype.Options{
		Size:    f.Size,
		DPI:     72,
		Hinting: font.HintingFull,
	})
	im.faces[f] = fc
	return fc
}

// Image returns the underlying image.
//
func (im *Image) Image() image.Image { return im.dc.Image() }

// EncodePNG writes the image to w in PNG format.
//
func (im *Image) EncodePNG(w io.Writer) error {
	return errors.Wrap(im.dc.EncodePNG(w), "encode png")
}

// SavePNG writes the image to the named file in PNG format.
//
func (im *Image) SavePNG(name string) error {
	return errors.Wrapf(im.dc.SavePNG(name), "save %s", name)
}

// Size implements Surface.
func (im *Image) Size() (w, h float64) {
	return float64(im.dc.Width()), float64(im.dc.Height())
}

// Clear implements Surface.
func (im *Image) Clear(c color.Color) {
	im.dc.SetColor(c)
	im.dc.Clear()
}

// Line implements Surface.
func (im *Image) Line(a, b sim.Point, c color.Color, width float64, dash []float64) {
	im.dc.SetColor(c)
	im.dc.SetLineWidth(width)
	im.dc.SetDash(dash...)
	im.dc.DrawLine(a.X, a.Y, b.X, b.Y)
	im.dc.Stroke()
	im.dc.SetDash()
}

// FillRect implements Surface.
func (im *Image) FillRect(r sim.Rect, c color.Color) {
	im.dc.SetColor(c)
	im.dc.DrawRectangle(r.Min.X, r.Min.Y, r.Dx(), r.Dy())
	im.dc.Fill()
}

// StrokeRect implements Surface.
func (im *Image) StrokeRect(r sim.Rect, c color.Color, width float64) {
	im.dc.SetColor(c)
	im.dc.SetLineWidth(width)
	im.dc.DrawRectangle(r.Min.X, r.Min.Y, r.Dx(), r.Dy())
	im.dc.Stroke()
}

// FillRoundRect implements Surface.
func (im *Image) FillRoundRect(r sim.Rect, radius float64, c color.Color) {
	im.dc.SetColor(c)
	im.dc.DrawRoundedRectangle(r.Min.X, r.Min.Y, r.Dx(), r.Dy(), radius)
	im.dc.Fill()
}

// FillCircle implements Surface.
func (im *Image) FillCircle(center sim.Point, radius float64, c color.Color) {
	im.dc.SetColor(c)
	im.dc.DrawCircle(center.X, center.Y, radius)
	im.dc.Fill()
}

// StrokeCircle implements Surface.
func (im *Image) StrokeCircle(center sim.Point, radius float64, c color.Color, width float64) {
	im.dc.SetColor(c)
	im.dc.SetLineWidth(width)
	im.dc.DrawCircle(center.X, center.Y, radius)
	im.dc.Stroke()
}

// FillPolygon implements Surface.
func (im *Image) FillPolygon(pts []sim.Point, c color.Color) {
	if len(pts) < 3 {
		return
	}
	im.dc.SetColor(c)
	im.dc.MoveTo(pts[0].X, pts[0].Y)
	for _, p := range pts[1:] {
		im.dc.LineTo(p.X, p.Y)
	}
	im.dc.ClosePath()
	im.dc.Fill()
}

// Text implements Surface.
func (im *Image) Text(s string, p sim.Point, c color.Color, f Font, a Anchor) {
	im.dc.SetFontFace(im.face(f))
	im.dc.SetColor(c)
	ax := 0.0
	if a == AnchorCenter {
		ax = 0.5
	}
	im.dc.DrawStringAnchored(s, p.X, p.Y, ax, 0.5)
}

// TextWidth implements Surface.
func (im *Image) TextWidth(s string, f Font) float64 {
	im.dc.SetFontFace(im.face(f))
	w, _ := im.dc.MeasureString(s)
	return w
}

// RenderPNG draws c on a new w×h image and writes it to out in PNG format.
//
func RenderPNG(out io.Writer, c *sim.Circuit, o Overlay, th Theme, w, h int) error {
	im, err := NewImage(w, h)
	if err != nil {
		return err
	}
	Draw(im, c, o, th)
	return im.EncodePNG(out)
}
