// Copyright 2018 Denis Bernard <db047h@gmail.com>
// Licensed under the MIT license. See license text in the LICENSE file.

// Package render draws logicsim circuits onto abstract 2D surfaces.
//
// Draw is a pure function of a circuit, the designer's transient state
// (Overlay) and a Theme: drawing the same inputs twice produces the same
// sequence of drawing commands. Two surfaces are provided: Recorder, which
// records commands, and Image, a raster surface that can be saved as PNG.
//
package render

import (
	"image/color"

	sim "github.com/db47h/logicsim"
)

// Anchor selects the reference point of a text string.
//
type Anchor uint8

// Text anchors. Left anchored text starts at the given point, centered text is
// centered on it. In both cases, the point is on the vertical middle of the
// text.
//
const (
	AnchorLeft Anchor = iota
	AnchorCenter
)

// Font describes the font used for a text.
//
type Font struct {
	Size float64
	Bold bool
}

// A Surface is a 2D drawing target. Coordinates are in pixels, with the
// origin at the top left corner.
//
type Surface interface {
	// Size returns the size of the surface.
	Size() (w, h float64)
	// Clear fills the whole surface with c.
	Clear(c color.Color)
	// Line strokes a line from a to b. If dash is not empty, the line is dashed
	// with the given on/off lengths.
	Line(a, b sim.Point, c color.Color, width float64, dash []float64)
	// FillRect fills r with c.
	FillRect(r sim.Rect, c color.Color)
	// StrokeRect draws the outline of r.
	StrokeRect(r sim.Rect, c color.Color, width float64)
	// FillRoundRect fills r with rounded corners.
	FillRoundRect(r sim.Rect, radius float64, c color.Color)
	// FillCircle fills a disc.
	FillCircle(center sim.Point, radius float64, c color.Color)
	// StrokeCircle draws the outline of a circle.
	StrokeCircle(center sim.Point, radius float64, c color.Color, width float64)
	// FillPolygon fills the closed polygon pts.
	FillPolygon(pts []sim.Point, c color.Color)
	// Text draws s at p.
	Text(s string, p sim.Point, c color.Color, f Font, a Anchor)
	// TextWidth returns the width of s drawn with f.
	TextWidth(s string, f Font) float64
}
