// Copyright 2018 Denis Bernard <db047h@gmail.com>
// Licensed under the MIT license. See license text in the LICENSE file.

package render

import (
	"fmt"
	"image/color"
	"strings"

	sim "github.com/db47h/logicsim"
)

// Op is a drawing operation recorded by a Recorder.
//
type Op uint8

// Drawing operations.
//
const (
	OpClear Op = iota
	OpLine
	OpFillRect
	OpStrokeRect
	OpFillRoundRect
	OpFillCircle
	OpStrokeCircle
	OpFillPolygon
	OpText
)

var opNames = [...]string{"clear", "line", "fillRect", "strokeRect", "fillRoundRect", "fillCircle", "strokeCircle", "fillPolygon", "text"}

func (op Op) String() string {
	if int(op) < len(opNames) {
		return opNames[op]
	}
	return fmt.Sprintf("Op(%d)", op)
}

// A Command is a recorded drawing operation. Only the fields relevant to Op
// are set.
//
type Command struct {
	Op     Op
	Points []sim.Point // line end points, rect corners, circle center, polygon, text position
	Color  color.Color
	Width  float64 // stroke width
	Radius float64
	Dash   []float64
	Text   string
	Font   Font
	Anchor Anchor
}

func (c Command) String() string {
	var b strings.Builder
	b.WriteString(c.Op.String())
	for _, p := range c.Points {
		fmt.Fprintf(&b, " (%g,%g)", p.X, p.Y)
	}
	if c.Text != "" {
		fmt.Fprintf(&b, " %q", c.Text)
	}
	return b.String()
}

// Recorder is a Surface that records drawing commands.
//
type Recorder struct {
	W, H     float64
	Commands []Command
}

// NewRecorder returns a new Recorder of the given size.
//
func NewRecorder(w, h float64) *Recorder {
	return &Recorder{W: w, H: h}
}

// Reset clears the recorded commands.
//
func (r *Recorder) Reset() { r.Commands = r.Commands[:0] }

// Find returns the recorded commands with the given op.
//
func (r *Recorder) Find(op Op) []Command {
	var cmds []Command
	for _, c := range r.Commands {
		if c.Op == op {
			cmds = append(cmds, c)
		}
	}
	return cmds
}

// Texts returns all recorded text strings, in drawing order.
//
func (r *Recorder) Texts() []string {
	var s []string
	for _, c := range r.Find(OpText) {
		s = append(s, c.Text)
	}
	return s
}

func (r *Recorder) add(c Command) { r.Commands = append(r.Commands, c) }

// Size implements Surface.
func (r *Recorder) Size() (w, h float64) { return r.W, r.H }

// Clear implements Surface. Previously recorded commands are kept.
func (r *Recorder) Clear(c color.Color) {
	r.add(Command{Op: OpClear, Color: c})
}

// Line implements Surface.
func (r *Recorder) Line(a, b sim.Point, c color.Color, width float64, dash []float64) {
	var d []float64
	if len(dash) > 0 {
		d = append(d, dash...)
	}
	r.add(Command{Op: OpLine, Points: []sim.Point{a, b}, Color: c, Width: width, Dash: d})
}

// FillRect implements Surface.
func (r *Recorder) FillRect(rc sim.Rect, c color.Color) {
	r.add(Command{Op: OpFillRect, Points: []sim.Point{rc.Min, rc.Max}, Color: c})
}

// StrokeRect implements Surface.
func (r *Recorder) StrokeRect(rc sim.Rect, c color.Color, width float64) {
	r.add(Command{Op: OpStrokeRect, Points: []sim.Point{rc.Min, rc.Max}, Color: c, Width: width})
}

// FillRoundRect implements Surface.
func (r *Recorder) FillRoundRect(rc sim.Rect, radius float64, c color.Color) {
	r.add(Command{Op: OpFillRoundRect, Points: []sim.Point{rc.Min, rc.Max}, Color: c, Radius: radius})
}

// FillCircle implements Surface.
func (r *Recorder) FillCircle(center sim.Point, radius float64, c color.Color) {
	r.add(Command{Op: OpFillCircle, Points: []sim.Point{center}, Color: c, Radius: radius})
}

// StrokeCircle implements Surface.
func (r *Recorder) StrokeCircle(center sim.Point, radius float64, c color.Color, width float64) {
	r.add(Command{Op: OpStrokeCircle, Points: []sim.Point{center}, Color: c, Radius: radius, Width: width})
}

// FillPolygon implements Surface.
func (r *Recorder) FillPolygon(pts []sim.Point, c color.Color) {
	r.add(Command{Op: OpFillPolygon, Points: append([]sim.Point(nil), pts...), Color: c})
}

// Text implements Surface.
func (r *Recorder) Text(s string, p sim.Point, c color.Color, f Font, a Anchor) {
	r.add(Command{Op: OpText, Points: []sim.Point{p}, Color: c, Text: s, Font: f, Anchor: a})
}

// TextWidth implements Surface. It uses a fixed advance of 7 pixels per
// character at size 12.
func (r *Recorder) TextWidth(s string, f Font) float64 {
	return float64(len([]rune(s))) * 7 * f.Size / 12
}
