// Copyright 2018 Denis Bernard <db047h@gmail.com>
// Licensed under the MIT license. See license text in the LICENSE file.

package render

import (
	"math"
	"strconv"
	"strings"

	sim "github.com/db47h/logicsim"
)

// Overlay is the transient interaction state drawn on top of a circuit.
//
type Overlay struct {
	Selected     sim.ID    // selected component or NoID
	Connecting   sim.ID    // source of the connection being drawn or NoID
	Pointer      sim.Point // last known pointer position
	HasPointer   bool      // Pointer is valid
	HitThreshold float64   // connection hover distance; 0 means sim.DefaultHitThreshold
}

// Hints are shown on an empty circuit.
//
var Hints = []string{
	"Click components on the left to add them",
	"Drag components to move them",
	"Shift + Click to connect components",
	"Click Simulate to test your circuit",
}

var (
	hintFont    = Font{Size: 16}
	statusFont  = Font{Size: 16, Bold: true}
	tooltipFont = Font{Size: 12}
	labelFont   = Font{Size: 14, Bold: true}
)

const (
	tooltipPadding = 8
	tooltipHeight  = 24
	tooltipRadius  = 6
	tooltipOffset  = 25
	tooltipRise    = 40
	hoverHalo      = 8
	previewWidth   = 2
)

var previewDash = []float64{5, 5}

// Tooltip returns the tooltip text for the given hovered component or
// connection. It returns an empty string if both are nil.
//
func Tooltip(cp *sim.Component, cn *sim.Connection) string {
	switch {
	case cp != nil:
		return "Right-click to delete " + strings.ToUpper(cp.Kind().String())
	case cn != nil:
		return "Right-click to delete connection"
	}
	return ""
}

// Draw draws c onto s.
//
func Draw(s Surface, c *sim.Circuit, o Overlay, th Theme) {
	w, h := s.Size()
	s.Clear(th.Background)
	drawGrid(s, w, h, &th)

	if c.Len() == 0 {
		for i, t := range Hints {
			s.Text(t, sim.Pt(w/2, h/2-40+float64(i)*30), th.Hint, hintFont, AnchorCenter)
		}
		return
	}

	var (
		hc *sim.Component
		hn *sim.Connection
	)
	if o.HasPointer {
		d := o.HitThreshold
		if d <= 0 {
			d = sim.DefaultHitThreshold
		}
		hc = c.ComponentAt(o.Pointer)
		hn = c.ConnectionNear(o.Pointer, d)
	}

	for _, cn := range c.Connections() {
		drawConnection(s, c, cn, cn == hn, &th)
	}

	if o.Connecting != sim.NoID && o.HasPointer {
		if src := c.Component(o.Connecting); src != nil {
			s.Line(src.Pos, o.Pointer, th.Preview, previewWidth, previewDash)
		}
	}

	s.Text("Components: "+strconv.Itoa(c.Len()), sim.Pt(10, 20), th.Status, statusFont, AnchorLeft)

	if t := Tooltip(hc, hn); t != "" {
		drawTooltip(s, t, o.Pointer, w, &th)
	}

	for _, cp := range c.Components() {
		drawComponent(s, cp, cp.ID() == o.Selected, &th)
	}
}

func drawGrid(s Surface, w, h float64, th *Theme) {
	step := th.GridStep
	if step <= 0 {
		return
	}
	for x := 0.0; x < w; x += step {
		s.Line(sim.Pt(x, 0), sim.Pt(x, h), th.Grid, 1, nil)
	}
	for y := 0.0; y < h; y += step {
		s.Line(sim.Pt(0, y), sim.Pt(w, y), th.Grid, 1, nil)
	}
}

func drawConnection(s Surface, c *sim.Circuit, cn *sim.Connection, hovered bool, th *Theme) {
	from, to := c.Component(cn.From()), c.Component(cn.To())
	if from == nil || to == nil {
		return
	}
	active := from.State() == sim.High
	col, width := th.Connection, 3.0
	switch {
	case hovered:
		col, width = th.Hover, 5
	case active:
		col, width = th.Active, 4
	}
	a, b := from.Pos, to.Pos
	s.Line(a, b, col, width, nil)

	angle := math.Atan2(b.Y-a.Y, b.X-a.X)
	sz := th.ArrowSize
	s.FillPolygon([]sim.Point{
		b,
		sim.Pt(b.X-sz*math.Cos(angle-math.Pi/6), b.Y-sz*math.Sin(angle-math.Pi/6)),
		sim.Pt(b.X-sz*math.Cos(angle+math.Pi/6), b.Y-sz*math.Sin(angle+math.Pi/6)),
	}, col)

	mid := sim.Pt((a.X+b.X)/2, (a.Y+b.Y)/2)
	if active {
		s.FillCircle(mid, th.ActiveDotSize, th.Active)
	}
	if hovered {
		s.FillCircle(mid, hoverHalo, th.HoverHalo)
	}
}

// TooltipRect returns the box of a tooltip of width tw for a pointer at p on a
// surface of width w. The box sits above right of the pointer and flips to
// stay within the surface.
//
func TooltipRect(p sim.Point, tw, w float64) sim.Rect {
	bw := tw + 2*tooltipPadding
	x, y := p.X+tooltipOffset, p.Y-tooltipRise
	if x+bw > w {
		x = p.X - bw - tooltipOffset
	}
	if y < 0 {
		y = p.Y + tooltipOffset
	}
	return sim.Rect{Min: sim.Pt(x, y), Max: sim.Pt(x+bw, y+tooltipHeight)}
}

func drawTooltip(s Surface, t string, p sim.Point, w float64, th *Theme) {
	r := TooltipRect(p, s.TextWidth(t, tooltipFont), w)
	s.FillRoundRect(r, tooltipRadius, th.TooltipBg)
	s.Text(t, sim.Pt(r.Min.X+tooltipPadding, r.Min.Y+tooltipHeight/2), th.TooltipText, tooltipFont, AnchorLeft)
}

func drawComponent(s Surface, cp *sim.Component, selected bool, th *Theme) {
	k := cp.Kind()
	r := cp.Bounds()
	active := cp.State() == sim.High

	fill := th.kindColor(k)
	if active {
		fill = th.Active
	}
	s.FillRect(r, fill)
	if selected {
		s.StrokeRect(r, th.Selected, 4)
	} else {
		s.StrokeRect(r, th.Border, 3)
	}
	s.Text(k.Label(), cp.Pos, th.Label, labelFont, AnchorCenter)

	if k == sim.Input {
		dot := sim.Pt(r.Max.X+10, cp.Pos.Y)
		col := th.Inactive
		if active {
			col = th.Active
		}
		s.FillCircle(dot, th.StateDotSize, col)
		s.StrokeCircle(dot, th.StateDotSize, th.Border, 1)
	}
}
