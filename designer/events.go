// Copyright 2018 Denis Bernard <db047h@gmail.com>
// Licensed under the MIT license. See license text in the LICENSE file.

package designer

import (
	"strings"

	sim "github.com/db47h/logicsim"
)

func (d *Controller) setPointer(p sim.Point) {
	d.pointer = p
	d.hasPointer = true
}

// updateHover recomputes the component and connection under the pointer and
// returns true if either changed.
func (d *Controller) updateHover() bool {
	cp := d.c.ComponentAt(d.pointer)
	cn := d.c.ConnectionNear(d.pointer, d.hit)
	changed := cp != d.hoverComp || cn != d.hoverConn
	d.hoverComp, d.hoverConn = cp, cn
	return changed
}

// PointerDown handles a primary button press at p. On a component, it starts
// dragging it, or drawing a connection from it if mods contains ModConnect.
// On empty space, the selection is cleared.
//
func (d *Controller) PointerDown(p sim.Point, mods Mods) {
	d.setPointer(p)
	cp := d.c.ComponentAt(p)
	if cp == nil {
		d.mode = Idle
		d.active = nil
		if d.selected != sim.NoID {
			d.selected = sim.NoID
			d.draw()
		}
		return
	}
	d.active = cp
	d.raised = false
	if mods&ModConnect != 0 {
		d.mode = Connecting
		d.log.Debug("connect start", "id", cp.ID(), "kind", cp.Kind())
	} else {
		d.mode = Dragging
		d.selected = cp.ID()
		d.log.Debug("drag start", "id", cp.ID(), "kind", cp.Kind())
	}
	d.draw()
}

// PointerMove handles pointer motion. A dragged component follows the
// pointer and is brought on top of the others on its first move. Moves never
// trigger propagation.
//
func (d *Controller) PointerMove(p sim.Point) {
	d.setPointer(p)
	switch d.mode {
	case Dragging:
		if err := d.c.Move(d.active.ID(), p); err != nil {
			// the component vanished under us
			d.mode, d.active = Idle, nil
		} else if !d.raised {
			d.c.Raise(d.active.ID())
			d.raised = true
		}
		d.updateHover()
		d.draw()
	case Connecting:
		d.updateHover()
		d.draw()
	default:
		if d.updateHover() {
			d.draw()
		}
	}
}

// PointerUp handles a primary button release at p. When drawing a connection
// and p is over a component other than the source, the connection is
// created. The controller always returns to Idle.
//
func (d *Controller) PointerUp(p sim.Point) {
	d.setPointer(p)
	if d.mode == Connecting && d.active != nil {
		if t := d.c.ComponentAt(p); t != nil && t != d.active {
			d.connect(d.active.ID(), t.ID())
		}
	}
	d.mode = Idle
	d.active = nil
	d.updateHover()
	d.draw()
}

func (d *Controller) connect(from, to sim.ID) {
	cn, err := d.c.AddConnection(from, to)
	if err != nil {
		d.fail("connect", "Invalid connection", err)
		return
	}
	d.log.Debug("connection created", "id", cn.ID(), "from", from, "to", to)
	d.resimulate()
	d.changed("connect")
	d.notifier.Notify(Success, "Connection created")
}

// Click handles a primary click at p. Clicking an Input component toggles
// it, and re-evaluates the circuit when simulating.
//
func (d *Controller) Click(p sim.Point) {
	d.setPointer(p)
	cp := d.c.ComponentAt(p)
	if cp == nil || cp.Kind() != sim.Input {
		return
	}
	s, err := d.c.Toggle(cp.ID())
	if err != nil {
		d.fail("toggle", "Cannot toggle component", err)
		return
	}
	d.resimulate()
	d.obs.Action("toggle", nil)
	d.draw()
	if s == sim.High {
		d.notifier.Notify(Info, "Input ON")
	} else {
		d.notifier.Notify(Info, "Input OFF")
	}
}

// SecondaryClick handles a secondary ("delete") click at p. It removes the
// component under p, or else the connection near p.
//
func (d *Controller) SecondaryClick(p sim.Point) {
	d.setPointer(p)
	if cp := d.c.ComponentAt(p); cp != nil {
		var fed []sim.ID
		for _, cn := range d.c.Connections() {
			if cn.From() == cp.ID() && cn.To() != cp.ID() {
				fed = append(fed, cn.To())
			}
		}
		d.c.RemoveComponent(cp.ID())
		if d.selected == cp.ID() {
			d.selected = sim.NoID
		}
		if d.active == cp {
			d.mode, d.active = Idle, nil
		}
		d.afterDelete("delete component", fed...)
		d.log.Debug("component deleted", "id", cp.ID(), "kind", cp.Kind())
		d.notifier.Notify(Success, strings.ToUpper(cp.Kind().String())+" deleted")
		return
	}
	if cn := d.c.ConnectionNear(p, d.hit); cn != nil {
		d.c.RemoveConnection(cn.ID())
		d.afterDelete("delete connection", cn.To())
		d.log.Debug("connection deleted", "id", cn.ID(), "from", cn.From(), "to", cn.To())
		d.notifier.Notify(Success, "Connection deleted")
	}
}

// afterDelete re-evaluates the circuit after a deletion. fed lists the
// components that lost an input.
func (d *Controller) afterDelete(action string, fed ...sim.ID) {
	switch {
	case !d.simulating:
	case d.settle:
		r := d.engine.Invalidate(d.c, fed...)
		d.observePropagation(false, r)
	default:
		d.propagate()
	}
	d.updateHover()
	d.changed(action)
	d.draw()
}
