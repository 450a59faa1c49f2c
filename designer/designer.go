// Copyright 2018 Denis Bernard <db047h@gmail.com>
// Licensed under the MIT license. See license text in the LICENSE file.

// Package designer implements direct manipulation of a logicsim circuit.
//
// A Controller turns pointer events and palette actions from a host UI into
// circuit edits. It owns the interaction state machine (idle, dragging a
// component, drawing a connection) and the simulation mode flag, and reports
// outcomes to a Notifier. Like the circuit it drives, a Controller is not safe
// for concurrent use: the host must serialize events.
//
package designer

import (
	"context"
	"log/slog"
	"time"

	sim "github.com/db47h/logicsim"
	"github.com/db47h/logicsim/render"
)

// Mode is the state of the interaction state machine.
//
type Mode uint8

// Interaction modes.
//
const (
	Idle Mode = iota
	Dragging
	Connecting
)

func (m Mode) String() string {
	switch m {
	case Idle:
		return "idle"
	case Dragging:
		return "dragging"
	case Connecting:
		return "connecting"
	}
	return "invalid"
}

// Mods is a set of pointer event modifiers.
//
type Mods uint8

// ModConnect starts drawing a connection instead of dragging, usually bound
// to Shift.
//
const ModConnect Mods = 1 << iota

// Cursor is the pointer shape the host should display.
//
type Cursor uint8

// Cursors.
//
const (
	CursorCrosshair Cursor = iota
	CursorPointer
)

// Store is a named document store.
//
type Store interface {
	Save(ctx context.Context, name string, doc *sim.Document, overwrite bool) error
	Load(ctx context.Context, name string) (*sim.Document, error)
	List(ctx context.Context) ([]string, error)
	Delete(ctx context.Context, name string) error
}

// Observer receives simulation and action events, for metrics.
//
type Observer interface {
	Propagated(full bool, r sim.Result)
	Action(name string, err error)
	Size(components, connections int)
}

type nopObserver struct{}

func (nopObserver) Propagated(bool, sim.Result) {}
func (nopObserver) Action(string, error)         {}
func (nopObserver) Size(int, int)                {}

// Controller drives a circuit from pointer events and palette actions.
//
type Controller struct {
	c        *sim.Circuit
	engine   sim.Engine
	notifier Notifier
	store    Store
	log      *slog.Logger
	obs      Observer
	redraw   func()
	now      func() time.Time
	hit      float64
	settle   bool

	mode       Mode
	active     *sim.Component // dragged component or connection source
	raised     bool           // active was brought to the top of the z-order
	selected   sim.ID
	pointer    sim.Point
	hasPointer bool
	hoverComp  *sim.Component
	hoverConn  *sim.Connection
	simulating bool
}

// Option configures a Controller.
//
type Option func(*Controller)

// WithNotifier sets the notifier. The default discards notifications.
//
func WithNotifier(n Notifier) Option { return func(d *Controller) { d.notifier = n } }

// WithStore sets the document store used by Save, Load, ListSaved and
// DeleteSaved.
//
func WithStore(s Store) Option { return func(d *Controller) { d.store = s } }

// WithLogger sets the logger. The default is slog.Default().
//
func WithLogger(l *slog.Logger) Option { return func(d *Controller) { d.log = l } }

// WithObserver sets the observer notified of propagations and actions.
//
func WithObserver(o Observer) Option { return func(d *Controller) { d.obs = o } }

// WithRedraw sets the function called whenever the circuit or the overlay
// must be redrawn.
//
func WithRedraw(fn func()) Option { return func(d *Controller) { d.redraw = fn } }

// WithHitThreshold sets the connection hit distance in pixels.
//
func WithHitThreshold(px float64) Option { return func(d *Controller) { d.hit = px } }

// WithMaxIterations sets the propagation iteration cap.
//
func WithMaxIterations(n int) Option { return func(d *Controller) { d.engine.MaxIterations = n } }

// WithSettleOnToggle selects how the circuit is re-evaluated after an input
// toggle, a new connection or a deletion while simulating. If true (the
// default), the engine starts from the current states, which keeps the value
// stored in feedback loops such as latches; after a deletion only the gates
// downstream of the removed part are reset. If false, every gate is reset
// first.
//
func WithSettleOnToggle(settle bool) Option { return func(d *Controller) { d.settle = settle } }

// WithClock sets the time source used for export metadata.
//
func WithClock(now func() time.Time) Option { return func(d *Controller) { d.now = now } }

// New returns a Controller for c. If c is nil, a new empty circuit is used.
//
func New(c *sim.Circuit, opts ...Option) *Controller {
	if c == nil {
		c = sim.NewCircuit()
	}
	d := &Controller{
		c:        c,
		notifier: nopNotifier{},
		obs:      nopObserver{},
		now:      time.Now,
		hit:      sim.DefaultHitThreshold,
		settle:   true,
	}
	for _, o := range opts {
		o(d)
	}
	if d.log == nil {
		d.log = slog.Default()
	}
	if d.engine.MaxIterations <= 0 {
		d.engine.MaxIterations = sim.DefaultMaxIterations
	}
	return d
}

// Circuit returns the circuit driven by d.
//
func (d *Controller) Circuit() *sim.Circuit { return d.c }

// Mode returns the current interaction mode.
//
func (d *Controller) Mode() Mode { return d.mode }

// Simulating returns true if simulation mode is on.
//
func (d *Controller) Simulating() bool { return d.simulating }

// Selected returns the id of the selected component, or NoID.
//
func (d *Controller) Selected() sim.ID { return d.selected }

// Active returns the component being dragged or used as connection source,
// if any.
//
func (d *Controller) Active() *sim.Component { return d.active }

// Overlay returns the transient interaction state for the renderer.
//
func (d *Controller) Overlay() render.Overlay {
	o := render.Overlay{
		Selected:     d.selected,
		Pointer:      d.pointer,
		HasPointer:   d.hasPointer,
		HitThreshold: d.hit,
	}
	if d.mode == Connecting && d.active != nil {
		o.Connecting = d.active.ID()
	}
	return o
}

// Cursor returns the cursor shape for the last known pointer position.
//
func (d *Controller) Cursor() Cursor {
	if d.hoverComp != nil || d.hoverConn != nil {
		return CursorPointer
	}
	return CursorCrosshair
}

func (d *Controller) draw() {
	if d.redraw != nil {
		d.redraw()
	}
}

// reset returns the state machine to Idle and drops references to
// components.
func (d *Controller) reset() {
	d.mode = Idle
	d.active = nil
	d.selected = sim.NoID
	d.hoverComp, d.hoverConn = nil, nil
}

func (d *Controller) propagate() sim.Result {
	r := d.engine.Propagate(d.c)
	d.observePropagation(true, r)
	return r
}

func (d *Controller) observePropagation(full bool, r sim.Result) {
	d.obs.Propagated(full, r)
	if !r.Converged {
		d.log.Warn("propagation did not converge", "iterations", r.Iterations, "full", full)
		return
	}
	d.log.Debug("propagated", "iterations", r.Iterations, "full", full)
}

// resimulate re-evaluates the circuit after an edit, if simulating.
func (d *Controller) resimulate() {
	if !d.simulating {
		return
	}
	if !d.settle {
		d.propagate()
		return
	}
	r := d.engine.Settle(d.c)
	d.observePropagation(false, r)
}

func (d *Controller) changed(action string) {
	d.obs.Action(action, nil)
	d.obs.Size(d.c.Len(), d.c.ConnectionCount())
}
