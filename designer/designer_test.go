// Copyright 2018 Denis Bernard <db047h@gmail.com>
// Licensed under the MIT license. See license text in the LICENSE file.

package designer_test

import (
	"context"
	"io"
	"log/slog"
	"testing"
	"time"

	sim "github.com/db47h/logicsim"
	"github.com/db47h/logicsim/designer"
	"github.com/db47h/logicsim/logictest"
	"github.com/db47h/logicsim/store"
	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type note struct {
	level designer.Level
	msg   string
}

type recorder struct {
	notes        []note
	redraws      int
	propagations []bool
	actions      map[string]int
	failures     map[string]int
}

func (r *recorder) Notify(l designer.Level, msg string) { r.notes = append(r.notes, note{l, msg}) }

func (r *recorder) Propagated(full bool, _ sim.Result) { r.propagations = append(r.propagations, full) }

func (r *recorder) Action(name string, err error) {
	if err != nil {
		r.failures[name]++
		return
	}
	r.actions[name]++
}

func (r *recorder) Size(int, int) {}

func (r *recorder) last() note {
	if len(r.notes) == 0 {
		return note{}
	}
	return r.notes[len(r.notes)-1]
}

func newController(opts ...designer.Option) (*designer.Controller, *recorder) {
	r := &recorder{actions: make(map[string]int), failures: make(map[string]int)}
	opts = append([]designer.Option{
		designer.WithNotifier(r),
		designer.WithObserver(r),
		designer.WithRedraw(func() { r.redraws++ }),
		designer.WithLogger(slog.New(slog.NewTextHandler(io.Discard, nil))),
	}, opts...)
	return designer.New(nil, opts...), r
}

func TestAddComponent(t *testing.T) {
	d, r := newController()
	a, err := d.AddComponent(sim.Input)
	require.NoError(t, err)
	b, err := d.AddComponent(sim.And)
	require.NoError(t, err)
	assert.Equal(t, sim.Pt(100, 150), a.Pos)
	assert.Equal(t, sim.Pt(160, 150), b.Pos)
	assert.Equal(t, note{designer.Success, "AND added - Drag to move, Shift+Click to connect"}, r.last())
	assert.Equal(t, 2, r.redraws)

	_, err = d.AddComponent(sim.Kind(42))
	assert.Error(t, err)
	assert.Equal(t, designer.Error, r.last().level)
	assert.Equal(t, 2, d.Circuit().Len())
}

func TestDrag(t *testing.T) {
	d, _ := newController()
	require.NoError(t, d.LoadExample("half-adder"))
	require.True(t, d.ToggleSimulation())
	c := d.Circuit()
	xor := c.Component(sim.IntID(3))
	before := states(c)

	d.PointerDown(sim.Pt(255, 155), 0)
	assert.Equal(t, designer.Dragging, d.Mode())
	assert.Equal(t, xor.ID(), d.Selected())
	assert.Same(t, xor, c.ComponentAt(sim.Pt(250, 150)))

	d.PointerMove(sim.Pt(300, 320))
	assert.Equal(t, sim.Pt(300, 320), xor.Pos)
	assert.Equal(t, before, states(c), "moves never propagate")

	d.PointerUp(sim.Pt(300, 320))
	assert.Equal(t, designer.Idle, d.Mode())
	assert.Nil(t, d.Active())
	assert.Equal(t, xor.ID(), d.Selected(), "selection survives the drag")

	// pointer down on empty space clears the selection.
	d.PointerDown(sim.Pt(700, 20), 0)
	assert.Equal(t, designer.Idle, d.Mode())
	assert.Equal(t, sim.NoID, d.Selected())
}

func TestConnect(t *testing.T) {
	d, r := newController()
	a, _ := d.AddComponent(sim.Input)
	o, _ := d.AddComponent(sim.Output)
	c := d.Circuit()

	d.PointerDown(a.Pos, designer.ModConnect)
	assert.Equal(t, designer.Connecting, d.Mode())
	assert.Equal(t, sim.NoID, d.Selected())
	d.PointerMove(sim.Pt(400, 300))
	ov := d.Overlay()
	assert.Equal(t, a.ID(), ov.Connecting)
	assert.Equal(t, sim.Pt(400, 300), ov.Pointer)

	// released on empty space: nothing.
	d.PointerUp(sim.Pt(400, 300))
	assert.Equal(t, designer.Idle, d.Mode())
	assert.Equal(t, 0, c.ConnectionCount())
	assert.Equal(t, sim.NoID, d.Overlay().Connecting)

	// released on the source: nothing.
	d.PointerDown(a.Pos, designer.ModConnect)
	d.PointerUp(a.Pos)
	assert.Equal(t, 0, c.ConnectionCount())

	d.PointerDown(a.Pos, designer.ModConnect)
	d.PointerMove(o.Pos)
	d.PointerUp(o.Pos)
	require.Equal(t, 1, c.ConnectionCount())
	cn := c.Connections()[0]
	assert.Equal(t, a.ID(), cn.From())
	assert.Equal(t, o.ID(), cn.To())
	assert.Equal(t, note{designer.Success, "Connection created"}, r.last())
	assert.Equal(t, designer.Idle, d.Mode())
}

func TestConnect_propagatesWhenSimulating(t *testing.T) {
	d, r := newController()
	a, _ := d.AddComponent(sim.Input)
	o, _ := d.AddComponent(sim.Output)
	d.Click(a.Pos)
	require.True(t, d.ToggleSimulation())
	assert.Equal(t, sim.Unknown, o.State())

	n := len(r.propagations)
	d.PointerDown(a.Pos, designer.ModConnect)
	d.PointerUp(o.Pos)
	assert.Len(t, r.propagations, n+1)
	assert.Equal(t, sim.High, o.State())
}

func TestClick(t *testing.T) {
	d, r := newController()
	a, _ := d.AddComponent(sim.Input)
	g, _ := d.AddComponent(sim.Not)
	_, err := d.Circuit().AddConnection(a.ID(), g.ID())
	require.NoError(t, err)

	d.Click(a.Pos)
	assert.Equal(t, sim.High, a.State())
	assert.Equal(t, note{designer.Info, "Input ON"}, r.last())
	assert.Equal(t, sim.Unknown, g.State(), "no propagation outside simulation")
	assert.Empty(t, r.propagations)

	d.Click(a.Pos)
	assert.Equal(t, sim.Low, a.State())
	assert.Equal(t, note{designer.Info, "Input OFF"}, r.last())

	// clicking a gate does nothing.
	n := len(r.notes)
	d.Click(g.Pos)
	assert.Len(t, r.notes, n)

	require.True(t, d.ToggleSimulation())
	assert.Equal(t, sim.High, g.State())
	d.Click(a.Pos)
	assert.Equal(t, sim.Low, g.State())
}

func TestSRLatchMemory(t *testing.T) {
	d, _ := newController()
	require.NoError(t, d.LoadExample("sr-latch"))
	require.True(t, d.ToggleSimulation())
	c := d.Circuit()
	set := c.Component(sim.IntID(1))
	q1, q2 := c.Component(sim.IntID(5)), c.Component(sim.IntID(6))
	assert.Equal(t, sim.Low, q1.State())

	d.Click(set.Pos)
	require.Equal(t, sim.High, set.State())
	assert.Equal(t, sim.High, q1.State())

	d.Click(set.Pos)
	require.Equal(t, sim.Low, set.State())
	assert.True(t, q1.State() == sim.High || q2.State() == sim.High, "latch forgot its state")
}

func TestSRLatch_fullPropagation(t *testing.T) {
	d, _ := newController(designer.WithSettleOnToggle(false))
	require.NoError(t, d.LoadExample("sr-latch"))
	require.True(t, d.ToggleSimulation())
	c := d.Circuit()
	set := c.Component(sim.IntID(1))
	d.Click(set.Pos)
	assert.Equal(t, sim.High, c.Component(sim.IntID(5)).State())
	d.Click(set.Pos)
	assert.Equal(t, sim.Low, c.Component(sim.IntID(5)).State())
}

func TestSRLatch_deleteKeepsMemory(t *testing.T) {
	d, r := newController()
	require.NoError(t, d.LoadExample("sr-latch"))
	require.True(t, d.ToggleSimulation())
	c := d.Circuit()
	set := c.Component(sim.IntID(1))
	q1, q2 := c.Component(sim.IntID(5)), c.Component(sim.IntID(6))
	d.Click(set.Pos)
	d.Click(set.Pos)
	require.Equal(t, sim.High, q1.State())

	n, err := d.AddComponent(sim.Not)
	require.NoError(t, err)
	full := len(r.propagations)
	d.SecondaryClick(n.Pos)
	require.Nil(t, c.Component(n.ID()))
	assert.Equal(t, sim.High, q1.State(), "latch forgot its state")
	assert.Equal(t, sim.High, q2.State())
	assert.Equal(t, []bool{false}, r.propagations[full:])

	// removing the link into output 6 only resets that output.
	d.SecondaryClick(sim.Pt(325, 200))
	assert.Nil(t, c.Connection(sim.IntID(6)))
	assert.Equal(t, sim.Unknown, q2.State())
	assert.Equal(t, sim.High, q1.State())
}

func TestSRLatch_deleteFullPropagation(t *testing.T) {
	d, r := newController(designer.WithSettleOnToggle(false))
	require.NoError(t, d.LoadExample("sr-latch"))
	require.True(t, d.ToggleSimulation())
	c := d.Circuit()
	set := c.Component(sim.IntID(1))
	d.Click(set.Pos)
	require.Equal(t, sim.High, c.Component(sim.IntID(5)).State())

	n, err := d.AddComponent(sim.Not)
	require.NoError(t, err)
	d.SecondaryClick(n.Pos)
	assert.True(t, r.propagations[len(r.propagations)-1], "full propagation")
	assert.Equal(t, sim.High, c.Component(sim.IntID(5)).State(), "set is still High")
}

func TestPointerDown_keepsOrder(t *testing.T) {
	d, _ := newController()
	require.NoError(t, d.LoadExample("half-adder"))
	c := d.Circuit()
	order := func() []sim.ID {
		var ids []sim.ID
		for _, cp := range c.Components() {
			ids = append(ids, cp.ID())
		}
		return ids
	}
	want := logictest.IDs(1, 2, 3, 4, 5, 6)

	// press and release, as before a click.
	d.PointerDown(sim.Pt(100, 100), 0)
	d.PointerUp(sim.Pt(100, 100))
	d.Click(sim.Pt(100, 100))
	assert.Equal(t, want, order())
	doc, err := d.Export()
	require.NoError(t, err)
	assert.Equal(t, sim.IntID(1), doc.Components[0].ID)

	// an actual drag raises once.
	d.PointerDown(sim.Pt(100, 100), 0)
	d.PointerMove(sim.Pt(120, 110))
	d.PointerMove(sim.Pt(130, 120))
	d.PointerUp(sim.Pt(130, 120))
	assert.Equal(t, logictest.IDs(2, 3, 4, 5, 6, 1), order())
}

func TestSecondaryClick(t *testing.T) {
	d, r := newController()
	require.NoError(t, d.LoadExample("half-adder"))
	c := d.Circuit()

	// input 1 feeds 2 connections.
	d.SecondaryClick(sim.Pt(100, 100))
	assert.Nil(t, c.Component(sim.IntID(1)))
	assert.Equal(t, 4, c.ConnectionCount())
	for _, cn := range c.Connections() {
		assert.NotEqual(t, sim.IntID(1), cn.From())
	}
	assert.Equal(t, note{designer.Success, "INPUT deleted"}, r.last())

	// connection 3 -> 5, from (250,150) to (400,150)
	d.SecondaryClick(sim.Pt(325, 155))
	assert.Equal(t, 3, c.ConnectionCount())
	assert.Nil(t, c.Connection(sim.IntID(5)))
	assert.Equal(t, note{designer.Success, "Connection deleted"}, r.last())

	n := len(r.notes)
	d.SecondaryClick(sim.Pt(700, 30))
	assert.Len(t, r.notes, n)
	assert.Equal(t, 1, r.actions["delete component"])
	assert.Equal(t, 1, r.actions["delete connection"])
}

func TestSecondaryClick_selected(t *testing.T) {
	d, _ := newController()
	a, _ := d.AddComponent(sim.And)
	d.PointerDown(a.Pos, 0)
	d.SecondaryClick(a.Pos)
	assert.Equal(t, sim.NoID, d.Selected())
	assert.Equal(t, designer.Idle, d.Mode())
	assert.Nil(t, d.Active())
	assert.NotPanics(t, func() { d.PointerMove(sim.Pt(10, 10)) })
}

func TestHoverAndCursor(t *testing.T) {
	d, r := newController()
	require.NoError(t, d.LoadExample("half-adder"))
	assert.Equal(t, designer.CursorCrosshair, d.Cursor())

	n := r.redraws
	d.PointerMove(sim.Pt(250, 150))
	assert.Equal(t, designer.CursorPointer, d.Cursor())
	assert.Equal(t, n+1, r.redraws)

	// same hover: no redraw
	d.PointerMove(sim.Pt(252, 152))
	assert.Equal(t, n+1, r.redraws)

	d.PointerMove(sim.Pt(700, 20))
	assert.Equal(t, designer.CursorCrosshair, d.Cursor())
	assert.Equal(t, n+2, r.redraws)
	assert.True(t, d.Overlay().HasPointer)
}

func TestToggleSimulation(t *testing.T) {
	d, r := newController()
	assert.False(t, d.ToggleSimulation())
	assert.Equal(t, note{designer.Warning, "Add components first"}, r.last())

	require.NoError(t, d.LoadExample("half-adder"))
	assert.True(t, d.ToggleSimulation())
	assert.Equal(t, []bool{true}, r.propagations)
	assert.Equal(t, sim.Low, d.Circuit().Component(sim.IntID(5)).State())
	assert.False(t, d.ToggleSimulation())
	assert.Equal(t, note{designer.Info, "Simulation stopped"}, r.last())
}

func TestStep(t *testing.T) {
	d, r := newController()
	require.NoError(t, d.LoadExample("half-adder"))
	c := d.Circuit()
	d.Click(sim.Pt(100, 100))
	d.Click(sim.Pt(100, 200))

	res := d.Step()
	assert.True(t, res.Converged)
	assert.False(t, d.Simulating(), "step keeps the mode")
	assert.Equal(t, sim.Low, c.Component(sim.IntID(5)).State())
	assert.Equal(t, sim.High, c.Component(sim.IntID(6)).State())
	assert.Equal(t, note{designer.Info, "Step forward"}, r.last())
}

func TestClear(t *testing.T) {
	d, r := newController()
	require.NoError(t, d.LoadExample("full-adder"))
	d.ToggleSimulation()
	d.PointerDown(sim.Pt(80, 100), 0)
	d.Clear()
	assert.Equal(t, 0, d.Circuit().Len())
	assert.Equal(t, 0, d.Circuit().ConnectionCount())
	assert.False(t, d.Simulating())
	assert.Equal(t, designer.Idle, d.Mode())
	assert.Equal(t, sim.NoID, d.Selected())
	assert.Equal(t, note{designer.Success, "Canvas cleared"}, r.last())
}

func TestLoadExample(t *testing.T) {
	d, r := newController()
	require.NoError(t, d.LoadExample("mux-2to1"))
	assert.Equal(t, 8, d.Circuit().Len())
	assert.Equal(t, note{designer.Success, "2-to-1 Multiplexer loaded - Selects between two inputs"}, r.last())

	err := d.LoadExample("nope")
	assert.True(t, errors.Is(err, sim.ErrUnknownExample))
	assert.Equal(t, note{designer.Error, "Example not found"}, r.last())
	assert.Equal(t, 8, d.Circuit().Len())
}

func TestExport(t *testing.T) {
	now := time.Date(2024, 4, 5, 12, 0, 0, 0, time.UTC)
	d, r := newController(designer.WithClock(func() time.Time { return now }))
	_, err := d.Export()
	assert.Equal(t, designer.ErrEmptyCircuit, err)
	assert.Equal(t, note{designer.Warning, "No circuit to export"}, r.last())

	require.NoError(t, d.LoadExample("half-adder"))
	doc, err := d.Export()
	require.NoError(t, err)
	require.NotNil(t, doc.Metadata)
	assert.Equal(t, now, doc.Metadata.Created)
	assert.Equal(t, "1.0", doc.Metadata.Version)
	assert.Len(t, doc.Components, 6)
	assert.Nil(t, d.Circuit().Document().Metadata)
}

func TestSaveLoad(t *testing.T) {
	ctx := context.Background()
	m := store.NewMemory()
	d, r := newController(designer.WithStore(m))
	require.NoError(t, d.LoadExample("half-adder"))
	require.NoError(t, d.Save(ctx, "ha", false))
	assert.Equal(t, note{designer.Success, `Circuit saved as "ha"`}, r.last())

	err := d.Save(ctx, "ha", false)
	assert.True(t, errors.Is(err, sim.ErrExists))
	assert.Equal(t, note{designer.Error, `A circuit named "ha" already exists`}, r.last())
	require.NoError(t, d.Save(ctx, "ha", true))

	d.Clear()
	require.NoError(t, d.Load(ctx, "ha"))
	assert.Equal(t, 6, d.Circuit().Len())
	assert.Equal(t, 6, d.Circuit().ConnectionCount())
	assert.Equal(t, note{designer.Success, "Circuit loaded successfully"}, r.last())

	names, err := d.ListSaved(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{"ha"}, names)
	require.NoError(t, d.DeleteSaved(ctx, "ha"))
	err = d.Load(ctx, "ha")
	assert.True(t, errors.Is(err, sim.ErrNotFound))
	assert.Equal(t, 6, d.Circuit().Len(), "failed load keeps the circuit")
}

func TestLoad_malformed(t *testing.T) {
	ctx := context.Background()
	m := store.NewMemory()
	m.Put("bad", []byte(`{"components": [{"id": 1, "type": "and", "x": 0, "y": 0}], "connections": [{"from": 1, "to": 9}]}`))
	d, r := newController(designer.WithStore(m))
	require.NoError(t, d.LoadExample("sr-latch"))
	before, err := d.Circuit().Document().Bytes()
	require.NoError(t, err)

	err = d.Load(ctx, "bad")
	assert.True(t, errors.Is(err, sim.ErrMalformedDocument), "got %v", err)
	assert.Equal(t, note{designer.Error, "Invalid circuit data"}, r.last())
	after, err := d.Circuit().Document().Bytes()
	require.NoError(t, err)
	assert.Equal(t, string(before), string(after))
	assert.Equal(t, 1, r.failures["load"])
}

func TestNoStore(t *testing.T) {
	ctx := context.Background()
	d, r := newController()
	require.NoError(t, d.LoadExample("half-adder"))

	err := d.Save(ctx, "x", false)
	assert.True(t, errors.Is(err, sim.ErrPersistenceUnavailable))
	assert.Equal(t, designer.Warning, r.last().level)
	err = d.Load(ctx, "x")
	assert.True(t, errors.Is(err, sim.ErrPersistenceUnavailable))
	_, err = d.ListSaved(ctx)
	assert.True(t, errors.Is(err, sim.ErrPersistenceUnavailable))
	assert.Equal(t, 6, d.Circuit().Len())
}

func states(c *sim.Circuit) map[sim.ID]sim.State {
	m := make(map[sim.ID]sim.State)
	for _, cp := range c.Components() {
		m[cp.ID()] = cp.State()
	}
	return m
}
