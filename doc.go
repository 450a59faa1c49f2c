/*
Package logicsim provides the model and simulation engine of an interactive
logic circuit designer.

A Circuit is a graph of components (inputs, outputs and AND, OR, NOT, XOR
gates) joined by directed connections. Components have a position on a 2D
drawing surface and can be found by hit testing (ComponentAt, ConnectionNear).

An Engine computes the steady state of a circuit by iterating gate evaluation
until a fixed point is reached or an iteration cap is hit. Cycles are allowed,
which makes it possible to build latches:

	c := logicsim.NewCircuit()
	a := c.AddComponent(logicsim.Input, logicsim.Pt(100, 100))
	b := c.AddComponent(logicsim.Input, logicsim.Pt(100, 200))
	and := c.AddComponent(logicsim.And, logicsim.Pt(250, 150))
	out := c.AddComponent(logicsim.Output, logicsim.Pt(400, 150))
	c.AddConnection(a.ID(), and.ID())
	c.AddConnection(b.ID(), and.ID())
	c.AddConnection(and.ID(), out.ID())
	c.SetInput(a.ID(), logicsim.High)
	c.SetInput(b.ID(), logicsim.High)
	logicsim.Propagate(c) // out.State() == logicsim.High

Circuits are serialized as JSON documents (see Document) for storage and
export.

The designer sub-package implements direct manipulation of a circuit from
pointer events, and the render package draws it.

*/
package logicsim
