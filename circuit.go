// Copyright 2018 Denis Bernard <db047h@gmail.com>
// Licensed under the MIT license. See license text in the LICENSE file.

package logicsim

import (
	"github.com/pkg/errors"
)

// A Component is a node of a circuit: an input source, an output sink or a
// logic gate.
//
type Component struct {
	id    ID
	kind  Kind
	state State

	// Pos is the center of the component on the drawing surface.
	Pos Point
}

// ID returns the component ID.
//
func (c *Component) ID() ID { return c.id }

// Kind returns the component kind.
//
func (c *Component) Kind() Kind { return c.kind }

// State returns the current state of the component. For inputs this is the
// value set by the user, for any other kind, the value last computed by an
// Engine.
//
func (c *Component) State() State { return c.state }

// Bounds returns the component's bounding box.
//
func (c *Component) Bounds() Rect { return c.kind.Bounds(c.Pos) }

// A Connection is a directed edge carrying the output of its From component to
// one of the inputs of its To component.
//
type Connection struct {
	id       ID
	from, to ID

	// kinds of the endpoints at creation time.
	fromKind, toKind Kind
}

// ID returns the connection ID.
//
func (cn *Connection) ID() ID { return cn.id }

// From returns the ID of the source component.
//
func (cn *Connection) From() ID { return cn.from }

// To returns the ID of the destination component.
//
func (cn *Connection) To() ID { return cn.to }

// Kinds returns the kinds of both endpoints, as recorded when the connection
// was created.
//
func (cn *Connection) Kinds() (from, to Kind) { return cn.fromKind, cn.toKind }

// Circuit is a graph of components and connections.
//
// Components are kept in z-order: the last one is drawn on top of the others
// and is the first one found by hit tests. Connections are kept in insertion
// order.
//
// A Circuit guarantees that every connection references components present in
// the circuit. It is not safe for concurrent use.
//
type Circuit struct {
	comps []*Component
	conns []*Connection
	byID  map[ID]*Component
	next  int64 // next fresh ID
}

// NewCircuit returns a new empty circuit.
//
func NewCircuit() *Circuit {
	return &Circuit{
		byID: make(map[ID]*Component),
		next: 1,
	}
}

// newID returns a fresh ID, unused by any component or connection.
//
func (c *Circuit) newID() ID {
	for {
		id := IntID(c.next)
		c.next++
		if c.byID[id] == nil && c.Connection(id) == nil {
			return id
		}
	}
}

// reserve makes sure that fresh IDs never collide with id.
//
func (c *Circuit) reserve(id ID) {
	if n, ok := id.intValue(); ok && n >= c.next {
		c.next = n + 1
	}
}

// AddComponent creates a new component of the given kind centered on pos and
// places it on top of all others. Inputs start Low, all other kinds Unknown.
//
func (c *Circuit) AddComponent(k Kind, pos Point) *Component {
	if !k.Valid() {
		panic("invalid component kind")
	}
	cp := &Component{id: c.newID(), kind: k, Pos: pos}
	if k == Input {
		cp.state = Low
	}
	c.comps = append(c.comps, cp)
	c.byID[cp.id] = cp
	return cp
}

// RemoveComponent removes the component with the given id together with all
// connections from or to it. It returns false if there is no such component.
//
func (c *Circuit) RemoveComponent(id ID) bool {
	cp := c.byID[id]
	if cp == nil {
		return false
	}
	for i, p := range c.comps {
		if p == cp {
			c.comps = append(c.comps[:i], c.comps[i+1:]...)
			break
		}
	}
	delete(c.byID, id)

	conns := c.conns[:0]
	for _, cn := range c.conns {
		if cn.from != id && cn.to != id {
			conns = append(conns, cn)
		}
	}
	for i := len(conns); i < len(c.conns); i++ {
		c.conns[i] = nil
	}
	c.conns = conns
	return true
}

// AddConnection connects the output of component from to an input of component
// to. Duplicate connections, self loops and cycles are allowed.
//
// It fails with ErrInvalidReference if either component does not exist, in
// which case the circuit is left unchanged.
//
func (c *Circuit) AddConnection(from, to ID) (*Connection, error) {
	f, t := c.byID[from], c.byID[to]
	if f == nil {
		return nil, errors.Wrapf(ErrInvalidReference, "connection source %q", from)
	}
	if t == nil {
		return nil, errors.Wrapf(ErrInvalidReference, "connection destination %q", to)
	}
	cn := &Connection{
		id:       c.newID(),
		from:     from,
		to:       to,
		fromKind: f.kind,
		toKind:   t.kind,
	}
	c.conns = append(c.conns, cn)
	return cn, nil
}

// RemoveConnection removes the connection with the given id. It returns false
// if there is no such connection.
//
func (c *Circuit) RemoveConnection(id ID) bool {
	for i, cn := range c.conns {
		if cn.id == id {
			copy(c.conns[i:], c.conns[i+1:])
			c.conns[len(c.conns)-1] = nil
			c.conns = c.conns[:len(c.conns)-1]
			return true
		}
	}
	return false
}

// Clear removes all components and connections. IDs handed out before Clear
// are not reused.
//
func (c *Circuit) Clear() {
	c.comps = nil
	c.conns = nil
	c.byID = make(map[ID]*Component)
}

// Component returns the component with the given id or nil.
//
func (c *Circuit) Component(id ID) *Component { return c.byID[id] }

// Connection returns the connection with the given id or nil.
//
func (c *Circuit) Connection(id ID) *Connection {
	for _, cn := range c.conns {
		if cn.id == id {
			return cn
		}
	}
	return nil
}

// Components returns the components in z-order, bottommost first. The returned
// slice is a copy; the components are not.
//
func (c *Circuit) Components() []*Component {
	return append([]*Component(nil), c.comps...)
}

// Connections returns the connections in insertion order. The returned slice
// is a copy; the connections are not.
//
func (c *Circuit) Connections() []*Connection {
	return append([]*Connection(nil), c.conns...)
}

// Len returns the number of components in the circuit.
//
func (c *Circuit) Len() int { return len(c.comps) }

// ConnectionCount returns the number of connections in the circuit.
//
func (c *Circuit) ConnectionCount() int { return len(c.conns) }

// InputsOf returns the states of the source components of all connections
// ending at component id, in connection insertion order.
//
func (c *Circuit) InputsOf(id ID) []State {
	var in []State
	for _, cn := range c.conns {
		if cn.to == id {
			in = append(in, c.byID[cn.from].state)
		}
	}
	return in
}

// Move moves the component with the given id to pos.
//
func (c *Circuit) Move(id ID, pos Point) error {
	cp := c.byID[id]
	if cp == nil {
		return errors.Wrapf(ErrNotFound, "component %q", id)
	}
	cp.Pos = pos
	return nil
}

// Raise moves the component with the given id on top of all others.
//
func (c *Circuit) Raise(id ID) {
	for i, cp := range c.comps {
		if cp.id == id {
			copy(c.comps[i:], c.comps[i+1:])
			c.comps[len(c.comps)-1] = cp
			return
		}
	}
}

// SetInput sets the state of input component id. It fails with ErrNotInput if
// the component is not an input and with ErrNotFound if it does not exist.
// Unknown is not a valid input state.
//
func (c *Circuit) SetInput(id ID, s State) error {
	cp := c.byID[id]
	if cp == nil {
		return errors.Wrapf(ErrNotFound, "component %q", id)
	}
	if cp.kind != Input {
		return errors.Wrapf(ErrNotInput, "component %q is %s", id, cp.kind)
	}
	if !s.Known() {
		return errors.Errorf("invalid input state %v", s)
	}
	cp.state = s
	return nil
}

// Toggle flips the state of input component id and returns its new state.
//
func (c *Circuit) Toggle(id ID) (State, error) {
	cp := c.byID[id]
	if cp == nil {
		return Unknown, errors.Wrapf(ErrNotFound, "component %q", id)
	}
	if err := c.SetInput(id, cp.state.Invert()); err != nil {
		return Unknown, err
	}
	return cp.state, nil
}
