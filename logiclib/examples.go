// Copyright 2018 Denis Bernard <db047h@gmail.com>
// Licensed under the MIT license. See license text in the LICENSE file.

// Package logiclib provides a library of ready made circuits for logicsim.
//
// Copyright 2018 Denis Bernard <db047h@gmail.com>
//
// This package is licensed under the MIT license. See license text in the LICENSE file.
//
package logiclib

import (
	sim "github.com/db47h/logicsim"
	"github.com/pkg/errors"
)

// An Example is a named built-in circuit.
//
type Example struct {
	Name        string // lookup key, e.g. "half-adder"
	Title       string // display name
	Description string
	doc         *sim.Document
}

// Document returns a copy of the example's document. Callers may modify it
// freely.
//
func (e Example) Document() *sim.Document {
	return e.doc.Clone()
}

// Circuit returns a new circuit built from the example.
//
func (e Example) Circuit() (*sim.Circuit, error) {
	c, err := sim.FromDocument(e.doc)
	if err != nil {
		return nil, errors.WithMessagef(err, "example %s", e.Name)
	}
	return c, nil
}

const (
	in  = sim.Input
	out = sim.Output
	and = sim.And
	or  = sim.Or
	not = sim.Not
	xor = sim.Xor
)

// halfAdder adds two bits.
//
//	Inputs: 1 (A), 2 (B)
//	Outputs: 5 (Sum), 6 (Carry)
//	Function: 5 = A xor B, 6 = A and B
//
var halfAdder = Example{
	Name:        "half-adder",
	Title:       "Half Adder",
	Description: "Adds two bits (A + B = Sum, Carry)",
	doc: &sim.Document{
		Components: []sim.DocComponent{
			sim.Comp(1, in, 100, 100, sim.Low),
			sim.Comp(2, in, 100, 200, sim.Low),
			sim.Comp(3, xor, 250, 150, sim.Unknown),
			sim.Comp(4, and, 250, 250, sim.Unknown),
			sim.Comp(5, out, 400, 150, sim.Unknown),
			sim.Comp(6, out, 400, 250, sim.Unknown),
		},
		Connections: []sim.DocConnection{
			sim.Conn(1, 1, 3, in, xor),
			sim.Conn(2, 2, 3, in, xor),
			sim.Conn(3, 1, 4, in, and),
			sim.Conn(4, 2, 4, in, and),
			sim.Conn(5, 3, 5, xor, out),
			sim.Conn(6, 4, 6, and, out),
		},
	},
}

// fullAdder adds three bits.
//
//	Inputs: 1 (A), 2 (B), 3 (Cin)
//	Outputs: 9 (Sum), 10 (Cout)
//
var fullAdder = Example{
	Name:        "full-adder",
	Title:       "Full Adder",
	Description: "Adds three bits (A + B + Cin = Sum, Cout)",
	doc: &sim.Document{
		Components: []sim.DocComponent{
			sim.Comp(1, in, 80, 100, sim.Low),
			sim.Comp(2, in, 80, 180, sim.Low),
			sim.Comp(3, in, 80, 260, sim.Low),
			sim.Comp(4, xor, 200, 140, sim.Unknown),
			sim.Comp(5, xor, 320, 180, sim.Unknown),
			sim.Comp(6, and, 200, 220, sim.Unknown),
			sim.Comp(7, and, 320, 260, sim.Unknown),
			sim.Comp(8, or, 440, 240, sim.Unknown),
			sim.Comp(9, out, 560, 180, sim.Unknown),
			sim.Comp(10, out, 560, 240, sim.Unknown),
		},
		Connections: []sim.DocConnection{
			sim.Conn(1, 1, 4, in, xor),
			sim.Conn(2, 2, 4, in, xor),
			sim.Conn(3, 4, 5, xor, xor),
			sim.Conn(4, 3, 5, in, xor),
			sim.Conn(5, 1, 6, in, and),
			sim.Conn(6, 2, 6, in, and),
			sim.Conn(7, 4, 7, xor, and),
			sim.Conn(8, 3, 7, in, and),
			sim.Conn(9, 6, 8, and, or),
			sim.Conn(10, 7, 8, and, or),
			sim.Conn(11, 5, 9, xor, out),
			sim.Conn(12, 8, 10, or, out),
		},
	},
}

// srLatch is a set-reset latch made of two cross coupled OR gates.
//
//	Inputs: 1 (S), 2 (R)
//	Outputs: 5, 6
//
// Once an input has been set, its output stays High. Settle the circuit
// rather than propagate it to observe the memory effect.
//
var srLatch = Example{
	Name:        "sr-latch",
	Title:       "SR Latch",
	Description: "Set-Reset latch (basic memory)",
	doc: &sim.Document{
		Components: []sim.DocComponent{
			sim.Comp(1, in, 100, 120, sim.Low),
			sim.Comp(2, in, 100, 220, sim.Low),
			sim.Comp(3, or, 250, 140, sim.Unknown),
			sim.Comp(4, or, 250, 200, sim.Unknown),
			sim.Comp(5, out, 400, 140, sim.Unknown),
			sim.Comp(6, out, 400, 200, sim.Unknown),
		},
		Connections: []sim.DocConnection{
			sim.Conn(1, 1, 3, in, or),
			sim.Conn(2, 2, 4, in, or),
			sim.Conn(3, 4, 3, or, or),
			sim.Conn(4, 3, 4, or, or),
			sim.Conn(5, 3, 5, or, out),
			sim.Conn(6, 4, 6, or, out),
		},
	},
}

// mux2to1 selects between two inputs.
//
//	Inputs: 1 (A), 2 (B), 3 (Sel)
//	Outputs: 8
//	Function: if Sel == 0 { 8 = A } else { 8 = B }
//
var mux2to1 = Example{
	Name:        "mux-2to1",
	Title:       "2-to-1 Multiplexer",
	Description: "Selects between two inputs",
	doc: &sim.Document{
		Components: []sim.DocComponent{
			sim.Comp(1, in, 80, 100, sim.Low),
			sim.Comp(2, in, 80, 180, sim.Low),
			sim.Comp(3, in, 80, 260, sim.Low),
			sim.Comp(4, not, 200, 260, sim.Unknown),
			sim.Comp(5, and, 320, 120, sim.Unknown),
			sim.Comp(6, and, 320, 200, sim.Unknown),
			sim.Comp(7, or, 460, 160, sim.Unknown),
			sim.Comp(8, out, 580, 160, sim.Unknown),
		},
		Connections: []sim.DocConnection{
			sim.Conn(1, 3, 4, in, not),
			sim.Conn(2, 1, 5, in, and),
			sim.Conn(3, 4, 5, not, and),
			sim.Conn(4, 2, 6, in, and),
			sim.Conn(5, 3, 6, in, and),
			sim.Conn(6, 5, 7, and, or),
			sim.Conn(7, 6, 7, and, or),
			sim.Conn(8, 7, 8, or, out),
		},
	},
}

var examples = []*Example{&halfAdder, &fullAdder, &srLatch, &mux2to1}

// Names returns the names of all built-in examples, in display order.
//
func Names() []string {
	n := make([]string, len(examples))
	for i, e := range examples {
		n[i] = e.Name
	}
	return n
}

// Lookup returns the example with the given name.
//
func Lookup(name string) (Example, bool) {
	for _, e := range examples {
		if e.Name == name {
			return *e, true
		}
	}
	return Example{}, false
}

// All returns all built-in examples, in display order.
//
func All() []Example {
	r := make([]Example, len(examples))
	for i, e := range examples {
		r[i] = *e
	}
	return r
}
