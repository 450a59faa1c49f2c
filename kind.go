// Copyright 2018 Denis Bernard <db047h@gmail.com>
// Licensed under the MIT license. See license text in the LICENSE file.

package logicsim

import (
	"github.com/pkg/errors"
)

// Kind identifies the type of a component. The set of kinds is closed.
//
type Kind uint8

// Component kinds.
//
const (
	Input Kind = iota
	Output
	And
	Or
	Not
	Xor
	kindCount
)

// kindSpec is the fixed blueprint shared by all components of a kind.
type kindSpec struct {
	name   string // document type name
	label  string
	in     int
	out    int
	width  float64
	height float64
}

var kinds = [kindCount]kindSpec{
	Input:  {"input", "IN", 0, 1, 40, 30},
	Output: {"output", "OUT", 1, 0, 40, 30},
	And:    {"and", "AND", 2, 1, 50, 40},
	Or:     {"or", "OR", 2, 1, 50, 40},
	Not:    {"not", "NOT", 1, 1, 40, 30},
	Xor:    {"xor", "XOR", 2, 1, 50, 40},
}

// Kinds returns all component kinds in palette order.
//
func Kinds() []Kind {
	return []Kind{Input, Output, And, Or, Not, Xor}
}

// ParseKind returns the Kind for the given document type name.
//
func ParseKind(name string) (Kind, error) {
	for k := range kinds {
		if kinds[k].name == name {
			return Kind(k), nil
		}
	}
	return 0, errors.Errorf("unknown component type %q", name)
}

// Valid reports whether k is one of the defined kinds.
//
func (k Kind) Valid() bool { return k < kindCount }

// String returns the document type name of k ("input", "and", ...).
//
func (k Kind) String() string {
	if !k.Valid() {
		return "invalid"
	}
	return kinds[k].name
}

// Label returns the short upper case label drawn on components of kind k.
//
func (k Kind) Label() string {
	if !k.Valid() {
		return "?"
	}
	return kinds[k].label
}

// Arity returns the number of logical inputs and outputs of kind k, or 0, 0
// for an invalid kind.
//
//	Input:         0 in, 1 out
//	Output:        1 in, 0 out
//	And, Or, Xor:  2 in, 1 out
//	Not:           1 in, 1 out
//
func (k Kind) Arity() (in, out int) {
	if !k.Valid() {
		return 0, 0
	}
	return kinds[k].in, kinds[k].out
}

// Size returns the width and height of the bounding box of components of kind
// k. An invalid kind has an empty box.
//
func (k Kind) Size() (w, h float64) {
	if !k.Valid() {
		return 0, 0
	}
	return kinds[k].width, kinds[k].height
}

// Bounds returns the bounding box of a component of kind k centered on c.
//
func (k Kind) Bounds(c Point) Rect {
	w, h := k.Size()
	return Rect{
		Min: Point{c.X - w/2, c.Y - h/2},
		Max: Point{c.X + w/2, c.Y + h/2},
	}
}

// Eval computes the output state of a component of kind k given its known
// input states. in must not contain Unknown values and must not be empty.
// Single input kinds only look at in[0]; extra inputs are ignored.
//
// Eval returns Unknown for Input components since their state is never
// computed.
//
func (k Kind) Eval(in []State) State {
	switch k {
	case Input:
		return Unknown
	case Output:
		return in[0]
	case And:
		for _, s := range in {
			if s != High {
				return Low
			}
		}
		return High
	case Or:
		for _, s := range in {
			if s == High {
				return High
			}
		}
		return Low
	case Not:
		if in[0] == High {
			return Low
		}
		return High
	case Xor:
		n := 0
		for _, s := range in {
			if s == High {
				n++
			}
		}
		return FromBool(n&1 == 1)
	}
	panic("invalid component kind")
}
