// Copyright 2018 Denis Bernard <db047h@gmail.com>
// Licensed under the MIT license. See license text in the LICENSE file.

package logicsim

// DefaultMaxIterations is the default iteration cap of an Engine.
//
const DefaultMaxIterations = 100

// Result reports how a propagation went.
//
type Result struct {
	// Iterations is the number of full passes over the circuit.
	Iterations int
	// Converged is false if the iteration cap was reached while the last pass
	// still changed some state. This is expected for oscillating feedback
	// loops and is not an error.
	Converged bool
}

// An Engine computes the steady state of a circuit.
//
// Evaluation is iterative: each pass evaluates every non-input component in
// z-order with the current states of its inputs, updating states in place.
// Passes stop as soon as one of them leaves all states unchanged (a fixed
// point) or when MaxIterations passes have run. Feedback loops such as latches
// are supported: they either stabilize or are frozen in their last computed
// state when the cap is reached.
//
// The zero value is ready to use and uses DefaultMaxIterations.
//
type Engine struct {
	// MaxIterations caps the number of passes. Values <= 0 select
	// DefaultMaxIterations.
	MaxIterations int
}

func (e *Engine) maxIterations() int {
	if e == nil || e.MaxIterations <= 0 {
		return DefaultMaxIterations
	}
	return e.MaxIterations
}

// Propagate resets the state of every non-input component of c to Unknown,
// then runs passes until a fixed point or the iteration cap is reached.
// Input states are never modified. Components that never receive a known input
// remain Unknown.
//
func (e *Engine) Propagate(c *Circuit) Result {
	for _, cp := range c.comps {
		if cp.kind != Input {
			cp.state = Unknown
		}
	}
	return e.Settle(c)
}

// Settle runs passes from the current states of c, without resetting them
// first. Feedback loops keep the value they hold, which gives latches their
// memory when an input changes.
//
func (e *Engine) Settle(c *Circuit) Result {
	limit := e.maxIterations()
	var (
		in  []State
		res Result
	)
	for res.Iterations < limit {
		res.Iterations++
		changed := false
		for _, cp := range c.comps {
			if cp.kind == Input {
				continue
			}
			in = c.knownInputs(cp.id, in[:0])
			if len(in) == 0 {
				continue
			}
			if s := cp.kind.Eval(in); s != cp.state {
				cp.state = s
				changed = true
			}
		}
		if !changed {
			res.Converged = true
			break
		}
	}
	return res
}

// Invalidate resets to Unknown every non-input component reachable from the
// components ids through connections, ids included, then settles c. The rest
// of the circuit keeps its state, feedback loops included. Absent ids are
// ignored.
//
func (e *Engine) Invalidate(c *Circuit, ids ...ID) Result {
	seen := make(map[ID]bool, len(ids))
	stack := append([]ID(nil), ids...)
	for len(stack) > 0 {
		id := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		if seen[id] {
			continue
		}
		seen[id] = true
		cp := c.byID[id]
		if cp == nil {
			continue
		}
		if cp.kind != Input {
			cp.state = Unknown
		}
		for _, cn := range c.conns {
			if cn.from == id && !seen[cn.to] {
				stack = append(stack, cn.to)
			}
		}
	}
	return e.Settle(c)
}

// knownInputs appends to buf the known states of the inputs of component id.
//
func (c *Circuit) knownInputs(id ID, buf []State) []State {
	for _, cn := range c.conns {
		if cn.to != id {
			continue
		}
		if s := c.byID[cn.from].state; s.Known() {
			buf = append(buf, s)
		}
	}
	return buf
}

// Propagate runs a default Engine on c.
//
func Propagate(c *Circuit) Result {
	var e Engine
	return e.Propagate(c)
}
