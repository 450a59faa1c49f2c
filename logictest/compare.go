// Copyright 2018 Denis Bernard <db047h@gmail.com>
// Licensed under the MIT license. See license text in the LICENSE file.

// Package logictest provides utility functions for testing circuits.
//
package logictest

import (
	"fmt"
	"math/rand"
	"strings"
	"testing"
	"time"

	sim "github.com/db47h/logicsim"
)

// maxExhaustive is the number of inputs above which combinations are sampled
// randomly instead of enumerated.
const maxExhaustive = 12

func randBool(r *rand.Rand) bool {
	return r.Int63()&(1<<62) != 0
}

// SetInputs sets the Input components ids to the given values.
//
func SetInputs(t testing.TB, c *sim.Circuit, ids []sim.ID, values []bool) {
	t.Helper()
	if len(ids) != len(values) {
		t.Fatalf("SetInputs: %d ids, %d values", len(ids), len(values))
	}
	for i, id := range ids {
		if err := c.SetInput(id, sim.FromBool(values[i])); err != nil {
			t.Fatal(err)
		}
	}
}

// States returns the states of the given components. Absent components read
// as Unknown.
//
func States(c *sim.Circuit, ids []sim.ID) []sim.State {
	r := make([]sim.State, len(ids))
	for i, id := range ids {
		if cp := c.Component(id); cp != nil {
			r[i] = cp.State()
		}
	}
	return r
}

func errString(ins []sim.ID, values []bool, oname sim.ID, ex, got sim.State) string {
	var b strings.Builder
	for i, n := range ins {
		if b.Len() > 0 {
			b.WriteString(", ")
		}
		b.WriteString(n.String())
		b.WriteRune('=')
		b.WriteString(sim.FromBool(values[i]).String())
	}
	return fmt.Sprintf("\nExpected %s => %s=%v\nGot %v", b.String(), oname, ex, got)
}

// combinations calls fn for every combination of n inputs, or for a random
// sample of them when n is large. All zeros and all ones are always tried.
func combinations(n int, fn func(in []bool) bool) {
	in := make([]bool, n)
	if n <= maxExhaustive {
		for v := 0; v < 1<<uint(n); v++ {
			for i := range in {
				in[i] = v&(1<<uint(i)) != 0
			}
			if !fn(in) {
				return
			}
		}
		return
	}
	if !fn(in) {
		return
	}
	for i := range in {
		in[i] = true
	}
	if !fn(in) {
		return
	}
	r := rand.New(rand.NewSource(time.Now().UnixNano()))
	for iter := 0; iter < 1<<maxExhaustive; iter++ {
		for i := range in {
			in[i] = randBool(r)
		}
		if !fn(in) {
			return
		}
	}
}

// TruthTable checks that, for every combination of inputs, the propagated
// states of outputs match fn. fn receives input values in the order of
// inputs and must return one value per output.
//
func TruthTable(t testing.TB, c *sim.Circuit, inputs, outputs []sim.ID, fn func(in []bool) []bool) {
	t.Helper()
	var e sim.Engine
	combinations(len(inputs), func(in []bool) bool {
		SetInputs(t, c, inputs, in)
		if res := e.Propagate(c); !res.Converged {
			t.Errorf("circuit did not converge after %d iterations", res.Iterations)
			return false
		}
		ex := fn(in)
		if len(ex) != len(outputs) {
			t.Fatalf("TruthTable: %d expected values for %d outputs", len(ex), len(outputs))
		}
		for i, got := range States(c, outputs) {
			if want := sim.FromBool(ex[i]); got != want {
				t.Error(errString(inputs, in, outputs[i], want, got))
				return false
			}
		}
		return true
	})
}

// Compare checks that two circuits produce the same outputs given the same
// inputs. Both circuits must have the same number of inputs and outputs;
// inputs and outputs are matched by position in the id lists.
//
func Compare(t testing.TB, c1 *sim.Circuit, in1, out1 []sim.ID, c2 *sim.Circuit, in2, out2 []sim.ID) {
	t.Helper()
	if len(in1) != len(in2) {
		t.Fatal("len(in1) != len(in2)")
	}
	if len(out1) != len(out2) {
		t.Fatal("len(out1) != len(out2)")
	}
	var e sim.Engine
	combinations(len(in1), func(in []bool) bool {
		SetInputs(t, c1, in1, in)
		SetInputs(t, c2, in2, in)
		e.Propagate(c1)
		e.Propagate(c2)
		s1, s2 := States(c1, out1), States(c2, out2)
		for i := range s1 {
			if s1[i] != s2[i] {
				t.Error(errString(in1, in, out1[i], s1[i], s2[i]))
				return false
			}
		}
		return true
	})
}

// IDs converts integer ids to a slice of ID.
//
func IDs(ids ...int64) []sim.ID {
	r := make([]sim.ID, len(ids))
	for i, n := range ids {
		r[i] = sim.IntID(n)
	}
	return r
}
