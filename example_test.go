// Copyright 2018 Denis Bernard <db047h@gmail.com>
// Licensed under the MIT license. See license text in the LICENSE file.

package logicsim_test

import (
	"fmt"
	"os"

	sim "github.com/db47h/logicsim"
)

func Example() {
	c := sim.NewCircuit()
	a := c.AddComponent(sim.Input, sim.Pt(100, 100))
	b := c.AddComponent(sim.Input, sim.Pt(100, 200))
	x := c.AddComponent(sim.Xor, sim.Pt(250, 150))
	sum := c.AddComponent(sim.Output, sim.Pt(400, 150))
	for _, cn := range [][2]sim.ID{{a.ID(), x.ID()}, {b.ID(), x.ID()}, {x.ID(), sum.ID()}} {
		if _, err := c.AddConnection(cn[0], cn[1]); err != nil {
			panic(err)
		}
	}

	for _, in := range [][2]sim.State{{sim.Low, sim.Low}, {sim.Low, sim.High}, {sim.High, sim.High}} {
		c.SetInput(a.ID(), in[0])
		c.SetInput(b.ID(), in[1])
		sim.Propagate(c)
		fmt.Printf("%s xor %s = %s\n", a.State(), b.State(), sum.State())
	}

	// Output:
	// 0 xor 0 = 0
	// 0 xor 1 = 1
	// 1 xor 1 = 0
}

func ExampleCircuit_Document() {
	c := sim.NewCircuit()
	in := c.AddComponent(sim.Input, sim.Pt(100, 150))
	n := c.AddComponent(sim.Not, sim.Pt(160, 150))
	if _, err := c.AddConnection(in.ID(), n.ID()); err != nil {
		panic(err)
	}
	sim.Propagate(c)
	if err := c.Document().Encode(os.Stdout); err != nil {
		panic(err)
	}

	// Output:
	// {
	//   "components": [
	//     {
	//       "id": 1,
	//       "type": "input",
	//       "x": 100,
	//       "y": 150,
	//       "state": 0
	//     },
	//     {
	//       "id": 2,
	//       "type": "not",
	//       "x": 160,
	//       "y": 150,
	//       "state": 1
	//     }
	//   ],
	//   "connections": [
	//     {
	//       "id": 3,
	//       "from": 1,
	//       "to": 2,
	//       "fromType": "input",
	//       "toType": "not"
	//     }
	//   ]
	// }
}
