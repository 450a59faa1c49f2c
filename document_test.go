// Copyright 2018 Denis Bernard <db047h@gmail.com>
// Licensed under the MIT license. See license text in the LICENSE file.

package logicsim_test

import (
	"bytes"
	"encoding/json"
	"math/rand"
	"strings"
	"testing"
	"testing/quick"

	sim "github.com/db47h/logicsim"
	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sameCircuit(t *testing.T, want, got *sim.Circuit) {
	t.Helper()
	wc, gc := want.Components(), got.Components()
	require.Equal(t, len(wc), len(gc))
	for i := range wc {
		assert.Equal(t, wc[i].ID(), gc[i].ID())
		assert.Equal(t, wc[i].Kind(), gc[i].Kind())
		assert.Equal(t, wc[i].Pos, gc[i].Pos)
		assert.Equal(t, wc[i].State(), gc[i].State())
	}
	wn, gn := want.Connections(), got.Connections()
	require.Equal(t, len(wn), len(gn))
	for i := range wn {
		assert.Equal(t, wn[i].ID(), gn[i].ID())
		assert.Equal(t, wn[i].From(), gn[i].From())
		assert.Equal(t, wn[i].To(), gn[i].To())
	}
}

func TestDocument_roundTrip(t *testing.T) {
	c, _, _ := andCircuit(t, sim.High, sim.Low)
	sim.Propagate(c)

	var buf bytes.Buffer
	require.NoError(t, c.Document().Encode(&buf))
	doc, err := sim.Decode(&buf)
	require.NoError(t, err)
	got := sim.NewCircuit()
	require.NoError(t, got.Load(doc))
	sameCircuit(t, c, got)
}

func TestDocument_roundTrip_quick(t *testing.T) {
	f := func(seed int64, size uint8) bool {
		r := rand.New(rand.NewSource(seed))
		c := randomCircuit(r, int(size%20))
		sim.Propagate(c)
		b, err := c.Document().Bytes()
		if err != nil {
			return false
		}
		doc, err := sim.ParseDocument(b)
		if err != nil {
			return false
		}
		got, err := sim.FromDocument(doc)
		if err != nil {
			return false
		}
		b2, err := got.Document().Bytes()
		return err == nil && bytes.Equal(b, b2)
	}
	if err := quick.Check(f, nil); err != nil {
		t.Error(err)
	}
}

func TestDocument_shape(t *testing.T) {
	c := sim.NewCircuit()
	a := c.AddComponent(sim.Input, sim.Pt(100, 150))
	g := c.AddComponent(sim.Not, sim.Pt(160.5, 150))
	_, err := c.AddConnection(a.ID(), g.ID())
	require.NoError(t, err)

	b, err := json.Marshal(c.Document())
	require.NoError(t, err)
	assert.JSONEq(t, `{
		"components": [
			{"id": 1, "type": "input", "x": 100, "y": 150, "state": 0},
			{"id": 2, "type": "not", "x": 160.5, "y": 150, "state": null}
		],
		"connections": [
			{"id": 3, "from": 1, "to": 2, "fromType": "input", "toType": "not"}
		]
	}`, string(b))
}

func TestDocument_ids(t *testing.T) {
	// ids as produced by a timestamp based generator, and string ids.
	const src = `{
		"components": [
			{"id": 1712345678901.37, "type": "input", "x": 1, "y": 2, "state": 1},
			{"id": "gate", "type": "or", "x": 3, "y": 4, "state": null}
		],
		"connections": [
			{"from": 1712345678901.37, "to": "gate"}
		],
		"metadata": {"created": "2024-04-05T12:00:00Z", "version": "1.0"}
	}`
	doc, err := sim.ParseDocument([]byte(src))
	require.NoError(t, err)
	c, err := sim.FromDocument(doc)
	require.NoError(t, err)

	in := c.Component(sim.ParseID("1712345678901.37"))
	require.NotNil(t, in)
	assert.Equal(t, sim.High, in.State())
	require.NotNil(t, c.Component(sim.StringID("gate")))
	require.Equal(t, 1, c.ConnectionCount())
	cn := c.Connections()[0]
	assert.NotEqual(t, sim.NoID, cn.ID(), "missing connection ids are allocated")
	fk, tk := cn.Kinds()
	assert.Equal(t, sim.Input, fk)
	assert.Equal(t, sim.Or, tk)

	// fresh ids stay clear of loaded ones
	cp := c.AddComponent(sim.And, sim.Pt(0, 0))
	assert.NotEqual(t, in.ID(), cp.ID())
	assert.NotEqual(t, cn.ID(), cp.ID())

	b, err := json.Marshal(c.Document())
	require.NoError(t, err)
	assert.Contains(t, string(b), `"id":1712345678901.37`)
	assert.Contains(t, string(b), `"id":"gate"`)
}

func TestDocument_idTypes(t *testing.T) {
	const src = `{
		"components": [
			{"id": 3, "type": "input", "x": 0, "y": 0, "state": 1},
			{"id": "3", "type": "not", "x": 50, "y": 0},
			{"id": "42", "type": "output", "x": 100, "y": 0},
			{"id": 2, "type": "output", "x": 100, "y": 50}
		],
		"connections": [
			{"id": 7, "from": 3.0, "to": "3"},
			{"id": "7", "from": "3", "to": "42"},
			{"id": 8, "from": 3e0, "to": 2.00}
		]
	}`
	doc, err := sim.ParseDocument([]byte(src))
	require.NoError(t, err)
	c, err := sim.FromDocument(doc)
	require.NoError(t, err, "the number 3 and the string \"3\" are distinct ids")

	num, str := c.Component(sim.IntID(3)), c.Component(sim.StringID("3"))
	require.NotNil(t, num)
	require.NotNil(t, str)
	assert.Equal(t, sim.Input, num.Kind())
	assert.Equal(t, sim.Not, str.Kind())
	assert.True(t, str.ID().IsString())
	assert.False(t, num.ID().IsString())
	assert.Nil(t, c.Component(sim.IntID(42)))
	assert.NotNil(t, c.Component(sim.StringID("42")))

	cn := c.Connections()
	require.Len(t, cn, 3)
	assert.Equal(t, sim.IntID(3), cn[0].From(), "3.0 is the number 3")
	assert.Equal(t, sim.IntID(3), cn[2].From(), "3e0 is the number 3")
	assert.Equal(t, sim.IntID(2), cn[2].To())
	assert.Equal(t, []sim.State{sim.High}, c.InputsOf(str.ID()))

	b, err := json.Marshal(c.Document())
	require.NoError(t, err)
	assert.JSONEq(t, `{
		"components": [
			{"id": 3, "type": "input", "x": 0, "y": 0, "state": 1},
			{"id": "3", "type": "not", "x": 50, "y": 0, "state": null},
			{"id": "42", "type": "output", "x": 100, "y": 0, "state": null},
			{"id": 2, "type": "output", "x": 100, "y": 50, "state": null}
		],
		"connections": [
			{"id": 7, "from": 3, "to": "3", "fromType": "input", "toType": "not"},
			{"id": "7", "from": "3", "to": "42", "fromType": "not", "toType": "output"},
			{"id": 8, "from": 3, "to": 2, "fromType": "input", "toType": "output"}
		]
	}`, string(b))
}

func TestParseID(t *testing.T) {
	td := []struct {
		in   string
		text string
		str  bool
	}{
		{"1", "1", false},
		{"1.0", "1", false},
		{"-0", "0", false},
		{"1e3", "1000", false},
		{"1712345678901.37", "1712345678901.37", false},
		{"9007199254740993", "9007199254740993", false},
		{"0.12345678901234567890", "0.12345678901234567890", false},
		{"gate", "gate", true},
		{"01", "01", true},
		{"1.", "1.", true},
		{"", "", false},
	}
	for _, d := range td {
		t.Run(d.in, func(t *testing.T) {
			id := sim.ParseID(d.in)
			assert.Equal(t, d.text, id.String())
			assert.Equal(t, d.str, id.IsString())
		})
	}
	assert.Equal(t, sim.NoID, sim.ParseID(""))
	assert.Equal(t, sim.ParseID("2.50"), sim.ParseID("2.5"))
	assert.NotEqual(t, sim.ParseID("2"), sim.StringID("2"))
	_, err := sim.NumberID("abc")
	assert.Error(t, err)
}

func TestDocument_malformed(t *testing.T) {
	td := []struct {
		name string
		src  string
	}{
		{"not_json", `{"components": [`},
		{"no_components", `{"connections": []}`},
		{"null_components", `{"components": null}`},
		{"bad_type", `{"components": [{"id": 1, "type": "nand", "x": 0, "y": 0}]}`},
		{"missing_id", `{"components": [{"type": "and", "x": 0, "y": 0}]}`},
		{"missing_x", `{"components": [{"id": 1, "type": "and", "y": 0}]}`},
		{"duplicate_id", `{"components": [{"id": 1, "type": "and", "x": 0, "y": 0}, {"id": 1, "type": "or", "x": 0, "y": 0}]}`},
		{"duplicate_numeric_id", `{"components": [{"id": 1, "type": "and", "x": 0, "y": 0}, {"id": 1.0, "type": "or", "x": 0, "y": 0}]}`},
		{"string_endpoint", `{"components": [{"id": 1, "type": "and", "x": 0, "y": 0}], "connections": [{"from": "1", "to": 1}]}`},
		{"bad_state", `{"components": [{"id": 1, "type": "and", "x": 0, "y": 0, "state": 2}]}`},
		{"dangling", `{"components": [{"id": 1, "type": "and", "x": 0, "y": 0}], "connections": [{"id": 1, "from": 1, "to": 2}]}`},
		{"duplicate_connection", `{"components": [{"id": 1, "type": "and", "x": 0, "y": 0}], "connections": [{"id": 1, "from": 1, "to": 1}, {"id": 1, "from": 1, "to": 1}]}`},
	}
	for _, d := range td {
		t.Run(d.name, func(t *testing.T) {
			c, _, _ := andCircuit(t, sim.High, sim.High)
			before, err := c.Document().Bytes()
			require.NoError(t, err)

			doc, err := sim.Decode(strings.NewReader(d.src))
			if err == nil {
				err = c.Load(doc)
			}
			assert.True(t, errors.Is(err, sim.ErrMalformedDocument), "got %v", err)

			after, err := c.Document().Bytes()
			require.NoError(t, err)
			assert.Equal(t, string(before), string(after), "circuit modified by failed load")
		})
	}
}

func TestDocument_lenient(t *testing.T) {
	doc, err := sim.ParseDocument([]byte(`{"components": [{"id": 7, "type": "input", "x": 0, "y": 0, "state": null}]}`))
	require.NoError(t, err)
	c := sim.NewCircuit()
	require.NoError(t, c.Load(doc))
	assert.Equal(t, sim.Low, c.Component(sim.IntID(7)).State())
	assert.Equal(t, 0, c.ConnectionCount())
	assert.Equal(t, sim.IntID(8), c.AddComponent(sim.Not, sim.Pt(0, 0)).ID())
}

func TestDocument_Clone(t *testing.T) {
	c, _, _ := andCircuit(t, sim.High, sim.High)
	doc := c.Document()
	cl := doc.Clone()
	*cl.Components[0].X = 999
	cl.Connections[0].From = sim.StringID("x")
	assert.NotEqual(t, 999.0, *doc.Components[0].X)
	assert.NotEqual(t, sim.StringID("x"), doc.Connections[0].From)
}
