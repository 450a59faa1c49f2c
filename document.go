// Copyright 2018 Denis Bernard <db047h@gmail.com>
// Licensed under the MIT license. See license text in the LICENSE file.

package logicsim

import (
	"bytes"
	"encoding/json"
	"io"
	"time"

	"github.com/pkg/errors"
)

// DocumentVersion is the version written in exported document metadata.
//
const DocumentVersion = "1.0"

// A Document is the serialized form of a circuit, as exchanged with document
// stores and export files:
//
//	{
//	  "components": [ { "id": 1, "type": "input", "x": 100, "y": 100, "state": 0 } ],
//	  "connections": [ { "id": 1, "from": 1, "to": 3, "fromType": "input", "toType": "xor" } ]
//	}
//
type Document struct {
	Components  []DocComponent  `json:"components"`
	Connections []DocConnection `json:"connections"`
	Metadata    *Metadata       `json:"metadata,omitempty"`
}

// DocComponent is the serialized form of a Component.
//
type DocComponent struct {
	ID    ID       `json:"id"`
	Type  string   `json:"type"`
	X     *float64 `json:"x"`
	Y     *float64 `json:"y"`
	State State    `json:"state"`
}

// DocConnection is the serialized form of a Connection. FromType and ToType
// are informative only; loaders use the live kinds of the endpoints.
//
type DocConnection struct {
	ID       ID     `json:"id"`
	From     ID     `json:"from"`
	To       ID     `json:"to"`
	FromType string `json:"fromType"`
	ToType   string `json:"toType"`
}

// Metadata is added to exported documents.
//
type Metadata struct {
	Created time.Time `json:"created"`
	Version string    `json:"version"`
}

// Comp is a helper to build a DocComponent literal.
//
func Comp(id int64, k Kind, x, y float64, s State) DocComponent {
	return DocComponent{ID: IntID(id), Type: k.String(), X: &x, Y: &y, State: s}
}

// Conn is a helper to build a DocConnection literal.
//
func Conn(id, from, to int64, fk, tk Kind) DocConnection {
	return DocConnection{ID: IntID(id), From: IntID(from), To: IntID(to), FromType: fk.String(), ToType: tk.String()}
}

// ParseDocument decodes a JSON document. It only checks JSON syntax and the
// presence of the components array; Circuit.Load performs full validation.
//
func ParseDocument(b []byte) (*Document, error) {
	var doc Document
	if err := json.Unmarshal(b, &doc); err != nil {
		return nil, errors.Wrapf(ErrMalformedDocument, "%v", err)
	}
	if doc.Components == nil {
		return nil, errors.Wrap(ErrMalformedDocument, "missing components array")
	}
	return &doc, nil
}

// Decode reads and decodes a JSON document from r.
//
func Decode(r io.Reader) (*Document, error) {
	b, err := io.ReadAll(r)
	if err != nil {
		return nil, errors.Wrap(err, "read document")
	}
	return ParseDocument(b)
}

// Encode writes doc to w as indented JSON.
//
func (doc *Document) Encode(w io.Writer) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return errors.Wrap(enc.Encode(doc), "encode document")
}

// Bytes returns the indented JSON encoding of doc.
//
func (doc *Document) Bytes() ([]byte, error) {
	var b bytes.Buffer
	if err := doc.Encode(&b); err != nil {
		return nil, err
	}
	return b.Bytes(), nil
}

// Clone returns a deep copy of doc.
//
func (doc *Document) Clone() *Document {
	d := &Document{
		Components:  make([]DocComponent, len(doc.Components)),
		Connections: make([]DocConnection, len(doc.Connections)),
	}
	for i, c := range doc.Components {
		if c.X != nil {
			x := *c.X
			c.X = &x
		}
		if c.Y != nil {
			y := *c.Y
			c.Y = &y
		}
		d.Components[i] = c
	}
	copy(d.Connections, doc.Connections)
	if doc.Metadata != nil {
		m := *doc.Metadata
		d.Metadata = &m
	}
	return d
}

// Document returns the serialized form of c.
//
func (c *Circuit) Document() *Document {
	doc := &Document{
		Components:  make([]DocComponent, 0, len(c.comps)),
		Connections: make([]DocConnection, 0, len(c.conns)),
	}
	for _, cp := range c.comps {
		x, y := cp.Pos.X, cp.Pos.Y
		doc.Components = append(doc.Components, DocComponent{
			ID:    cp.id,
			Type:  cp.kind.String(),
			X:     &x,
			Y:     &y,
			State: cp.state,
		})
	}
	for _, cn := range c.conns {
		doc.Connections = append(doc.Connections, DocConnection{
			ID:       cn.id,
			From:     cn.from,
			To:       cn.to,
			FromType: cn.fromKind.String(),
			ToType:   cn.toKind.String(),
		})
	}
	return doc
}

// Load replaces the whole content of c with the circuit described by doc. IDs
// are reused as-is. Connections without an ID get a fresh one and inputs
// without a state start Low.
//
// If doc is invalid, Load returns an error wrapping ErrMalformedDocument and c
// is left untouched.
//
func (c *Circuit) Load(doc *Document) error {
	nc, err := FromDocument(doc)
	if err != nil {
		return err
	}
	next := c.next
	*c = *nc
	if next > c.next {
		c.next = next
	}
	return nil
}

// FromDocument builds a new circuit from doc.
//
func FromDocument(doc *Document) (*Circuit, error) {
	if doc == nil || doc.Components == nil {
		return nil, errors.Wrap(ErrMalformedDocument, "missing components array")
	}
	nc := NewCircuit()
	for i, dc := range doc.Components {
		if dc.ID == NoID {
			return nil, errors.Wrapf(ErrMalformedDocument, "component #%d: missing id", i)
		}
		if nc.byID[dc.ID] != nil {
			return nil, errors.Wrapf(ErrMalformedDocument, "component #%d: duplicate id %q", i, dc.ID)
		}
		k, err := ParseKind(dc.Type)
		if err != nil {
			return nil, errors.Wrapf(ErrMalformedDocument, "component %q: %v", dc.ID, err)
		}
		if dc.X == nil || dc.Y == nil {
			return nil, errors.Wrapf(ErrMalformedDocument, "component %q: missing position", dc.ID)
		}
		s := dc.State
		if k == Input && !s.Known() {
			s = Low
		}
		cp := &Component{id: dc.ID, kind: k, state: s, Pos: Point{*dc.X, *dc.Y}}
		nc.comps = append(nc.comps, cp)
		nc.byID[cp.id] = cp
		nc.reserve(cp.id)
	}

	seen := make(map[ID]bool, len(doc.Connections))
	for _, dc := range doc.Connections {
		if dc.ID != NoID {
			if seen[dc.ID] {
				return nil, errors.Wrapf(ErrMalformedDocument, "duplicate connection id %q", dc.ID)
			}
			seen[dc.ID] = true
			nc.reserve(dc.ID)
		}
	}
	for i, dc := range doc.Connections {
		f, t := nc.byID[dc.From], nc.byID[dc.To]
		if f == nil || t == nil {
			return nil, errors.Wrapf(ErrMalformedDocument, "connection #%d: %q -> %q: dangling endpoint", i, dc.From, dc.To)
		}
		id := dc.ID
		if id == NoID {
			id = nc.newID()
			for seen[id] {
				id = nc.newID()
			}
		}
		cn := &Connection{id: id, from: dc.From, to: dc.To, fromKind: f.kind, toKind: t.kind}
		if k, err := ParseKind(dc.FromType); err == nil {
			cn.fromKind = k
		}
		if k, err := ParseKind(dc.ToType); err == nil {
			cn.toKind = k
		}
		nc.conns = append(nc.conns, cn)
	}
	return nc, nil
}
