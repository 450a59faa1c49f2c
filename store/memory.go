// Copyright 2018 Denis Bernard <db047h@gmail.com>
// Licensed under the MIT license. See license text in the LICENSE file.

package store

import (
	"context"
	"sync"

	sim "github.com/db47h/logicsim"
	"github.com/pkg/errors"
)

// Memory is an in-process store. Documents are kept in encoded form so that
// callers never share state with the store.
//
type Memory struct {
	mu   sync.Mutex
	docs map[string][]byte
}

// NewMemory returns an empty in-memory store.
//
func NewMemory() *Memory {
	return &Memory{docs: make(map[string][]byte)}
}

// Save implements the designer's document store.
//
func (m *Memory) Save(ctx context.Context, name string, doc *sim.Document, overwrite bool) error {
	if err := CheckName(name); err != nil {
		return err
	}
	b, err := doc.Bytes()
	if err != nil {
		return err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.docs[name]; ok && !overwrite {
		return errors.Wrapf(sim.ErrExists, "save %s", name)
	}
	m.docs[name] = b
	return nil
}

// Load returns the document stored under name.
//
func (m *Memory) Load(ctx context.Context, name string) (*sim.Document, error) {
	m.mu.Lock()
	b, ok := m.docs[name]
	m.mu.Unlock()
	if !ok {
		return nil, errors.Wrapf(sim.ErrNotFound, "load %s", name)
	}
	return decode(name, b)
}

// List returns the names of all stored documents in lexical order.
//
func (m *Memory) List(ctx context.Context) ([]string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	names := make([]string, 0, len(m.docs))
	for n := range m.docs {
		names = append(names, n)
	}
	return sorted(names), nil
}

// Delete removes the document stored under name.
//
func (m *Memory) Delete(ctx context.Context, name string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.docs[name]; !ok {
		return errors.Wrapf(sim.ErrNotFound, "delete %s", name)
	}
	delete(m.docs, name)
	return nil
}

// Put stores raw bytes under name, bypassing validation.
//
func (m *Memory) Put(name string, b []byte) {
	m.mu.Lock()
	m.docs[name] = append([]byte(nil), b...)
	m.mu.Unlock()
}
