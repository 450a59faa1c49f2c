// Copyright 2018 Denis Bernard <db047h@gmail.com>
// Licensed under the MIT license. See license text in the LICENSE file.

package store

import (
	"context"
	"os"
	"path/filepath"
	"strings"

	sim "github.com/db47h/logicsim"
	"github.com/pkg/errors"
)

const ext = ".json"

// Dir stores documents as <name>.json files in a directory.
//
type Dir struct {
	path string
}

// NewDir returns a store rooted at path. The directory is created if needed.
//
func NewDir(path string) (*Dir, error) {
	if err := os.MkdirAll(path, 0o755); err != nil {
		return nil, unavailable(err, "create %s", path)
	}
	return &Dir{path: path}, nil
}

// Path returns the directory path.
//
func (d *Dir) Path() string { return d.path }

func (d *Dir) file(name string) string { return filepath.Join(d.path, name+ext) }

// Save writes doc under name. If overwrite is false and a document with the
// same name exists, Save returns an error wrapping ErrExists.
//
func (d *Dir) Save(ctx context.Context, name string, doc *sim.Document, overwrite bool) error {
	if err := CheckName(name); err != nil {
		return err
	}
	if err := ctx.Err(); err != nil {
		return unavailable(err, "save %s", name)
	}
	b, err := doc.Bytes()
	if err != nil {
		return err
	}
	fn := d.file(name)
	if !overwrite {
		if _, err := os.Stat(fn); err == nil {
			return errors.Wrapf(sim.ErrExists, "save %s", name)
		}
	}
	f, err := os.CreateTemp(d.path, "."+name+".*")
	if err != nil {
		return unavailable(err, "save %s", name)
	}
	tmp := f.Name()
	if _, err = f.Write(b); err == nil {
		err = f.Close()
	} else {
		f.Close()
	}
	if err == nil {
		err = os.Rename(tmp, fn)
	}
	if err != nil {
		os.Remove(tmp)
		return unavailable(err, "save %s", name)
	}
	return nil
}

// Load reads the document stored under name.
//
func (d *Dir) Load(ctx context.Context, name string) (*sim.Document, error) {
	if err := CheckName(name); err != nil {
		return nil, err
	}
	if err := ctx.Err(); err != nil {
		return nil, unavailable(err, "load %s", name)
	}
	b, err := os.ReadFile(d.file(name))
	if err != nil {
		if os.IsNotExist(err) {
			return nil, errors.Wrapf(sim.ErrNotFound, "load %s", name)
		}
		return nil, unavailable(err, "load %s", name)
	}
	return decode(name, b)
}

// List returns the names of all stored documents in lexical order.
//
func (d *Dir) List(ctx context.Context) ([]string, error) {
	if err := ctx.Err(); err != nil {
		return nil, unavailable(err, "list")
	}
	ents, err := os.ReadDir(d.path)
	if err != nil {
		return nil, unavailable(err, "list %s", d.path)
	}
	names := make([]string, 0, len(ents))
	for _, e := range ents {
		n := e.Name()
		if e.IsDir() || !strings.HasSuffix(n, ext) {
			continue
		}
		n = strings.TrimSuffix(n, ext)
		if CheckName(n) == nil {
			names = append(names, n)
		}
	}
	return sorted(names), nil
}

// Delete removes the document stored under name.
//
func (d *Dir) Delete(ctx context.Context, name string) error {
	if err := CheckName(name); err != nil {
		return err
	}
	if err := ctx.Err(); err != nil {
		return unavailable(err, "delete %s", name)
	}
	if err := os.Remove(d.file(name)); err != nil {
		if os.IsNotExist(err) {
			return errors.Wrapf(sim.ErrNotFound, "delete %s", name)
		}
		return unavailable(err, "delete %s", name)
	}
	return nil
}
