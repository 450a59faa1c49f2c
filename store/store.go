// Copyright 2018 Denis Bernard <db047h@gmail.com>
// Licensed under the MIT license. See license text in the LICENSE file.

// Package store provides persistence backends for circuit documents.
//
// All stores address documents by name. Names must match
// [A-Za-z0-9][A-Za-z0-9_.-]* and are limited to 128 bytes. Errors wrap the
// logicsim sentinels: ErrNotFound for missing documents, ErrExists when saving
// without overwrite onto an existing name, ErrMalformedDocument for invalid
// names or stored data, ErrPersistenceUnavailable for I/O and transport
// failures.
//
package store

import (
	"regexp"
	"sort"

	sim "github.com/db47h/logicsim"
	"github.com/pkg/errors"
)

var validName = regexp.MustCompile(`^[A-Za-z0-9][A-Za-z0-9_.-]*$`)

const maxNameLen = 128

// CheckName returns an error if name is not a valid document name.
//
func CheckName(name string) error {
	if len(name) > maxNameLen || !validName.MatchString(name) {
		return errors.Wrapf(sim.ErrMalformedDocument, "invalid document name %q", name)
	}
	return nil
}

func unavailable(err error, format string, args ...interface{}) error {
	return errors.Wrapf(sim.ErrPersistenceUnavailable, format+": %v", append(args, err)...)
}

func decode(name string, b []byte) (*sim.Document, error) {
	doc, err := sim.ParseDocument(b)
	if err != nil {
		return nil, errors.WithMessagef(err, "load %s", name)
	}
	return doc, nil
}

func sorted(names []string) []string {
	sort.Strings(names)
	return names
}
