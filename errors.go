// Copyright 2018 Denis Bernard <db047h@gmail.com>
// Licensed under the MIT license. See license text in the LICENSE file.

package logicsim

import "github.com/pkg/errors"

// Errors returned by this package and by the designer and store packages.
// Callers should test for them with errors.Is since they are usually wrapped
// with additional context.
//
var (
	// ErrInvalidReference is returned when a connection endpoint does not
	// reference a component of the circuit.
	ErrInvalidReference = errors.New("invalid component reference")
	// ErrNotFound is returned when looking up an absent component, connection
	// or saved document.
	ErrNotFound = errors.New("not found")
	// ErrMalformedDocument is returned when a circuit document is structurally
	// invalid.
	ErrMalformedDocument = errors.New("malformed circuit document")
	// ErrPersistenceUnavailable is returned when the document store cannot be
	// reached.
	ErrPersistenceUnavailable = errors.New("persistence unavailable")
	// ErrNotInput is returned when trying to set the state of a component that
	// is not an input.
	ErrNotInput = errors.New("component is not an input")
	// ErrExists is returned when saving a document under a name already in use
	// without asking to overwrite it.
	ErrExists = errors.New("document already exists")
	// ErrUnknownExample is returned for an unknown built-in example name.
	ErrUnknownExample = errors.New("unknown example")
)
