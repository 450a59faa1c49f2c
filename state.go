// Copyright 2018 Denis Bernard <db047h@gmail.com>
// Licensed under the MIT license. See license text in the LICENSE file.

package logicsim

import (
	"bytes"

	"github.com/pkg/errors"
)

// State is a tri-valued logical state. The zero value is Unknown.
//
type State int8

// Logical states.
//
const (
	Unknown State = iota
	Low
	High
)

// FromBool converts a boolean to Low or High.
//
func FromBool(b bool) State {
	if b {
		return High
	}
	return Low
}

// Known reports whether s is either Low or High.
//
func (s State) Known() bool { return s == Low || s == High }

// Invert returns the opposite of a known state. Unknown stays Unknown.
//
func (s State) Invert() State {
	switch s {
	case Low:
		return High
	case High:
		return Low
	}
	return Unknown
}

func (s State) String() string {
	switch s {
	case Low:
		return "0"
	case High:
		return "1"
	}
	return "?"
}

var null = []byte("null")

// MarshalJSON encodes s as 0, 1 or null.
//
func (s State) MarshalJSON() ([]byte, error) {
	switch s {
	case Low:
		return []byte("0"), nil
	case High:
		return []byte("1"), nil
	}
	return null, nil
}

// UnmarshalJSON decodes 0, 1 or null.
//
func (s *State) UnmarshalJSON(b []byte) error {
	switch string(bytes.TrimSpace(b)) {
	case "null":
		*s = Unknown
	case "0":
		*s = Low
	case "1":
		*s = High
	default:
		return errors.Errorf("invalid state %s", b)
	}
	return nil
}
