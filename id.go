// Copyright 2018 Denis Bernard <db047h@gmail.com>
// Licensed under the MIT license. See license text in the LICENSE file.

package logicsim

import (
	"bytes"
	"encoding/json"
	"math"
	"math/big"
	"strconv"

	"github.com/pkg/errors"
)

// ID is an opaque component or connection identifier.
//
// An ID is either numeric or a string, like the JSON value it was loaded
// from, and is written back with the same JSON type. The number 3 and the
// string "3" are different IDs. Numeric IDs are kept in canonical form, so
// that 1, 1.0 and 1e0 are the same ID.
//
type ID struct {
	text string
	str  bool
}

// NoID is the zero ID. It never identifies a component or connection.
//
var NoID ID

// IntID returns the numeric ID for the integer n.
//
func IntID(n int64) ID { return ID{text: strconv.FormatInt(n, 10)} }

// StringID returns the string ID s. An empty s returns NoID.
//
func StringID(s string) ID {
	if s == "" {
		return NoID
	}
	return ID{text: s, str: true}
}

// NumberID returns the numeric ID for the JSON number text s.
//
func NumberID(s string) (ID, error) {
	if !isNumber(s) {
		return NoID, errors.Errorf("invalid numeric id %q", s)
	}
	return ID{text: canonical(s)}, nil
}

func isNumber(s string) bool {
	if s == "" || !isDigit(s[len(s)-1]) || (s[0] != '-' && !isDigit(s[0])) {
		return false
	}
	return json.Valid([]byte(s))
}

func isDigit(c byte) bool { return '0' <= c && c <= '9' }

// ParseID returns the numeric ID for s if s is a JSON number, and the string
// ID s otherwise.
//
func ParseID(s string) ID {
	if id, err := NumberID(s); err == nil {
		return id
	}
	return StringID(s)
}

// canonical returns the shortest decimal text of the number s. The original
// text is kept when a float64 cannot represent it exactly enough to round-trip.
func canonical(s string) string {
	f, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return s
	}
	if f == 0 {
		return "0"
	}
	format := byte('f')
	if a := math.Abs(f); a >= 1e21 || a < 1e-6 {
		format = 'g'
	}
	c := strconv.FormatFloat(f, format, -1, 64)
	if c == s {
		return c
	}
	orig, ok := new(big.Rat).SetString(s)
	if !ok {
		return s
	}
	short, ok := new(big.Rat).SetString(c)
	if !ok || orig.Cmp(short) != 0 {
		return s
	}
	return c
}

// String returns the text of id.
//
func (id ID) String() string { return id.text }

// IsString reports whether id is a string ID.
//
func (id ID) IsString() bool { return id.str }

// intValue returns the integer part of a numeric ID.
func (id ID) intValue() (int64, bool) {
	if id.str || id.text == "" {
		return 0, false
	}
	f, err := strconv.ParseFloat(id.text, 64)
	if err != nil || f > 1<<53 || f < -(1<<53) {
		return 0, false
	}
	return int64(f), true
}

// MarshalJSON implements json.Marshaler.
//
func (id ID) MarshalJSON() ([]byte, error) {
	switch {
	case id == NoID:
		return null, nil
	case id.str:
		return json.Marshal(id.text)
	}
	return []byte(id.text), nil
}

// UnmarshalJSON implements json.Unmarshaler. It accepts numbers and strings.
//
func (id *ID) UnmarshalJSON(b []byte) error {
	b = bytes.TrimSpace(b)
	switch {
	case len(b) == 0 || bytes.Equal(b, null):
		*id = NoID
		return nil
	case b[0] == '"':
		var s string
		if err := json.Unmarshal(b, &s); err != nil {
			return errors.Wrap(err, "decode id")
		}
		*id = StringID(s)
		return nil
	}
	v, err := NumberID(string(b))
	if err != nil {
		return err
	}
	*id = v
	return nil
}
