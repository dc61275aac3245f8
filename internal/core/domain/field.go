package domain

import (
	"errors"
	"fmt"
	"strings"
)

var (
	ErrNoChanges    = errors.New("no fields to update")
	ErrUnknownField = errors.New("unknown client field")
)

// Field is a mutable client column. Only the values below are ever written
// into statement text.
type Field string

const (
	FieldName        Field = "name"
	FieldAddress     Field = "address"
	FieldPhoneNumber Field = "phone_number"
)

var fields = []Field{FieldName, FieldAddress, FieldPhoneNumber}

// Fields returns the updatable fields in column order.
func Fields() []Field {
	out := make([]Field, len(fields))
	copy(out, fields)
	return out
}

func (f Field) Valid() bool {
	for _, known := range fields {
		if f == known {
			return true
		}
	}
	return false
}

func ParseField(s string) (Field, error) {
	f := Field(s)
	if !f.Valid() {
		return "", fmt.Errorf("%w: %q (valid fields: %s)", ErrUnknownField, s, fieldList())
	}
	return f, nil
}

func fieldList() string {
	names := make([]string, len(fields))
	for i, f := range fields {
		names[i] = string(f)
	}
	return strings.Join(names, ", ")
}

// Changes maps fields to their new values for a partial update.
type Changes map[Field]string

// ParseChanges converts a loosely typed payload (HTTP body, CLI flags) into Changes.
func ParseChanges(raw map[string]string) (Changes, error) {
	changes := make(Changes, len(raw))
	for key, value := range raw {
		f, err := ParseField(key)
		if err != nil {
			return nil, err
		}
		changes[f] = value
	}
	return changes, changes.Validate()
}

func (c Changes) Validate() error {
	if len(c) == 0 {
		return ErrNoChanges
	}
	for f := range c {
		if !f.Valid() {
			return fmt.Errorf("%w: %q (valid fields: %s)", ErrUnknownField, string(f), fieldList())
		}
	}
	return nil
}
