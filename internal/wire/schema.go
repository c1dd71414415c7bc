// Package wire maps the panel's loosely typed JSON onto typed records.
//
// Each record type declares a Schema: an ordered table of fields, each known
// by its wire name (as sent by the panel) and its semantic name (as used in
// code). Decoding accepts either name, applies defaults for absent keys and
// coerces present values; encoding always emits wire names.
package wire

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strings"

	xerrors "xui-panel-client/internal/errors"
)

// Schema is the static alias table of a record type
type Schema[T any] struct {
	name   string
	fields []Field[T]
	index  map[string]int
}

// Pair is a wire name with its encoded value
type Pair struct {
	Wire  string
	Value json.RawMessage
}

// NewSchema builds the alias table for a record type. It panics when two
// fields share a name, since schemas are package-level configuration.
func NewSchema[T any](name string, fields ...Field[T]) *Schema[T] {
	s := &Schema[T]{
		name:   name,
		fields: fields,
		index:  make(map[string]int, len(fields)*2),
	}
	for i, f := range fields {
		for _, key := range []string{f.Wire, f.Name} {
			if j, dup := s.index[key]; dup && j != i {
				panic(fmt.Sprintf("wire: %s declares %q twice", name, key))
			}
			s.index[key] = i
		}
	}
	return s
}

// Name returns the record name used in error messages
func (s *Schema[T]) Name() string {
	return s.name
}

// Fields returns the declared fields in wire order
func (s *Schema[T]) Fields() []Field[T] {
	out := make([]Field[T], len(s.fields))
	copy(out, s.fields)
	return out
}

// Lookup resolves a wire or semantic name to the field's wire name
func (s *Schema[T]) Lookup(key string) (string, bool) {
	i, ok := s.index[key]
	if !ok {
		return "", false
	}
	return s.fields[i].Wire, true
}

// Defaults returns a record with every field at its default
func (s *Schema[T]) Defaults() T {
	var v T
	for _, f := range s.fields {
		f.reset(&v)
	}
	return v
}

// Decode fills dst from a JSON object. dst is left untouched on failure.
func (s *Schema[T]) Decode(data []byte, dst *T) error {
	trimmed := bytes.TrimSpace(data)
	if len(trimmed) == 0 || trimmed[0] != '{' {
		return &xerrors.TypeMismatchError{Record: s.name, Want: "object", Value: quote(trimmed)}
	}

	var obj map[string]json.RawMessage
	if err := json.Unmarshal(trimmed, &obj); err != nil {
		return &xerrors.TypeMismatchError{Record: s.name, Want: "object", Value: quote(trimmed)}
	}

	var v T
	for _, f := range s.fields {
		raw, ok := obj[f.Wire]
		if !ok {
			raw, ok = obj[f.Name]
		}
		if !ok {
			if f.required {
				return &xerrors.MissingFieldError{Record: s.name, Field: f.Wire}
			}
			f.reset(&v)
			continue
		}
		if err := f.decode(&v, raw, site{record: s.name, field: f.Wire}); err != nil {
			return err
		}
	}

	*dst = v
	return nil
}

// DecodeSubdocument decodes a record that may arrive either as a JSON object
// or as a string holding JSON text.
func (s *Schema[T]) DecodeSubdocument(raw json.RawMessage, dst *T) error {
	doc, err := Normalize(raw)
	if err != nil {
		return &xerrors.MalformedSubdocumentError{Record: s.name, Err: err}
	}
	return s.Decode(doc, dst)
}

// Set assigns one field by wire or semantic name, with the same coercion as
// Decode.
func (s *Schema[T]) Set(dst *T, key string, raw json.RawMessage) error {
	i, ok := s.index[key]
	if !ok {
		return fmt.Errorf("%s has no field %q", s.name, key)
	}
	f := s.fields[i]

	v := *dst
	if err := f.decode(&v, raw, site{record: s.name, field: f.Wire}); err != nil {
		return err
	}
	*dst = v
	return nil
}

// Pairs returns the encoded fields of src in declaration order
func (s *Schema[T]) Pairs(src *T) ([]Pair, error) {
	pairs := make([]Pair, 0, len(s.fields))
	for _, f := range s.fields {
		v, err := f.encode(src)
		if err != nil {
			return nil, err
		}
		b, err := json.Marshal(v)
		if err != nil {
			return nil, fmt.Errorf("encode %s.%s: %w", s.name, f.Wire, err)
		}
		pairs = append(pairs, Pair{Wire: f.Wire, Value: b})
	}
	return pairs, nil
}

// Encode serializes src as a JSON object keyed by wire names
func (s *Schema[T]) Encode(src *T) ([]byte, error) {
	pairs, err := s.Pairs(src)
	if err != nil {
		return nil, err
	}

	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, p := range pairs {
		if i > 0 {
			buf.WriteByte(',')
		}
		key, _ := json.Marshal(p.Wire)
		buf.Write(key)
		buf.WriteByte(':')
		buf.Write(p.Value)
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

// Equal compares two records field by field
func (s *Schema[T]) Equal(a, b *T) bool {
	ea, err := s.Encode(a)
	if err != nil {
		return false
	}
	eb, err := s.Encode(b)
	if err != nil {
		return false
	}
	return bytes.Equal(ea, eb)
}

// Describe renders every field for logs, e.g. Sniffing(enabled=true, ...)
func (s *Schema[T]) Describe(src *T) string {
	pairs, err := s.Pairs(src)
	if err != nil {
		return fmt.Sprintf("%s(<%v>)", s.name, err)
	}

	parts := make([]string, 0, len(pairs))
	for _, p := range pairs {
		parts = append(parts, p.Wire+"="+string(p.Value))
	}
	return s.name + "(" + strings.Join(parts, ", ") + ")"
}
