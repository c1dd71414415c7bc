package wire

import (
	"bytes"
	"encoding/json"

	xerrors "xui-panel-client/internal/errors"
)

// Field binds a record field to its wire name and its semantic name
type Field[T any] struct {
	Wire     string
	Name     string
	required bool

	decode func(dst *T, raw json.RawMessage, at site) error
	encode func(src *T) (any, error)
	reset  func(dst *T)
}

// Required marks the field as having no default: an absent key fails decoding.
func (f Field[T]) Required() Field[T] {
	f.required = true
	return f
}

type site struct {
	record string
	field  string
}

func (s site) mismatch(want string, raw json.RawMessage) error {
	return &xerrors.TypeMismatchError{Record: s.record, Field: s.field, Want: want, Value: quote(raw)}
}

func (s site) malformed(err error) error {
	return &xerrors.MalformedSubdocumentError{Record: s.record, Field: s.field, Err: err}
}

// subdocument normalizes raw and reports whether it was null
func (s site) subdocument(raw json.RawMessage) (json.RawMessage, bool, error) {
	if isNull(raw) {
		return nil, true, nil
	}
	doc, err := Normalize(raw)
	if err != nil {
		return nil, false, s.malformed(err)
	}
	return doc, isNull(doc), nil
}

// decodeLoose decodes free-form JSON, keeping numbers as json.Number so that
// integers above 2^53 survive a round trip
func decodeLoose(doc json.RawMessage, v any) error {
	dec := json.NewDecoder(bytes.NewReader(doc))
	dec.UseNumber()
	return dec.Decode(v)
}

// String declares a text field
func String[T any](wire, name, def string, ptr func(*T) *string) Field[T] {
	return Field[T]{
		Wire: wire,
		Name: name,
		decode: func(dst *T, raw json.RawMessage, at site) error {
			v, ok := decodeString(raw)
			if !ok {
				return at.mismatch("string", raw)
			}
			*ptr(dst) = v
			return nil
		},
		encode: func(src *T) (any, error) { return *ptr(src), nil },
		reset:  func(dst *T) { *ptr(dst) = def },
	}
}

// Identifier declares an identifier field that the panel emits either as a
// string or as a number. null reads as an empty string identifier.
func Identifier[T any](wire, name string, ptr func(*T) *Ident) Field[T] {
	return Field[T]{
		Wire: wire,
		Name: name,
		decode: func(dst *T, raw json.RawMessage, at site) error {
			v, ok := decodeIdent(raw)
			if !ok {
				return at.mismatch("string or number", raw)
			}
			*ptr(dst) = v
			return nil
		},
		encode: func(src *T) (any, error) { return *ptr(src), nil },
		reset:  func(dst *T) { *ptr(dst) = Ident{} },
	}
}

// Int declares an integer field
func Int[T any](wire, name string, def int, ptr func(*T) *int) Field[T] {
	return Field[T]{
		Wire: wire,
		Name: name,
		decode: func(dst *T, raw json.RawMessage, at site) error {
			v, ok := decodeInt(raw)
			if !ok {
				return at.mismatch("integer", raw)
			}
			*ptr(dst) = v
			return nil
		},
		encode: func(src *T) (any, error) { return *ptr(src), nil },
		reset:  func(dst *T) { *ptr(dst) = def },
	}
}

// Int64 declares a 64-bit integer field such as a byte counter or a timestamp
func Int64[T any](wire, name string, def int64, ptr func(*T) *int64) Field[T] {
	return Field[T]{
		Wire: wire,
		Name: name,
		decode: func(dst *T, raw json.RawMessage, at site) error {
			v, ok := decodeInt64(raw)
			if !ok {
				return at.mismatch("integer", raw)
			}
			*ptr(dst) = v
			return nil
		},
		encode: func(src *T) (any, error) { return *ptr(src), nil },
		reset:  func(dst *T) { *ptr(dst) = def },
	}
}

// Bool declares a boolean field
func Bool[T any](wire, name string, def bool, ptr func(*T) *bool) Field[T] {
	return Field[T]{
		Wire: wire,
		Name: name,
		decode: func(dst *T, raw json.RawMessage, at site) error {
			v, ok := decodeBool(raw)
			if !ok {
				return at.mismatch("boolean", raw)
			}
			*ptr(dst) = v
			return nil
		},
		encode: func(src *T) (any, error) { return *ptr(src), nil },
		reset:  func(dst *T) { *ptr(dst) = def },
	}
}

// Object declares a free-form object sub-model, defaulting to {}
func Object[T any](wire, name string, ptr func(*T) *map[string]any) Field[T] {
	return Field[T]{
		Wire: wire,
		Name: name,
		decode: func(dst *T, raw json.RawMessage, at site) error {
			doc, null, err := at.subdocument(raw)
			if err != nil {
				return err
			}
			v := map[string]any{}
			if !null {
				if err := decodeLoose(doc, &v); err != nil {
					return at.mismatch("object", raw)
				}
			}
			*ptr(dst) = v
			return nil
		},
		encode: func(src *T) (any, error) {
			if v := *ptr(src); v != nil {
				return v, nil
			}
			return map[string]any{}, nil
		},
		reset: func(dst *T) { *ptr(dst) = map[string]any{} },
	}
}

// List declares a free-form array sub-model, defaulting to []
func List[T any](wire, name string, ptr func(*T) *[]any) Field[T] {
	return Field[T]{
		Wire: wire,
		Name: name,
		decode: func(dst *T, raw json.RawMessage, at site) error {
			doc, null, err := at.subdocument(raw)
			if err != nil {
				return err
			}
			v := []any{}
			if !null {
				if err := decodeLoose(doc, &v); err != nil {
					return at.mismatch("array", raw)
				}
			}
			*ptr(dst) = v
			return nil
		},
		encode: func(src *T) (any, error) {
			if v := *ptr(src); v != nil {
				return v, nil
			}
			return []any{}, nil
		},
		reset: func(dst *T) { *ptr(dst) = []any{} },
	}
}

// Strings declares an array-of-strings sub-model, defaulting to []
func Strings[T any](wire, name string, ptr func(*T) *[]string) Field[T] {
	return Field[T]{
		Wire: wire,
		Name: name,
		decode: func(dst *T, raw json.RawMessage, at site) error {
			doc, null, err := at.subdocument(raw)
			if err != nil {
				return err
			}
			v := []string{}
			if !null {
				if err := json.Unmarshal(doc, &v); err != nil {
					return at.mismatch("array of strings", raw)
				}
			}
			*ptr(dst) = v
			return nil
		},
		encode: func(src *T) (any, error) {
			if v := *ptr(src); v != nil {
				return v, nil
			}
			return []string{}, nil
		},
		reset: func(dst *T) { *ptr(dst) = []string{} },
	}
}

// Record declares a nested record decoded with its own schema
func Record[T, S any](wire, name string, schema *Schema[S], ptr func(*T) *S) Field[T] {
	return Field[T]{
		Wire: wire,
		Name: name,
		decode: func(dst *T, raw json.RawMessage, at site) error {
			doc, null, err := at.subdocument(raw)
			if err != nil {
				return err
			}
			if null {
				return at.mismatch(schema.Name(), raw)
			}
			return schema.Decode(doc, ptr(dst))
		},
		encode: func(src *T) (any, error) {
			b, err := schema.Encode(ptr(src))
			if err != nil {
				return nil, err
			}
			return json.RawMessage(b), nil
		},
		reset: func(dst *T) { *ptr(dst) = schema.Defaults() },
	}
}

// Records declares an ordered sequence of nested records, defaulting to []
func Records[T, S any](wire, name string, schema *Schema[S], ptr func(*T) *[]S) Field[T] {
	return Field[T]{
		Wire: wire,
		Name: name,
		decode: func(dst *T, raw json.RawMessage, at site) error {
			doc, null, err := at.subdocument(raw)
			if err != nil {
				return err
			}
			items := []S{}
			if !null {
				var elems []json.RawMessage
				if err := json.Unmarshal(doc, &elems); err != nil {
					return at.mismatch("array of "+schema.Name(), raw)
				}
				items = make([]S, len(elems))
				for i, elem := range elems {
					if err := schema.DecodeSubdocument(elem, &items[i]); err != nil {
						return err
					}
				}
			}
			*ptr(dst) = items
			return nil
		},
		encode: func(src *T) (any, error) {
			items := *ptr(src)
			out := make([]json.RawMessage, 0, len(items))
			for i := range items {
				b, err := schema.Encode(&items[i])
				if err != nil {
					return nil, err
				}
				out = append(out, b)
			}
			return out, nil
		},
		reset: func(dst *T) { *ptr(dst) = []S{} },
	}
}
