package wire

import (
	"encoding/json"
	"strconv"
)

// Ident is an identifier the panel sends either as a JSON string or as a JSON
// number. It encodes back with the JSON type it was decoded from.
type Ident struct {
	Value   string
	Numeric bool
}

// TextIdent returns an identifier encoded as a JSON string
func TextIdent(s string) Ident {
	return Ident{Value: s}
}

// NumberIdent returns an identifier encoded as a JSON number
func NumberIdent(n int64) Ident {
	return Ident{Value: strconv.FormatInt(n, 10), Numeric: true}
}

func (i Ident) String() string {
	return i.Value
}

// MarshalJSON encodes the identifier as a number or a string
func (i Ident) MarshalJSON() ([]byte, error) {
	if i.Numeric {
		return json.Marshal(json.Number(i.Value))
	}
	return json.Marshal(i.Value)
}
