package wire

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
)

var errEmptyValue = errors.New("empty value")

// Normalize returns the structured JSON carried by raw. The panel stores some
// nested configuration as escaped JSON text, so a string value is parsed as
// JSON text and its content returned; any other value is returned as is.
func Normalize(raw json.RawMessage) (json.RawMessage, error) {
	trimmed := bytes.TrimSpace(raw)
	if len(trimmed) == 0 {
		return nil, errEmptyValue
	}
	if trimmed[0] != '"' {
		return trimmed, nil
	}

	var text string
	if err := json.Unmarshal(trimmed, &text); err != nil {
		return nil, err
	}

	inner := bytes.TrimSpace([]byte(text))
	if len(inner) == 0 {
		return nil, errEmptyValue
	}

	if !json.Valid(inner) {
		return nil, fmt.Errorf("invalid JSON text %q", inner)
	}
	return inner, nil
}

// IsText reports whether raw is a JSON string
func IsText(raw json.RawMessage) bool {
	trimmed := bytes.TrimSpace(raw)
	return len(trimmed) > 0 && trimmed[0] == '"'
}

func isNull(raw json.RawMessage) bool {
	return bytes.Equal(bytes.TrimSpace(raw), []byte("null"))
}
