package wire

import (
	"bytes"
	"encoding/json"
	"math"
	"strconv"
	"strings"
)

const maxQuotedValue = 40

func decodeString(raw json.RawMessage) (string, bool) {
	trimmed := bytes.TrimSpace(raw)
	if len(trimmed) == 0 || trimmed[0] != '"' {
		return "", false
	}
	var s string
	if err := json.Unmarshal(trimmed, &s); err != nil {
		return "", false
	}
	return s, true
}

// decodeIdent accepts a string or a number and keeps its textual form along
// with the JSON type it came in.
func decodeIdent(raw json.RawMessage) (Ident, bool) {
	trimmed := bytes.TrimSpace(raw)
	if len(trimmed) == 0 {
		return Ident{}, false
	}
	switch {
	case trimmed[0] == '"':
		s, ok := decodeString(trimmed)
		return TextIdent(s), ok
	case isNull(trimmed):
		return Ident{}, true
	case trimmed[0] == '-' || (trimmed[0] >= '0' && trimmed[0] <= '9'):
		var n json.Number
		if err := json.Unmarshal(trimmed, &n); err != nil {
			return Ident{}, false
		}
		return Ident{Value: n.String(), Numeric: true}, true
	}
	return Ident{}, false
}

func decodeInt64(raw json.RawMessage) (int64, bool) {
	trimmed := bytes.TrimSpace(raw)
	if len(trimmed) == 0 {
		return 0, false
	}

	var text string
	if trimmed[0] == '"' {
		s, ok := decodeString(trimmed)
		if !ok {
			return 0, false
		}
		text = strings.TrimSpace(s)
	} else {
		var n json.Number
		if err := json.Unmarshal(trimmed, &n); err != nil {
			return 0, false
		}
		text = n.String()
	}

	if v, err := strconv.ParseInt(text, 10, 64); err == nil {
		return v, true
	}

	// 2053.0 is an integer, 2053.5 is not
	f, err := strconv.ParseFloat(text, 64)
	if err != nil || math.IsInf(f, 0) || math.IsNaN(f) || f != math.Trunc(f) {
		return 0, false
	}
	if f < math.MinInt64 || f >= math.MaxInt64 {
		return 0, false
	}
	return int64(f), true
}

func decodeInt(raw json.RawMessage) (int, bool) {
	v, ok := decodeInt64(raw)
	if !ok || v < math.MinInt || v > math.MaxInt {
		return 0, false
	}
	return int(v), true
}

func decodeBool(raw json.RawMessage) (bool, bool) {
	trimmed := bytes.TrimSpace(raw)
	switch string(trimmed) {
	case "true", "1":
		return true, true
	case "false", "0":
		return false, true
	}

	s, ok := decodeString(trimmed)
	if !ok {
		return false, false
	}
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "true", "1", "yes", "on", "y", "t":
		return true, true
	case "false", "0", "no", "off", "n", "f":
		return false, true
	}
	return false, false
}

// quote shortens raw for error messages
func quote(raw json.RawMessage) string {
	s := string(bytes.TrimSpace(raw))
	if len(s) > maxQuotedValue {
		s = s[:maxQuotedValue] + "..."
	}
	if s == "" {
		return "empty value"
	}
	return s
}
