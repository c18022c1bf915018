// Package models defines data structures for catalog extraction.
package models

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"
)

// Kind identifies which variant a Value holds.
type Kind uint8

const (
	// KindAbsent is an empty cell.
	KindAbsent Kind = iota
	// KindString is a text cell.
	KindString
	// KindNumber is a numeric cell (integers are stored as whole floats).
	KindNumber
	// KindBool is a boolean cell.
	KindBool
)

func (k Kind) String() string {
	switch k {
	case KindString:
		return "string"
	case KindNumber:
		return "number"
	case KindBool:
		return "bool"
	default:
		return "absent"
	}
}

// Value is a single cell value: absent, string, number or boolean.
type Value struct {
	Kind Kind
	Str  string
	Num  float64
	Bool bool
}

// Absent returns the empty cell value.
func Absent() Value { return Value{} }

// String returns a text value.
func String(s string) Value { return Value{Kind: KindString, Str: s} }

// Number returns a numeric value.
func Number(f float64) Value { return Value{Kind: KindNumber, Num: f} }

// Bool returns a boolean value.
func Bool(b bool) Value { return Value{Kind: KindBool, Bool: b} }

// IsBlank reports whether the value is absent or a string that is empty after trimming.
func (v Value) IsBlank() bool {
	switch v.Kind {
	case KindAbsent:
		return true
	case KindString:
		return strings.TrimSpace(v.Str) == ""
	}
	return false
}

// Trimmed returns the value with surrounding whitespace removed from strings.
// Other kinds are returned unchanged.
func (v Value) Trimmed() Value {
	if v.Kind == KindString {
		v.Str = strings.TrimSpace(v.Str)
	}
	return v
}

// Text returns the display form of the value.
func (v Value) Text() string {
	switch v.Kind {
	case KindString:
		return v.Str
	case KindNumber:
		return strconv.FormatFloat(v.Num, 'f', -1, 64)
	case KindBool:
		return strconv.FormatBool(v.Bool)
	default:
		return ""
	}
}

// MarshalJSON encodes the value as a JSON scalar. Non-finite numbers have
// no JSON form and are written as strings.
func (v Value) MarshalJSON() ([]byte, error) {
	switch v.Kind {
	case KindString:
		return encodeString(v.Str)
	case KindNumber:
		if math.IsNaN(v.Num) || math.IsInf(v.Num, 0) {
			return encodeString(v.Text())
		}
		return json.Marshal(v.Num)
	case KindBool:
		return json.Marshal(v.Bool)
	default:
		return []byte("null"), nil
	}
}

// UnmarshalJSON decodes a JSON scalar. Objects and arrays are rejected.
func (v *Value) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) == 0 {
		return errors.New("empty value")
	}
	switch data[0] {
	case 'n':
		*v = Absent()
		return nil
	case 't', 'f':
		var b bool
		if err := json.Unmarshal(data, &b); err != nil {
			return err
		}
		*v = Bool(b)
		return nil
	case '"':
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		*v = String(s)
		return nil
	case '{', '[':
		return fmt.Errorf("nested value not supported: %.20s", data)
	}
	f, err := strconv.ParseFloat(string(data), 64)
	if err != nil {
		return fmt.Errorf("invalid number %q: %w", data, err)
	}
	*v = Number(f)
	return nil
}

// encodeString writes s as a JSON string without escaping HTML characters.
func encodeString(s string) ([]byte, error) {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	if err := enc.Encode(s); err != nil {
		return nil, err
	}
	return bytes.TrimRight(buf.Bytes(), "\n"), nil
}
