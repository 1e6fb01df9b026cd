package snowflake

import (
	"fmt"
	"strconv"

	"gopkg.in/yaml.v3"
)

// MarshalJSON emits the identifier as a quoted decimal string. The zero value
// marshals as null.
func (id ID[K]) MarshalJSON() ([]byte, error) {
	if id.v == 0 {
		return []byte("null"), nil
	}
	b := make([]byte, 0, maxDigits+2)
	b = append(b, '"')
	b = strconv.AppendUint(b, id.v, 10)
	return append(b, '"'), nil
}

// UnmarshalJSON accepts a quoted decimal string or a bare integer. null leaves
// the identifier unchanged.
func (id *ID[K]) UnmarshalJSON(data []byte) error {
	if string(data) == "null" {
		return nil
	}
	digits := data
	if n := len(data); n >= 2 && data[0] == '"' && data[n-1] == '"' {
		digits = data[1 : n-1]
	}
	v, ok := parseDigits(digits)
	if !ok {
		return fmt.Errorf("snowflake: invalid %s %s", id.Kind(), data)
	}
	if v == 0 {
		return ErrZeroID
	}
	id.v = v
	return nil
}

// MarshalText emits the decimal form, which makes identifiers usable as JSON
// object keys.
func (id ID[K]) MarshalText() ([]byte, error) {
	if id.v == 0 {
		return nil, ErrZeroID
	}
	return strconv.AppendUint(nil, id.v, 10), nil
}

// UnmarshalText parses the decimal form.
func (id *ID[K]) UnmarshalText(text []byte) error {
	v, ok := parseDigits(text)
	if !ok {
		return fmt.Errorf("snowflake: invalid %s %q", id.Kind(), text)
	}
	if v == 0 {
		return ErrZeroID
	}
	id.v = v
	return nil
}

// IsZero reports whether id is the zero value, for omitzero struct tags.
func (id ID[K]) IsZero() bool {
	return id.v == 0
}

// MarshalYAML emits the decimal form as a string.
func (id ID[K]) MarshalYAML() (any, error) {
	if id.v == 0 {
		return nil, nil
	}
	return id.String(), nil
}

// UnmarshalYAML accepts both string and integer scalars.
func (id *ID[K]) UnmarshalYAML(node *yaml.Node) error {
	if node.Kind != yaml.ScalarNode {
		return fmt.Errorf("snowflake: line %d: %s must be a scalar", node.Line, id.Kind())
	}

	var (
		v  uint64
		ok bool
	)
	switch node.ShortTag() {
	case "!!null":
		return nil
	case "!!int":
		if v, ok = parseDigits(node.Value); !ok {
			// hex, octal and underscore-separated forms
			parsed, err := strconv.ParseUint(node.Value, 0, 64)
			v, ok = parsed, err == nil
		}
	case "!!str":
		v, ok = parseDigits(node.Value)
	}
	if !ok {
		return fmt.Errorf("snowflake: line %d: invalid %s %q", node.Line, id.Kind(), node.Value)
	}
	if v == 0 {
		return fmt.Errorf("snowflake: line %d: %w", node.Line, ErrZeroID)
	}
	id.v = v
	return nil
}
