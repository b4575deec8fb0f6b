package options

import (
	"strings"

	"gopkg.in/yaml.v3"
)

// Kind discriminates the variants of a Value.
type Kind uint8

const (
	// Invalid marks a value of a kind the translator does not accept.
	Invalid Kind = iota
	Bool
	String
)

func (k Kind) String() string {
	switch k {
	case Bool:
		return "bool"
	case String:
		return "string"
	}
	return "invalid"
}

// Value is a build option value: a boolean or a string.
// The zero Value is Invalid.
type Value struct {
	kind Kind
	b    bool
	s    string
	// origin names the source kind of an Invalid value, e.g. "int".
	origin string
}

// BoolValue returns a Bool option value.
func BoolValue(b bool) Value { return Value{kind: Bool, b: b} }

// StringValue returns a String option value.
func StringValue(s string) Value { return Value{kind: String, s: s} }

// Unsupported returns an Invalid value remembering the kind it was decoded from.
func Unsupported(origin string) Value { return Value{kind: Invalid, origin: origin} }

// ParseValue interprets a command line option value: "true" and "false"
// (any case) are booleans, everything else is a string.
func ParseValue(s string) Value {
	switch {
	case strings.EqualFold(s, "true"):
		return BoolValue(true)
	case strings.EqualFold(s, "false"):
		return BoolValue(false)
	}
	return StringValue(s)
}

func (v Value) Kind() Kind { return v.kind }

// Bool reports the boolean payload; ok is false for other kinds.
func (v Value) Bool() (b, ok bool) { return v.b, v.kind == Bool }

// Str reports the string payload; ok is false for other kinds.
func (v Value) Str() (s string, ok bool) { return v.s, v.kind == String }

// KindName is the kind used in diagnostics. For Invalid values it is the
// kind the value was decoded from; a zero Value (YAML null) reports "null".
func (v Value) KindName() string {
	if v.kind != Invalid {
		return v.kind.String()
	}
	if v.origin == "" {
		return "null"
	}
	return v.origin
}

func (v Value) String() string {
	switch v.kind {
	case Bool:
		if v.b {
			return "true"
		}
		return "false"
	case String:
		return v.s
	}
	return "<" + v.KindName() + ">"
}

// UnmarshalYAML keeps booleans and strings and turns every other node into
// an Invalid value, so the error surfaces at translation time with the key.
func (v *Value) UnmarshalYAML(node *yaml.Node) error {
	if node.Kind != yaml.ScalarNode {
		*v = Unsupported(nodeKindName(node.Kind))
		return nil
	}
	switch node.ShortTag() {
	case "!!bool":
		var b bool
		if err := node.Decode(&b); err != nil {
			return err
		}
		*v = BoolValue(b)
	case "!!str":
		*v = StringValue(node.Value)
	default:
		*v = Unsupported(strings.TrimPrefix(node.ShortTag(), "!!"))
	}
	return nil
}

// MarshalYAML writes the payload back as a plain scalar.
func (v Value) MarshalYAML() (any, error) {
	switch v.kind {
	case Bool:
		return v.b, nil
	case String:
		return v.s, nil
	}
	return nil, nil
}

func nodeKindName(k yaml.Kind) string {
	switch k {
	case yaml.SequenceNode:
		return "seq"
	case yaml.MappingNode:
		return "map"
	case yaml.AliasNode:
		return "alias"
	case yaml.DocumentNode:
		return "document"
	}
	return "unknown"
}
