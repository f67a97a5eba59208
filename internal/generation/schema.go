package generation

import (
	"bytes"
	"encoding/json"
	"regexp"
)

type fieldKind int

const (
	kindDescription fieldKind = iota
	kindChoice
	kindNested
)

// Field is one key of a Schema. Exactly one of Description, Choices or
// Nested is meaningful, depending on the constructor used.
type Field struct {
	Key         string
	Description string
	Choices     []string
	Nested      Schema
	kind        fieldKind
}

// Schema describes the shape of every object the model must return.
// Field order is kept when the schema is rendered into a prompt.
type Schema []Field

// Describe declares a field whose value the model writes freely, guided by description.
func Describe(key, description string) Field {
	return Field{Key: key, Description: description, kind: kindDescription}
}

// Choice declares an enumerated field: the model must pick one of choices.
func Choice(key string, choices ...string) Field {
	return Field{Key: key, Choices: choices, kind: kindChoice}
}

// Nest declares a field whose value is itself an object shaped by nested.
func Nest(key string, nested Schema) Field {
	return Field{Key: key, Nested: nested, kind: kindNested}
}

// IsChoice reports whether the field is an enumerated choice.
func (f Field) IsChoice() bool {
	return f.kind == kindChoice
}

// Keys returns the top-level field names in declaration order.
func (s Schema) Keys() []string {
	keys := make([]string, 0, len(s))
	for _, f := range s {
		keys = append(keys, f.Key)
	}
	return keys
}

var dynamicPattern = regexp.MustCompile(`<.*?>`)

// IsDynamic reports whether token carries a placeholder such as <location>
// that the model has to replace with content of its own.
func IsDynamic(token string) bool {
	return dynamicPattern.MatchString(token)
}

// HasDynamic reports whether any key or value of the schema, at any depth, is dynamic.
func (s Schema) HasDynamic() bool {
	for _, f := range s {
		if IsDynamic(f.Key) {
			return true
		}
		switch f.kind {
		case kindDescription:
			if IsDynamic(f.Description) {
				return true
			}
		case kindChoice:
			for _, c := range f.Choices {
				if IsDynamic(c) {
					return true
				}
			}
		case kindNested:
			if f.Nested.HasDynamic() {
				return true
			}
		}
	}
	return false
}

// MarshalJSON renders the schema as a compact JSON object in field order.
func (s Schema) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	if err := s.encode(&buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// String renders the schema the way it is embedded in prompts. Angle
// brackets are kept literal so placeholders stay readable to the model.
func (s Schema) String() string {
	var buf bytes.Buffer
	if err := s.encode(&buf); err != nil {
		return "{}"
	}
	return buf.String()
}

func (s Schema) encode(buf *bytes.Buffer) error {
	buf.WriteByte('{')
	for i, f := range s {
		if i > 0 {
			buf.WriteByte(',')
		}
		if err := writeJSON(buf, f.Key); err != nil {
			return err
		}
		buf.WriteByte(':')
		var err error
		switch f.kind {
		case kindChoice:
			choices := f.Choices
			if choices == nil {
				choices = []string{}
			}
			err = writeJSON(buf, choices)
		case kindNested:
			err = f.Nested.encode(buf)
		default:
			err = writeJSON(buf, f.Description)
		}
		if err != nil {
			return err
		}
	}
	buf.WriteByte('}')
	return nil
}

func writeJSON(buf *bytes.Buffer, v any) error {
	var tmp bytes.Buffer
	enc := json.NewEncoder(&tmp)
	enc.SetEscapeHTML(false)
	if err := enc.Encode(v); err != nil {
		return err
	}
	buf.Write(bytes.TrimRight(tmp.Bytes(), "\n"))
	return nil
}
