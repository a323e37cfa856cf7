// Package metadata reads and writes inline `[key:: value]` annotations.
package metadata

import (
	"regexp"
	"strings"
)

// tagPattern matches a single `[key:: value]` tag. Keys may not contain
// colons or brackets, values may not contain a closing bracket.
var tagPattern = regexp.MustCompile(`\[([^\[\]:]+):: ([^\]]+)\]`)

// Field is one key/value annotation.
type Field struct {
	Key   string `json:"key" yaml:"key"`
	Value string `json:"value" yaml:"value"`
}

// Fields is an insertion-ordered set of annotations with unique keys.
type Fields []Field

// Get returns the value stored for key.
func (f Fields) Get(key string) (string, bool) {
	for _, field := range f {
		if field.Key == key {
			return field.Value, true
		}
	}
	return "", false
}

// Set overwrites the value for key in place, or appends it when new.
func (f Fields) Set(key, value string) Fields {
	for i := range f {
		if f[i].Key == key {
			f[i].Value = value
			return f
		}
	}
	return append(f, Field{Key: key, Value: value})
}

// Delete removes key, keeping the order of the rest.
func (f Fields) Delete(key string) Fields {
	for i := range f {
		if f[i].Key == key {
			return append(f[:i:i], f[i+1:]...)
		}
	}
	return f
}

// Keys lists the keys in order.
func (f Fields) Keys() []string {
	keys := make([]string, 0, len(f))
	for _, field := range f {
		keys = append(keys, field.Key)
	}
	return keys
}

// Clone returns an independent copy.
func (f Fields) Clone() Fields {
	if f == nil {
		return nil
	}
	out := make(Fields, len(f))
	copy(out, f)
	return out
}

// Map flattens the fields into a plain map.
func (f Fields) Map() map[string]string {
	out := make(map[string]string, len(f))
	for _, field := range f {
		out[field.Key] = field.Value
	}
	return out
}

// Extract collects every tag in text and returns the text with the tags
// removed and the result trimmed. A repeated key keeps its first position
// and takes the last value.
func Extract(text string) (Fields, string) {
	var fields Fields
	for _, m := range tagPattern.FindAllStringSubmatch(text, -1) {
		fields = fields.Set(m[1], m[2])
	}
	if len(fields) == 0 {
		return nil, strings.TrimSpace(text)
	}
	cleaned := tagPattern.ReplaceAllString(text, "")
	return fields, strings.TrimSpace(cleaned)
}

// Encode appends each field to text as ` [key:: value]`, in order. An empty
// text gets no leading space.
func Encode(text string, fields Fields) string {
	if len(fields) == 0 {
		return text
	}
	var b strings.Builder
	b.WriteString(text)
	for _, field := range fields {
		if b.Len() > 0 {
			b.WriteString(" ")
		}
		b.WriteString("[")
		b.WriteString(field.Key)
		b.WriteString(":: ")
		b.WriteString(field.Value)
		b.WriteString("]")
	}
	return b.String()
}
