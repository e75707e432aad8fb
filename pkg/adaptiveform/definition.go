// Package adaptiveform decodes Adaptive Form definitions: JSON documents that
// describe a form's metadata, presentation properties and field items directly.
package adaptiveform

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
)

// VersionKey is the discriminating key of an Adaptive Form definition.
const VersionKey = "adaptiveform"

// ErrInvalidDefinition reports a definition that is missing required keys or
// carries values of the wrong type.
var ErrInvalidDefinition = errors.New("adaptiveform: invalid definition")

var requiredKeys = []string{VersionKey, "metadata", "properties", "items", "id"}

// Definition is an Adaptive Form document.
type Definition struct {
	Version    string         `json:"adaptiveform"`
	Metadata   map[string]any `json:"metadata"`
	Properties Properties     `json:"properties"`
	Items      []Item         `json:"items"`
	ID         string         `json:"id"`
}

// Properties holds presentation properties. Only "style" is interpreted.
type Properties map[string]any

// Style returns the author style directive, if one is set.
func (p Properties) Style() (string, bool) {
	value, ok := p["style"]
	if !ok || value == nil {
		return "", false
	}
	style, ok := value.(string)
	return style, ok
}

// Label is an item label. Authors may supply it as a bare string or as an
// object with rich text and visibility flags.
type Label struct {
	Value    string `json:"value"`
	RichText bool   `json:"richText,omitempty"`
	Visible  *bool  `json:"visible,omitempty"`
}

// UnmarshalJSON accepts either a string or a label object.
func (l *Label) UnmarshalJSON(data []byte) error {
	trimmed := bytes.TrimSpace(data)
	if len(trimmed) > 0 && trimmed[0] == '"' {
		var value string
		if err := json.Unmarshal(trimmed, &value); err != nil {
			return err
		}
		*l = Label{Value: value}
		return nil
	}
	type alias Label
	var out alias
	if err := json.Unmarshal(trimmed, &out); err != nil {
		return err
	}
	*l = Label(out)
	return nil
}

// Item is a field or panel in the definition tree.
type Item struct {
	ID          string `json:"id,omitempty"`
	Name        string `json:"name,omitempty"`
	FieldType   string `json:"fieldType,omitempty"`
	Type        string `json:"type,omitempty"`
	Label       Label  `json:"label"`
	Required    bool   `json:"required,omitempty"`
	Default     any    `json:"default,omitempty"`
	Placeholder string `json:"placeholder,omitempty"`
	Description string `json:"description,omitempty"`
	Enum        []any  `json:"enum,omitempty"`
	EnumNames   []any  `json:"enumNames,omitempty"`
	Visible     *bool  `json:"visible,omitempty"`
	Items       []Item `json:"items,omitempty"`
}

// Decode parses a definition and checks that every required key is present.
func Decode(data []byte) (Definition, error) {
	var raw map[string]json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		return Definition{}, fmt.Errorf("%w: %v", ErrInvalidDefinition, err)
	}

	var missing []string
	for _, key := range requiredKeys {
		value, ok := raw[key]
		if !ok || bytes.Equal(bytes.TrimSpace(value), []byte("null")) {
			missing = append(missing, key)
		}
	}
	if len(missing) > 0 {
		return Definition{}, fmt.Errorf("%w: missing %s", ErrInvalidDefinition, strings.Join(missing, ", "))
	}
	if items := bytes.TrimSpace(raw["items"]); len(items) == 0 || items[0] != '[' {
		return Definition{}, fmt.Errorf("%w: items is not an array", ErrInvalidDefinition)
	}

	var def Definition
	if err := json.Unmarshal(data, &def); err != nil {
		return Definition{}, fmt.Errorf("%w: %v", ErrInvalidDefinition, err)
	}
	if err := def.Validate(); err != nil {
		return Definition{}, err
	}
	return def, nil
}

// Validate checks a definition that was built in code rather than decoded.
func (d Definition) Validate() error {
	if strings.TrimSpace(d.Version) == "" {
		return fmt.Errorf("%w: %s is empty", ErrInvalidDefinition, VersionKey)
	}
	if d.Items == nil {
		return fmt.Errorf("%w: missing items", ErrInvalidDefinition)
	}
	if value, ok := d.Properties["style"]; ok && value != nil {
		if _, isString := value.(string); !isString {
			return fmt.Errorf("%w: properties.style must be a string, got %T", ErrInvalidDefinition, value)
		}
	}
	return nil
}
