package model

import (
	"encoding/json"
	"strings"
)

// SourceKind identifies the authored representation a form was built from.
type SourceKind string

const (
	SourceAEM   SourceKind = "aem"
	SourceSheet SourceKind = "sheet"
)

// Valid reports whether the kind is one of the known sources.
func (k SourceKind) Valid() bool {
	return k == SourceAEM || k == SourceSheet
}

// FieldKind is the normalised control kind shared by both input shapes.
type FieldKind string

const (
	KindText      FieldKind = "text"
	KindEmail     FieldKind = "email"
	KindTel       FieldKind = "tel"
	KindNumber    FieldKind = "number"
	KindDate      FieldKind = "date"
	KindTextarea  FieldKind = "textarea"
	KindSelect    FieldKind = "select"
	KindCheckbox  FieldKind = "checkbox"
	KindRadio     FieldKind = "radio"
	KindFile      FieldKind = "file"
	KindHidden    FieldKind = "hidden"
	KindFieldset  FieldKind = "fieldset"
	KindSubmit    FieldKind = "submit"
	KindReset     FieldKind = "reset"
	KindButton    FieldKind = "button"
	KindPlainText FieldKind = "plaintext"
)

var kindAliases = map[string]FieldKind{
	"":                KindText,
	"text":            KindText,
	"text-input":      KindText,
	"string":          KindText,
	"email":           KindEmail,
	"email-input":     KindEmail,
	"tel":             KindTel,
	"telephone-input": KindTel,
	"phone":           KindTel,
	"number":          KindNumber,
	"number-input":    KindNumber,
	"date":            KindDate,
	"date-input":      KindDate,
	"textarea":        KindTextarea,
	"text-area":       KindTextarea,
	"multiline-input": KindTextarea,
	"select":          KindSelect,
	"drop-down":       KindSelect,
	"dropdown":        KindSelect,
	"checkbox":        KindCheckbox,
	"checkbox-group":  KindCheckbox,
	"radio":           KindRadio,
	"radio-group":     KindRadio,
	"file":            KindFile,
	"file-input":      KindFile,
	"hidden":          KindHidden,
	"fieldset":        KindFieldset,
	"panel":           KindFieldset,
	"submit":          KindSubmit,
	"reset":           KindReset,
	"button":          KindButton,
	"plaintext":       KindPlainText,
	"plain-text":      KindPlainText,
}

// NormalizeKind maps a sheet Type column or an Adaptive Form fieldType onto
// the shared FieldKind set. Unknown kinds are returned lower-cased so renderers
// can decide how to fall back.
func NormalizeKind(raw string) FieldKind {
	key := strings.ToLower(strings.TrimSpace(raw))
	if kind, ok := kindAliases[key]; ok {
		return kind
	}
	return FieldKind(key)
}

// Option is a single choice for select, radio and checkbox fields.
type Option struct {
	Value string `json:"value"`
	Label string `json:"label,omitempty"`
}

// Field is one normalised field definition. Group names the fieldset the
// field belongs to, matching the Name of an earlier KindFieldset field.
type Field struct {
	Name        string    `json:"name"`
	Kind        FieldKind `json:"kind"`
	Label       string    `json:"label,omitempty"`
	RichLabel   bool      `json:"richLabel,omitempty"`
	Required    bool      `json:"required"`
	Default     string    `json:"default,omitempty"`
	Group       string    `json:"group,omitempty"`
	Placeholder string    `json:"placeholder,omitempty"`
	Description string    `json:"description,omitempty"`
	Options     []Option  `json:"options,omitempty"`
	Hidden      bool      `json:"hidden,omitempty"`
}

// StyleRef is an optional author style directive. Present distinguishes an
// absent directive from one whose path is the empty string.
type StyleRef struct {
	Path    string `json:"path"`
	Present bool   `json:"present"`
}

// NoStyle is the absent style directive.
var NoStyle = StyleRef{}

// Style returns a present style directive with the given path.
func Style(path string) StyleRef {
	return StyleRef{Path: path, Present: true}
}

// FormModel is the representation renderers consume.
type FormModel struct {
	source SourceKind

	ID       string            `json:"id,omitempty"`
	Fields   []Field           `json:"fields"`
	Style    StyleRef          `json:"style"`
	Metadata map[string]string `json:"metadata,omitempty"`
}

// New constructs a form model bound to the given source kind.
func New(source SourceKind, fields []Field) FormModel {
	return FormModel{source: source, Fields: fields}
}

// Source reports which authored representation produced the model.
func (f FormModel) Source() SourceKind {
	return f.source
}

// FieldByName returns the first field with the given name.
func (f FormModel) FieldByName(name string) (Field, bool) {
	for _, field := range f.Fields {
		if field.Name == name {
			return field, true
		}
	}
	return Field{}, false
}

// MarshalJSON includes the source kind alongside the exported fields.
func (f FormModel) MarshalJSON() ([]byte, error) {
	type alias FormModel
	return json.Marshal(struct {
		Source SourceKind `json:"sourceKind"`
		alias
	}{Source: f.source, alias: alias(f)})
}
