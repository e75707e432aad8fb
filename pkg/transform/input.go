package transform

import (
	"bytes"
	"encoding/json"
	"fmt"

	"github.com/goliatone/go-formblock/pkg/adaptiveform"
	"github.com/goliatone/go-formblock/pkg/model"
	"github.com/goliatone/go-formblock/pkg/sheet"
)

// Input is one authored form, tagged with the variant it belongs to. The zero
// value matches no variant.
type Input struct {
	kind       model.SourceKind
	definition adaptiveform.Definition
	payload    sheet.Payload
	directive  model.StyleRef
}

// FromDefinition tags an Adaptive Form definition.
func FromDefinition(def adaptiveform.Definition) Input {
	return Input{kind: model.SourceAEM, definition: def}
}

// FromSheet tags a sheet payload together with the style directive parsed
// from its block.
func FromSheet(payload sheet.Payload, directive model.StyleRef) Input {
	return Input{kind: model.SourceSheet, payload: payload, directive: directive}
}

// Kind reports the variant, or "" for the zero Input.
func (in Input) Kind() model.SourceKind {
	return in.kind
}

// WithDirective attaches a style directive parsed from the surrounding block.
// Sheets always take their style from it; Adaptive Forms use it only when
// properties.style is not set.
func (in Input) WithDirective(directive model.StyleRef) Input {
	in.directive = directive
	return in
}

// Sniff decodes raw JSON and selects the variant by its discriminating keys.
// A top-level JSON string is decoded a second time, which is how sheet
// payloads are embedded in authored blocks.
func Sniff(raw []byte) (Input, error) {
	data := bytes.TrimSpace(raw)
	if len(data) == 0 {
		return Input{}, fmt.Errorf("%w: empty payload", ErrPayloadDecode)
	}

	if data[0] == '"' {
		var inner string
		if err := json.Unmarshal(data, &inner); err != nil {
			return Input{}, fmt.Errorf("%w: decode outer string: %v", ErrPayloadDecode, err)
		}
		data = bytes.TrimSpace([]byte(inner))
	}

	if !json.Valid(data) {
		return Input{}, fmt.Errorf("%w: invalid JSON", ErrPayloadDecode)
	}
	if len(data) == 0 || data[0] != '{' {
		return Input{}, fmt.Errorf("%w: payload is not an object", ErrShapeDetection)
	}

	var keys map[string]json.RawMessage
	if err := json.Unmarshal(data, &keys); err != nil {
		return Input{}, fmt.Errorf("%w: %v", ErrPayloadDecode, err)
	}

	if _, ok := keys[adaptiveform.VersionKey]; ok {
		def, err := adaptiveform.Decode(data)
		if err != nil {
			return Input{}, fmt.Errorf("%w: %w", ErrPayloadDecode, err)
		}
		return FromDefinition(def), nil
	}

	var kind string
	if value, ok := keys[":type"]; ok {
		if err := json.Unmarshal(value, &kind); err != nil {
			return Input{}, fmt.Errorf("%w: :type: %v", ErrPayloadDecode, err)
		}
	}
	if kind == sheet.TypeSheet {
		payload, err := sheet.DecodeObject(data)
		if err != nil {
			return Input{}, fmt.Errorf("%w: %w", ErrPayloadDecode, err)
		}
		return FromSheet(payload, model.NoStyle), nil
	}

	return Input{}, fmt.Errorf("%w: neither %q nor :type %q present", ErrShapeDetection, adaptiveform.VersionKey, sheet.TypeSheet)
}
