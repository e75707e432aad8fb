package transform

import (
	"fmt"
	"strconv"

	"github.com/goliatone/go-formblock/pkg/adaptiveform"
	"github.com/goliatone/go-formblock/pkg/model"
	"github.com/goliatone/go-formblock/pkg/sheet"
)

// ToFormModel normalises an input into a form model. It never mutates the
// input; on error the returned model is the zero value.
func ToFormModel(in Input) (model.FormModel, error) {
	switch in.kind {
	case model.SourceAEM:
		return fromDefinition(in.definition, in.directive)
	case model.SourceSheet:
		return fromSheet(in.payload, in.directive)
	default:
		return model.FormModel{}, fmt.Errorf("%w: input carries no variant", ErrShapeDetection)
	}
}

func fromDefinition(def adaptiveform.Definition, directive model.StyleRef) (model.FormModel, error) {
	if err := def.Validate(); err != nil {
		return model.FormModel{}, fmt.Errorf("%w: %w", ErrPayloadDecode, err)
	}

	form := model.New(model.SourceAEM, adaptiveform.Fields(def))
	form.ID = def.ID
	form.Style = directive
	if style, ok := def.Properties.Style(); ok {
		form.Style = model.Style(style)
	}
	form.Metadata = definitionMetadata(def)
	return form, nil
}

func fromSheet(payload sheet.Payload, directive model.StyleRef) (model.FormModel, error) {
	fields, err := sheet.Fields(payload)
	if err != nil {
		return model.FormModel{}, fmt.Errorf("%w: %w", ErrPayloadDecode, err)
	}
	form := model.New(model.SourceSheet, fields)
	form.Style = directive
	return form, nil
}

// definitionMetadata keeps the scalar metadata entries plus the definition
// version.
func definitionMetadata(def adaptiveform.Definition) map[string]string {
	out := map[string]string{adaptiveform.VersionKey: def.Version}
	for key, value := range def.Metadata {
		switch v := value.(type) {
		case string:
			out[key] = v
		case bool:
			out[key] = strconv.FormatBool(v)
		case float64:
			out[key] = strconv.FormatFloat(v, 'f', -1, 64)
		}
	}
	return out
}
