package components

import (
	"bytes"
	"fmt"

	"github.com/goliatone/go-formblock/pkg/model"
)

const templatePrefix = "templates/fields/"

// NewDefaultRegistry constructs a registry with the built-in components.
func NewDefaultRegistry() *Registry {
	registry := New()

	registry.MustRegister(NameInput, Descriptor{Renderer: templateComponentRenderer(templatePrefix + "input.tpl")})
	registry.MustRegister(NameTextarea, Descriptor{Renderer: templateComponentRenderer(templatePrefix + "textarea.tpl")})
	registry.MustRegister(NameSelect, Descriptor{Renderer: templateComponentRenderer(templatePrefix + "select.tpl")})
	registry.MustRegister(NameCheckbox, Descriptor{Renderer: templateComponentRenderer(templatePrefix + "checkbox.tpl")})
	registry.MustRegister(NameRadio, Descriptor{Renderer: templateComponentRenderer(templatePrefix + "radio.tpl")})
	registry.MustRegister(NameFieldset, Descriptor{
		Renderer:   templateComponentRenderer(templatePrefix + "fieldset.tpl"),
		OwnsChrome: true,
	})
	registry.MustRegister(NameButton, Descriptor{
		Renderer:   templateComponentRenderer(templatePrefix + "button.tpl"),
		OwnsChrome: true,
	})
	registry.MustRegister(NamePlainText, Descriptor{
		Renderer:   templateComponentRenderer(templatePrefix + "plaintext.tpl"),
		OwnsChrome: true,
	})

	return registry
}

// ComponentFor picks the default component for a field kind. Unknown kinds
// render as a text input.
func ComponentFor(kind model.FieldKind) string {
	switch kind {
	case model.KindTextarea:
		return NameTextarea
	case model.KindSelect:
		return NameSelect
	case model.KindCheckbox:
		return NameCheckbox
	case model.KindRadio:
		return NameRadio
	case model.KindFieldset:
		return NameFieldset
	case model.KindSubmit, model.KindReset, model.KindButton:
		return NameButton
	case model.KindPlainText:
		return NamePlainText
	default:
		return NameInput
	}
}

// InputType returns the type attribute for input and button controls.
func InputType(kind model.FieldKind) string {
	switch kind {
	case model.KindEmail, model.KindTel, model.KindNumber, model.KindDate,
		model.KindFile, model.KindHidden, model.KindSubmit, model.KindReset, model.KindButton:
		return string(kind)
	default:
		return string(model.KindText)
	}
}

func templateComponentRenderer(templateName string) Renderer {
	return func(buf *bytes.Buffer, field model.Field, data ComponentData) error {
		if data.Template == nil {
			return fmt.Errorf("components: template renderer not configured for %q", templateName)
		}
		payload := map[string]any{
			"field": field,
			"id":    data.ControlID,
			"type":  InputType(field.Kind),
		}
		rendered, err := data.Template.RenderTemplate(templateName, payload)
		if err != nil {
			return fmt.Errorf("components: render template %q: %w", templateName, err)
		}
		buf.WriteString(rendered)
		return nil
	}
}
