package vanilla

import (
	"bytes"
	"fmt"
	"html"
	"strings"

	"github.com/goliatone/go-formblock/pkg/model"
	"github.com/goliatone/go-formblock/pkg/render/template"
	"github.com/goliatone/go-formblock/pkg/renderers/vanilla/components"
)

type componentRenderer struct {
	templates template.TemplateRenderer
	registry  *components.Registry
}

func newComponentRenderer(templates template.TemplateRenderer, registry *components.Registry) *componentRenderer {
	if registry == nil {
		registry = components.NewDefaultRegistry()
	}
	return &componentRenderer{
		templates: templates,
		registry:  registry,
	}
}

func (r *componentRenderer) render(field model.Field) (string, error) {
	componentName := components.ComponentFor(field.Kind)
	descriptor, ok := r.registry.Descriptor(componentName)
	if !ok {
		return "", fmt.Errorf("component %q not registered for field %q", componentName, field.Name)
	}

	data := components.ComponentData{
		Template:  r.templates,
		ControlID: controlID(field.Name),
	}

	var control bytes.Buffer
	if err := descriptor.Renderer(&control, field, data); err != nil {
		return "", fmt.Errorf("render component %q for field %q: %w", componentName, field.Name, err)
	}

	if descriptor.OwnsChrome {
		return strings.TrimSpace(control.String()), nil
	}
	return buildFieldMarkup(field, control.String()), nil
}

func buildFieldMarkup(field model.Field, control string) string {
	var builder strings.Builder
	builder.Grow(len(control) + 192)

	builder.WriteString(`<div class="field-wrapper `)
	builder.WriteString(html.EscapeString(wrapperClass(field.Kind)))
	builder.WriteString(`"`)
	if field.Group != "" {
		builder.WriteString(` data-fieldset="`)
		builder.WriteString(html.EscapeString(field.Group))
		builder.WriteString(`"`)
	}
	if field.Required {
		builder.WriteString(` data-required="true"`)
	}
	if field.Hidden && field.Kind != model.KindHidden {
		builder.WriteString(` hidden`)
	}
	builder.WriteString(">")

	if shouldRenderLabel(field) {
		builder.WriteString(`<label for="`)
		builder.WriteString(html.EscapeString(controlID(field.Name)))
		builder.WriteString(`">`)
		if field.RichLabel {
			// Rich labels are sanitised when the model is built.
			builder.WriteString(field.Label)
		} else {
			builder.WriteString(html.EscapeString(field.Label))
		}
		builder.WriteString(`</label>`)
	}

	builder.WriteString(strings.TrimSpace(control))

	if desc := strings.TrimSpace(field.Description); desc != "" {
		builder.WriteString(`<div class="field-description">`)
		builder.WriteString(html.EscapeString(desc))
		builder.WriteString(`</div>`)
	}

	builder.WriteString("</div>")
	return builder.String()
}

func shouldRenderLabel(field model.Field) bool {
	if strings.TrimSpace(field.Label) == "" {
		return false
	}
	return field.Kind != model.KindHidden
}
