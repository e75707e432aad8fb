package adaptiveform

import (
	"html"
	"strconv"
	"strings"
	"sync"

	"github.com/microcosm-cc/bluemonday"

	"github.com/goliatone/go-formblock/pkg/model"
)

var (
	policyOnce  sync.Once
	labelPolicy *bluemonday.Policy
	textPolicy  *bluemonday.Policy
)

func policies() (*bluemonday.Policy, *bluemonday.Policy) {
	policyOnce.Do(func() {
		label := bluemonday.StrictPolicy()
		label.AllowElements("b", "strong", "i", "em", "u", "sup", "sub", "span", "br")
		label.AllowAttrs("class").OnElements("span")
		labelPolicy = label
		textPolicy = bluemonday.StrictPolicy()
	})
	return labelPolicy, textPolicy
}

// Fields flattens the item tree into model fields in document order. A panel
// becomes a fieldset field followed by its children, whose Group is the
// panel's name.
func Fields(def Definition) []model.Field {
	fields := make([]model.Field, 0, len(def.Items))
	return appendItems(fields, def.Items, "")
}

func appendItems(dst []model.Field, items []Item, group string) []model.Field {
	for _, item := range items {
		field := fieldFromItem(item, group)
		dst = append(dst, field)
		if len(item.Items) > 0 {
			dst = appendItems(dst, item.Items, field.Name)
		}
	}
	return dst
}

func fieldFromItem(item Item, group string) model.Field {
	kindSource := item.FieldType
	if kindSource == "" {
		kindSource = item.Type
	}
	kind := model.NormalizeKind(kindSource)
	if kind == model.KindText && len(item.Items) > 0 {
		kind = model.KindFieldset
	}
	if kind == model.KindButton {
		// "type" narrows a generic button to submit or reset.
		if sub := model.NormalizeKind(item.Type); sub == model.KindSubmit || sub == model.KindReset {
			kind = sub
		}
	}

	name := strings.TrimSpace(item.Name)
	if name == "" {
		name = strings.TrimSpace(item.ID)
	}

	labelSanitizer, textSanitizer := policies()
	label := strings.TrimSpace(item.Label.Value)
	if item.Label.RichText {
		label = strings.TrimSpace(labelSanitizer.Sanitize(label))
	}

	hidden := kind == model.KindHidden
	if item.Visible != nil && !*item.Visible {
		hidden = true
	}

	return model.Field{
		Name:        name,
		Kind:        kind,
		Label:       label,
		RichLabel:   item.Label.RichText,
		Required:    item.Required,
		Default:     stringify(item.Default),
		Group:       group,
		Placeholder: strings.TrimSpace(item.Placeholder),
		Description: plainText(textSanitizer, item.Description),
		Options:     options(item.Enum, item.EnumNames),
		Hidden:      hidden,
	}
}

// plainText strips markup from s. The policy escapes its output, so entities
// are decoded again to keep the field text unescaped like sheet values.
func plainText(policy *bluemonday.Policy, s string) string {
	return strings.TrimSpace(html.UnescapeString(policy.Sanitize(s)))
}

func options(values, names []any) []model.Option {
	if len(values) == 0 {
		return nil
	}
	out := make([]model.Option, 0, len(values))
	for idx, value := range values {
		opt := model.Option{Value: stringify(value)}
		if idx < len(names) {
			opt.Label = enumName(names[idx])
		}
		if opt.Label == "" {
			opt.Label = opt.Value
		}
		out = append(out, opt)
	}
	return out
}

// enumName reads an enumNames entry, which is either a string or an object
// with a "value" key.
func enumName(raw any) string {
	if obj, ok := raw.(map[string]any); ok {
		return stringify(obj["value"])
	}
	return stringify(raw)
}

func stringify(value any) string {
	switch v := value.(type) {
	case nil:
		return ""
	case string:
		return v
	case bool:
		return strconv.FormatBool(v)
	case float64:
		return strconv.FormatFloat(v, 'f', -1, 64)
	case int:
		return strconv.Itoa(v)
	case []any:
		parts := make([]string, 0, len(v))
		for _, entry := range v {
			parts = append(parts, stringify(entry))
		}
		return strings.Join(parts, ",")
	default:
		return ""
	}
}
