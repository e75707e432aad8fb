package sheet

import (
	"fmt"
	"strings"

	"github.com/gosimple/slug"
	"go.uber.org/multierr"

	"github.com/goliatone/go-formblock/pkg/model"
)

// Fields maps every row onto a model.Field, preserving row order. Blank rows
// are skipped. A row with neither Name nor Label cannot be addressed and is
// reported; all such rows are combined into one error.
func Fields(payload Payload) ([]model.Field, error) {
	fields := make([]model.Field, 0, len(payload.Data))

	var errs error
	for idx, record := range payload.Data {
		if record == nil || record.Empty() {
			continue
		}
		field, err := fieldFromRecord(record)
		if err != nil {
			errs = multierr.Append(errs, fmt.Errorf("row %d: %w", idx+1, err))
			continue
		}
		fields = append(fields, field)
	}
	if errs != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidPayload, errs)
	}
	return fields, nil
}

func fieldFromRecord(record Record) (model.Field, error) {
	label := strings.TrimSpace(record.Get(ColumnLabel))
	name := strings.TrimSpace(record.Get(ColumnName))
	if name == "" {
		name = slug.Make(label)
	}
	if name == "" {
		return model.Field{}, fmt.Errorf("name or label is required")
	}

	kind := model.NormalizeKind(record.Get(ColumnType))
	return model.Field{
		Name:        name,
		Kind:        kind,
		Label:       label,
		Required:    strings.TrimSpace(record.Get(ColumnMandatory)) != "",
		Default:     record.Get(ColumnValue),
		Group:       strings.TrimSpace(record.Get(ColumnFieldset)),
		Placeholder: strings.TrimSpace(record.Get(ColumnPlaceholder)),
		Description: strings.TrimSpace(record.Get(ColumnDescription)),
		Options:     parseOptions(record.Get(ColumnOptions)),
		Hidden:      kind == model.KindHidden,
	}, nil
}

// parseOptions splits a comma separated Options cell. Each entry may carry a
// distinct label as "value=Label".
func parseOptions(raw string) []model.Option {
	if strings.TrimSpace(raw) == "" {
		return nil
	}
	parts := strings.Split(raw, ",")
	out := make([]model.Option, 0, len(parts))
	for _, part := range parts {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		value, label, found := strings.Cut(part, "=")
		value = strings.TrimSpace(value)
		if !found {
			out = append(out, model.Option{Value: value, Label: value})
			continue
		}
		out = append(out, model.Option{Value: value, Label: strings.TrimSpace(label)})
	}
	if len(out) == 0 {
		return nil
	}
	return out
}
