package sheet

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"strings"
)

// TypeSheet is the discriminator value carried in the ":type" key.
const TypeSheet = "sheet"

// Column names recognised in a sheet row.
const (
	ColumnName        = "Name"
	ColumnType        = "Type"
	ColumnLabel       = "Label"
	ColumnMandatory   = "Mandatory"
	ColumnValue       = "Value"
	ColumnFieldset    = "Fieldset"
	ColumnPlaceholder = "Placeholder"
	ColumnDescription = "Description"
	ColumnOptions     = "Options"
)

// ErrInvalidPayload reports a payload that cannot be decoded as a sheet.
var ErrInvalidPayload = errors.New("sheet: invalid payload")

// Record is one sheet row keyed by column name.
type Record map[string]string

// Get returns the value stored under column, falling back to a
// case-insensitive match.
func (r Record) Get(column string) string {
	if value, ok := r[column]; ok {
		return value
	}
	for key, value := range r {
		if strings.EqualFold(key, column) {
			return value
		}
	}
	return ""
}

// Empty reports whether every column is blank.
func (r Record) Empty() bool {
	for _, value := range r {
		if strings.TrimSpace(value) != "" {
			return false
		}
	}
	return true
}

// UnmarshalJSON accepts scalar column values of any JSON type and stores them
// as strings.
func (r *Record) UnmarshalJSON(data []byte) error {
	var raw map[string]any
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	out := make(Record, len(raw))
	for key, value := range raw {
		switch v := value.(type) {
		case nil:
			out[key] = ""
		case string:
			out[key] = v
		case bool:
			out[key] = strconv.FormatBool(v)
		case float64:
			out[key] = strconv.FormatFloat(v, 'f', -1, 64)
		default:
			return fmt.Errorf("column %q: unsupported value %T", key, value)
		}
	}
	*r = out
	return nil
}

// Payload is the decoded sheet table.
type Payload struct {
	Total  int      `json:"total"`
	Offset int      `json:"offset"`
	Limit  int      `json:"limit"`
	Data   []Record `json:"data"`
	Type   string   `json:":type"`
}

// Decode recovers a payload from the text of a <pre><code> node. The text is
// a JSON string whose content is the payload JSON; both stages must succeed.
func Decode(text string) (Payload, error) {
	trimmed := strings.TrimSpace(text)
	if trimmed == "" {
		return Payload{}, fmt.Errorf("%w: empty payload", ErrInvalidPayload)
	}

	var inner string
	if err := json.Unmarshal([]byte(trimmed), &inner); err != nil {
		return Payload{}, fmt.Errorf("%w: decode outer string: %v", ErrInvalidPayload, err)
	}
	return DecodeObject([]byte(inner))
}

// DecodeObject decodes a singly-encoded payload object and checks its shape.
func DecodeObject(data []byte) (Payload, error) {
	var raw map[string]json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		return Payload{}, fmt.Errorf("%w: decode payload: %v", ErrInvalidPayload, err)
	}

	var kind string
	if value, ok := raw[":type"]; ok {
		if err := json.Unmarshal(value, &kind); err != nil {
			return Payload{}, fmt.Errorf("%w: decode :type: %v", ErrInvalidPayload, err)
		}
	}
	if kind != TypeSheet {
		return Payload{}, fmt.Errorf("%w: :type is %q, want %q", ErrInvalidPayload, kind, TypeSheet)
	}

	rows, ok := raw["data"]
	if !ok {
		return Payload{}, fmt.Errorf("%w: missing data", ErrInvalidPayload)
	}
	if trimmed := bytes.TrimSpace(rows); len(trimmed) == 0 || trimmed[0] != '[' {
		return Payload{}, fmt.Errorf("%w: data is not an array", ErrInvalidPayload)
	}

	var payload Payload
	if err := json.Unmarshal(data, &payload); err != nil {
		return Payload{}, fmt.Errorf("%w: decode rows: %v", ErrInvalidPayload, err)
	}
	return payload, nil
}

// Encode serialises the payload twice, producing the text authored inside a
// <pre><code> node.
func Encode(payload Payload) (string, error) {
	if payload.Type == "" {
		payload.Type = TypeSheet
	}
	if payload.Data == nil {
		payload.Data = []Record{}
	}
	inner, err := json.Marshal(payload)
	if err != nil {
		return "", fmt.Errorf("sheet: encode payload: %w", err)
	}
	outer, err := json.Marshal(string(inner))
	if err != nil {
		return "", fmt.Errorf("sheet: encode payload string: %w", err)
	}
	return string(outer), nil
}
