package model

import (
	"encoding/json"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestNormalizeKind(t *testing.T) {
	cases := map[string]FieldKind{
		"":                KindText,
		"text-input":      KindText,
		" Drop-Down ":     KindSelect,
		"panel":           KindFieldset,
		"radio-group":     KindRadio,
		"multiline-input": KindTextarea,
		"telephone-input": KindTel,
		"plain-text":      KindPlainText,
		"Submit":          KindSubmit,
		"Colour":          FieldKind("colour"),
	}
	for raw, want := range cases {
		if got := NormalizeKind(raw); got != want {
			t.Fatalf("NormalizeKind(%q) = %q, want %q", raw, got, want)
		}
	}
}

func TestFormModel_SourceIsFixedAtConstruction(t *testing.T) {
	form := New(SourceSheet, []Field{{Name: "email", Kind: KindEmail}})
	if form.Source() != SourceSheet || !form.Source().Valid() {
		t.Fatalf("unexpected source %q", form.Source())
	}
	if SourceKind("pdf").Valid() {
		t.Fatalf("unknown source kinds must not validate")
	}
	if _, ok := form.FieldByName("email"); !ok {
		t.Fatalf("expected field lookup to succeed")
	}
	if _, ok := form.FieldByName("missing"); ok {
		t.Fatalf("expected missing field lookup to fail")
	}
}

func TestFormModel_MarshalJSON(t *testing.T) {
	form := New(SourceAEM, []Field{{Name: "q", Kind: KindText, Required: true}})
	form.ID = "f"
	form.Style = Style("")

	data, err := json.Marshal(form)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}

	var got map[string]any
	if err := json.Unmarshal(data, &got); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	want := map[string]any{
		"sourceKind": "aem",
		"id":         "f",
		"fields":     []any{map[string]any{"name": "q", "kind": "text", "required": true}},
		"style":      map[string]any{"path": "", "present": true},
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("json mismatch (-want +got):\n%s", diff)
	}
}

func TestStyleRef(t *testing.T) {
	if NoStyle.Present {
		t.Fatalf("NoStyle must be absent")
	}
	if ref := Style(""); !ref.Present || ref.Path != "" {
		t.Fatalf("empty style must stay present, got %+v", ref)
	}
}
