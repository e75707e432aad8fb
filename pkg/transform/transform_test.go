package transform

import (
	"errors"
	"strconv"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/goliatone/go-formblock/pkg/adaptiveform"
	"github.com/goliatone/go-formblock/pkg/model"
	"github.com/goliatone/go-formblock/pkg/sheet"
	"github.com/goliatone/go-formblock/pkg/testsupport"
)

const aemContact = `{
  "adaptiveform": "0.10.0",
  "id": "contact",
  "metadata": {"version": "1.0.0", "tags": ["a"]},
  "properties": {"style": "/styles/aem.css"},
  "items": [
    {"name": "name", "fieldType": "text-input", "label": {"value": "Your name"}, "required": true},
    {"name": "email", "fieldType": "email", "label": {"value": "Email"}}
  ]
}`

const sheetContact = `{":type":"sheet","total":2,"offset":0,"limit":2,"data":[` +
	`{"Name":"name","Type":"text","Label":"Your name","Mandatory":"x","Value":"","Fieldset":""},` +
	`{"Name":"email","Type":"email","Label":"Email","Mandatory":"","Value":"","Fieldset":""}]}`

func TestSniff_Dispatch(t *testing.T) {
	cases := []struct {
		name string
		raw  string
		want model.SourceKind
	}{
		{name: "aem object", raw: aemContact, want: model.SourceAEM},
		{name: "sheet object", raw: sheetContact, want: model.SourceSheet},
		{name: "double encoded sheet", raw: strconv.Quote(sheetContact), want: model.SourceSheet},
		{name: "double encoded aem", raw: strconv.Quote(aemContact), want: model.SourceAEM},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			in, err := Sniff([]byte(tc.raw))
			if err != nil {
				t.Fatalf("sniff: %v", err)
			}
			if in.Kind() != tc.want {
				t.Fatalf("kind = %q, want %q", in.Kind(), tc.want)
			}
		})
	}
}

func TestSniff_Errors(t *testing.T) {
	cases := []struct {
		name string
		raw  string
		want error
	}{
		{name: "empty", raw: "", want: ErrPayloadDecode},
		{name: "malformed", raw: `{"adaptiveform":`, want: ErrPayloadDecode},
		{name: "malformed inner", raw: strconv.Quote(`{"data":`), want: ErrPayloadDecode},
		{name: "bad outer string", raw: `"unterminated`, want: ErrPayloadDecode},
		{name: "array", raw: `[1,2]`, want: ErrShapeDetection},
		{name: "unknown object", raw: `{"title":"x"}`, want: ErrShapeDetection},
		{name: "other type", raw: `{":type":"multi-sheet","data":[]}`, want: ErrShapeDetection},
		{name: "non-string type", raw: `{":type":5,"data":[]}`, want: ErrPayloadDecode},
		{name: "sheet missing data", raw: `{":type":"sheet"}`, want: ErrPayloadDecode},
		{name: "sheet data not array", raw: `{":type":"sheet","data":"rows"}`, want: ErrPayloadDecode},
		{name: "aem missing keys", raw: `{"adaptiveform":"0.10.0","items":[]}`, want: ErrPayloadDecode},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			in, err := Sniff([]byte(tc.raw))
			if !errors.Is(err, tc.want) {
				t.Fatalf("expected %v, got %v", tc.want, err)
			}
			if in.Kind() != "" {
				t.Fatalf("expected zero input on error, got kind %q", in.Kind())
			}
		})
	}
}

func TestSniff_AEMMissingKeysWrapsDefinitionError(t *testing.T) {
	_, err := Sniff([]byte(`{"adaptiveform":"0.10.0","items":[]}`))
	if !errors.Is(err, adaptiveform.ErrInvalidDefinition) {
		t.Fatalf("expected definition error to be preserved, got %v", err)
	}
}

func TestToFormModel_SameShapeForBothVariants(t *testing.T) {
	aemInput, err := Sniff([]byte(aemContact))
	if err != nil {
		t.Fatalf("sniff aem: %v", err)
	}
	sheetInput, err := Sniff([]byte(strconv.Quote(sheetContact)))
	if err != nil {
		t.Fatalf("sniff sheet: %v", err)
	}

	aemForm, err := ToFormModel(aemInput)
	if err != nil {
		t.Fatalf("aem form: %v", err)
	}
	sheetForm, err := ToFormModel(sheetInput.WithDirective(model.Style("/styles/sheet.css")))
	if err != nil {
		t.Fatalf("sheet form: %v", err)
	}

	if aemForm.Source() != model.SourceAEM || sheetForm.Source() != model.SourceSheet {
		t.Fatalf("unexpected sources %q %q", aemForm.Source(), sheetForm.Source())
	}
	if diff := cmp.Diff(aemForm.Fields, sheetForm.Fields); diff != "" {
		t.Fatalf("field shapes differ (-aem +sheet):\n%s", diff)
	}
	if aemForm.Style != model.Style("/styles/aem.css") {
		t.Fatalf("unexpected aem style %+v", aemForm.Style)
	}
	if sheetForm.Style != model.Style("/styles/sheet.css") {
		t.Fatalf("unexpected sheet style %+v", sheetForm.Style)
	}
}

func TestToFormModel_AEM(t *testing.T) {
	in, err := Sniff([]byte(aemContact))
	if err != nil {
		t.Fatalf("sniff: %v", err)
	}
	got, err := ToFormModel(in)
	if err != nil {
		t.Fatalf("to form model: %v", err)
	}

	want := model.New(model.SourceAEM, []model.Field{
		{Name: "name", Kind: model.KindText, Label: "Your name", Required: true},
		{Name: "email", Kind: model.KindEmail, Label: "Email"},
	})
	want.ID = "contact"
	want.Style = model.Style("/styles/aem.css")
	want.Metadata = map[string]string{"adaptiveform": "0.10.0", "version": "1.0.0"}

	if diff := testsupport.CompareForms(want, got); diff != "" {
		t.Fatalf("form mismatch (-want +got):\n%s", diff)
	}
}

func TestToFormModel_AEMStyleFallsBackToDirective(t *testing.T) {
	def := adaptiveform.Definition{
		Version:    "0.10.0",
		Properties: adaptiveform.Properties{},
		Items:      []adaptiveform.Item{},
	}
	form, err := ToFormModel(FromDefinition(def).WithDirective(model.Style("block.css")))
	if err != nil {
		t.Fatalf("to form model: %v", err)
	}
	if form.Style != model.Style("block.css") {
		t.Fatalf("expected directive fallback, got %+v", form.Style)
	}

	form, err = ToFormModel(FromDefinition(def))
	if err != nil {
		t.Fatalf("to form model: %v", err)
	}
	if form.Style.Present {
		t.Fatalf("expected absent style, got %+v", form.Style)
	}
}

func TestToFormModel_SheetStyle(t *testing.T) {
	payload, err := sheet.DecodeObject([]byte(sheetContact))
	if err != nil {
		t.Fatalf("decode: %v", err)
	}

	absent, err := ToFormModel(FromSheet(payload, model.NoStyle))
	if err != nil {
		t.Fatalf("to form model: %v", err)
	}
	if absent.Style.Present {
		t.Fatalf("expected absent style")
	}

	empty, err := ToFormModel(FromSheet(payload, model.Style("")))
	if err != nil {
		t.Fatalf("to form model: %v", err)
	}
	if !empty.Style.Present || empty.Style.Path != "" {
		t.Fatalf("expected present empty style, got %+v", empty.Style)
	}
}

func TestToFormModel_Errors(t *testing.T) {
	if _, err := ToFormModel(Input{}); !errors.Is(err, ErrShapeDetection) {
		t.Fatalf("expected ErrShapeDetection for zero input, got %v", err)
	}

	bad := FromSheet(sheet.Payload{Type: sheet.TypeSheet, Data: []sheet.Record{{"Type": "text"}}}, model.NoStyle)
	if _, err := ToFormModel(bad); !errors.Is(err, ErrPayloadDecode) {
		t.Fatalf("expected ErrPayloadDecode for unnamed row, got %v", err)
	}

	if _, err := ToFormModel(FromDefinition(adaptiveform.Definition{})); !errors.Is(err, ErrPayloadDecode) {
		t.Fatalf("expected ErrPayloadDecode for empty definition, got %v", err)
	}
}

func TestToFormModel_DoesNotMutateInput(t *testing.T) {
	payload := sheet.Payload{Type: sheet.TypeSheet, Data: []sheet.Record{{"Name": " name ", "Type": "TEXT"}}}
	in := FromSheet(payload, model.NoStyle)
	if _, err := ToFormModel(in); err != nil {
		t.Fatalf("to form model: %v", err)
	}
	if got := payload.Data[0]["Name"]; got != " name " {
		t.Fatalf("input payload was modified: %q", got)
	}
}
