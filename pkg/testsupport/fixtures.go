// Package testsupport holds fixture and golden helpers shared by package tests.
package testsupport

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/PuerkitoBio/goquery"
	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"

	"github.com/goliatone/go-formblock/pkg/adaptiveform"
	"github.com/goliatone/go-formblock/pkg/model"
)

// MustLoadDefinition reads and decodes an Adaptive Form fixture.
func MustLoadDefinition(t *testing.T, path string) adaptiveform.Definition {
	t.Helper()

	def, err := LoadDefinition(path)
	if err != nil {
		t.Fatalf("load definition: %v", err)
	}
	return def
}

// LoadDefinition returns a Definition without requiring testing.T, so callers
// can wire fixtures in setup functions.
func LoadDefinition(path string) (adaptiveform.Definition, error) {
	if path == "" {
		return adaptiveform.Definition{}, errors.New("testsupport: definition path is required")
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return adaptiveform.Definition{}, fmt.Errorf("testsupport: read definition: %w", err)
	}
	def, err := adaptiveform.Decode(data)
	if err != nil {
		return adaptiveform.Definition{}, fmt.Errorf("testsupport: decode definition: %w", err)
	}
	return def, nil
}

// MustLoadDocument parses an HTML page fixture.
func MustLoadDocument(t *testing.T, path string) *goquery.Document {
	t.Helper()
	return MustParseDocument(t, MustReadGoldenString(t, path))
}

// MustParseDocument parses markup into a goquery document.
func MustParseDocument(t *testing.T, markup string) *goquery.Document {
	t.Helper()

	doc, err := goquery.NewDocumentFromReader(strings.NewReader(markup))
	if err != nil {
		t.Fatalf("parse document: %v", err)
	}
	return doc
}

// CompareForms returns a diff between two form models, including the source
// kind. Nil and empty metadata compare equal.
func CompareForms(want, got model.FormModel) string {
	return cmp.Diff(want, got,
		cmp.AllowUnexported(model.FormModel{}),
		cmpopts.EquateEmpty(),
	)
}

// WriteGolden writes data to a golden file when UPDATE_GOLDENS is set.
func WriteGolden(t *testing.T, path string, data []byte) {
	t.Helper()

	if os.Getenv("UPDATE_GOLDENS") == "" {
		return
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatalf("mkdir golden dir: %v", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		t.Fatalf("write golden: %v", err)
	}
}

// CompareGolden returns a diff string if the values differ.
func CompareGolden(want, got any) string {
	return cmp.Diff(want, got)
}

// MustReadGolden reads a golden file and returns its raw bytes.
func MustReadGolden(t *testing.T, path string) []byte {
	t.Helper()
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read golden: %v", err)
	}
	return data
}

// MustReadGoldenString reads a golden file and returns its string content.
func MustReadGoldenString(t *testing.T, path string) string {
	t.Helper()
	return string(MustReadGolden(t, path))
}

// Context returns a background context for tests.
func Context() context.Context {
	return context.Background()
}

// CaptureTemplateOutput executes a render function that writes to an io.Writer,
// returning both the string result and the writer contents.
func CaptureTemplateOutput(t *testing.T, render func(io.Writer) (string, error)) (string, string) {
	t.Helper()

	var buf bytes.Buffer
	out, err := render(&buf)
	if err != nil {
		t.Fatalf("render template: %v", err)
	}
	return out, buf.String()
}
