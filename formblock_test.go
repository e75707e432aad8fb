package formblock

import (
	"errors"
	"strconv"
	"strings"
	"testing"

	"github.com/goliatone/go-formblock/pkg/config"
	"github.com/goliatone/go-formblock/pkg/decorator"
	"github.com/goliatone/go-formblock/pkg/testsupport"
	"github.com/goliatone/go-formblock/pkg/transform"
)

func TestDecorateHTML(t *testing.T) {
	payload := strconv.Quote(`{":type":"sheet","data":[{"Name":"email","Type":"email","Label":"Email","Mandatory":"x"}]}`)
	page := `<!DOCTYPE html><html><head><title>Contact</title></head><body>` +
		`<div class="form"><div><div>style: /blocks/form/form.css</div></div>` +
		`<div><div><pre><code>` + payload + `</code></pre></div></div></div>` +
		`</body></html>`

	out, err := DecorateHTML(testsupport.Context(), []byte(page),
		decorator.WithBasePath(config.StaticBasePath("https://main--site.example.com")))
	if err != nil {
		t.Fatalf("decorate: %v", err)
	}

	doc := testsupport.MustParseDocument(t, string(out))
	if got, _ := doc.Find(`head link[rel="stylesheet"]`).Attr("href"); got != "https://main--site.example.com/blocks/form/form.css" {
		t.Fatalf("unexpected stylesheet href %q", got)
	}
	form := doc.Find(`div.form > form[data-source="sheet"]`)
	if form.Length() != 1 {
		t.Fatalf("expected rendered form in output:\n%s", out)
	}
	if _, ok := form.Find(`input[type="email"]`).Attr("required"); !ok {
		t.Fatalf("expected required email input")
	}
	if strings.Contains(string(out), "style:") {
		t.Fatalf("style row must be removed from the output")
	}
}

func TestDecorateHTML_ReturnsOutputWithErrors(t *testing.T) {
	page := `<html><head></head><body><div class="form"><div><div><pre><code>[]</code></pre></div></div></div></body></html>`

	out, err := DecorateHTML(testsupport.Context(), []byte(page))
	if !errors.Is(err, transform.ErrShapeDetection) {
		t.Fatalf("expected ErrShapeDetection, got %v", err)
	}
	if !strings.Contains(string(out), "<pre><code>[]</code></pre>") {
		t.Fatalf("expected failed block to be left as authored:\n%s", out)
	}
}

func TestDecorateHTML_FailedBlockLosesStyleRow(t *testing.T) {
	page := `<html><head></head><body><div class="form">` +
		`<div><div>style: /blocks/form/form.css</div></div>` +
		`<div><div><pre><code>[]</code></pre></div></div></div></body></html>`

	out, err := DecorateHTML(testsupport.Context(), []byte(page), decorator.WithBasePath(config.StaticBasePath("/base")))
	if !errors.Is(err, transform.ErrShapeDetection) {
		t.Fatalf("expected ErrShapeDetection, got %v", err)
	}
	if strings.Contains(string(out), "style:") {
		t.Fatalf("expected style row to be consumed:\n%s", out)
	}
	if !strings.Contains(string(out), "<pre><code>[]</code></pre>") {
		t.Fatalf("expected payload row to remain:\n%s", out)
	}
	if strings.Contains(string(out), "<link") {
		t.Fatalf("expected no stylesheet for a failed block:\n%s", out)
	}
}

func TestDecodeDefinition(t *testing.T) {
	def, err := DecodeDefinition([]byte(`{"adaptiveform":"0.10.0","id":"f","metadata":{},"properties":{},"items":[]}`))
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	if def.ID != "f" {
		t.Fatalf("unexpected id %q", def.ID)
	}
	if EmbeddedTemplates() == nil {
		t.Fatalf("expected embedded templates")
	}
}
