// Package formblock decorates authored form blocks in HTML pages. A block is
// either an Adaptive Form definition or a document-based sheet; both are
// normalised into one form model, rendered as a <form>, and an optional author
// stylesheet is linked from the page head.
package formblock

import (
	"bytes"
	"context"
	"fmt"
	"io/fs"

	"github.com/PuerkitoBio/goquery"
	"go.uber.org/multierr"
	"golang.org/x/net/html"

	"github.com/goliatone/go-formblock/pkg/adaptiveform"
	"github.com/goliatone/go-formblock/pkg/decorator"
	"github.com/goliatone/go-formblock/pkg/model"
	"github.com/goliatone/go-formblock/pkg/renderers/vanilla"
)

// FormModel aliases the normalised model for callers of the root package.
type FormModel = model.FormModel

// Result aliases the outcome of one decoration pass.
type Result = decorator.Result

// NewDecorator exposes the decorator constructor from the top-level module.
func NewDecorator(options ...decorator.Option) *decorator.Decorator {
	return decorator.New(options...)
}

// DecorateHTML parses page, decorates every form block in it and returns the
// serialised page. Blocks that fail are left untouched; their errors are
// returned combined alongside the output, which is still usable.
func DecorateHTML(ctx context.Context, page []byte, options ...decorator.Option) ([]byte, error) {
	doc, err := goquery.NewDocumentFromReader(bytes.NewReader(page))
	if err != nil {
		return nil, fmt.Errorf("formblock: parse page: %w", err)
	}

	_, decorateErr := decorator.New(options...).DecorateAll(ctx, doc)

	var buf bytes.Buffer
	if err := html.Render(&buf, doc.Get(0)); err != nil {
		return nil, multierr.Append(decorateErr, fmt.Errorf("formblock: render page: %w", err))
	}
	return buf.Bytes(), decorateErr
}

// DecodeDefinition decodes an Adaptive Form definition.
func DecodeDefinition(data []byte) (adaptiveform.Definition, error) {
	return adaptiveform.Decode(data)
}

// EmbeddedTemplates exposes the built-in field templates.
func EmbeddedTemplates() fs.FS {
	return vanilla.TemplatesFS()
}
