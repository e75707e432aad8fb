package decorator

import (
	"context"
	"fmt"

	"github.com/PuerkitoBio/goquery"
	"go.uber.org/multierr"
	"go.uber.org/zap"

	"github.com/goliatone/go-formblock/pkg/stylesheet"
)

// DecorateAll decorates every block in doc matching the configured selector,
// in document order. A failing block keeps its authored content, less any
// style row already consumed, and the others are still decorated; the
// failures are combined into the returned error.
func (d *Decorator) DecorateAll(ctx context.Context, doc *goquery.Document) ([]Result, error) {
	if doc == nil {
		return nil, fmt.Errorf("decorator: document is required")
	}

	head := stylesheet.NewHead(doc)
	blocks := doc.Find(d.selector)
	results := make([]Result, 0, blocks.Length())

	var errs error
	for i := range blocks.Length() {
		if err := ctx.Err(); err != nil {
			return results, multierr.Append(errs, err)
		}
		result, err := d.Decorate(ctx, Request{
			Document: doc,
			Block:    blocks.Eq(i),
			Head:     head,
		})
		if err != nil {
			d.logger.Warn("form block skipped", zap.Int("block", i), zap.Error(err))
			errs = multierr.Append(errs, fmt.Errorf("block %d: %w", i, err))
			continue
		}
		results = append(results, result)
	}
	return results, errs
}
