// Package block models a document-authored content block: an ordered list of
// rows, each made of one or more cells, backed by a goquery selection so row
// removal mutates the page in place.
package block

import (
	"io"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"golang.org/x/net/html"
)

// Block wraps the container element of a document-based block. The rows are
// the container's direct element children.
type Block struct {
	sel *goquery.Selection
}

// New wraps a block container. A nil or empty selection yields a Block with no
// rows.
func New(sel *goquery.Selection) *Block {
	return &Block{sel: sel}
}

// Parse reads an HTML fragment and returns the first element matching
// selector as a Block, along with the owning document.
func Parse(r io.Reader, selector string) (*goquery.Document, *Block, error) {
	doc, err := goquery.NewDocumentFromReader(r)
	if err != nil {
		return nil, nil, err
	}
	return doc, New(doc.Find(selector).First()), nil
}

// ParseString is Parse for an in-memory string.
func ParseString(markup, selector string) (*goquery.Document, *Block, error) {
	return Parse(strings.NewReader(markup), selector)
}

// Selection exposes the underlying container.
func (b *Block) Selection() *goquery.Selection {
	if b == nil {
		return nil
	}
	return b.sel
}

func (b *Block) rows() *goquery.Selection {
	if b == nil || b.sel == nil || b.sel.Length() == 0 {
		return nil
	}
	return b.sel.Children()
}

// Len returns the number of rows.
func (b *Block) Len() int {
	rows := b.rows()
	if rows == nil {
		return 0
	}
	return rows.Length()
}

// Row returns the selection for row i.
func (b *Block) Row(i int) *goquery.Selection {
	rows := b.rows()
	if rows == nil || i < 0 || i >= rows.Length() {
		return nil
	}
	return rows.Eq(i)
}

// RowText flattens row i to text: the trimmed text of every cell joined by a
// single space. A row without cell elements is its own trimmed text.
func (b *Block) RowText(i int) string {
	row := b.Row(i)
	if row == nil {
		return ""
	}
	return flatten(row)
}

// RemoveRow detaches row i from the block.
func (b *Block) RemoveRow(i int) {
	if row := b.Row(i); row != nil {
		row.Remove()
	}
}

// Payload returns the text of the first <pre><code> node in the block and the
// index of the row holding it. ok is false when the block has no payload.
func (b *Block) Payload() (text string, row int, ok bool) {
	rows := b.rows()
	if rows == nil {
		return "", -1, false
	}
	row = -1
	rows.EachWithBreak(func(i int, s *goquery.Selection) bool {
		code := s.Find("pre > code")
		if code.Length() == 0 && goquery.NodeName(s) == "pre" {
			code = s.ChildrenFiltered("code")
		}
		if code.Length() == 0 {
			return true
		}
		text = code.First().Text()
		row = i
		return false
	})
	return text, row, row >= 0
}

// ReplaceChildren removes every row and appends nodes in their place.
func (b *Block) ReplaceChildren(nodes ...*html.Node) {
	if b == nil || b.sel == nil {
		return
	}
	b.sel.Empty()
	b.sel.AppendNodes(nodes...)
}

func flatten(row *goquery.Selection) string {
	cells := row.Children()
	if cells.Length() == 0 || !allCells(cells) {
		return strings.TrimSpace(row.Text())
	}
	parts := make([]string, 0, cells.Length())
	cells.Each(func(_ int, cell *goquery.Selection) {
		if text := strings.TrimSpace(cell.Text()); text != "" {
			parts = append(parts, text)
		}
	})
	return strings.Join(parts, " ")
}

// allCells reports whether the children look like table cells rather than
// inline markup inside a single text row.
func allCells(cells *goquery.Selection) bool {
	ok := true
	cells.EachWithBreak(func(_ int, cell *goquery.Selection) bool {
		switch goquery.NodeName(cell) {
		case "div", "td", "th":
			return true
		default:
			ok = false
			return false
		}
	})
	return ok
}
