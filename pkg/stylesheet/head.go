package stylesheet

import (
	"errors"
	"strings"
	"sync"

	"github.com/PuerkitoBio/goquery"
	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"
)

// Head is the Registry backed by a document's <head>. The existing links are
// inspected on every Attach, so passes sharing one document never add the
// same href twice.
type Head struct {
	mu  sync.Mutex
	doc *goquery.Document
}

// NewHead wraps a parsed document.
func NewHead(doc *goquery.Document) *Head {
	return &Head{doc: doc}
}

// Attach appends <link rel="stylesheet" href="..."> unless a stylesheet link
// with the same href already exists.
func (h *Head) Attach(href string) (bool, error) {
	if h == nil || h.doc == nil {
		return false, errors.New("stylesheet: document is nil")
	}

	h.mu.Lock()
	defer h.mu.Unlock()

	head := h.doc.Find("head").First()
	if head.Length() == 0 {
		return false, errors.New("stylesheet: document has no head")
	}
	if len(matchingLinks(head, href)) > 0 {
		return false, nil
	}

	head.AppendNodes(&html.Node{
		Type:     html.ElementNode,
		Data:     "link",
		DataAtom: atom.Link,
		Attr: []html.Attribute{
			{Key: "rel", Val: "stylesheet"},
			{Key: "href", Val: href},
		},
	})
	return true, nil
}

// Has reports whether a stylesheet link with href is present.
func (h *Head) Has(href string) bool {
	return h.Count(href) > 0
}

// Count returns how many stylesheet links carry href.
func (h *Head) Count(href string) int {
	if h == nil || h.doc == nil {
		return 0
	}
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(matchingLinks(h.doc.Find("head"), href))
}

// Links lists the hrefs of every stylesheet link in document order.
func (h *Head) Links() []string {
	if h == nil || h.doc == nil {
		return nil
	}
	h.mu.Lock()
	defer h.mu.Unlock()

	var out []string
	h.doc.Find("head link").Each(func(_ int, link *goquery.Selection) {
		if !isStylesheet(link) {
			return
		}
		if href, ok := link.Attr("href"); ok {
			out = append(out, href)
		}
	})
	return out
}

func matchingLinks(head *goquery.Selection, href string) []*goquery.Selection {
	var out []*goquery.Selection
	head.Find("link").Each(func(_ int, link *goquery.Selection) {
		if !isStylesheet(link) {
			return
		}
		if existing, ok := link.Attr("href"); ok && existing == href {
			out = append(out, link)
		}
	})
	return out
}

func isStylesheet(link *goquery.Selection) bool {
	rel, _ := link.Attr("rel")
	for _, token := range strings.Fields(rel) {
		if strings.EqualFold(token, "stylesheet") {
			return true
		}
	}
	return false
}
