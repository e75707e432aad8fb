package decorator

import (
	"context"
	"fmt"
	"strings"

	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"

	"github.com/goliatone/go-formblock/pkg/model"
	"github.com/goliatone/go-formblock/pkg/render"
)

type renderedField struct {
	field model.Field
	nodes []*html.Node
}

// renderForm builds a detached <form> root holding one subtree per field.
// Fields whose Group names a fieldset are moved inside it once every field
// has been rendered, so a fieldset may be declared before or after its
// members.
func renderForm(ctx context.Context, renderer render.FieldRenderer, form model.FormModel) (*html.Node, error) {
	root := &html.Node{
		Type:     html.ElementNode,
		Data:     "form",
		DataAtom: atom.Form,
		Attr:     []html.Attribute{{Key: SourceAttribute, Val: string(form.Source())}},
	}
	if form.ID != "" {
		root.Attr = append(root.Attr, html.Attribute{Key: "data-form-id", Val: form.ID})
	}

	rendered := make([]renderedField, 0, len(form.Fields))
	fieldsets := make(map[string]*html.Node)
	groups := make(map[string]string)

	for _, field := range form.Fields {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		markup, err := renderer.RenderField(ctx, field)
		if err != nil {
			return nil, err
		}
		nodes, err := parseFragment(markup)
		if err != nil {
			return nil, fmt.Errorf("parse markup for field %q: %w", field.Name, err)
		}
		rendered = append(rendered, renderedField{field: field, nodes: nodes})

		if field.Kind == model.KindFieldset {
			if node := findElement(nodes, atom.Fieldset); node != nil {
				if _, exists := fieldsets[field.Name]; !exists {
					fieldsets[field.Name] = node
					groups[field.Name] = field.Group
				}
			}
		}
	}

	for _, entry := range rendered {
		parent := root
		if target, ok := fieldsets[entry.field.Group]; ok && !createsCycle(groups, entry.field) {
			parent = target
		}
		for _, node := range entry.nodes {
			parent.AppendChild(node)
		}
	}
	return root, nil
}

// createsCycle reports whether nesting field under its group would make a
// fieldset its own ancestor.
func createsCycle(groups map[string]string, field model.Field) bool {
	if field.Kind != model.KindFieldset {
		return false
	}
	seen := map[string]struct{}{field.Name: {}}
	for group := field.Group; group != ""; group = groups[group] {
		if _, loop := seen[group]; loop {
			return true
		}
		seen[group] = struct{}{}
	}
	return false
}

func parseFragment(markup string) ([]*html.Node, error) {
	parent := &html.Node{Type: html.ElementNode, Data: "div", DataAtom: atom.Div}
	nodes, err := html.ParseFragment(strings.NewReader(markup), parent)
	if err != nil {
		return nil, err
	}
	out := nodes[:0]
	for _, node := range nodes {
		if node.Type == html.TextNode && strings.TrimSpace(node.Data) == "" {
			continue
		}
		out = append(out, node)
	}
	return out, nil
}

func findElement(nodes []*html.Node, target atom.Atom) *html.Node {
	for _, node := range nodes {
		if node.Type == html.ElementNode && node.DataAtom == target {
			return node
		}
		if found := findElement(children(node), target); found != nil {
			return found
		}
	}
	return nil
}

func children(node *html.Node) []*html.Node {
	var out []*html.Node
	for child := node.FirstChild; child != nil; child = child.NextSibling {
		out = append(out, child)
	}
	return out
}
