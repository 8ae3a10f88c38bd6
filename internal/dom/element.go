// Package dom wraps discovered page elements in a uniform read/write handle so
// the fill executor can dispatch on a variant tag instead of inspecting markup.
package dom

import (
	"fmt"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"golang.org/x/net/html"

	"github.com/jonathan/formfill-agent/internal/types"
)

// Variant distinguishes the three element families the engine can fill.
type Variant int

const (
	// VariantNative covers input, textarea, and select elements.
	VariantNative Variant = iota
	// VariantEditable covers contenteditable widgets.
	VariantEditable
	// VariantAriaTextbox covers div[role="textbox"] and other ARIA text boxes.
	VariantAriaTextbox
)

// Element is the goquery-backed implementation of types.ElementHandle. Writes
// mutate the parsed document in place.
type Element struct {
	sel     *goquery.Selection
	variant Variant
	kind    types.FieldKind
}

// NewElement wraps a single-node selection. The caller decides the variant and
// kind during discovery.
func NewElement(sel *goquery.Selection, variant Variant, kind types.FieldKind) *Element {
	return &Element{sel: sel, variant: variant, kind: kind}
}

// Selection exposes the underlying goquery selection for label resolution.
func (e *Element) Selection() *goquery.Selection {
	return e.sel
}

// Node returns the underlying parse-tree node, used as the identity for
// de-duplication across discovery passes.
func (e *Element) Node() *html.Node {
	if len(e.sel.Nodes) == 0 {
		return nil
	}
	return e.sel.Nodes[0]
}

// Variant returns the element family tag.
func (e *Element) Variant() Variant {
	return e.variant
}

// Kind returns the field kind assigned at discovery.
func (e *Element) Kind() types.FieldKind {
	return e.kind
}

// Attr returns a trimmed attribute value, or empty when absent.
func (e *Element) Attr(name string) string {
	v, _ := e.sel.Attr(name)
	return strings.TrimSpace(v)
}

// Text returns the element's current value.
func (e *Element) Text() string {
	switch {
	case e.kind == types.KindSelect:
		var selected string
		e.sel.Find("option").EachWithBreak(func(_ int, opt *goquery.Selection) bool {
			if _, ok := opt.Attr("selected"); ok {
				selected = strings.TrimSpace(opt.Text())
				return false
			}
			return true
		})
		return selected
	case e.kind == types.KindTextarea, e.variant != VariantNative:
		return strings.TrimSpace(e.sel.Text())
	default:
		return e.Attr("value")
	}
}

// SetText writes a value appropriate to the element flavor. Select elements
// must be written through SelectOption instead.
func (e *Element) SetText(value string) error {
	switch {
	case e.kind == types.KindSelect:
		return fmt.Errorf("select element must be filled via SelectOption")
	case e.kind == types.KindTextarea, e.variant != VariantNative:
		e.sel.SetText(value)
		return nil
	default:
		e.sel.SetAttr("value", value)
		return nil
	}
}

// Options lists a select element's options in document order.
func (e *Element) Options() []types.Option {
	if e.kind != types.KindSelect {
		return nil
	}
	var opts []types.Option
	e.sel.Find("option").Each(func(_ int, opt *goquery.Selection) {
		value, _ := opt.Attr("value")
		opts = append(opts, types.Option{
			Value: strings.TrimSpace(value),
			Text:  strings.TrimSpace(opt.Text()),
		})
	})
	return opts
}

// SelectOption marks the option with the given value attribute as selected,
// clearing any previous selection.
func (e *Element) SelectOption(value string) error {
	if e.kind != types.KindSelect {
		return fmt.Errorf("not a select element")
	}
	found := false
	e.sel.Find("option").Each(func(_ int, opt *goquery.Selection) {
		v, _ := opt.Attr("value")
		if strings.TrimSpace(v) == value && !found {
			opt.SetAttr("selected", "selected")
			found = true
		} else {
			opt.RemoveAttr("selected")
		}
	})
	if !found {
		return fmt.Errorf("no option with value %q", value)
	}
	return nil
}

var _ types.ElementHandle = (*Element)(nil)
