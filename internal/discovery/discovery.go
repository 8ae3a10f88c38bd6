// Package discovery walks a parsed document for candidate fillable elements.
package discovery

import (
	"strings"

	"github.com/PuerkitoBio/goquery"
	"golang.org/x/net/html"

	"github.com/jonathan/formfill-agent/internal/dom"
	"github.com/jonathan/formfill-agent/internal/types"
)

// primarySelector matches the native fillable elements of the first pass.
const primarySelector = `input[type="text"], input[type="email"], input[type="tel"], input[type="url"], input[type="number"], input[type="date"], textarea, select`

// sweepSelector is the supplementary pass over non-native widgets.
const sweepSelector = `[contenteditable="true"], div[role="textbox"], [aria-label]`

// nonFillableTags are excluded from the aria-label sweep; an aria-label on a
// button or link does not make it a text field.
var nonFillableTags = map[string]bool{
	"a": true, "button": true, "img": true, "svg": true,
	"option": true, "label": true, "nav": true,
}

// Discover returns every candidate fillable element in document order: the
// native selector pass first, then the ARIA/contenteditable sweep appended.
// Each element appears at most once; disabled and read-only native elements
// are skipped. Labels are not resolved here.
func Discover(doc *goquery.Document) []types.FormField {
	seen := make(map[*html.Node]bool)
	var fields []types.FormField

	add := func(sel *goquery.Selection, variant dom.Variant, kind types.FieldKind) {
		if len(sel.Nodes) == 0 || seen[sel.Nodes[0]] {
			return
		}
		seen[sel.Nodes[0]] = true

		el := dom.NewElement(sel, variant, kind)
		fields = append(fields, types.FormField{
			Element:     el,
			Kind:        kind,
			Name:        el.Attr("name"),
			ID:          el.Attr("id"),
			Placeholder: el.Attr("placeholder"),
			Required:    hasFlag(sel, "required") || el.Attr("aria-required") == "true",
		})
	}

	doc.Find(primarySelector).Each(func(_ int, sel *goquery.Selection) {
		if hasFlag(sel, "disabled") || hasFlag(sel, "readonly") {
			return
		}
		add(sel, dom.VariantNative, nativeKind(sel))
	})

	doc.Find(sweepSelector).Each(func(_ int, sel *goquery.Selection) {
		tag := goquery.NodeName(sel)
		if nonFillableTags[tag] || tag == "input" || tag == "textarea" || tag == "select" {
			// Native elements were already considered by the primary pass;
			// re-adding them here would bypass its disabled/readonly filter.
			return
		}
		variant := dom.VariantAriaTextbox
		kind := types.KindAriaTextbox
		if editable, _ := sel.Attr("contenteditable"); editable == "true" {
			variant = dom.VariantEditable
			kind = types.KindContentEditable
		}
		if role, ok := sel.Attr("role"); ok && role != "" {
			kind = types.FieldKind(role)
		}
		add(sel, variant, kind)
	})

	return fields
}

// nativeKind derives the field kind from a native element's tag and type.
func nativeKind(sel *goquery.Selection) types.FieldKind {
	switch goquery.NodeName(sel) {
	case "textarea":
		return types.KindTextarea
	case "select":
		return types.KindSelect
	}
	typ, _ := sel.Attr("type")
	typ = strings.ToLower(strings.TrimSpace(typ))
	if typ == "" {
		return types.KindText
	}
	return types.FieldKind(typ)
}

// hasFlag reports whether a boolean attribute is present, regardless of value.
func hasFlag(sel *goquery.Selection, name string) bool {
	_, ok := sel.Attr(name)
	return ok
}
