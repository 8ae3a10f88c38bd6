// Package labels derives a human-meaningful label for a discovered element
// through a prioritized fallback search of the surrounding markup.
package labels

import (
	"fmt"
	"strings"

	"github.com/PuerkitoBio/goquery"

	"github.com/jonathan/formfill-agent/internal/dom"
)

// Bounds for the nearby-prompt crawl, the weakest strategy in the chain.
const (
	maxSiblingHops  = 5
	maxAncestorHops = 4
)

// promptSelector matches heading/label/legend/paragraph-like elements that can
// serve as an informal prompt for a field.
const promptSelector = "h1, h2, h3, h4, h5, h6, label, legend, p, strong, b"

// Resolve returns the best available label for an element, or empty string.
// Strategies run from most explicit/authoritative to weakest heuristic; the
// first non-empty trimmed result wins.
func Resolve(doc *goquery.Document, el *dom.Element) string {
	sel := el.Selection()
	strategies := []func() string{
		func() string { return explicitLabel(doc, el) },
		func() string { return ancestorLabel(sel) },
		func() string { return ariaLabelledBy(doc, el) },
		func() string { return fieldsetLegend(sel) },
		func() string { return prevSiblingText(sel) },
		func() string { return el.Attr("aria-label") },
		func() string { return el.Attr("placeholder") },
		func() string { return el.Attr("name") },
		func() string { return el.Attr("id") },
		func() string { return nearbyPrompt(sel) },
	}
	for _, strategy := range strategies {
		if text := strings.TrimSpace(strategy()); text != "" {
			return text
		}
	}
	return ""
}

// explicitLabel finds a label element associated via for/id linkage.
func explicitLabel(doc *goquery.Document, el *dom.Element) string {
	id := el.Attr("id")
	if id == "" {
		return ""
	}
	return doc.Find(fmt.Sprintf(`label[for=%q]`, id)).First().Text()
}

// ancestorLabel finds a label inside the nearest enclosing block element.
func ancestorLabel(sel *goquery.Selection) string {
	return sel.Closest("div, p, td, th").Find("label").First().Text()
}

// ariaLabelledBy concatenates the text of all referenced elements, space
// joined, in listed order.
func ariaLabelledBy(doc *goquery.Document, el *dom.Element) string {
	refs := strings.Fields(el.Attr("aria-labelledby"))
	if len(refs) == 0 {
		return ""
	}
	var parts []string
	for _, id := range refs {
		if text := strings.TrimSpace(doc.Find(fmt.Sprintf(`[id=%q]`, id)).First().Text()); text != "" {
			parts = append(parts, text)
		}
	}
	return strings.Join(parts, " ")
}

// fieldsetLegend returns the legend of an enclosing fieldset.
func fieldsetLegend(sel *goquery.Selection) string {
	return sel.Closest("fieldset").Find("legend").First().Text()
}

// prevSiblingText returns the text of the immediately preceding sibling.
func prevSiblingText(sel *goquery.Selection) string {
	return sel.Prev().Text()
}

// nearbyPrompt is the bounded last-resort crawl: up to maxSiblingHops
// preceding siblings looking for prompt-like elements with text, then up to
// maxAncestorHops ancestor levels searching the same tag set within each
// ancestor's subtree.
func nearbyPrompt(sel *goquery.Selection) string {
	sibling := sel.Prev()
	for hop := 0; hop < maxSiblingHops && sibling.Length() > 0; hop++ {
		if sibling.Is(promptSelector) {
			if text := strings.TrimSpace(sibling.Text()); text != "" {
				return text
			}
		}
		if text := strings.TrimSpace(sibling.Find(promptSelector).First().Text()); text != "" {
			return text
		}
		sibling = sibling.Prev()
	}

	ancestor := sel.Parent()
	for hop := 0; hop < maxAncestorHops && ancestor.Length() > 0; hop++ {
		if text := strings.TrimSpace(ancestor.Find(promptSelector).First().Text()); text != "" {
			return text
		}
		ancestor = ancestor.Parent()
	}
	return ""
}
