package discovery

import (
	"strings"
	"testing"

	"github.com/PuerkitoBio/goquery"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jonathan/formfill-agent/internal/types"
)

func parseDoc(t *testing.T, html string) *goquery.Document {
	t.Helper()
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	require.NoError(t, err)
	return doc
}

func TestDiscover_NativeElements(t *testing.T) {
	doc := parseDoc(t, `<form>
		<input type="text" name="name">
		<input type="email" name="email" required>
		<input type="tel" name="phone">
		<textarea name="bio"></textarea>
		<select name="country"><option value="us">US</option></select>
	</form>`)

	fields := Discover(doc)
	require.Len(t, fields, 5)

	assert.Equal(t, types.KindText, fields[0].Kind)
	assert.Equal(t, types.KindEmail, fields[1].Kind)
	assert.True(t, fields[1].Required)
	assert.Equal(t, types.KindTel, fields[2].Kind)
	assert.Equal(t, types.KindTextarea, fields[3].Kind)
	assert.Equal(t, types.KindSelect, fields[4].Kind)
}

func TestDiscover_SkipsUnfillableInputTypes(t *testing.T) {
	doc := parseDoc(t, `<form>
		<input type="hidden" name="csrf">
		<input type="submit" value="Go">
		<input type="checkbox" name="agree">
		<input type="password" name="pw">
		<input type="text" name="ok">
	</form>`)

	fields := Discover(doc)
	require.Len(t, fields, 1)
	assert.Equal(t, "ok", fields[0].Name)
}

func TestDiscover_SkipsDisabledAndReadonly(t *testing.T) {
	doc := parseDoc(t, `<form>
		<input type="text" name="locked" disabled>
		<input type="text" name="frozen" readonly>
		<input type="text" name="open">
	</form>`)

	fields := Discover(doc)
	require.Len(t, fields, 1)
	assert.Equal(t, "open", fields[0].Name)
}

func TestDiscover_SweepFindsNonNativeWidgets(t *testing.T) {
	doc := parseDoc(t, `<div>
		<div id="editor" contenteditable="true"></div>
		<div id="combo" role="textbox" aria-label="Search"></div>
	</div>`)

	fields := Discover(doc)
	require.Len(t, fields, 2)
	assert.Equal(t, types.KindContentEditable, fields[0].Kind)
	assert.Equal(t, types.KindAriaTextbox, fields[1].Kind)
}

func TestDiscover_SweepSkipsNonFillableTags(t *testing.T) {
	doc := parseDoc(t, `<div>
		<button aria-label="Submit">Go</button>
		<a aria-label="Home" href="/">Home</a>
		<img aria-label="Logo" src="x.png">
		<span aria-label="Status">OK</span>
	</div>`)

	fields := Discover(doc)
	// Only the span survives the sweep filter.
	require.Len(t, fields, 1)
	assert.Equal(t, types.KindAriaTextbox, fields[0].Kind)
}

func TestDiscover_DedupesAcrossPasses(t *testing.T) {
	// A native input with an aria-label matches both selectors but must
	// appear once, keeping the primary pass result.
	doc := parseDoc(t, `<form>
		<input type="text" name="q" aria-label="Search">
	</form>`)

	fields := Discover(doc)
	require.Len(t, fields, 1)
	assert.Equal(t, types.KindText, fields[0].Kind)
}

func TestDiscover_SweepDoesNotResurrectDisabledNatives(t *testing.T) {
	doc := parseDoc(t, `<form>
		<input type="text" name="locked" aria-label="Locked" disabled>
	</form>`)

	assert.Empty(t, Discover(doc))
}

func TestDiscover_DocumentOrder(t *testing.T) {
	doc := parseDoc(t, `<form>
		<input type="text" name="first">
		<div contenteditable="true" id="editor"></div>
		<input type="text" name="second">
	</form>`)

	fields := Discover(doc)
	require.Len(t, fields, 3)
	// Natives first in document order, then the sweep.
	assert.Equal(t, "first", fields[0].Name)
	assert.Equal(t, "second", fields[1].Name)
	assert.Equal(t, types.KindContentEditable, fields[2].Kind)
}

func TestDiscover_AriaRequired(t *testing.T) {
	doc := parseDoc(t, `<div contenteditable="true" aria-required="true" id="e"></div>`)
	fields := Discover(doc)
	require.Len(t, fields, 1)
	assert.True(t, fields[0].Required)
}

func TestDiscover_CapturesAttributes(t *testing.T) {
	doc := parseDoc(t, `<input type="text" name="city" id="city-input" placeholder="City">`)
	fields := Discover(doc)
	require.Len(t, fields, 1)

	f := fields[0]
	assert.Equal(t, "city", f.Name)
	assert.Equal(t, "city-input", f.ID)
	assert.Equal(t, "City", f.Placeholder)
	assert.NotNil(t, f.Element)
}
