package types

// FieldKind tags the concrete element flavor a discovered field wraps. Native
// input types keep their HTML type token; non-native widgets get their own tags.
type FieldKind string

// Field kinds produced by discovery.
const (
	KindText            FieldKind = "text"
	KindEmail           FieldKind = "email"
	KindTel             FieldKind = "tel"
	KindURL             FieldKind = "url"
	KindNumber          FieldKind = "number"
	KindDate            FieldKind = "date"
	KindTextarea        FieldKind = "textarea"
	KindSelect          FieldKind = "select"
	KindContentEditable FieldKind = "contenteditable"
	KindAriaTextbox     FieldKind = "textbox"
)

// FormField is the transient record for one discovered fillable element within
// a single detect/fill pass. It is never persisted; the Element handle is only
// valid for the document the pass ran against.
type FormField struct {
	Element     ElementHandle `json:"-"`
	Kind        FieldKind     `json:"type"`
	Name        string        `json:"name,omitempty"`
	ID          string        `json:"id,omitempty"`
	Placeholder string        `json:"placeholder,omitempty"`
	Label       string        `json:"label,omitempty"`
	Required    bool          `json:"required,omitempty"`
}

// ElementHandle is the capability surface the fill executor needs from a
// discovered element. The dom package provides the goquery-backed
// implementation; tests may substitute fakes.
type ElementHandle interface {
	// Text returns the element's current textual value.
	Text() string
	// SetText writes a textual value appropriate to the element flavor.
	SetText(value string) error
	// Options lists a select element's options as (value, visible text) pairs.
	// Non-select elements return nil.
	Options() []Option
	// SelectOption marks the option with the given value as selected.
	SelectOption(value string) error
}

// Option is one select-element choice.
type Option struct {
	Value string
	Text  string
}

// DetectedField is the externally visible shape of one discovered field, as
// returned by the detectFields entry point.
type DetectedField struct {
	Type        string `json:"type"`
	Name        string `json:"name,omitempty"`
	Label       string `json:"label,omitempty"`
	Placeholder string `json:"placeholder,omitempty"`
	Required    bool   `json:"required,omitempty"`
}

// DetectResult is the response of a detect pass.
type DetectResult struct {
	Count  int             `json:"count"`
	Fields []DetectedField `json:"fields"`
}
