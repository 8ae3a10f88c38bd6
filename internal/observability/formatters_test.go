package observability

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/jonathan/formfill-agent/internal/types"
)

func TestPrintDetectResult(t *testing.T) {
	var buf bytes.Buffer
	p := NewPrinter(&buf)

	p.PrintDetectResult(types.DetectResult{
		Count: 2,
		Fields: []types.DetectedField{
			{Type: "text", Label: "Full Name", Required: true},
			{Type: "email"},
		},
	})

	out := buf.String()
	assert.Contains(t, out, "DETECTED FIELDS")
	assert.Contains(t, out, "Fields found: 2")
	assert.Contains(t, out, "Full Name")
	assert.Contains(t, out, "required")
	assert.Contains(t, out, "(no label)")
}

func TestPrintFillReport(t *testing.T) {
	var buf bytes.Buffer
	p := NewPrinter(&buf)

	p.PrintFillReport(&types.FillReport{
		Filled: 3,
		Total:  5,
		Errors: []string{"Error filling City: no option"},
		Suggestions: []types.ProfileSuggestion{
			{Key: "linkedin", Label: "LinkedIn", Value: "https://linkedin.com/in/jane"},
		},
		Message: "done",
	})

	out := buf.String()
	assert.Contains(t, out, "FILL REPORT")
	assert.Contains(t, out, "Filled:   3 of 5")
	assert.Contains(t, out, "Error filling City")
	assert.Contains(t, out, "linkedin")
	assert.Contains(t, out, "done")
}

func TestPrintFillReport_NilReport(t *testing.T) {
	var buf bytes.Buffer
	NewPrinter(&buf).PrintFillReport(nil)
	assert.Empty(t, buf.String())
}
