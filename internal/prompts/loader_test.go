package prompts

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGet_AllFillPrompts(t *testing.T) {
	ClearCache()

	for _, key := range []string{"bulk-fill", "subjective-answer", "generic-inference"} {
		t.Run(key, func(t *testing.T) {
			prompt, err := Get("fill.json", key)
			require.NoError(t, err)
			assert.NotEmpty(t, prompt)
		})
	}
}

func TestGet_UnknownKey(t *testing.T) {
	_, err := Get("fill.json", "no-such-prompt")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "no-such-prompt")
}

func TestGet_UnknownFile(t *testing.T) {
	_, err := Get("missing.json", "bulk-fill")
	assert.Error(t, err)
}

func TestMustGet_PanicsOnMissing(t *testing.T) {
	assert.Panics(t, func() { MustGet("fill.json", "no-such-prompt") })
	assert.NotPanics(t, func() { MustGet("fill.json", "bulk-fill") })
}

func TestFormat(t *testing.T) {
	formatted := Format("Question: {{.Question}} Profile: {{.Profile}}", map[string]string{
		"Question": "Why us?",
		"Profile":  `{"name":"Jane"}`,
	})
	assert.Equal(t, `Question: Why us? Profile: {"name":"Jane"}`, formatted)
}

func TestFormat_LeavesUnknownPlaceholders(t *testing.T) {
	formatted := Format("{{.Known}} and {{.Unknown}}", map[string]string{"Known": "x"})
	assert.Equal(t, "x and {{.Unknown}}", formatted)
}

func TestBulkFillPrompt_HasAllPlaceholders(t *testing.T) {
	prompt := MustGet("fill.json", "bulk-fill")
	for _, placeholder := range []string{"{{.PageURL}}", "{{.Profile}}", "{{.FieldSchema}}"} {
		assert.Contains(t, prompt, placeholder)
	}
	assert.True(t, strings.Contains(prompt, "STRICT JSON"), "bulk prompt must demand strict JSON output")
}

func TestSingleFieldPrompts_HavePlaceholders(t *testing.T) {
	for _, key := range []string{"subjective-answer", "generic-inference"} {
		prompt := MustGet("fill.json", key)
		assert.Contains(t, prompt, "{{.Question}}", key)
		assert.Contains(t, prompt, "{{.Profile}}", key)
	}
}
