package resolver

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/tidwall/gjson"

	"github.com/jonathan/formfill-agent/internal/llm"
	"github.com/jonathan/formfill-agent/internal/prompts"
	"github.com/jonathan/formfill-agent/internal/schemas"
	"github.com/jonathan/formfill-agent/internal/types"
)

// maxBulkLabelLen bounds how much of a label goes into the bulk schema, to
// keep the prompt compact.
const maxBulkLabelLen = 120

// bulkField is one entry of the index-keyed schema embedded in the bulk
// prompt.
type bulkField struct {
	Index int    `json:"index"`
	Label string `json:"label"`
	Type  string `json:"type"`
}

// resolveBulk attempts exactly one generative call covering all unmapped
// fields. The returned map is keyed by field index; indices absent from the
// response fall through to per-field resolution in the caller.
func (r *Resolver) resolveBulk(ctx context.Context, fields []types.FormField, indices []int) (map[int]string, error) {
	schema := make([]bulkField, 0, len(indices))
	labelParts := make([]string, 0, len(indices))
	for _, i := range indices {
		label := bulkLabel(fields[i])
		schema = append(schema, bulkField{Index: i, Label: label, Type: string(fields[i].Kind)})
		labelParts = append(labelParts, label)
	}

	schemaJSON, err := json.Marshal(schema)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal field schema: %w", err)
	}

	prompt := prompts.Format(prompts.MustGet("fill.json", "bulk-fill"), map[string]string{
		"FieldSchema": string(schemaJSON),
		"Profile":     r.profileJSON(),
		"PageURL":     r.pageURL,
	})

	cacheKey := BulkPrefix + strings.Join(labelParts, "|")
	raw, err := r.callWithPolicy(ctx, cacheKey, prompt)
	if err != nil {
		return nil, err
	}

	byKey, err := parseBulkResponse(raw)
	if err != nil {
		return nil, err
	}

	answers := make(map[int]string, len(byKey))
	for _, i := range indices {
		if value, ok := byKey[fmt.Sprintf("field_%d", i)]; ok && strings.TrimSpace(value) != "" {
			answers[i] = strings.TrimSpace(value)
		}
	}
	return answers, nil
}

// parseBulkResponse parses a bulk response: strict JSON first, then a rescue
// pass that extracts the first top-level {...} substring. Both paths accept
// only an object of string values.
func parseBulkResponse(raw string) (map[string]string, error) {
	clean := llm.CleanJSONBlock(raw)

	if err := schemas.ValidateBulkResponse(clean); err == nil {
		var byKey map[string]string
		if err := json.Unmarshal([]byte(clean), &byKey); err == nil {
			return byKey, nil
		}
	}

	// The service sometimes surrounds the object with commentary despite the
	// strict-JSON instruction. Take everything between the first { and the
	// last } and try again.
	start := strings.Index(clean, "{")
	end := strings.LastIndex(clean, "}")
	if start < 0 || end <= start {
		return nil, fmt.Errorf("no JSON object found in bulk response")
	}
	candidate := clean[start : end+1]
	if !gjson.Valid(candidate) {
		return nil, fmt.Errorf("extracted bulk substring is not valid JSON")
	}

	byKey := make(map[string]string)
	gjson.Parse(candidate).ForEach(func(key, value gjson.Result) bool {
		if value.Type == gjson.String {
			byKey[key.String()] = value.String()
		}
		return true
	})
	if len(byKey) == 0 {
		return nil, fmt.Errorf("bulk response contained no string answers")
	}
	return byKey, nil
}

// bulkLabel picks the best short descriptor for a field in the bulk schema.
func bulkLabel(field types.FormField) string {
	label := field.Label
	if label == "" {
		label = field.Placeholder
	}
	if label == "" {
		label = field.Name
	}
	if len(label) > maxBulkLabelLen {
		label = label[:maxBulkLabelLen]
	}
	return label
}
