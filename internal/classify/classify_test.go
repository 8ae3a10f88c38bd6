package classify

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jonathan/formfill-agent/internal/types"
)

func TestNormalize(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{"lowercases", "Full Name", "full name"},
		{"strips punctuation", "E-Mail Address:*", "e mail address"},
		{"collapses whitespace", "  phone \t number  ", "phone number"},
		{"keeps digits", "Address Line 2", "address line 2"},
		{"empty input", "", ""},
		{"only punctuation", "***", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, Normalize(tt.input))
		})
	}
}

func TestFieldText_CombinesAttributes(t *testing.T) {
	field := types.FormField{
		Label:       "Your Phone",
		Placeholder: "(555) 000-0000",
		Name:        "applicant_phone",
		ID:          "phone-input",
	}
	assert.Equal(t, "your phone 555 000 0000 applicant phone phone input", FieldText(field))
}

func TestCategoryMatches_ToleratesSurroundingWords(t *testing.T) {
	tests := []struct {
		name    string
		key     string
		subject string
		match   bool
	}{
		{"exact synonym", types.KeyEmail, "email", true},
		{"decorated label", types.KeyPhone, "your phone number", true},
		{"hyphenated email", types.KeyEmail, Normalize("E-mail Address *"), true},
		{"whatsapp number is phone", types.KeyPhone, "whatsapp number", true},
		{"unrelated text", types.KeyEmail, "favorite color", false},
		{"postal code", types.KeyZipCode, "postal code", true},
		{"linkedin spaced", types.KeyLinkedIn, Normalize("Linked-In profile"), true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cat, ok := findCategory(tt.key)
			require.True(t, ok, "category %s must exist", tt.key)
			assert.Equal(t, tt.match, cat.Matches(tt.subject))
		})
	}
}

func TestCategories_NameRanksBeforeEmail(t *testing.T) {
	// "name" appears inside "username"; ordering decides ties, so the list
	// must keep name first and email second.
	require.GreaterOrEqual(t, len(Categories), 2)
	assert.Equal(t, types.KeyName, Categories[0].Key)
	assert.Equal(t, types.KeyEmail, Categories[1].Key)
}

func TestIsRelocation(t *testing.T) {
	assert.True(t, IsRelocation(Normalize("Are you willing to relocate?")))
	assert.True(t, IsRelocation(Normalize("Open to relocation")))
	assert.False(t, IsRelocation(Normalize("Current location")))
}

func TestIsSubjective(t *testing.T) {
	tests := []struct {
		subject    string
		subjective bool
	}{
		{"why do you want this job", true},
		{"describe a challenge you overcame", true},
		{"tell us about yourself", true},
		{"favorite color", false},
		{"t shirt size", false},
	}

	for _, tt := range tests {
		t.Run(tt.subject, func(t *testing.T) {
			assert.Equal(t, tt.subjective, IsSubjective(tt.subject))
		})
	}
}

func TestInferCategory(t *testing.T) {
	tests := []struct {
		label    string
		expected string
		found    bool
	}{
		{"Full Name", types.KeyName, true},
		{"E-mail", types.KeyEmail, true},
		{"Telephone", types.KeyPhone, true},
		{"LinkedIn Profile URL", types.KeyLinkedIn, true},
		{"Expected Salary", types.KeySalary, true},
		{"Notice Period", types.KeyAvailability, true},
		{"Favorite color", "", false},
		{"", "", false},
	}

	for _, tt := range tests {
		t.Run(tt.label, func(t *testing.T) {
			key, ok := InferCategory(tt.label)
			assert.Equal(t, tt.found, ok)
			assert.Equal(t, tt.expected, key)
		})
	}
}

func findCategory(key string) (Category, bool) {
	for _, cat := range Categories {
		if cat.Key == key {
			return cat, true
		}
	}
	return Category{}, false
}
