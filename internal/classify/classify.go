// Package classify maps field text onto the fixed profile category schema
// using normalized-text synonym matching.
package classify

import (
	"strings"
	"unicode"

	"github.com/jonathan/formfill-agent/internal/types"
)

// Category pairs a profile key with the synonyms that identify it. Matching is
// substring containment of a normalized synonym within the normalized subject
// text, which deliberately tolerates surrounding words ("Your Phone Number *").
type Category struct {
	Key      string
	Synonyms []string
}

// Categories is the fixed match order for direct mapping. The first category
// whose synonyms match AND whose profile value is non-empty wins; relocation
// is handled separately as a boolean special case.
var Categories = []Category{
	{types.KeyName, []string{"name", "full name", "your name", "first name", "last name", "given name", "family name", "surname"}},
	{types.KeyEmail, []string{"email", "e mail", "email address", "mail"}},
	{types.KeyPhone, []string{"phone", "mobile", "mobile number", "cell", "cellphone", "contact number", "whatsapp number", "telephone", "tel"}},
	{types.KeyAddress, []string{"address", "street", "street address", "address line"}},
	{types.KeyCity, []string{"city", "town", "locality"}},
	{types.KeyState, []string{"state", "province", "region"}},
	{types.KeyZipCode, []string{"zip", "zip code", "zipcode", "postal", "postal code", "postcode"}},
	{types.KeyCountry, []string{"country", "nation", "nationality"}},
	{types.KeyDateOfBirth, []string{"date of birth", "birth date", "birthdate", "dob", "birthday"}},
	{types.KeyLinkedIn, []string{"linkedin", "linked in"}},
	{types.KeyGitHub, []string{"github", "git hub"}},
	{types.KeyPortfolio, []string{"portfolio", "personal website", "personal site", "website url", "web site"}},
	{types.KeyExperience, []string{"experience", "work experience", "work history", "employment history", "years of experience", "background"}},
	{types.KeyEducation, []string{"education", "degree", "university", "college", "school", "qualification"}},
	{types.KeySkills, []string{"skills", "skill set", "technologies", "tech stack", "competencies", "expertise"}},
	{types.KeySalary, []string{"salary", "compensation", "expected salary", "pay", "rate", "salary expectation"}},
	{types.KeyAvailability, []string{"availability", "available", "start date", "notice period", "when can you start"}},
}

// relocationSynonyms identify the boolean relocation question.
var relocationSynonyms = []string{"relocate", "relocation", "willing to move", "open to relocation"}

// subjectiveKeywords flag open-ended questions that merit a generative answer
// even in conservative mode.
var subjectiveKeywords = []string{
	"why", "what", "how", "describe", "explain", "tell us", "interest",
	"motivation", "passion", "goal", "objective", "strength", "weakness",
	"challenge", "experience", "story", "example", "situation",
}

// Normalize lowercases text, strips non-alphanumeric runes to spaces, and
// collapses whitespace. All matching happens on normalized text.
func Normalize(text string) string {
	var b strings.Builder
	b.Grow(len(text))
	for _, r := range strings.ToLower(text) {
		if unicode.IsLetter(r) || unicode.IsDigit(r) {
			b.WriteRune(r)
		} else {
			b.WriteRune(' ')
		}
	}
	return strings.Join(strings.Fields(b.String()), " ")
}

// FieldText builds the normalized classification subject for a field from its
// label, placeholder, name, and id.
func FieldText(f types.FormField) string {
	return Normalize(strings.Join([]string{f.Label, f.Placeholder, f.Name, f.ID}, " "))
}

// Matches reports whether any synonym occurs within the normalized text.
func (c Category) Matches(normalized string) bool {
	return containsAny(normalized, c.Synonyms)
}

// IsRelocation reports whether the normalized text asks about relocation.
func IsRelocation(normalized string) bool {
	return containsAny(normalized, relocationSynonyms)
}

// IsSubjective reports whether the normalized text looks like an open-ended
// question.
func IsSubjective(normalized string) bool {
	return containsAny(normalized, subjectiveKeywords)
}

func containsAny(normalized string, synonyms []string) bool {
	for _, syn := range synonyms {
		if strings.Contains(normalized, Normalize(syn)) {
			return true
		}
	}
	return false
}
