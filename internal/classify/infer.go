package classify

import (
	"regexp"

	"github.com/jonathan/formfill-agent/internal/types"
)

// labelPattern maps a compiled label regex to the category it implies. Used
// only for learned-suggestion inference after a fill, not for direct mapping.
type labelPattern struct {
	re  *regexp.Regexp
	key string
}

var labelPatterns = []labelPattern{
	{regexp.MustCompile(`(?i)\b(full\s*)?name\b`), types.KeyName},
	{regexp.MustCompile(`(?i)e-?mail`), types.KeyEmail},
	{regexp.MustCompile(`(?i)phone|mobile|telephone`), types.KeyPhone},
	{regexp.MustCompile(`(?i)street|address`), types.KeyAddress},
	{regexp.MustCompile(`(?i)\bcity\b|\btown\b`), types.KeyCity},
	{regexp.MustCompile(`(?i)\bstate\b|province`), types.KeyState},
	{regexp.MustCompile(`(?i)zip|postal`), types.KeyZipCode},
	{regexp.MustCompile(`(?i)country`), types.KeyCountry},
	{regexp.MustCompile(`(?i)birth|\bdob\b`), types.KeyDateOfBirth},
	{regexp.MustCompile(`(?i)linked\s*in`), types.KeyLinkedIn},
	{regexp.MustCompile(`(?i)git\s*hub`), types.KeyGitHub},
	{regexp.MustCompile(`(?i)portfolio|website`), types.KeyPortfolio},
	{regexp.MustCompile(`(?i)experience|work history`), types.KeyExperience},
	{regexp.MustCompile(`(?i)education|degree|university`), types.KeyEducation},
	{regexp.MustCompile(`(?i)skill`), types.KeySkills},
	{regexp.MustCompile(`(?i)salary|compensation`), types.KeySalary},
	{regexp.MustCompile(`(?i)availab|start date|notice period`), types.KeyAvailability},
}

// InferCategory guesses a profile category from a field label. Returns the
// category key and true on a match, or "" and false when no pattern applies.
func InferCategory(label string) (string, bool) {
	for _, p := range labelPatterns {
		if p.re.MatchString(label) {
			return p.key, true
		}
	}
	return "", false
}
