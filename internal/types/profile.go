// Package types provides type definitions for structured data used throughout the formfill-agent system.
//
//nolint:revive // types is a standard Go package name pattern
package types

import "strings"

// Category keys of the fixed profile schema. Fields discovered on a page are
// classified into one of these keys; the same keys address values on Profile.
const (
	KeyName         = "name"
	KeyEmail        = "email"
	KeyPhone        = "phone"
	KeyAddress      = "address"
	KeyCity         = "city"
	KeyState        = "state"
	KeyZipCode      = "zipCode"
	KeyCountry      = "country"
	KeyDateOfBirth  = "dateOfBirth"
	KeyLinkedIn     = "linkedin"
	KeyGitHub       = "github"
	KeyPortfolio    = "portfolio"
	KeyExperience   = "experience"
	KeyEducation    = "education"
	KeySkills       = "skills"
	KeySalary       = "salary"
	KeyAvailability = "availability"
	KeyRelocation   = "relocation"
)

// Profile holds the user's answers for the fixed category schema plus any
// extra keys accepted from learned suggestions. It is owned by the settings
// store; the engine works on a read-mostly snapshot taken at pass start.
type Profile struct {
	Name         string   `json:"name,omitempty"`
	Email        string   `json:"email,omitempty" validate:"omitempty,email"`
	Phone        string   `json:"phone,omitempty"`
	Address      string   `json:"address,omitempty"`
	City         string   `json:"city,omitempty"`
	State        string   `json:"state,omitempty"`
	ZipCode      string   `json:"zipCode,omitempty"`
	Country      string   `json:"country,omitempty"`
	DateOfBirth  string   `json:"dateOfBirth,omitempty"`
	LinkedIn     string   `json:"linkedin,omitempty" validate:"omitempty,url"`
	GitHub       string   `json:"github,omitempty" validate:"omitempty,url"`
	Portfolio    string   `json:"portfolio,omitempty" validate:"omitempty,url"`
	Experience   string   `json:"experience,omitempty"`
	Education    string   `json:"education,omitempty"`
	Skills       []string `json:"skills,omitempty"`
	Salary       string   `json:"salary,omitempty"`
	Availability string   `json:"availability,omitempty"`
	Relocation   *bool    `json:"relocation,omitempty"`

	// Extra holds keys outside the fixed schema, typically promoted from
	// accepted learned suggestions.
	Extra map[string]string `json:"extra,omitempty"`
}

// Value returns the profile's answer for a category key as a string, or empty
// if the key has no value. Sequence values join with ", "; the relocation
// boolean renders as Yes/No.
func (p *Profile) Value(key string) string {
	if p == nil {
		return ""
	}
	switch key {
	case KeyName:
		return p.Name
	case KeyEmail:
		return p.Email
	case KeyPhone:
		return p.Phone
	case KeyAddress:
		return p.Address
	case KeyCity:
		return p.City
	case KeyState:
		return p.State
	case KeyZipCode:
		return p.ZipCode
	case KeyCountry:
		return p.Country
	case KeyDateOfBirth:
		return p.DateOfBirth
	case KeyLinkedIn:
		return p.LinkedIn
	case KeyGitHub:
		return p.GitHub
	case KeyPortfolio:
		return p.Portfolio
	case KeyExperience:
		return p.Experience
	case KeyEducation:
		return p.Education
	case KeySkills:
		return strings.Join(p.Skills, ", ")
	case KeySalary:
		return p.Salary
	case KeyAvailability:
		return p.Availability
	case KeyRelocation:
		if p.Relocation == nil {
			return ""
		}
		if *p.Relocation {
			return "Yes"
		}
		return "No"
	}
	return p.Extra[key]
}

// Has reports whether the profile already carries a non-empty value for key.
func (p *Profile) Has(key string) bool {
	return p.Value(key) != ""
}

// SetValue writes a string value for a category key. Skills are split on
// commas; relocation parses yes/no and true/false. Unknown keys land in Extra.
func (p *Profile) SetValue(key, value string) {
	switch key {
	case KeyName:
		p.Name = value
	case KeyEmail:
		p.Email = value
	case KeyPhone:
		p.Phone = value
	case KeyAddress:
		p.Address = value
	case KeyCity:
		p.City = value
	case KeyState:
		p.State = value
	case KeyZipCode:
		p.ZipCode = value
	case KeyCountry:
		p.Country = value
	case KeyDateOfBirth:
		p.DateOfBirth = value
	case KeyLinkedIn:
		p.LinkedIn = value
	case KeyGitHub:
		p.GitHub = value
	case KeyPortfolio:
		p.Portfolio = value
	case KeyExperience:
		p.Experience = value
	case KeyEducation:
		p.Education = value
	case KeySkills:
		p.Skills = splitList(value)
	case KeySalary:
		p.Salary = value
	case KeyAvailability:
		p.Availability = value
	case KeyRelocation:
		switch strings.ToLower(strings.TrimSpace(value)) {
		case "yes", "true", "y":
			v := true
			p.Relocation = &v
		case "no", "false", "n":
			v := false
			p.Relocation = &v
		default:
			p.Relocation = nil
		}
	default:
		if p.Extra == nil {
			p.Extra = make(map[string]string)
		}
		p.Extra[key] = value
	}
}

// Clone returns a deep copy, so a pass can snapshot the profile without
// racing later store updates.
func (p *Profile) Clone() *Profile {
	if p == nil {
		return &Profile{}
	}
	out := *p
	if p.Skills != nil {
		out.Skills = append([]string(nil), p.Skills...)
	}
	if p.Relocation != nil {
		v := *p.Relocation
		out.Relocation = &v
	}
	if p.Extra != nil {
		out.Extra = make(map[string]string, len(p.Extra))
		for k, v := range p.Extra {
			out.Extra[k] = v
		}
	}
	return &out
}

func splitList(value string) []string {
	parts := strings.Split(value, ",")
	out := make([]string, 0, len(parts))
	for _, part := range parts {
		part = strings.TrimSpace(part)
		if part != "" {
			out = append(out, part)
		}
	}
	return out
}
