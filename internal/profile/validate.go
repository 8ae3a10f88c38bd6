package profile

import (
	"errors"
	"fmt"

	"github.com/go-playground/validator/v10"

	"github.com/jonathan/formfill-agent/internal/types"
)

var validate = validator.New()

// Validate checks profile field formats (email, URLs) before the profile is
// stored. Empty fields always pass.
func Validate(p *types.Profile) error {
	err := validate.Struct(p)
	if err == nil {
		return nil
	}
	var invalid validator.ValidationErrors
	if errors.As(err, &invalid) && len(invalid) > 0 {
		first := invalid[0]
		return fmt.Errorf("invalid profile field %s: failed %s check", first.Field(), first.Tag())
	}
	return fmt.Errorf("profile validation failed: %w", err)
}
