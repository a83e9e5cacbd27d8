// Package validation validates the configuration structs the engine is
// driven by: struct-tag validation for the declarative rules plus a
// fluent ConfigValidator for cross-field rules tags cannot express.
package validation

import (
	"fmt"
	"regexp"

	"github.com/go-playground/validator/v10"
)

var (
	// validate is a singleton validator instance
	validate *validator.Validate

	MaxGraphNameLength = 128
	MaxUsernameLength  = 128

	graphNamePattern = regexp.MustCompile(`^[a-zA-Z0-9_][a-zA-Z0-9_\-.]*$`)
)

func init() {
	validate = validator.New()
}

// ValidateStruct runs struct-tag validation on s and reformats any
// failure into a readable error.
func ValidateStruct(s any) error {
	if err := validate.Struct(s); err != nil {
		return formatValidationError(err)
	}
	return nil
}

// ValidateGraphName validates a graph name against length and character
// rules.
func ValidateGraphName(name string) error {
	if name == "" {
		return fmt.Errorf("graph name cannot be empty")
	}
	if len(name) > MaxGraphNameLength {
		return fmt.Errorf("graph name '%s' exceeds maximum length of %d characters", name, MaxGraphNameLength)
	}
	if !graphNamePattern.MatchString(name) {
		return fmt.Errorf("graph name '%s' contains invalid characters (must start with alphanumeric or underscore)", name)
	}
	return nil
}

// ValidateUsername validates a principal name. Only emptiness and length
// are checked, so anonymous identities ("anonymous/<uuid>") pass.
func ValidateUsername(name string) error {
	if name == "" {
		return fmt.Errorf("username cannot be empty")
	}
	if len(name) > MaxUsernameLength {
		return fmt.Errorf("username '%s' exceeds maximum length of %d characters", name, MaxUsernameLength)
	}
	return nil
}

// formatValidationError converts validator errors to a more user-friendly format
func formatValidationError(err error) error {
	if err == nil {
		return nil
	}

	validationErrs, ok := err.(validator.ValidationErrors)
	if !ok {
		return err
	}

	// Return the first validation error in a user-friendly format
	for _, e := range validationErrs {
		field := e.Field()
		tag := e.Tag()
		param := e.Param()

		switch tag {
		case "required":
			return fmt.Errorf("%s: field is required", field)
		case "min":
			return fmt.Errorf("%s: must be at least %s", field, param)
		case "max":
			return fmt.Errorf("%s: must not exceed %s", field, param)
		default:
			return fmt.Errorf("%s: validation failed (%s)", field, tag)
		}
	}

	return err
}
