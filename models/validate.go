package models

import (
	"github.com/go-playground/validator/v10"
)

var validate = validator.New(validator.WithRequiredStructEnabled())

// Validate checks a domain record against its struct tags. Records that
// violate an invariant are rejected, not clamped.
func Validate(v any) error {
	return validate.Struct(v)
}
