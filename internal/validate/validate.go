// Package validate provides input validation utilities for Tally components,
// ensuring configuration and record data integrity before it reaches the
// review pipeline or the stub endpoint.
//
// This file implements common validation patterns used across config packages
// and the record schema to ensure consistency and reduce duplication. All
// functions leverage the go-playground/validator library for standardized
// validation behavior.
//
// VALIDATION UTILITIES:
//   - Field validation: Generic validator-tag checking for single values
//   - Port validation: Standard port range checking (1-65535)
//   - String validation: Required field and non-empty string checking
//   - Timeout validation: Positive duration validation for timeouts
//
// These utilities replace manual validation code scattered across packages
// with centralized, consistent validation using the validator library's
// built-in tags and error handling.
package validate

import (
	"fmt"
	"time"

	"github.com/go-playground/validator/v10"
)

// fieldValidator is the shared validator instance for single-value checks.
// validator.Validate is safe for concurrent use and caches struct metadata,
// so a single package-level instance is the recommended usage pattern.
var fieldValidator = validator.New()

// ValidateField validates a single value against a validator tag expression.
// Provides the low-level primitive that the named helpers in this package
// build on, and is also used directly by the record schema for tags like
// "iso4217" currency checking.
func ValidateField(value any, tag string) error {
	if err := fieldValidator.Var(value, tag); err != nil {
		return fmt.Errorf("validation failed for tag %q: %w", tag, err)
	}
	return nil
}

// ValidatePortRange validates that a port number is within the valid range (1-65535).
// Uses the validator library for consistent error handling and messaging.
//
// Rejects port 0 (OS-assigned) since clients need a predictable endpoint
// address to submit against.
func ValidatePortRange(port int) error {
	return ValidateField(port, "required,min=1,max=65535")
}

// ValidateRequiredString validates that a string field is not empty.
// Uses the validator library for consistent error handling across config validation.
//
// Prevents runtime failures from missing essential configuration parameters
// like endpoint addresses and batch file paths.
func ValidateRequiredString(value, fieldName string) error {
	if err := ValidateField(value, "required"); err != nil {
		return fmt.Errorf("%s cannot be empty", fieldName)
	}
	return nil
}

// ValidatePositiveTimeout validates that a timeout duration is positive (> 0).
// Ensures timeout configurations don't cause infinite waits or immediate
// failures on the submission round trip.
func ValidatePositiveTimeout(timeout time.Duration, name string) error {
	if timeout <= 0 {
		return fmt.Errorf("%s must be positive", name)
	}
	return nil
}
