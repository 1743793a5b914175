package models

import (
	"fmt"

	"github.com/wordingo/backend/apperr"
)

// Validation helpers shared by the per-entity Validate functions. Each
// Validate returns the accumulated field errors instead of failing on
// the first one, so handlers can surface them all at once.

func requireString(errs []apperr.FieldError, field, value string, maxLen int) []apperr.FieldError {
	if value == "" {
		return append(errs, apperr.FieldError{Field: field, Message: fmt.Sprintf("%s is required", field)})
	}
	if maxLen > 0 && len([]rune(value)) > maxLen {
		return append(errs, apperr.FieldError{Field: field, Message: fmt.Sprintf("%s cannot exceed %d characters", field, maxLen)})
	}
	return errs
}

func limitString(errs []apperr.FieldError, field, value string, maxLen int) []apperr.FieldError {
	if value != "" && len([]rune(value)) > maxLen {
		return append(errs, apperr.FieldError{Field: field, Message: fmt.Sprintf("%s cannot exceed %d characters", field, maxLen)})
	}
	return errs
}

func requireOneOf(errs []apperr.FieldError, field, value string, allowed []string) []apperr.FieldError {
	for _, a := range allowed {
		if value == a {
			return errs
		}
	}
	return append(errs, apperr.FieldError{Field: field, Message: fmt.Sprintf("%s must be one of %v", field, allowed)})
}

func requireRating(errs []apperr.FieldError, rating int) []apperr.FieldError {
	if rating < 1 {
		return append(errs, apperr.FieldError{Field: "rating", Message: "Rating must be at least 1"})
	}
	if rating > 5 {
		return append(errs, apperr.FieldError{Field: "rating", Message: "Rating cannot exceed 5"})
	}
	return errs
}

func isHTTPURL(s string) bool {
	return (len(s) > 7 && s[:7] == "http://") || (len(s) > 8 && s[:8] == "https://")
}

// asError wraps accumulated field errors into a ValidationFailed error,
// or returns nil when there are none.
func asError(errs []apperr.FieldError) error {
	if len(errs) == 0 {
		return nil
	}
	return apperr.Validation(errs)
}
