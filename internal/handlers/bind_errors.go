package handlers

import (
	"errors"
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
)

// bindErrorMessage turns a Gin binding error into a client-facing message.
// Validator errors are flattened to field-level messages; everything else
// (malformed JSON, type mismatches) gets a generic invalid-body message.
func bindErrorMessage(err error) string {
	var verrs validator.ValidationErrors
	if errors.As(err, &verrs) {
		parts := make([]string, 0, len(verrs))
		for _, fe := range verrs {
			switch fe.Tag() {
			case "required":
				parts = append(parts, fmt.Sprintf("%s is required", fe.Field()))
			default:
				parts = append(parts, fmt.Sprintf("%s is invalid", fe.Field()))
			}
		}
		return strings.Join(parts, "; ")
	}
	if err != nil && strings.Contains(err.Error(), "must be a string") {
		return err.Error()
	}
	return "Invalid request body"
}
