package config

import (
	"errors"
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"

	barerrors "github.com/alexisbeaulieu97/barbar/pkg/errors"
)

// convertValidationError normalizes validator errors into barbar validation errors.
func convertValidationError(prefix string, err error) error {
	if err == nil {
		return nil
	}

	var ves validator.ValidationErrors
	if errors.As(err, &ves) && len(ves) > 0 {
		ve := ves[0]
		field := yamlishFieldName(ve)
		if prefix != "" {
			field = prefix + "." + field
		}
		msg := fmt.Sprintf("%s failed validation for tag '%s'", field, ve.Tag())
		return barerrors.NewValidationError(field, msg, err)
	}

	return barerrors.NewValidationError("config", err.Error(), err)
}

// yamlishFieldName drops the root struct name and lowercases the rest, so
// "ButtonDefinition.States[bogus]" reads "states[bogus]".
func yamlishFieldName(fe validator.FieldError) string {
	parts := strings.Split(fe.StructNamespace(), ".")
	if len(parts) > 1 {
		parts = parts[1:]
	}
	lowered := make([]string, 0, len(parts))
	for _, part := range parts {
		lowered = append(lowered, strings.ToLower(part))
	}
	return strings.Join(lowered, ".")
}

func fieldForButton(key, field string) string {
	return fmt.Sprintf("buttons[%s].%s", key, field)
}
