package config

import (
	"fmt"

	barerrors "github.com/alexisbeaulieu97/barbar/pkg/errors"
)

// ValidateButton performs structural validation on a single button definition.
func ValidateButton(def ButtonDefinition) error {
	v := validatorInstance()
	if err := v.Struct(def); err != nil {
		return convertValidationError(fmt.Sprintf("buttons[%s]", def.Key), err)
	}
	return nil
}

// ValidateButtons validates every definition and rejects duplicate keys.
func ValidateButtons(defs []ButtonDefinition) error {
	seen := make(map[string]struct{}, len(defs))
	for _, def := range defs {
		if _, dup := seen[def.Key]; dup {
			return barerrors.NewValidationError(fieldForButton(def.Key, "key"), fmt.Sprintf("duplicate button key %q", def.Key), nil)
		}
		seen[def.Key] = struct{}{}

		if err := ValidateButton(def); err != nil {
			return err
		}
	}
	return nil
}

// ValidateSettings performs structural validation on runtime settings.
func ValidateSettings(s *Settings) error {
	if s == nil {
		return barerrors.NewValidationError("settings", "settings are nil", nil)
	}

	if err := validatorInstance().Struct(s); err != nil {
		return convertValidationError("settings", err)
	}
	return nil
}
