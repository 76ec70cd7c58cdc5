package config

import (
	"regexp"
	"sync"

	"github.com/go-playground/validator/v10"
)

var (
	validatorOnce sync.Once
	validateInst  *validator.Validate

	buttonKeyPattern = regexp.MustCompile(`^[A-Za-z0-9][A-Za-z0-9_.-]*$`)
	sheetIDPattern   = regexp.MustCompile(`^[A-Za-z0-9_][A-Za-z0-9_. -]*$`)
	logLevels        = map[string]struct{}{"trace": {}, "debug": {}, "info": {}, "warn": {}, "error": {}, "disabled": {}}
)

// validatorInstance configures and returns the shared validator instance used across the config package.
func validatorInstance() *validator.Validate {
	validatorOnce.Do(func() {
		v := validator.New()

		_ = v.RegisterValidation("button_key", func(fl validator.FieldLevel) bool {
			return buttonKeyPattern.MatchString(fl.Field().String())
		})

		// Sheet identifiers are file names inside the asset directory and must
		// not climb out of it.
		_ = v.RegisterValidation("sheet_id", func(fl validator.FieldLevel) bool {
			return sheetIDPattern.MatchString(fl.Field().String())
		})

		_ = v.RegisterValidation("state_name", func(fl validator.FieldLevel) bool {
			return StateName(fl.Field().String()).Valid()
		})

		_ = v.RegisterValidation("log_level", func(fl validator.FieldLevel) bool {
			_, ok := logLevels[fl.Field().String()]
			return ok
		})

		validateInst = v
	})

	return validateInst
}

// GetValidator returns a configured validator instance for use outside the config package.
func GetValidator() *validator.Validate {
	return validatorInstance()
}
