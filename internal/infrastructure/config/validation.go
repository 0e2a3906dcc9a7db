package config

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/go-playground/validator/v10"
)

// Variant names double as rule file names under game.rules_dir
var variantPattern = regexp.MustCompile(`^[A-Za-z0-9][A-Za-z0-9_-]*$`)

// Validator checks config structs against their validate tags
type Validator struct {
	validate *validator.Validate
}

// NewValidator registers the config-specific tags:
// "variant" for rule variant names and "ascending" for histogram buckets.
func NewValidator() *Validator {
	v := validator.New()
	_ = v.RegisterValidation("variant", func(fl validator.FieldLevel) bool {
		return variantPattern.MatchString(fl.Field().String())
	})
	_ = v.RegisterValidation("ascending", func(fl validator.FieldLevel) bool {
		buckets, ok := fl.Field().Interface().([]float64)
		if !ok {
			return false
		}
		for i := 1; i < len(buckets); i++ {
			if buckets[i] <= buckets[i-1] {
				return false
			}
		}
		return true
	})
	return &Validator{validate: v}
}

func (v *Validator) Validate(i interface{}) error {
	if err := v.validate.Struct(i); err != nil {
		return v.formatValidationError(err)
	}
	return nil
}

// formatValidationError lists each failing setting by its path, e.g. "Config.Game.DefaultVariant"
func (v *Validator) formatValidationError(err error) error {
	validationErrs, ok := err.(validator.ValidationErrors)
	if !ok {
		return err
	}
	messages := make([]string, 0, len(validationErrs))
	for _, e := range validationErrs {
		messages = append(messages, fmt.Sprintf("%s fails %q (value: '%v')", e.Namespace(), e.Tag(), e.Value()))
	}
	return fmt.Errorf("validation failed:\n  %s", strings.Join(messages, "\n  "))
}

// ValidateConfig validates the daemon configuration after defaults are applied
func ValidateConfig(cfg *Config) error {
	return NewValidator().Validate(cfg)
}
