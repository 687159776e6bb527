package dto

import (
	"fmt"
	"time"

	"github.com/go-playground/validator/v10"
)

// Wire layouts
const (
	DateLayout  = "2006-01-02"
	ClockLayout = "15:04"
)

// RegisterValidators installs the "date" and "hhmm" tags on v.
func RegisterValidators(v *validator.Validate) error {
	if err := v.RegisterValidation("date", layoutRule(DateLayout)); err != nil {
		return fmt.Errorf("register date validator: %w", err)
	}
	if err := v.RegisterValidation("hhmm", layoutRule(ClockLayout)); err != nil {
		return fmt.Errorf("register hhmm validator: %w", err)
	}
	return nil
}

func layoutRule(layout string) validator.Func {
	return func(fl validator.FieldLevel) bool {
		s := fl.Field().String()
		if len(s) != len(layout) {
			return false
		}
		_, err := time.Parse(layout, s)
		return err == nil
	}
}
