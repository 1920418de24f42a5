package validators

import (
	"time"

	"github.com/go-playground/validator/v10"
)

// IsIsoDate validates a "YYYY-MM-DD" calendar day.
func IsIsoDate(fl validator.FieldLevel) bool {
	_, err := time.Parse("2006-01-02", fl.Field().String())
	return err == nil
}

// IsTimeOfDay validates "HH:MM" or "HH:MM:SS". Empty strings are accepted;
// the required-or-not decision belongs to the field's other tags.
func IsTimeOfDay(fl validator.FieldLevel) bool {
	s := fl.Field().String()
	if s == "" {
		return true
	}

	for _, layout := range []string{"15:04", "15:04:05"} {
		if _, err := time.Parse(layout, s); err == nil {
			return true
		}
	}
	return false
}
