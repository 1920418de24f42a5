package service

import (
	"testing"

	"github.com/go-playground/validator/v10"

	"ivchonotes/cmd/internal/utils/validators"
)

func newTestValidator(t *testing.T) *validator.Validate {
	t.Helper()

	validate := validator.New()
	if err := validate.RegisterValidation("isodate", validators.IsIsoDate); err != nil {
		t.Fatalf("register isodate: %v", err)
	}
	if err := validate.RegisterValidation("timeofday", validators.IsTimeOfDay); err != nil {
		t.Fatalf("register timeofday: %v", err)
	}
	return validate
}
