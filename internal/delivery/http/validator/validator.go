// Package validator adapts go-playground/validator to echo's Validator
// interface so request DTOs can declare their rules in struct tags.
package validator

import (
	"net/http"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
)

// EchoValidator wraps a shared validator instance.
type EchoValidator struct {
	validate *validator.Validate
}

// New builds the validator used by the echo server.
func New() *EchoValidator {
	return &EchoValidator{validate: validator.New()}
}

// Validate checks a bound request struct against its tags.
func (v *EchoValidator) Validate(i any) error {
	if err := v.validate.Struct(i); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	return nil
}
