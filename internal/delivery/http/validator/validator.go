// Package validator adapts go-playground/validator to echo's Validator hook.
package validator

import (
	playground "github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
)

type echoValidator struct {
	validate *playground.Validate
}

// New returns an echo.Validator backed by struct tag validation.
func New() echo.Validator {
	return &echoValidator{validate: playground.New()}
}

// Validate runs struct tag validation on the bound request body. The caller
// decides how a failure maps onto its error taxonomy.
func (v *echoValidator) Validate(i any) error {
	return v.validate.Struct(i)
}
