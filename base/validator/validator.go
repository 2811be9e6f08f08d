package validator

import (
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
)

// IsValidAccount reports whether an account identity is usable as a
// ledger key: non-empty and without surrounding whitespace.
func IsValidAccount(account string) bool {
	return account != "" && strings.TrimSpace(account) == account
}

func NewCustomValidator(v *validator.Validate) echo.Validator {
	return &CustomValidator{v}
}

type CustomValidator struct {
	validator *validator.Validate
}

func (v *CustomValidator) Validate(i interface{}) error {
	if err := v.validator.Struct(i); err != nil {
		return err
	}
	return nil
}
