package validator

import (
	"fmt"
	"reflect"
	"regexp"
	"unicode"

	"github.com/go-playground/validator/v10"
	"github.com/shopspring/decimal"
)

// Message formats shared between ValidationMessage and the handler tests.
const (
	ErrRequired    = "is required"
	ErrEmail       = "must be a valid email address"
	ErrMinLength   = "must be at least %s characters long"
	ErrMaxLength   = "must be at most %s characters long"
	ErrMinValue    = "must be at least %s"
	ErrMaxValue    = "must be at most %s"
	ErrGreaterThan = "must be greater than %s"
	ErrPassword    = "must be 8 to 25 characters long and include at least one uppercase letter, one lowercase letter, " +
		"one number, and one special character (!@#$%^&*)"
	ErrInvalid = "is invalid"
)

var hasSpecialRgx = regexp.MustCompile(`[!@#$%^&*]`)

func NewValidator() *validator.Validate {
	validator := validator.New(validator.WithRequiredStructEnabled())

	validator.RegisterValidation("password", validatePassword)

	// Lets numeric tags (required, gt, ...) apply to decimal money fields.
	validator.RegisterCustomTypeFunc(decimalToFloat, decimal.Decimal{})

	return validator
}

func decimalToFloat(field reflect.Value) any {
	if d, ok := field.Interface().(decimal.Decimal); ok {
		f, _ := d.Float64()
		return f
	}

	return nil
}

func validatePassword(fl validator.FieldLevel) bool {
	password := fl.Field().String()

	if len(password) < 8 || len(password) > 25 {
		return false
	}

	containsUpper, containsLower, containsDigit, containsSpecial := false, false, false, false

	for _, ch := range password {
		switch {
		case unicode.IsUpper(ch):
			containsUpper = true
		case unicode.IsLower(ch):
			containsLower = true
		case unicode.IsDigit(ch):
			containsDigit = true
		case hasSpecialRgx.MatchString(string(ch)):
			containsSpecial = true
		}
	}

	return containsUpper && containsLower && containsDigit && containsSpecial
}

// ValidationMessage converts validator errors into readable messages
func ValidationMessage(err validator.FieldError) string {
	switch err.Tag() {
	case "required":
		return ErrRequired
	case "email":
		return ErrEmail
	case "min":
		if err.Kind() == reflect.String {
			return fmt.Sprintf(ErrMinLength, err.Param())
		}
		return fmt.Sprintf(ErrMinValue, err.Param())
	case "max":
		if err.Kind() == reflect.String {
			return fmt.Sprintf(ErrMaxLength, err.Param())
		}
		return fmt.Sprintf(ErrMaxValue, err.Param())
	case "gt":
		return fmt.Sprintf(ErrGreaterThan, err.Param())
	case "password":
		return ErrPassword
	default:
		return ErrInvalid
	}
}
