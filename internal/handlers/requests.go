package handlers

import (
	"errors"

	"github.com/go-playground/validator/v10"
)

// CustomValidator wraps the go-playground/validator library to implement
// Echo's Validator interface.
type CustomValidator struct {
	validator *validator.Validate
}

// NewValidator creates a new CustomValidator.
func NewValidator() *CustomValidator {
	return &CustomValidator{validator: validator.New()}
}

// Validate implements the echo.Validator interface.
func (cv *CustomValidator) Validate(i interface{}) error {
	return cv.validator.Struct(i)
}

// LoginRequest is the DTO for the sign-in form.
type LoginRequest struct {
	Email    string `form:"email" validate:"required,email"`
	Password string `form:"password" validate:"required"`
}

// RegisterRequest is the DTO for the registration form. The display name is
// optional; the user store derives one from the email when it is missing.
type RegisterRequest struct {
	Email           string `form:"email" validate:"required,email"`
	Name            string `form:"name" validate:"omitempty,max=100"`
	Password        string `form:"password" validate:"required,min=8"`
	PasswordConfirm string `form:"password_confirm" validate:"required,eqfield=Password"`
}

// validationMessage turns the first validation failure into the message the
// flash banner shows. Field-specific wording where it helps, generic
// otherwise.
func validationMessage(err error) string {
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) || len(verrs) == 0 {
		return "The submitted form is invalid."
	}

	fe := verrs[0]
	switch {
	case fe.Field() == "Email":
		return "A valid email address is required."
	case fe.Field() == "Password" && fe.Tag() == "min":
		return "Password must be at least 8 characters long."
	case fe.Field() == "Password":
		return "A password is required."
	case fe.Field() == "PasswordConfirm":
		return "Passwords do not match."
	case fe.Field() == "Name":
		return "The display name is too long."
	default:
		return "The submitted form is invalid."
	}
}
