package handler

import (
	"errors"

	"github.com/go-playground/validator/v10"

	"prep_tracker/internal/feature/auth/usecase"
)

// registerBindMessage turns a binding failure on RegisterReq into a client-facing message.
func registerBindMessage(err error) string {
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) || len(verrs) == 0 {
		return "invalid request body"
	}
	switch verrs[0].Field() {
	case "Username":
		return usecase.ErrInvalidUsername.Error()
	case "Password":
		return usecase.ErrInvalidPassword.Error()
	default:
		return "invalid request body"
	}
}
