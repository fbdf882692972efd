package dto

import (
	"errors"
	"strings"

	"github.com/go-playground/validator/v10"

	"github.com/smartlearn/platform-api/internal/domain"
)

var validate = validator.New(validator.WithRequiredStructEnabled())

// check runs struct tag validation and maps the first failure to a domain
// error so every request shape fails the same way at the boundary.
func check(v any) error {
	err := validate.Struct(v)
	if err == nil {
		return nil
	}

	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) || len(verrs) == 0 {
		return domain.ErrInternal(err)
	}

	fe := verrs[0]
	field := jsonFieldName(fe)

	switch fe.Tag() {
	case "required":
		return domain.ErrMissingField(field)
	case "min":
		if fe.Kind().String() == "string" {
			return domain.ErrWeakPassword("min length " + fe.Param())
		}
		return domain.ErrInvalidField(field, "too short")
	case "email":
		return domain.ErrInvalidField(field, "invalid format")
	default:
		return domain.ErrInvalidField(field, "failed "+fe.Tag())
	}
}

func jsonFieldName(fe validator.FieldError) string {
	// validator reports Go field names; lower-case the first rune to match
	// the lowerCamel JSON the frontend sends.
	name := fe.Field()
	if name == "" {
		return "field"
	}
	return strings.ToLower(name[:1]) + name[1:]
}

func (r *SignupRequest) Validate() error {
	r.Username = strings.TrimSpace(r.Username)
	return check(r)
}

func (r *LoginRequest) Validate() error {
	r.Username = strings.TrimSpace(r.Username)
	return check(r)
}

func (r *RequestResetRequest) Validate() error {
	r.Email = strings.TrimSpace(strings.ToLower(r.Email))
	return check(r)
}

func (r *ResetPasswordRequest) Validate() error {
	r.Email = strings.TrimSpace(strings.ToLower(r.Email))
	r.Code = strings.TrimSpace(r.Code)
	return check(r)
}

func (r *ChatRequest) Validate() error {
	return check(r)
}

func (r *ContactRequest) Validate() error {
	r.Name = strings.TrimSpace(r.Name)
	r.Email = strings.TrimSpace(strings.ToLower(r.Email))
	return check(r)
}
