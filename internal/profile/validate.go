package profile

import (
	"fmt"
	"regexp"

	"github.com/go-playground/validator/v10"
)

// Phone numbers must be a plus, a country code and exactly ten digits.
var phonePattern = regexp.MustCompile(`^\+[1-9][0-9]{0,2}[0-9]{10}$`)

// ValidationError blocks the specific action it applies to and is surfaced
// inline; it never aborts unrelated fields.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid %s: %s", e.Field, e.Reason)
}

func newValidator() *validator.Validate {
	v := validator.New()
	_ = v.RegisterValidation("intlphone", func(fl validator.FieldLevel) bool {
		return phonePattern.MatchString(fl.Field().String())
	})
	return v
}

func (s *Store) validateUpdate(u Update) error {
	if err := s.validate.Struct(u); err != nil {
		errs, ok := err.(validator.ValidationErrors)
		if !ok || len(errs) == 0 {
			return &ValidationError{Field: "profile", Reason: err.Error()}
		}
		switch errs[0].Field() {
		case "Phone":
			return &ValidationError{Field: "phone", Reason: "must match +<countrycode> followed by 10 digits"}
		default:
			return &ValidationError{Field: errs[0].Field(), Reason: "invalid value"}
		}
	}
	return nil
}

type loginInput struct {
	Email string `validate:"required,email"`
}

func (s *Store) validateEmail(email string) error {
	if email == "" {
		return &ValidationError{Field: "email", Reason: "must not be empty"}
	}
	if err := s.validate.Struct(loginInput{Email: email}); err != nil {
		return &ValidationError{Field: "email", Reason: "must be a valid email address"}
	}
	return nil
}
