// Package input turns raw front-end text into the typed values the stores
// accept. Nothing malformed gets past it.
package input

import (
	"errors"
	"fmt"
	"regexp"

	"github.com/dmitrijs2005/creationhub/internal/common"
	"github.com/dmitrijs2005/creationhub/internal/identity"
	"github.com/dmitrijs2005/creationhub/internal/models"
	"github.com/go-playground/validator/v10"
)

var emailShape = regexp.MustCompile(`^[a-z0-9]+([_.-][a-z0-9]+)*@[a-z0-9-]+[.][a-z]{2,4}$`)

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	mustRegister(v, "email_shape", func(fl validator.FieldLevel) bool {
		return emailShape.MatchString(fl.Field().String())
	})
	return v
}

// mustRegister panics when the validation cannot be registered, so a bad
// tag fails at package init rather than on the first form.
func mustRegister(v *validator.Validate, tag string, fn validator.Func) {
	if err := v.RegisterValidation(tag, fn); err != nil {
		panic(fmt.Errorf("register validation %q: %w", tag, err))
	}
}

// SignUpForm is the raw signup input of a credentialed user.
type SignUpForm struct {
	Username string      `validate:"required,min=3,max=15"`
	Password string      `validate:"required,min=6,max=25"`
	Email    string      `validate:"required,max=320,email_shape"`
	Role     models.Role `validate:"oneof=regular anonymous admin"`
}

// Validate reports every problem with the form. Each error wraps the
// matching common sentinel.
func (f SignUpForm) Validate() error {
	return validationError(validate.Struct(f))
}

func (f SignUpForm) Registration() identity.Registration {
	return identity.Registration{Username: f.Username, Email: f.Email, Password: f.Password, Role: f.Role}
}

// TrialForm is the raw signup input of a Trial user.
type TrialForm struct {
	Username string `validate:"required,min=3,max=15"`
}

func (f TrialForm) Validate() error {
	return validationError(validate.Struct(f))
}

func validationError(err error) error {
	if err == nil {
		return nil
	}

	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return err
	}

	var errs []error
	for _, fe := range verrs {
		switch fe.Field() {
		case "Username":
			errs = append(errs, fmt.Errorf("username must be between 3-15 characters long: %w", common.ErrInvalidUsername))
		case "Password":
			errs = append(errs, fmt.Errorf("password must be between 6-25 characters: %w", common.ErrWeakPassword))
		case "Email":
			if fe.ActualTag() == "max" {
				errs = append(errs, fmt.Errorf("email too long: %w", common.ErrInvalidEmail))
			} else {
				errs = append(errs, fmt.Errorf("email not in correct format: %w", common.ErrInvalidEmail))
			}
		default:
			errs = append(errs, fmt.Errorf("field %s is not valid", fe.Field()))
		}
	}
	return errors.Join(errs...)
}
