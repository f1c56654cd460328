// Package validator wraps go-playground/validator with the project's custom
// tags and maps failures to the domain validation error.
package validator

import (
	"fmt"
	"reflect"
	"regexp"
	"strings"

	"github.com/gvr1220/user-management/internal/domain/entity"
	domainerrors "github.com/gvr1220/user-management/internal/domain/errors"
	"github.com/gvr1220/user-management/internal/errors"

	"github.com/go-playground/validator/v10"
)

var nicknamePattern = regexp.MustCompile(`^[A-Za-z0-9_-]{3,50}$`)

// Validator validates DTOs. It satisfies echo.Validator.
type Validator struct {
	validate *validator.Validate
}

// New creates a Validator with the "nickname" and "role" tags registered.
func New() *Validator {
	v := validator.New(validator.WithRequiredStructEnabled())

	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		switch name {
		case "-":
			return ""
		case "":
			return fld.Name
		default:
			return name
		}
	})

	// Registration only fails for empty tags or nil funcs.
	_ = v.RegisterValidation("nickname", func(fl validator.FieldLevel) bool {
		return nicknamePattern.MatchString(fl.Field().String())
	})
	_ = v.RegisterValidation("role", func(fl validator.FieldLevel) bool {
		_, ok := entity.ParseRole(fl.Field().String())

		return ok
	})

	return &Validator{validate: v}
}

// Validate validates a struct and returns ErrValidationFailed with field details.
func (v *Validator) Validate(i any) error {
	if err := v.validate.Struct(i); err != nil {
		return domainerrors.ErrValidationFailed.WithDetails(describe("", err))
	}

	return nil
}

// Var validates a single value against tag, naming it field in the error details.
func (v *Validator) Var(field string, value any, tag string) error {
	if err := v.validate.Var(value, tag); err != nil {
		return domainerrors.ErrValidationFailed.WithDetails(describe(field, err))
	}

	return nil
}

func describe(field string, err error) string {
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return err.Error()
	}

	msgs := make([]string, 0, len(verrs))
	for _, fe := range verrs {
		name := fe.Field()
		if field != "" {
			name = field
		}
		msgs = append(msgs, fmt.Sprintf("%s failed on '%s'", name, fe.Tag()))
	}

	return strings.Join(msgs, "; ")
}
