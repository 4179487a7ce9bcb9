package http

import (
	"errors"
	"fmt"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"

	commonerrors "github.com/AlibekovAA/app-registry/internal/common/errors"
)

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("param"), ",", 2)[0]
		if name == "" || name == "-" {
			return fld.Name
		}
		return name
	})
	return v
}

// Validate checks request structs tagged with `param` and `validate`. A
// failing required rule becomes a MissingParameter error naming the field.
func Validate(req any) error {
	err := validate.Struct(req)
	if err == nil {
		return nil
	}

	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) || len(verrs) == 0 {
		return commonerrors.ErrInvalidParameter.WithCause(err)
	}

	fe := verrs[0]
	if fe.Tag() == "required" {
		return commonerrors.MissingParameter(fe.Field())
	}
	return commonerrors.ErrInvalidParameter.WithCause(fmt.Errorf("%s failed %q", fe.Field(), fe.Tag()))
}
