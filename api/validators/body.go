package validators

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"reflect"
	"sort"
	"strings"

	pkgerrors "github.com/cartwheelhq/shopcarts-backend/pkg/errors"
	"github.com/go-playground/validator/v10"
)

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New()
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		tag := strings.SplitN(f.Tag.Get("json"), ",", 2)[0]
		if tag == "" {
			return f.Name
		}
		return tag
	})
	return v
}

// DecodeJSONBody decodes the request body into dest and validates it. dest
// may point at a struct or a slice of structs; slice elements are validated
// one by one.
func DecodeJSONBody(r *http.Request, dest any) error {
	defer func() {
		io.Copy(io.Discard, r.Body)
	}()
	decoder := json.NewDecoder(r.Body)
	decoder.DisallowUnknownFields()
	if err := decoder.Decode(dest); err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeValidation, err, fmt.Sprintf("invalid request body: %v", err))
	}
	return validateValue(dest)
}

func validateValue(dest any) error {
	value := reflect.ValueOf(dest)
	for value.Kind() == reflect.Pointer {
		value = value.Elem()
	}

	if value.Kind() == reflect.Slice {
		for i := 0; i < value.Len(); i++ {
			if err := validate.Struct(value.Index(i).Interface()); err != nil {
				return formatValidationErrors(err, fmt.Sprintf("item %d: ", i))
			}
		}
		return nil
	}

	if err := validate.Struct(dest); err != nil {
		return formatValidationErrors(err, "")
	}
	return nil
}

func formatValidationErrors(err error, prefix string) *pkgerrors.Error {
	if errs, ok := err.(validator.ValidationErrors); ok {
		parts := make([]string, 0, len(errs))
		for _, fieldErr := range errs {
			parts = append(parts, fieldErr.Field()+" "+validationMessage(fieldErr))
		}
		sort.Strings(parts)
		return pkgerrors.New(pkgerrors.CodeValidation, prefix+strings.Join(parts, "; "))
	}
	return pkgerrors.Wrap(pkgerrors.CodeValidation, err, "validation failed")
}

func validationMessage(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "is required"
	case "gte":
		return "must be at least " + fe.Param()
	case "lte":
		return "must be at most " + fe.Param()
	case "min":
		return "is too short"
	case "max":
		return "is too long"
	default:
		return "is invalid"
	}
}
