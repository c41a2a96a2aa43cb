package validation

import (
	"encoding/json"
	"errors"
	"reflect"
	"regexp"
	"strings"

	"github.com/go-playground/validator/v10"
)

var validate *validator.Validate

// folderPattern accepts slash separated segments of letters, digits, '-' and '_'.
var folderPattern = regexp.MustCompile(`^[A-Za-z0-9_-]+(/[A-Za-z0-9_-]+)*$`)

func init() {
	validate = validator.New(validator.WithRequiredStructEnabled())

	// Tell the validator to use the JSON tag as the “field name”
	validate.RegisterTagNameFunc(func(fld reflect.StructField) string {
		// Grab the value of `json:"foo,omitempty"`
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "" || name == "-" {
			// fallback to the Go field name or skip
			return fld.Name
		}
		return name
	})

	_ = validate.RegisterValidation("folder", func(fl validator.FieldLevel) bool {
		return folderPattern.MatchString(fl.Field().String())
	})
}

func ValidateStruct(s interface{}) error {
	return validate.Struct(s)
}

// ValidateVar checks a single value against a tag built at runtime.
func ValidateVar(field interface{}, tag string) error {
	return validate.Var(field, tag)
}

// FieldErrors maps each failing field to the tag that rejected it.
func FieldErrors(validationErrs error) map[string]string {
	var verrs validator.ValidationErrors
	if !errors.As(validationErrs, &verrs) {
		return nil
	}
	errsMap := make(map[string]string, len(verrs))
	for _, fieldErr := range verrs {
		errsMap[fieldErr.Field()] = fieldErr.Tag()
	}
	return errsMap
}

func ErrorsToJson(validationErrs error) (string, error) {
	errsJson, err := json.Marshal(FieldErrors(validationErrs))
	if err != nil {
		return "", err
	}
	return string(errsJson), nil
}
