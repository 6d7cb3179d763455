package api

import (
	"errors"
	"reflect"
	"strings"

	"github.com/go-playground/locales/en"
	ut "github.com/go-playground/universal-translator"
	"github.com/go-playground/validator/v10"
	en_translations "github.com/go-playground/validator/v10/translations/en"
)

const notBlankTag = "notblank"

// newValidator returns a validator reporting fields by their JSON names, with
// English error messages.
func newValidator() (*validator.Validate, ut.Translator, error) {
	validate := validator.New(validator.WithRequiredStructEnabled())

	enLocale := en.New()
	uni := ut.New(enLocale, enLocale)
	translator, _ := uni.GetTranslator("en")
	if err := en_translations.RegisterDefaultTranslations(validate, translator); err != nil {
		return nil, nil, err
	}

	validate.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})

	if err := validate.RegisterValidation(notBlankTag, notBlank); err != nil {
		return nil, nil, err
	}

	err := validate.RegisterTranslation(notBlankTag, translator, func(ut ut.Translator) error {
		return ut.Add(notBlankTag, "{0} cannot be blank", true)
	}, func(ut ut.Translator, fe validator.FieldError) string {
		msg, _ := ut.T(notBlankTag, fe.Field())
		return msg
	})
	if err != nil {
		return nil, nil, err
	}

	return validate, translator, nil
}

func notBlank(fl validator.FieldLevel) bool {
	if str, ok := fl.Field().Interface().(string); ok {
		return strings.TrimSpace(str) != ""
	}
	return false
}

// fieldErrors returns a map of field name to error message for a failed
// validation, or nil if err is not a validation error.
func (s *Server) fieldErrors(err error) map[string]string {
	var validationErrs validator.ValidationErrors
	if !errors.As(err, &validationErrs) {
		return nil
	}

	fields := make(map[string]string, len(validationErrs))
	for _, fe := range validationErrs {
		fields[fe.Field()] = fe.Translate(s.translator)
	}
	return fields
}
