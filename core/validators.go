package core

import (
	"reflect"
	"regexp"
	"strings"

	"github.com/go-playground/locales/es"
	ut "github.com/go-playground/universal-translator"
	"github.com/go-playground/validator/v10"
	es_translations "github.com/go-playground/validator/v10/translations/es"
	"github.com/pkg/errors"
)

var (
	// custom validation tags & texts
	notBlankTag  = "notblank"
	notBlankText = "este campo no puede estar vacío"

	dniTag   = "dni"
	dniText  = "el documento debe tener 8 dígitos"
	dniRegex = regexp.MustCompile(`^\d{8}$`)

	telefonoTag   = "telefono"
	telefonoText  = "el teléfono debe tener 9 dígitos"
	telefonoRegex = regexp.MustCompile(`^9\d{8}$`)

	requiredTag     = "required"
	requiredWithTag = "required_with"
	requiredText    = "este campo es obligatorio"
)

// NewValidator returns a validator with the Spanish translations and the custom tags registered.
func NewValidator() (*validator.Validate, ut.Translator) {
	locale := es.New()
	uni := ut.New(locale, locale)
	translator, _ := uni.GetTranslator("es")
	validate := validator.New()
	InitValidators(validate, translator)
	return validate, translator
}

// InitValidators instantiates the validator for use.
func InitValidators(validate *validator.Validate, translator ut.Translator) {
	_ = es_translations.RegisterDefaultTranslations(validate, translator)

	// Use JSON tag names for errors instead of Go struct names.
	validate.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})

	// register custom validators
	_ = validate.RegisterValidation(notBlankTag, notBlankValidation)
	RegisterCustomTranslation(validate, translator, notBlankTag, notBlankText)
	_ = validate.RegisterValidation(dniTag, regexValidation(dniRegex))
	RegisterCustomTranslation(validate, translator, dniTag, dniText)
	_ = validate.RegisterValidation(telefonoTag, regexValidation(telefonoRegex))
	RegisterCustomTranslation(validate, translator, telefonoTag, telefonoText)

	RegisterCustomTranslation(validate, translator, requiredTag, requiredText, true)
	RegisterCustomTranslation(validate, translator, requiredWithTag, requiredText, true)
}

// RegisterCustomTranslation registers a custom translation for the specified validation tag.
func RegisterCustomTranslation(validate *validator.Validate, translator ut.Translator, tag, text string, override ...bool) {
	var ovrd bool
	if len(override) > 0 {
		ovrd = override[0]
	}
	_ = validate.RegisterTranslation(
		tag, translator,
		func(t ut.Translator) error { return t.Add(tag, text, ovrd) },
		func(t ut.Translator, fe validator.FieldError) string {
			s, _ := t.T(tag, fe.Field())
			return s
		},
	)
}

// TranslateErrors turns validation errors into {field: message}.
// Any other error yields nil.
func TranslateErrors(err error, translator ut.Translator) map[string]string {
	switch verr := errors.Cause(err).(type) {
	case validator.ValidationErrors:
		fields := make(map[string]string, len(verr))
		for _, fe := range verr {
			fields[fe.Field()] = fe.Translate(translator)
		}
		return fields
	case *ValidationError:
		return verr.FieldMap()
	default:
		return nil
	}
}

// Custom Global Validators

func notBlankValidation(fl validator.FieldLevel) bool {
	if str, ok := fl.Field().Interface().(string); ok {
		return strings.TrimSpace(str) != ""
	}
	return false
}

// regexValidation matches non-empty strings against re. Empty values are left to `required`.
func regexValidation(re *regexp.Regexp) validator.Func {
	return func(fl validator.FieldLevel) bool {
		str, ok := fl.Field().Interface().(string)
		if !ok {
			return false
		}
		return str == "" || re.MatchString(str)
	}
}
