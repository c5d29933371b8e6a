package web

import (
	"encoding/json"
	"fmt"
	"net/http"
	"reflect"
	"strings"

	"github.com/go-playground/locales/en"
	ut "github.com/go-playground/universal-translator"
	"github.com/go-playground/validator/v10"
	en_translations "github.com/go-playground/validator/v10/translations/en"

	"lessonbook/internal/domain/attendance"
	"lessonbook/internal/domain/errs"
)

var (
	validate   *validator.Validate
	translator ut.Translator

	notBlankTag = "notblank"
	statusTag   = "attendance_status"
)

func init() {
	validate = validator.New()

	_en := en.New()
	uni := ut.New(_en, _en)
	translator, _ = uni.GetTranslator("en")
	_ = en_translations.RegisterDefaultTranslations(validate, translator)

	// Report JSON field names instead of Go struct names.
	validate.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})

	_ = validate.RegisterValidation(notBlankTag, notBlankValidation)
	_ = validate.RegisterValidation(statusTag, statusValidation)
	registerFn := func(ut.Translator) error { return nil }
	for _, tag := range []string{notBlankTag, statusTag} {
		_ = validate.RegisterTranslation(tag, translator, registerFn, translateCustom)
	}
}

func translateCustom(_ ut.Translator, fe validator.FieldError) string {
	switch fe.Tag() {
	case notBlankTag:
		return "this field cannot be blank"
	case statusTag:
		return "status must be one of: present, absent, late, left_early"
	}
	return ""
}

func notBlankValidation(fl validator.FieldLevel) bool {
	if s, ok := fl.Field().Interface().(string); ok {
		return strings.TrimSpace(s) != ""
	}
	return false
}

func statusValidation(fl validator.FieldLevel) bool {
	s, ok := fl.Field().Interface().(string)
	return ok && attendance.Status(s).Valid()
}

func fieldErrors(vErrs validator.ValidationErrors) map[string]string {
	out := make(map[string]string, len(vErrs))
	for _, fe := range vErrs {
		out[jsonPath(fe)] = fe.Translate(translator)
	}
	return out
}

// jsonPath drops the request type and embedded structs from a field namespace.
// Embedded structs have no JSON name, so their segment is the same in both namespaces.
func jsonPath(fe validator.FieldError) string {
	alt := strings.Split(fe.Namespace(), ".")
	goNames := strings.Split(fe.StructNamespace(), ".")
	parts := make([]string, 0, len(alt))
	for i := 1; i < len(alt); i++ {
		if i < len(goNames) && alt[i] == goNames[i] && i < len(alt)-1 {
			continue
		}
		parts = append(parts, alt[i])
	}
	return strings.Join(parts, ".")
}

func strictDecode(r *http.Request, v any) error {
	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()
	return dec.Decode(v)
}

// bind decodes a JSON body into v and validates its struct tags.
func bind(r *http.Request, v any) error {
	if err := strictDecode(r, v); err != nil {
		return errs.Invalid("invalid JSON: %v", err)
	}
	if err := validate.Struct(v); err != nil {
		return fmt.Errorf("validate request: %w", err)
	}
	return nil
}
