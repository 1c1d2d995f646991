package tests

import (
	"testing"

	"github.com/go-playground/locales/en"
	ut "github.com/go-playground/universal-translator"
	"github.com/go-playground/validator/v10"

	"github.com/pulseportal/pulse/core"
)

func newValidator(t *testing.T) (*validator.Validate, ut.Translator) {
	t.Helper()
	validate := validator.New()
	enLocale := en.New()
	uni := ut.New(enLocale, enLocale)
	translator, found := uni.GetTranslator(enLocale.Locale())
	if !found {
		t.Fatal("newValidator() failed: en translator not found")
	}
	core.InitValidators(validate, translator)
	return validate, translator
}
