package validator

import (
	"log"
	"reflect"
	"strings"
	"unicode/utf8"

	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
)

func RegisterGinValidator() {
	if v, ok := binding.Validator.Engine().(*validator.Validate); ok {
		v.RegisterTagNameFunc(jsonTagName)
		err := v.RegisterValidation("codedigit", codeDigitValidator)
		if err != nil {
			log.Fatal("register codedigit validator failed")
		}
	}
}

func jsonTagName(fld reflect.StructField) string {
	name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
	if name == "-" {
		return ""
	}
	return name
}

// codeDigitValidator accepts an empty position or a single character.
// Empty positions are reported by the flow itself.
var codeDigitValidator validator.Func = func(fl validator.FieldLevel) bool {
	return utf8.RuneCountInString(fl.Field().String()) <= 1
}

var emailValidate = validator.New()

// IsEmail reports whether s is a syntactically valid email address.
func IsEmail(s string) bool {
	return emailValidate.Var(s, "required,email") == nil
}
