package validate

import (
	"errors"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
)

// EmailRule is the rule every email goes through, at sign-up and sign-in.
const EmailRule = "required,email,max=60"

var v = newValidator()

func newValidator() *validator.Validate {
	val := validator.New()
	// Report form field names ("email") rather than Go field names ("Email").
	val.RegisterTagNameFunc(func(f reflect.StructField) string {
		name := strings.SplitN(f.Tag.Get("form"), ",", 2)[0]
		if name == "" || name == "-" {
			return f.Name
		}
		return name
	})
	if err := val.RegisterValidation("password", func(fl validator.FieldLevel) bool {
		return Password(fl.Field().String())
	}); err != nil {
		panic(err)
	}
	return val
}

// Email reports whether s, once normalized, passes EmailRule.
func Email(s string) bool {
	return v.Var(NormalizeEmail(s), EmailRule) == nil
}

// NormalizeEmail is the canonical form stored and looked up.
func NormalizeEmail(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}

// Password enforces a length window and four character classes.
func Password(s string) bool {
	l := len(s)
	if l < 8 || l > 64 {
		return false
	}
	var hasLower, hasUpper, hasDigit, hasSymbol bool
	for _, r := range s {
		switch {
		case 'a' <= r && r <= 'z':
			hasLower = true
		case 'A' <= r && r <= 'Z':
			hasUpper = true
		case '0' <= r && r <= '9':
			hasDigit = true
		default:
			hasSymbol = true
		}
	}
	return hasLower && hasUpper && hasDigit && hasSymbol
}

var messages = map[string]string{
	"required": "This field is required.",
	"email":    "Please enter a valid email address.",
	"min":      "This value is too short.",
	"max":      "This value is too long.",
	"password": "Use 8 to 64 characters with upper and lower case letters, a digit and a symbol.",
	"eqfield":  "The passwords do not match.",
}

// Struct validates s against its `validate` tags and returns one message per
// failing field, keyed by form field name. A nil map means s is valid.
func Struct(s any) map[string]string {
	err := v.Struct(s)
	if err == nil {
		return nil
	}
	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) {
		return map[string]string{"general": err.Error()}
	}
	out := make(map[string]string, len(fieldErrs))
	for _, fe := range fieldErrs {
		if _, seen := out[fe.Field()]; seen {
			continue
		}
		msg, ok := messages[fe.Tag()]
		if !ok {
			msg = "This value is invalid."
		}
		out[fe.Field()] = msg
	}
	return out
}
