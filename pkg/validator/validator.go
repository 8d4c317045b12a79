package validator

import (
	"regexp"
	"strings"

	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
	"github.com/microcosm-cc/bluemonday"
)

var (
	validate  *validator.Validate
	sanitizer *bluemonday.Policy
)

func Init() {
	validate = validator.New()

	sanitizer = bluemonday.UGCPolicy()
	sanitizer.AllowAttrs("target", "rel").OnElements("a")

	registerCustomValidations(validate)

	if engine, ok := binding.Validator.Engine().(*validator.Validate); ok {
		registerCustomValidations(engine)
	}
}

func registerCustomValidations(v *validator.Validate) {
	v.RegisterValidation("slug", validateSlug)
	v.RegisterValidation("no_html", validateNoHTML)
	v.RegisterValidation("route", validateRoute)
}

func Validate(s interface{}) error {
	return validate.Struct(s)
}

// SanitizeHTML cleans user-generated markup while keeping the attributes the
// block renderer emits on links.
func SanitizeHTML(html string) string {
	return sanitizer.Sanitize(html)
}

func SanitizeString(s string) string {
	return bluemonday.StrictPolicy().Sanitize(s)
}

func ValidateEmail(email string) bool {
	emailRegex := regexp.MustCompile(`^[a-zA-Z0-9._%+\-]+@[a-zA-Z0-9.\-]+\.[a-zA-Z]{2,}$`)
	return emailRegex.MatchString(email)
}

func validateSlug(fl validator.FieldLevel) bool {
	slug := fl.Field().String()
	if slug == "" {
		return true
	}
	matched, _ := regexp.MatchString(`^[a-z0-9]+(?:-[a-z0-9]+)*$`, slug)
	return matched
}

func validateNoHTML(fl validator.FieldLevel) bool {
	value := fl.Field().String()
	return value == bluemonday.StrictPolicy().Sanitize(value)
}

func validateRoute(fl validator.FieldLevel) bool {
	route := fl.Field().String()
	if route == "" {
		return true
	}
	return strings.HasPrefix(route, "/")
}
