package contact

import (
	"errors"
	"fmt"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
)

// Issue is a non-blocking warning about a record field.
type Issue struct {
	Field   string
	Message string
}

func (i Issue) String() string {
	return i.Field + ": " + i.Message
}

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		name, _, _ := strings.Cut(f.Tag.Get("yaml"), ",")
		if name == "" || name == "-" {
			return f.Name
		}
		return name
	})
	if err := v.RegisterValidation("hex6", func(fl validator.FieldLevel) bool {
		return IsHexColor(fl.Field().String())
	}); err != nil {
		panic(err)
	}
	return v
}

// Lint checks r for fields that will degrade the card or the export.
// It never rejects a record; callers decide whether to show the issues.
func Lint(r Record) []Issue {
	err := validate.Struct(r)
	if err == nil {
		return nil
	}

	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return []Issue{{Field: "record", Message: err.Error()}}
	}

	issues := make([]Issue, 0, len(verrs))
	for _, fe := range verrs {
		issues = append(issues, Issue{Field: fe.Field(), Message: issueMessage(fe)})
	}
	return issues
}

func issueMessage(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "empty, export file will be named _contact.vcf"
	case "email":
		return fmt.Sprintf("%q does not look like an email address", fe.Value())
	case "uri":
		return fmt.Sprintf("%q is not a URI", fe.Value())
	case "hex6":
		return fmt.Sprintf("%q is not a #RRGGBB color, card uses %s", fe.Value(), DefaultThemeColor)
	default:
		return "failed " + fe.Tag()
	}
}

// Normalize trims whitespace around every field and strips an http(s)
// scheme from social values. Theme color case is kept.
func Normalize(r Record) Record {
	r.FullName = strings.TrimSpace(r.FullName)
	r.Designation = strings.TrimSpace(r.Designation)
	r.Company = strings.TrimSpace(r.Company)
	r.Email = strings.TrimSpace(r.Email)
	r.Phone = strings.TrimSpace(r.Phone)
	r.Tagline = strings.TrimSpace(r.Tagline)
	r.ProfileImage = strings.TrimSpace(r.ProfileImage)
	r.ThemeColor = strings.TrimSpace(r.ThemeColor)

	for _, k := range SocialKeys() {
		v, _ := r.Socials.Get(k)
		r.Socials, _ = r.Socials.With(k, normalizeSocial(v))
	}
	return r
}

func normalizeSocial(v string) string {
	v = strings.TrimSpace(v)
	lower := strings.ToLower(v)
	for _, scheme := range []string{"https://", "http://"} {
		if strings.HasPrefix(lower, scheme) {
			return v[len(scheme):]
		}
	}
	return v
}
