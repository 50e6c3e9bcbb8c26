package customer

import (
	"fmt"
	"reflect"
	"regexp"
	"sort"
	"strings"

	"github.com/go-playground/validator/v10"
)

const (
	phoneDigits      = 10
	rollNumberDigits = 12
	reservedUsername = "admin"
)

var (
	usernamePattern = regexp.MustCompile(`^[a-zA-Z0-9_]+$`)
	validate        = newValidator()
)

// ValidationError carries per-field messages keyed by the JSON field name.
type ValidationError struct {
	Fields map[string]string
}

func (e *ValidationError) Error() string {
	keys := make([]string, 0, len(e.Fields))
	for k := range e.Fields {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	parts := make([]string, 0, len(keys))
	for _, k := range keys {
		parts = append(parts, k+" "+e.Fields[k])
	}
	return "validation failed: " + strings.Join(parts, "; ")
}

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

// validateSignup runs struct tag validation first and then the rules that depend on the account kind.
func validateSignup(in SignupInput, kind AccountKind, minPassword int) error {
	fields := map[string]string{}
	if err := validate.Struct(in); err != nil {
		errs, ok := err.(validator.ValidationErrors)
		if !ok {
			return err
		}
		for _, fe := range errs {
			fields[fe.Field()] = validationMessage(fe)
		}
	}

	if _, set := fields["username"]; !set {
		switch {
		case !usernamePattern.MatchString(in.Username):
			fields["username"] = "may only contain letters, numbers and underscores"
		case strings.EqualFold(in.Username, reservedUsername):
			fields["username"] = "is reserved"
		}
	}
	if _, set := fields["password"]; !set && len(in.Password) < minPassword {
		fields["password"] = fmt.Sprintf("must be at least %d characters", minPassword)
	}
	if _, set := fields["branch"]; !set && !IsKnownBranch(in.Branch) {
		fields["branch"] = "is not a known branch"
	}
	if _, set := fields["year"]; !set && NormalizeYear(in.Branch, in.Year) == "" {
		fields["year"] = "is not valid for the selected branch"
	}

	switch kind {
	case AccountTeacher:
		if !isDigits(in.Phone, phoneDigits) {
			fields["phone"] = fmt.Sprintf("must be exactly %d digits", phoneDigits)
		}
	default:
		if !isDigits(in.RollNumber, rollNumberDigits) {
			fields["rollNumber"] = fmt.Sprintf("must be exactly %d digits", rollNumberDigits)
		}
	}

	if len(fields) > 0 {
		return &ValidationError{Fields: fields}
	}
	return nil
}

func validationMessage(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "is required"
	case "min":
		return fmt.Sprintf("must be at least %s", fe.Param())
	case "max":
		return fmt.Sprintf("must be at most %s", fe.Param())
	}
	return "is invalid"
}

func isDigits(s string, n int) bool {
	if len(s) != n {
		return false
	}
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}
