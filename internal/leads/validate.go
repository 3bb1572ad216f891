package leads

import (
	"errors"
	validation "github.com/go-ozzo/ozzo-validation/v4"
	domainerr "pdsite/internal/domain/errors"
	"regexp"
	"strings"
	"unicode"
)

var emailPattern = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)

var errEmailFormat = validation.NewError("leads.email_format", "Invalid email format")

var Roles = []string{"founder", "finance", "ops", "sales", "other"}

const (
	maxEmail   = 255
	maxName    = 200
	maxCompany = 200
	maxComment = 2000
)

func emailFormat(value interface{}) error {
	s, _ := value.(string)
	s = strings.TrimSpace(s)
	if strings.IndexFunc(s, unicode.IsControl) >= 0 || !emailPattern.MatchString(s) {
		return errEmailFormat
	}
	return nil
}

func roleRule() validation.Rule {
	allowed := make([]interface{}, len(Roles))
	for i, r := range Roles {
		allowed[i] = r
	}
	return validation.In(allowed...).Error("Invalid role")
}

// Validate checks the raw input and reports every problem, in a stable
// order, as a ValidationError whose messages are shown to the visitor.
func (in Input) Validate() error {
	var ve domainerr.ValidationError

	check := func(field string, value string, rules ...validation.Rule) {
		if err := validation.Validate(value, rules...); err != nil {
			ve.Add(field, err.Error())
		}
	}

	check("email", in.Email,
		validation.Required.Error("Email is required"),
		validation.By(emailFormat),
	)
	check("email", in.Email, validation.RuneLength(0, maxEmail).Error("Email is too long"))
	check("name", in.Name, validation.RuneLength(0, maxName).Error("Name is too long"))
	check("company", in.Company, validation.RuneLength(0, maxCompany).Error("Company name is too long"))
	check("comment", in.Comment, validation.RuneLength(0, maxComment).Error("Comment is too long"))
	check("role", in.Role, roleRule())

	if ve.HasAny() {
		return ve
	}
	return nil
}

// Messages returns the visitor-facing messages of a Validate error.
func Messages(err error) []string {
	var ve domainerr.ValidationError
	if !errors.As(err, &ve) {
		if err == nil {
			return nil
		}
		return []string{err.Error()}
	}
	return ve.Reasons()
}
