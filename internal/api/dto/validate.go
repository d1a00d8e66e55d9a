package dto

import (
	"context"
	"reflect"
	"regexp"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
)

const dateLayout = "2006-01-02"

type nowKey struct{}

var (
	validate    = newValidator()
	phoneDigits = regexp.MustCompile(`^\d{10,15}$`)
)

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterTagNameFunc(func(field reflect.StructField) string {
		name := strings.SplitN(field.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
	_ = v.RegisterValidation("phone", func(fl validator.FieldLevel) bool {
		return phoneDigits.MatchString(fl.Field().String())
	})
	_ = v.RegisterValidationCtx("notfuture", func(ctx context.Context, fl validator.FieldLevel) bool {
		date, err := time.Parse(dateLayout, fl.Field().String())
		if err != nil {
			return false
		}
		now, ok := ctx.Value(nowKey{}).(time.Time)
		if !ok {
			now = time.Now()
		}
		today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)
		return !date.After(today)
	})
	return v
}

// FieldErrors maps a form field (by its JSON name) to the first message that
// applies to it. Empty means valid.
type FieldErrors map[string]string

// Valid reports whether no field has an error.
func (e FieldErrors) Valid() bool { return len(e) == 0 }

type messageKey struct {
	field string
	tag   string
}

// check validates form and renders each failure through messages. A failure
// without a specific message falls back to "<field> is invalid".
func check(ctx context.Context, form any, messages map[messageKey]string) FieldErrors {
	errs := FieldErrors{}
	err := validate.StructCtx(ctx, form)
	if err == nil {
		return errs
	}
	validationErrs, ok := err.(validator.ValidationErrors)
	if !ok {
		errs["_"] = err.Error()
		return errs
	}
	for _, fe := range validationErrs {
		field := fe.Field()
		if _, seen := errs[field]; seen {
			continue
		}
		if msg, ok := messages[messageKey{field, fe.Tag()}]; ok {
			errs[field] = msg
			continue
		}
		errs[field] = field + " is invalid"
	}
	return errs
}
