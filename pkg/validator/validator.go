package validator

import (
	stderrors "errors"
	"reflect"
	"strings"
	"sync"

	"github.com/go-playground/validator/v10"
)

// TagName is the struct tag request schemas declare their rules in. It is the
// tag gin's binding reads, so handlers and services agree on the rules.
const TagName = "binding"

// Validator provides validation functionality
type Validator interface {
	Validate(interface{}) error
}

type structValidator struct {
	once     sync.Once
	validate *validator.Validate
}

func New() Validator {
	return &structValidator{}
}

func (v *structValidator) lazyinit() {
	v.once.Do(func() {
		v.validate = validator.New()
		v.validate.SetTagName(TagName)
		v.validate.RegisterTagNameFunc(jsonName)
	})
}

func (v *structValidator) Validate(obj interface{}) error {
	v.lazyinit()
	return v.validate.Struct(obj)
}

// MissingFields returns the names of fields that failed a required rule, as
// the producing validator reports them: json names from New, Go field names
// from gin's default binding validator.
func MissingFields(err error) []string {
	var verrs validator.ValidationErrors
	if !stderrors.As(err, &verrs) {
		return nil
	}

	fields := make([]string, 0, len(verrs))
	for _, fe := range verrs {
		if fe.Tag() == "required" {
			fields = append(fields, fe.Field())
		}
	}
	return fields
}

// IsValidationError reports whether err came from rule validation rather than
// from decoding the request.
func IsValidationError(err error) bool {
	var verrs validator.ValidationErrors
	return stderrors.As(err, &verrs)
}

func jsonName(fld reflect.StructField) string {
	name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
	if name == "-" || name == "" {
		return fld.Name
	}
	return name
}
