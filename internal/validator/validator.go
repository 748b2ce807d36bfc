package validator

import (
	"reflect"
	"slices"
	"strings"
	"sync"

	ierr "github.com/flexprice/azpay/internal/errors"
	"github.com/go-playground/validator/v10"
	"github.com/samber/lo"
	"github.com/shopspring/decimal"
)

var (
	validate *validator.Validate
	once     sync.Once
)

// NewValidator builds the shared validator. Field errors are reported by json name
// so they match the wire field a caller passed.
func NewValidator() *validator.Validate {
	once.Do(func() {
		validate = validator.New()
		validate.RegisterTagNameFunc(func(fld reflect.StructField) string {
			name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
			if name == "-" {
				return ""
			}
			return name
		})
		// amounts are validated by value, so gt=0 works on decimals
		validate.RegisterCustomTypeFunc(func(v reflect.Value) interface{} {
			d, ok := v.Interface().(decimal.Decimal)
			if !ok {
				return nil
			}
			f, _ := d.Float64()
			return f
		}, decimal.Decimal{})
	})
	return validate
}

func GetValidator() *validator.Validate {
	return validate
}

// ValidateRequest validates a struct and marks failures with ErrValidation,
// naming every offending field in the hint and the reportable details.
func ValidateRequest(req interface{}) error {
	if validate == nil {
		NewValidator()
	}

	if err := validate.Struct(req); err != nil {
		details := make(map[string]any)
		var validateErrs validator.ValidationErrors
		if ierr.As(err, &validateErrs) {
			for _, err := range validateErrs {
				details[err.Field()] = err.Tag()
			}
		}
		fields := lo.Keys(details)
		slices.Sort(fields)
		return ierr.WithError(err).
			WithHintf("Request validation failed for fields: %s", strings.Join(fields, ", ")).
			WithReportableDetails(details).
			Mark(ierr.ErrValidation)
	}
	return nil
}
