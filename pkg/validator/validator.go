package validator

import (
	"errors"
	"fmt"

	"github.com/go-playground/validator/v10"
)

type ErrorResponse struct {
	FailedField string
	Tag         string
	Value       string
}

var validate = validator.New()

func ValidateStruct(data interface{}) []*ErrorResponse {
	var errs []*ErrorResponse
	err := validate.Struct(data)
	if err == nil {
		return nil
	}

	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return []*ErrorResponse{{FailedField: "", Tag: err.Error()}}
	}
	for _, fe := range verrs {
		errs = append(errs, &ErrorResponse{
			FailedField: fe.StructNamespace(),
			Tag:         fe.Tag(),
			Value:       fe.Param(),
		})
	}
	return errs
}

// FirstError returns a readable message for the first failed field, or "" when data is valid.
func FirstError(data interface{}) string {
	errs := ValidateStruct(data)
	if len(errs) == 0 {
		return ""
	}
	first := errs[0]
	if first.Value != "" {
		return fmt.Sprintf("field '%s' failed on '%s=%s'", first.FailedField, first.Tag, first.Value)
	}
	return fmt.Sprintf("field '%s' failed on '%s'", first.FailedField, first.Tag)
}
