package service

import (
	"errors"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"

	"github.com/leora/backend/internal/model"
)

// validate is the schema-validation layer that runs before the engine sees
// any input. The engine itself accepts anything.
var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name, _, _ := strings.Cut(fld.Tag.Get("json"), ",")
		if name == "-" {
			return ""
		}
		return name
	})
	v.RegisterStructValidation(estimateInputRules, model.EstimateInput{})
	return v
}

// estimateInputRules requires at least one of the wall and floor blocks.
func estimateInputRules(sl validator.StructLevel) {
	in := sl.Current().Interface().(model.EstimateInput)
	if !in.ComputeWalls && !in.ComputeFloor {
		sl.ReportError(in.ComputeWalls, "computeWalls", "ComputeWalls", "walls_or_floor", "")
	}
}

var messages = map[string]string{
	"required":       "is required",
	"email":          "must be a valid email address",
	"gte":            "must not be less than %s",
	"gt":             "must be greater than %s",
	"lte":            "must not be greater than %s",
	"max":            "is too long",
	"oneof":          "must be one of %s",
	"walls_or_floor": "select walls, floor, or both",
}

// Validate checks v against its validate tags and returns a *ValidationError.
func Validate(v any) error {
	err := validate.Struct(v)
	if err == nil {
		return nil
	}
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return err
	}
	fields := make(map[string]string, len(verrs))
	for _, fe := range verrs {
		msg, ok := messages[fe.Tag()]
		if !ok {
			msg = "is invalid"
		}
		if strings.Contains(msg, "%s") {
			msg = strings.Replace(msg, "%s", fe.Param(), 1)
		}
		fields[fieldPath(fe)] = msg
	}
	return &ValidationError{Fields: fields}
}

// fieldPath drops the root struct name from the namespace
// ("DocumentInput.segments[1].width" → "segments[1].width"). Embedded
// structs have no json name and therefore keep their Go name, which is
// removed as well.
func fieldPath(fe validator.FieldError) string {
	parts := strings.Split(fe.Namespace(), ".")
	out := parts[:0]
	for i, p := range parts {
		if i == 0 {
			continue
		}
		if p == "DocumentFields" || p == "EstimateInput" {
			continue
		}
		out = append(out, p)
	}
	if len(out) == 0 {
		return fe.Field()
	}
	return strings.Join(out, ".")
}
