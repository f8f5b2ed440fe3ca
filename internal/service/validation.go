package service

import (
	"errors"

	validation "github.com/go-ozzo/ozzo-validation/v4"
)

// firstViolation turns ozzo field errors into a single ValidationError,
// picking the first failing field in order.
func firstViolation(err error, order ...string) error {
	if err == nil {
		return nil
	}
	var errs validation.Errors
	if !errors.As(err, &errs) {
		return err
	}
	for _, field := range order {
		if fe, ok := errs[field]; ok && fe != nil {
			return &ValidationError{Field: field, Message: fe.Error()}
		}
	}
	for field, fe := range errs {
		return &ValidationError{Field: field, Message: fe.Error()}
	}
	return nil
}

func stringsToAny(values []string) []any {
	out := make([]any, len(values))
	for i, v := range values {
		out[i] = v
	}
	return out
}

// fieldCheck validates one value; checks run in sequence and the first failure wins.
type fieldCheck struct {
	field string
	value any
	rules []validation.Rule
}

func check(field string, value any, rules ...validation.Rule) fieldCheck {
	return fieldCheck{field: field, value: value, rules: rules}
}

func validateInOrder(checks ...fieldCheck) error {
	for _, c := range checks {
		if err := validation.Validate(c.value, c.rules...); err != nil {
			return &ValidationError{Field: c.field, Message: err.Error()}
		}
	}
	return nil
}
