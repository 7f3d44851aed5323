package models

import (
	"errors"
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
)

var validate = validator.New()

var (
	ErrEmptyField = errors.New("field is empty")
	ErrTooLong    = errors.New("field is too long")
	ErrMultiline  = errors.New("field spans several lines")
)

// CleanField trims value and checks it is non-empty, at most maxRunes long
// and free of line breaks, so it always lands on a single log line.
func CleanField(value string, maxRunes int) (string, error) {
	value = strings.TrimSpace(value)
	err := validate.Var(value, fmt.Sprintf("required,max=%d,excludesall=\r\n", maxRunes))
	if err == nil {
		return value, nil
	}

	var validationErrors validator.ValidationErrors
	if errors.As(err, &validationErrors) && len(validationErrors) > 0 {
		switch validationErrors[0].Tag() {
		case "required":
			return "", ErrEmptyField
		case "max":
			return "", ErrTooLong
		case "excludesall":
			return "", ErrMultiline
		}
	}
	return "", err
}
