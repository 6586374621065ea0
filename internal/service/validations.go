package service

import (
	"strings"
	"sync"
	"unicode"

	"github.com/go-playground/validator/v10"
)

// Package for custom validations
var (
	validate *validator.Validate
	once     sync.Once
)

func InitValidator() {
	once.Do(func() {
		validate = validator.New()
		validate.RegisterValidation("alphanum_underscore", func(fl validator.FieldLevel) bool {
			value := fl.Field().String()
			for i, char := range value {
				// Cannot be started with a digit or underscore
				if i == 0 && (unicode.IsDigit(char) || char == '_') {
					return false
				}
				// Digits, letters or underscore
				if !unicode.IsLetter(char) && !unicode.IsDigit(char) && char != '_' {
					return false
				}
			}
			return true
		})
		// Weekday letters of the base routine day-set, Sunday=D
		validate.RegisterValidation("weekday_letters", func(fl validator.FieldLevel) bool {
			value := fl.Field().String()
			if value == "" {
				return false
			}
			for _, char := range value {
				if !strings.ContainsRune("LMXJVSD", char) {
					return false
				}
			}
			return true
		})
		// "HH:MM" clock value
		validate.RegisterValidation("clock", func(fl validator.FieldLevel) bool {
			value := fl.Field().String()
			if len(value) != 5 || value[2] != ':' {
				return false
			}
			hh := int(value[0]-'0')*10 + int(value[1]-'0')
			mm := int(value[3]-'0')*10 + int(value[4]-'0')
			for _, c := range value {
				if c != ':' && !unicode.IsDigit(c) {
					return false
				}
			}
			return hh >= 0 && hh < 24 && mm >= 0 && mm < 60
		})
	})
}

func validateStruct(req any) error {
	err := validate.Struct(req)
	if err == nil {
		return nil
	}
	if validationError, ok := err.(validator.ValidationErrors); ok {
		return ValidationError{fields: validationError}
	}
	return err
}

// ValidationError carries per-field failures so handlers can answer 400
// instead of 500.
type ValidationError struct {
	fields validator.ValidationErrors
}

func (v ValidationError) Error() string {
	msgs := make([]string, 0, len(v.fields))
	for _, fieldErr := range v.fields {
		msgs = append(msgs, fieldErr.Error())
	}
	return "validation error: " + strings.Join(msgs, "; ")
}
