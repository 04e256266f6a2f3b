package services

import (
	"errors"
	"fmt"
	"regexp"
	"sort"
	"strings"
	"unicode"

	"pcstore/internal/apperr"

	"github.com/go-playground/validator/v10"
)

var emailPattern = regexp.MustCompile(`^\b[A-Za-z0-9._%+-]+@[A-Za-z0-9.-]+\.[A-Z|a-z]{2,}\b$`)

// NewValidator returns a validator with the store's custom tags registered.
func NewValidator() *validator.Validate {
	v := validator.New()
	if err := v.RegisterValidation("storeemail", func(fl validator.FieldLevel) bool {
		return emailPattern.MatchString(fl.Field().String())
	}); err != nil {
		panic(fmt.Sprintf("register storeemail: %v", err))
	}
	if err := v.RegisterValidation("password", func(fl validator.FieldLevel) bool {
		return validPassword(fl.Field().String())
	}); err != nil {
		panic(fmt.Sprintf("register password: %v", err))
	}
	return v
}

// validPassword needs at least 8 characters, not all of them digits.
func validPassword(pw string) bool {
	if len(pw) < 8 {
		return false
	}
	return strings.IndexFunc(pw, func(r rune) bool { return !unicode.IsDigit(r) }) >= 0
}

// validateStruct runs v over input and turns field failures into InvalidInput.
func validateStruct(v *validator.Validate, input interface{}) error {
	err := v.Struct(input)
	if err == nil {
		return nil
	}
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return apperr.InvalidInput("invalid input: %v", err)
	}
	msgs := make([]string, 0, len(verrs))
	for _, e := range verrs {
		msgs = append(msgs, fmt.Sprintf("Field '%s' failed on the '%s' tag", e.Field(), e.Tag()))
	}
	sort.Strings(msgs)
	return apperr.InvalidInput("validation failed: %s", strings.Join(msgs, "; "))
}
