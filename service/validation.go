package service

import (
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
)

var structValidator = validator.New()

// validateStruct checks v's validate struct tags, the ecosystem's
// standard way to validate an HTTP request body.
func validateStruct(v interface{}) error {
	if err := structValidator.Struct(v); err != nil {
		var msgs []string
		for _, fe := range err.(validator.ValidationErrors) {
			msgs = append(msgs, fmt.Sprintf("%s failed %s validation", fe.Field(), fe.Tag()))
		}
		return fmt.Errorf("%s", strings.Join(msgs, "; "))
	}
	return nil
}
