// Package controllers holds the HTTP handlers. Each controller validates
// input with go-playground/validator, delegates to a service or repository,
// and writes the response envelope.
package controllers

import (
	"errors"
	"strings"

	"github.com/go-playground/validator/v10"
)

var validate = validator.New()

// validationErrors flattens validator output into a field → message map for
// the 422 response body.
func validationErrors(err error) map[string]string {
	out := map[string]string{}

	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		out["_"] = err.Error()
		return out
	}

	for _, fe := range verrs {
		field := strings.ToLower(fe.Field())
		switch fe.Tag() {
		case "required":
			out[field] = "Campo obrigatório"
		case "email":
			out[field] = "E-mail inválido"
		case "min":
			out[field] = "Valor muito curto"
		case "uuid":
			out[field] = "Identificador inválido"
		default:
			out[field] = "Valor inválido"
		}
	}
	return out
}
