// Package web defines common components for a web application.
package web

import "github.com/go-playground/validator/v10"

// Response holds the common response type for all APIs.
type Response struct {
	Data  any    `json:"data,omitempty"`
	Error string `json:"error,omitempty"`
}

// Error wraps a given err into the common response envelope.
func Error(err error) Response {
	return Response{Error: err.Error()}
}

// GetErrorMsg translates a binding validation failure into a short
// user-facing message for the offending field.
func GetErrorMsg(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return " is required"
	case "currency":
		return " is not a supported currency"
	case "oneof":
		return " must be one of " + fe.Param()
	case "min":
		return " must be at least " + fe.Param()
	case "max":
		return " must be at most " + fe.Param()
	case "gt":
		return " must be greater than " + fe.Param()
	}

	return " is invalid"
}
