package model

import (
	"errors"
	"fmt"
	"net/http"
	"strings"
)

var (
	// ErrStartup wraps every failure to load an artifact.
	ErrStartup = errors.New("artifact load failed")
	// ErrMalformedBody indicates the request body is not a JSON object.
	ErrMalformedBody = errors.New("request body must be a JSON object")
	// ErrInference wraps classifier and decoder failures.
	ErrInference = errors.New("inference failed")
	// ErrUnknownCategory indicates a categorical value outside the trained vocabulary.
	ErrUnknownCategory = errors.New("unknown category")
	// ErrUnknownClass indicates a class index the label encoder cannot decode.
	ErrUnknownClass = errors.New("unknown class")
)

// Field error types reported to clients.
const (
	TypeMissing = "missing"
	TypeInt     = "int_type"
	TypeFloat   = "float_type"
	TypeString  = "string_type"
)

// FieldError describes one invalid field, shaped after the usual
// {"loc", "msg", "type"} validation detail.
type FieldError struct {
	Loc  []string `json:"loc"`
	Msg  string   `json:"msg"`
	Type string   `json:"type"`
}

// Field returns the name of the offending field.
func (f FieldError) Field() string {
	if len(f.Loc) == 0 {
		return ""
	}
	return f.Loc[len(f.Loc)-1]
}

// ValidationError lists every field of a request that failed validation.
type ValidationError struct {
	Fields []FieldError
}

func (e *ValidationError) Error() string {
	names := make([]string, len(e.Fields))
	for i, f := range e.Fields {
		names[i] = fmt.Sprintf("%s (%s)", f.Field(), f.Msg)
	}
	return "invalid fields: " + strings.Join(names, ", ")
}

// MapHTTPStatus maps request errors to HTTP status codes.
func MapHTTPStatus(err error) int {
	var verr *ValidationError
	if errors.As(err, &verr) {
		return http.StatusUnprocessableEntity
	}
	if errors.Is(err, ErrMalformedBody) {
		return http.StatusBadRequest
	}
	return http.StatusInternalServerError
}

func startupError(what string, err error) error {
	return fmt.Errorf("%w: %s: %w", ErrStartup, what, err)
}

func inferenceError(err error) error {
	return fmt.Errorf("%w: %w", ErrInference, err)
}
