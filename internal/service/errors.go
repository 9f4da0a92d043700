package service

import (
	"errors"
	"sort"
	"strings"

	"github.com/go-playground/validator/v10"
)

var ErrInvalidRequest = errors.New("invalid requested item")

// Messages shown to the user when a request form is rejected
const (
	MsgNameRequired        = "Please enter a product name."
	MsgDescriptionRequired = "Please enter a description."
	MsgLinkInvalid         = "Reference link must be a valid URL."
	MsgFieldInvalid        = "Invalid value."
)

// ValidationError maps form fields to user-facing messages
type ValidationError struct {
	Fields map[string]string
}

func (e *ValidationError) Error() string {
	keys := make([]string, 0, len(e.Fields))
	for k := range e.Fields {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	parts := make([]string, 0, len(keys))
	for _, k := range keys {
		parts = append(parts, k+": "+e.Fields[k])
	}
	return ErrInvalidRequest.Error() + ": " + strings.Join(parts, "; ")
}

func (e *ValidationError) Unwrap() error {
	return ErrInvalidRequest
}

// Message returns the first message in field order name, description, link
func (e *ValidationError) Message() string {
	for _, field := range []string{"name", "description", "link"} {
		if msg, ok := e.Fields[field]; ok {
			return msg
		}
	}
	for _, msg := range e.Fields {
		return msg
	}
	return MsgFieldInvalid
}

func fromValidatorError(err error) *ValidationError {
	out := &ValidationError{Fields: map[string]string{}}

	var ve validator.ValidationErrors
	if !errors.As(err, &ve) {
		out.Fields["_"] = MsgFieldInvalid
		return out
	}

	for _, fe := range ve {
		field := strings.ToLower(fe.Field())
		out.Fields[field] = messageFor(field, fe.Tag())
	}
	return out
}

func messageFor(field, tag string) string {
	switch {
	case field == "name" && tag == "required":
		return MsgNameRequired
	case field == "description" && tag == "required":
		return MsgDescriptionRequired
	case field == "link":
		return MsgLinkInvalid
	default:
		return MsgFieldInvalid
	}
}
