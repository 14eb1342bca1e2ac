package errors

import (
	"errors"
	"fmt"
)

// Category represents the type of error.
type Category string

const (
	CategoryLocation  Category = "location"
	CategoryHistory   Category = "history"
	CategoryComponent Category = "component"
	CategoryConfig    Category = "config"
	CategoryExport    Category = "export"
	CategoryCLI       Category = "cli"
)

// RouterError is a coded error with an explanation and a fix hint.
type RouterError struct {
	// Code is a unique error identifier (e.g., "E100").
	Code string

	// Category groups related codes.
	Category Category

	// Message is a short description of the error.
	Message string

	// Detail is a longer explanation of the error.
	Detail string

	// Path is the URL or file path involved, if any.
	Path string

	// Component names the component that failed, if any.
	Component string

	// Suggestion is a hint on how to fix the error.
	Suggestion string

	// DocURL is a link to documentation about this error.
	DocURL string

	// Wrapped is the underlying error, if any.
	Wrapped error
}

// Error implements the error interface.
func (e *RouterError) Error() string {
	if e.Code != "" {
		return fmt.Sprintf("%s: %s", e.Code, e.Message)
	}
	return e.Message
}

// Unwrap returns the wrapped error for errors.Is/As support.
func (e *RouterError) Unwrap() error {
	return e.Wrapped
}

// WithMessage replaces the registered message.
func (e *RouterError) WithMessage(m string) *RouterError {
	e.Message = m
	return e
}

// WithDetail replaces the registered explanation.
func (e *RouterError) WithDetail(d string) *RouterError {
	e.Detail = d
	return e
}

// WithPath records the URL or file involved.
func (e *RouterError) WithPath(p string) *RouterError {
	e.Path = p
	return e
}

// WithComponent records the component that failed.
func (e *RouterError) WithComponent(name string) *RouterError {
	e.Component = name
	return e
}

// WithSuggestion adds a fix suggestion to the error.
func (e *RouterError) WithSuggestion(s string) *RouterError {
	e.Suggestion = s
	return e
}

// Wrap wraps another error.
func (e *RouterError) Wrap(err error) *RouterError {
	e.Wrapped = err
	return e
}

// New creates a RouterError from a registered error code.
func New(code string) *RouterError {
	template, ok := registry[code]
	if !ok {
		return &RouterError{
			Code:    code,
			Message: "Unknown error",
		}
	}
	return &RouterError{
		Code:     code,
		Category: template.Category,
		Message:  template.Message,
		Detail:   template.Detail,
		DocURL:   template.DocURL,
	}
}

// Newf creates a new RouterError with a formatted message (no code).
func Newf(category Category, format string, args ...any) *RouterError {
	return &RouterError{
		Category: category,
		Message:  fmt.Sprintf(format, args...),
	}
}

// FromError wraps a standard error in a RouterError.
func FromError(err error, code string) *RouterError {
	if err == nil {
		return nil
	}
	var re *RouterError
	if errors.As(err, &re) {
		return re
	}
	return New(code).Wrap(err)
}

// HasCode reports whether err carries the given code anywhere in its chain.
func HasCode(err error, code string) bool {
	var re *RouterError
	for err != nil {
		if !errors.As(err, &re) {
			return false
		}
		if re.Code == code {
			return true
		}
		err = re.Wrapped
	}
	return false
}
