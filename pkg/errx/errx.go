package errx

import (
	"fmt"
)

// ErrorType classifies errors into broad categories used for HTTP mapping
// and client-side handling.
type ErrorType string

const (
	TypeValidation    ErrorType = "VALIDATION"
	TypeNotFound      ErrorType = "NOT_FOUND"
	TypeConflict      ErrorType = "CONFLICT"
	TypeAuthorization ErrorType = "AUTHORIZATION"
	TypeBusiness      ErrorType = "BUSINESS"
	TypeUnavailable   ErrorType = "UNAVAILABLE"
	TypeTimeout       ErrorType = "TIMEOUT"
	TypeInternal      ErrorType = "INTERNAL"
)

// Code identifies a registered error definition within a registry.
type Code string

type definition struct {
	code       Code
	errType    ErrorType
	httpStatus int
	message    string
}

// Registry holds error definitions for one domain, namespaced by prefix.
type Registry struct {
	prefix      string
	definitions map[Code]definition
}

// NewRegistry creates a registry whose codes are namespaced with the given prefix.
func NewRegistry(prefix string) *Registry {
	return &Registry{
		prefix:      prefix,
		definitions: make(map[Code]definition),
	}
}

// Register adds an error definition and returns its code for later use.
func (r *Registry) Register(code string, errType ErrorType, httpStatus int, message string) Code {
	c := Code(r.prefix + "_" + code)
	r.definitions[c] = definition{
		code:       c,
		errType:    errType,
		httpStatus: httpStatus,
		message:    message,
	}
	return c
}

// New creates an error from a registered definition.
func (r *Registry) New(code Code) *Error {
	def, ok := r.definitions[code]
	if !ok {
		def = definition{
			code:       code,
			errType:    TypeInternal,
			httpStatus: 500,
			message:    "Unknown error",
		}
	}

	return &Error{
		Code:       def.code,
		Type:       def.errType,
		HTTPStatus: def.httpStatus,
		Message:    def.message,
	}
}

// NewWithCause creates an error from a registered definition, wrapping a cause.
func (r *Registry) NewWithCause(code Code, cause error) *Error {
	e := r.New(code)
	e.Cause = cause
	return e
}

// Error is a structured application error with an HTTP mapping and
// optional key/value details for diagnostics.
type Error struct {
	Code       Code           `json:"code"`
	Type       ErrorType      `json:"type"`
	HTTPStatus int            `json:"-"`
	Message    string         `json:"message"`
	Details    map[string]any `json:"details,omitempty"`
	Cause      error          `json:"-"`
}

func (e *Error) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %s: %v", e.Code, e.Message, e.Cause)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

// Unwrap exposes the cause for errors.Is / errors.As chains.
func (e *Error) Unwrap() error {
	return e.Cause
}

// Is matches two registry errors by code.
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	if !ok {
		return false
	}
	return e.Code == t.Code
}

// WithDetail attaches a single diagnostic detail and returns the error
// for chaining.
func (e *Error) WithDetail(key string, value any) *Error {
	if e.Details == nil {
		e.Details = make(map[string]any)
	}
	e.Details[key] = value
	return e
}

// WithDetails attaches multiple diagnostic details at once.
func (e *Error) WithDetails(details map[string]any) *Error {
	if e.Details == nil {
		e.Details = make(map[string]any, len(details))
	}
	for k, v := range details {
		e.Details[k] = v
	}
	return e
}

// ToHTTPResponse builds the JSON body returned to API clients.
func (e *Error) ToHTTPResponse() map[string]any {
	resp := map[string]any{
		"error":   e.Message,
		"type":    e.Type,
		"code":    e.Code,
		"message": e.Message,
	}
	if len(e.Details) > 0 {
		resp["details"] = e.Details
	}
	return resp
}
