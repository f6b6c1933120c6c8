package errors

import (
	stdErrors "errors"
	"fmt"
	"net/http"
)

type Code string

const (
	CodeValidation       Code = "VALIDATION_ERROR"
	CodeUnauthorized     Code = "UNAUTHORIZED"
	CodeNotFound         Code = "NOT_FOUND"
	CodeConflict         Code = "CONFLICT"
	CodeUnsupportedMedia Code = "UNSUPPORTED_MEDIA_TYPE"
	CodeInternal         Code = "INTERNAL_ERROR"
	CodeDependency       Code = "DEPENDENCY_ERROR"
)

// Metadata describes how a code surfaces on the HTTP edge. Title is the
// reason phrase used in the error envelope's "error" field.
type Metadata struct {
	HTTPStatus    int
	Title         string
	PublicMessage string
}

var metadataByCode = map[Code]Metadata{
	CodeValidation: {
		HTTPStatus:    http.StatusBadRequest,
		Title:         "Bad Request",
		PublicMessage: "validation failed",
	},
	CodeUnauthorized: {
		HTTPStatus:    http.StatusUnauthorized,
		Title:         "Unauthorized",
		PublicMessage: "authentication required",
	},
	CodeNotFound: {
		HTTPStatus:    http.StatusNotFound,
		Title:         "Not Found",
		PublicMessage: "resource not found",
	},
	CodeConflict: {
		HTTPStatus:    http.StatusConflict,
		Title:         "Conflict",
		PublicMessage: "conflict detected",
	},
	CodeUnsupportedMedia: {
		HTTPStatus:    http.StatusUnsupportedMediaType,
		Title:         "Unsupported Media Type",
		PublicMessage: "unsupported media type",
	},
	CodeInternal: {
		HTTPStatus:    http.StatusInternalServerError,
		Title:         "Internal Server Error",
		PublicMessage: "internal server error",
	},
	CodeDependency: {
		HTTPStatus:    http.StatusServiceUnavailable,
		Title:         "Service Unavailable",
		PublicMessage: "dependency unavailable",
	},
}

func MetadataFor(code Code) Metadata {
	if meta, ok := metadataByCode[code]; ok {
		return meta
	}
	return metadataByCode[CodeInternal]
}

type Error struct {
	code    Code
	message string
	cause   error
}

func New(code Code, message string) *Error {
	return &Error{code: code, message: message}
}

func Wrap(code Code, err error, message string) *Error {
	if err == nil {
		return New(code, message)
	}
	return &Error{code: code, message: message, cause: err}
}

func (e *Error) Code() Code {
	if e == nil {
		return CodeInternal
	}
	return e.code
}

func (e *Error) Message() string {
	if e == nil {
		return ""
	}
	return e.message
}

func (e *Error) Error() string {
	if e == nil {
		return ""
	}
	return fmt.Sprintf("%s: %s", e.code, e.message)
}

func (e *Error) Unwrap() error {
	if e == nil {
		return nil
	}
	return e.cause
}

func As(err error) *Error {
	if err == nil {
		return nil
	}
	var typed *Error
	if stdErrors.As(err, &typed) {
		return typed
	}
	return nil
}

// Chain flattens the unwrap chain into messages, outermost first.
func Chain(err error) []string {
	var chain []string
	for err != nil {
		chain = append(chain, err.Error())
		err = stdErrors.Unwrap(err)
	}
	return chain
}
