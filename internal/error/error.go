package httperror

import (
	"fmt"
	"net/http"
)

type HttpError struct {
	ErrorCode   string `json:"errorCode,omitempty"`
	Description string `json:"description,omitempty"`
	Metadata    string `json:"-"`
	StatusCode  int    `json:"-"`
}

func (e HttpError) Error() string {
	return fmt.Sprintf("errorCode: %s, description: %s,  metadata: %s", e.ErrorCode, e.Description, e.Metadata)
}

// Is reports whether target carries the same error code, so callers can match the kind with errors.Is.
func (e HttpError) Is(target error) bool {
	t, ok := target.(HttpError)
	if !ok {
		return false
	}
	return t.ErrorCode == e.ErrorCode
}

const (
	UndefinedErrorCode   = "REX0000"
	InvalidInput         = "REX0001"
	Unauthorized         = "REX0002"
	NotFound             = "REX0003"
	DatabaseError        = "REX0004"
	TokenCreationFailed  = "REX0005"
	InvalidCredentials   = "REX0006"
	InvalidRequestBody   = "REX0007"
	TooManyRequests      = "REX0008"
	TooManyLoginAttempts = "REX0009"
	SecretUnavailable    = "REX0010"
)

var httpErrors = map[string]HttpError{
	UndefinedErrorCode: {
		StatusCode:  http.StatusInternalServerError,
		Description: "Something went wrong. Please try again.",
	},
	InvalidInput: {
		StatusCode:  http.StatusBadRequest,
		Description: "Invalid input",
	},
	Unauthorized: {
		StatusCode:  http.StatusUnauthorized,
		Description: "Unauthorized",
	},
	NotFound: {
		StatusCode:  http.StatusNotFound,
		Description: "Requested resource not found",
	},
	DatabaseError: {
		StatusCode:  http.StatusInternalServerError,
		Description: "Database operation failed",
	},
	TokenCreationFailed: {
		StatusCode:  http.StatusInternalServerError,
		Description: "Token creation failed",
	},
	InvalidCredentials: {
		StatusCode:  http.StatusUnauthorized,
		Description: "Invalid username or password",
	},
	InvalidRequestBody: {
		StatusCode:  http.StatusBadRequest,
		Description: "Invalid request body",
	},
	TooManyRequests: {
		StatusCode:  http.StatusTooManyRequests,
		Description: "Too many requests. Please slow down.",
	},
	TooManyLoginAttempts: {
		StatusCode:  http.StatusTooManyRequests,
		Description: "Too many failed login attempts. Please try again later.",
	},
	SecretUnavailable: {
		StatusCode:  http.StatusInternalServerError,
		Description: "Signing secret could not be loaded",
	},
}

func New(key string) HttpError {
	return NewWithStatus(key, "", 0)
}

func NewWithMetadata(key, metadata string) HttpError {
	return NewWithStatus(key, metadata, 0)
}

func NewWithDescription(description string, status int) HttpError {
	return HttpError{
		ErrorCode:   UndefinedErrorCode,
		Description: description,
		StatusCode:  status,
	}
}

func NewWithStatus(key, metadata string, status int) HttpError {
	if err, ok := httpErrors[key]; ok {
		err.ErrorCode = key
		err.Metadata = metadata
		if status != 0 {
			err.StatusCode = status
		}
		return err
	}
	err := httpErrors[UndefinedErrorCode]
	err.ErrorCode = UndefinedErrorCode
	err.Metadata = metadata
	return err
}
