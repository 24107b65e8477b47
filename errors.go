package sdkwa

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"

	goerrors "github.com/goliatone/go-errors"
)

var (
	ErrInvalidMessenger = errors.New("invalid messenger")
	ErrInvalidRequest   = errors.New("invalid request")
	ErrClientClosed     = errors.New("client is closed")
)

// ErrorKind classifies a failed API call.
type ErrorKind string

const (
	KindAuthentication ErrorKind = "authentication"
	KindValidation     ErrorKind = "validation"
	KindRateLimit      ErrorKind = "rate_limit"
	KindGeneric        ErrorKind = "api"
	KindNetwork        ErrorKind = "network"
)

func (k ErrorKind) String() string {
	return string(k)
}

// APIError is returned for every call that reached the transport and failed,
// either because no response arrived (KindNetwork) or because the server
// answered with a status of 400 or above.
type APIError struct {
	Kind       ErrorKind
	StatusCode int
	Message    string
	Err        error
}

func (e *APIError) Error() string {
	if e.Kind == KindNetwork {
		return "sdkwa: network error: " + e.Message
	}
	return fmt.Sprintf("sdkwa: %s error (status %d): %s", e.Kind, e.StatusCode, e.Message)
}

func (e *APIError) Unwrap() error {
	return e.Err
}

// Rich projects the error onto a go-errors envelope so it can be rendered or
// logged alongside the library's local errors.
func (e *APIError) Rich() *goerrors.Error {
	code := e.StatusCode
	textCode := "NETWORK_ERROR"
	if e.Kind == KindNetwork {
		code = http.StatusBadGateway
	} else {
		textCode = goerrors.HTTPStatusToTextCode(e.StatusCode)
	}
	return goerrors.Wrap(e, kindCategory(e.Kind), e.Message).
		WithCode(code).
		WithTextCode(textCode).
		WithMetadata(map[string]any{"kind": e.Kind.String()})
}

// Classify maps an HTTP status of 400 or above to an error kind. Only the
// status is consulted.
func Classify(status int) ErrorKind {
	switch status {
	case http.StatusUnauthorized:
		return KindAuthentication
	case http.StatusBadRequest:
		return KindValidation
	case http.StatusTooManyRequests:
		return KindRateLimit
	default:
		return KindGeneric
	}
}

// KindOf reports the kind of err. Local validation failures (bad messenger,
// bad configuration) report KindValidation.
func KindOf(err error) (ErrorKind, bool) {
	var apiErr *APIError
	if errors.As(err, &apiErr) {
		return apiErr.Kind, true
	}
	var rich *goerrors.Error
	if errors.As(err, &rich) && rich.Category == goerrors.CategoryValidation {
		return KindValidation, true
	}
	return "", false
}

func IsKind(err error, kind ErrorKind) bool {
	got, ok := KindOf(err)
	return ok && got == kind
}

func newStatusError(status int, body []byte) *APIError {
	return &APIError{
		Kind:       Classify(status),
		StatusCode: status,
		Message:    errorMessage(status, body),
	}
}

func newNetworkError(err error) *APIError {
	return &APIError{
		Kind:    KindNetwork,
		Message: err.Error(),
		Err:     err,
	}
}

// errorMessage prefers the "message" field of a JSON object body, then the raw
// body text, then the status line.
func errorMessage(status int, body []byte) string {
	var payload map[string]any
	if err := json.Unmarshal(body, &payload); err == nil {
		if message, ok := payload["message"].(string); ok && message != "" {
			return message
		}
	}
	if text := strings.TrimSpace(string(body)); text != "" {
		return text
	}
	return fmt.Sprintf("%d %s", status, http.StatusText(status))
}

func kindCategory(kind ErrorKind) goerrors.Category {
	switch kind {
	case KindAuthentication:
		return goerrors.CategoryAuth
	case KindValidation:
		return goerrors.CategoryValidation
	case KindRateLimit:
		return goerrors.CategoryRateLimit
	default:
		return goerrors.CategoryExternal
	}
}

func configError(fields ...goerrors.FieldError) error {
	return goerrors.NewValidation("sdkwa: invalid configuration", fields...).
		WithTextCode("INVALID_CONFIG")
}

func localError(message string, category goerrors.Category, textCode string, metadata map[string]any) error {
	err := goerrors.New(message, category).WithTextCode(textCode)
	if len(metadata) > 0 {
		err.WithMetadata(metadata)
	}
	return err
}

func localWrapError(source error, category goerrors.Category, message, textCode string, metadata map[string]any) error {
	if source == nil {
		return localError(message, category, textCode, metadata)
	}
	err := goerrors.Wrap(source, category, message).WithTextCode(textCode)
	if len(metadata) > 0 {
		err.WithMetadata(metadata)
	}
	return err
}
