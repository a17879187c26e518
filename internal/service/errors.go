package service

import (
	"errors"
	"fmt"
)

var (
	// ErrMissingCredentials is returned by completion clients before any network
	// I/O when the API key or folder ID is not configured.
	ErrMissingCredentials = errors.New("completion API credentials are not configured")

	// ErrEmptyCompletion means the upstream answered 200 without any alternative text.
	ErrEmptyCompletion = errors.New("completion response has no alternatives")

	// ErrEmptyIngredients rejects blank or whitespace-only input.
	ErrEmptyIngredients = &ValidationError{Message: "Введите ингредиенты"}
)

// ValidationError is a client-caused failure; the HTTP layer maps it to 400.
type ValidationError struct {
	Message string
}

func (e *ValidationError) Error() string {
	return e.Message
}

// UpstreamError describes a failed completion API call. StatusCode is set when
// the API answered with a non-200 status; Err is set for transport, timeout and
// decoding failures.
type UpstreamError struct {
	StatusCode int
	Body       string
	Err        error
}

func (e *UpstreamError) Error() string {
	if e.StatusCode != 0 {
		return fmt.Sprintf("completion API returned status %d", e.StatusCode)
	}
	return fmt.Sprintf("completion API request failed: %v", e.Err)
}

func (e *UpstreamError) Unwrap() error {
	return e.Err
}

// InternalError wraps infrastructure failures (store unavailable and the like).
type InternalError struct {
	Op  string
	Err error
}

func (e *InternalError) Error() string {
	return fmt.Sprintf("%s: %v", e.Op, e.Err)
}

func (e *InternalError) Unwrap() error {
	return e.Err
}

// upstreamMessage renders a completion failure as the text shown to the user in
// place of generated content.
func upstreamMessage(err error) string {
	if errors.Is(err, ErrMissingCredentials) {
		return "Ошибка: не настроены API ключи"
	}

	var upstreamErr *UpstreamError
	if errors.As(err, &upstreamErr) {
		if upstreamErr.StatusCode != 0 {
			return fmt.Sprintf("Ошибка API: %d", upstreamErr.StatusCode)
		}
		if upstreamErr.Err != nil {
			return fmt.Sprintf("Ошибка соединения: %v", upstreamErr.Err)
		}
	}

	return fmt.Sprintf("Ошибка соединения: %v", err)
}
