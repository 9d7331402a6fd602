package identity

import (
	"errors"
	"net/http"
)

var (
	// ErrAuthRejected matches every *AuthError.
	ErrAuthRejected = errors.New("identity: credentials rejected")
	// ErrNetwork wraps transport failures talking to the identity service.
	ErrNetwork = errors.New("identity: request failed")
	// ErrParse wraps response bodies that are not valid JSON.
	ErrParse = errors.New("identity: malformed response")
)

// AuthError is a non-success answer from the identity service.
type AuthError struct {
	Status  int
	Message string
}

func (e *AuthError) Error() string {
	if e.Message == "" {
		return "identity: " + http.StatusText(e.Status)
	}
	return e.Message
}

func (e *AuthError) Is(target error) bool {
	return target == ErrAuthRejected
}

// DisplayMessage is the text shown to the user for the rejection.
func (e *AuthError) DisplayMessage() string {
	if e.Message != "" {
		return e.Message
	}
	if text := http.StatusText(e.Status); text != "" {
		return text
	}
	return "Sign in failed."
}
