package model

import "errors"

// Error kinds the service boundary translates store and input failures into.
// Nothing below this taxonomy reaches a response body.
var (
	ErrNotFound    = errors.New("character not found")
	ErrUnavailable = errors.New("character store unavailable")
	ErrValidation  = errors.New("invalid or duplicate name")
	ErrBadRequest  = errors.New("malformed query parameter")
)

func ErrorMsg(err error) string {
	switch {
	case errors.Is(err, ErrNotFound):
		return "Character not found"
	case errors.Is(err, ErrValidation):
		return "Invalid or duplicate name"
	case errors.Is(err, ErrBadRequest):
		return "One or more query parameters are malformed."
	default:
		return "The stats service is temporarily unavailable. Try again later."
	}
}
