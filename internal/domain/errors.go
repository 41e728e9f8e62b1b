package domain

import "errors"

var (
	// ErrFieldRequired is returned when a required alert field is missing or empty.
	ErrFieldRequired = errors.New("field is required")

	// ErrInvalidAction is returned when the action is outside {BUY, SELL, HOLD}.
	ErrInvalidAction = errors.New("invalid action")

	// ErrNotifierDisabled is returned when chat delivery was never configured.
	ErrNotifierDisabled = errors.New("notifier disabled by configuration")

	// ErrLoginTimeout is returned when the chat gateway never reported ready.
	ErrLoginTimeout = errors.New("login timed out waiting for ready")
)

// FieldError reports a validation failure on a single alert field. It is
// logged internally and never echoed back to the webhook caller.
type FieldError struct {
	Field string
	Err   error
}

func (e *FieldError) Error() string {
	return "invalid field [" + e.Field + "]: " + e.Err.Error()
}

func (e *FieldError) Unwrap() error {
	return e.Err
}
