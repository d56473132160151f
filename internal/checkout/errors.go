package checkout

import (
	"errors"
	"fmt"
)

var (
	ErrEmptyCart       = errors.New("cart is empty, nothing to submit")
	ErrUnauthenticated = errors.New("no customer identity on submission")
)

// ValidationError reports a field-level problem with the submission request.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid %s: %s", e.Field, e.Message)
}
