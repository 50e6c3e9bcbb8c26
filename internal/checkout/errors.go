package checkout

import (
	"errors"
	"fmt"
)

type Reason string

const (
	ReasonUnauthenticated Reason = "unauthenticated"
	ReasonEmptyCart       Reason = "empty-cart"
)

// ValidationError reports a rejected checkout precondition. The cart is left untouched.
type ValidationError struct {
	Reason Reason
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("checkout rejected: %s", e.Reason)
}

// SubmissionError wraps a failure from the order backend.
type SubmissionError struct {
	Cause error
}

func (e *SubmissionError) Error() string {
	return fmt.Sprintf("submit order: %v", e.Cause)
}

func (e *SubmissionError) Unwrap() error {
	return e.Cause
}

var errEmptyOrderID = errors.New("order backend returned an empty id")

// IsRejected reports whether err is a ValidationError with the given reason.
func IsRejected(err error, reason Reason) bool {
	var verr *ValidationError
	return errors.As(err, &verr) && verr.Reason == reason
}
