package upstream

import (
	"errors"
	"fmt"
)

// ErrTimeout marks an upstream call that exceeded the configured timeout.
var ErrTimeout = errors.New("upstream request timed out")

// StatusError is returned when the upstream answers with anything but 200.
type StatusError struct {
	StatusCode int
	Body       string
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("chat completions: status=%d body=%s", e.StatusCode, e.Body)
}

// TransportError wraps failures that prevented a response from arriving:
// DNS, refused connections, TLS and the like.
type TransportError struct {
	Err error
}

func (e *TransportError) Error() string {
	return fmt.Sprintf("chat completions: send request: %v", e.Err)
}

func (e *TransportError) Unwrap() error {
	return e.Err
}
