package remote

import (
	"errors"
	"fmt"
	"net/http"

	"anamnesis/pkg/platform/sentinel"
)

// ErrorKind classifies a failed backend call.
type ErrorKind string

const (
	// KindNetwork covers transport failures and an open circuit.
	KindNetwork ErrorKind = "network"
	// KindStatus is a non-2xx response.
	KindStatus ErrorKind = "status"
	// KindDecode is a 2xx response whose body could not be decoded.
	KindDecode ErrorKind = "decode"
	// KindCanceled means the caller's context ended before a response
	// arrived. It says nothing about backend health.
	KindCanceled ErrorKind = "canceled"
)

// ErrCircuitOpen is reported while the backend circuit is open.
var ErrCircuitOpen = fmt.Errorf("questionnaire backend circuit open: %w", sentinel.ErrUnavailable)

// Error is returned for every failed backend call.
type Error struct {
	Op         string
	Kind       ErrorKind
	StatusCode int
	Err        error
}

func (e *Error) Error() string {
	if e.Kind == KindStatus {
		return fmt.Sprintf("remote %s: unexpected status %d", e.Op, e.StatusCode)
	}
	return fmt.Sprintf("remote %s: %s: %v", e.Op, e.Kind, e.Err)
}

func (e *Error) Unwrap() error {
	return e.Err
}

func statusSentinel(status int) error {
	switch {
	case status == http.StatusNotFound:
		return sentinel.ErrNotFound
	case status >= http.StatusInternalServerError:
		return sentinel.ErrUnavailable
	}
	return nil
}

// IsNetworkError reports whether err is a transport failure, including an
// open circuit.
func IsNetworkError(err error) bool {
	var re *Error
	return errors.As(err, &re) && re.Kind == KindNetwork
}

// IsCanceled reports whether the caller gave up on the call.
func IsCanceled(err error) bool {
	var re *Error
	return errors.As(err, &re) && re.Kind == KindCanceled
}

// StatusCode returns the HTTP status of a status error, or 0.
func StatusCode(err error) int {
	var re *Error
	if errors.As(err, &re) && re.Kind == KindStatus {
		return re.StatusCode
	}
	return 0
}
