package yx5300

import (
	"errors"
	"fmt"
	"time"
)

// ErrTimeout matches any *TimeoutError with errors.Is.
var ErrTimeout = errors.New("no reply from device")

var ErrNilPlayer = errors.New("player is nil")

// TimeoutError is returned by queries when no matching reply arrived in time.
type TimeoutError struct {
	Command Command
	Elapsed time.Duration
}

func (e *TimeoutError) Error() string {
	return fmt.Sprintf("%s: %s after %s", e.Command, ErrTimeout, e.Elapsed.Round(time.Millisecond))
}

func (e *TimeoutError) Is(target error) bool {
	return target == ErrTimeout
}

// IsTimeout returns true if err is, or wraps, a TimeoutError.
func IsTimeout(err error) bool {
	return errors.Is(err, ErrTimeout)
}
