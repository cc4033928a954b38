package match

import (
	"errors"
	"fmt"
)

var (
	// ErrInvalidPreference matches any *InvalidPreferenceError
	ErrInvalidPreference = errors.New("invalid preference")
	// ErrMalformedData matches any *MalformedDataError
	ErrMalformedData = errors.New("malformed data")
)

// InvalidPreferenceError reports preferences that cannot be scored against:
// a negative or non-finite weight, or weights that sum to zero.
type InvalidPreferenceError struct {
	Field  string
	Reason string
}

func (e *InvalidPreferenceError) Error() string {
	return fmt.Sprintf("invalid preference %s: %s", e.Field, e.Reason)
}

// Is makes errors.Is(err, ErrInvalidPreference) hold
func (e *InvalidPreferenceError) Is(target error) bool {
	return target == ErrInvalidPreference
}

// MalformedDataError reports a neighborhood or preference field that could
// not be interpreted.
type MalformedDataError struct {
	NeighborhoodID string
	Field          string
	Reason         string
	Err            error
}

func (e *MalformedDataError) Error() string {
	msg := fmt.Sprintf("malformed %s: %s", e.Field, e.Reason)
	if e.NeighborhoodID != "" {
		msg = fmt.Sprintf("neighborhood %s: %s", e.NeighborhoodID, msg)
	}
	if e.Err != nil {
		msg += ": " + e.Err.Error()
	}
	return msg
}

// Is makes errors.Is(err, ErrMalformedData) hold
func (e *MalformedDataError) Is(target error) bool {
	return target == ErrMalformedData
}

func (e *MalformedDataError) Unwrap() error {
	return e.Err
}
