package session

import (
	"errors"
	"fmt"
	"time"

	"care-hub-go/internal/domain/clock"
)

var (
	ErrInvalidCredentials = errors.New("invalid username or password")
	ErrBanned             = errors.New("account banned")
	ErrSuspended          = errors.New("account suspended")
	ErrNoSession          = errors.New("no active session")
)

type BannedError struct {
	Reason string
}

func (e *BannedError) Error() string {
	if e.Reason == "" {
		return ErrBanned.Error()
	}
	return fmt.Sprintf("%s: %s", ErrBanned, e.Reason)
}

func (e *BannedError) Is(target error) bool {
	return target == ErrBanned
}

type SuspendedError struct {
	Until time.Time
}

func (e *SuspendedError) Error() string {
	return fmt.Sprintf("%s until %s", ErrSuspended, e.Until.Format(clock.DateLayout))
}

func (e *SuspendedError) Is(target error) bool {
	return target == ErrSuspended
}
