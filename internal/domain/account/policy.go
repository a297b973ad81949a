package account

import (
	"time"

	"care-hub-go/internal/domain/clock"
	"care-hub-go/internal/domain/directory"
)

type Policy struct {
	DefaultPassword   string
	ExemptUsernames   []string
	MinPasswordLength int
}

func (p Policy) MinLength() int {
	if p.MinPasswordLength <= 0 {
		return 6
	}
	return p.MinPasswordLength
}

func (p Policy) exempt(username string) bool {
	for _, name := range p.ExemptUsernames {
		if name == username {
			return true
		}
	}
	return false
}

// MustChangePassword is true while the user still holds the shared default
// credential, unless the username belongs to a demo identity.
func (p Policy) MustChangePassword(user directory.User) bool {
	if p.DefaultPassword == "" {
		return false
	}
	return user.Password == p.DefaultPassword && !p.exempt(user.Username)
}

// SuspensionExpired reports whether a stored suspension no longer applies on today.
// A suspension without an end date is treated as expired.
func SuspensionExpired(user directory.User, today time.Time) bool {
	if user.Status != directory.StatusSuspended {
		return false
	}
	if user.SuspensionEndDate == nil {
		return true
	}
	return clock.DateOnly(today).After(clock.DateOnly(*user.SuspensionEndDate))
}

// EffectiveStatusOf computes the status without touching storage.
func EffectiveStatusOf(user directory.User, today time.Time) directory.Status {
	switch user.Status {
	case directory.StatusBanned:
		return directory.StatusBanned
	case directory.StatusSuspended:
		if SuspensionExpired(user, today) {
			return directory.StatusNormal
		}
		return directory.StatusSuspended
	default:
		return directory.StatusNormal
	}
}

func IsEffectivelyActive(user directory.User, today time.Time) bool {
	return EffectiveStatusOf(user, today) == directory.StatusNormal
}
