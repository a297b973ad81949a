package account

import "errors"

var ErrTooShort = errors.New("password too short")
