package directory

import "errors"

var (
	ErrUserNotFound          = errors.New("user not found")
	ErrLeaderNotFound        = errors.New("leader not found")
	ErrInvalidLeader         = errors.New("leader reference must point to a leader")
	ErrDuplicateUsername     = errors.New("username already exists")
	ErrTeamFull              = errors.New("team is full")
	ErrLeaderHasTeam         = errors.New("leader still has team members")
	ErrForbidden             = errors.New("forbidden")
	ErrInvalidRole           = errors.New("invalid role")
	ErrInvalidStatus         = errors.New("invalid status")
	ErrNameRequired          = errors.New("name is required")
	ErrSuspensionEndRequired = errors.New("suspension end date is required")
)
