package care

import "errors"

var (
	ErrBeneficiaryNotFound = errors.New("beneficiary not found")
	ErrVolunteerNotFound   = errors.New("volunteer not found")
	ErrForbidden           = errors.New("forbidden")
	ErrNameRequired        = errors.New("name is required")
)
