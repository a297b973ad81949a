package servicelog

import "errors"

var (
	ErrBeneficiaryNotFound = errors.New("beneficiary not found")
	ErrContentRequired     = errors.New("content is required")
)
