package workflow

import (
	"errors"
	"fmt"
)

var (
	ErrRequestNotFound   = errors.New("request not found")
	ErrApplicantNotFound = errors.New("applicant not found")
	ErrForbidden         = errors.New("forbidden")
	ErrAlreadyDecided    = fmt.Errorf("%w: request already decided", ErrForbidden)
	ErrInvalidDecision   = errors.New("decision must be approved or rejected")
	ErrInvalidType       = errors.New("invalid request type")
	ErrContentRequired   = errors.New("content is required")
	ErrAmountRequired    = errors.New("funding requests need a positive amount")
	ErrEndDateRequired   = errors.New("temporary suspension needs an end date")
	ErrInvalidDateRange  = errors.New("start date is after end date")
)
