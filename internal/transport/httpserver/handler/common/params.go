package common

import (
	"strings"
	"time"

	"care-hub-go/internal/domain/clock"
)

func ParseDateParam(value string) (*time.Time, error) {
	value = strings.TrimSpace(value)
	if value == "" {
		return nil, nil
	}
	parsed, err := clock.ParseDate(value)
	if err != nil {
		return nil, err
	}
	return &parsed, nil
}

func ParseDatePtr(value *string) (*time.Time, error) {
	if value == nil {
		return nil, nil
	}
	return ParseDateParam(*value)
}
