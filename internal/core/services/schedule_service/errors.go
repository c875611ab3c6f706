package schedule_service

import "errors"

var (
	ErrInvalidInput = errors.New("invalid input")
	ErrFetchSlots   = errors.New("failed to fetch slots")
	ErrFetchAppts   = errors.New("failed to fetch appointments")
)
