package worklog_service

import "errors"

var (
	ErrInvalidInput  = errors.New("invalid input")
	ErrInvalidPeriod = errors.New("invalid summary period")
)
