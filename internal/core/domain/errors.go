package domain

import "errors"

var (
	ErrPollNotFound      = errors.New("poll not found")
	ErrInvalidPollID     = errors.New("invalid poll id")
	ErrInvalidDateRange  = errors.New("start date is after end date")
	ErrEmptyRespondent   = errors.New("respondent name is required")
	ErrUnknownCoordinate = errors.New("grid cell outside the poll's slot coordinates")
	ErrResponseNotFound  = errors.New("response not found")
	ErrCategoryNotFound  = errors.New("category not found")
	ErrInternal          = errors.New("internal server error")
)
