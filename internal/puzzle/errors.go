package puzzle

import "errors"

// ErrAlreadyLogged is returned when a time already exists for the target date.
var ErrAlreadyLogged = errors.New("time already logged for this date")

// ErrFutureDate rejects entries dated after today.
var ErrFutureDate = errors.New("date cannot be in the future")

// ErrInvalidSeconds indicates a non-positive solve duration.
var ErrInvalidSeconds = errors.New("seconds must be a positive number")

// ErrNotFound is returned when no record exists for the requested date.
var ErrNotFound = errors.New("record not found")
