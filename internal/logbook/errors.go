package logbook

import "errors"

// ErrSectionNotFound is returned when the targeted date heading cannot be located.
var ErrSectionNotFound = errors.New("date section not found")
