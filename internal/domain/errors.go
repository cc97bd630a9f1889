package domain

import "errors"

// ErrSeriesLength is returned when a turn-aligned series does not match
// the length of the report's turn axis.
var ErrSeriesLength = errors.New("series length does not match turn axis")
