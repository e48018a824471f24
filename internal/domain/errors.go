package domain

import "errors"

// ErrNonFutureRetirement is returned when the requested retirement age or date
// does not lie strictly after the reference date of the projection.
var ErrNonFutureRetirement = errors.New("target retirement age must be in the future")
