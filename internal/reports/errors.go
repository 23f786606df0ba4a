package reports

import "errors"

var (
	ErrClinicNotFound = errors.New("clinic not found")
	ErrInvalidWindow  = errors.New("reporting window must be positive")
)
