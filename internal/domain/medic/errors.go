package medic

import "errors"

var (
	ErrMedicNotFound = errors.New("medic not found")
)
