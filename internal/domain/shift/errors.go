package shift

import "errors"

var (
	ErrMedicRequired   = errors.New("medic name is required")
	ErrShiftSheetWrite = errors.New("failed to write shift to sheet")
)
