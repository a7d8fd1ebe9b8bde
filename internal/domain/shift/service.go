package shift

import "context"

type ShiftService interface {
	Submit(ctx context.Context, medicName string, req SubmitShiftRequest) (SubmitShiftResponse, error)
}
