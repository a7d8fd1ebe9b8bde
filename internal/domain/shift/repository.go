package shift

import (
	"context"

	"github.com/medicshift/shift-report-backend/internal/pkg/shifttime"
)

type ShiftRepository interface {
	// List returns every shift row, header excluded. A missing sheet yields
	// no records.
	List(ctx context.Context) ([]shifttime.ShiftRecord, error)
	Append(ctx context.Context, s Shift) error
}
