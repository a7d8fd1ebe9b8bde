package sheet

import (
	"context"
	"errors"
	"fmt"

	"github.com/medicshift/shift-report-backend/internal/domain/shift"
	"github.com/medicshift/shift-report-backend/internal/pkg/sheets"
	"github.com/medicshift/shift-report-backend/internal/pkg/shifttime"
)

type shiftRepository struct {
	store sheets.Store
	sheet string
}

func NewShiftRepository(store sheets.Store, sheet string) shift.ShiftRepository {
	return &shiftRepository{store: store, sheet: sheet}
}

func (r *shiftRepository) List(ctx context.Context) ([]shifttime.ShiftRecord, error) {
	rows, err := r.store.ReadRows(ctx, r.sheet)
	if err != nil {
		if errors.Is(err, sheets.ErrSheetNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("read %s: %w", r.sheet, err)
	}

	data := sheets.DataRows(rows)
	records := make([]shifttime.ShiftRecord, 0, len(data))
	for _, row := range data {
		records = append(records, shifttime.RecordFromRow(row.Cells, row.Number))
	}
	return records, nil
}

func (r *shiftRepository) Append(ctx context.Context, s shift.Shift) error {
	if err := r.store.AppendRow(ctx, r.sheet, s.Row()); err != nil {
		return fmt.Errorf("%w: %w", shift.ErrShiftSheetWrite, err)
	}
	return nil
}
