package sheet

import (
	"context"
	"errors"
	"fmt"

	"github.com/medicshift/shift-report-backend/internal/domain/medic"
	"github.com/medicshift/shift-report-backend/internal/domain/shift"
	"github.com/medicshift/shift-report-backend/internal/pkg/sheets"
	"github.com/medicshift/shift-report-backend/internal/pkg/shifttime"
	"github.com/medicshift/shift-report-backend/internal/pkg/validator"
)

type medicRepository struct {
	store sheets.Store
	sheet string
}

func NewMedicRepository(store sheets.Store, sheet string) medic.MedicRepository {
	return &medicRepository{store: store, sheet: sheet}
}

// FindByID compares digits only, so "012-345678" in the sheet matches
// "012345678".
func (r *medicRepository) FindByID(ctx context.Context, id string) (medic.Medic, error) {
	want := validator.NormalizeMedicID(id)
	if want == "" {
		return medic.Medic{}, medic.ErrMedicNotFound
	}

	rows, err := r.store.ReadRows(ctx, r.sheet)
	if err != nil {
		if errors.Is(err, sheets.ErrSheetNotFound) {
			return medic.Medic{}, medic.ErrMedicNotFound
		}
		return medic.Medic{}, fmt.Errorf("read %s: %w", r.sheet, err)
	}

	for _, row := range sheets.DataRows(rows) {
		if validator.NormalizeMedicID(shifttime.Cell(row.Cells, medic.MedicColID)) != want {
			continue
		}
		name := shifttime.Cell(row.Cells, medic.MedicColName)
		if name == "" {
			continue
		}
		return medic.Medic{ID: want, Name: name}, nil
	}
	return medic.Medic{}, medic.ErrMedicNotFound
}

type doctorRepository struct {
	store sheets.Store
	sheet string
}

func NewDoctorRepository(store sheets.Store, sheet string) medic.DoctorRepository {
	return &doctorRepository{store: store, sheet: sheet}
}

func (r *doctorRepository) List(ctx context.Context) ([]medic.Doctor, error) {
	rows, err := r.store.ReadRows(ctx, r.sheet)
	if err != nil {
		if errors.Is(err, sheets.ErrSheetNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("read %s: %w", r.sheet, err)
	}

	var doctors []medic.Doctor
	for _, row := range sheets.DataRows(rows) {
		name := shifttime.Cell(row.Cells, medic.DoctorColName)
		if name == "" {
			continue
		}
		doctors = append(doctors, medic.Doctor{
			Name:      name,
			ShiftType: shift.ShiftType(shifttime.Cell(row.Cells, medic.DoctorColShiftType)),
		})
	}
	return doctors, nil
}
