package medic

import (
	"github.com/medicshift/shift-report-backend/internal/domain/shift"
)

// Column positions in the directory sheets.
const (
	MedicColName = 1
	MedicColID   = 5

	DoctorColName      = 0
	DoctorColShiftType = 1
)

type Medic struct {
	ID   string
	Name string
}

type Doctor struct {
	Name      string
	ShiftType shift.ShiftType
}

// Serves reports whether the doctor may be picked for t. Doctors without a
// shift type serve every type.
func (d Doctor) Serves(t shift.ShiftType) bool {
	return d.ShiftType == "" || d.ShiftType == t
}
