package medic

import (
	"github.com/medicshift/shift-report-backend/internal/domain/shift"
	"github.com/medicshift/shift-report-backend/internal/pkg/validator"
)

type IdentifyRequest struct {
	MedicID string
}

func (r *IdentifyRequest) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.MedicID) {
		errs = append(errs, validator.ValidationError{Field: "medic_id", Message: "medic_id is required"})
	} else if !validator.IsValidMedicID(r.MedicID) {
		errs = append(errs, validator.ValidationError{Field: "medic_id", Message: "medic_id must contain 5 to 9 digits"})
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

type IdentifyResponse struct {
	Name        string `json:"name"`
	AccessToken string `json:"access_token"`
	ExpiresAt   int64  `json:"expires_at"`
}

type ListDoctorsRequest struct {
	ShiftType shift.ShiftType
}

func (r *ListDoctorsRequest) Validate() error {
	if r.ShiftType != "" && !r.ShiftType.IsValid() {
		return validator.ValidationErrors{{Field: "shift_type", Message: "unknown shift type"}}
	}
	return nil
}

type DoctorsResponse struct {
	Doctors []string `json:"doctors"`
}
