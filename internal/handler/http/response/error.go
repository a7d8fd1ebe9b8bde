package response

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/medicshift/shift-report-backend/internal/domain/medic"
	"github.com/medicshift/shift-report-backend/internal/domain/report"
	"github.com/medicshift/shift-report-backend/internal/domain/shift"
	"github.com/medicshift/shift-report-backend/internal/pkg/jwt"
	"github.com/medicshift/shift-report-backend/internal/pkg/validator"
)

// HandleError maps domain errors to HTTP responses
func HandleError(w http.ResponseWriter, err error) {
	// Check if it's a validation error
	var validationErrs validator.ValidationErrors
	if errors.As(err, &validationErrs) {
		ValidationError(w, validationErrs.ToMap())
		return
	}

	switch {
	// Medic domain errors
	case errors.Is(err, medic.ErrMedicNotFound):
		NotFound(w, "Medic not found")

	// Identity errors
	case errors.Is(err, jwt.ErrMissingMedic), errors.Is(err, shift.ErrMedicRequired):
		Unauthorized(w, "Medic identity is required")

	// Datastore errors
	case errors.Is(err, shift.ErrShiftSheetWrite):
		slog.Error("Shift write failed", "error", err)
		BadGateway(w, "Failed to save shift, please try again")
	case errors.Is(err, report.ErrReportUnavailable):
		slog.Error("Report data unavailable", "error", err)
		ServiceUnavailable(w, "Shift data is temporarily unavailable")

	// Default
	default:
		slog.Error("Unhandled error", "error", err)
		InternalServerError(w, "An unexpected error occurred")
	}
}
