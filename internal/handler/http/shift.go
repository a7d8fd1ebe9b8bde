package http

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/medicshift/shift-report-backend/internal/domain/shift"
	"github.com/medicshift/shift-report-backend/internal/handler/http/response"
	"github.com/medicshift/shift-report-backend/internal/pkg/jwt"
)

const maxShiftBodyBytes = 64 << 10

type ShiftHandler interface {
	Submit(w http.ResponseWriter, r *http.Request)
}

type shiftHandlerImpl struct {
	shiftService shift.ShiftService
}

func NewShiftHandler(shiftService shift.ShiftService) ShiftHandler {
	return &shiftHandlerImpl{shiftService: shiftService}
}

// Submit implements ShiftHandler. The medic name comes from the access token,
// never from the request body.
func (h *shiftHandlerImpl) Submit(w http.ResponseWriter, r *http.Request) {
	claims, err := jwt.MedicFromContext(r.Context())
	if err != nil {
		response.HandleError(w, err)
		return
	}

	var req shift.SubmitShiftRequest
	r.Body = http.MaxBytesReader(w, r.Body, maxShiftBodyBytes)
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		slog.Error("Submit shift decode error", "error", err)
		response.BadRequest(w, "Invalid request format", nil)
		return
	}

	result, err := h.shiftService.Submit(r.Context(), claims.MedicName, req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	if result.Demo {
		response.SuccessWithMessage(w, "Demo shift validated, nothing was saved", result)
		return
	}
	response.Created(w, "Shift submitted successfully", result)
}
