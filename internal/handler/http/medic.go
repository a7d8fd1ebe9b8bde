package http

import (
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/medicshift/shift-report-backend/internal/domain/medic"
	"github.com/medicshift/shift-report-backend/internal/domain/shift"
	"github.com/medicshift/shift-report-backend/internal/handler/http/response"
)

type MedicHandler interface {
	Identify(w http.ResponseWriter, r *http.Request)
	ListDoctors(w http.ResponseWriter, r *http.Request)
	ListInstructors(w http.ResponseWriter, r *http.Request)
}

type medicHandlerImpl struct {
	medicService medic.MedicService
}

func NewMedicHandler(medicService medic.MedicService) MedicHandler {
	return &medicHandlerImpl{medicService: medicService}
}

// Identify implements MedicHandler.
func (h *medicHandlerImpl) Identify(w http.ResponseWriter, r *http.Request) {
	req := medic.IdentifyRequest{MedicID: chi.URLParam(r, "medicID")}

	result, err := h.medicService.Identify(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}

// ListDoctors implements MedicHandler.
func (h *medicHandlerImpl) ListDoctors(w http.ResponseWriter, r *http.Request) {
	req := medic.ListDoctorsRequest{
		ShiftType: shift.ShiftType(strings.TrimSpace(r.URL.Query().Get("shift_type"))),
	}

	result, err := h.medicService.ListDoctors(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}

// ListInstructors implements MedicHandler.
func (h *medicHandlerImpl) ListInstructors(w http.ResponseWriter, r *http.Request) {
	result, err := h.medicService.ListInstructors(r.Context())
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}
