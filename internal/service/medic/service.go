package medic

import (
	"context"
	"fmt"
	"log/slog"
	"slices"

	"github.com/medicshift/shift-report-backend/internal/domain/medic"
	"github.com/medicshift/shift-report-backend/internal/domain/shift"
	"github.com/medicshift/shift-report-backend/internal/pkg/fingerprint"
	"github.com/medicshift/shift-report-backend/internal/pkg/jwt"
	"github.com/medicshift/shift-report-backend/internal/pkg/validator"
)

type MedicServiceImpl struct {
	medicRepo     medic.MedicRepository
	doctorRepo    medic.DoctorRepository
	jwtService    jwt.Service
	fingerprinter *fingerprint.Fingerprinter
}

func NewMedicService(
	medicRepo medic.MedicRepository,
	doctorRepo medic.DoctorRepository,
	jwtService jwt.Service,
	fingerprinter *fingerprint.Fingerprinter,
) medic.MedicService {
	return &MedicServiceImpl{
		medicRepo:     medicRepo,
		doctorRepo:    doctorRepo,
		jwtService:    jwtService,
		fingerprinter: fingerprinter,
	}
}

// Identify looks the medic up by ID number and issues an access token naming
// them. The raw ID never leaves this function; logs and the token carry a
// fingerprint instead.
func (s *MedicServiceImpl) Identify(ctx context.Context, req medic.IdentifyRequest) (medic.IdentifyResponse, error) {
	if err := req.Validate(); err != nil {
		return medic.IdentifyResponse{}, err
	}

	id := validator.NormalizeMedicID(req.MedicID)
	ref := s.fingerprinter.Of(id)

	m, err := s.medicRepo.FindByID(ctx, id)
	if err != nil {
		slog.Info("Medic lookup failed", "medic_ref", ref, "error", err)
		return medic.IdentifyResponse{}, err
	}

	token, expiresAt, err := s.jwtService.GenerateAccessToken(m.Name, ref)
	if err != nil {
		return medic.IdentifyResponse{}, fmt.Errorf("failed to generate access token: %w", err)
	}

	slog.Info("Medic identified", "medic_ref", ref)
	return medic.IdentifyResponse{
		Name:        m.Name,
		AccessToken: token,
		ExpiresAt:   expiresAt,
	}, nil
}

// ListDoctors returns the names of doctors serving the requested shift type,
// or every doctor when no type is given. Names are unique and keep sheet order.
func (s *MedicServiceImpl) ListDoctors(ctx context.Context, req medic.ListDoctorsRequest) (medic.DoctorsResponse, error) {
	if err := req.Validate(); err != nil {
		return medic.DoctorsResponse{}, err
	}

	doctors, err := s.doctorRepo.List(ctx)
	if err != nil {
		return medic.DoctorsResponse{}, fmt.Errorf("failed to list doctors: %w", err)
	}

	names := make([]string, 0, len(doctors))
	for _, d := range doctors {
		if req.ShiftType != "" && !d.Serves(req.ShiftType) {
			continue
		}
		if slices.Contains(names, d.Name) {
			continue
		}
		names = append(names, d.Name)
	}
	return medic.DoctorsResponse{Doctors: names}, nil
}

// ListInstructors returns the people who may run a training shift.
func (s *MedicServiceImpl) ListInstructors(ctx context.Context) (medic.DoctorsResponse, error) {
	return s.ListDoctors(ctx, medic.ListDoctorsRequest{ShiftType: shift.ShiftTypeTraining})
}
