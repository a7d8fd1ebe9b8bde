package medic

import "context"

type MedicService interface {
	Identify(ctx context.Context, req IdentifyRequest) (IdentifyResponse, error)
	ListDoctors(ctx context.Context, req ListDoctorsRequest) (DoctorsResponse, error)
	ListInstructors(ctx context.Context) (DoctorsResponse, error)
}
