package medic

import "context"

type MedicRepository interface {
	// FindByID matches a normalized ID against the directory. It returns
	// ErrMedicNotFound when no row matches.
	FindByID(ctx context.Context, id string) (Medic, error)
}

type DoctorRepository interface {
	List(ctx context.Context) ([]Doctor, error)
}
