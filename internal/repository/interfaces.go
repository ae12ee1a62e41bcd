package repository

import (
	"context"

	"github.com/apnaswastha/registry-api/internal/model"
)

// WorkerRepository is the durable mapping from a health ID to its
// registration record. Upsert replaces all mutable fields in place;
// the same health ID never maps to more than one record.
type WorkerRepository interface {
	Upsert(ctx context.Context, worker *model.Worker) error
	GetByHealthID(ctx context.Context, healthID string) (*model.Worker, error)
	List(ctx context.Context, limit int) ([]*model.Worker, error)
}

type AppointmentRepository interface {
	Create(ctx context.Context, appointment *model.Appointment) error
	List(ctx context.Context, limit int) ([]*model.AppointmentListing, error)
}

type FeedbackRepository interface {
	Create(ctx context.Context, feedback *model.Feedback) error
}

type DoctorRepository interface {
	Seed(ctx context.Context, doctors []model.Doctor) error
	Count(ctx context.Context) (int, error)
}
