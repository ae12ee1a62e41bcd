package appointment

import (
	"context"
	"strings"

	"github.com/apnaswastha/registry-api/internal/model"
	"github.com/apnaswastha/registry-api/internal/repository"
	"github.com/apnaswastha/registry-api/pkg/apperror"
)

const listLimit = 200

type Service struct {
	repo    repository.AppointmentRepository
	workers repository.WorkerRepository
}

func NewService(repo repository.AppointmentRepository, workers repository.WorkerRepository) *Service {
	return &Service{repo: repo, workers: workers}
}

// CreateAppointment records a pending appointment request for an existing
// worker. Status transitions have no endpoint; every appointment is
// created as pending.
func (s *Service) CreateAppointment(ctx context.Context, req *model.CreateAppointmentRequest) (*model.Appointment, error) {
	healthID := strings.TrimSpace(req.HealthID)
	if healthID == "" {
		return nil, apperror.NewValidation("healthId is required")
	}

	if _, err := s.workers.GetByHealthID(ctx, healthID); err != nil {
		return nil, err
	}

	appointment := &model.Appointment{
		WorkerHealthID:   healthID,
		DoctorSpeciality: strings.TrimSpace(req.Speciality),
		RequestedTime:    strings.TrimSpace(req.RequestedTime),
		Status:           model.AppointmentStatusPending,
	}
	if err := s.repo.Create(ctx, appointment); err != nil {
		return nil, err
	}
	return appointment, nil
}

func (s *Service) ListAppointments(ctx context.Context) ([]*model.AppointmentListing, error) {
	return s.repo.List(ctx, listLimit)
}
