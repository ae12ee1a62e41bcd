package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"github.com/apnaswastha/registry-api/internal/model"
	"github.com/apnaswastha/registry-api/internal/repository"
)

type appointmentRepository struct {
	db *sqlx.DB
}

func NewAppointmentRepository(db *sqlx.DB) repository.AppointmentRepository {
	return &appointmentRepository{db: db}
}

func (r *appointmentRepository) Create(ctx context.Context, appointment *model.Appointment) error {
	if appointment.ID == uuid.Nil {
		appointment.ID = uuid.New()
	}
	if appointment.CreatedAt.IsZero() {
		appointment.CreatedAt = time.Now().UTC()
	}

	query := `
		INSERT INTO appointments (id, worker_health_id, doctor_id, doctor_speciality, status, requested_time, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
	`
	_, err := r.db.ExecContext(ctx, query,
		appointment.ID,
		appointment.WorkerHealthID,
		appointment.DoctorID,
		appointment.DoctorSpeciality,
		appointment.Status,
		appointment.RequestedTime,
		appointment.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to create appointment: %w", err)
	}
	return nil
}

func (r *appointmentRepository) List(ctx context.Context, limit int) ([]*model.AppointmentListing, error) {
	query := `
		SELECT a.id,
		       w.health_id AS worker_health_id,
		       w.full_name AS worker_name,
		       a.doctor_id,
		       d.full_name AS doctor_name,
		       a.doctor_speciality,
		       a.status,
		       a.requested_time,
		       a.created_at
		FROM appointments a
		LEFT JOIN workers w ON w.health_id = a.worker_health_id
		LEFT JOIN doctors d ON d.id = a.doctor_id
		ORDER BY a.created_at DESC
		LIMIT $1
	`
	var listings []*model.AppointmentListing
	if err := r.db.SelectContext(ctx, &listings, query, limit); err != nil {
		return nil, fmt.Errorf("failed to list appointments: %w", err)
	}
	return listings, nil
}
