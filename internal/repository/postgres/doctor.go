package postgres

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"github.com/apnaswastha/registry-api/internal/model"
	"github.com/apnaswastha/registry-api/internal/repository"
)

type doctorRepository struct {
	db *sqlx.DB
}

func NewDoctorRepository(db *sqlx.DB) repository.DoctorRepository {
	return &doctorRepository{db: db}
}

func (r *doctorRepository) Count(ctx context.Context) (int, error) {
	var count int
	if err := r.db.GetContext(ctx, &count, `SELECT COUNT(*) FROM doctors`); err != nil {
		return 0, fmt.Errorf("failed to count doctors: %w", err)
	}
	return count, nil
}

// Seed inserts the reference doctors, skipping codes that already exist.
func (r *doctorRepository) Seed(ctx context.Context, doctors []model.Doctor) error {
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin seed transaction: %w", err)
	}
	defer tx.Rollback()

	query := `
		INSERT INTO doctors (id, code, full_name, speciality, phone)
		VALUES ($1, $2, $3, $4, $5)
		ON CONFLICT (code) DO NOTHING
	`
	for _, doctor := range doctors {
		if doctor.ID == uuid.Nil {
			doctor.ID = uuid.New()
		}
		if _, err := tx.ExecContext(ctx, query,
			doctor.ID, doctor.Code, doctor.FullName, doctor.Speciality, doctor.Phone,
		); err != nil {
			return fmt.Errorf("failed to seed doctor %s: %w", doctor.Code, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit doctor seed: %w", err)
	}
	return nil
}

// ReferenceDoctors is the static seed set inserted at bootstrap.
func ReferenceDoctors() []model.Doctor {
	rows := []struct {
		code, name, speciality string
	}{
		{"D001", "Dr. Sharma", "Cardiology"},
		{"D002", "Dr. Patel", "Pulmonology"},
		{"D003", "Dr. Singh", "General"},
		{"D004", "Dr. Rao", "Endocrinology"},
		{"D005", "Dr. Iyer", "Orthopedics"},
		{"D006", "Dr. Khan", "Dermatology"},
		{"D007", "Dr. Das", "Neurology"},
		{"D008", "Dr. Nair", "ENT"},
		{"D009", "Dr. Banerjee", "Pediatrics"},
		{"D010", "Dr. Verma", "Gastroenterology"},
	}

	doctors := make([]model.Doctor, 0, len(rows))
	for i, s := range rows {
		doctors = append(doctors, model.Doctor{
			ID:         uuid.New(),
			Code:       s.code,
			FullName:   s.name,
			Speciality: s.speciality,
			Phone:      fmt.Sprintf("90000000%02d", i),
		})
	}
	return doctors
}
