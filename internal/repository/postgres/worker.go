package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/jmoiron/sqlx"

	"github.com/apnaswastha/registry-api/internal/model"
	"github.com/apnaswastha/registry-api/internal/repository"
	"github.com/apnaswastha/registry-api/pkg/apperror"
)

type workerRepository struct {
	db *sqlx.DB
}

func NewWorkerRepository(db *sqlx.DB) repository.WorkerRepository {
	return &workerRepository{db: db}
}

const workerColumns = `health_id, full_name, COALESCE(age, 0) AS age, gender, phone, address,
	native_state, blood_group, marital_status, language, financial_status,
	allergies, conditions, inherited_diseases, previous_treatments, vaccination_count,
	to_char(registration_date, 'YYYY-MM-DD') AS registration_date, face_filename, qr_filename`

// Upsert is a single INSERT ... ON CONFLICT statement, so concurrent
// writers for the same health ID cannot lose updates or duplicate rows.
func (r *workerRepository) Upsert(ctx context.Context, worker *model.Worker) error {
	if strings.TrimSpace(worker.HealthID) == "" {
		return apperror.NewValidation("healthId is required")
	}

	query := `
		INSERT INTO workers (
			health_id, full_name, age, gender, phone, address, native_state,
			blood_group, marital_status, language, financial_status,
			allergies, conditions, inherited_diseases, previous_treatments,
			vaccination_count, registration_date, face_filename, qr_filename
		) VALUES (
			$1, $2, NULLIF($3, 0), $4, $5, $6, $7, $8, $9, $10, $11,
			$12, $13, $14, $15, $16, $17::date, $18, $19
		)
		ON CONFLICT (health_id) DO UPDATE SET
			full_name = EXCLUDED.full_name,
			age = EXCLUDED.age,
			gender = EXCLUDED.gender,
			phone = EXCLUDED.phone,
			address = EXCLUDED.address,
			native_state = EXCLUDED.native_state,
			blood_group = EXCLUDED.blood_group,
			marital_status = EXCLUDED.marital_status,
			language = EXCLUDED.language,
			financial_status = EXCLUDED.financial_status,
			allergies = EXCLUDED.allergies,
			conditions = EXCLUDED.conditions,
			inherited_diseases = EXCLUDED.inherited_diseases,
			previous_treatments = EXCLUDED.previous_treatments,
			vaccination_count = EXCLUDED.vaccination_count,
			registration_date = EXCLUDED.registration_date,
			face_filename = EXCLUDED.face_filename,
			qr_filename = EXCLUDED.qr_filename
	`

	_, err := r.db.ExecContext(ctx, query,
		worker.HealthID,
		worker.FullName,
		worker.Age,
		worker.Gender,
		worker.Phone,
		worker.Address,
		worker.NativeState,
		worker.BloodGroup,
		worker.MaritalStatus,
		worker.Language,
		worker.FinancialStatus,
		worker.Allergies,
		worker.Conditions,
		worker.InheritedDiseases,
		worker.PreviousTreatments,
		worker.VaccinationCount,
		worker.RegistrationDate,
		worker.FaceFilename,
		worker.QRFilename,
	)
	if err != nil {
		return fmt.Errorf("failed to upsert worker: %w", err)
	}
	return nil
}

func (r *workerRepository) GetByHealthID(ctx context.Context, healthID string) (*model.Worker, error) {
	query := fmt.Sprintf(`SELECT %s FROM workers WHERE health_id = $1`, workerColumns)

	var worker model.Worker
	err := r.db.GetContext(ctx, &worker, query, healthID)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, apperror.NewNotFound("worker")
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get worker: %w", err)
	}
	return &worker, nil
}

func (r *workerRepository) List(ctx context.Context, limit int) ([]*model.Worker, error) {
	query := fmt.Sprintf(`SELECT %s FROM workers ORDER BY registration_date DESC LIMIT $1`, workerColumns)

	var workers []*model.Worker
	if err := r.db.SelectContext(ctx, &workers, query, limit); err != nil {
		return nil, fmt.Errorf("failed to list workers: %w", err)
	}
	return workers, nil
}
