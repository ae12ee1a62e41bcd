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

type feedbackRepository struct {
	db *sqlx.DB
}

func NewFeedbackRepository(db *sqlx.DB) repository.FeedbackRepository {
	return &feedbackRepository{db: db}
}

func (r *feedbackRepository) Create(ctx context.Context, feedback *model.Feedback) error {
	if feedback.ID == uuid.Nil {
		feedback.ID = uuid.New()
	}
	if feedback.CreatedAt.IsZero() {
		feedback.CreatedAt = time.Now().UTC()
	}

	query := `
		INSERT INTO feedback (id, worker_health_id, doctor_id, rating, message, created_at)
		VALUES ($1, $2, $3, NULLIF($4, 0), $5, $6)
	`
	_, err := r.db.ExecContext(ctx, query,
		feedback.ID,
		feedback.WorkerHealthID,
		feedback.DoctorID,
		feedback.Rating,
		feedback.Message,
		feedback.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to create feedback: %w", err)
	}
	return nil
}
