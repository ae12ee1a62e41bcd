package model

import (
	"time"

	"github.com/google/uuid"
)

type Feedback struct {
	ID             uuid.UUID  `db:"id" json:"id"`
	WorkerHealthID string     `db:"worker_health_id" json:"worker_health_id"`
	DoctorID       *uuid.UUID `db:"doctor_id" json:"doctor_id,omitempty"`
	Rating         int        `db:"rating" json:"rating"`
	Message        string     `db:"message" json:"message"`
	CreatedAt      time.Time  `db:"created_at" json:"created_at"`
}

type CreateFeedbackRequest struct {
	HealthID string      `json:"healthId"`
	Rating   interface{} `json:"rating"`
	Message  string      `json:"message"`
}
