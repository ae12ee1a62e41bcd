package model

import (
	"time"

	"github.com/google/uuid"
)

type AppointmentStatus string

const (
	AppointmentStatusPending   AppointmentStatus = "pending"
	AppointmentStatusConfirmed AppointmentStatus = "confirmed"
	AppointmentStatusCompleted AppointmentStatus = "completed"
	AppointmentStatusCancelled AppointmentStatus = "cancelled"
)

type Appointment struct {
	ID               uuid.UUID         `db:"id" json:"id"`
	WorkerHealthID   string            `db:"worker_health_id" json:"worker_health_id"`
	DoctorID         *uuid.UUID        `db:"doctor_id" json:"doctor_id,omitempty"`
	DoctorSpeciality string            `db:"doctor_speciality" json:"doctor_speciality"`
	Status           AppointmentStatus `db:"status" json:"status"`
	RequestedTime    string            `db:"requested_time" json:"requested_time"`
	CreatedAt        time.Time         `db:"created_at" json:"created_at"`
}

type CreateAppointmentRequest struct {
	HealthID      string `json:"healthId"`
	Speciality    string `json:"speciality"`
	RequestedTime string `json:"requestedTime"`
}

// AppointmentListing joins an appointment with the worker and doctor it references.
type AppointmentListing struct {
	ID             uuid.UUID  `db:"id" json:"id"`
	WorkerHealthID *string    `db:"worker_health_id" json:"workerHealthId"`
	WorkerName     *string    `db:"worker_name" json:"workerName"`
	DoctorID       *uuid.UUID `db:"doctor_id" json:"doctorId"`
	DoctorName     *string    `db:"doctor_name" json:"doctorName"`
	Speciality     *string    `db:"doctor_speciality" json:"speciality"`
	Status         string     `db:"status" json:"status"`
	RequestedTime  *string    `db:"requested_time" json:"requestedTime"`
	CreatedAt      time.Time  `db:"created_at" json:"createdAt"`
}
