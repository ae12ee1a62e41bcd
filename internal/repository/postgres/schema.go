package postgres

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"
)

var schema = []string{
	`CREATE TABLE IF NOT EXISTS workers (
		health_id VARCHAR(32) PRIMARY KEY,
		full_name VARCHAR(120) NOT NULL DEFAULT '',
		age INTEGER,
		gender VARCHAR(16) NOT NULL DEFAULT '',
		phone VARCHAR(32) NOT NULL DEFAULT '',
		address VARCHAR(255) NOT NULL DEFAULT '',
		native_state VARCHAR(64) NOT NULL DEFAULT '',
		blood_group VARCHAR(8) NOT NULL DEFAULT '',
		marital_status VARCHAR(24) NOT NULL DEFAULT '',
		language VARCHAR(16) NOT NULL DEFAULT '',
		financial_status VARCHAR(32) NOT NULL DEFAULT '',
		allergies VARCHAR(255) NOT NULL DEFAULT '',
		conditions VARCHAR(255) NOT NULL DEFAULT '',
		inherited_diseases VARCHAR(255) NOT NULL DEFAULT '',
		previous_treatments TEXT NOT NULL DEFAULT '',
		vaccination_count INTEGER NOT NULL DEFAULT 0,
		registration_date DATE NOT NULL DEFAULT CURRENT_DATE,
		face_filename VARCHAR(128) NOT NULL DEFAULT '',
		qr_filename VARCHAR(128) NOT NULL DEFAULT ''
	)`,
	`CREATE TABLE IF NOT EXISTS doctors (
		id UUID PRIMARY KEY,
		code VARCHAR(32) UNIQUE NOT NULL,
		full_name VARCHAR(120) NOT NULL,
		speciality VARCHAR(64) NOT NULL DEFAULT '',
		phone VARCHAR(32) NOT NULL DEFAULT ''
	)`,
	`CREATE TABLE IF NOT EXISTS appointments (
		id UUID PRIMARY KEY,
		worker_health_id VARCHAR(32) NOT NULL REFERENCES workers(health_id) ON DELETE CASCADE,
		doctor_id UUID REFERENCES doctors(id) ON DELETE SET NULL,
		doctor_speciality VARCHAR(64) NOT NULL DEFAULT '',
		status VARCHAR(24) NOT NULL DEFAULT 'pending',
		requested_time VARCHAR(64) NOT NULL DEFAULT '',
		created_at TIMESTAMPTZ NOT NULL DEFAULT now()
	)`,
	`CREATE TABLE IF NOT EXISTS feedback (
		id UUID PRIMARY KEY,
		worker_health_id VARCHAR(32) NOT NULL REFERENCES workers(health_id) ON DELETE CASCADE,
		doctor_id UUID REFERENCES doctors(id) ON DELETE SET NULL,
		rating INTEGER,
		message TEXT NOT NULL DEFAULT '',
		created_at TIMESTAMPTZ NOT NULL DEFAULT now()
	)`,
	`CREATE INDEX IF NOT EXISTS idx_appointments_created_at ON appointments (created_at DESC)`,
	`CREATE INDEX IF NOT EXISTS idx_workers_registration_date ON workers (registration_date DESC)`,
}

// Migrate creates the tables this service owns. Statements are idempotent
// so startup can run them unconditionally.
func Migrate(ctx context.Context, db *sqlx.DB) error {
	for _, stmt := range schema {
		if _, err := db.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("failed to apply schema: %w", err)
		}
	}
	return nil
}
