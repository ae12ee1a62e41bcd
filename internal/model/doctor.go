package model

import "github.com/google/uuid"

// Doctor is static reference data, seeded once at bootstrap.
type Doctor struct {
	ID         uuid.UUID `db:"id" json:"id"`
	Code       string    `db:"code" json:"code"`
	FullName   string    `db:"full_name" json:"full_name"`
	Speciality string    `db:"speciality" json:"speciality"`
	Phone      string    `db:"phone" json:"phone"`
}
