package domain

import (
	"time"

	"github.com/google/uuid"
)

// Customer represents a registered clinic patient
type Customer struct {
	ID               uuid.UUID `json:"id" db:"id"`
	Name             string    `json:"name" db:"name"`
	Phone            string    `json:"phone" db:"phone"`
	Email            string    `json:"email" db:"email"`
	Address          string    `json:"address" db:"address"`
	DateOfBirth      string    `json:"date_of_birth" db:"date_of_birth"`
	Gender           string    `json:"gender" db:"gender"`
	PatientID        string    `json:"patient_id" db:"patient_id"`
	EmergencyContact string    `json:"emergency_contact" db:"emergency_contact"`
	MedicalHistory   string    `json:"medical_history" db:"medical_history"`
	Allergies        string    `json:"allergies" db:"allergies"`
	CreatedAt        time.Time `json:"created_at" db:"created_at"`
}
