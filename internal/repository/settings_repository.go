package repository

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"

	"clinic-pos/internal/domain"
)

// SettingsRepository defines the interface for the single-row clinic settings
type SettingsRepository interface {
	Get(ctx context.Context) (*domain.Settings, error)
	Save(ctx context.Context, settings *domain.Settings) error
}

type settingsRepository struct {
	db *sql.DB
}

// NewSettingsRepository creates a new instance of SettingsRepository
func NewSettingsRepository(db *sql.DB) SettingsRepository {
	return &settingsRepository{db: db}
}

// Get retrieves the clinic settings, falling back to defaults when the clinic
// has never saved its own.
func (r *settingsRepository) Get(ctx context.Context) (*domain.Settings, error) {
	query := `
		SELECT clinic_name, doctor_name, clinic_address, clinic_phone, clinic_email,
		    license_number, consultation_charge, tax_rate, categories
		FROM settings
		WHERE id = 1
	`

	settings := &domain.Settings{}
	var categories []byte
	err := r.db.QueryRowContext(ctx, query).Scan(
		&settings.ClinicName,
		&settings.DoctorName,
		&settings.ClinicAddress,
		&settings.ClinicPhone,
		&settings.ClinicEmail,
		&settings.LicenseNumber,
		&settings.ConsultationCharge,
		&settings.TaxRate,
		&categories,
	)

	if err != nil {
		if err == sql.ErrNoRows {
			return domain.DefaultSettings(), nil
		}
		return nil, fmt.Errorf("failed to get settings: %w", err)
	}

	if err := json.Unmarshal(categories, &settings.Categories); err != nil {
		return nil, fmt.Errorf("failed to decode settings categories: %w", err)
	}

	return settings, nil
}

// Save upserts the clinic settings row
func (r *settingsRepository) Save(ctx context.Context, settings *domain.Settings) error {
	categories, err := json.Marshal(settings.Categories)
	if err != nil {
		return fmt.Errorf("failed to encode settings categories: %w", err)
	}

	query := `
		INSERT INTO settings (id, clinic_name, doctor_name, clinic_address, clinic_phone,
		    clinic_email, license_number, consultation_charge, tax_rate, categories)
		VALUES (1, $1, $2, $3, $4, $5, $6, $7, $8, $9)
		ON CONFLICT (id) DO UPDATE
		SET clinic_name = EXCLUDED.clinic_name,
		    doctor_name = EXCLUDED.doctor_name,
		    clinic_address = EXCLUDED.clinic_address,
		    clinic_phone = EXCLUDED.clinic_phone,
		    clinic_email = EXCLUDED.clinic_email,
		    license_number = EXCLUDED.license_number,
		    consultation_charge = EXCLUDED.consultation_charge,
		    tax_rate = EXCLUDED.tax_rate,
		    categories = EXCLUDED.categories
	`

	_, err = r.db.ExecContext(
		ctx,
		query,
		settings.ClinicName,
		settings.DoctorName,
		settings.ClinicAddress,
		settings.ClinicPhone,
		settings.ClinicEmail,
		settings.LicenseNumber,
		settings.ConsultationCharge,
		settings.TaxRate,
		categories,
	)

	if err != nil {
		return fmt.Errorf("failed to save settings: %w", err)
	}

	return nil
}
