package domain

// Settings holds the editable clinic configuration. The tax rate and
// consultation charge are read by the sale handler and passed explicitly into
// the sale engine per call; nothing reads them as ambient state.
type Settings struct {
	ClinicName         string   `json:"clinic_name" db:"clinic_name"`
	DoctorName         string   `json:"doctor_name" db:"doctor_name"`
	ClinicAddress      string   `json:"clinic_address" db:"clinic_address"`
	ClinicPhone        string   `json:"clinic_phone" db:"clinic_phone"`
	ClinicEmail        string   `json:"clinic_email" db:"clinic_email"`
	LicenseNumber      string   `json:"license_number" db:"license_number"`
	ConsultationCharge float64  `json:"consultation_charge" db:"consultation_charge"`
	TaxRate            float64  `json:"tax_rate" db:"tax_rate"`
	Categories         []string `json:"categories"`
}

// DefaultSettings returns the configuration used before the clinic has saved
// its own.
func DefaultSettings() *Settings {
	return &Settings{
		ClinicName:         "City Clinic",
		ConsultationCharge: 0,
		TaxRate:            0,
		Categories:         []string{"Tablet", "Syrup", "Injection", "Ointment", "Drops"},
	}
}
