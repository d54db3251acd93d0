package middleware

import (
	"net/http/httptest"
	"strings"
	"testing"
)

type stockAdjustmentPayload struct {
	MedicineID string `json:"medicine_id" validate:"required,uuid"`
	Quantity   int    `json:"quantity" validate:"required,gte=1"`
}

func TestDecodeAndValidate(t *testing.T) {
	tests := []struct {
		name    string
		body    string
		wantErr bool
	}{
		{
			name:    "valid payload",
			body:    `{"medicine_id":"a7e2b8a0-93af-4d4e-8f31-5c2b2c9e7f11","quantity":3}`,
			wantErr: false,
		},
		{
			name:    "missing medicine id",
			body:    `{"quantity":3}`,
			wantErr: true,
		},
		{
			name:    "malformed uuid",
			body:    `{"medicine_id":"not-a-uuid","quantity":3}`,
			wantErr: true,
		},
		{
			name:    "zero quantity",
			body:    `{"medicine_id":"a7e2b8a0-93af-4d4e-8f31-5c2b2c9e7f11","quantity":0}`,
			wantErr: true,
		},
		{
			name:    "invalid JSON",
			body:    `{"medicine_id":`,
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest("POST", "/", strings.NewReader(tt.body))

			var payload stockAdjustmentPayload
			err := DecodeAndValidate(req, &payload)

			if (err != nil) != tt.wantErr {
				t.Errorf("DecodeAndValidate error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestFormatValidationErrors(t *testing.T) {
	req := httptest.NewRequest("POST", "/", strings.NewReader(`{"quantity":0}`))

	var payload stockAdjustmentPayload
	err := DecodeAndValidate(req, &payload)
	if err == nil {
		t.Fatal("expected validation error")
	}

	formatted := FormatValidationErrors(err)
	if len(formatted) != 2 {
		t.Fatalf("got %d validation errors, want 2", len(formatted))
	}

	fields := map[string]bool{}
	for _, e := range formatted {
		fields[e.Field] = true
		if e.Message == "" {
			t.Errorf("empty message for field %s", e.Field)
		}
	}
	if !fields["MedicineID"] || !fields["Quantity"] {
		t.Errorf("unexpected fields in validation errors: %v", fields)
	}
}

func TestFormatValidationErrors_NonValidationError(t *testing.T) {
	req := httptest.NewRequest("POST", "/", strings.NewReader(`not json`))

	var payload stockAdjustmentPayload
	err := DecodeAndValidate(req, &payload)
	if err == nil {
		t.Fatal("expected decode error")
	}

	// A JSON decode failure is not a field validation error.
	if formatted := FormatValidationErrors(err); len(formatted) != 0 {
		t.Errorf("decode error formatted as validation errors: %v", formatted)
	}
}
