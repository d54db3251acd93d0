package service

import (
	"math"
	"testing"

	"github.com/leanovate/gopter"
	"github.com/leanovate/gopter/gen"
	"github.com/leanovate/gopter/prop"
)

func TestComputeTotals(t *testing.T) {
	tests := []struct {
		name               string
		items              []LineItem
		taxRate            float64
		consultationCharge float64
		want               Totals
	}{
		{
			name: "two line items with tax and consultation",
			items: []LineItem{
				{Quantity: 2, UnitPrice: 10.0},
				{Quantity: 1, UnitPrice: 5.0},
			},
			taxRate:            18,
			consultationCharge: 200,
			want:               Totals{Subtotal: 25, Tax: 4.5, ConsultationCharge: 200, Total: 229.5},
		},
		{
			name:               "no items",
			items:              []LineItem{},
			taxRate:            18,
			consultationCharge: 200,
			want:               Totals{Subtotal: 0, Tax: 0, ConsultationCharge: 200, Total: 200},
		},
		{
			name: "zero tax rate",
			items: []LineItem{
				{Quantity: 3, UnitPrice: 7.5},
			},
			taxRate:            0,
			consultationCharge: 50,
			want:               Totals{Subtotal: 22.5, Tax: 0, ConsultationCharge: 50, Total: 72.5},
		},
		{
			name: "no consultation charge",
			items: []LineItem{
				{Quantity: 4, UnitPrice: 2.25},
			},
			taxRate:            10,
			consultationCharge: 0,
			want:               Totals{Subtotal: 9, Tax: 0.9, ConsultationCharge: 0, Total: 9.9},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ComputeTotals(tt.items, tt.taxRate, tt.consultationCharge)

			if !moneyEqual(got.Subtotal, tt.want.Subtotal) {
				t.Errorf("Subtotal = %v, want %v", got.Subtotal, tt.want.Subtotal)
			}
			if !moneyEqual(got.Tax, tt.want.Tax) {
				t.Errorf("Tax = %v, want %v", got.Tax, tt.want.Tax)
			}
			if !moneyEqual(got.ConsultationCharge, tt.want.ConsultationCharge) {
				t.Errorf("ConsultationCharge = %v, want %v", got.ConsultationCharge, tt.want.ConsultationCharge)
			}
			if !moneyEqual(got.Total, tt.want.Total) {
				t.Errorf("Total = %v, want %v", got.Total, tt.want.Total)
			}
		})
	}
}

func TestRoundMoney(t *testing.T) {
	tests := []struct {
		in   float64
		want float64
	}{
		{1.006, 1.01},
		{1.004, 1.0},
		{229.5, 229.5},
		{0, 0},
		{-1.006, -1.01},
	}

	for _, tt := range tests {
		if got := RoundMoney(tt.in); got != tt.want {
			t.Errorf("RoundMoney(%v) = %v, want %v", tt.in, got, tt.want)
		}
	}
}

// Property: totals are a pure function of their inputs
func TestProperty_TotalsAreDeterministic(t *testing.T) {
	properties := gopter.NewProperties(nil)

	properties.Property("same inputs always produce identical totals", prop.ForAll(
		func(quantities []int, unitPrice float64, taxRate float64, consultationCharge float64) bool {
			items := make([]LineItem, 0, len(quantities))
			for _, q := range quantities {
				items = append(items, LineItem{Quantity: q, UnitPrice: unitPrice})
			}

			first := ComputeTotals(items, taxRate, consultationCharge)
			second := ComputeTotals(items, taxRate, consultationCharge)

			return first == second
		},
		gen.SliceOf(gen.IntRange(1, 100)),
		gen.Float64Range(0, 1000),
		gen.Float64Range(0, 50),
		gen.Float64Range(0, 500),
	))

	properties.Property("totals compose as subtotal + tax + consultation", prop.ForAll(
		func(quantity int, unitPrice float64, taxRate float64, consultationCharge float64) bool {
			items := []LineItem{{Quantity: quantity, UnitPrice: unitPrice}}
			totals := ComputeTotals(items, taxRate, consultationCharge)

			wantSubtotal := float64(quantity) * unitPrice
			if math.Abs(totals.Subtotal-wantSubtotal) > 1e-9 {
				t.Logf("FAIL: subtotal %v, want %v", totals.Subtotal, wantSubtotal)
				return false
			}

			wantTax := wantSubtotal * taxRate / 100
			if math.Abs(totals.Tax-wantTax) > 1e-9 {
				t.Logf("FAIL: tax %v, want %v", totals.Tax, wantTax)
				return false
			}

			wantTotal := wantSubtotal + wantTax + consultationCharge
			if math.Abs(totals.Total-wantTotal) > 1e-9 {
				t.Logf("FAIL: total %v, want %v", totals.Total, wantTotal)
				return false
			}

			return true
		},
		gen.IntRange(1, 1000),
		gen.Float64Range(0, 10000),
		gen.Float64Range(0, 100),
		gen.Float64Range(0, 1000),
	))

	properties.Property("zero tax rate means total is subtotal plus consultation", prop.ForAll(
		func(quantity int, unitPrice float64, consultationCharge float64) bool {
			items := []LineItem{{Quantity: quantity, UnitPrice: unitPrice}}
			totals := ComputeTotals(items, 0, consultationCharge)

			return totals.Tax == 0 &&
				math.Abs(totals.Total-(totals.Subtotal+consultationCharge)) < 1e-9
		},
		gen.IntRange(1, 1000),
		gen.Float64Range(0, 10000),
		gen.Float64Range(0, 1000),
	))

	properties.TestingRun(t, gopter.ConsoleReporter(false))
}

func moneyEqual(a, b float64) bool {
	return math.Abs(a-b) < 1e-9
}
