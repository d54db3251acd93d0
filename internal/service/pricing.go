package service

import "math"

// LineItem is a (quantity, unit price) pair used for totals calculation
type LineItem struct {
	Quantity  int
	UnitPrice float64
}

// Totals is the result of pricing a candidate sale
type Totals struct {
	Subtotal           float64
	Tax                float64
	ConsultationCharge float64
	Total              float64
}

// ComputeTotals prices a candidate sale. It is pure and deterministic:
// subtotal is the sum of quantity x unit price per line, tax is applied as a
// percentage of the subtotal, and the consultation charge is added flat.
// No rounding happens here; callers round only when persisting or displaying.
func ComputeTotals(items []LineItem, taxRate, consultationCharge float64) Totals {
	var subtotal float64
	for _, item := range items {
		subtotal += float64(item.Quantity) * item.UnitPrice
	}

	tax := subtotal * taxRate / 100

	return Totals{
		Subtotal:           subtotal,
		Tax:                tax,
		ConsultationCharge: consultationCharge,
		Total:              subtotal + tax + consultationCharge,
	}
}

// RoundMoney rounds a monetary value to two decimals. Used only at the
// persistence and display boundaries.
func RoundMoney(value float64) float64 {
	return math.Round(value*100) / 100
}
