package services

import (
	"math"

	"github.com/racunko/racunko/internal/models"
)

// DefaultVATRate is the Croatian standard VAT rate, applied to any invoice
// line that does not carry its own rate.
const DefaultVATRate = 25.0

// Totals holds the derived money fields of an invoice.
type Totals struct {
	Subtotal  float64
	VATAmount float64
	Total     float64
}

// Round2 rounds a monetary amount to 2 decimals using round-half-even.
// All derived money fields pass through here so that persisted amounts are
// deterministic regardless of intermediate float error.
func Round2(v float64) float64 {
	return math.RoundToEven(v*100) / 100
}

// LineTotal computes the total of a single invoice line.
func LineTotal(quantity, unitPrice float64) float64 {
	return Round2(quantity * unitPrice)
}

// NormalizeItems fills in derived and defaulted fields on invoice lines:
// a missing (zero) VAT rate becomes DefaultVATRate and the line total is
// recomputed from quantity and unit price. A zero rate is indistinguishable
// from an omitted one; zero-rated lines are not representable, matching the
// app's historical behavior. The slice is modified in place.
func NormalizeItems(items []models.InvoiceItem) {
	for i := range items {
		if items[i].VATRate == 0 {
			items[i].VATRate = DefaultVATRate
		}
		items[i].Total = LineTotal(items[i].Quantity, items[i].UnitPrice)
	}
}

// InvoiceTotals derives subtotal, VAT amount, and total from normalized
// lines. The per-line VAT rate is authoritative; the invoice header rate is
// not consulted. An empty item list yields zero totals.
func InvoiceTotals(items []models.InvoiceItem) Totals {
	var t Totals
	for _, it := range items {
		t.Subtotal += it.Total
		t.VATAmount += it.Total * it.VATRate / 100
	}
	t.Subtotal = Round2(t.Subtotal)
	t.VATAmount = Round2(t.VATAmount)
	t.Total = Round2(t.Subtotal + t.VATAmount)
	return t
}

// ApplyTotals writes derived totals onto the invoice header.
func ApplyTotals(inv *models.Invoice, t Totals) {
	inv.Subtotal = t.Subtotal
	inv.VATAmount = t.VATAmount
	inv.Total = t.Total
}
