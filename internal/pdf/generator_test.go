package pdf

import (
	"bytes"
	"testing"
	"time"
)

func sampleInvoice() InvoiceData {
	due := time.Date(2024, 3, 15, 0, 0, 0, 0, time.UTC)
	return InvoiceData{
		InvoiceNumber: "2024-001",
		IssueDate:     time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC),
		DueDate:       &due,
		Status:        "DRAFT",
		Subtotal:      250,
		VATRate:       25,
		VATAmount:     56.5,
		Total:         306.5,
		Currency:      "EUR",
		Notes:         "Platiti na IBAN HR12...",
		PaymentTerms:  "15 dana",
		Company: PartyData{
			Name:       "Računko d.o.o.",
			Address:    "Ilica 1",
			City:       "Zagreb",
			PostalCode: "10000",
			Country:    "Croatia",
			OIB:        "12345678901",
			Email:      "info@racunko.hr",
			Phone:      "+385 1 234 5678",
		},
		Client: PartyData{
			Name: "Klijent d.o.o.",
			City: "Split",
			OIB:  "98765432109",
		},
		Items: []ItemData{
			{Description: "Usluga A", Quantity: 2, UnitPrice: 100, VATRate: 25, Total: 200},
			{Description: "Usluga B", Quantity: 1, UnitPrice: 50, VATRate: 13, Total: 50},
		},
	}
}

func TestInvoicePDF(t *testing.T) {
	data, err := InvoicePDF(sampleInvoice())
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	if !bytes.HasPrefix(data, []byte("%PDF")) {
		t.Fatalf("output is not a PDF document")
	}
	if len(data) < 1000 {
		t.Fatalf("document suspiciously small: %d bytes", len(data))
	}
}

func TestInvoicePDFMinimal(t *testing.T) {
	// No due date, notes, terms, or items.
	data, err := InvoicePDF(InvoiceData{
		InvoiceNumber: "2024-002",
		IssueDate:     time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC),
		Status:        "DRAFT",
		Currency:      "EUR",
		Company:       PartyData{Name: "Računko d.o.o."},
		Client:        PartyData{Name: "Klijent d.o.o."},
	})
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	if !bytes.HasPrefix(data, []byte("%PDF")) {
		t.Fatalf("output is not a PDF document")
	}
}

func TestFormatDate(t *testing.T) {
	got := formatDate(time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC))
	if got != "01.03.2024." {
		t.Fatalf("formatDate: %q", got)
	}
}

func TestFormatAmount(t *testing.T) {
	cases := []struct {
		in   float64
		want string
	}{
		{0, "0,00"},
		{56.5, "56,50"},
		{306.5, "306,50"},
		{1234.56, "1.234,56"},
		{1234567.89, "1.234.567,89"},
		{-42.1, "-42,10"},
	}
	for _, c := range cases {
		if got := formatAmount(c.in); got != c.want {
			t.Fatalf("formatAmount(%v) = %q, want %q", c.in, got, c.want)
		}
	}
}

func TestFormatRate(t *testing.T) {
	cases := []struct {
		in   float64
		want string
	}{
		{25, "25"},
		{13, "13"},
		{5.5, "5,5"},
		{0, "0"},
		{2.25, "2,25"},
	}
	for _, c := range cases {
		if got := formatRate(c.in); got != c.want {
			t.Fatalf("formatRate(%v) = %q, want %q", c.in, got, c.want)
		}
	}
}

func TestPartyAddressLine(t *testing.T) {
	p := PartyData{Address: "Ilica 1", PostalCode: "10000", City: "Zagreb", Country: "Croatia"}
	if got := partyAddressLine(p); got != "Ilica 1, 10000 Zagreb, Croatia" {
		t.Fatalf("partyAddressLine: %q", got)
	}
	if got := partyAddressLine(PartyData{City: "Split"}); got != "Split" {
		t.Fatalf("partyAddressLine: %q", got)
	}
	if got := partyAddressLine(PartyData{}); got != "" {
		t.Fatalf("partyAddressLine: %q", got)
	}
}
