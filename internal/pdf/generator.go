// Package pdf renders a fully resolved invoice aggregate into a printable
// PDF document. The input carries plain numeric money fields and calendar
// dates; output is an opaque byte stream, deterministic for a fixed input.
package pdf

import (
	"fmt"
	"time"

	"github.com/johnfercher/maroto/v2"
	"github.com/johnfercher/maroto/v2/pkg/components/col"
	"github.com/johnfercher/maroto/v2/pkg/components/line"
	"github.com/johnfercher/maroto/v2/pkg/components/text"
	"github.com/johnfercher/maroto/v2/pkg/config"
	"github.com/johnfercher/maroto/v2/pkg/consts/align"
	"github.com/johnfercher/maroto/v2/pkg/consts/fontstyle"
	"github.com/johnfercher/maroto/v2/pkg/props"
)

type PartyData struct {
	Name       string
	Address    string
	City       string
	PostalCode string
	Country    string
	OIB        string
	Email      string
	Phone      string
}

type ItemData struct {
	Description string
	Quantity    float64
	UnitPrice   float64
	VATRate     float64
	Total       float64
}

type InvoiceData struct {
	InvoiceNumber string
	IssueDate     time.Time
	DueDate       *time.Time
	Status        string
	Subtotal      float64
	VATRate       float64
	VATAmount     float64
	Total         float64
	Currency      string
	Notes         string
	PaymentTerms  string
	Company       PartyData
	Client        PartyData
	Items         []ItemData
}

// InvoicePDF renders the invoice document and returns its bytes.
func InvoicePDF(data InvoiceData) ([]byte, error) {
	m := maroto.New(config.NewBuilder().Build())

	// Header: issuer on the left, invoice identity on the right
	m.AddRow(10,
		col.New(8).Add(
			text.New(data.Company.Name, props.Text{Size: 16, Style: fontstyle.Bold}),
		),
		col.New(4).Add(
			text.New("RAČUN", props.Text{Size: 20, Style: fontstyle.Bold, Align: align.Right}),
		),
	)
	m.AddRow(6,
		col.New(8).Add(
			text.New(partyAddressLine(data.Company), props.Text{Size: 9}),
		),
		col.New(4).Add(
			text.New(fmt.Sprintf("Broj: %s", data.InvoiceNumber), props.Text{Size: 10, Style: fontstyle.Bold, Align: align.Right}),
		),
	)
	m.AddRow(5,
		col.New(8).Add(
			text.New(partyContactLine(data.Company), props.Text{Size: 9}),
		),
		col.New(4).Add(
			text.New(data.Status, props.Text{Size: 9, Align: align.Right}),
		),
	)
	if data.Company.OIB != "" {
		m.AddRow(5,
			col.New(8).Add(
				text.New("OIB: "+data.Company.OIB, props.Text{Size: 9}),
			),
		)
	}

	m.AddRow(8, col.New(12).Add(line.New()))

	// Recipient block and invoice details
	m.AddRow(8,
		col.New(6).Add(
			text.New("Račun za:", props.Text{Size: 11, Style: fontstyle.Bold}),
		),
		col.New(6).Add(
			text.New("Detalji računa:", props.Text{Size: 11, Style: fontstyle.Bold}),
		),
	)
	m.AddRow(5,
		col.New(6).Add(
			text.New(data.Client.Name, props.Text{Size: 9, Style: fontstyle.Bold}),
		),
		col.New(6).Add(
			text.New("Datum izdavanja: "+formatDate(data.IssueDate), props.Text{Size: 9}),
		),
	)
	dueLine := ""
	if data.DueDate != nil {
		dueLine = "Datum dospijeća: " + formatDate(*data.DueDate)
	}
	m.AddRow(5,
		col.New(6).Add(
			text.New(partyAddressLine(data.Client), props.Text{Size: 9}),
		),
		col.New(6).Add(
			text.New(dueLine, props.Text{Size: 9}),
		),
	)
	termsLine := ""
	if data.PaymentTerms != "" {
		termsLine = "Uvjeti plaćanja: " + data.PaymentTerms
	}
	clientOIB := ""
	if data.Client.OIB != "" {
		clientOIB = "OIB: " + data.Client.OIB
	}
	m.AddRow(5,
		col.New(6).Add(
			text.New(clientOIB, props.Text{Size: 9}),
		),
		col.New(6).Add(
			text.New(termsLine, props.Text{Size: 9}),
		),
	)
	m.AddRow(5,
		col.New(6),
		col.New(6).Add(
			text.New("Valuta: "+data.Currency, props.Text{Size: 9}),
		),
	)

	m.AddRow(8)

	// Items table
	m.AddRow(8,
		col.New(5).Add(
			text.New("Opis", props.Text{Size: 9, Style: fontstyle.Bold}),
		),
		col.New(1).Add(
			text.New("Kol.", props.Text{Size: 9, Style: fontstyle.Bold, Align: align.Right}),
		),
		col.New(2).Add(
			text.New("Cijena", props.Text{Size: 9, Style: fontstyle.Bold, Align: align.Right}),
		),
		col.New(2).Add(
			text.New("PDV %", props.Text{Size: 9, Style: fontstyle.Bold, Align: align.Right}),
		),
		col.New(2).Add(
			text.New("Ukupno", props.Text{Size: 9, Style: fontstyle.Bold, Align: align.Right}),
		),
	)
	for _, item := range data.Items {
		m.AddRow(6,
			col.New(5).Add(
				text.New(item.Description, props.Text{Size: 8}),
			),
			col.New(1).Add(
				text.New(formatRate(item.Quantity), props.Text{Size: 8, Align: align.Right}),
			),
			col.New(2).Add(
				text.New(formatAmount(item.UnitPrice), props.Text{Size: 8, Align: align.Right}),
			),
			col.New(2).Add(
				text.New(formatRate(item.VATRate)+"%", props.Text{Size: 8, Align: align.Right}),
			),
			col.New(2).Add(
				text.New(formatAmount(item.Total), props.Text{Size: 8, Align: align.Right}),
			),
		)
	}

	m.AddRow(8, col.New(12).Add(line.New()))

	// Totals block
	m.AddRow(6,
		col.New(7),
		col.New(3).Add(
			text.New("Ukupno bez PDV-a:", props.Text{Size: 9}),
		),
		col.New(2).Add(
			text.New(formatAmount(data.Subtotal)+" "+data.Currency, props.Text{Size: 9, Align: align.Right}),
		),
	)
	m.AddRow(6,
		col.New(7),
		col.New(3).Add(
			text.New("PDV:", props.Text{Size: 9}),
		),
		col.New(2).Add(
			text.New(formatAmount(data.VATAmount)+" "+data.Currency, props.Text{Size: 9, Align: align.Right}),
		),
	)
	m.AddRow(8,
		col.New(7),
		col.New(3).Add(
			text.New("UKUPNO ZA PLAĆANJE:", props.Text{Size: 10, Style: fontstyle.Bold}),
		),
		col.New(2).Add(
			text.New(formatAmount(data.Total)+" "+data.Currency, props.Text{Size: 10, Style: fontstyle.Bold, Align: align.Right}),
		),
	)

	if data.Notes != "" {
		m.AddRow(10)
		m.AddRow(6,
			col.New(12).Add(
				text.New("Napomene:", props.Text{Size: 10, Style: fontstyle.Bold}),
			),
		)
		m.AddRow(6,
			col.New(12).Add(
				text.New(data.Notes, props.Text{Size: 9}),
			),
		)
	}

	m.AddRow(12)
	m.AddRow(5,
		col.New(12).Add(
			text.New("Hvala vam na povjerenju!", props.Text{Size: 8, Align: align.Center}),
		),
	)

	document, err := m.Generate()
	if err != nil {
		return nil, fmt.Errorf("generate invoice document: %w", err)
	}
	return document.GetBytes(), nil
}

func partyAddressLine(p PartyData) string {
	out := p.Address
	if p.PostalCode != "" || p.City != "" {
		if out != "" {
			out += ", "
		}
		if p.PostalCode != "" {
			out += p.PostalCode + " "
		}
		out += p.City
	}
	if p.Country != "" {
		if out != "" {
			out += ", "
		}
		out += p.Country
	}
	return out
}

func partyContactLine(p PartyData) string {
	out := ""
	if p.Email != "" {
		out = "Email: " + p.Email
	}
	if p.Phone != "" {
		if out != "" {
			out += "  "
		}
		out += "Tel: " + p.Phone
	}
	return out
}
