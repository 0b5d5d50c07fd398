// Package invoice composes new invoices: it validates creation parameters,
// derives amount, due date and ISO week, has the template collaborator
// render the document, and hands the finished record to the ledger store.
package invoice

import (
	"math"
	"strconv"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"invoicer/internal/logger"
	"invoicer/internal/render"
	"invoicer/pkg/models"
)

// dueDays is the payment term: due date = issue date + 14 days.
const dueDays = 14

// Renderer produces the invoice document for a set of template fields and
// returns the absolute path of the written file.
type Renderer interface {
	Render(fields render.Fields) (string, error)
}

// Ledger is the slice of the ledger store the composer needs.
type Ledger interface {
	AllocateNumber() string
	Append(*models.Invoice) error
}

// CreateParams are the caller-supplied invoice fields. Name and Date are
// required; everything else is optional.
type CreateParams struct {
	Name string
	Date string // issue date, YYYY-MM-DD

	// DueDate is accepted for interface compatibility but the composer
	// always recomputes the due date as issue date + 14 days. The ledger is
	// the single source of truth for payment terms; caller overrides are
	// deliberately not honored.
	DueDate string

	// Amount is used as-is only when neither Hours+HourlyRate nor Total are
	// given. Whole currency units.
	Amount *int64

	Hours      *float64
	HourlyRate *float64
	Total      *float64

	Address     string
	City        string
	PostalCode  string
	Country     string
	PhoneNumber string
	Description string
}

// Composer builds invoice records and drives document rendering.
type Composer struct {
	store    Ledger
	renderer Renderer
	log      zerolog.Logger
}

// NewComposer returns a composer writing through the given store and
// renderer.
func NewComposer(store Ledger, renderer Renderer) *Composer {
	return &Composer{
		store:    store,
		renderer: renderer,
		log:      logger.WithComponent("composer"),
	}
}

// CreateInvoice creates one invoice end to end: derive fields, render the
// document, append the record. It returns the rendered document path.
//
// Any failure aborts the whole operation and no record is appended. The
// allocated invoice number is not returned to the pool on failure; gaps in
// the sequence are the price of never reusing a number. If the ledger write
// fails after rendering, the rendered file stays behind as an orphan.
func (c *Composer) CreateInvoice(p CreateParams) (string, error) {
	const op = "CreateInvoice"

	issue, err := time.Parse(models.DateLayout, strings.TrimSpace(p.Date))
	if err != nil {
		return "", &ComposeError{Op: op, Err: ErrInvalidDateFormat, Details: p.Date}
	}

	// Always issue + 14 days, even when the caller supplied a due date.
	due := issue.AddDate(0, 0, dueDays)

	invoiceNumber := c.store.AllocateNumber()

	var amount int64
	if p.Amount != nil {
		amount = *p.Amount
	}
	switch {
	case p.Hours != nil && p.HourlyRate != nil:
		amount = int64(math.Floor(*p.Hours * *p.HourlyRate))
	case p.Total != nil:
		amount = int64(math.Floor(*p.Total))
	}

	_, week := issue.ISOWeek()

	fields := render.Fields{
		InvoiceNumber: invoiceNumber,
		Description:   p.Description,
		IssueDate:     issue.Format(models.DateLayout),
		DueDate:       due.Format(models.DateLayout),
		WeekNumber:    strconv.Itoa(week),
		Name:          p.Name,
		Address:       p.Address,
		City:          p.City,
		PhoneNumber:   p.PhoneNumber,
	}
	if p.Hours != nil {
		fields.Hours = strconv.FormatFloat(*p.Hours, 'f', -1, 64)
	}
	if p.HourlyRate != nil {
		fields.HourlyRate = "€ " + formatMoney(*p.HourlyRate)
	}
	if p.PostalCode != "" && p.Country != "" {
		fields.PostalCountry = p.PostalCode + ", " + p.Country
	}

	path, err := c.renderer.Render(fields)
	if err != nil {
		c.log.Error().
			Err(err).
			Str("invoice_number", invoiceNumber).
			Msg("Document rendering failed, invoice not created")
		return "", &ComposeError{Op: op, Err: err, Details: "rendering " + invoiceNumber}
	}

	record := &models.Invoice{
		InvoiceNumber: invoiceNumber,
		Name:          p.Name,
		Description:   p.Description,
		Amount:        amount,
		Date:          models.NewDate(issue),
		DueDate:       models.NewDate(due),
		FilePath:      path,
		Address:       p.Address,
		City:          p.City,
		PostalCode:    p.PostalCode,
		Country:       p.Country,
		PhoneNumber:   p.PhoneNumber,
		Status:        models.StatusOutstanding,
	}
	if p.HourlyRate != nil {
		record.HourlyRate = *p.HourlyRate
	}
	if p.Hours != nil {
		record.HoursBooked = *p.Hours
	}

	if err := c.store.Append(record); err != nil {
		// The document is already on disk; it stays behind as an orphan.
		c.log.Error().
			Err(err).
			Str("invoice_number", invoiceNumber).
			Str("file", path).
			Msg("Ledger append failed, rendered document orphaned")
		return "", &ComposeError{Op: op, Err: err, Details: "appending " + invoiceNumber}
	}

	c.log.Info().
		Str("invoice_number", invoiceNumber).
		Str("name", p.Name).
		Int64("amount", amount).
		Str("due_date", record.DueDate.Format(models.DateLayout)).
		Msg("Invoice created")

	return path, nil
}

// formatMoney renders v with two decimals and comma thousands separators,
// e.g. 1234.5 -> "1,234.50".
func formatMoney(v float64) string {
	sign := ""
	if v < 0 {
		sign = "-"
		v = -v
	}
	s := strconv.FormatFloat(v, 'f', 2, 64)
	dot := strings.Index(s, ".")
	intPart, frac := s[:dot], s[dot:]
	for i := len(intPart) - 3; i > 0; i -= 3 {
		intPart = intPart[:i] + "," + intPart[i:]
	}
	return sign + intPart + frac
}
