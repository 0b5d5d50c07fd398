package models

import (
	"strings"
	"time"
)

// DateLayout is the calendar date format used everywhere: CLI input,
// template cells and the ledger file.
const DateLayout = "2006-01-02"

// Status is the payment state of an invoice.
type Status string

const (
	StatusOutstanding Status = "Outstanding"
	StatusPaid        Status = "Paid"
)

// Valid reports whether s is one of the known payment states.
func (s Status) Valid() bool {
	return s == StatusOutstanding || s == StatusPaid
}

// Date is a calendar date stored as YYYY-MM-DD in the ledger file.
// It implements the gocsv marshaller interfaces so records round-trip
// through the CSV ledger without manual conversion.
type Date struct {
	time.Time
}

// NewDate truncates t to a calendar date.
func NewDate(t time.Time) Date {
	return Date{time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)}
}

// MarshalCSV renders the date as YYYY-MM-DD, or empty for the zero date.
func (d Date) MarshalCSV() (string, error) {
	if d.IsZero() {
		return "", nil
	}
	return d.Format(DateLayout), nil
}

// UnmarshalCSV parses a YYYY-MM-DD cell. Empty cells load as the zero date
// so legacy rows with missing dates do not fail the whole ledger.
func (d *Date) UnmarshalCSV(value string) error {
	value = strings.TrimSpace(value)
	if value == "" {
		d.Time = time.Time{}
		return nil
	}
	t, err := time.Parse(DateLayout, value)
	if err != nil {
		return err
	}
	d.Time = t
	return nil
}

// Invoice is one row of the ledger.
//
// The csv tags define the durable 15-column schema. Column order follows the
// historical ledger files: the original 14 columns first, Description last,
// so existing files load unchanged (a missing Description column simply
// defaults to empty).
type Invoice struct {
	// InvoiceNumber is the unique identifier, format s<N> with N a positive
	// integer. Assigned once by the ledger store, never reused.
	InvoiceNumber string `csv:"Invoice Number" json:"invoice_number"`

	Name        string `csv:"Name" json:"name"`
	Amount      int64  `csv:"Amount" json:"amount"` // whole currency units, never negative
	Date        Date   `csv:"Date" json:"date"`
	DueDate     Date   `csv:"Due Date" json:"due_date"`
	FilePath    string `csv:"File Path" json:"file_path,omitempty"` // rendered document location
	Address     string `csv:"Address" json:"address,omitempty"`
	City        string `csv:"City" json:"city,omitempty"`
	PostalCode  string `csv:"Postal Code" json:"postal_code,omitempty"`
	Country     string `csv:"Country" json:"country,omitempty"`
	PhoneNumber string `csv:"Phone Number" json:"phone_number,omitempty"`

	// Work booked on the invoice; zero when the amount was given directly.
	HourlyRate  float64 `csv:"Hourly Rate" json:"hourly_rate,omitempty"`
	HoursBooked float64 `csv:"Hours Booked" json:"hours_booked,omitempty"`

	Status      Status `csv:"Status" json:"status"`
	Description string `csv:"Description" json:"description,omitempty"`
}
