// Package ledger owns the durable table of invoice records: it derives the
// next invoice number, appends and mutates rows, answers queries, and
// persists the whole table as a flat CSV file.
//
// The store is the single writer of the ledger file. It is not safe for
// concurrent use; callers that serve multiple goroutines (the HTTP surface)
// must serialize access themselves.
package ledger

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/gocarina/gocsv"
	"github.com/rs/zerolog"

	"invoicer/internal/logger"
	"invoicer/pkg/models"
)

// numberPrefix is the literal prefix of every invoice number (s1, s2, ...).
const numberPrefix = "s"

// Store is the single source of truth for invoice records.
type Store struct {
	path     string
	invoices []*models.Invoice
	next     int // next invoice number suffix to allocate
	log      zerolog.Logger
}

// Open loads the ledger file at path, creating a fresh empty table when the
// file is missing or does not hold a usable invoice table. The numbering
// floor is re-derived from the persisted rows on every open, so a restart
// allocates exactly the number a running instance would have.
func Open(path string) (*Store, error) {
	s := &Store{
		path: path,
		log:  logger.WithComponent("ledger"),
	}
	if err := s.load(); err != nil {
		return nil, err
	}

	s.log.Info().
		Str("file", path).
		Int("invoices", len(s.invoices)).
		Int("next_number", s.next).
		Msg("Ledger loaded")

	return s, nil
}

func (s *Store) load() error {
	const op = "Open"

	file, err := os.Open(s.path)
	if os.IsNotExist(err) {
		s.log.Info().Str("file", s.path).Msg("No ledger file found, creating a new one")
		return s.reset(op)
	}
	if err != nil {
		return &LedgerError{Op: op, Path: s.path, Err: ErrLedgerLoad, Details: err.Error()}
	}
	defer file.Close()

	var invoices []*models.Invoice
	if err := gocsv.UnmarshalFile(file, &invoices); err != nil {
		// A ledger we cannot parse is treated the same as a missing one.
		s.log.Warn().
			Err(err).
			Str("file", s.path).
			Msg("Ledger file is not a usable invoice table, recreating")
		return s.reset(op)
	}

	// The table is only valid if it carries at least one invoice number.
	usable := false
	for _, inv := range invoices {
		if strings.TrimSpace(inv.InvoiceNumber) != "" {
			usable = true
			break
		}
	}
	if !usable {
		s.log.Warn().
			Str("file", s.path).
			Int("rows", len(invoices)).
			Msg("Ledger file has no invoice numbers, recreating")
		return s.reset(op)
	}

	s.invoices = invoices
	s.computeNext()
	return nil
}

// reset replaces the table with an empty one and writes it out immediately
// so the schema exists on disk before the first invoice is created.
func (s *Store) reset(op string) error {
	s.invoices = nil
	s.computeNext()
	if err := s.persist(); err != nil {
		return &LedgerError{Op: op, Path: s.path, Err: ErrLedgerPersist, Details: err.Error()}
	}
	return nil
}

// computeNext derives the numbering floor: max numeric suffix seen, plus one.
// Values without the s prefix count as suffix 0 rather than erroring, which
// matches how legacy ledger files were handled.
func (s *Store) computeNext() {
	max := 0
	for _, inv := range s.invoices {
		if n := numberSuffix(inv.InvoiceNumber); n > max {
			max = n
		}
	}
	s.next = max + 1
}

func numberSuffix(invoiceNumber string) int {
	if !strings.HasPrefix(invoiceNumber, numberPrefix) {
		return 0
	}
	n, err := strconv.Atoi(strings.TrimPrefix(invoiceNumber, numberPrefix))
	if err != nil || n < 0 {
		return 0
	}
	return n
}

// AllocateNumber returns the next invoice number and advances the counter.
// Numbers are never reused: a failed creation after allocation leaves a
// permanent gap in the sequence.
func (s *Store) AllocateNumber() string {
	n := s.next
	if n < 1 {
		n = 1
	}
	s.next = n + 1

	number := numberPrefix + strconv.Itoa(n)
	s.log.Debug().Str("invoice_number", number).Msg("Allocated invoice number")
	return number
}

// Append adds the record to the table and rewrites the ledger file. When the
// rewrite fails the append is rolled back, so the in-memory table never runs
// ahead of disk.
func (s *Store) Append(inv *models.Invoice) error {
	const op = "Append"

	s.invoices = append(s.invoices, inv)
	if err := s.persist(); err != nil {
		s.invoices = s.invoices[:len(s.invoices)-1]
		return &LedgerError{Op: op, Path: s.path, Err: ErrLedgerPersist, Details: err.Error()}
	}

	s.log.Info().
		Str("invoice_number", inv.InvoiceNumber).
		Str("name", inv.Name).
		Int64("amount", inv.Amount).
		Msg("Invoice appended to ledger")
	return nil
}

// UpdateStatus sets the payment state of every row matching invoiceNumber
// and rewrites the ledger file. A number that matches nothing is a silent
// no-op. Both directions are allowed, Paid back to Outstanding included.
func (s *Store) UpdateStatus(invoiceNumber string, status models.Status) error {
	const op = "UpdateStatus"

	if !status.Valid() {
		return &LedgerError{Op: op, Err: ErrInvalidStatus, Details: string(status)}
	}

	changed := false
	for _, inv := range s.invoices {
		if inv.InvoiceNumber == invoiceNumber {
			inv.Status = status
			changed = true
		}
	}
	if !changed {
		s.log.Debug().
			Str("invoice_number", invoiceNumber).
			Msg("Status update matched no invoice")
		return nil
	}

	if err := s.persist(); err != nil {
		return &LedgerError{Op: op, Path: s.path, Err: ErrLedgerPersist, Details: err.Error()}
	}

	s.log.Info().
		Str("invoice_number", invoiceNumber).
		Str("status", string(status)).
		Msg("Invoice status updated")
	return nil
}

// Invoices returns all records in issuance order.
func (s *Store) Invoices() []*models.Invoice {
	out := make([]*models.Invoice, len(s.invoices))
	copy(out, s.invoices)
	return out
}

// Search returns the records whose Name contains query, case-insensitively,
// in table order. An empty query matches every record.
func (s *Store) Search(query string) []*models.Invoice {
	q := strings.ToLower(query)
	var out []*models.Invoice
	for _, inv := range s.invoices {
		if strings.Contains(strings.ToLower(inv.Name), q) {
			out = append(out, inv)
		}
	}
	return out
}

// Details returns the full rows matching invoiceNumber, empty when absent.
func (s *Store) Details(invoiceNumber string) []*models.Invoice {
	var out []*models.Invoice
	for _, inv := range s.invoices {
		if inv.InvoiceNumber == invoiceNumber {
			out = append(out, inv)
		}
	}
	return out
}

// Totals sums Amount over all rows with the given payment state.
func (s *Store) Totals(status models.Status) int64 {
	var sum int64
	for _, inv := range s.invoices {
		if inv.Status == status {
			sum += inv.Amount
		}
	}
	return sum
}

// TotalReceived is the amount sum over paid invoices.
func (s *Store) TotalReceived() int64 {
	return s.Totals(models.StatusPaid)
}

// TotalOutstanding is the amount sum over outstanding invoices.
func (s *Store) TotalOutstanding() int64 {
	return s.Totals(models.StatusOutstanding)
}

// Reminders returns one reminder line per invoice that is overdue as of
// today, plus one per invoice due exactly seven days from today.
func (s *Store) Reminders(today time.Time) []string {
	day := models.NewDate(today)
	dueSoon := models.NewDate(today.AddDate(0, 0, 7))

	var reminders []string
	for _, inv := range s.invoices {
		if inv.DueDate.IsZero() {
			continue
		}
		switch {
		case inv.DueDate.Before(day.Time):
			reminders = append(reminders, fmt.Sprintf(
				"Reminder: Invoice %s is overdue! Please contact %s.",
				inv.InvoiceNumber, inv.Name))
		case inv.DueDate.Equal(dueSoon.Time):
			reminders = append(reminders, fmt.Sprintf(
				"Reminder: Invoice %s is due in 7 days. Please contact %s.",
				inv.InvoiceNumber, inv.Name))
		}
	}
	return reminders
}

// persist rewrites the entire ledger file. Small ledgers make the full
// rewrite cheap; read-after-write consistency is what matters here.
func (s *Store) persist() error {
	file, err := os.Create(s.path)
	if err != nil {
		return err
	}
	defer file.Close()

	if err := gocsv.MarshalFile(&s.invoices, file); err != nil {
		return err
	}
	return file.Sync()
}
