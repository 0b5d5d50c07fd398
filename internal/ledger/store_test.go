package ledger

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"invoicer/pkg/models"
)

func ledgerPath(t *testing.T) string {
	t.Helper()
	return filepath.Join(t.TempDir(), "invoice_booking.csv")
}

func mustDate(t *testing.T, value string) models.Date {
	t.Helper()
	parsed, err := time.Parse(models.DateLayout, value)
	require.NoError(t, err)
	return models.NewDate(parsed)
}

func invoiceRecord(number, name string, amount int64, status models.Status) *models.Invoice {
	return &models.Invoice{
		InvoiceNumber: number,
		Name:          name,
		Amount:        amount,
		Status:        status,
	}
}

// legacyHeader is the original 14-column schema without Description.
const legacyHeader = "Invoice Number,Name,Amount,Date,Due Date,File Path,Address,City,Postal Code,Country,Phone Number,Hourly Rate,Hours Booked,Status"

func writeLegacyLedger(t *testing.T, path string, numbers ...string) {
	t.Helper()
	lines := []string{legacyHeader}
	for _, number := range numbers {
		lines = append(lines, number+",Acme,100,2024-01-01,2024-01-15,/tmp/doc.xlsx,,,,,,0,0,Outstanding")
	}
	require.NoError(t, os.WriteFile(path, []byte(strings.Join(lines, "\n")+"\n"), 0o644))
}

func TestOpenCreatesNewLedger(t *testing.T) {
	path := ledgerPath(t)

	store, err := Open(path)
	require.NoError(t, err)

	// The empty table is written immediately, header included.
	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), "Invoice Number")
	assert.Contains(t, string(data), "Description")

	assert.Equal(t, "s1", store.AllocateNumber())
	assert.Equal(t, "s2", store.AllocateNumber())
}

func TestOpenDerivesNumberingFloor(t *testing.T) {
	t.Run("max suffix plus one", func(t *testing.T) {
		path := ledgerPath(t)
		writeLegacyLedger(t, path, "s3", "s7", "s2")

		store, err := Open(path)
		require.NoError(t, err)
		assert.Equal(t, "s8", store.AllocateNumber())
	})

	t.Run("values without prefix count as zero", func(t *testing.T) {
		path := ledgerPath(t)
		writeLegacyLedger(t, path, "7", "s4", "INV-9")

		store, err := Open(path)
		require.NoError(t, err)
		assert.Equal(t, "s5", store.AllocateNumber())
	})

	t.Run("restart yields the same floor", func(t *testing.T) {
		path := ledgerPath(t)
		store, err := Open(path)
		require.NoError(t, err)

		number := store.AllocateNumber()
		require.NoError(t, store.Append(invoiceRecord(number, "Acme", 100, models.StatusOutstanding)))

		reopened, err := Open(path)
		require.NoError(t, err)
		assert.Equal(t, "s2", reopened.AllocateNumber())
	})
}

func TestOpenRecreatesUnusableFile(t *testing.T) {
	t.Run("garbage content", func(t *testing.T) {
		path := ledgerPath(t)
		require.NoError(t, os.WriteFile(path, []byte("not,a,ledger\n1,2,3\n"), 0o644))

		store, err := Open(path)
		require.NoError(t, err)
		assert.Empty(t, store.Invoices())
		assert.Equal(t, "s1", store.AllocateNumber())

		data, err := os.ReadFile(path)
		require.NoError(t, err)
		assert.Contains(t, string(data), "Invoice Number")
	})

	t.Run("empty file", func(t *testing.T) {
		path := ledgerPath(t)
		require.NoError(t, os.WriteFile(path, nil, 0o644))

		store, err := Open(path)
		require.NoError(t, err)
		assert.Equal(t, "s1", store.AllocateNumber())
	})

	t.Run("header without rows", func(t *testing.T) {
		path := ledgerPath(t)
		writeLegacyLedger(t, path)

		store, err := Open(path)
		require.NoError(t, err)
		assert.Equal(t, "s1", store.AllocateNumber())
	})
}

func TestAppendPersistsAcrossReload(t *testing.T) {
	path := ledgerPath(t)
	store, err := Open(path)
	require.NoError(t, err)

	record := &models.Invoice{
		InvoiceNumber: store.AllocateNumber(),
		Name:          "Acme",
		Description:   "Consulting",
		Amount:        500,
		Date:          mustDate(t, "2024-01-01"),
		DueDate:       mustDate(t, "2024-01-15"),
		FilePath:      "/tmp/invoice_s1_Acme.xlsx",
		Address:       "Main St 1",
		City:          "Amsterdam",
		PostalCode:    "1011AB",
		Country:       "NL",
		PhoneNumber:   "+31 6 12345678",
		HourlyRate:    50,
		HoursBooked:   10,
		Status:        models.StatusOutstanding,
	}
	require.NoError(t, store.Append(record))

	reopened, err := Open(path)
	require.NoError(t, err)

	invoices := reopened.Invoices()
	require.Len(t, invoices, 1)
	got := invoices[0]
	assert.Equal(t, "s1", got.InvoiceNumber)
	assert.Equal(t, "Acme", got.Name)
	assert.Equal(t, "Consulting", got.Description)
	assert.Equal(t, int64(500), got.Amount)
	assert.Equal(t, "2024-01-01", got.Date.Format(models.DateLayout))
	assert.Equal(t, "2024-01-15", got.DueDate.Format(models.DateLayout))
	assert.Equal(t, models.StatusOutstanding, got.Status)
	assert.Equal(t, 50.0, got.HourlyRate)
	assert.Equal(t, 10.0, got.HoursBooked)
}

func TestAppendRollsBackOnPersistFailure(t *testing.T) {
	path := ledgerPath(t)
	store, err := Open(path)
	require.NoError(t, err)
	require.NoError(t, store.Append(invoiceRecord("s1", "Acme", 100, models.StatusOutstanding)))

	// Replace the ledger file with a directory so the rewrite must fail.
	require.NoError(t, os.Remove(path))
	require.NoError(t, os.Mkdir(path, 0o755))

	err = store.Append(invoiceRecord("s2", "Globex", 200, models.StatusOutstanding))
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrLedgerPersist)

	// In-memory table must not run ahead of disk.
	assert.Len(t, store.Invoices(), 1)
}

func TestUpdateStatus(t *testing.T) {
	newStore := func(t *testing.T) *Store {
		store, err := Open(ledgerPath(t))
		require.NoError(t, err)
		require.NoError(t, store.Append(invoiceRecord("s1", "Acme", 500, models.StatusOutstanding)))
		return store
	}

	t.Run("mark paid moves the amount between totals", func(t *testing.T) {
		store := newStore(t)
		require.NoError(t, store.UpdateStatus("s1", models.StatusPaid))
		assert.Equal(t, int64(500), store.TotalReceived())
		assert.Equal(t, int64(0), store.TotalOutstanding())
	})

	t.Run("reversal back to outstanding is allowed", func(t *testing.T) {
		store := newStore(t)
		require.NoError(t, store.UpdateStatus("s1", models.StatusPaid))
		require.NoError(t, store.UpdateStatus("s1", models.StatusOutstanding))
		assert.Equal(t, int64(0), store.TotalReceived())
		assert.Equal(t, int64(500), store.TotalOutstanding())
	})

	t.Run("unknown number is a silent no-op", func(t *testing.T) {
		store := newStore(t)
		require.NoError(t, store.UpdateStatus("s99", models.StatusPaid))
		assert.Equal(t, int64(0), store.TotalReceived())
	})

	t.Run("invalid status is rejected", func(t *testing.T) {
		store := newStore(t)
		err := store.UpdateStatus("s1", models.Status("Pending"))
		require.Error(t, err)
		assert.ErrorIs(t, err, ErrInvalidStatus)
	})
}

func TestSearch(t *testing.T) {
	store, err := Open(ledgerPath(t))
	require.NoError(t, err)
	require.NoError(t, store.Append(invoiceRecord("s1", "Acme Corp", 100, models.StatusOutstanding)))
	require.NoError(t, store.Append(invoiceRecord("s2", "Globex", 200, models.StatusOutstanding)))
	require.NoError(t, store.Append(invoiceRecord("s3", "acme industries", 300, models.StatusOutstanding)))

	t.Run("case-insensitive substring on name", func(t *testing.T) {
		results := store.Search("ACME")
		require.Len(t, results, 2)
		assert.Equal(t, "s1", results[0].InvoiceNumber)
		assert.Equal(t, "s3", results[1].InvoiceNumber)
	})

	t.Run("empty query matches everything", func(t *testing.T) {
		assert.Len(t, store.Search(""), 3)
	})

	t.Run("no matches", func(t *testing.T) {
		assert.Empty(t, store.Search("initech"))
	})

	t.Run("empty ledger returns no rows", func(t *testing.T) {
		empty, err := Open(ledgerPath(t))
		require.NoError(t, err)
		assert.Empty(t, empty.Search("acme"))
	})
}

func TestTotalsPartition(t *testing.T) {
	store, err := Open(ledgerPath(t))
	require.NoError(t, err)
	require.NoError(t, store.Append(invoiceRecord("s1", "Acme", 100, models.StatusPaid)))
	require.NoError(t, store.Append(invoiceRecord("s2", "Globex", 200, models.StatusOutstanding)))
	require.NoError(t, store.Append(invoiceRecord("s3", "Initech", 300, models.StatusPaid)))

	var sum int64
	for _, inv := range store.Invoices() {
		sum += inv.Amount
	}
	assert.Equal(t, sum, store.TotalReceived()+store.TotalOutstanding())
	assert.Equal(t, int64(400), store.Totals(models.StatusPaid))
	assert.Equal(t, int64(200), store.Totals(models.StatusOutstanding))
	assert.Equal(t, int64(0), store.Totals(models.Status("Pending")))
}

func TestReminders(t *testing.T) {
	store, err := Open(ledgerPath(t))
	require.NoError(t, err)

	today, err := time.Parse(models.DateLayout, "2024-06-15")
	require.NoError(t, err)

	overdue := invoiceRecord("s1", "Acme", 100, models.StatusOutstanding)
	overdue.DueDate = mustDate(t, "2024-06-01")
	dueSoon := invoiceRecord("s2", "Globex", 200, models.StatusOutstanding)
	dueSoon.DueDate = mustDate(t, "2024-06-22")
	farOut := invoiceRecord("s3", "Initech", 300, models.StatusOutstanding)
	farOut.DueDate = mustDate(t, "2024-07-30")

	require.NoError(t, store.Append(overdue))
	require.NoError(t, store.Append(dueSoon))
	require.NoError(t, store.Append(farOut))

	reminders := store.Reminders(today)
	require.Len(t, reminders, 2)
	assert.Equal(t, "Reminder: Invoice s1 is overdue! Please contact Acme.", reminders[0])
	assert.Equal(t, "Reminder: Invoice s2 is due in 7 days. Please contact Globex.", reminders[1])
}

func TestNumberSuffix(t *testing.T) {
	assert.Equal(t, 12, numberSuffix("s12"))
	assert.Equal(t, 0, numberSuffix("12"))
	assert.Equal(t, 0, numberSuffix("sabc"))
	assert.Equal(t, 0, numberSuffix(""))
}
