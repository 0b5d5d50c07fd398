package api

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"invoicer/internal/invoice"
	"invoicer/internal/ledger"
	"invoicer/internal/render"
	"invoicer/pkg/models"
)

type stubRenderer struct{}

func (stubRenderer) Render(fields render.Fields) (string, error) {
	return "/out/invoice_" + fields.InvoiceNumber + "_" + fields.Name + ".xlsx", nil
}

func newTestServer(t *testing.T) *httptest.Server {
	t.Helper()

	store, err := ledger.Open(filepath.Join(t.TempDir(), "invoice_booking.csv"))
	require.NoError(t, err)
	composer := invoice.NewComposer(store, stubRenderer{})

	ts := httptest.NewServer(NewServer(store, composer).Routes())
	t.Cleanup(ts.Close)
	return ts
}

func postJSON(t *testing.T, url string, body interface{}) *http.Response {
	t.Helper()
	payload, err := json.Marshal(body)
	require.NoError(t, err)
	resp, err := http.Post(url, "application/json", bytes.NewReader(payload))
	require.NoError(t, err)
	return resp
}

func putJSON(t *testing.T, url string, body interface{}) *http.Response {
	t.Helper()
	payload, err := json.Marshal(body)
	require.NoError(t, err)
	req, err := http.NewRequest(http.MethodPut, url, bytes.NewReader(payload))
	require.NoError(t, err)
	req.Header.Set("Content-Type", "application/json")
	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	return resp
}

func decode(t *testing.T, resp *http.Response, v interface{}) {
	t.Helper()
	defer resp.Body.Close()
	require.NoError(t, json.NewDecoder(resp.Body).Decode(v))
}

func createAcme(t *testing.T, ts *httptest.Server) {
	t.Helper()
	resp := postJSON(t, ts.URL+"/invoices", map[string]interface{}{
		"name":        "Acme",
		"date":        "2024-01-01",
		"hours":       10,
		"hourly_rate": 50.0,
	})
	require.Equal(t, http.StatusCreated, resp.StatusCode)

	var created struct {
		FilePath string `json:"file_path"`
	}
	decode(t, resp, &created)
	assert.Equal(t, "/out/invoice_s1_Acme.xlsx", created.FilePath)
}

func TestHealth(t *testing.T) {
	ts := newTestServer(t)

	resp, err := http.Get(ts.URL + "/healthz")
	require.NoError(t, err)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusOK, resp.StatusCode)
}

func TestCreateAndList(t *testing.T) {
	ts := newTestServer(t)
	createAcme(t, ts)

	resp, err := http.Get(ts.URL + "/invoices")
	require.NoError(t, err)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var invoices []models.Invoice
	decode(t, resp, &invoices)
	require.Len(t, invoices, 1)
	assert.Equal(t, "s1", invoices[0].InvoiceNumber)
	assert.Equal(t, int64(500), invoices[0].Amount)
	assert.Equal(t, models.StatusOutstanding, invoices[0].Status)
}

func TestCreateInvalidDate(t *testing.T) {
	ts := newTestServer(t)

	resp := postJSON(t, ts.URL+"/invoices", map[string]interface{}{
		"name": "Acme",
		"date": "not-a-date",
	})
	defer resp.Body.Close()
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestSearch(t *testing.T) {
	ts := newTestServer(t)
	createAcme(t, ts)

	t.Run("match", func(t *testing.T) {
		resp, err := http.Get(ts.URL + "/invoices?q=acm")
		require.NoError(t, err)
		var invoices []models.Invoice
		decode(t, resp, &invoices)
		assert.Len(t, invoices, 1)
	})

	t.Run("no match returns empty list", func(t *testing.T) {
		resp, err := http.Get(ts.URL + "/invoices?q=globex")
		require.NoError(t, err)
		var invoices []models.Invoice
		decode(t, resp, &invoices)
		assert.Empty(t, invoices)
	})
}

func TestDetails(t *testing.T) {
	ts := newTestServer(t)
	createAcme(t, ts)

	t.Run("found", func(t *testing.T) {
		resp, err := http.Get(ts.URL + "/invoices/s1")
		require.NoError(t, err)
		require.Equal(t, http.StatusOK, resp.StatusCode)
		var details []models.Invoice
		decode(t, resp, &details)
		require.Len(t, details, 1)
		assert.Equal(t, "Acme", details[0].Name)
	})

	t.Run("absent", func(t *testing.T) {
		resp, err := http.Get(ts.URL + "/invoices/s99")
		require.NoError(t, err)
		defer resp.Body.Close()
		assert.Equal(t, http.StatusNotFound, resp.StatusCode)
	})
}

func TestStatusUpdateAndTotals(t *testing.T) {
	ts := newTestServer(t)
	createAcme(t, ts)

	resp := putJSON(t, ts.URL+"/invoices/s1/status", map[string]string{"status": "Paid"})
	defer resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode)

	totalsResp, err := http.Get(ts.URL + "/totals")
	require.NoError(t, err)
	var totals struct {
		Received    int64 `json:"received"`
		Outstanding int64 `json:"outstanding"`
	}
	decode(t, totalsResp, &totals)
	assert.Equal(t, int64(500), totals.Received)
	assert.Equal(t, int64(0), totals.Outstanding)
}

func TestStatusUpdateInvalid(t *testing.T) {
	ts := newTestServer(t)
	createAcme(t, ts)

	resp := putJSON(t, ts.URL+"/invoices/s1/status", map[string]string{"status": "Pending"})
	defer resp.Body.Close()
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestReminders(t *testing.T) {
	ts := newTestServer(t)

	resp, err := http.Get(ts.URL + "/reminders")
	require.NoError(t, err)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var reminders []string
	decode(t, resp, &reminders)
	assert.Empty(t, reminders)
}
