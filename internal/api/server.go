// Package api exposes the ledger store and invoice composer over HTTP. The
// handlers are thin 1:1 wrappers; all logic lives in the ledger and invoice
// packages.
package api

import (
	"encoding/json"
	"errors"
	"net/http"
	"sync"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/rs/zerolog"

	"invoicer/internal/invoice"
	"invoicer/internal/ledger"
	"invoicer/internal/logger"
	"invoicer/pkg/models"
)

// Server serializes all ledger access behind one mutex: the store itself is
// single-writer and must not see concurrent requests.
type Server struct {
	mu       sync.Mutex
	store    *ledger.Store
	composer *invoice.Composer
	log      zerolog.Logger
}

// NewServer wires the HTTP surface to the store and composer.
func NewServer(store *ledger.Store, composer *invoice.Composer) *Server {
	return &Server{
		store:    store,
		composer: composer,
		log:      logger.WithComponent("api"),
	}
}

// Routes builds the router.
func (s *Server) Routes() http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.Recoverer)

	r.Get("/healthz", s.handleHealth)
	r.Route("/invoices", func(r chi.Router) {
		r.Get("/", s.handleList)
		r.Post("/", s.handleCreate)
		r.Get("/{number}", s.handleDetails)
		r.Put("/{number}/status", s.handleUpdateStatus)
	})
	r.Get("/totals", s.handleTotals)
	r.Get("/reminders", s.handleReminders)

	return r
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	s.writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (s *Server) handleList(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	defer s.mu.Unlock()

	query := r.URL.Query().Get("q")
	var invoices []*models.Invoice
	if query == "" {
		invoices = s.store.Invoices()
	} else {
		invoices = s.store.Search(query)
	}
	if invoices == nil {
		invoices = []*models.Invoice{}
	}
	s.writeJSON(w, http.StatusOK, invoices)
}

type createRequest struct {
	Name        string   `json:"name"`
	Date        string   `json:"date"`
	DueDate     string   `json:"due_date,omitempty"`
	Amount      *int64   `json:"amount,omitempty"`
	Hours       *float64 `json:"hours,omitempty"`
	HourlyRate  *float64 `json:"hourly_rate,omitempty"`
	Total       *float64 `json:"total,omitempty"`
	Address     string   `json:"address,omitempty"`
	City        string   `json:"city,omitempty"`
	PostalCode  string   `json:"postal_code,omitempty"`
	Country     string   `json:"country,omitempty"`
	PhoneNumber string   `json:"phone_number,omitempty"`
	Description string   `json:"description,omitempty"`
}

type createResponse struct {
	FilePath string `json:"file_path"`
}

func (s *Server) handleCreate(w http.ResponseWriter, r *http.Request) {
	var req createRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	path, err := s.composer.CreateInvoice(invoice.CreateParams{
		Name:        req.Name,
		Date:        req.Date,
		DueDate:     req.DueDate,
		Amount:      req.Amount,
		Hours:       req.Hours,
		HourlyRate:  req.HourlyRate,
		Total:       req.Total,
		Address:     req.Address,
		City:        req.City,
		PostalCode:  req.PostalCode,
		Country:     req.Country,
		PhoneNumber: req.PhoneNumber,
		Description: req.Description,
	})
	if err != nil {
		if errors.Is(err, invoice.ErrInvalidDateFormat) {
			s.writeError(w, http.StatusBadRequest, err.Error())
			return
		}
		s.log.Error().Err(err).Msg("Invoice creation failed")
		s.writeError(w, http.StatusInternalServerError, "invoice creation failed")
		return
	}

	s.writeJSON(w, http.StatusCreated, createResponse{FilePath: path})
}

func (s *Server) handleDetails(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	defer s.mu.Unlock()

	number := chi.URLParam(r, "number")
	details := s.store.Details(number)
	if len(details) == 0 {
		s.writeError(w, http.StatusNotFound, "invoice not found")
		return
	}
	s.writeJSON(w, http.StatusOK, details)
}

type statusRequest struct {
	Status models.Status `json:"status"`
}

func (s *Server) handleUpdateStatus(w http.ResponseWriter, r *http.Request) {
	var req statusRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	number := chi.URLParam(r, "number")
	if err := s.store.UpdateStatus(number, req.Status); err != nil {
		if errors.Is(err, ledger.ErrInvalidStatus) {
			s.writeError(w, http.StatusBadRequest, err.Error())
			return
		}
		s.log.Error().Err(err).Str("invoice_number", number).Msg("Status update failed")
		s.writeError(w, http.StatusInternalServerError, "status update failed")
		return
	}

	s.writeJSON(w, http.StatusOK, map[string]string{
		"invoice_number": number,
		"status":         string(req.Status),
	})
}

type totalsResponse struct {
	Received    int64 `json:"received"`
	Outstanding int64 `json:"outstanding"`
}

func (s *Server) handleTotals(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.writeJSON(w, http.StatusOK, totalsResponse{
		Received:    s.store.TotalReceived(),
		Outstanding: s.store.TotalOutstanding(),
	})
}

func (s *Server) handleReminders(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	defer s.mu.Unlock()

	reminders := s.store.Reminders(time.Now())
	if reminders == nil {
		reminders = []string{}
	}
	s.writeJSON(w, http.StatusOK, reminders)
}

func (s *Server) writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		s.log.Error().Err(err).Msg("Failed to encode response")
	}
}

func (s *Server) writeError(w http.ResponseWriter, status int, msg string) {
	s.writeJSON(w, status, map[string]string{"error": msg})
}
