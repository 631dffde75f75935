// Package server exposes the payment split engine as a JSON API.
package server

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/google/uuid"
	"github.com/propbooks/mortgage-split/internal/config"
	"github.com/propbooks/mortgage-split/internal/splits"
	"github.com/propbooks/mortgage-split/pkg/constants"
	"github.com/propbooks/mortgage-split/pkg/mortgage"
	"github.com/propbooks/mortgage-split/pkg/output"
	"go.uber.org/zap"
)

type handler struct {
	logger        *zap.Logger
	maxUploadSize int64
	version       string
}

// NewHandler constructs the HTTP handler that serves the split API.
func NewHandler(logger *zap.Logger, maxUploadSize int64, version string) http.Handler {
	if logger == nil {
		logger = zap.NewNop()
	}

	if maxUploadSize <= 0 {
		maxUploadSize = constants.DefaultMaxUploadSizeBytes
	}

	trimmedVersion := strings.TrimSpace(version)
	if trimmedVersion == "" {
		trimmedVersion = "dev"
	}

	h := &handler{logger: logger, maxUploadSize: maxUploadSize, version: trimmedVersion}

	r := chi.NewRouter()
	r.Use(requestID)
	r.Use(middleware.Recoverer)

	r.Post("/api/split", h.handleSplit)
	r.Post("/api/schedule", h.handleSchedule)
	r.Post("/api/deals", h.handleDeals)
	r.Get("/api/version", h.handleVersion)
	r.Get("/healthz", h.handleHealth)

	return r
}

// requestID tags every request with a unique id for log correlation.
func requestID(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id := r.Header.Get("X-Request-Id")
		if id == "" {
			id = uuid.NewString()
		}
		w.Header().Set("X-Request-Id", id)
		next.ServeHTTP(w, r)
	})
}

// loanTermsPayload mirrors the fields a deal record supplies.
type loanTermsPayload struct {
	OriginalLoanAmount float64 `json:"originalLoanAmount"`
	InterestRate       float64 `json:"interestRate"`
	LoanTermMonths     int     `json:"loanTermMonths"`
	CloseDate          string  `json:"closeDate"`
	FirstPaymentDate   string  `json:"firstPaymentDate,omitempty"`
	PaymentFrequency   string  `json:"paymentFrequency,omitempty"`
}

type splitRequest struct {
	loanTermsPayload
	PaymentDate      string  `json:"paymentDate"`
	TotalPaidAmount  float64 `json:"totalPaidAmount"`
	MonthlyTaxes     float64 `json:"monthlyTaxes,omitempty"`
	MonthlyInsurance float64 `json:"monthlyInsurance,omitempty"`
}

type dealsResponse struct {
	Deals    []dealHistory `json:"deals"`
	CSV      string        `json:"csv"`
	Warnings []string      `json:"warnings,omitempty"`
	Duration string        `json:"duration"`
}

type dealHistory struct {
	Deal string    `json:"deal"`
	Rows []dealRow `json:"rows"`
}

type dealRow struct {
	Date   string                      `json:"date"`
	Result mortgage.PaymentSplitResult `json:"result"`
}

func (p loanTermsPayload) loanTerms() (mortgage.LoanTerms, error) {
	deal := config.Deal{
		Name:               "request",
		OriginalLoanAmount: p.OriginalLoanAmount,
		InterestRate:       p.InterestRate,
		LoanTermMonths:     p.LoanTermMonths,
		CloseDate:          p.CloseDate,
		FirstPaymentDate:   p.FirstPaymentDate,
		PaymentFrequency:   p.PaymentFrequency,
	}
	return deal.LoanTerms()
}

func (p loanTermsPayload) validate() error {
	if p.OriginalLoanAmount <= 0 {
		return fmt.Errorf("originalLoanAmount must be positive")
	}
	if p.LoanTermMonths <= 0 {
		return fmt.Errorf("loanTermMonths must be positive")
	}
	if p.InterestRate < 0 {
		return fmt.Errorf("interestRate must not be negative")
	}
	return nil
}

func (h *handler) handleSplit(w http.ResponseWriter, r *http.Request) {
	var request splitRequest
	if err := json.NewDecoder(r.Body).Decode(&request); err != nil {
		h.respondError(w, http.StatusBadRequest, fmt.Sprintf("failed to decode request: %v", err), "server.handleSplit")
		return
	}

	if err := request.validate(); err != nil {
		h.respondError(w, http.StatusBadRequest, err.Error(), "server.handleSplit")
		return
	}
	if request.TotalPaidAmount <= 0 {
		h.respondError(w, http.StatusBadRequest, "totalPaidAmount must be positive", "server.handleSplit")
		return
	}

	terms, err := request.loanTerms()
	if err != nil {
		h.respondError(w, http.StatusBadRequest, err.Error(), "server.handleSplit")
		return
	}

	paymentDate, err := time.Parse(constants.DateLayout, request.PaymentDate)
	if err != nil {
		h.respondError(w, http.StatusBadRequest, fmt.Sprintf("invalid paymentDate %q", request.PaymentDate), "server.handleSplit")
		return
	}

	calculator := mortgage.NewSplitCalculator(h.logger)
	result := calculator.Split(terms, mortgage.PaymentObservation{
		PaymentDate:           paymentDate,
		TotalPaid:             request.TotalPaidAmount,
		KnownMonthlyTaxes:     request.MonthlyTaxes,
		KnownMonthlyInsurance: request.MonthlyInsurance,
	})

	h.writeJSON(w, http.StatusOK, result)
}

func (h *handler) handleSchedule(w http.ResponseWriter, r *http.Request) {
	var request loanTermsPayload
	if err := json.NewDecoder(r.Body).Decode(&request); err != nil {
		h.respondError(w, http.StatusBadRequest, fmt.Sprintf("failed to decode request: %v", err), "server.handleSchedule")
		return
	}

	if err := request.validate(); err != nil {
		h.respondError(w, http.StatusBadRequest, err.Error(), "server.handleSchedule")
		return
	}

	terms, err := request.loanTerms()
	if err != nil {
		h.respondError(w, http.StatusBadRequest, err.Error(), "server.handleSchedule")
		return
	}

	schedule := mortgage.ExpectedSchedule(terms)
	h.writeJSON(w, http.StatusOK, map[string]interface{}{
		"payment":  mortgage.LevelPayment(terms),
		"schedule": schedule,
	})
}

func (h *handler) handleDeals(w http.ResponseWriter, r *http.Request) {
	start := time.Now()
	if h.maxUploadSize > 0 {
		r.Body = http.MaxBytesReader(w, r.Body, h.maxUploadSize)
	}
	if err := r.ParseMultipartForm(h.maxUploadSize); err != nil {
		var maxBytesErr *http.MaxBytesError
		if errors.As(err, &maxBytesErr) {
			h.respondError(w, http.StatusRequestEntityTooLarge,
				fmt.Sprintf("upload exceeds limit of %d bytes", h.maxUploadSize), "server.handleDeals")
			return
		}
		h.respondError(w, http.StatusBadRequest, fmt.Sprintf("failed to parse upload: %v", err), "server.handleDeals")
		return
	}

	file, _, err := r.FormFile("file")
	if err != nil {
		h.respondError(w, http.StatusBadRequest, "missing deals file", "server.handleDeals")
		return
	}
	defer func() {
		if closeErr := file.Close(); closeErr != nil {
			h.logger.Warn("failed to close uploaded file",
				zap.String("op", "server.handleDeals"),
				zap.Error(closeErr),
			)
		}
	}()

	var buf bytes.Buffer
	if _, err := io.Copy(&buf, file); err != nil {
		h.respondError(w, http.StatusInternalServerError, fmt.Sprintf("failed to read deals file: %v", err), "server.handleDeals")
		return
	}

	conf, err := config.LoadConfigurationFromReader(bytes.NewReader(buf.Bytes()))
	if err != nil {
		h.respondError(w, http.StatusBadRequest, err.Error(), "server.handleDeals")
		return
	}

	warnings := conf.ValidateConfiguration()

	histories, err := splits.GetHistories(h.logger, *conf)
	if err != nil {
		h.respondError(w, http.StatusBadRequest, fmt.Sprintf("failed to compute splits: %v", err), "server.handleDeals")
		return
	}

	elapsed := time.Since(start)

	response := dealsResponse{
		Deals:    buildDealHistories(histories),
		CSV:      output.CsvString(histories),
		Warnings: warnings,
		Duration: elapsed.String(),
	}

	h.logger.Info("deal splits computed",
		zap.String("op", "server.handleDeals"),
		zap.Int("deals", len(response.Deals)),
		zap.Duration("duration", elapsed),
	)

	h.writeJSON(w, http.StatusOK, response)
}

func (h *handler) handleVersion(w http.ResponseWriter, r *http.Request) {
	h.writeJSON(w, http.StatusOK, map[string]string{
		"version": h.version,
	})
}

func (h *handler) handleHealth(w http.ResponseWriter, r *http.Request) {
	h.writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func buildDealHistories(histories []splits.History) []dealHistory {
	result := make([]dealHistory, 0, len(histories))
	for _, history := range histories {
		deal := dealHistory{Deal: history.Deal, Rows: make([]dealRow, 0, len(history.Rows))}
		for _, row := range history.Rows {
			deal.Rows = append(deal.Rows, dealRow{Date: row.Date, Result: row.Result})
		}
		result = append(result, deal)
	}
	return result
}

func (h *handler) respondError(w http.ResponseWriter, status int, msg string, op string) {
	h.logger.Error("request failed",
		zap.String("op", op),
		zap.Int("status", status),
		zap.String("error", msg),
	)

	h.writeJSON(w, status, map[string]string{"error": msg})
}

func (h *handler) writeJSON(w http.ResponseWriter, status int, payload interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(payload); err != nil {
		h.logger.Error("failed to write JSON response", zap.Error(err))
	}
}
