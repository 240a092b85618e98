// Package api exposes the expense tracker over HTTP. Handlers translate JSON
// requests into ledger and settings calls and mirror their permissive
// contract: mutations on unknown records succeed with an empty response.
package api

import (
	"encoding/json"
	"net/http"
	"time"

	"spendwise/internal/ledger"
	"spendwise/internal/logger"
	"spendwise/internal/settings"
)

// Server routes API requests to the ledger and settings store.
type Server struct {
	ledger   *ledger.Ledger
	settings *settings.Store
	mux      *http.ServeMux
}

// New builds the server and registers all routes.
func New(ledger *ledger.Ledger, settings *settings.Store) *Server {
	s := &Server{ledger: ledger, settings: settings, mux: http.NewServeMux()}

	s.mux.HandleFunc("GET /api/expenses", s.listExpenses)
	s.mux.HandleFunc("POST /api/expenses", s.createExpense)
	s.mux.HandleFunc("PUT /api/expenses/{id}", s.updateExpense)
	s.mux.HandleFunc("DELETE /api/expenses/{id}", s.deleteExpense)
	s.mux.HandleFunc("POST /api/expenses/{id}/settle", s.settleExpense)
	s.mux.HandleFunc("POST /api/expenses/{id}/unsettle", s.unsettleExpense)

	s.mux.HandleFunc("GET /api/summary", s.monthlySummary)
	s.mux.HandleFunc("GET /api/export", s.exportCSV)
	s.mux.HandleFunc("GET /api/chart", s.categoryChart)

	s.mux.HandleFunc("GET /api/settings", s.getSettings)
	s.mux.HandleFunc("PUT /api/settings", s.updateSettings)
	s.mux.HandleFunc("POST /api/categories", s.addCategory)
	s.mux.HandleFunc("PUT /api/categories/{name}", s.renameCategory)
	s.mux.HandleFunc("DELETE /api/categories/{name}", s.deleteCategory)

	return s
}

// Handler returns the routed handler wrapped with request logging.
func (s *Server) Handler() http.Handler {
	return logRequests(s.mux)
}

type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (r *statusRecorder) WriteHeader(status int) {
	r.status = status
	r.ResponseWriter.WriteHeader(status)
}

func logRequests(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}
		next.ServeHTTP(rec, r)
		logger.Log.Debug().
			Str("method", r.Method).
			Str("path", r.URL.Path).
			Int("status", rec.status).
			Dur("duration", time.Since(start)).
			Msg("Request handled")
	})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		logger.Log.Warn().Err(err).Msg("Failed to encode response")
	}
}

func writeError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, map[string]string{"error": message})
}

func decodeBody(w http.ResponseWriter, r *http.Request, v any) bool {
	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		writeError(w, http.StatusBadRequest, "malformed request body")
		return false
	}
	return true
}

// parseMonth reads the ?month=YYYY-MM query parameter, defaulting to the
// current month when absent.
func parseMonth(r *http.Request) (int, time.Month, bool) {
	raw := r.URL.Query().Get("month")
	if raw == "" {
		now := time.Now()
		return now.Year(), now.Month(), true
	}
	parsed, err := time.Parse("2006-01", raw)
	if err != nil {
		return 0, 0, false
	}
	return parsed.Year(), parsed.Month(), true
}
