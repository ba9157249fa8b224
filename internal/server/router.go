package server

import (
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
	"gorm.io/gorm"

	"github.com/racunko/racunko/internal/handlers"
	"github.com/racunko/racunko/internal/httpx"
)

// New constructs the root http.Handler with all routes and middlewares applied.
func New(db *gorm.DB) http.Handler {
	mux := http.NewServeMux()

	// --- Health endpoints ---
	mux.HandleFunc("GET /health", func(w http.ResponseWriter, _ *http.Request) {
		httpx.JSON(w, http.StatusOK, map[string]string{"status": "ok", "timestamp": time.Now().UTC().Format(time.RFC3339)})
	})
	mux.HandleFunc("GET /healthz", func(w http.ResponseWriter, _ *http.Request) {
		// Lightweight DB check (SELECT 1)
		if err := db.Exec("SELECT 1").Error; err != nil {
			httpx.JSON(w, http.StatusServiceUnavailable, map[string]string{"status": "degraded"})
			return
		}
		httpx.JSON(w, http.StatusOK, map[string]string{"status": "ok"})
	})

	ch := handlers.NewCompanyHandler(db)
	mux.HandleFunc("GET /api/companies", ch.List)
	mux.HandleFunc("POST /api/companies", ch.Create)
	mux.HandleFunc("GET /api/companies/{id}", ch.Get)
	mux.HandleFunc("PUT /api/companies/{id}", ch.Update)
	mux.HandleFunc("DELETE /api/companies/{id}", ch.Delete)

	clh := handlers.NewClientHandler(db)
	mux.HandleFunc("GET /api/clients", clh.List)
	mux.HandleFunc("POST /api/clients", clh.Create)
	mux.HandleFunc("GET /api/clients/{id}", clh.Get)
	mux.HandleFunc("PUT /api/clients/{id}", clh.Update)
	mux.HandleFunc("DELETE /api/clients/{id}", clh.Delete)

	ih := handlers.NewInvoiceHandler(db)
	mux.HandleFunc("GET /api/invoices", ih.List)
	mux.HandleFunc("POST /api/invoices", ih.Create)
	mux.HandleFunc("GET /api/invoices/{id}", ih.Get)
	mux.HandleFunc("PUT /api/invoices/{id}", ih.Update)
	mux.HandleFunc("DELETE /api/invoices/{id}", ih.Delete)

	th := handlers.NewTaxRuleHandler(db)
	mux.HandleFunc("GET /api/tax/rules", th.List)
	mux.HandleFunc("POST /api/tax/rules", th.Create)
	mux.HandleFunc("GET /api/tax/rules/{id}", th.Get)
	mux.HandleFunc("PUT /api/tax/rules/{id}", th.Update)
	mux.HandleFunc("DELETE /api/tax/rules/{id}", th.Delete)

	ph := handlers.NewPDFHandler(db)
	mux.HandleFunc("POST /api/pdf/invoice/{id}", ph.Invoice)

	return withRecover(withLogging(mux))
}

// statusRecorder captures the status code written by downstream handlers.
type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (r *statusRecorder) WriteHeader(code int) {
	r.status = code
	r.ResponseWriter.WriteHeader(code)
}

func withLogging(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}
		requestID := uuid.NewString()
		rec.Header().Set("X-Request-ID", requestID)
		next.ServeHTTP(rec, r)
		log.Info().
			Str("request_id", requestID).
			Str("method", r.Method).
			Str("path", r.URL.Path).
			Int("status", rec.status).
			Dur("duration", time.Since(start)).
			Msg("request")
	})
}

func withRecover(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		defer func() {
			if rec := recover(); rec != nil {
				log.Error().Any("panic", rec).Str("path", r.URL.Path).Msg("handler panicked")
				httpx.JSONError(w, http.StatusInternalServerError, "internal_error", nil)
			}
		}()
		next.ServeHTTP(w, r)
	})
}
