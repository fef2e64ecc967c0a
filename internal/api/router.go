package api

import (
	"context"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/ranykadour/AIDomainComplianceChecker/internal/types"
)

// requestTimeout bounds a full scan request, covering the homepage fallback
// chain, legal page probes, and the analysis call
const requestTimeout = 120 * time.Second

// DomainScanner runs the compliance pipeline for a single domain
type DomainScanner interface {
	Scan(ctx context.Context, domain string, site types.SiteContext) (*types.ScanReport, error)
}

// NewRouter creates a chi router with all endpoints and middleware
func NewRouter(scanner DomainScanner) http.Handler {
	h := &Handler{scanner: scanner}

	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)
	r.Use(middleware.Compress(5))
	r.Use(middleware.Timeout(requestTimeout))
	r.Use(middleware.Heartbeat("/ping"))
	r.Use(corsMiddleware)

	r.Route("/api", func(r chi.Router) {
		r.Get("/health", h.handleHealth)
		r.Post("/scan", h.handleScan)
	})

	return r
}

// corsMiddleware allows browser clients on any origin to call the API
func corsMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Methods", "GET, POST, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Accept, Authorization, Content-Type")

		if r.Method == http.MethodOptions {
			w.WriteHeader(http.StatusOK)

			return
		}

		next.ServeHTTP(w, r)
	})
}
