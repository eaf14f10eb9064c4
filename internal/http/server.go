// Package http exposes the JSON API: the merged ledger, transaction and job
// mutations, employers and the user profile.
package http

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"watwallet/internal/geo"
	"watwallet/internal/services"
	"watwallet/internal/session"
)

// Server wraps http.Server with the service dependencies the handlers need.
type Server struct {
	http.Server

	ledger       *services.LedgerService
	transactions *services.TransactionService
	jobs         *services.JobService
	employers    *services.EmployerService
	users        *services.UserService
	identity     session.Identity
	geocoder     geo.Geocoder
}

// NewServer configures routes and middleware, returning a ready-to-run server.
func NewServer(
	addr string,
	ledger *services.LedgerService,
	transactions *services.TransactionService,
	jobs *services.JobService,
	employers *services.EmployerService,
	users *services.UserService,
	identity session.Identity,
	geocoder geo.Geocoder,
) *Server {
	mux := http.NewServeMux()

	s := &Server{
		Server: http.Server{
			Addr:         addr,
			Handler:      mux,
			ReadTimeout:  10 * time.Second,
			WriteTimeout: 30 * time.Second,
			IdleTimeout:  60 * time.Second,
		},
		ledger:       ledger,
		transactions: transactions,
		jobs:         jobs,
		employers:    employers,
		users:        users,
		identity:     identity,
		geocoder:     geocoder,
	}

	mux.HandleFunc("GET /healthz", handleHealth)
	mux.HandleFunc("GET /readyz", handleHealth)

	mux.HandleFunc("GET /api/v1/ledger", s.traced(s.authenticated(s.handleGetLedger)))

	mux.HandleFunc("POST /api/v1/incomes", s.traced(s.authenticated(s.handleCreateIncome)))
	mux.HandleFunc("GET /api/v1/incomes/{id}", s.traced(s.authenticated(s.handleGetIncome)))
	mux.HandleFunc("PUT /api/v1/incomes/{id}", s.traced(s.authenticated(s.handleUpdateIncome)))
	mux.HandleFunc("DELETE /api/v1/incomes/{id}", s.traced(s.authenticated(s.handleDeleteIncome)))

	mux.HandleFunc("POST /api/v1/expenses", s.traced(s.authenticated(s.handleCreateExpense)))
	mux.HandleFunc("GET /api/v1/expenses/{id}", s.traced(s.authenticated(s.handleGetExpense)))
	mux.HandleFunc("PUT /api/v1/expenses/{id}", s.traced(s.authenticated(s.handleUpdateExpense)))
	mux.HandleFunc("DELETE /api/v1/expenses/{id}", s.traced(s.authenticated(s.handleDeleteExpense)))

	mux.HandleFunc("GET /api/v1/jobs", s.traced(s.authenticated(s.handleListJobs)))
	mux.HandleFunc("POST /api/v1/jobs", s.traced(s.authenticated(s.handleCreateJob)))
	mux.HandleFunc("GET /api/v1/jobs/{id}", s.traced(s.authenticated(s.handleGetJob)))
	mux.HandleFunc("PUT /api/v1/jobs/{id}", s.traced(s.authenticated(s.handleUpdateJob)))
	mux.HandleFunc("DELETE /api/v1/jobs/{id}", s.traced(s.authenticated(s.handleDeleteJob)))

	mux.HandleFunc("GET /api/v1/places", s.traced(s.authenticated(s.handleSearchPlaces)))

	mux.HandleFunc("GET /api/v1/employers", s.traced(s.authenticated(s.handleListEmployers)))
	mux.HandleFunc("POST /api/v1/employers", s.traced(s.authenticated(s.handleCreateEmployer)))

	mux.HandleFunc("GET /api/v1/me", s.traced(s.authenticated(s.handleGetProfile)))
	mux.HandleFunc("PUT /api/v1/me", s.traced(s.authenticated(s.handleUpdateProfile)))
	mux.HandleFunc("POST /api/v1/logout", s.traced(s.authenticated(s.handleLogout)))

	return s
}

func handleHealth(w http.ResponseWriter, _ *http.Request) {
	w.WriteHeader(http.StatusOK)
	w.Write([]byte("ok"))
}

// traced assigns a request id, stores it in the context and logs the
// request with its duration.
func (s *Server) traced(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		requestID := generateRequestID()

		ctx := withRequestID(r.Context(), requestID)
		r = r.WithContext(ctx)
		w.Header().Set("X-Request-ID", requestID)

		next(w, r)

		slog.InfoContext(ctx, "Request handled",
			"request_id", requestID,
			"method", r.Method,
			"path", r.URL.Path,
			"duration_ms", time.Since(start).Milliseconds())
	}
}

// authenticated resolves the signed-in user and stores the id in the
// request context for handlers to pick up.
func (s *Server) authenticated(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		uid, err := s.identity.CurrentUserID(r.Context())
		if err != nil {
			writeError(w, r, http.StatusUnauthorized, "not authenticated")
			return
		}
		next(w, r.WithContext(session.WithUserID(r.Context(), uid)))
	}
}

func (s *Server) Shutdown(ctx context.Context) error {
	return s.Server.Shutdown(ctx)
}
