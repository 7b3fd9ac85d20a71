package rest

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/gorilla/mux"

	"github.com/JaviLianes8/RealTajoFCBack/internal/reprocess"
	"github.com/JaviLianes8/RealTajoFCBack/internal/service"
)

// DefaultMaxUploadBytes caps uploaded documents when no limit is configured.
const DefaultMaxUploadBytes = 10 << 20

// Options configures the REST server.
type Options struct {
	Port           string
	APIPrefix      string
	Version        string
	AllowedOrigins []string
	MaxUploadBytes int64
}

// Server represents the REST API server
type Server struct {
	port    string
	server  *http.Server
	handler *Handler
	router  *mux.Router
}

// NewServer creates a new REST API server. reprocessSvc may be nil, in
// which case the reprocess routes are not mounted.
func NewServer(opts Options, services *service.Services, reprocessSvc *reprocess.Service, health HealthChecker) *Server {
	if opts.APIPrefix == "" {
		opts.APIPrefix = "/api/v1"
	}
	if opts.MaxUploadBytes <= 0 {
		opts.MaxUploadBytes = DefaultMaxUploadBytes
	}

	handler := NewHandler(services, health, opts)

	router := mux.NewRouter()

	// Apply middleware
	router.Use(RecoveryMiddleware)
	router.Use(LoggingMiddleware)
	router.Use(CORSMiddleware(opts.AllowedOrigins))

	router.HandleFunc("/", handler.Root).Methods("GET")
	router.HandleFunc("/health", handler.HealthCheck).Methods("GET")

	// API v1 routes
	api := router.PathPrefix(opts.APIPrefix).Subrouter()
	api.HandleFunc("/status", handler.Status).Methods("GET")

	// Standings
	api.HandleFunc("/classification", handler.UploadClassification).Methods("POST", "PUT")
	api.HandleFunc("/classification", handler.GetClassification).Methods("GET")

	// Generic schedule documents
	api.HandleFunc("/schedule", handler.UploadSchedule).Methods("POST")
	api.HandleFunc("/schedule", handler.GetSchedule).Methods("GET")

	// Matchdays
	api.HandleFunc("/matchdays", handler.UploadMatchday).Methods("PUT")
	api.HandleFunc("/matchdays/last", handler.GetLastMatchday).Methods("GET")
	api.HandleFunc("/matchdays/last", handler.UpdateLastMatchday).Methods("PUT")
	api.HandleFunc("/matchdays/last", handler.DeleteLastMatchday).Methods("DELETE")
	api.HandleFunc("/matchdays/{number:[0-9]+}", handler.GetMatchday).Methods("GET")
	api.HandleFunc("/matchdays/{number:[0-9]+}", handler.DeleteMatchday).Methods("DELETE")

	// Results bulletins
	api.HandleFunc("/results", handler.UploadResults).Methods("PUT")
	api.HandleFunc("/results/last", handler.GetLastResults).Methods("GET")
	api.HandleFunc("/results/{number:[0-9]+}", handler.GetResults).Methods("GET")

	// Tracked team calendar
	api.HandleFunc("/real-tajo/calendar", handler.UploadCalendar).Methods("POST", "PUT")
	api.HandleFunc("/real-tajo/calendar", handler.GetCalendar).Methods("GET")

	// Top scorers
	api.HandleFunc("/top-scorers", handler.UploadTopScorers).Methods("PUT")
	api.HandleFunc("/top-scorers", handler.GetTopScorers).Methods("GET")

	// Reprocessing of archived uploads
	if reprocessSvc != nil {
		reprocessHandler := NewReprocessHandler(reprocessSvc)
		api.HandleFunc("/reprocess", reprocessHandler.HandleReprocessRequest).Methods("POST")
		api.HandleFunc("/reprocess/status", reprocessHandler.HandleReprocessStatus).Methods("GET")
	}

	// Preflight requests for any route
	router.PathPrefix("/").Methods("OPTIONS").HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNoContent)
	})

	return &Server{
		port:    opts.Port,
		handler: handler,
		router:  router,
		server: &http.Server{
			Addr:              fmt.Sprintf(":%s", opts.Port),
			Handler:           router,
			ReadHeaderTimeout: 10 * time.Second,
		},
	}
}

// Handler returns the router, mainly for tests.
func (s *Server) Handler() http.Handler {
	return s.router
}

// Start starts the REST API server
func (s *Server) Start() error {
	return s.server.ListenAndServe()
}

// Shutdown gracefully shuts down the server
func (s *Server) Shutdown(ctx context.Context) error {
	if s.server != nil {
		return s.server.Shutdown(ctx)
	}
	return nil
}
