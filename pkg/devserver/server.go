// Package devserver is an in-process development backend implementing the
// HomeNet HTTP API over an in-memory store. It issues real JWTs, validates
// payloads and generates mock weather, so the client can be exercised
// end to end without the hosted service.
package devserver

import (
	"errors"
	"net/http"
	"time"

	"github.com/gorilla/mux"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"golang.org/x/crypto/bcrypt"
	"golang.org/x/time/rate"
)

// Version is reported by the health endpoint
const Version = "1.0.0"

// Defaults applied by New for zero Config fields
const (
	DefaultTokenTTL      = 24 * time.Hour
	DefaultAuthRateLimit = rate.Limit(5)
	DefaultAuthBurst     = 10
)

// Config configures the development backend
type Config struct {
	// JWTSecret signs and verifies access tokens. Required.
	JWTSecret string
	// TokenTTL is the access token lifetime
	TokenTTL time.Duration
	// AllowedOrigins lists the CORS origins echoed back to browsers
	AllowedOrigins []string
	// AuthRateLimit and AuthBurst bound requests per client IP on /auth/*.
	// Use rate.Inf to disable limiting.
	AuthRateLimit rate.Limit
	AuthBurst     int
	// BcryptCost is the password hashing cost
	BcryptCost int
}

// Server is the development backend
type Server struct {
	cfg       Config
	store     *memoryStore
	validator *validator
	limiter   *ipLimiter
	Router    *mux.Router
}

// New creates a development backend with its routes configured
func New(cfg Config) (*Server, error) {
	if cfg.JWTSecret == "" {
		return nil, errors.New("devserver: JWT secret is required")
	}
	if cfg.TokenTTL <= 0 {
		cfg.TokenTTL = DefaultTokenTTL
	}
	if cfg.AuthRateLimit == 0 {
		cfg.AuthRateLimit = DefaultAuthRateLimit
	}
	if cfg.AuthBurst <= 0 {
		cfg.AuthBurst = DefaultAuthBurst
	}
	if cfg.BcryptCost == 0 {
		cfg.BcryptCost = bcrypt.DefaultCost
	}
	if len(cfg.AllowedOrigins) == 0 {
		cfg.AllowedOrigins = []string{"http://localhost:5173", "http://localhost:3000"}
	}

	v, err := newValidator()
	if err != nil {
		return nil, err
	}

	s := &Server{
		cfg:       cfg,
		store:     newMemoryStore(),
		validator: v,
		limiter:   newIPLimiter(cfg.AuthRateLimit, cfg.AuthBurst),
		Router:    mux.NewRouter(),
	}
	s.setup()
	return s, nil
}

// ServeHTTP dispatches to the router
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.Router.ServeHTTP(w, r)
}

// setup configures all API routes
func (s *Server) setup() {
	r := s.Router
	r.Use(s.metricsMiddleware)
	r.Use(s.corsMiddleware)

	// Global OPTIONS handler - catches all preflight requests
	r.Methods(http.MethodOptions).HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNoContent)
	})
	r.NotFoundHandler = http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		writeError(w, http.StatusNotFound, "Not Found")
	})

	r.HandleFunc("/health", s.handleHealth).Methods(http.MethodGet)
	r.Handle("/metrics", promhttp.Handler()).Methods(http.MethodGet)

	// Auth endpoints share the rate limiter
	auth := r.PathPrefix("/auth").Subrouter()
	auth.Use(s.rateLimitMiddleware)
	auth.HandleFunc("/register", s.handleRegister).Methods(http.MethodPost)
	auth.HandleFunc("/login", s.handleLogin).Methods(http.MethodPost)

	me := auth.PathPrefix("").Subrouter()
	me.Use(s.jwtAuthMiddleware)
	me.HandleFunc("/me", s.handleMe).Methods(http.MethodGet)

	// Everything else requires a bearer token
	protected := r.PathPrefix("").Subrouter()
	protected.Use(s.jwtAuthMiddleware)

	// Locations
	protected.HandleFunc("/locations/search", s.handleSearchLocations).Methods(http.MethodGet)
	protected.HandleFunc("/locations", s.handleListLocations).Methods(http.MethodGet)
	protected.HandleFunc("/locations", s.handleAddLocation).Methods(http.MethodPost)
	protected.HandleFunc("/locations/{id}", s.handleDeleteLocation).Methods(http.MethodDelete)

	// Weather
	protected.HandleFunc("/weather/{locationId}", s.handleWeather).Methods(http.MethodGet)

	// Devices
	protected.HandleFunc("/devices", s.handleListDevices).Methods(http.MethodGet)
	protected.HandleFunc("/devices", s.handleCreateDevice).Methods(http.MethodPost)
	protected.HandleFunc("/devices/{id}", s.handleUpdateDevice).Methods(http.MethodPatch)
	protected.HandleFunc("/devices/{id}", s.handleDeleteDevice).Methods(http.MethodDelete)

	// Alerts
	protected.HandleFunc("/alerts/{locationId}", s.handleListAlerts).Methods(http.MethodGet)
	protected.HandleFunc("/alerts/{locationId}/generate", s.handleGenerateAlerts).Methods(http.MethodPost)
	protected.HandleFunc("/alerts/{id}/read", s.handleMarkAlertRead).Methods(http.MethodPost)

	// AI assistant
	protected.HandleFunc("/ai/chat", s.handleChat).Methods(http.MethodPost)
	protected.HandleFunc("/ai/insights", s.handleInsights).Methods(http.MethodGet)

	// Settings and account data
	protected.HandleFunc("/settings", s.handleGetSettings).Methods(http.MethodGet)
	protected.HandleFunc("/settings", s.handleUpdateSettings).Methods(http.MethodPut)
	protected.HandleFunc("/user/data", s.handleDeleteUserData).Methods(http.MethodDelete)
}
