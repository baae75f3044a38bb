package server

import (
	"context"
	"encoding/json"
	"net"
	"net/http"
	"strconv"
	"time"

	"github.com/gorilla/mux"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"gentlix-bank/internal/config"
	"gentlix-bank/internal/handler"
	"gentlix-bank/internal/iban"
	"gentlix-bank/internal/repository"
	"gentlix-bank/internal/service"
	"gentlix-bank/internal/session"
)

// Server represents the HTTP server
type Server struct {
	router   *mux.Router
	server   *http.Server
	store    *repository.Store
	sessions *session.Manager
	limiter  *RateLimiter
	logger   zerolog.Logger
	port     string
}

// NewServer wires the repository, services and handlers behind the router.
func NewServer(cfg *config.Config, logger zerolog.Logger) *Server {
	// Initialize store (Unit of Work)
	store := repository.NewStore(cfg.RepositoryCapacity, logger)
	sessions := session.NewManager(cfg.SessionTTL, logger)
	sessions.StartCleanup(session.CleanupInterval)
	ibans := iban.NewGenerator(cfg.IBANPrefix)
	limiter := NewRateLimiter(cfg.AuthRateLimit, cfg.AuthRateBurst, logger)

	// Initialize services
	accountService := service.NewAccountService(store, sessions, ibans, logger)
	transactionService := service.NewTransactionService(store, logger)

	// Initialize handlers
	accountHandler := handler.NewAccountHandler(accountService)
	transactionHandler := handler.NewTransactionHandler(transactionService)

	router := mux.NewRouter()
	router.Use(loggingMiddleware(logger))

	authRequired := sessionMiddleware(sessions)
	throttled := rateLimitMiddleware(limiter, logger)

	// Registration and login
	router.Handle("/accounts", throttled(http.HandlerFunc(accountHandler.Register))).Methods("POST")
	router.Handle("/sessions", throttled(http.HandlerFunc(accountHandler.Login))).Methods("POST")
	router.Handle("/sessions", authRequired(http.HandlerFunc(accountHandler.Logout))).Methods("DELETE")

	// Routes scoped to the logged-in account
	account := router.PathPrefix("/account").Subrouter()
	account.Use(authRequired)
	account.HandleFunc("", accountHandler.GetAccount).Methods("GET")
	account.HandleFunc("", accountHandler.EditAccount).Methods("PATCH")
	account.HandleFunc("", accountHandler.DeleteAccount).Methods("DELETE")

	account.HandleFunc("/deposits", transactionHandler.Deposit).Methods("POST")
	account.HandleFunc("/withdrawals", transactionHandler.Withdraw).Methods("POST")
	account.HandleFunc("/transfers", transactionHandler.Transfer).Methods("POST")
	account.HandleFunc("/payments", transactionHandler.Payment).Methods("POST")
	account.HandleFunc("/transactions", transactionHandler.History).Methods("GET")

	account.HandleFunc("/affiliates", accountHandler.ListAffiliates).Methods("GET")
	account.HandleFunc("/affiliates", accountHandler.AddAffiliate).Methods("POST")
	account.HandleFunc("/affiliates/{tag}", accountHandler.RemoveAffiliate).Methods("DELETE")

	account.HandleFunc("/sub-accounts", accountHandler.ListSubAccounts).Methods("GET")
	account.HandleFunc("/sub-accounts", accountHandler.OpenSubAccount).Methods("POST")
	account.HandleFunc("/sub-accounts/{type}", accountHandler.CloseSubAccount).Methods("DELETE")

	// Health check
	router.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
		size, capacity := store.Stats()

		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(map[string]interface{}{
			"status":              "healthy",
			"timestamp":           time.Now().UTC().Format(time.RFC3339),
			"accounts":            size,
			"repository_capacity": capacity,
			"sessions":            sessions.Len(),
		})
	}).Methods("GET")

	return &Server{
		router:   router,
		store:    store,
		sessions: sessions,
		limiter:  limiter,
		logger:   logger,
	}
}

// Start starts the HTTP server on the specified port
func (s *Server) Start(port string) (string, error) {
	// Create listener first to get actual port
	listener, err := net.Listen("tcp", ":"+port)
	if err != nil {
		return "", err
	}

	addr := listener.Addr().(*net.TCPAddr)
	s.port = strconv.Itoa(addr.Port)

	s.server = &http.Server{
		Handler:      s.router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	s.logger.Info().Str("port", s.port).Msg("Starting server")

	go func() {
		if err := s.server.Serve(listener); err != nil && err != http.ErrServerClosed {
			s.logger.Error().Err(err).Msg("Server failed")
		}
	}()

	return s.port, nil
}

// Stop shuts the HTTP server down gracefully and then disposes of the
// repository together with every account it owns.
func (s *Server) Stop(ctx context.Context) error {
	s.logger.Info().Msg("Shutting down server")

	s.limiter.Stop()
	s.sessions.Stop()

	var err error
	if s.server != nil {
		err = s.server.Shutdown(ctx)
	}

	s.store.Destroy()
	return err
}

// GetPort returns the port the server is listening on
func (s *Server) GetPort() string {
	return s.port
}

// GetBaseURL returns the base URL for the server
func (s *Server) GetBaseURL() string {
	return "http://localhost:" + s.port
}

// GetRouter returns the router for testing purposes
func (s *Server) GetRouter() *mux.Router {
	return s.router
}

// StartServer builds and starts a server from cfg. Port "0" picks a free port
// and silences logging, which is how tests run it.
func StartServer(cfg *config.Config) (*Server, string, error) {
	logger := log.Logger
	if cfg.ServerPort == "0" {
		logger = zerolog.Nop()
	}

	server := NewServer(cfg, logger)

	port, err := server.Start(cfg.ServerPort)
	if err != nil {
		server.limiter.Stop()
		server.sessions.Stop()
		return nil, "", err
	}

	return server, port, nil
}
