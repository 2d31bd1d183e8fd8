package http

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"time"

	"github.com/gorilla/websocket"

	"github.com/emmett/conlang/internal/app"
	"github.com/emmett/conlang/internal/logging"
)

// Config holds server configuration
type Config struct {
	Host string
	Port int
}

// Server serves the JSON API over HTTP
type Server struct {
	config   Config
	service  *app.Service
	log      *logging.Logger
	upgrader websocket.Upgrader
	http     *http.Server
}

// NewServer creates a new HTTP server. It does not start listening.
func NewServer(cfg Config, service *app.Service, log *logging.Logger) *Server {
	s := &Server{
		config:  cfg,
		service: service,
		log:     log,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			// CORS is open, so the stream is too
			CheckOrigin: func(*http.Request) bool { return true },
		},
	}
	s.http = &http.Server{
		Addr:              net.JoinHostPort(cfg.Host, fmt.Sprint(cfg.Port)),
		Handler:           s.Handler(),
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       15 * time.Second,
		WriteTimeout:      60 * time.Second,
		IdleTimeout:       60 * time.Second,
	}
	return s
}

// Handler returns the routed handler with CORS and request logging applied
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("GET /{$}", s.handleRoot)
	mux.HandleFunc("GET /healthz", s.handleHealth)
	mux.HandleFunc("POST /api/create-language", s.handleCreateLanguage)
	mux.HandleFunc("POST /api/translate/{id}", s.handleTranslate)
	mux.HandleFunc("DELETE /api/languages/{id}", s.handleDeleteLanguage)
	mux.HandleFunc("GET /api/languages/{id}/phonemes", s.handlePhonemes)
	mux.HandleFunc("GET /api/languages/{id}/grammar", s.handleGrammar)
	mux.HandleFunc("GET /api/languages/{id}/vocabulary", s.handleVocabulary)
	mux.HandleFunc("POST /api/languages/{id}/words", s.handleWords)
	mux.HandleFunc("POST /api/languages/{id}/validate", s.handleValidate)
	mux.HandleFunc("GET /api/languages/{id}/stream", s.handleStream)

	return s.logRequests(cors(mux))
}

// Addr returns the configured listen address
func (s *Server) Addr() string {
	return s.http.Addr
}

// Start listens and serves until Shutdown
func (s *Server) Start() error {
	s.log.Infof("HTTP server listening on %s", s.http.Addr)
	if err := s.http.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return fmt.Errorf("http server failed: %w", err)
	}
	return nil
}

// Shutdown stops accepting connections and waits for in-flight requests
func (s *Server) Shutdown(ctx context.Context) error {
	return s.http.Shutdown(ctx)
}
