// Package sim implements a local stand-in for the outbound call engine.
//
// It serves the same HTTP API as the real engine (status and start
// endpoints) and drains submitted numbers sequentially on a timer instead
// of placing real calls. Useful for developing and demoing the console
// without live telephony credentials.
package sim

import (
	"context"
	"crypto/rand"
	"encoding/json"
	"fmt"
	"net/http"
	"sync"
	"time"

	"github.com/gorilla/mux"
	"go.uber.org/zap"

	"github.com/vocalq/dialctl/internal/engine"
	"github.com/vocalq/dialctl/internal/logging"
)

// Config holds simulator settings.
type Config struct {
	// Host to bind (empty = all interfaces)
	Host string

	// Port to listen on
	Port int

	// CallDuration is how long each simulated call stays active
	CallDuration time.Duration
}

// Server is the simulated engine. One worker goroutine drains the queue
// sequentially, mirroring the real engine's single dialing loop.
type Server struct {
	cfg Config

	mu             sync.Mutex
	queue          []string
	isRunning      bool
	currentCallSID string

	httpServer *http.Server
}

// New creates a simulator with the given configuration.
func New(cfg Config) *Server {
	if cfg.Port == 0 {
		cfg.Port = 8000
	}
	if cfg.CallDuration <= 0 {
		cfg.CallDuration = 2 * time.Second
	}
	return &Server{cfg: cfg}
}

// Handler returns the simulator's HTTP routes.
func (s *Server) Handler() http.Handler {
	r := mux.NewRouter()
	r.HandleFunc(engine.StatusPath, s.handleStatus).Methods(http.MethodGet)
	r.HandleFunc(engine.StartPath, s.handleStart).Methods(http.MethodPost)
	return r
}

// Start begins listening and blocks until the server stops.
func (s *Server) Start() error {
	addr := fmt.Sprintf("%s:%d", s.cfg.Host, s.cfg.Port)
	s.httpServer = &http.Server{
		Addr:         addr,
		Handler:      s.Handler(),
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 10 * time.Second,
	}

	logging.Info("simulator listening",
		zap.String("addr", addr),
		zap.Duration("call_duration", s.cfg.CallDuration),
	)

	if err := s.httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		return fmt.Errorf("simulator server error: %w", err)
	}
	return nil
}

// Shutdown stops the HTTP server gracefully.
func (s *Server) Shutdown(ctx context.Context) error {
	if s.httpServer == nil {
		return nil
	}
	return s.httpServer.Shutdown(ctx)
}

// statusResponse matches the engine's wire format. The SID is a pointer so
// an idle engine reports null, as the real engine does.
type statusResponse struct {
	IsRunning      bool    `json:"is_running"`
	QueueSize      int     `json:"queue_size"`
	CurrentCallSID *string `json:"current_call_sid"`
}

type startRequest struct {
	PhoneNumbers []string `json:"phone_numbers"`
}

type errorResponse struct {
	Detail string `json:"detail"`
}

func (s *Server) handleStatus(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	resp := statusResponse{
		IsRunning: s.isRunning,
		QueueSize: len(s.queue),
	}
	if s.currentCallSID != "" {
		sid := s.currentCallSID
		resp.CurrentCallSID = &sid
	}
	s.mu.Unlock()

	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleStart(w http.ResponseWriter, r *http.Request) {
	var req startRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Detail: "Invalid request body"})
		return
	}

	if len(req.PhoneNumbers) == 0 {
		writeJSON(w, http.StatusBadRequest, errorResponse{Detail: "Phone numbers list is empty"})
		return
	}

	s.enqueue(req.PhoneNumbers)

	logging.Info("batch accepted",
		zap.Int("numbers", len(req.PhoneNumbers)),
	)

	writeJSON(w, http.StatusOK, map[string]string{
		"message": fmt.Sprintf("Added %d numbers to queue and started processing.", len(req.PhoneNumbers)),
	})
}

// enqueue appends numbers and starts the worker if it is not running.
func (s *Server) enqueue(numbers []string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.queue = append(s.queue, numbers...)
	if !s.isRunning {
		s.isRunning = true
		go s.processQueue()
	}
}

// processQueue dials queued numbers one at a time until the queue is empty.
func (s *Server) processQueue() {
	for {
		s.mu.Lock()
		if len(s.queue) == 0 {
			s.isRunning = false
			s.currentCallSID = ""
			s.mu.Unlock()
			logging.Info("queue drained")
			return
		}
		number := s.queue[0]
		s.queue = s.queue[1:]
		s.currentCallSID = newCallSID()
		sid := s.currentCallSID
		s.mu.Unlock()

		logging.Info("simulated call started",
			zap.String("to", number),
			zap.String("call_sid", sid),
		)

		time.Sleep(s.cfg.CallDuration)

		logging.Info("simulated call completed",
			zap.String("call_sid", sid),
		)
	}
}

// newCallSID generates a Twilio-shaped call SID ("CA" + 32 hex chars).
func newCallSID() string {
	var b [16]byte
	if _, err := rand.Read(b[:]); err != nil {
		return "CA00000000000000000000000000000000"
	}
	return fmt.Sprintf("CA%x", b)
}

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		logging.Error("failed to encode response", zap.Error(err))
	}
}
