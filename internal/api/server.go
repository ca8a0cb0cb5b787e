// Package api exposes prompt compilation and guideline refresh over HTTP so
// external tools (shortcuts, editors, scripts) can drive the builder without
// the TUI.
package api

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"net/http"
	"strings"
	"time"

	"github.com/seoku/promptforge/internal/models"
	"github.com/seoku/promptforge/internal/service"
)

// Server is the HTTP surface over the service layer.
type Server struct {
	service *service.Service
	port    int
	server  *http.Server
}

// NewServer creates an API server on the given port.
func NewServer(svc *service.Service, port int) *Server {
	return &Server{service: svc, port: port}
}

// Response is the standard JSON envelope for every endpoint.
type Response struct {
	Success   bool        `json:"success"`
	Data      interface{} `json:"data,omitempty"`
	Error     string      `json:"error,omitempty"`
	Timestamp time.Time   `json:"timestamp"`
}

// BuildRequest is the body of POST /api/v1/build.
type BuildRequest struct {
	Model    string `json:"model"`
	Engine   string `json:"engine,omitempty"`
	Text     string `json:"text"`
	Aspect   string `json:"aspect,omitempty"`
	Stylize  int    `json:"stylize,omitempty"`
	Seed     string `json:"seed,omitempty"`
	Negative string `json:"negative,omitempty"`
}

// BuildResponse is the data payload of a successful build.
type BuildResponse struct {
	Full   string `json:"full"`
	Params string `json:"params"`
}

// Handler returns the routed handler with middleware applied; split out from
// Start so tests can drive it through httptest.
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("/api/v1/models", s.withMiddleware(s.handleModels))
	mux.HandleFunc("/api/v1/models/", s.withMiddleware(s.handleModelByID))
	mux.HandleFunc("/api/v1/build", s.withMiddleware(s.handleBuild))
	mux.HandleFunc("/api/v1/refresh", s.withMiddleware(s.handleRefresh))
	mux.HandleFunc("/api/v1/health", s.withMiddleware(s.handleHealth))
	return mux
}

// Start begins serving HTTP requests.
func (s *Server) Start() error {
	s.server = &http.Server{
		Addr:         fmt.Sprintf(":%d", s.port),
		Handler:      s.Handler(),
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	log.Printf("API server starting on http://localhost:%d", s.port)
	return s.server.ListenAndServe()
}

// Stop gracefully shuts down the server.
func (s *Server) Stop(ctx context.Context) error {
	if s.server == nil {
		return nil
	}
	return s.server.Shutdown(ctx)
}

func (s *Server) withMiddleware(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()

		w.Header().Set("Content-Type", "application/json")
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Methods", "GET, POST, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type")
		if r.Method == http.MethodOptions {
			w.WriteHeader(http.StatusOK)
			return
		}

		defer func() {
			if rec := recover(); rec != nil {
				log.Printf("Panic in handler: %v", rec)
				s.writeError(w, http.StatusInternalServerError, fmt.Errorf("internal server error"))
			}
		}()

		next(w, r)
		log.Printf("[%s] %s %s - %v", r.Method, r.URL.Path, r.RemoteAddr, time.Since(start))
	}
}

func (s *Server) handleModels(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		s.writeError(w, http.StatusMethodNotAllowed, fmt.Errorf("method not allowed"))
		return
	}

	if query := r.URL.Query().Get("q"); query != "" {
		s.writeSuccess(w, s.service.SearchModels(query))
		return
	}
	s.writeSuccess(w, s.service.Models())
}

func (s *Server) handleModelByID(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		s.writeError(w, http.StatusMethodNotAllowed, fmt.Errorf("method not allowed"))
		return
	}

	id := strings.TrimPrefix(r.URL.Path, "/api/v1/models/")
	doc, err := s.service.Document()
	if err != nil {
		s.writeError(w, http.StatusServiceUnavailable, err)
		return
	}
	m, ok := doc.FindModel(id)
	if !ok {
		s.writeError(w, http.StatusNotFound, fmt.Errorf("model %q not found", id))
		return
	}
	s.writeSuccess(w, m)
}

func (s *Server) handleBuild(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		s.writeError(w, http.StatusMethodNotAllowed, fmt.Errorf("method not allowed"))
		return
	}

	var req BuildRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.writeError(w, http.StatusBadRequest, fmt.Errorf("invalid request body: %w", err))
		return
	}
	if req.Model == "" {
		s.writeError(w, http.StatusBadRequest, fmt.Errorf("model is required"))
		return
	}

	res, err := s.service.Build(req.Model, req.Engine, req.Text, models.BuildOptions{
		Aspect:   req.Aspect,
		Stylize:  req.Stylize,
		Seed:     req.Seed,
		Negative: req.Negative,
	})
	if err != nil {
		if errors.Is(err, models.ErrModelUnavailable) {
			s.writeError(w, http.StatusNotFound, err)
			return
		}
		s.writeError(w, http.StatusInternalServerError, err)
		return
	}

	s.writeSuccess(w, BuildResponse{Full: res.Full, Params: res.Params})
}

func (s *Server) handleRefresh(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		s.writeError(w, http.StatusMethodNotAllowed, fmt.Errorf("method not allowed"))
		return
	}

	doc, err := s.service.Refresh(r.Context())
	if err != nil {
		s.writeError(w, http.StatusServiceUnavailable, err)
		return
	}
	s.writeSuccess(w, map[string]interface{}{
		"version":   doc.Version,
		"updatedAt": doc.UpdatedAt,
		"source":    doc.Source,
		"models":    len(doc.Models),
	})
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	status := map[string]interface{}{"status": "ok"}
	if doc, err := s.service.Document(); err == nil {
		status["guidelineVersion"] = doc.Version
		status["guidelineSource"] = doc.Source
	} else {
		status["status"] = "no guideline resolved"
	}
	s.writeSuccess(w, status)
}

func (s *Server) writeSuccess(w http.ResponseWriter, data interface{}) {
	json.NewEncoder(w).Encode(Response{
		Success:   true,
		Data:      data,
		Timestamp: time.Now(),
	})
}

func (s *Server) writeError(w http.ResponseWriter, status int, err error) {
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(Response{
		Success:   false,
		Error:     err.Error(),
		Timestamp: time.Now(),
	})
}
