package chi

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	answeruc "github.com/contoso-cloud/handbookqa/internal/usecase/answer"
	healthuc "github.com/contoso-cloud/handbookqa/internal/usecase/health"
	"github.com/contoso-cloud/handbookqa/internal/version"
)

// maxQueryLength bounds the accepted question size.
const maxQueryLength = 2000

// ErrorResponse is the JSON error body returned by the API.
type ErrorResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// AskRequest is the request body for POST /v1/ask.
type AskRequest struct {
	Query string `json:"query"`
	Top   int    `json:"top,omitempty"`
}

// AskResponse is the response body for POST /v1/ask.
type AskResponse struct {
	Answer string `json:"answer"`
}

// HealthResponse is the response body for GET /health.
type HealthResponse struct {
	Status  string            `json:"status"`
	Version string            `json:"version"`
	Checks  map[string]string `json:"checks,omitempty"`
}

// Server exposes the handbook answering service over HTTP.
type Server struct {
	answers    *answeruc.Service
	health     *healthuc.Service
	defaultTop int
	logger     *zap.Logger
}

// NewServer creates an HTTP API server. defaultTop is used when a request
// does not specify how many passages to retrieve.
func NewServer(answers *answeruc.Service, health *healthuc.Service, defaultTop int, logger *zap.Logger) *Server {
	return &Server{
		answers:    answers,
		health:     health,
		defaultTop: defaultTop,
		logger:     logger,
	}
}

// Routes registers the API handlers on the given router.
func (s *Server) Routes(r chi.Router) {
	r.Post("/v1/ask", s.Ask)
	r.Get("/health", s.HealthCheck)
	r.Get("/metrics", s.Metrics)
}

// Ask handles POST /v1/ask.
//
// Provider failures never surface as HTTP errors: the answering service
// folds them into a readable answer string, so the response is 200 even
// when a backend is down. Only malformed requests get a 4xx.
func (s *Server) Ask(w http.ResponseWriter, r *http.Request) {
	var req AskRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil && !errors.Is(err, io.EOF) {
		writeError(w, http.StatusBadRequest, "bad_request", "Invalid request body: "+err.Error())
		return
	}

	if req.Query == "" {
		writeError(w, http.StatusBadRequest, "validation_failed", "Query is required")
		return
	}
	if len(req.Query) > maxQueryLength {
		writeError(w, http.StatusBadRequest, "validation_failed", "Query is too long")
		return
	}
	if req.Top < 0 {
		writeError(w, http.StatusBadRequest, "validation_failed", "Top must not be negative")
		return
	}

	top := req.Top
	if top == 0 {
		top = s.defaultTop
	}

	answer := s.answers.QueryHandbook(r.Context(), req.Query, top)

	writeJSON(w, http.StatusOK, AskResponse{Answer: answer})
}

// HealthCheck handles GET /health.
func (s *Server) HealthCheck(w http.ResponseWriter, r *http.Request) {
	report := s.health.Check(r.Context())

	checks := make(map[string]string, len(report.Checks))
	for k, v := range report.Checks {
		checks[k] = string(v)
	}

	httpStatus := http.StatusOK
	if report.Status != healthuc.Healthy {
		httpStatus = http.StatusServiceUnavailable
	}

	writeJSON(w, httpStatus, HealthResponse{
		Status:  string(report.Status),
		Version: version.Version,
		Checks:  checks,
	})
}

// Metrics handles GET /metrics.
func (s *Server) Metrics(w http.ResponseWriter, r *http.Request) {
	promhttp.Handler().ServeHTTP(w, r)
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, code, message string) {
	writeJSON(w, status, ErrorResponse{
		Code:    code,
		Message: message,
	})
}
