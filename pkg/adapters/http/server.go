package http

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strings"

	"github.com/aretw0/turing"
	"github.com/aretw0/turing/internal/presentation/graph"
	"github.com/aretw0/turing/internal/validator"
	"github.com/aretw0/turing/pkg/domain"
	"github.com/aretw0/turing/pkg/ports"
	"github.com/aretw0/turing/pkg/runner"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// maxBodyBytes bounds a /simulate request body.
const maxBodyBytes = 1 << 20

// Machine is the compiled machine served by the API. *turing.Machine satisfies it.
type Machine interface {
	Definition() *domain.Definition
	Run(ctx context.Context, inputs []string, opts ...runner.Option) ([]domain.RunResult, error)
}

// SimulateRequest is the body of POST /simulate.
// Without Machine the loaded machine is used; Inputs falls back to its declared inputs.
type SimulateRequest struct {
	Inputs    []string           `json:"inputs"`
	StepLimit int                `json:"step_limit,omitempty"`
	Machine   *domain.Definition `json:"machine,omitempty"`
}

// SimulateResponse is the body returned by POST /simulate.
type SimulateResponse struct {
	Machine string             `json:"machine"`
	Results []domain.RunResult `json:"results"`
}

// ErrorResponse is returned for every non-2xx answer.
type ErrorResponse struct {
	Error   string   `json:"error"`
	Details []string `json:"details,omitempty"`
}

// Server serves a machine over HTTP.
type Server struct {
	Machine     Machine
	Store       ports.ResultStore
	Gatherer    prometheus.Gatherer
	Hooks       domain.LifecycleHooks
	Concurrency int
	Logger      *slog.Logger
	Streams     *StreamManager
}

// Option configures the Server.
type Option func(*Server)

// WithStore archives every result and enables the /runs endpoints.
func WithStore(store ports.ResultStore) Option {
	return func(s *Server) {
		s.Store = store
	}
}

// WithGatherer exposes a Prometheus registry on /metrics.
func WithGatherer(g prometheus.Gatherer) Option {
	return func(s *Server) {
		s.Gatherer = g
	}
}

// WithLifecycleHooks attaches hooks to ad hoc machines posted to /simulate.
// Hooks of the loaded machine are set when it is compiled.
func WithLifecycleHooks(hooks domain.LifecycleHooks) Option {
	return func(s *Server) {
		s.Hooks = hooks
	}
}

// WithConcurrency sets how many inputs of one request run at once.
func WithConcurrency(n int) Option {
	return func(s *Server) {
		s.Concurrency = n
	}
}

// WithLogger sets the structured logger.
func WithLogger(logger *slog.Logger) Option {
	return func(s *Server) {
		if logger != nil {
			s.Logger = logger
		}
	}
}

// NewServer creates a Server for m.
func NewServer(m Machine, opts ...Option) *Server {
	s := &Server{
		Machine:     m,
		Concurrency: 1,
		Logger:      slog.New(slog.NewTextHandler(io.Discard, nil)),
		Streams:     NewStreamManager(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// NewHandler creates a new HTTP handler for the machine.
func NewHandler(m Machine, opts ...Option) http.Handler {
	return NewServer(m, opts...).Routes()
}

// Routes builds the chi router.
func (s *Server) Routes() http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.Recoverer)
	r.Use(enableCORS)

	r.Get("/healthz", s.GetHealth)
	r.Get("/info", s.GetInfo)
	r.Get("/machine", s.GetMachine)
	r.Get("/graph", s.GetGraph)
	r.Post("/simulate", s.Simulate)
	r.Get("/events", s.SubscribeEvents)

	r.Route("/runs", func(r chi.Router) {
		r.Get("/", s.ListRuns)
		r.Get("/{runID}", s.GetRun)
		r.Delete("/{runID}", s.DeleteRun)
	})

	if s.Gatherer != nil {
		r.Handle("/metrics", promhttp.HandlerFor(s.Gatherer, promhttp.HandlerOpts{}))
	}
	return r
}

func enableCORS(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Methods", "GET, POST, DELETE, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type")
		if r.Method == "OPTIONS" {
			w.WriteHeader(http.StatusOK)
			return
		}
		next.ServeHTTP(w, r)
	})
}

// Simulate handles the POST /simulate request.
func (s *Server) Simulate(w http.ResponseWriter, r *http.Request) {
	var body SimulateRequest
	if err := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes)).Decode(&body); err != nil {
		s.fail(w, http.StatusBadRequest, fmt.Errorf("invalid request body: %w", err))
		return
	}

	m := s.Machine
	if body.Machine != nil {
		adhoc, err := turing.NewFromDefinition(body.Machine,
			turing.WithLogger(s.Logger),
			turing.WithLifecycleHooks(s.Hooks),
		)
		if err != nil {
			s.fail(w, statusFor(err), err)
			return
		}
		m = adhoc
	}

	inputs := body.Inputs
	if inputs == nil {
		inputs = m.Definition().Inputs
	}
	inputs, err := runner.SanitizeInputs(inputs)
	if err != nil {
		s.fail(w, http.StatusBadRequest, err)
		return
	}

	opts := []runner.Option{
		runner.WithLogger(s.Logger),
		runner.WithConcurrency(s.Concurrency),
	}
	if body.StepLimit > 0 {
		opts = append(opts, runner.WithStepLimit(body.StepLimit))
	}
	if s.Store != nil {
		opts = append(opts, runner.WithStore(s.Store))
	}

	results, err := m.Run(r.Context(), inputs, opts...)
	if err != nil {
		s.fail(w, statusFor(err), err)
		return
	}

	name := m.Definition().Name
	s.Logger.Info("Simulated", "machine", name, "inputs", len(results))
	for _, res := range results {
		if payload, err := json.Marshal(res); err == nil {
			s.Streams.Broadcast(name, string(payload))
		}
	}

	writeJSON(w, http.StatusOK, SimulateResponse{Machine: name, Results: results})
}

// GetMachine handles the GET /machine request.
func (s *Server) GetMachine(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, s.Machine.Definition())
}

// GetGraph handles the GET /graph request.
func (s *Server) GetGraph(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	io.WriteString(w, graph.GenerateMermaid(s.Machine.Definition(), nil))
}

// ListRuns handles the GET /runs request.
func (s *Server) ListRuns(w http.ResponseWriter, r *http.Request) {
	if !s.requireStore(w) {
		return
	}
	ids, err := s.Store.List(r.Context())
	if err != nil {
		s.fail(w, http.StatusInternalServerError, err)
		return
	}
	if ids == nil {
		ids = []string{}
	}
	writeJSON(w, http.StatusOK, ids)
}

// GetRun handles the GET /runs/{runID} request.
func (s *Server) GetRun(w http.ResponseWriter, r *http.Request) {
	if !s.requireStore(w) {
		return
	}
	res, err := s.Store.Load(r.Context(), chi.URLParam(r, "runID"))
	if err != nil {
		s.fail(w, statusFor(err), err)
		return
	}
	writeJSON(w, http.StatusOK, res)
}

// DeleteRun handles the DELETE /runs/{runID} request.
func (s *Server) DeleteRun(w http.ResponseWriter, r *http.Request) {
	if !s.requireStore(w) {
		return
	}
	if err := s.Store.Delete(r.Context(), chi.URLParam(r, "runID")); err != nil {
		s.fail(w, statusFor(err), err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// GetHealth handles the GET /healthz request.
func (s *Server) GetHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// GetInfo handles the GET /info request.
func (s *Server) GetInfo(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{
		"app":     "turing-http",
		"version": strings.TrimSpace(turing.Version),
		"machine": s.Machine.Definition().Name,
	})
}

func (s *Server) requireStore(w http.ResponseWriter) bool {
	if s.Store == nil {
		s.fail(w, http.StatusNotImplemented, errors.New("no result store configured"))
		return false
	}
	return true
}

func (s *Server) fail(w http.ResponseWriter, status int, err error) {
	if status >= http.StatusInternalServerError {
		s.Logger.Error("Request failed", "status", status, "error", err)
	} else {
		s.Logger.Warn("Request rejected", "status", status, "error", err)
	}

	resp := ErrorResponse{Error: err.Error()}
	for _, e := range validator.Errors(err) {
		resp.Details = append(resp.Details, e.Error())
	}
	if len(resp.Details) > 0 {
		resp.Error = "invalid machine definition"
	}
	writeJSON(w, status, resp)
}

func statusFor(err error) int {
	var cfgErr *domain.ConfigError
	switch {
	case errors.As(err, &cfgErr):
		return http.StatusUnprocessableEntity
	case errors.Is(err, domain.ErrRunNotFound), errors.Is(err, domain.ErrMachineNotFound):
		return http.StatusNotFound
	case errors.Is(err, context.Canceled):
		return 499
	}
	return http.StatusInternalServerError
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		slog.Error("Response encode failed", "error", err)
	}
}
