package http

import (
	"context"
	_ "embed"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strings"

	"github.com/getkin/kin-openapi/openapi3"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/aretw0/fitlanding"
	"github.com/aretw0/fitlanding/internal/logging"
	"github.com/aretw0/fitlanding/pkg/domain"
	"github.com/aretw0/fitlanding/pkg/sanitize"
)

//go:embed openapi.yaml
var rawSpec []byte

// Service is the stateless host surface the API exposes.
type Service interface {
	Spec() domain.FormSpec
	ValidateContact(ctx context.Context, values map[string]string) (*fitlanding.ContactResult, error)
	SubmitContact(ctx context.Context, values map[string]string) (*fitlanding.ContactResult, error)
	StartQuiz(ctx context.Context) (*domain.QuizSession, error)
	Quiz(ctx context.Context, id string) (*domain.QuizSession, error)
	Answer(ctx context.Context, id string, step domain.Step, value string) (*domain.QuizSession, error)
	RestartQuiz(ctx context.Context, id string) (*domain.QuizSession, error)
	AcceptQuiz(ctx context.Context, id string) (*fitlanding.HandOffResult, error)
	Preferences(ctx context.Context) domain.Preferences
	SetPreference(ctx context.Context, key, value string) error
}

var _ Service = (*fitlanding.Service)(nil)

// Server serves the API for one Service.
type Server struct {
	svc     Service
	doc     *openapi3.T
	metrics prometheus.Gatherer
	logger  *slog.Logger
}

// Option configures the handler.
type Option func(*Server)

// WithLogger sets a custom structured logger.
func WithLogger(logger *slog.Logger) Option {
	return func(s *Server) {
		s.logger = logger
	}
}

// WithMetrics exposes g on GET /metrics.
func WithMetrics(g prometheus.Gatherer) Option {
	return func(s *Server) {
		s.metrics = g
	}
}

// Spec returns the embedded OpenAPI document, validated.
func Spec() (*openapi3.T, error) {
	loader := openapi3.NewLoader()
	doc, err := loader.LoadFromData(rawSpec)
	if err != nil {
		return nil, fmt.Errorf("failed to load OpenAPI document: %w", err)
	}
	if err := doc.Validate(loader.Context); err != nil {
		return nil, fmt.Errorf("invalid OpenAPI document: %w", err)
	}
	return doc, nil
}

// NewHandler creates the HTTP handler. Requests for documented operations are
// validated against the embedded OpenAPI document before they reach a handler.
func NewHandler(svc Service, opts ...Option) (http.Handler, error) {
	doc, err := Spec()
	if err != nil {
		return nil, err
	}
	s := &Server{svc: svc, doc: doc, logger: logging.NewNop()}
	for _, opt := range opts {
		opt(s)
	}

	validate, err := s.validateRequests()
	if err != nil {
		return nil, err
	}

	r := chi.NewRouter()
	r.Use(middleware.RequestID, middleware.Recoverer)
	r.Use(enableCORS)

	r.Get("/openapi.yaml", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/yaml")
		_, _ = w.Write(rawSpec)
	})
	r.Get("/swagger", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/html")
		_, _ = w.Write([]byte(swaggerHTML))
	})
	if s.metrics != nil {
		r.Method(http.MethodGet, "/metrics", promhttp.HandlerFor(s.metrics, promhttp.HandlerOpts{}))
	}

	r.Group(func(r chi.Router) {
		r.Use(validate)

		r.Get("/health", s.GetHealth)
		r.Get("/info", s.GetInfo)
		r.Get("/form", s.GetForm)

		r.Post("/contact/validate", s.ValidateContact)
		r.Post("/contact", s.SubmitContact)

		r.Post("/quiz/sessions", s.StartQuiz)
		r.Route("/quiz/sessions/{id}", func(r chi.Router) {
			r.Get("/", s.GetQuiz)
			r.Post("/answers", s.AnswerQuiz)
			r.Post("/restart", s.RestartQuiz)
			r.Post("/accept", s.AcceptQuiz)
		})

		r.Get("/preferences", s.GetPreferences)
		r.Put("/preferences/{key}", s.SetPreference)
	})

	return r, nil
}

func enableCORS(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Methods", "GET, POST, PUT, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type")
		if r.Method == http.MethodOptions {
			w.WriteHeader(http.StatusOK)
			return
		}
		next.ServeHTTP(w, r)
	})
}

const swaggerHTML = `
<!DOCTYPE html>
<html lang="en">
<head>
    <meta charset="utf-8" />
    <meta name="viewport" content="width=device-width, initial-scale=1" />
    <title>fitlanding API Documentation</title>
    <link rel="stylesheet" href="https://unpkg.com/swagger-ui-dist@5.11.0/swagger-ui.css" />
</head>
<body>
<div id="swagger-ui"></div>
<script src="https://unpkg.com/swagger-ui-dist@5.11.0/swagger-ui-bundle.js" crossorigin></script>
<script>
    window.onload = () => {
    window.ui = SwaggerUIBundle({
        url: '/openapi.yaml',
        dom_id: '#swagger-ui',
    });
    };
</script>
</body>
</html>
`

// GetHealth handles GET /health.
func (s *Server) GetHealth(w http.ResponseWriter, r *http.Request) {
	s.writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// GetInfo handles GET /info.
func (s *Server) GetInfo(w http.ResponseWriter, r *http.Request) {
	apiVersion := "unknown"
	if s.doc.Info != nil {
		apiVersion = s.doc.Info.Version
	}
	s.writeJSON(w, http.StatusOK, map[string]string{
		"app":         "fitlanding-http",
		"version":     strings.TrimSpace(fitlanding.Version),
		"api_version": apiVersion,
	})
}

// GetForm handles GET /form.
func (s *Server) GetForm(w http.ResponseWriter, r *http.Request) {
	s.writeJSON(w, http.StatusOK, s.svc.Spec())
}

// ValidateContact handles POST /contact/validate.
func (s *Server) ValidateContact(w http.ResponseWriter, r *http.Request) {
	values, err := s.decodeContact(r)
	if err != nil {
		s.writeError(w, err)
		return
	}
	res, err := s.svc.ValidateContact(r.Context(), values)
	if err != nil {
		s.writeError(w, err)
		return
	}
	s.writeJSON(w, http.StatusOK, res)
}

// SubmitContact handles POST /contact.
func (s *Server) SubmitContact(w http.ResponseWriter, r *http.Request) {
	values, err := s.decodeContact(r)
	if err != nil {
		s.writeError(w, err)
		return
	}
	res, err := s.svc.SubmitContact(r.Context(), values)
	switch {
	case err == nil:
		s.writeJSON(w, http.StatusOK, res)
	case errors.Is(err, domain.ErrValidationFailed) && res != nil:
		s.writeJSON(w, http.StatusUnprocessableEntity, res)
	case errors.Is(err, domain.ErrSubmissionFailed) && res != nil:
		s.logger.Warn("contact submission failed", "err", err)
		s.writeJSON(w, http.StatusBadGateway, res)
	default:
		s.writeError(w, err)
	}
}

// StartQuiz handles POST /quiz/sessions.
func (s *Server) StartQuiz(w http.ResponseWriter, r *http.Request) {
	qs, err := s.svc.StartQuiz(r.Context())
	if err != nil {
		s.writeError(w, err)
		return
	}
	s.writeJSON(w, http.StatusCreated, qs)
}

// GetQuiz handles GET /quiz/sessions/{id}.
func (s *Server) GetQuiz(w http.ResponseWriter, r *http.Request) {
	s.respondSession(w)(s.svc.Quiz(r.Context(), chi.URLParam(r, "id")))
}

type answerRequest struct {
	Step  int    `json:"step"`
	Value string `json:"value"`
}

// AnswerQuiz handles POST /quiz/sessions/{id}/answers.
func (s *Server) AnswerQuiz(w http.ResponseWriter, r *http.Request) {
	var body answerRequest
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		s.writeError(w, fmt.Errorf("%w: %v", errBadRequest, err))
		return
	}
	s.respondSession(w)(s.svc.Answer(r.Context(), chi.URLParam(r, "id"), domain.Step(body.Step), body.Value))
}

// RestartQuiz handles POST /quiz/sessions/{id}/restart.
func (s *Server) RestartQuiz(w http.ResponseWriter, r *http.Request) {
	s.respondSession(w)(s.svc.RestartQuiz(r.Context(), chi.URLParam(r, "id")))
}

// AcceptQuiz handles POST /quiz/sessions/{id}/accept.
func (s *Server) AcceptQuiz(w http.ResponseWriter, r *http.Request) {
	res, err := s.svc.AcceptQuiz(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		s.writeError(w, err)
		return
	}
	s.writeJSON(w, http.StatusOK, res)
}

func (s *Server) respondSession(w http.ResponseWriter) func(*domain.QuizSession, error) {
	return func(qs *domain.QuizSession, err error) {
		if err != nil {
			s.writeError(w, err)
			return
		}
		s.writeJSON(w, http.StatusOK, qs)
	}
}

// GetPreferences handles GET /preferences.
func (s *Server) GetPreferences(w http.ResponseWriter, r *http.Request) {
	s.writeJSON(w, http.StatusOK, s.svc.Preferences(r.Context()))
}

// SetPreference handles PUT /preferences/{key}.
func (s *Server) SetPreference(w http.ResponseWriter, r *http.Request) {
	var body struct {
		Value string `json:"value"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		s.writeError(w, fmt.Errorf("%w: %v", errBadRequest, err))
		return
	}
	value, err := sanitize.Input(body.Value)
	if err != nil {
		s.writeError(w, err)
		return
	}
	if err := s.svc.SetPreference(r.Context(), chi.URLParam(r, "key"), value); err != nil {
		s.writeError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		s.logger.Error("response encode failed", "err", err)
	}
}
