package mcp

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"github.com/aretw0/fitlanding"
	"github.com/aretw0/fitlanding/internal/logging"
	"github.com/aretw0/fitlanding/internal/quiz"
	"github.com/aretw0/fitlanding/pkg/domain"
	"github.com/aretw0/fitlanding/pkg/sanitize"
)

// Resource URIs.
const (
	FormResourceURI      = "fitlanding://form"
	QuestionsResourceURI = "fitlanding://quiz/questions"
)

// Service is the subset of the stateless host the MCP tools need.
type Service interface {
	Spec() domain.FormSpec
	ValidateContact(ctx context.Context, values map[string]string) (*fitlanding.ContactResult, error)
	StartQuiz(ctx context.Context) (*domain.QuizSession, error)
	Answer(ctx context.Context, id string, step domain.Step, value string) (*domain.QuizSession, error)
	AcceptQuiz(ctx context.Context, id string) (*fitlanding.HandOffResult, error)
}

var _ Service = (*fitlanding.Service)(nil)

// Server exposes contact validation and the fitness quiz as MCP tools.
type Server struct {
	svc       Service
	mcpServer *server.MCPServer
	logger    *slog.Logger
}

// Option configures the server.
type Option func(*Server)

// WithLogger sets a custom structured logger.
func WithLogger(logger *slog.Logger) Option {
	return func(s *Server) {
		s.logger = logger
	}
}

// NewServer creates a new MCP Server instance.
func NewServer(svc Service, opts ...Option) *Server {
	s := &Server{
		svc:       svc,
		mcpServer: server.NewMCPServer("fitlanding-mcp", strings.TrimSpace(fitlanding.Version)),
		logger:    logging.NewNop(),
	}
	for _, opt := range opts {
		opt(s)
	}
	s.registerTools()
	s.registerResources()
	return s
}

// ServeStdio starts the server on Stdin/Stdout.
func (s *Server) ServeStdio() error {
	return server.ServeStdio(s.mcpServer)
}

// ServeSSE starts the server on the given port using SSE and stops when ctx is done.
func (s *Server) ServeSSE(ctx context.Context, port int) error {
	addr := fmt.Sprintf(":%d", port)
	baseURL := fmt.Sprintf("http://localhost:%d", port)

	sseServer := server.NewSSEServer(s.mcpServer, server.WithBaseURL(baseURL))

	mux := http.NewServeMux()
	mux.Handle("/sse", corsMiddleware(sseServer.SSEHandler()))
	mux.Handle("/message", corsMiddleware(sseServer.MessageHandler()))

	httpServer := &http.Server{
		Addr:              addr,
		Handler:           mux,
		ReadHeaderTimeout: 10 * time.Second,
	}

	serverErrors := make(chan error, 1)
	go func() {
		s.logger.Info("MCP server listening (SSE)", "address", addr)
		serverErrors <- httpServer.ListenAndServe()
	}()

	select {
	case err := <-serverErrors:
		return err
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := httpServer.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("could not stop server gracefully: %w", err)
		}
		return nil
	}
}

func corsMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Methods", "GET, POST, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type, Authorization")
		if r.Method == http.MethodOptions {
			w.WriteHeader(http.StatusOK)
			return
		}
		next.ServeHTTP(w, r)
	})
}

// ContactArgs are the contact form values an agent can check.
type ContactArgs struct {
	Name       string `json:"name"`
	Email      string `json:"email"`
	Phone      string `json:"phone,omitempty"`
	Goals      string `json:"goals,omitempty"`
	Experience string `json:"experience,omitempty"`
	Service    string `json:"service,omitempty"`
	Message    string `json:"message,omitempty"`
}

// RecommendArgs are the three quiz answers.
type RecommendArgs struct {
	Goal     string `json:"goal"`
	Activity string `json:"activity"`
	Time     string `json:"time"`
}

// RecommendResult is the program plus the form values it implies.
type RecommendResult struct {
	Recommendation domain.Recommendation `json:"recommendation" jsonschema_description:"Recommended program"`
	Prefills       []domain.Prefill      `json:"prefills" jsonschema_description:"Contact form values implied by the answers"`
}

// StepArgs answer the current step of a stored quiz session.
type StepArgs struct {
	SessionID string `json:"session_id"`
	Step      int    `json:"step"`
	Value     string `json:"value"`
}

// SessionArgs name a stored quiz session.
type SessionArgs struct {
	SessionID string `json:"session_id"`
}

func optionValues(opts []domain.Option) []string {
	out := make([]string, 0, len(opts))
	for _, o := range opts {
		if o.Value != "" {
			out = append(out, o.Value)
		}
	}
	return out
}

func (s *Server) registerTools() {
	s.mcpServer.AddTool(mcp.NewTool("validate_contact",
		mcp.WithDescription("Validate contact form values with the same rules the landing page applies. Nothing is submitted."),
		mcp.WithString("name", mcp.Required(), mcp.Description("Full name, at least 2 characters")),
		mcp.WithString("email", mcp.Required(), mcp.Description("Email address")),
		mcp.WithString("phone", mcp.Description("Phone number, 7 to 20 digits, spaces, +, -, ( or )")),
		mcp.WithString("goals", mcp.Description("Fitness goal option value")),
		mcp.WithString("experience", mcp.Description("Experience level option value")),
		mcp.WithString("service", mcp.Description("Service interest option value")),
		mcp.WithString("message", mcp.Description("Free text message")),
		mcp.WithOutputSchema[fitlanding.ContactResult](),
	), mcp.NewStructuredToolHandler(s.handleValidateContact))

	questions := domain.Questions
	s.mcpServer.AddTool(mcp.NewTool("quiz_recommend",
		mcp.WithDescription("Recommend a training program from the three quiz answers."),
		mcp.WithString("goal", mcp.Required(), mcp.Enum(optionValues(questions[0].Options)...), mcp.Description(questions[0].Prompt)),
		mcp.WithString("activity", mcp.Required(), mcp.Enum(optionValues(questions[1].Options)...), mcp.Description(questions[1].Prompt)),
		mcp.WithString("time", mcp.Required(), mcp.Enum(optionValues(questions[2].Options)...), mcp.Description(questions[2].Prompt)),
		mcp.WithOutputSchema[RecommendResult](),
	), mcp.NewStructuredToolHandler(s.handleRecommend))

	s.mcpServer.AddTool(mcp.NewTool("quiz_start",
		mcp.WithDescription("Start a stored quiz session at step 1."),
		mcp.WithOutputSchema[domain.QuizSession](),
	), mcp.NewStructuredToolHandler(s.handleStart))

	s.mcpServer.AddTool(mcp.NewTool("quiz_step",
		mcp.WithDescription("Answer the current step of a stored quiz session. The session moves to the next step, or to results after step 3."),
		mcp.WithString("session_id", mcp.Required(), mcp.Description("Session returned by quiz_start")),
		mcp.WithNumber("step", mcp.Required(), mcp.Min(1), mcp.Max(3), mcp.Description("Current step, 1 to 3")),
		mcp.WithString("value", mcp.Required(), mcp.Description("Option value for the step")),
		mcp.WithOutputSchema[domain.QuizSession](),
	), mcp.NewStructuredToolHandler(s.handleStep))

	s.mcpServer.AddTool(mcp.NewTool("quiz_accept",
		mcp.WithDescription("Accept the recommendation of a completed session and return the contact form prefill."),
		mcp.WithString("session_id", mcp.Required(), mcp.Description("Completed session")),
		mcp.WithOutputSchema[fitlanding.HandOffResult](),
	), mcp.NewStructuredToolHandler(s.handleAccept))
}

func (s *Server) handleValidateContact(ctx context.Context, _ mcp.CallToolRequest, args ContactArgs) (fitlanding.ContactResult, error) {
	req := domain.ContactRequest(args)
	spec := s.svc.Spec()
	values := make(map[string]string)
	for id, v := range req.Values() {
		if _, ok := spec.Field(id); !ok {
			continue
		}
		clean, err := sanitize.Input(v)
		if err != nil {
			s.logger.Warn("MCP validate_contact: input rejected", "field", id, "err", err)
			return fitlanding.ContactResult{}, fmt.Errorf("field %s: %w", id, err)
		}
		values[id] = clean
	}
	res, err := s.svc.ValidateContact(ctx, values)
	if err != nil {
		return fitlanding.ContactResult{}, err
	}
	return *res, nil
}

func (s *Server) handleRecommend(_ context.Context, _ mcp.CallToolRequest, args RecommendArgs) (RecommendResult, error) {
	answers := domain.QuizAnswers{Goal: args.Goal, Activity: args.Activity, Time: args.Time}
	candidate := &domain.QuizSession{Step: domain.StepResults, Answers: answers, Completed: true}
	if err := quiz.Verify(candidate); err != nil {
		return RecommendResult{}, err
	}
	return RecommendResult{
		Recommendation: domain.Recommend(answers),
		Prefills:       domain.HandOff(answers),
	}, nil
}

func (s *Server) handleStart(ctx context.Context, _ mcp.CallToolRequest, _ struct{}) (domain.QuizSession, error) {
	qs, err := s.svc.StartQuiz(ctx)
	if err != nil {
		return domain.QuizSession{}, err
	}
	return *qs, nil
}

func (s *Server) handleStep(ctx context.Context, _ mcp.CallToolRequest, args StepArgs) (domain.QuizSession, error) {
	if args.SessionID == "" {
		return domain.QuizSession{}, errors.New("session_id is required")
	}
	qs, err := s.svc.Answer(ctx, args.SessionID, domain.Step(args.Step), args.Value)
	if err != nil {
		return domain.QuizSession{}, err
	}
	return *qs, nil
}

func (s *Server) handleAccept(ctx context.Context, _ mcp.CallToolRequest, args SessionArgs) (fitlanding.HandOffResult, error) {
	res, err := s.svc.AcceptQuiz(ctx, args.SessionID)
	if err != nil {
		return fitlanding.HandOffResult{}, err
	}
	return *res, nil
}

func (s *Server) registerResources() {
	s.mcpServer.AddResource(mcp.NewResource(FormResourceURI, "Contact Form Definition",
		mcp.WithMIMEType("application/json"),
	), func(ctx context.Context, request mcp.ReadResourceRequest) ([]mcp.ResourceContents, error) {
		return jsonResource(FormResourceURI, s.svc.Spec())
	})

	s.mcpServer.AddResource(mcp.NewResource(QuestionsResourceURI, "Fitness Quiz Questions",
		mcp.WithMIMEType("application/json"),
	), func(ctx context.Context, request mcp.ReadResourceRequest) ([]mcp.ResourceContents, error) {
		return jsonResource(QuestionsResourceURI, domain.Questions)
	})
}

func jsonResource(uri string, v any) ([]mcp.ResourceContents, error) {
	data, err := json.Marshal(v)
	if err != nil {
		return nil, fmt.Errorf("failed to encode %s: %w", uri, err)
	}
	return []mcp.ResourceContents{
		mcp.TextResourceContents{
			URI:      uri,
			MIMEType: "application/json",
			Text:     string(data),
		},
	}, nil
}
