// Package api serves recipe plans over HTTP.
//
// Handlers decode the request, run the engine and encode the result. Nothing
// is kept between requests.
package api

import (
	"bytes"
	"encoding/json"
	stderrors "errors"
	"net/http"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"go.uber.org/zap"

	hclsource "recipe-planner/adapters/hcl"
	"recipe-planner/core/engine"
	"recipe-planner/core/output"
	"recipe-planner/core/recipe"
	"recipe-planner/internal/errors"
)

// MaxBodyBytes bounds the size of a plan request
const MaxBodyBytes = 1 << 20

var contentTypes = map[output.Format]string{
	output.FormatCLI:      "text/plain; charset=utf-8",
	output.FormatJSON:     "application/json",
	output.FormatMarkdown: "text/markdown; charset=utf-8",
	output.FormatMsgpack:  "application/msgpack",
	output.FormatDOT:      "text/vnd.graphviz; charset=utf-8",
}

// Server is the API server
type Server struct {
	engine   *engine.Engine
	hcl      *hclsource.Loader
	validate *validator.Validate
	mux      *http.ServeMux
	version  string
	logger   *zap.Logger
	now      func() time.Time
}

// NewServer creates a new API server. A nil logger discards output.
func NewServer(version string, logger *zap.Logger) *Server {
	if logger == nil {
		logger = zap.NewNop()
	}

	s := &Server{
		engine:   engine.New(engine.WithLogger(logger.Named("engine")), engine.WithVersion(version)),
		hcl:      hclsource.NewLoader(logger.Named("hcl")),
		validate: validator.New(),
		mux:      http.NewServeMux(),
		version:  version,
		logger:   logger,
		now:      time.Now,
	}

	s.registerRoutes()
	return s
}

// registerRoutes registers all API routes
func (s *Server) registerRoutes() {
	s.mux.HandleFunc("POST /plan", s.handlePlan)
	s.mux.HandleFunc("GET /health", s.handleHealth)
	s.mux.HandleFunc("GET /version", s.handleVersion)
}

// handlePlan handles POST /plan
func (s *Server) handlePlan(w http.ResponseWriter, r *http.Request) {
	requestID := uuid.New().String()
	w.Header().Set("X-Request-ID", requestID)

	var req PlanRequest
	body := http.MaxBytesReader(w, r.Body, MaxBodyBytes)
	if err := json.NewDecoder(body).Decode(&req); err != nil {
		s.writeError(w, requestID, "INVALID_JSON", err.Error(), http.StatusBadRequest)
		return
	}
	if err := s.validate.Struct(&req); err != nil {
		s.writeError(w, requestID, "VALIDATION_ERROR", err.Error(), http.StatusBadRequest)
		return
	}

	format := output.FormatJSON
	if req.Format != "" {
		format = output.Format(req.Format)
	}
	label, err := output.ParseEdgeLabel(req.EdgeLabel)
	if err != nil {
		s.writeDomainError(w, requestID, err)
		return
	}
	formatter, err := output.Get(format, output.Options{
		NoColor:   true,
		ShowGoal:  req.ShowGoal,
		EdgeLabel: label,
		Unpruned:  req.Unpruned,
	})
	if err != nil {
		s.writeDomainError(w, requestID, err)
		return
	}

	book, err := s.parse(&req)
	if err != nil {
		s.writeDomainError(w, requestID, err)
		return
	}

	// Execute engine (NO PLANNING LOGIC HERE)
	result, err := s.engine.Plan(book)
	if err != nil {
		s.writeDomainError(w, requestID, err)
		return
	}

	var buf bytes.Buffer
	if err := formatter.Render(&buf, result); err != nil {
		s.writeDomainError(w, requestID, errors.Internal("failed to render plan", err))
		return
	}

	s.logger.Info("plan served",
		zap.String("request_id", requestID),
		zap.String("plan_id", result.Metadata.ID),
		zap.String("format", string(format)))

	w.Header().Set("Content-Type", contentTypes[format])
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(buf.Bytes())
}

func (s *Server) parse(req *PlanRequest) (recipe.Book, error) {
	if req.Syntax == SyntaxHCL {
		return s.hcl.Load([]byte(req.Recipes), "request.hcl")
	}
	return recipe.ParseText(req.Recipes)
}

// handleHealth handles GET /health
func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	s.writeJSON(w, HealthResponse{
		Status:  "healthy",
		Version: s.version,
		Time:    s.now().UTC().Format(time.RFC3339),
	}, http.StatusOK)
}

// handleVersion handles GET /version
func (s *Server) handleVersion(w http.ResponseWriter, r *http.Request) {
	formats := make([]string, 0, len(output.Formats()))
	for _, f := range output.Formats() {
		formats = append(formats, string(f))
	}
	s.writeJSON(w, VersionResponse{
		Version:    s.version,
		Engine:     "recipe-planner",
		APIVersion: "v1",
		Formats:    formats,
	}, http.StatusOK)
}

// statusFor maps domain error types onto HTTP statuses
func statusFor(t errors.Type) int {
	switch t {
	case errors.TypeFormat, errors.TypeNotSupported:
		return http.StatusBadRequest
	case errors.TypeInvalidGraph, errors.TypeConfiguration:
		return http.StatusUnprocessableEntity
	default:
		return http.StatusInternalServerError
	}
}

func (s *Server) writeDomainError(w http.ResponseWriter, requestID string, err error) {
	var e *errors.Error
	if !stderrors.As(err, &e) {
		s.logger.Error("unexpected error", zap.String("request_id", requestID), zap.Error(err))
		s.writeError(w, requestID, string(errors.TypeInternal), err.Error(), http.StatusInternalServerError)
		return
	}

	status := statusFor(e.Type)
	if status >= http.StatusInternalServerError {
		s.logger.Error("plan failed", zap.String("request_id", requestID), zap.Error(err))
	} else {
		s.logger.Debug("plan rejected", zap.String("request_id", requestID), zap.Error(err))
	}
	s.writeError(w, requestID, string(e.Type), e.Error(), status)
}

func (s *Server) writeJSON(w http.ResponseWriter, data interface{}, status int) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(data)
}

func (s *Server) writeError(w http.ResponseWriter, requestID, code, message string, status int) {
	s.writeJSON(w, ErrorResponse{
		RequestID: requestID,
		Error: ErrorDetail{
			Code:    code,
			Message: message,
		},
	}, status)
}

// ServeHTTP implements http.Handler
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.mux.ServeHTTP(w, r)
}
