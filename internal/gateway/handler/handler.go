package handler

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"math"
	"net/http"
	"strconv"
	"strings"
	"time"

	mdwerror "github.com/msto63/euler/foundation/core/error"
	"github.com/msto63/euler/internal/euler/kernel"
	"github.com/msto63/euler/internal/euler/params"
	"github.com/msto63/euler/internal/euler/service"
	"github.com/msto63/euler/pkg/core/health"
	"github.com/msto63/euler/pkg/core/logging"
)

// EmptyRequestMessage is returned for a missing or empty request body
const EmptyRequestMessage = "Empty request"

// DefaultMaxBodyBytes limits request bodies
const DefaultMaxBodyBytes = 1 << 20

// ComputeRequest is the body of POST /compute. Method is a task number
// given as JSON number or numeric string.
type ComputeRequest struct {
	Method interface{}            `json:"method"`
	Params map[string]interface{} `json:"params,omitempty"`
}

// ComputeResponse wraps the result of POST /compute
type ComputeResponse struct {
	Result map[string]interface{} `json:"result"`
}

// SolveRequest is the body of POST /api/v1/solve and of WebSocket solve
// messages
type SolveRequest struct {
	TaskID interface{}            `json:"task_id"`
	Params map[string]interface{} `json:"params,omitempty"`
}

// BatchRequest is the body of POST /api/v1/solve/batch
type BatchRequest struct {
	Requests []SolveRequest `json:"requests"`
}

// BatchResponse holds the results of a batch in request order
type BatchResponse struct {
	Results []map[string]interface{} `json:"results"`
}

// TasksResponse lists the task catalogue
type TasksResponse struct {
	Tasks []kernel.Task `json:"tasks"`
	Total int           `json:"total"`
}

// ErrorResponse represents an error response
type ErrorResponse struct {
	Error string `json:"error"`
	Code  string `json:"code,omitempty"`
}

// batchSolver is implemented by solvers that fan out batches themselves
type batchSolver interface {
	SolveBatch(ctx context.Context, reqs []service.Request) ([]map[string]interface{}, error)
}

// Config holds handler configuration
type Config struct {
	Version        string
	MaxBodyBytes   int64
	SolveTimeout   time.Duration
	CORS           bool
	AllowedOrigins []string
}

// Handler handles HTTP requests for the gateway
type Handler struct {
	solver    service.Solver
	health    *health.Registry
	logger    *logging.Logger
	config    Config
	startTime time.Time
}

// NewHandler creates a new API handler. registry may be nil.
func NewHandler(cfg Config, solver service.Solver, registry *health.Registry) *Handler {
	if cfg.MaxBodyBytes <= 0 {
		cfg.MaxBodyBytes = DefaultMaxBodyBytes
	}
	return &Handler{
		solver:    solver,
		health:    registry,
		logger:    logging.New("gateway-handler"),
		config:    cfg,
		startTime: time.Now(),
	}
}

// ServeHTTP implements http.Handler
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	if h.config.CORS {
		h.setCORS(w, r)
		if r.Method == http.MethodOptions {
			w.WriteHeader(http.StatusNoContent)
			return
		}
	}

	path := strings.Trim(r.URL.Path, "/")

	switch path {
	case "compute":
		h.handleCompute(w, r)
	case "api/v1/solve":
		h.handleSolve(w, r)
	case "api/v1/solve/batch":
		h.handleBatch(w, r)
	case "api/v1/tasks":
		h.handleTasks(w, r)
	case "api/v1/health":
		h.handleHealth(w, r)
	default:
		h.writeError(w, http.StatusNotFound, "NOT_FOUND", "Endpoint not found")
	}
}

func (h *Handler) setCORS(w http.ResponseWriter, r *http.Request) {
	origin := "*"
	if len(h.config.AllowedOrigins) > 0 {
		origin = ""
		requested := r.Header.Get("Origin")
		for _, o := range h.config.AllowedOrigins {
			if o == "*" || o == requested {
				origin = o
				break
			}
		}
		if origin == "" {
			return
		}
	}
	w.Header().Set("Access-Control-Allow-Origin", origin)
	w.Header().Set("Access-Control-Allow-Methods", "GET, POST, OPTIONS")
	w.Header().Set("Access-Control-Allow-Headers", "Content-Type, X-Request-ID")
}

// handleCompute serves the form-style endpoint of the web client
func (h *Handler) handleCompute(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		h.writeError(w, http.StatusMethodNotAllowed, "METHOD_NOT_ALLOWED", "Use POST")
		return
	}

	var req ComputeRequest
	if ok := h.readRequest(w, r, &req); !ok {
		return
	}

	taskID, err := TaskID(req.Method)
	if err != nil {
		h.writeError(w, http.StatusBadRequest, string(mdwerror.CodeInvalidInput), "method: "+err.Error())
		return
	}

	result, ok := h.solve(w, r, taskID, req.Params)
	if !ok {
		return
	}
	h.writeJSON(w, http.StatusOK, ComputeResponse{Result: result})
}

func (h *Handler) handleSolve(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		h.writeError(w, http.StatusMethodNotAllowed, "METHOD_NOT_ALLOWED", "Use POST")
		return
	}

	var req SolveRequest
	if ok := h.readRequest(w, r, &req); !ok {
		return
	}

	taskID, err := TaskID(req.TaskID)
	if err != nil {
		h.writeError(w, http.StatusBadRequest, string(mdwerror.CodeInvalidInput), "task_id: "+err.Error())
		return
	}

	result, ok := h.solve(w, r, taskID, req.Params)
	if !ok {
		return
	}
	h.writeJSON(w, http.StatusOK, result)
}

func (h *Handler) handleBatch(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		h.writeError(w, http.StatusMethodNotAllowed, "METHOD_NOT_ALLOWED", "Use POST")
		return
	}

	var req BatchRequest
	if ok := h.readRequest(w, r, &req); !ok {
		return
	}

	reqs := make([]service.Request, len(req.Requests))
	for i, sr := range req.Requests {
		taskID, err := TaskID(sr.TaskID)
		if err != nil {
			h.writeError(w, http.StatusBadRequest, string(mdwerror.CodeInvalidInput),
				fmt.Sprintf("requests[%d].task_id: %v", i, err))
			return
		}
		reqs[i] = service.Request{TaskID: taskID, Params: params.Set(sr.Params)}
	}

	ctx, cancel := h.solveContext(r)
	defer cancel()

	var (
		results []map[string]interface{}
		err     error
	)
	if bs, ok := h.solver.(batchSolver); ok {
		results, err = bs.SolveBatch(ctx, reqs)
	} else {
		results = make([]map[string]interface{}, len(reqs))
		for i, sr := range reqs {
			if results[i], err = h.solver.Solve(ctx, sr.TaskID, sr.Params); err != nil {
				break
			}
		}
	}
	if err != nil {
		h.writeFailure(w, err)
		return
	}
	h.writeJSON(w, http.StatusOK, BatchResponse{Results: results})
}

func (h *Handler) handleTasks(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		h.writeError(w, http.StatusMethodNotAllowed, "METHOD_NOT_ALLOWED", "Use GET")
		return
	}

	tasks, err := h.solver.ListTasks(r.Context())
	if err != nil {
		h.writeFailure(w, err)
		return
	}
	h.writeJSON(w, http.StatusOK, TasksResponse{Tasks: tasks, Total: len(tasks)})
}

func (h *Handler) handleHealth(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		h.writeError(w, http.StatusMethodNotAllowed, "METHOD_NOT_ALLOWED", "Use GET")
		return
	}

	if h.health == nil {
		h.writeJSON(w, http.StatusOK, map[string]interface{}{
			"status":  health.StatusHealthy,
			"version": h.config.Version,
			"uptime":  time.Since(h.startTime).String(),
		})
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()
	report := h.health.Check(ctx)

	code := http.StatusOK
	if report.Status == health.StatusUnhealthy {
		code = http.StatusServiceUnavailable
	}
	h.writeJSON(w, code, report)
}

// solve runs one task and writes the failure response itself when the
// solver fails
func (h *Handler) solve(w http.ResponseWriter, r *http.Request, taskID int, p map[string]interface{}) (map[string]interface{}, bool) {
	ctx, cancel := h.solveContext(r)
	defer cancel()

	result, err := h.solver.Solve(ctx, taskID, params.Set(p))
	if err != nil {
		h.writeFailure(w, err)
		return nil, false
	}
	return result, true
}

func (h *Handler) solveContext(r *http.Request) (context.Context, context.CancelFunc) {
	if h.config.SolveTimeout > 0 {
		return context.WithTimeout(r.Context(), h.config.SolveTimeout)
	}
	return context.WithCancel(r.Context())
}

// TaskID converts a JSON task reference into a task id. A missing value
// gives 0, which the dispatcher answers with an invalid task result.
func TaskID(v interface{}) (int, error) {
	switch t := v.(type) {
	case nil:
		return 0, nil
	case float64:
		if t != math.Trunc(t) || math.Abs(t) > math.MaxInt32 {
			return 0, fmt.Errorf("must be an integer, got %v", t)
		}
		return int(t), nil
	case string:
		id, err := strconv.Atoi(strings.TrimSpace(t))
		if err != nil {
			return 0, fmt.Errorf("must be an integer, got %q", t)
		}
		return id, nil
	default:
		return 0, fmt.Errorf("must be an integer, got %T", v)
	}
}

// readRequest decodes a JSON body into v. A missing body, a JSON null and
// an empty object are all rejected with EmptyRequestMessage.
func (h *Handler) readRequest(w http.ResponseWriter, r *http.Request, v interface{}) bool {
	body, err := io.ReadAll(http.MaxBytesReader(w, r.Body, h.config.MaxBodyBytes))
	if err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			h.writeError(w, http.StatusRequestEntityTooLarge, "REQUEST_TOO_LARGE",
				fmt.Sprintf("Request body exceeds %d bytes", tooLarge.Limit))
			return false
		}
		h.writeError(w, http.StatusBadRequest, string(mdwerror.CodeInvalidInput), "Failed to read request body")
		return false
	}

	var fields map[string]json.RawMessage
	if err := json.Unmarshal(body, &fields); err != nil {
		if len(strings.TrimSpace(string(body))) == 0 {
			h.writeError(w, http.StatusBadRequest, "", EmptyRequestMessage)
			return false
		}
		h.writeError(w, http.StatusBadRequest, string(mdwerror.CodeInvalidFormat), "Invalid JSON: "+err.Error())
		return false
	}
	if len(fields) == 0 {
		h.writeError(w, http.StatusBadRequest, "", EmptyRequestMessage)
		return false
	}

	if err := json.Unmarshal(body, v); err != nil {
		h.writeError(w, http.StatusBadRequest, string(mdwerror.CodeInvalidFormat), "Invalid request: "+err.Error())
		return false
	}
	return true
}

// writeFailure reports a solver failure with the status of its code
func (h *Handler) writeFailure(w http.ResponseWriter, err error) {
	code := mdwerror.GetCode(err)
	status := code.HTTPStatus()
	if status >= http.StatusInternalServerError {
		h.logger.Error("Solve failed", "code", code, "error", err)
	}
	h.writeError(w, status, string(code), err.Error())
}

func (h *Handler) writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		h.logger.Warn("Failed to write response", "error", err)
	}
}

func (h *Handler) writeError(w http.ResponseWriter, status int, code, message string) {
	h.writeJSON(w, status, ErrorResponse{Error: message, Code: code})
}
