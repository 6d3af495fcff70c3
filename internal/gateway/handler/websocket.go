package handler

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"github.com/gorilla/websocket"

	"github.com/msto63/euler/internal/euler/params"
	"github.com/msto63/euler/internal/euler/service"
	"github.com/msto63/euler/pkg/core/logging"
)

const (
	wsReadTimeout  = 120 * time.Second
	wsWriteTimeout = 10 * time.Second
)

// WebSocketHandler answers solve requests over a WebSocket. Messages of one
// connection are handled in order, each with exactly one response.
type WebSocketHandler struct {
	solver   service.Solver
	upgrader websocket.Upgrader
	timeout  time.Duration
	logger   *logging.Logger
}

// NewWebSocketHandler creates a new WebSocket handler. An empty origin
// list accepts every origin.
func NewWebSocketHandler(solver service.Solver, allowedOrigins []string, solveTimeout time.Duration) *WebSocketHandler {
	return &WebSocketHandler{
		solver:  solver,
		timeout: solveTimeout,
		logger:  logging.New("gateway-websocket"),
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			CheckOrigin:     originChecker(allowedOrigins),
		},
	}
}

func originChecker(allowed []string) func(r *http.Request) bool {
	if len(allowed) == 0 {
		return func(*http.Request) bool { return true }
	}
	return func(r *http.Request) bool {
		origin := r.Header.Get("Origin")
		if origin == "" {
			return true
		}
		for _, o := range allowed {
			if o == "*" || o == origin {
				return true
			}
		}
		return false
	}
}

// WSMessage represents a WebSocket request
type WSMessage struct {
	ID      string          `json:"id,omitempty"`
	Type    string          `json:"type"` // "solve", "ping"
	Payload json.RawMessage `json:"payload,omitempty"`
}

// WSResponse represents a WebSocket response
type WSResponse struct {
	ID      string      `json:"id,omitempty"`
	Type    string      `json:"type"` // "result", "error", "pong"
	Payload interface{} `json:"payload,omitempty"`
}

// WSErrorPayload represents an error payload
type WSErrorPayload struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// ServeHTTP handles the WebSocket upgrade and the connection
func (h *WebSocketHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	conn, err := h.upgrader.Upgrade(w, r, nil)
	if err != nil {
		h.logger.Warn("WebSocket upgrade failed", "error", err)
		return
	}
	h.handleConnection(r.Context(), conn)
}

func (h *WebSocketHandler) handleConnection(ctx context.Context, conn *websocket.Conn) {
	defer conn.Close()

	h.logger.Info("WebSocket connection established", "remote", conn.RemoteAddr().String())

	conn.SetReadDeadline(time.Now().Add(wsReadTimeout))
	conn.SetPongHandler(func(string) error {
		return conn.SetReadDeadline(time.Now().Add(wsReadTimeout))
	})

	for {
		var msg WSMessage
		if err := conn.ReadJSON(&msg); err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				h.logger.Warn("WebSocket read error", "error", err)
			} else {
				h.logger.Debug("WebSocket connection closed")
			}
			return
		}
		conn.SetReadDeadline(time.Now().Add(wsReadTimeout))

		var resp WSResponse
		switch msg.Type {
		case "ping":
			resp = WSResponse{ID: msg.ID, Type: "pong"}
		case "solve":
			resp = h.handleSolve(ctx, msg)
		default:
			resp = errorResponse(msg.ID, "unknown_type", "Unknown message type: "+msg.Type)
		}

		conn.SetWriteDeadline(time.Now().Add(wsWriteTimeout))
		if err := conn.WriteJSON(resp); err != nil {
			h.logger.Warn("WebSocket send error", "error", err)
			return
		}
	}
}

func (h *WebSocketHandler) handleSolve(ctx context.Context, msg WSMessage) WSResponse {
	var req SolveRequest
	if len(msg.Payload) == 0 {
		return errorResponse(msg.ID, "invalid_payload", EmptyRequestMessage)
	}
	if err := json.Unmarshal(msg.Payload, &req); err != nil {
		return errorResponse(msg.ID, "invalid_payload", "Invalid solve payload")
	}
	taskID, err := TaskID(req.TaskID)
	if err != nil {
		return errorResponse(msg.ID, "invalid_payload", "task_id: "+err.Error())
	}

	if h.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, h.timeout)
		defer cancel()
	}

	result, err := h.solver.Solve(ctx, taskID, params.Set(req.Params))
	if err != nil {
		h.logger.Error("WebSocket solve failed", "task_id", taskID, "error", err)
		return errorResponse(msg.ID, "solve_failed", err.Error())
	}
	return WSResponse{ID: msg.ID, Type: "result", Payload: result}
}

func errorResponse(id, code, message string) WSResponse {
	return WSResponse{
		ID:   id,
		Type: "error",
		Payload: WSErrorPayload{
			Code:    code,
			Message: message,
		},
	}
}
