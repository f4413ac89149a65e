package main

import (
	"context"
	"encoding/json"
	"net/http"
	"sync"

	"github.com/pkg/errors"

	"github.com/example/tinytrainer/visual"
)

// WebServer provides HTTP endpoints for visualization and control.
type WebServer struct {
	mu          sync.RWMutex
	latestFrame *SimulationFrame

	commands chan visual.ControlCommand
	hub      *wsHub
	metrics  *metricsRegistry

	staticDir string
	server    *http.Server
}

// NewWebServer creates a new web server instance.
func NewWebServer(addr, staticDir string, metrics *metricsRegistry) *WebServer {
	ws := &WebServer{
		commands:  make(chan visual.ControlCommand, 16),
		metrics:   metrics,
		staticDir: staticDir,
	}
	ws.hub = newHub(metrics)

	ws.server = &http.Server{
		Addr:    addr,
		Handler: NewRouter(ws),
	}
	return ws
}

func (ws *WebServer) registerHandlers(mux *http.ServeMux) {
	mux.HandleFunc("/api/frame", ws.handleFrame)
	mux.HandleFunc("/api/control", ws.handleControl)
	mux.HandleFunc("/api/topology", ws.handleTopology)
	mux.HandleFunc("/api/topology/position", ws.handlePosition)
	mux.HandleFunc("/api/panel", ws.handlePanel)
	mux.HandleFunc("/ws", func(w http.ResponseWriter, r *http.Request) {
		ws.hub.handle(ws, w, r)
	})
	if ws.metrics != nil {
		mux.Handle("/metrics", ws.metrics.Handler())
	}
	mux.Handle("/", http.FileServer(http.Dir(ws.staticDir)))
}

// Start starts the HTTP server in a goroutine.
func (ws *WebServer) Start() error {
	go func() {
		if err := ws.server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			GetLogger().Errorf("Web server stopped: %v", err)
		}
	}()
	return nil
}

// Stop shuts the HTTP server down.
func (ws *WebServer) Stop(ctx context.Context) error {
	if ws.server == nil {
		return nil
	}
	return ws.server.Shutdown(ctx)
}

// UpdateFrame stores the latest frame and pushes it to websocket clients.
func (ws *WebServer) UpdateFrame(frame *SimulationFrame) {
	ws.mu.Lock()
	ws.latestFrame = frame
	ws.mu.Unlock()

	if frame != nil {
		if data, err := json.Marshal(frame); err == nil {
			ws.hub.Broadcast(data)
		}
	}
}

// NextCommand returns the next control command if available, non-blocking.
func (ws *WebServer) NextCommand() (visual.ControlCommand, bool) {
	select {
	case cmd := <-ws.commands:
		return cmd, true
	default:
		return visual.ControlCommand{Type: visual.CommandNone}, false
	}
}

// WaitCommand blocks until a command arrives or the context is cancelled.
func (ws *WebServer) WaitCommand(ctx context.Context) (visual.ControlCommand, bool) {
	select {
	case cmd := <-ws.commands:
		return cmd, true
	case <-ctx.Done():
		return visual.ControlCommand{Type: visual.CommandNone}, false
	}
}

func (ws *WebServer) queueCommand(cmd visual.ControlCommand) bool {
	select {
	case ws.commands <- cmd:
		return true
	default:
		return false
	}
}

func (ws *WebServer) snapshotFrame() *SimulationFrame {
	ws.mu.RLock()
	defer ws.mu.RUnlock()
	return ws.latestFrame
}

func (ws *WebServer) handleFrame(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	frame := ws.snapshotFrame()
	if frame == nil {
		http.Error(w, "No frame available", http.StatusNotFound)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(frame); err != nil {
		http.Error(w, "Failed to encode frame", http.StatusInternalServerError)
	}
}

// controlRequest is the JSON body accepted by /api/control and /ws.
type controlRequest struct {
	Type          string  `json:"type"`
	Node          string  `json:"node,omitempty"`
	Role          string  `json:"role,omitempty"`
	View          string  `json:"view,omitempty"`
	ActivityLevel int     `json:"activityLevel,omitempty"`
	X             float64 `json:"x,omitempty"`
	Y             float64 `json:"y,omitempty"`
}

func (ws *WebServer) processControlRequest(req *controlRequest) (*visual.ControlCommand, error) {
	cmd := visual.ControlCommand{
		Node:          req.Node,
		Role:          req.Role,
		View:          req.View,
		ActivityLevel: req.ActivityLevel,
		X:             req.X,
		Y:             req.Y,
	}

	switch req.Type {
	case "tick":
		cmd.Type = visual.CommandTick
	case "reset":
		cmd.Type = visual.CommandReset
	case "assign_role":
		if req.Node == "" || req.Role == "" {
			return nil, errors.New("assign_role requires node and role")
		}
		cmd.Type = visual.CommandAssignRole
	case "activate":
		if req.Node == "" {
			return nil, errors.New("activate requires node")
		}
		cmd.Type = visual.CommandActivate
	case "clear_fault":
		if req.Node == "" {
			return nil, errors.New("clear_fault requires node")
		}
		cmd.Type = visual.CommandClearFault
	case "set_view":
		cmd.Type = visual.CommandSetView
	case "set_activity":
		if req.ActivityLevel < 1 {
			return nil, errors.Errorf("invalid activity level %d", req.ActivityLevel)
		}
		cmd.Type = visual.CommandSetActivity
	case "move_node":
		if req.Node == "" {
			return nil, errors.New("move_node requires node")
		}
		cmd.Type = visual.CommandMoveNode
	default:
		return nil, errors.Errorf("invalid command type %q", req.Type)
	}

	return &cmd, nil
}

func (ws *WebServer) handleControl(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	var req controlRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}
	GetLogger().Debugf("Control request: type=%s node=%s", req.Type, req.Node)

	cmd, err := ws.processControlRequest(&req)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	if !ws.queueCommand(*cmd) {
		http.Error(w, "Command queue full", http.StatusServiceUnavailable)
		return
	}

	w.WriteHeader(http.StatusAccepted)
	w.Write([]byte("Command accepted"))
}
