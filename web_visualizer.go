package main

import (
	"context"

	"github.com/example/tinytrainer/visual"
)

// WebVisualizer bridges the trainer session with the web server.
type WebVisualizer struct {
	headless bool
	server   *WebServer
}

// NewWebVisualizer creates a web visualizer and starts its server.
func NewWebVisualizer(addr, staticDir string, metrics *metricsRegistry) *WebVisualizer {
	server := NewWebServer(addr, staticDir, metrics)
	server.Start()
	GetLogger().Infof("Web server started at http://%s", addr)

	return &WebVisualizer{server: server}
}

// Server exposes the underlying web server for shutdown.
func (w *WebVisualizer) Server() *WebServer {
	return w.server
}

// SetHeadless switches headless state.
func (w *WebVisualizer) SetHeadless(headless bool) {
	w.headless = headless
}

// IsHeadless returns whether visualizer runs without UI.
func (w *WebVisualizer) IsHeadless() bool {
	return w.headless
}

// PublishFrame updates the server with the latest frame.
func (w *WebVisualizer) PublishFrame(frame any) {
	if w.server == nil {
		return
	}
	if f, ok := frame.(*SimulationFrame); ok {
		w.server.UpdateFrame(f)
	}
}

// NextCommand returns the next control command if available, non-blocking.
func (w *WebVisualizer) NextCommand() (visual.ControlCommand, bool) {
	if w.server == nil {
		return visual.ControlCommand{Type: visual.CommandNone}, false
	}
	return w.server.NextCommand()
}

// WaitCommand blocks until a command is available or ctx is cancelled.
func (w *WebVisualizer) WaitCommand(ctx context.Context) (visual.ControlCommand, bool) {
	if w.server == nil {
		<-ctx.Done()
		return visual.ControlCommand{Type: visual.CommandNone}, false
	}
	return w.server.WaitCommand(ctx)
}
