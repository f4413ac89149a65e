package main

import (
	"net/http"

	"github.com/example/tinytrainer/render"
)

// handlePanel serves the OLED preview text for one node, in the requested
// view. Reads only the latest published frame, never the live topology.
func (ws *WebServer) handlePanel(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	frame := ws.snapshotFrame()
	if frame == nil {
		http.Error(w, "No frame available", http.StatusNotFound)
		return
	}

	name := r.URL.Query().Get("node")
	if name == "" {
		http.Error(w, "node is required", http.StatusBadRequest)
		return
	}

	view := render.ParseView(r.URL.Query().Get("view"))
	if r.URL.Query().Get("view") == "" {
		view = render.ParseView(frame.View)
	}

	for _, snap := range frame.Nodes {
		if snap.Name == name {
			w.Header().Set("Content-Type", "text/plain; charset=utf-8")
			w.Write([]byte(render.Panel(snap.asNode(), view)))
			return
		}
	}
	http.Error(w, "No such node", http.StatusNotFound)
}
