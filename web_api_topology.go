package main

import (
	"encoding/json"
	"net/http"

	"github.com/example/tinytrainer/visual"
)

// TopologyNode is the topology view of one node, positions included.
type TopologyNode struct {
	Name   string  `json:"name"`
	Kind   string  `json:"kind"`
	NodeID int     `json:"nodeId"`
	X      float64 `json:"x"`
	Y      float64 `json:"y"`
}

// TopologyEdge mirrors the core edge for clients.
type TopologyEdge struct {
	Source string `json:"source"`
	Target string `json:"target"`
	Label  string `json:"label"`
}

// TopologySnapshot is the read-only topology served to clients.
type TopologySnapshot struct {
	SessionID string         `json:"sessionId"`
	Nodes     []TopologyNode `json:"nodes"`
	Edges     []TopologyEdge `json:"edges"`
}

func (ws *WebServer) handleTopology(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	frame := ws.snapshotFrame()
	if frame == nil {
		http.Error(w, "Topology unavailable", http.StatusNotFound)
		return
	}

	snap := TopologySnapshot{SessionID: frame.SessionID}
	for _, n := range frame.Nodes {
		snap.Nodes = append(snap.Nodes, TopologyNode{
			Name:   n.Name,
			Kind:   n.Kind,
			NodeID: n.NodeID,
			X:      n.X,
			Y:      n.Y,
		})
	}
	for _, e := range frame.Edges {
		snap.Edges = append(snap.Edges, TopologyEdge{
			Source: e.Source,
			Target: e.Target,
			Label:  e.Label,
		})
	}

	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(snap)
}

type positionRequest struct {
	Node string  `json:"node"`
	X    float64 `json:"x"`
	Y    float64 `json:"y"`
}

// handlePosition accepts drag updates from the canvas. Positions are the
// only node attribute the presentation layer is allowed to write.
func (ws *WebServer) handlePosition(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	var req positionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}
	if req.Node == "" {
		http.Error(w, "node is required", http.StatusBadRequest)
		return
	}

	cmd := visual.ControlCommand{
		Type: visual.CommandMoveNode,
		Node: req.Node,
		X:    req.X,
		Y:    req.Y,
	}
	if !ws.queueCommand(cmd) {
		http.Error(w, "Command queue full", http.StatusServiceUnavailable)
		return
	}
	w.WriteHeader(http.StatusAccepted)
}
