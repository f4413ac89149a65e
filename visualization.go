package main

import (
	"github.com/example/tinytrainer/core"
	"github.com/example/tinytrainer/render"
)

// NodeSnapshot describes one node for frontends. It carries the full read
// model so the browser never has to reach back into live topology state.
type NodeSnapshot struct {
	Name        string       `json:"name"`
	Kind        string       `json:"kind"`
	Role        string       `json:"role"`
	State       string       `json:"state"`
	Bus         string       `json:"bus"`
	NodeID      int          `json:"nodeId"`
	Heartbeat   bool         `json:"heartbeat"`
	BusActivity bool         `json:"busActivity"`
	FaultCode   string       `json:"faultCode,omitempty"`
	Notes       string       `json:"notes,omitempty"`
	X           float64      `json:"x"`
	Y           float64      `json:"y"`
	Label       string       `json:"label"`
	Style       render.Style `json:"style"`
}

// EdgeSnapshot describes a logical connection between nodes, with its
// activity-dependent stroke resolved server-side.
type EdgeSnapshot struct {
	Source string `json:"source"`
	Target string `json:"target"`
	Label  string `json:"label"`
	Active bool   `json:"active"`
	Width  int    `json:"width"`
	Color  string `json:"color"`
}

// SimulationFrame aggregates everything a frontend needs to redraw.
type SimulationFrame struct {
	SessionID     string         `json:"sessionId"`
	Seq           int64          `json:"seq"`
	View          string         `json:"view"`
	ActivityLevel int            `json:"activityLevel"`
	NodeSize      int            `json:"nodeSize"`
	Roles         []string       `json:"roles"`
	Nodes         []NodeSnapshot `json:"nodes"`
	Edges         []EdgeSnapshot `json:"edges"`
	Stats         *SessionStats  `json:"stats,omitempty"`
}

// buildFrame snapshots the topology for the given view. The frame is fully
// detached from the live nodes; publishing it to another goroutine is safe.
func buildFrame(t *core.Topology, view render.View) *SimulationFrame {
	frame := &SimulationFrame{
		View:     string(view),
		NodeSize: render.NodeSize(view),
		Roles:    append([]string(nil), core.Roles...),
	}

	for _, n := range t.SortedNodes() {
		frame.Nodes = append(frame.Nodes, NodeSnapshot{
			Name:        n.Name,
			Kind:        string(n.Kind),
			Role:        n.Role,
			State:       string(n.State),
			Bus:         n.Bus,
			NodeID:      n.NodeID,
			Heartbeat:   n.Heartbeat,
			BusActivity: n.BusActivity,
			FaultCode:   n.FaultCode,
			Notes:       n.Notes,
			X:           n.X,
			Y:           n.Y,
			Label:       render.LabelFor(n, view),
			Style:       render.StyleFor(n),
		})
	}

	for _, e := range t.Edges {
		active := false
		if src, ok := t.Node(e.Src); ok && src.BusActivity {
			active = true
		}
		if dst, ok := t.Node(e.Dst); ok && dst.BusActivity {
			active = true
		}
		width, color := render.EdgeStroke(active)
		frame.Edges = append(frame.Edges, EdgeSnapshot{
			Source: e.Src,
			Target: e.Dst,
			Label:  e.Label,
			Active: active,
			Width:  width,
			Color:  color,
		})
	}

	return frame
}

// asNode rebuilds a core.Node from the snapshot, for the render helpers that
// operate on the entity model (e.g. the OLED panel endpoint).
func (s NodeSnapshot) asNode() *core.Node {
	return &core.Node{
		Name:        s.Name,
		Kind:        core.NodeKind(s.Kind),
		Role:        s.Role,
		State:       core.LifecycleState(s.State),
		Bus:         s.Bus,
		NodeID:      s.NodeID,
		Heartbeat:   s.Heartbeat,
		BusActivity: s.BusActivity,
		FaultCode:   s.FaultCode,
		Notes:       s.Notes,
		X:           s.X,
		Y:           s.Y,
	}
}
